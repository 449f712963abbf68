package router

import (
	"github.com/labstack/echo/v4"

	"peopleconnect/internal/adapter/api/handler"
)

func SetupAdminRouter(admin *echo.Group) {
	adminHandler := handler.GetAdminHandler()

	admin.GET("/stats", adminHandler.GetDashboardStats)
}

package router

import (
	"github.com/labstack/echo/v4"

	"peopleconnect/internal/adapter/api/handler"
	"peopleconnect/internal/adapter/api/middleware"
)

func SetupUserRouter(admin *echo.Group) {
	userHandler := handler.GetUserHandler()

	admin.GET("/users", userHandler.ListUsers)
	admin.GET("/users/:id", userHandler.GetUser)
	admin.POST("/users/:id/toggle-status", userHandler.ToggleUserStatus)
	admin.DELETE("/users/:id", userHandler.DeleteUser)
}

// SetupDisableUserRouter mounts the disable-user endpoint at both paths
// admin clients have used.
func SetupDisableUserRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	disableUserHandler := handler.GetDisableUserHandler()

	e.POST("/api/disableUser", disableUserHandler.DisableUser, authMiddleware.Authenticate, adminMiddleware.AdminOnly)
	e.POST("/disableUser", disableUserHandler.DisableUser, authMiddleware.Authenticate, adminMiddleware.AdminOnly)
}

package router

import (
	"github.com/labstack/echo/v4"

	"peopleconnect/internal/adapter/api/handler"
)

func SetupPostRouter(admin *echo.Group) {
	postHandler := handler.GetPostHandler()

	admin.GET("/posts", postHandler.ListPosts)
	admin.POST("/posts/scan", postHandler.ScanPosts)
	admin.POST("/posts/:id/approve", postHandler.ApprovePost)
	admin.POST("/posts/:id/reject", postHandler.RejectPost)
	admin.DELETE("/posts/:id", postHandler.DeletePost)
}

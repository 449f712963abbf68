package router

import (
	"github.com/labstack/echo/v4"

	"peopleconnect/internal/adapter/api/handler"
)

func SetupCategoryRouter(admin *echo.Group) {
	categoryHandler := handler.GetCategoryHandler()

	admin.GET("/categories", categoryHandler.ListCategories)
	admin.POST("/categories", categoryHandler.AddCategory)
	admin.GET("/categories/:name", categoryHandler.GetCategory)
	admin.DELETE("/categories/:name", categoryHandler.DeleteCategory)

	admin.GET("/categories/:name/subcategories", categoryHandler.ListSubCategories)
	admin.POST("/categories/:name/subcategories", categoryHandler.AddSubCategory)
	admin.DELETE("/categories/:name/subcategories/:sub", categoryHandler.DeleteSubCategory)

	admin.GET("/categories/:name/services", categoryHandler.ListServices)
	admin.POST("/categories/:name/services", categoryHandler.AddService)
	admin.DELETE("/categories/:name/services/:service", categoryHandler.DeleteService)

	admin.POST("/files/upload", categoryHandler.UploadImage)
}

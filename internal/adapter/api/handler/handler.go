package handler

import (
	"github.com/labstack/echo/v4"

	"peopleconnect/internal/domain/service"
	"peopleconnect/internal/usecase"
)

var (
	authHandler        *AuthHandler
	userHandler        *UserHandler
	postHandler        *PostHandler
	categoryHandler    *CategoryHandler
	adminHandler       *AdminHandler
	disableUserHandler *DisableUserHandler
	proxyHandler       *ProxyHandler
)

func Setup(
	authUseCase *usecase.AuthUseCase,
	userUseCase *usecase.UserUseCase,
	moderationUseCase *usecase.ModerationUseCase,
	categoryUseCase *usecase.CategoryUseCase,
	dashboardUseCase *usecase.DashboardUseCase,
	fetcher service.ImageFetcher,
) {
	authHandler = NewAuthHandler(authUseCase)
	userHandler = NewUserHandler(userUseCase)
	postHandler = NewPostHandler(moderationUseCase)
	categoryHandler = NewCategoryHandler(categoryUseCase)
	adminHandler = NewAdminHandler(dashboardUseCase)
	disableUserHandler = NewDisableUserHandler(userUseCase)
	proxyHandler = NewProxyHandler(fetcher)
}

func GetAuthHandler() *AuthHandler {
	return authHandler
}

func GetUserHandler() *UserHandler {
	return userHandler
}

func GetPostHandler() *PostHandler {
	return postHandler
}

func GetCategoryHandler() *CategoryHandler {
	return categoryHandler
}

func GetAdminHandler() *AdminHandler {
	return adminHandler
}

func GetDisableUserHandler() *DisableUserHandler {
	return disableUserHandler
}

func GetProxyHandler() *ProxyHandler {
	return proxyHandler
}

// adminID is the uid Authenticate stored on the request.
func adminID(c echo.Context) string {
	uid, _ := c.Get("uid").(string)
	return uid
}

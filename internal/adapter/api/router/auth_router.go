package router

import (
	"github.com/labstack/echo/v4"

	"peopleconnect/internal/adapter/api/handler"
	"peopleconnect/internal/adapter/api/middleware"
)

func SetupAuthRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, loginLimiter *middleware.RateLimiter) {
	authHandler := handler.GetAuthHandler()

	e.POST("/v1/auth/login", authHandler.Login, loginLimiter.Middleware())

	protected := e.Group("/v1/auth")
	protected.Use(authMiddleware.Authenticate)

	protected.POST("/logout", authHandler.Logout)
}

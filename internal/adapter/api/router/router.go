package router

import (
	"github.com/labstack/echo/v4"

	"peopleconnect/internal/adapter/api/handler"
	"peopleconnect/internal/adapter/api/middleware"
)

func Setup(
	e *echo.Echo,
	authMiddleware *middleware.AuthMiddleware,
	adminMiddleware *middleware.AdminMiddleware,
	loginLimiter *middleware.RateLimiter,
	wsHandler *handler.WebSocketHandler,
) {
	SetupHealthRouter(e)
	SetupProxyRouter(e)
	SetupAuthRouter(e, authMiddleware, loginLimiter)
	SetupDisableUserRouter(e, authMiddleware, adminMiddleware)

	admin := e.Group("/v1/admin")
	admin.Use(authMiddleware.Authenticate)
	admin.Use(adminMiddleware.AdminOnly)

	SetupAdminRouter(admin)
	SetupPostRouter(admin)
	SetupUserRouter(admin)
	SetupCategoryRouter(admin)
	SetupWebSocketRouter(admin, wsHandler)
}

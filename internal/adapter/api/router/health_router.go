package router

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"peopleconnect/internal/adapter/api/handler"
)

func SetupHealthRouter(e *echo.Echo) {
	healthHandler := handler.GetHealthHandler()

	e.GET("/health", healthHandler.CheckHealth)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// SetupProxyRouter is public: browsers load proxied images without credentials.
func SetupProxyRouter(e *echo.Echo) {
	e.GET("/proxy-image", handler.GetProxyHandler().ProxyImage)
}

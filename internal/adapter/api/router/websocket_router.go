package router

import (
	"github.com/labstack/echo/v4"

	"peopleconnect/internal/adapter/api/handler"
)

func SetupWebSocketRouter(admin *echo.Group, wsHandler *handler.WebSocketHandler) {
	admin.GET("/ws", wsHandler.HandleFeed)
}

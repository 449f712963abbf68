package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"peopleconnect/internal/usecase"
)

type HealthHandler struct {
	feed *usecase.PostFeed
}

var healthHandler *HealthHandler

func NewHealthHandler(feed *usecase.PostFeed) *HealthHandler {
	return &HealthHandler{
		feed: feed,
	}
}

func SetupHealthHandler(feed *usecase.PostFeed) {
	healthHandler = NewHealthHandler(feed)
}

func GetHealthHandler() *HealthHandler {
	return healthHandler
}

func (h *HealthHandler) CheckHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":           "ok",
		"time":             time.Now().Format(time.RFC3339),
		"feedSynchronized": h.feed.Synchronized(),
	})
}

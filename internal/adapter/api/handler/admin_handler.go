package handler

import (
	"github.com/labstack/echo/v4"

	"peopleconnect/internal/usecase"
	"peopleconnect/pkg/response"
)

type AdminHandler struct {
	dashboardUseCase *usecase.DashboardUseCase
}

func NewAdminHandler(dashboardUseCase *usecase.DashboardUseCase) *AdminHandler {
	return &AdminHandler{
		dashboardUseCase: dashboardUseCase,
	}
}

func (h *AdminHandler) GetDashboardStats(c echo.Context) error {
	stats, err := h.dashboardUseCase.Stats(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, stats)
}

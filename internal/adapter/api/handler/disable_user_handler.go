package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"peopleconnect/internal/usecase"
	"peopleconnect/pkg/logger"
)

// DisableUserHandler serves the disable-user endpoint. Its bodies are plain
// {message} / {message, error} objects, not the response envelope, because
// existing admin clients parse that shape.
type DisableUserHandler struct {
	userUseCase *usecase.UserUseCase
}

func NewDisableUserHandler(userUseCase *usecase.UserUseCase) *DisableUserHandler {
	return &DisableUserHandler{
		userUseCase: userUseCase,
	}
}

type disableUserRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type disableUserResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func (h *DisableUserHandler) DisableUser(c echo.Context) error {
	var req disableUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, disableUserResponse{Message: "Invalid request body"})
	}
	req.Email = strings.TrimSpace(req.Email)

	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, disableUserResponse{Message: "A valid email is required"})
	}

	if err := h.userUseCase.DisableUserByEmail(c.Request().Context(), req.Email); err != nil {
		logger.Error("Error disabling user %s: %v", req.Email, err)
		return c.JSON(http.StatusInternalServerError, disableUserResponse{
			Message: "Error disabling user",
			Error:   err.Error(),
		})
	}

	return c.JSON(http.StatusOK, disableUserResponse{
		Message: "User " + req.Email + " has been disabled",
	})
}

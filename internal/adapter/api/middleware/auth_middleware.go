package middleware

import (
	"strings"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"peopleconnect/internal/domain/service"
	"peopleconnect/pkg/errors"
	"peopleconnect/pkg/response"
)

// Context keys set by Authenticate.
const (
	ContextUID   = "uid"
	ContextEmail = "email"
	ContextAdmin = "admin"
)

type AuthMiddleware struct {
	identity service.IdentityService
}

func NewAuthMiddleware(identity service.IdentityService) *AuthMiddleware {
	return &AuthMiddleware{
		identity: identity,
	}
}

func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		idToken, err := tokenFromRequest(c)
		if err != nil {
			return response.Error(c, err)
		}

		claims, err := m.identity.VerifyToken(c.Request().Context(), idToken)
		if err != nil {
			return response.Error(c, errors.Unauthorized("Invalid or expired token", err))
		}

		c.Set(ContextUID, claims.UID)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextAdmin, claims.IsAdmin)
		return next(c)
	}
}

// tokenFromRequest reads the Bearer header. Browsers cannot set headers on a
// websocket handshake, so upgrades may pass the token as ?token= instead.
func tokenFromRequest(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		if websocket.IsWebSocketUpgrade(c.Request()) {
			if token := c.QueryParam("token"); token != "" {
				return token, nil
			}
		}
		return "", errors.Unauthorized("Authorization header is required", nil)
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", errors.Unauthorized("Invalid authorization format", nil)
	}
	return parts[1], nil
}

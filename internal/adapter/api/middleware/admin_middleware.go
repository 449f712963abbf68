package middleware

import (
	"github.com/labstack/echo/v4"

	"peopleconnect/pkg/errors"
	"peopleconnect/pkg/response"
)

type AdminMiddleware struct{}

func NewAdminMiddleware() *AdminMiddleware {
	return &AdminMiddleware{}
}

// AdminOnly must run after Authenticate. Admin rights come from the custom
// claim on the verified token, not from the users collection.
func (m *AdminMiddleware) AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := c.Get(ContextUID).(string); !ok {
			return response.Error(c, errors.Unauthorized("Authentication required", nil))
		}

		if isAdmin, _ := c.Get(ContextAdmin).(bool); !isAdmin {
			return response.Error(c, errors.Forbidden("Admin privileges required", nil))
		}

		return next(c)
	}
}

package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"peopleconnect/internal/domain/service"
	"peopleconnect/internal/mocks"
)

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, c.Get(ContextUID).(string))
}

func TestAuthenticateAndAdminOnly(t *testing.T) {
	tests := []struct {
		name           string
		header         string
		query          string
		upgrade        bool
		mockSetup      func(*mocks.IdentityService)
		expectedStatus int
	}{
		{
			name:           "missing header",
			expectedStatus: http.StatusUnauthorized,
			mockSetup:      func(*mocks.IdentityService) {},
		},
		{
			name:           "wrong scheme",
			header:         "Basic abc",
			expectedStatus: http.StatusUnauthorized,
			mockSetup:      func(*mocks.IdentityService) {},
		},
		{
			name:   "invalid token",
			header: "Bearer bad",
			mockSetup: func(m *mocks.IdentityService) {
				m.On("VerifyToken", mock.Anything, "bad").Return(nil, fmt.Errorf("expired"))
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:   "signed in without admin claim",
			header: "Bearer user-token",
			mockSetup: func(m *mocks.IdentityService) {
				m.On("VerifyToken", mock.Anything, "user-token").Return(&service.TokenClaims{UID: "u1"}, nil)
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:   "admin",
			header: "Bearer admin-token",
			mockSetup: func(m *mocks.IdentityService) {
				m.On("VerifyToken", mock.Anything, "admin-token").Return(&service.TokenClaims{UID: "a1", IsAdmin: true}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:    "websocket handshake with query token",
			query:   "?token=admin-token",
			upgrade: true,
			mockSetup: func(m *mocks.IdentityService) {
				m.On("VerifyToken", mock.Anything, "admin-token").Return(&service.TokenClaims{UID: "a1", IsAdmin: true}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "query token ignored on plain requests",
			query:          "?token=admin-token",
			mockSetup:      func(*mocks.IdentityService) {},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identity := new(mocks.IdentityService)
			tt.mockSetup(identity)
			authMiddleware := NewAuthMiddleware(identity)
			adminMiddleware := NewAdminMiddleware()

			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/v1/admin/stats"+tt.query, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.upgrade {
				req.Header.Set("Connection", "Upgrade")
				req.Header.Set("Upgrade", "websocket")
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			h := authMiddleware.Authenticate(adminMiddleware.AdminOnly(okHandler))
			require.NoError(t, h(c))
			assert.Equal(t, tt.expectedStatus, rec.Code)
			identity.AssertExpectations(t)
		})
	}
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	current := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return current }

	e := echo.New()
	h := rl.Middleware()(func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })

	call := func() int {
		req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", nil)
		req.Header.Set(echo.HeaderXRealIP, "203.0.113.7")
		rec := httptest.NewRecorder()
		require.NoError(t, h(e.NewContext(req, rec)))
		return rec.Code
	}

	assert.Equal(t, http.StatusNoContent, call())
	assert.Equal(t, http.StatusNoContent, call())
	assert.Equal(t, http.StatusTooManyRequests, call())

	current = current.Add(time.Minute)
	assert.Equal(t, http.StatusNoContent, call())
}

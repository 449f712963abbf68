package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"peopleconnect/internal/adapter/api"
	"peopleconnect/internal/mocks"
	"peopleconnect/internal/usecase"
)

func TestDisableUser(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		mockSetup      func(*mocks.IdentityService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "disables the account",
			body: `{"email":"provider@example.com"}`,
			mockSetup: func(m *mocks.IdentityService) {
				m.On("DisableUserByEmail", mock.Anything, "provider@example.com").Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"message":"User provider@example.com has been disabled"}`,
		},
		{
			name: "identity failure",
			body: `{"email":"provider@example.com"}`,
			mockSetup: func(m *mocks.IdentityService) {
				m.On("DisableUserByEmail", mock.Anything, "provider@example.com").Return(fmt.Errorf("user not found"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"message":"Error disabling user","error":"user not found"}`,
		},
		{
			name:           "missing email",
			body:           `{}`,
			mockSetup:      func(*mocks.IdentityService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"message":"A valid email is required"}`,
		},
		{
			name:           "malformed body",
			body:           `{"email":`,
			mockSetup:      func(*mocks.IdentityService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"message":"Invalid request body"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identity := new(mocks.IdentityService)
			tt.mockSetup(identity)
			h := NewDisableUserHandler(usecase.NewUserUseCase(new(mocks.UserRepository), identity))

			e := echo.New()
			e.Validator = api.NewValidator()
			req := httptest.NewRequest(http.MethodPost, "/api/disableUser", strings.NewReader(tt.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			if assert.NoError(t, h.DisableUser(c)) {
				assert.Equal(t, tt.expectedStatus, rec.Code)
				assert.JSONEq(t, tt.expectedBody, rec.Body.String())
			}
			identity.AssertExpectations(t)
		})
	}
}

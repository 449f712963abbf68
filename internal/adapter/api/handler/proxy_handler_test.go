package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"peopleconnect/internal/domain/service"
	"peopleconnect/internal/mocks"
	"peopleconnect/pkg/errors"
)

func TestProxyImage(t *testing.T) {
	tests := []struct {
		name           string
		target         string
		mockSetup      func(*mocks.ImageFetcher)
		expectedStatus int
		expectedType   string
	}{
		{
			name:   "relays bytes with permissive CORS",
			target: "https://cdn.example.com/a.png",
			mockSetup: func(m *mocks.ImageFetcher) {
				m.On("Fetch", mock.Anything, "https://cdn.example.com/a.png").
					Return(&service.FetchedImage{Data: []byte("\x89PNG"), ContentType: "image/png"}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedType:   "image/png",
		},
		{
			name:   "upstream failure",
			target: "https://cdn.example.com/missing.png",
			mockSetup: func(m *mocks.ImageFetcher) {
				m.On("Fetch", mock.Anything, "https://cdn.example.com/missing.png").
					Return(nil, errors.BadGateway("Upstream returned 404", nil))
			},
			expectedStatus: http.StatusBadGateway,
		},
		{
			name:   "bad url",
			target: "file:///etc/passwd",
			mockSetup: func(m *mocks.ImageFetcher) {
				m.On("Fetch", mock.Anything, "file:///etc/passwd").
					Return(nil, errors.BadRequest("Only http and https URLs can be proxied", nil))
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := new(mocks.ImageFetcher)
			tt.mockSetup(fetcher)
			h := NewProxyHandler(fetcher)

			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/proxy-image", nil)
			q := req.URL.Query()
			q.Set("url", tt.target)
			req.URL.RawQuery = q.Encode()
			rec := httptest.NewRecorder()

			require.NoError(t, h.ProxyImage(e.NewContext(req, rec)))
			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, "*", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
			if tt.expectedType != "" {
				assert.Equal(t, tt.expectedType, rec.Header().Get(echo.HeaderContentType))
				assert.Equal(t, "\x89PNG", rec.Body.String())
			}
		})
	}
}

package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"peopleconnect/internal/domain/entity"
	"peopleconnect/internal/mocks"
	"peopleconnect/internal/usecase"
)

func TestHealthCheck(t *testing.T) {
	postRepo := new(mocks.PostRepository)
	postRepo.On("List", mock.Anything).Return([]*entity.Post{}, nil)
	feed := usecase.NewPostFeed(postRepo, new(mocks.UserRepository))

	e := echo.New()
	h := NewHealthHandler(feed)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	if assert.NoError(t, h.CheckHealth(e.NewContext(req, rec))) {
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"feedSynchronized":false`)
	}

	require.NoError(t, feed.Load(context.Background()))

	rec = httptest.NewRecorder()
	if assert.NoError(t, h.CheckHealth(e.NewContext(req, rec))) {
		assert.Contains(t, rec.Body.String(), `"feedSynchronized":true`)
	}
}

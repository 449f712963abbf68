package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"peopleconnect/internal/domain/entity"
	"peopleconnect/internal/domain/service"
	"peopleconnect/internal/mocks"
	"peopleconnect/internal/usecase"
	"peopleconnect/pkg/errors"
)

func newPostHandler(t *testing.T, postRepo *mocks.PostRepository, posts []*entity.Post) *PostHandler {
	t.Helper()
	userRepo := new(mocks.UserRepository)
	userRepo.On("GetByEmail", mock.Anything, mock.Anything).Return(nil, errors.NotFound("User", nil))
	postRepo.On("List", mock.Anything).Return(posts, nil).Once()

	feed := usecase.NewPostFeed(postRepo, userRepo)
	require.NoError(t, feed.Load(context.Background()))

	uc := usecase.NewModerationUseCase(postRepo, feed, new(mocks.ImageFetcher), nil, new(mocks.ImageClassifier),
		service.DefaultModerationPolicy())
	return NewPostHandler(uc)
}

func TestScanPostsHandler(t *testing.T) {
	postRepo := new(mocks.PostRepository)
	h := newPostHandler(t, postRepo, []*entity.Post{
		{ID: "p1", PostStatus: entity.PostStatusPending},
		{ID: "p2", PostStatus: entity.PostStatusApproved},
	})
	postRepo.On("UpdateModeration", mock.Anything, "p1", mock.Anything).Return(nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/admin/posts/scan", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, h.ScanPosts(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool               `json:"success"`
		Data    usecase.ScanReport `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, 1, body.Data.Scanned)
	assert.Equal(t, 1, body.Data.Approved)
}

func TestListPostsHandler_PendingFirst(t *testing.T) {
	postRepo := new(mocks.PostRepository)
	h := newPostHandler(t, postRepo, []*entity.Post{
		{ID: "a", Email: "a@example.com", PostStatus: entity.PostStatusApproved},
		{ID: "b", Email: "b@example.com", PostStatus: entity.PostStatusPending},
	})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/admin/posts", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, h.ListPosts(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data struct {
			Items []entity.Post `json:"items"`
			Total int64         `json:"total"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data.Items, 2)
	assert.Equal(t, "b", body.Data.Items[0].ID)
	assert.Equal(t, "b@example.com", body.Data.Items[0].UserName)
}

func TestApprovePostHandler_AlreadyDecided(t *testing.T) {
	postRepo := new(mocks.PostRepository)
	h := newPostHandler(t, postRepo, nil)
	postRepo.On("GetByID", mock.Anything, "p9").Return(&entity.Post{ID: "p9", PostStatus: entity.PostStatusRejected}, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/admin/posts/p9/approve", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("p9")
	c.Set("uid", "admin-1")

	require.NoError(t, h.ApprovePost(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

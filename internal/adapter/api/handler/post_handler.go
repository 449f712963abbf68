package handler

import (
	"context"

	"github.com/labstack/echo/v4"

	"peopleconnect/internal/usecase"
	"peopleconnect/pkg/response"
	"peopleconnect/pkg/utils"
)

type PostHandler struct {
	moderationUseCase *usecase.ModerationUseCase
}

func NewPostHandler(moderationUseCase *usecase.ModerationUseCase) *PostHandler {
	return &PostHandler{
		moderationUseCase: moderationUseCase,
	}
}

// ListPosts serves the live feed, Pending first, optionally narrowed by ?status=.
func (h *PostHandler) ListPosts(c echo.Context) error {
	posts, err := h.moderationUseCase.ListPosts(c.QueryParam("status"))
	if err != nil {
		return response.Error(c, err)
	}

	params := utils.GetPaginationParams(c)
	return response.Paginated(c, utils.Paginate(posts, params), int64(len(posts)), params.Page, params.PageSize)
}

// ScanPosts runs a full scan and answers with its report. The scan cannot be
// cancelled, so it is detached from the request and finishes even if the
// client goes away.
func (h *PostHandler) ScanPosts(c echo.Context) error {
	ctx := context.WithoutCancel(c.Request().Context())

	report, err := h.moderationUseCase.ScanPending(ctx)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, report)
}

func (h *PostHandler) ApprovePost(c echo.Context) error {
	post, err := h.moderationUseCase.ApprovePost(c.Request().Context(), c.Param("id"), adminID(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, post)
}

func (h *PostHandler) RejectPost(c echo.Context) error {
	post, err := h.moderationUseCase.RejectPost(c.Request().Context(), c.Param("id"), adminID(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, post)
}

func (h *PostHandler) DeletePost(c echo.Context) error {
	if err := h.moderationUseCase.DeletePost(c.Request().Context(), c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Post deleted",
	})
}

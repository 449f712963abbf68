package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"peopleconnect/internal/domain/service"
	"peopleconnect/pkg/response"
)

// ProxyHandler relays remote images so browser code can read their pixels.
type ProxyHandler struct {
	fetcher service.ImageFetcher
}

func NewProxyHandler(fetcher service.ImageFetcher) *ProxyHandler {
	return &ProxyHandler{
		fetcher: fetcher,
	}
}

func (h *ProxyHandler) ProxyImage(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderAccessControlAllowOrigin, "*")

	img, err := h.fetcher.Fetch(c.Request().Context(), c.QueryParam("url"))
	if err != nil {
		return response.Error(c, err)
	}

	c.Response().Header().Set(echo.HeaderCacheControl, "public, max-age=3600")
	return c.Blob(http.StatusOK, img.ContentType, img.Data)
}

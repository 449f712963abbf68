package utils

import (
	"math"
	"strconv"

	"github.com/labstack/echo/v4"
)

// PaginationParams represents pagination parameters
type PaginationParams struct {
	Page     int
	PageSize int
	Offset   int
}

// GetPaginationParams extracts pagination parameters from request
func GetPaginationParams(c echo.Context) PaginationParams {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	pageSize, _ := strconv.Atoi(c.QueryParam("limit"))

	if page <= 0 {
		page = 1
	}

	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	// Past this page the offset no longer fits in an int; no result set is that long.
	if maxPage := math.MaxInt/pageSize + 1; page > maxPage {
		page = maxPage
	}

	return PaginationParams{
		Page:     page,
		PageSize: pageSize,
		Offset:   (page - 1) * pageSize,
	}
}

// Paginate slices an in-memory result set. The feed and the user list are
// materialized in full, so paging happens after the read.
func Paginate[T any](items []T, params PaginationParams) []T {
	if params.Offset < 0 || params.Offset >= len(items) {
		return []T{}
	}
	end := params.Offset + params.PageSize
	if end > len(items) || end < params.Offset {
		end = len(items)
	}
	return items[params.Offset:end]
}

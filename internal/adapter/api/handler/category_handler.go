package handler

import (
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"

	"peopleconnect/internal/usecase"
	"peopleconnect/pkg/errors"
	"peopleconnect/pkg/logger"
	"peopleconnect/pkg/response"
)

const maxImageSize = 5 * 1024 * 1024

type CategoryHandler struct {
	categoryUseCase *usecase.CategoryUseCase
}

func NewCategoryHandler(categoryUseCase *usecase.CategoryUseCase) *CategoryHandler {
	return &CategoryHandler{
		categoryUseCase: categoryUseCase,
	}
}

type taxonomyNodeRequest struct {
	Name  string `json:"name" validate:"required,max=100"`
	Image string `json:"image" validate:"required,url"`
}

func bindNode(c echo.Context) (usecase.TaxonomyNodeInput, error) {
	var req taxonomyNodeRequest
	if err := c.Bind(&req); err != nil {
		return usecase.TaxonomyNodeInput{}, err
	}
	if err := c.Validate(&req); err != nil {
		return usecase.TaxonomyNodeInput{}, err
	}
	return usecase.TaxonomyNodeInput{Name: req.Name, Image: req.Image}, nil
}

func (h *CategoryHandler) ListCategories(c echo.Context) error {
	categories, err := h.categoryUseCase.ListCategories(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, categories)
}

func (h *CategoryHandler) GetCategory(c echo.Context) error {
	tree, err := h.categoryUseCase.GetCategoryTree(c.Request().Context(), c.Param("name"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, tree)
}

func (h *CategoryHandler) AddCategory(c echo.Context) error {
	input, err := bindNode(c)
	if err != nil {
		return response.Error(c, err)
	}

	category, err := h.categoryUseCase.AddCategory(c.Request().Context(), input)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, category)
}

func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	if err := h.categoryUseCase.DeleteCategory(c.Request().Context(), c.Param("name")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"message": "Category deleted"})
}

func (h *CategoryHandler) ListSubCategories(c echo.Context) error {
	subs, err := h.categoryUseCase.ListSubCategories(c.Request().Context(), c.Param("name"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, subs)
}

func (h *CategoryHandler) AddSubCategory(c echo.Context) error {
	input, err := bindNode(c)
	if err != nil {
		return response.Error(c, err)
	}

	sub, err := h.categoryUseCase.AddSubCategory(c.Request().Context(), c.Param("name"), input)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, sub)
}

func (h *CategoryHandler) DeleteSubCategory(c echo.Context) error {
	if err := h.categoryUseCase.DeleteSubCategory(c.Request().Context(), c.Param("name"), c.Param("sub")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"message": "Sub-category deleted"})
}

func (h *CategoryHandler) ListServices(c echo.Context) error {
	services, err := h.categoryUseCase.ListServices(c.Request().Context(), c.Param("name"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, services)
}

func (h *CategoryHandler) AddService(c echo.Context) error {
	input, err := bindNode(c)
	if err != nil {
		return response.Error(c, err)
	}

	svc, err := h.categoryUseCase.AddService(c.Request().Context(), c.Param("name"), input)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, svc)
}

func (h *CategoryHandler) DeleteService(c echo.Context) error {
	if err := h.categoryUseCase.DeleteService(c.Request().Context(), c.Param("name"), c.Param("service")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"message": "Service deleted"})
}

// UploadImage takes a multipart "file" plus a "kind" of category,
// subcategory or service and returns the stored image URL.
func (h *CategoryHandler) UploadImage(c echo.Context) error {
	file, err := c.FormFile("file")
	if err != nil {
		return response.Error(c, errors.BadRequest("Missing or invalid file", err))
	}

	if file.Size > maxImageSize {
		logger.Warn("File too large: %d bytes (max: %d)", file.Size, maxImageSize)
		return response.Error(c, errors.BadRequest(fmt.Sprintf("File size exceeds maximum allowed (%dMB)", maxImageSize/(1024*1024)), nil))
	}

	src, err := file.Open()
	if err != nil {
		return response.Error(c, errors.Internal("Failed to read uploaded file", err))
	}
	defer src.Close()

	contentType := strings.TrimSpace(file.Header.Get("Content-Type"))
	url, err := h.categoryUseCase.UploadImage(c.Request().Context(), c.FormValue("kind"), src, contentType)
	if err != nil {
		return response.Error(c, err)
	}

	logger.Info("Uploaded %s image %s", c.FormValue("kind"), url)
	return response.Created(c, map[string]string{
		"url": url,
	})
}

package usecase

import (
	"context"
	"io"
	"strings"

	"peopleconnect/internal/domain/entity"
	"peopleconnect/internal/domain/repository"
	"peopleconnect/internal/domain/service"
	"peopleconnect/pkg/errors"
	"peopleconnect/pkg/logger"
)

// Upload folders per taxonomy level.
const (
	ImageKindCategory    = "category"
	ImageKindSubCategory = "subcategory"
	ImageKindService     = "service"
)

var imageFolders = map[string]string{
	ImageKindCategory:    "categories",
	ImageKindSubCategory: "subcategories",
	ImageKindService:     "services",
}

type CategoryUseCase struct {
	categoryRepo repository.CategoryRepository
	files        service.FileUploadService
}

func NewCategoryUseCase(categoryRepo repository.CategoryRepository, files service.FileUploadService) *CategoryUseCase {
	return &CategoryUseCase{
		categoryRepo: categoryRepo,
		files:        files,
	}
}

type TaxonomyNodeInput struct {
	Name  string
	Image string
}

// CategoryTree is a category with its children, as the admin grid shows it.
type CategoryTree struct {
	*entity.Category
	SubCategories []*entity.SubCategory `json:"subCategories"`
	Services      []*entity.Service     `json:"services"`
}

func validateNode(input TaxonomyNodeInput) (TaxonomyNodeInput, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Image = strings.TrimSpace(input.Image)

	if input.Name == "" {
		return input, errors.Validation("name is required")
	}
	// Names are document keys.
	if strings.Contains(input.Name, "/") || input.Name == "." || input.Name == ".." || strings.HasPrefix(input.Name, "__") {
		return input, errors.Validation("name contains characters that are not allowed")
	}
	if input.Image == "" {
		return input, errors.Validation("image is required")
	}
	return input, nil
}

func (uc *CategoryUseCase) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	return uc.categoryRepo.ListCategories(ctx)
}

func (uc *CategoryUseCase) GetCategoryTree(ctx context.Context, name string) (*CategoryTree, error) {
	category, err := uc.categoryRepo.GetCategory(ctx, name)
	if err != nil {
		return nil, err
	}
	subs, err := uc.categoryRepo.ListSubCategories(ctx, name)
	if err != nil {
		return nil, err
	}
	services, err := uc.categoryRepo.ListServices(ctx, name)
	if err != nil {
		return nil, err
	}
	return &CategoryTree{Category: category, SubCategories: subs, Services: services}, nil
}

func (uc *CategoryUseCase) AddCategory(ctx context.Context, input TaxonomyNodeInput) (*entity.Category, error) {
	input, err := validateNode(input)
	if err != nil {
		return nil, err
	}

	category := &entity.Category{Name: input.Name, Image: input.Image}
	if err := uc.categoryRepo.CreateCategory(ctx, category); err != nil {
		return nil, err
	}

	logger.Info("Category %q added", category.Name)
	return category, nil
}

func (uc *CategoryUseCase) DeleteCategory(ctx context.Context, name string) error {
	if _, err := uc.categoryRepo.GetCategory(ctx, name); err != nil {
		return err
	}
	if err := uc.categoryRepo.DeleteCategory(ctx, name); err != nil {
		return err
	}

	logger.Info("Category %q deleted with its sub-categories and services", name)
	return nil
}

func (uc *CategoryUseCase) ListSubCategories(ctx context.Context, categoryName string) ([]*entity.SubCategory, error) {
	if _, err := uc.categoryRepo.GetCategory(ctx, categoryName); err != nil {
		return nil, err
	}
	return uc.categoryRepo.ListSubCategories(ctx, categoryName)
}

func (uc *CategoryUseCase) AddSubCategory(ctx context.Context, categoryName string, input TaxonomyNodeInput) (*entity.SubCategory, error) {
	input, err := validateNode(input)
	if err != nil {
		return nil, err
	}
	if _, err := uc.categoryRepo.GetCategory(ctx, categoryName); err != nil {
		return nil, err
	}

	sub := &entity.SubCategory{Name: input.Name, Image: input.Image, CategoryName: categoryName}
	if err := uc.categoryRepo.CreateSubCategory(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (uc *CategoryUseCase) DeleteSubCategory(ctx context.Context, categoryName, name string) error {
	return uc.categoryRepo.DeleteSubCategory(ctx, categoryName, name)
}

func (uc *CategoryUseCase) ListServices(ctx context.Context, categoryName string) ([]*entity.Service, error) {
	if _, err := uc.categoryRepo.GetCategory(ctx, categoryName); err != nil {
		return nil, err
	}
	return uc.categoryRepo.ListServices(ctx, categoryName)
}

func (uc *CategoryUseCase) AddService(ctx context.Context, categoryName string, input TaxonomyNodeInput) (*entity.Service, error) {
	input, err := validateNode(input)
	if err != nil {
		return nil, err
	}
	if _, err := uc.categoryRepo.GetCategory(ctx, categoryName); err != nil {
		return nil, err
	}

	svc := &entity.Service{Name: input.Name, Image: input.Image, CategoryName: categoryName}
	if err := uc.categoryRepo.CreateService(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (uc *CategoryUseCase) DeleteService(ctx context.Context, categoryName, name string) error {
	return uc.categoryRepo.DeleteService(ctx, categoryName, name)
}

// UploadImage stores a taxonomy image and returns its public URL.
func (uc *CategoryUseCase) UploadImage(ctx context.Context, kind string, file io.Reader, contentType string) (string, error) {
	if uc.files == nil {
		return "", errors.Internal("Image uploads are not configured", nil)
	}
	folder, ok := imageFolders[kind]
	if !ok {
		return "", errors.Validation("kind must be one of: category subcategory service")
	}
	if !strings.HasPrefix(contentType, "image/") {
		return "", errors.Validation("file must be an image")
	}

	url, err := uc.files.UploadFile(ctx, file, contentType, folder)
	if err != nil {
		return "", errors.Internal("Failed to upload image", err)
	}
	return url, nil
}

package repository

import (
	"context"

	"peopleconnect/internal/domain/entity"
)

type CategoryRepository interface {
	GetCategory(ctx context.Context, name string) (*entity.Category, error)
	ListCategories(ctx context.Context) ([]*entity.Category, error)
	// CreateCategory fails with a CONFLICT AppError when the name is taken.
	CreateCategory(ctx context.Context, category *entity.Category) error
	// DeleteCategory removes the category and everything beneath it.
	DeleteCategory(ctx context.Context, name string) error

	ListSubCategories(ctx context.Context, categoryName string) ([]*entity.SubCategory, error)
	CreateSubCategory(ctx context.Context, sub *entity.SubCategory) error
	DeleteSubCategory(ctx context.Context, categoryName, name string) error

	ListServices(ctx context.Context, categoryName string) ([]*entity.Service, error)
	CreateService(ctx context.Context, service *entity.Service) error
	DeleteService(ctx context.Context, categoryName, name string) error
}

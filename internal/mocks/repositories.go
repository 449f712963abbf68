// Package mocks holds testify mocks of the domain interfaces for use in tests.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"peopleconnect/internal/domain/entity"
)

type PostRepository struct {
	mock.Mock
}

func (m *PostRepository) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *PostRepository) List(ctx context.Context) ([]*entity.Post, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Post), args.Error(1)
}

func (m *PostRepository) Watch(ctx context.Context, onChange func([]*entity.Post)) error {
	args := m.Called(ctx, onChange)
	return args.Error(0)
}

func (m *PostRepository) UpdateModeration(ctx context.Context, id string, update entity.ModerationUpdate) error {
	args := m.Called(ctx, id, update)
	return args.Error(0)
}

func (m *PostRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *UserRepository) List(ctx context.Context) ([]*entity.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.User), args.Error(1)
}

func (m *UserRepository) UpdateStatus(ctx context.Context, id, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *UserRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type CategoryRepository struct {
	mock.Mock
}

func (m *CategoryRepository) GetCategory(ctx context.Context, name string) (*entity.Category, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Category), args.Error(1)
}

func (m *CategoryRepository) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Category), args.Error(1)
}

func (m *CategoryRepository) CreateCategory(ctx context.Context, category *entity.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *CategoryRepository) DeleteCategory(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *CategoryRepository) ListSubCategories(ctx context.Context, categoryName string) ([]*entity.SubCategory, error) {
	args := m.Called(ctx, categoryName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.SubCategory), args.Error(1)
}

func (m *CategoryRepository) CreateSubCategory(ctx context.Context, sub *entity.SubCategory) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func (m *CategoryRepository) DeleteSubCategory(ctx context.Context, categoryName, name string) error {
	args := m.Called(ctx, categoryName, name)
	return args.Error(0)
}

func (m *CategoryRepository) ListServices(ctx context.Context, categoryName string) ([]*entity.Service, error) {
	args := m.Called(ctx, categoryName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Service), args.Error(1)
}

func (m *CategoryRepository) CreateService(ctx context.Context, service *entity.Service) error {
	args := m.Called(ctx, service)
	return args.Error(0)
}

func (m *CategoryRepository) DeleteService(ctx context.Context, categoryName, name string) error {
	args := m.Called(ctx, categoryName, name)
	return args.Error(0)
}

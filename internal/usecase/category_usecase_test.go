package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"peopleconnect/internal/domain/entity"
	"peopleconnect/internal/mocks"
	"peopleconnect/pkg/errors"
)

func TestAddCategory(t *testing.T) {
	tests := []struct {
		name      string
		input     TaxonomyNodeInput
		repoErr   error
		wantCode  string
		wantWrite bool
	}{
		{name: "valid", input: TaxonomyNodeInput{Name: " Cleaning ", Image: "https://img/c.png"}, wantWrite: true},
		{name: "missing name", input: TaxonomyNodeInput{Image: "https://img/c.png"}, wantCode: "VALIDATION_ERROR"},
		{name: "missing image", input: TaxonomyNodeInput{Name: "Cleaning"}, wantCode: "VALIDATION_ERROR"},
		{name: "slash in name", input: TaxonomyNodeInput{Name: "a/b", Image: "x"}, wantCode: "VALIDATION_ERROR"},
		{
			name:      "duplicate",
			input:     TaxonomyNodeInput{Name: "Cleaning", Image: "x"},
			repoErr:   errors.Conflict("Category already exists"),
			wantCode:  "CONFLICT",
			wantWrite: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.CategoryRepository)
			repo.On("CreateCategory", mock.Anything, mock.Anything).Return(tt.repoErr)
			uc := NewCategoryUseCase(repo, new(mocks.FileUploadService))

			category, err := uc.AddCategory(context.Background(), tt.input)
			if tt.wantCode != "" {
				assert.True(t, errors.Is(err, tt.wantCode), "got %v", err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "Cleaning", category.Name)
			}
			if !tt.wantWrite {
				repo.AssertNotCalled(t, "CreateCategory", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestAddSubCategory_UnknownCategory(t *testing.T) {
	repo := new(mocks.CategoryRepository)
	repo.On("GetCategory", mock.Anything, "Ghost").Return(nil, errors.NotFound("Category", nil))
	uc := NewCategoryUseCase(repo, new(mocks.FileUploadService))

	_, err := uc.AddSubCategory(context.Background(), "Ghost", TaxonomyNodeInput{Name: "Deep", Image: "x"})
	assert.True(t, errors.IsNotFound(err))
	repo.AssertNotCalled(t, "CreateSubCategory", mock.Anything, mock.Anything)
}

func TestAddService(t *testing.T) {
	repo := new(mocks.CategoryRepository)
	repo.On("GetCategory", mock.Anything, "Home").Return(&entity.Category{Name: "Home"}, nil)
	repo.On("CreateService", mock.Anything, &entity.Service{Name: "Plumbing", Image: "x", CategoryName: "Home"}).Return(nil)
	uc := NewCategoryUseCase(repo, new(mocks.FileUploadService))

	svc, err := uc.AddService(context.Background(), "Home", TaxonomyNodeInput{Name: "Plumbing", Image: "x"})
	require.NoError(t, err)
	assert.Equal(t, "Home", svc.CategoryName)
	repo.AssertExpectations(t)
}

func TestDeleteCategory_Cascades(t *testing.T) {
	repo := new(mocks.CategoryRepository)
	repo.On("GetCategory", mock.Anything, "Home").Return(&entity.Category{Name: "Home"}, nil)
	repo.On("DeleteCategory", mock.Anything, "Home").Return(nil)

	require.NoError(t, NewCategoryUseCase(repo, nil).DeleteCategory(context.Background(), "Home"))
	repo.AssertExpectations(t)
}

func TestUploadImage(t *testing.T) {
	files := new(mocks.FileUploadService)
	files.On("UploadFile", mock.Anything, mock.Anything, "image/png", "subcategories").
		Return("https://storage.googleapis.com/b/subcategories/x.png", nil)
	uc := NewCategoryUseCase(new(mocks.CategoryRepository), files)

	url, err := uc.UploadImage(context.Background(), ImageKindSubCategory, strings.NewReader("png"), "image/png")
	require.NoError(t, err)
	assert.Contains(t, url, "subcategories/")

	_, err = uc.UploadImage(context.Background(), "banner", strings.NewReader("png"), "image/png")
	assert.True(t, errors.Is(err, "VALIDATION_ERROR"))

	_, err = uc.UploadImage(context.Background(), ImageKindService, strings.NewReader("%PDF"), "application/pdf")
	assert.True(t, errors.Is(err, "VALIDATION_ERROR"))
}

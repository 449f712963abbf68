package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"peopleconnect/internal/domain/entity"
	"peopleconnect/internal/mocks"
	"peopleconnect/pkg/errors"
)

type staticTaxonomySource map[string]map[string]interface{}

func (s staticTaxonomySource) Fetch(context.Context) (map[string]map[string]interface{}, error) {
	return s, nil
}

func legacyTrees() staticTaxonomySource {
	return staticTaxonomySource{
		"category": {
			"Beauty": map[string]interface{}{
				"image": "https://img/beauty.png",
				"Sub_Categories": map[string]interface{}{
					"Hair": map[string]interface{}{"image": "https://img/hair.png"},
				},
			},
		},
		"categories": {
			"-Nx1": map[string]interface{}{
				"name":  "Beauty",
				"image": "https://img/beauty-2.png",
				"Sub Categories": map[string]interface{}{
					"nails": map[string]interface{}{"name": "Nails", "image": "https://img/nails.png"},
					"Hair":  map[string]interface{}{"image": "https://img/hair-2.png"},
				},
			},
			"Home": map[string]interface{}{"image": "https://img/home.png"},
		},
		"services": {
			"s1": map[string]interface{}{"name": "Plumbing", "image": "https://img/p.png", "categoryId": "Home"},
			"s2": map[string]interface{}{"name": "Makeup", "image": "https://img/m.png", "categoryId": "-Nx1"},
			"s3": map[string]interface{}{"name": "Lost", "categoryId": "Garden"},
			"s4": "not a node",
		},
	}
}

func TestNormalizeLegacyTaxonomy_MergesLayouts(t *testing.T) {
	categories, orphans := NormalizeLegacyTaxonomy(legacyTrees())

	require.Len(t, categories, 2)
	beauty, home := categories[0], categories[1]

	assert.Equal(t, "Beauty", beauty.Name)
	assert.Equal(t, "https://img/beauty.png", beauty.Image)
	require.Len(t, beauty.SubCategories, 2)
	assert.Equal(t, "Hair", beauty.SubCategories[0].Name)
	assert.Equal(t, "https://img/hair.png", beauty.SubCategories[0].Image)
	assert.Equal(t, "Nails", beauty.SubCategories[1].Name)
	assert.Equal(t, "Beauty", beauty.SubCategories[1].CategoryName)
	require.Len(t, beauty.Services, 1)
	assert.Equal(t, "Makeup", beauty.Services[0].Name)

	assert.Equal(t, "Home", home.Name)
	require.Len(t, home.Services, 1)
	assert.Equal(t, "Plumbing", home.Services[0].Name)

	assert.Equal(t, []string{"s3"}, orphans)
}

func TestMigrate_DryRunWritesNothing(t *testing.T) {
	repo := new(mocks.CategoryRepository)
	uc := NewTaxonomyMigrationUseCase(legacyTrees(), repo)

	report, err := uc.Migrate(context.Background(), true)
	require.NoError(t, err)

	assert.True(t, report.DryRun)
	assert.Equal(t, 2, report.CategoriesCreated)
	assert.Equal(t, 2, report.SubCategoriesCreated)
	assert.Equal(t, 2, report.ServicesCreated)
	repo.AssertNotCalled(t, "CreateCategory", mock.Anything, mock.Anything)
}

func TestMigrate_SkipsExistingNodes(t *testing.T) {
	repo := new(mocks.CategoryRepository)
	repo.On("CreateCategory", mock.Anything, mock.MatchedBy(func(c *entity.Category) bool { return c.Name == "Beauty" })).
		Return(errors.Conflict("Category already exists"))
	repo.On("CreateCategory", mock.Anything, mock.Anything).Return(nil)
	repo.On("CreateSubCategory", mock.Anything, mock.MatchedBy(func(s *entity.SubCategory) bool { return s.Name == "Hair" })).
		Return(errors.Conflict("Sub-category already exists"))
	repo.On("CreateSubCategory", mock.Anything, mock.Anything).Return(nil)
	repo.On("CreateService", mock.Anything, mock.Anything).Return(nil)

	report, err := NewTaxonomyMigrationUseCase(legacyTrees(), repo).Migrate(context.Background(), false)
	require.NoError(t, err)

	assert.Equal(t, 1, report.CategoriesCreated)
	assert.Equal(t, 1, report.SubCategoriesCreated)
	assert.Equal(t, 2, report.ServicesCreated)
	assert.Equal(t, 2, report.Skipped)
	assert.Equal(t, []string{"s3"}, report.Orphans)
}

func TestMigrate_StopsOnWriteFailure(t *testing.T) {
	repo := new(mocks.CategoryRepository)
	repo.On("CreateCategory", mock.Anything, mock.Anything).Return(errors.Internal("Failed to create category", nil))

	_, err := NewTaxonomyMigrationUseCase(legacyTrees(), repo).Migrate(context.Background(), false)
	assert.True(t, errors.Is(err, "INTERNAL_ERROR"))
	repo.AssertNumberOfCalls(t, "CreateCategory", 1)
}

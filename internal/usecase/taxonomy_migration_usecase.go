package usecase

import (
	"context"
	"sort"
	"strings"

	"peopleconnect/internal/domain/entity"
	"peopleconnect/internal/domain/repository"
	"peopleconnect/pkg/errors"
	"peopleconnect/pkg/logger"
)

// LegacyTaxonomySource returns the raw legacy trees keyed by root node name.
type LegacyTaxonomySource interface {
	Fetch(ctx context.Context) (map[string]map[string]interface{}, error)
}

var legacyChildKeys = []string{"Sub_Categories", "Sub Categories", "subCategories"}

type LegacyCategory struct {
	Name          string
	Image         string
	SubCategories []*entity.SubCategory
	Services      []*entity.Service
}

type MigrationReport struct {
	DryRun               bool     `json:"dryRun"`
	CategoriesCreated    int      `json:"categoriesCreated"`
	SubCategoriesCreated int      `json:"subCategoriesCreated"`
	ServicesCreated      int      `json:"servicesCreated"`
	Skipped              int      `json:"skipped"`
	Orphans              []string `json:"orphans,omitempty"`
}

type TaxonomyMigrationUseCase struct {
	source       LegacyTaxonomySource
	categoryRepo repository.CategoryRepository
}

func NewTaxonomyMigrationUseCase(source LegacyTaxonomySource, categoryRepo repository.CategoryRepository) *TaxonomyMigrationUseCase {
	return &TaxonomyMigrationUseCase{
		source:       source,
		categoryRepo: categoryRepo,
	}
}

// NormalizeLegacyTaxonomy folds every legacy layout into one list of
// categories. Categories found under both roots are merged by name. Flat
// services are attached through categoryId, which may hold either the
// category's key or its name; services that match nothing are returned as
// orphans.
func NormalizeLegacyTaxonomy(trees map[string]map[string]interface{}) ([]*LegacyCategory, []string) {
	byName := make(map[string]*LegacyCategory)
	byKey := make(map[string]*LegacyCategory)

	for _, root := range []string{"category", "categories"} {
		for key, raw := range trees[root] {
			node, ok := raw.(map[string]interface{})
			if !ok {
				continue
			}
			name := stringField(node, "name")
			if name == "" {
				name = key
			}
			name = strings.TrimSpace(name)

			cat, exists := byName[name]
			if !exists {
				cat = &LegacyCategory{Name: name}
				byName[name] = cat
			}
			if cat.Image == "" {
				cat.Image = stringField(node, "image")
			}
			byKey[key] = cat

			for _, childKey := range legacyChildKeys {
				children, ok := node[childKey].(map[string]interface{})
				if !ok {
					continue
				}
				for subKey, subRaw := range children {
					subNode, ok := subRaw.(map[string]interface{})
					if !ok {
						continue
					}
					subName := stringField(subNode, "name")
					if subName == "" {
						subName = subKey
					}
					cat.addSubCategory(strings.TrimSpace(subName), stringField(subNode, "image"))
				}
			}
		}
	}

	var orphans []string
	for key, raw := range trees["services"] {
		node, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		name := stringField(node, "name")
		if name == "" {
			name = key
		}
		categoryID := stringField(node, "categoryId")

		cat := byKey[categoryID]
		if cat == nil {
			cat = byName[categoryID]
		}
		if cat == nil {
			orphans = append(orphans, key)
			continue
		}
		cat.addService(strings.TrimSpace(name), stringField(node, "image"))
	}

	categories := make([]*LegacyCategory, 0, len(byName))
	for _, cat := range byName {
		sort.Slice(cat.SubCategories, func(i, j int) bool { return cat.SubCategories[i].Name < cat.SubCategories[j].Name })
		sort.Slice(cat.Services, func(i, j int) bool { return cat.Services[i].Name < cat.Services[j].Name })
		categories = append(categories, cat)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
	sort.Strings(orphans)
	return categories, orphans
}

func (c *LegacyCategory) addSubCategory(name, image string) {
	for _, s := range c.SubCategories {
		if s.Name == name {
			return
		}
	}
	c.SubCategories = append(c.SubCategories, &entity.SubCategory{Name: name, Image: image, CategoryName: c.Name})
}

func (c *LegacyCategory) addService(name, image string) {
	for _, s := range c.Services {
		if s.Name == name {
			return
		}
	}
	c.Services = append(c.Services, &entity.Service{Name: name, Image: image, CategoryName: c.Name})
}

func stringField(node map[string]interface{}, key string) string {
	if v, ok := node[key].(string); ok {
		return v
	}
	return ""
}

// Migrate copies the legacy taxonomy into the category store. Nodes that
// already exist are left alone and counted as skipped.
func (uc *TaxonomyMigrationUseCase) Migrate(ctx context.Context, dryRun bool) (*MigrationReport, error) {
	trees, err := uc.source.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	categories, orphans := NormalizeLegacyTaxonomy(trees)
	report := &MigrationReport{DryRun: dryRun, Orphans: orphans}

	for _, cat := range categories {
		if dryRun {
			report.CategoriesCreated++
			report.SubCategoriesCreated += len(cat.SubCategories)
			report.ServicesCreated += len(cat.Services)
			continue
		}

		created, err := skipExisting(uc.categoryRepo.CreateCategory(ctx, &entity.Category{Name: cat.Name, Image: cat.Image}))
		if err != nil {
			return report, err
		}
		report.count(created, &report.CategoriesCreated)

		for _, sub := range cat.SubCategories {
			created, err := skipExisting(uc.categoryRepo.CreateSubCategory(ctx, sub))
			if err != nil {
				return report, err
			}
			report.count(created, &report.SubCategoriesCreated)
		}
		for _, svc := range cat.Services {
			created, err := skipExisting(uc.categoryRepo.CreateService(ctx, svc))
			if err != nil {
				return report, err
			}
			report.count(created, &report.ServicesCreated)
		}
	}

	for _, key := range orphans {
		logger.Warn("Legacy service %q references an unknown category", key)
	}
	logger.Info("Taxonomy migration (dry run: %t): %d categories, %d sub-categories, %d services, %d skipped",
		dryRun, report.CategoriesCreated, report.SubCategoriesCreated, report.ServicesCreated, report.Skipped)
	return report, nil
}

func skipExisting(err error) (bool, error) {
	if err == nil {
		return true, nil
	}
	if errors.Is(err, "CONFLICT") {
		return false, nil
	}
	return false, err
}

func (r *MigrationReport) count(created bool, counter *int) {
	if created {
		*counter++
	} else {
		r.Skipped++
	}
}

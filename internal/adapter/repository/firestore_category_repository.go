package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"peopleconnect/internal/domain/entity"
	"peopleconnect/internal/domain/repository"
	"peopleconnect/pkg/errors"
)

const categoriesCollection = "categories"

type firestoreCategoryRepository struct {
	client *firestore.Client
}

func NewFirestoreCategoryRepository(client *firestore.Client) repository.CategoryRepository {
	return &firestoreCategoryRepository{
		client: client,
	}
}

func (r *firestoreCategoryRepository) categoryRef(name string) *firestore.DocumentRef {
	return r.client.Collection(categoriesCollection).Doc(name)
}

func (r *firestoreCategoryRepository) childRef(categoryName string, kind entity.ChildKind, name string) *firestore.DocumentRef {
	return r.categoryRef(categoryName).Collection(string(kind)).Doc(name)
}

func (r *firestoreCategoryRepository) GetCategory(ctx context.Context, name string) (*entity.Category, error) {
	doc, err := r.categoryRef(name).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Category", err)
		}
		return nil, errors.Internal("Failed to get category", err)
	}

	var category entity.Category
	if err := doc.DataTo(&category); err != nil {
		return nil, errors.Internal("Failed to parse category data", err)
	}
	category.Name = doc.Ref.ID

	return &category, nil
}

func (r *firestoreCategoryRepository) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	docs, err := r.client.Collection(categoriesCollection).OrderBy("name", firestore.Asc).Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to list categories", err)
	}

	categories := make([]*entity.Category, 0, len(docs))
	for _, doc := range docs {
		var category entity.Category
		if err := doc.DataTo(&category); err != nil {
			return nil, errors.Internal("Failed to parse category data", err)
		}
		category.Name = doc.Ref.ID
		categories = append(categories, &category)
	}

	return categories, nil
}

func (r *firestoreCategoryRepository) CreateCategory(ctx context.Context, category *entity.Category) error {
	now := time.Now()
	if category.CreatedAt.IsZero() {
		category.CreatedAt = now
	}
	category.UpdatedAt = now

	// Create fails on an existing document, which is the duplicate check.
	if _, err := r.categoryRef(category.Name).Create(ctx, category); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return errors.Conflict("Category already exists")
		}
		return errors.Internal("Failed to create category", err)
	}

	return nil
}

func (r *firestoreCategoryRepository) DeleteCategory(ctx context.Context, name string) error {
	ref := r.categoryRef(name)

	bw := r.client.BulkWriter(ctx)
	var jobs []*firestore.BulkWriterJob
	for _, kind := range []entity.ChildKind{entity.ChildSubCategory, entity.ChildService} {
		children, err := ref.Collection(string(kind)).DocumentRefs(ctx).GetAll()
		if err != nil {
			bw.End()
			return errors.Internal("Failed to list category children", err)
		}
		for _, child := range children {
			job, err := bw.Delete(child)
			if err != nil {
				bw.End()
				return errors.Internal("Failed to queue child delete", err)
			}
			jobs = append(jobs, job)
		}
	}
	job, err := bw.Delete(ref)
	if err != nil {
		bw.End()
		return errors.Internal("Failed to queue category delete", err)
	}
	jobs = append(jobs, job)
	bw.End()

	for _, job := range jobs {
		if _, err := job.Results(); err != nil {
			return errors.Internal("Failed to delete category", err)
		}
	}

	return nil
}

func (r *firestoreCategoryRepository) ListSubCategories(ctx context.Context, categoryName string) ([]*entity.SubCategory, error) {
	docs, err := r.categoryRef(categoryName).Collection(string(entity.ChildSubCategory)).Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to list sub-categories", err)
	}

	subs := make([]*entity.SubCategory, 0, len(docs))
	for _, doc := range docs {
		var sub entity.SubCategory
		if err := doc.DataTo(&sub); err != nil {
			return nil, errors.Internal("Failed to parse sub-category data", err)
		}
		sub.Name = doc.Ref.ID
		sub.CategoryName = categoryName
		subs = append(subs, &sub)
	}

	return subs, nil
}

func (r *firestoreCategoryRepository) CreateSubCategory(ctx context.Context, sub *entity.SubCategory) error {
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = time.Now()
	}
	return r.createChild(ctx, sub.CategoryName, entity.ChildSubCategory, sub.Name, sub, "Sub-category")
}

func (r *firestoreCategoryRepository) DeleteSubCategory(ctx context.Context, categoryName, name string) error {
	return r.deleteChild(ctx, categoryName, entity.ChildSubCategory, name, "Sub-category")
}

func (r *firestoreCategoryRepository) ListServices(ctx context.Context, categoryName string) ([]*entity.Service, error) {
	docs, err := r.categoryRef(categoryName).Collection(string(entity.ChildService)).Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to list services", err)
	}

	services := make([]*entity.Service, 0, len(docs))
	for _, doc := range docs {
		var service entity.Service
		if err := doc.DataTo(&service); err != nil {
			return nil, errors.Internal("Failed to parse service data", err)
		}
		service.Name = doc.Ref.ID
		service.CategoryName = categoryName
		services = append(services, &service)
	}

	return services, nil
}

func (r *firestoreCategoryRepository) CreateService(ctx context.Context, service *entity.Service) error {
	if service.CreatedAt.IsZero() {
		service.CreatedAt = time.Now()
	}
	return r.createChild(ctx, service.CategoryName, entity.ChildService, service.Name, service, "Service")
}

func (r *firestoreCategoryRepository) DeleteService(ctx context.Context, categoryName, name string) error {
	return r.deleteChild(ctx, categoryName, entity.ChildService, name, "Service")
}

func (r *firestoreCategoryRepository) createChild(ctx context.Context, categoryName string, kind entity.ChildKind, name string, data interface{}, resource string) error {
	if _, err := r.childRef(categoryName, kind, name).Create(ctx, data); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return errors.Conflict(resource + " already exists in this category")
		}
		return errors.Internal("Failed to create "+resource, err)
	}
	return nil
}

func (r *firestoreCategoryRepository) deleteChild(ctx context.Context, categoryName string, kind entity.ChildKind, name, resource string) error {
	// Delete on a missing document succeeds silently unless we demand it exists.
	if _, err := r.childRef(categoryName, kind, name).Delete(ctx, firestore.Exists); err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound(resource, err)
		}
		return errors.Internal("Failed to delete "+resource, err)
	}
	return nil
}

package infrastructure

import (
	"context"

	"hamperhouse/storefront-service/internal/app/storefront/entity"
)

type MessagePublisher interface {
	PublishMessage(ctx context.Context, key string, value []byte) error
	Close() error
}

// CatalogAPI - внешний REST API, владелец всех сущностей каталога
// Списки возвращаются в порядке API; не-2xx ответы приходят как *http.APIError
type CatalogAPI interface {
	ListCategories(ctx context.Context, slug string) ([]entity.Category, error)
	CreateCategory(ctx context.Context, payload entity.MultipartPayload) (*entity.Category, error)
	UpdateCategory(ctx context.Context, id int, payload entity.MultipartPayload) (*entity.Category, error)
	DeleteCategory(ctx context.Context, id int) error

	ListSubcategories(ctx context.Context, categoryID int) ([]entity.Subcategory, error)
	CreateSubcategory(ctx context.Context, payload entity.MultipartPayload) (*entity.Subcategory, error)
	UpdateSubcategory(ctx context.Context, id int, payload entity.MultipartPayload) (*entity.Subcategory, error)
	DeleteSubcategory(ctx context.Context, id int) error

	ListProducts(ctx context.Context, filter entity.ProductFilter) ([]entity.Product, error)
	CreateProduct(ctx context.Context, payload entity.MultipartPayload) (*entity.Product, error)
	UpdateProduct(ctx context.Context, id int, payload entity.MultipartPayload) (*entity.Product, error)
	DeleteProduct(ctx context.Context, id int) error

	ListSubmissions(ctx context.Context, search string) ([]entity.ContactSubmission, error)
	CreateSubmission(ctx context.Context, req entity.SubmissionRequest) error
	DeleteSubmission(ctx context.Context, id int) error
}

package service

import (
	"context"

	"hamperhouse/storefront-service/internal/app/storefront/entity"
)

// CatalogWarmer - то, что нужно прогреву кеша от каталога
type CatalogWarmer interface {
	ListCategories(ctx context.Context) []entity.CategoryView
	CategoryPage(ctx context.Context, categorySlug string) (*entity.CategoryPage, error)
}

var _ CatalogWarmer = (*CatalogService)(nil)

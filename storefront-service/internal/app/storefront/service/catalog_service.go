package service

import (
	"context"
	"fmt"
	"math/rand/v2"

	"hamperhouse/pkg/logger"
	"hamperhouse/storefront-service/internal/app/storefront/entity"
	"hamperhouse/storefront-service/internal/app/storefront/infrastructure"
	"hamperhouse/storefront-service/internal/app/storefront/repository"
)

// Ключи кеша ответов API
const (
	keyAllCategories         = "catalog:categories:all"
	keyCategoryBySlug        = "catalog:categories:slug:%s"
	keySubcategoriesByCat    = "catalog:subcategories:category:%d"
	keyProductsByCategory    = "catalog:products:category:%d"
	keyProductsBySubcategory = "catalog:products:subcategory:%d"
	keyProductBySlug         = "catalog:products:slug:%s"
)

// CatalogSettings - настройки витрины
type CatalogSettings struct {
	MediaBaseURL  string            // публичный адрес API для ссылок на изображения
	FeaturedLimit int               // максимум товаров на лендинге кампании
	RelatedLimit  int               // максимум похожих товаров на странице товара
	Campaigns     map[string]string // кампания -> slug категории
	CampaignOrder []string
}

// CatalogService загружает данные страниц витрины
// Все чтения идут через tag cache; списки при ошибке API отдаются пустыми,
// а ненайденная основная сущность страницы превращается в ошибку not found
type CatalogService struct {
	api      infrastructure.CatalogAPI
	cache    repository.TagCache
	settings CatalogSettings
	newRand  func() *rand.Rand
}

type CatalogOption func(*CatalogService)

// WithRandSource подменяет генератор случайных чисел (в тестах - с фиксированным seed)
func WithRandSource(newRand func() *rand.Rand) CatalogOption {
	return func(s *CatalogService) {
		s.newRand = newRand
	}
}

func NewCatalogService(api infrastructure.CatalogAPI, cache repository.TagCache, settings CatalogSettings, opts ...CatalogOption) *CatalogService {
	s := &CatalogService{
		api:      api,
		cache:    cache,
		settings: settings,
		newRand:  defaultRand,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Campaigns возвращает известные кампании в порядке конфигурации
func (s *CatalogService) Campaigns() []string {
	out := make([]string, 0, len(s.settings.CampaignOrder))
	for _, name := range s.settings.CampaignOrder {
		if _, ok := s.settings.Campaigns[name]; ok {
			out = append(out, name)
		}
	}
	return out
}

// MediaBaseURL - адрес, от которого строятся ссылки на изображения
func (s *CatalogService) MediaBaseURL() string {
	return s.settings.MediaBaseURL
}

// =============================================================================
// Загрузчики
// =============================================================================

// ListCategories возвращает все категории, при ошибке API - пустой список
func (s *CatalogService) ListCategories(ctx context.Context) []entity.CategoryView {
	items, err := cachedList(ctx, s.cache, keyAllCategories, repository.TagCategories, func(ctx context.Context) ([]entity.Category, error) {
		return s.api.ListCategories(ctx, "")
	})
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to load categories, rendering empty list")
		return []entity.CategoryView{}
	}
	return entity.ToCategoryViews(items, s.settings.MediaBaseURL)
}

// GetCategoryBySlug возвращает первую категорию с указанным slug
func (s *CatalogService) GetCategoryBySlug(ctx context.Context, slug string) (*entity.CategoryView, error) {
	key := fmt.Sprintf(keyCategoryBySlug, slug)
	items, err := cachedList(ctx, s.cache, key, repository.TagCategories, func(ctx context.Context) ([]entity.Category, error) {
		return s.api.ListCategories(ctx, slug)
	})
	if err != nil {
		logger.Error().Err(err).Str("slug", slug).Msg("Failed to load category")
		return nil, fmt.Errorf("%w: %s", ErrCategoryNotFound, slug)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrCategoryNotFound, slug)
	}

	view := entity.ToCategoryView(items[0], s.settings.MediaBaseURL)
	return &view, nil
}

// GetSubcategories возвращает подкатегории в порядке API
func (s *CatalogService) GetSubcategories(ctx context.Context, categoryID int) []entity.SubcategoryView {
	key := fmt.Sprintf(keySubcategoriesByCat, categoryID)
	items, err := cachedList(ctx, s.cache, key, repository.TagCategories, func(ctx context.Context) ([]entity.Subcategory, error) {
		return s.api.ListSubcategories(ctx, categoryID)
	})
	if err != nil {
		logger.Warn().Err(err).Int("category_id", categoryID).Msg("Failed to load subcategories, rendering empty list")
		return []entity.SubcategoryView{}
	}
	return entity.ToSubcategoryViews(items, s.settings.MediaBaseURL)
}

// GetSubcategoryBySlug ищет подкатегорию среди подкатегорий категории
func (s *CatalogService) GetSubcategoryBySlug(ctx context.Context, categoryID int, slug string) (*entity.SubcategoryView, error) {
	for _, sub := range s.GetSubcategories(ctx, categoryID) {
		if sub.Slug == slug {
			return &sub, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrSubcategoryNotFound, slug)
}

func (s *CatalogService) GetProductsByCategory(ctx context.Context, categoryID int) []entity.ProductView {
	key := fmt.Sprintf(keyProductsByCategory, categoryID)
	return s.productList(ctx, key, entity.ProductFilter{CategoryID: categoryID})
}

func (s *CatalogService) GetProductsBySubcategory(ctx context.Context, subcategoryID int) []entity.ProductView {
	key := fmt.Sprintf(keyProductsBySubcategory, subcategoryID)
	return s.productList(ctx, key, entity.ProductFilter{SubcategoryID: subcategoryID})
}

// GetProductBySlug возвращает первый товар с указанным slug
func (s *CatalogService) GetProductBySlug(ctx context.Context, slug string) (*entity.ProductView, error) {
	key := fmt.Sprintf(keyProductBySlug, slug)
	items, err := cachedList(ctx, s.cache, key, repository.TagProducts, func(ctx context.Context) ([]entity.Product, error) {
		return s.api.ListProducts(ctx, entity.ProductFilter{Slug: slug})
	})
	if err != nil {
		logger.Error().Err(err).Str("slug", slug).Msg("Failed to load product")
		return nil, fmt.Errorf("%w: %s", ErrProductNotFound, slug)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrProductNotFound, slug)
	}

	view := entity.ToProductView(items[0], s.settings.MediaBaseURL)
	return &view, nil
}

// FeaturedProducts - случайная выборка товаров категории с рейтингом
func (s *CatalogService) FeaturedProducts(ctx context.Context, categorySlug string) ([]entity.FeaturedProduct, error) {
	category, err := s.GetCategoryBySlug(ctx, categorySlug)
	if err != nil {
		return nil, err
	}

	products := s.GetProductsByCategory(ctx, category.ID)
	return SampleFeatured(products, s.settings.FeaturedLimit, s.newRand()), nil
}

func (s *CatalogService) productList(ctx context.Context, key string, filter entity.ProductFilter) []entity.ProductView {
	items, err := cachedList(ctx, s.cache, key, repository.TagProducts, func(ctx context.Context) ([]entity.Product, error) {
		return s.api.ListProducts(ctx, filter)
	})
	if err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("Failed to load products, rendering empty list")
		return []entity.ProductView{}
	}
	return entity.ToProductViews(items, s.settings.MediaBaseURL)
}

// =============================================================================
// Страницы
// =============================================================================

func (s *CatalogService) HomePage(ctx context.Context) *entity.HomePage {
	return &entity.HomePage{
		Categories: s.ListCategories(ctx),
		Campaigns:  s.Campaigns(),
	}
}

func (s *CatalogService) CategoryPage(ctx context.Context, categorySlug string) (*entity.CategoryPage, error) {
	category, err := s.GetCategoryBySlug(ctx, categorySlug)
	if err != nil {
		return nil, err
	}

	return &entity.CategoryPage{
		Category:      *category,
		Subcategories: s.GetSubcategories(ctx, category.ID),
		Products:      s.GetProductsByCategory(ctx, category.ID),
	}, nil
}

func (s *CatalogService) SubcategoryPage(ctx context.Context, categorySlug, subcategorySlug string) (*entity.SubcategoryPage, error) {
	category, err := s.GetCategoryBySlug(ctx, categorySlug)
	if err != nil {
		return nil, err
	}

	subcategory, err := s.GetSubcategoryBySlug(ctx, category.ID, subcategorySlug)
	if err != nil {
		return nil, err
	}

	return &entity.SubcategoryPage{
		Category:    *category,
		Subcategory: *subcategory,
		Products:    s.GetProductsBySubcategory(ctx, subcategory.ID),
	}, nil
}

// ProductPage - товар должен принадлежать категории из URL
func (s *CatalogService) ProductPage(ctx context.Context, categorySlug, productSlug string) (*entity.ProductPage, error) {
	category, err := s.GetCategoryBySlug(ctx, categorySlug)
	if err != nil {
		return nil, err
	}

	product, err := s.GetProductBySlug(ctx, productSlug)
	if err != nil {
		return nil, err
	}
	if product.CategoryID != category.ID {
		return nil, fmt.Errorf("%w: %s in category %s", ErrProductNotFound, productSlug, categorySlug)
	}

	others := make([]entity.ProductView, 0)
	for _, p := range s.GetProductsByCategory(ctx, category.ID) {
		if p.ID != product.ID {
			others = append(others, p)
		}
	}

	return &entity.ProductPage{
		Category: *category,
		Product:  *product,
		Related:  sample(others, s.settings.RelatedLimit, s.newRand()),
	}, nil
}

func (s *CatalogService) CampaignPage(ctx context.Context, campaign string) (*entity.CampaignPage, error) {
	categorySlug, ok := s.settings.Campaigns[campaign]
	if !ok || categorySlug == "" {
		return nil, fmt.Errorf("%w: %s", ErrCampaignNotFound, campaign)
	}

	category, err := s.GetCategoryBySlug(ctx, categorySlug)
	if err != nil {
		return nil, err
	}

	products := s.GetProductsByCategory(ctx, category.ID)

	return &entity.CampaignPage{
		Campaign: campaign,
		Category: *category,
		Featured: SampleFeatured(products, s.settings.FeaturedLimit, s.newRand()),
	}, nil
}

// cachedList читает список из кеша, при промахе - из API с сохранением под тегом
// Ошибки кеша не мешают ответу: запрос просто уходит в API
func cachedList[T any](ctx context.Context, cache repository.TagCache, key, tag string, load func(context.Context) ([]T, error)) ([]T, error) {
	if cache != nil {
		var items []T
		found, err := cache.Get(ctx, key, &items)
		if err != nil {
			logger.Warn().Err(err).Str("key", key).Msg("Cache read failed, falling back to API")
		} else if found {
			return items, nil
		}
	}

	items, err := load(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}

	if cache != nil {
		if err := cache.Set(ctx, key, items, tag); err != nil {
			logger.Warn().Err(err).Str("key", key).Msg("Cache write failed")
		}
	}

	return items, nil
}

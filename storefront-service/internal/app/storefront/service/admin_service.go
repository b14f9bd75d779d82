package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"hamperhouse/pkg/logger"
	"hamperhouse/pkg/metrics"
	"hamperhouse/storefront-service/internal/app/storefront/entity"
	"hamperhouse/storefront-service/internal/app/storefront/infrastructure"
	"hamperhouse/storefront-service/internal/app/storefront/repository"
	"hamperhouse/storefront-service/internal/app/storefront/util"

	"golang.org/x/sync/errgroup"
)

const (
	entityCategory    = "category"
	entitySubcategory = "subcategory"
	entityProduct     = "product"
	entitySubmission  = "submission"

	actionCreate = "create"
	actionUpdate = "update"
	actionDelete = "delete"
)

// AdminService - операции админки над каталогом
// Чтения идут напрямую в API, минуя кеш. После успешной записи сбрасываются
// оба тега кеша, пишется аудит и отправляется событие в Kafka
type AdminService struct {
	api       infrastructure.CatalogAPI
	cache     repository.TagCache
	audit     repository.AuditRepository    // nil если MongoDB не настроен
	publisher infrastructure.MessagePublisher // nil если Kafka выключена
	mediaBase string
	now       func() time.Time
}

func NewAdminService(
	api infrastructure.CatalogAPI,
	cache repository.TagCache,
	audit repository.AuditRepository,
	publisher infrastructure.MessagePublisher,
	mediaBase string,
) *AdminService {
	return &AdminService{
		api:       api,
		cache:     cache,
		audit:     audit,
		publisher: publisher,
		mediaBase: mediaBase,
		now:       time.Now,
	}
}

// =============================================================================
// Чтение
// =============================================================================

func (s *AdminService) ListCategories(ctx context.Context) ([]entity.CategoryView, error) {
	items, err := s.api.ListCategories(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return entity.ToCategoryViews(items, s.mediaBase), nil
}

func (s *AdminService) ListSubcategories(ctx context.Context, categoryID int) ([]entity.SubcategoryView, error) {
	items, err := s.api.ListSubcategories(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subcategories: %w", err)
	}
	return entity.ToSubcategoryViews(items, s.mediaBase), nil
}

func (s *AdminService) ListProducts(ctx context.Context, filter entity.ProductFilter) ([]entity.ProductView, error) {
	items, err := s.api.ListProducts(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return entity.ToProductViews(items, s.mediaBase), nil
}

// Stats запрашивает три коллекции параллельно
// Результат все или ничего: при любой ошибке возвращаются нули
func (s *AdminService) Stats(ctx context.Context) entity.AdminStats {
	var stats entity.AdminStats

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		items, err := s.api.ListCategories(gctx, "")
		if err != nil {
			return fmt.Errorf("categories: %w", err)
		}
		stats.Categories = len(items)
		return nil
	})

	g.Go(func() error {
		items, err := s.api.ListSubcategories(gctx, 0)
		if err != nil {
			return fmt.Errorf("subcategories: %w", err)
		}
		stats.Subcategories = len(items)
		return nil
	})

	g.Go(func() error {
		items, err := s.api.ListProducts(gctx, entity.ProductFilter{})
		if err != nil {
			return fmt.Errorf("products: %w", err)
		}
		stats.Products = len(items)
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error().Err(err).Msg("Failed to load admin stats")
		return entity.AdminStats{}
	}

	return stats
}

// =============================================================================
// Запись
// =============================================================================

func (s *AdminService) SaveCategory(ctx context.Context, actor string, form entity.CategoryForm) (*entity.CategoryView, error) {
	name := strings.TrimSpace(form.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}

	payload := buildPayload(map[string]string{
		"name":        name,
		"slug":        util.Slugify(name),
		"description": form.Description,
	}, form.Image, form.ImageURL)

	var (
		saved  *entity.Category
		err    error
		action = actionCreate
	)
	if form.ID > 0 {
		action = actionUpdate
		saved, err = s.api.UpdateCategory(ctx, form.ID, payload)
	} else {
		saved, err = s.api.CreateCategory(ctx, payload)
	}
	if err != nil {
		s.mutationFailed(entityCategory, action, form.ID, err)
		return nil, fmt.Errorf("failed to save category: %w", err)
	}

	id := pickID(saved.ID, form.ID)
	s.afterMutation(ctx, actor, entityCategory, action, id, name)

	view := entity.ToCategoryView(*saved, s.mediaBase)
	view.ID = id
	return &view, nil
}

func (s *AdminService) SaveSubcategory(ctx context.Context, actor string, form entity.SubcategoryForm) (*entity.SubcategoryView, error) {
	name := strings.TrimSpace(form.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if form.CategoryID <= 0 {
		return nil, fmt.Errorf("%w: category is required", ErrValidation)
	}

	payload := buildPayload(map[string]string{
		"name":        name,
		"slug":        util.Slugify(name),
		"description": form.Description,
		"category_id": strconv.Itoa(form.CategoryID),
	}, form.Image, form.ImageURL)

	var (
		saved  *entity.Subcategory
		err    error
		action = actionCreate
	)
	if form.ID > 0 {
		action = actionUpdate
		saved, err = s.api.UpdateSubcategory(ctx, form.ID, payload)
	} else {
		saved, err = s.api.CreateSubcategory(ctx, payload)
	}
	if err != nil {
		s.mutationFailed(entitySubcategory, action, form.ID, err)
		return nil, fmt.Errorf("failed to save subcategory: %w", err)
	}

	id := pickID(saved.ID, form.ID)
	s.afterMutation(ctx, actor, entitySubcategory, action, id, name)

	view := entity.ToSubcategoryView(*saved, s.mediaBase)
	view.ID = id
	return &view, nil
}

// SaveProduct проверяет, что подкатегория принадлежит выбранной категории
func (s *AdminService) SaveProduct(ctx context.Context, actor string, form entity.ProductForm) (*entity.ProductView, error) {
	name := strings.TrimSpace(form.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if form.CategoryID <= 0 {
		return nil, fmt.Errorf("%w: category is required", ErrValidation)
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(form.Price), 64)
	if err != nil || price < 0 {
		return nil, fmt.Errorf("%w: price must be a non-negative number", ErrValidation)
	}

	subcategoryID := ""
	if form.SubcategoryID != nil {
		if err := s.checkSubcategory(ctx, form.CategoryID, *form.SubcategoryID); err != nil {
			return nil, err
		}
		subcategoryID = strconv.Itoa(*form.SubcategoryID)
	}

	included := form.IncludedItems
	if included == nil {
		included = []string{}
	}
	includedJSON, err := json.Marshal(included)
	if err != nil {
		return nil, fmt.Errorf("failed to encode included items: %w", err)
	}

	payload := buildPayload(map[string]string{
		"name":           name,
		"slug":           util.Slugify(name),
		"description":    form.Description,
		"price":          strings.TrimSpace(form.Price),
		"packaging":      form.Packaging,
		"included_items": string(includedJSON),
		"category_id":    strconv.Itoa(form.CategoryID),
		"subcategory_id": subcategoryID,
	}, form.Image, form.ImageURL)

	var (
		saved  *entity.Product
		action = actionCreate
	)
	if form.ID > 0 {
		action = actionUpdate
		saved, err = s.api.UpdateProduct(ctx, form.ID, payload)
	} else {
		saved, err = s.api.CreateProduct(ctx, payload)
	}
	if err != nil {
		s.mutationFailed(entityProduct, action, form.ID, err)
		return nil, fmt.Errorf("failed to save product: %w", err)
	}

	id := pickID(saved.ID, form.ID)
	s.afterMutation(ctx, actor, entityProduct, action, id, name)

	view := entity.ToProductView(*saved, s.mediaBase)
	view.ID = id
	return &view, nil
}

func (s *AdminService) checkSubcategory(ctx context.Context, categoryID, subcategoryID int) error {
	subs, err := s.api.ListSubcategories(ctx, categoryID)
	if err != nil {
		return fmt.Errorf("failed to verify subcategory: %w", err)
	}
	for _, sub := range subs {
		if sub.ID == subcategoryID && sub.CategoryID == categoryID {
			return nil
		}
	}
	return fmt.Errorf("%w: subcategory %d, category %d", ErrSubcategoryMismatch, subcategoryID, categoryID)
}

func (s *AdminService) DeleteCategory(ctx context.Context, actor string, id int, confirmed bool) error {
	return s.remove(ctx, actor, entityCategory, id, confirmed, s.api.DeleteCategory)
}

func (s *AdminService) DeleteSubcategory(ctx context.Context, actor string, id int, confirmed bool) error {
	return s.remove(ctx, actor, entitySubcategory, id, confirmed, s.api.DeleteSubcategory)
}

func (s *AdminService) DeleteProduct(ctx context.Context, actor string, id int, confirmed bool) error {
	return s.remove(ctx, actor, entityProduct, id, confirmed, s.api.DeleteProduct)
}

func (s *AdminService) DeleteSubmission(ctx context.Context, actor string, id int, confirmed bool) error {
	return s.remove(ctx, actor, entitySubmission, id, confirmed, s.api.DeleteSubmission)
}

// remove без подтверждения не доходит до API
func (s *AdminService) remove(ctx context.Context, actor, entityName string, id int, confirmed bool, del func(context.Context, int) error) error {
	if !confirmed {
		return ErrConfirmationRequired
	}

	if err := del(ctx, id); err != nil {
		s.mutationFailed(entityName, actionDelete, id, err)
		return fmt.Errorf("failed to delete %s %d: %w", entityName, id, err)
	}

	s.afterMutation(ctx, actor, entityName, actionDelete, id, "")
	return nil
}

// =============================================================================
// Аудит
// =============================================================================

// AuditLog возвращает последние действия; без MongoDB - пустой список
func (s *AdminService) AuditLog(ctx context.Context, limit int64) ([]entity.AuditEntry, error) {
	if s.audit == nil {
		return []entity.AuditEntry{}, nil
	}
	entries, err := s.audit.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	return entries, nil
}

// =============================================================================
// Helpers
// =============================================================================

// afterMutation: инвалидация кеша, аудит и событие; их ошибки не отменяют запись
func (s *AdminService) afterMutation(ctx context.Context, actor, entityName, action string, id int, name string) {
	metrics.AdminMutations.WithLabelValues(entityName, action, "success").Inc()

	if s.cache != nil {
		if err := s.cache.InvalidateTags(ctx, repository.TagCategories, repository.TagProducts); err != nil {
			logger.Error().Err(err).Str("entity", entityName).Msg("Failed to invalidate cache tags")
		}
	}

	now := s.now().UTC()

	if s.audit != nil {
		entry := &entity.AuditEntry{
			Actor:    actor,
			Action:   action,
			Entity:   entityName,
			EntityID: id,
			Name:     name,
			At:       now,
		}
		if err := s.audit.Record(ctx, entry); err != nil {
			logger.Error().Err(err).Str("entity", entityName).Int("id", id).Msg("Failed to record audit entry")
		}
	}

	s.publish(ctx, entity.StorefrontEvent{
		EventType: eventType(entityName, action),
		Entity:    entityName,
		EntityID:  id,
		Name:      name,
		Actor:     actor,
		Timestamp: now,
	})

	logger.Info().
		Str("actor", actor).
		Str("entity", entityName).
		Str("action", action).
		Int("id", id).
		Msg("Admin mutation applied")
}

func (s *AdminService) mutationFailed(entityName, action string, id int, err error) {
	metrics.AdminMutations.WithLabelValues(entityName, action, "failed").Inc()
	logger.Error().
		Err(err).
		Str("entity", entityName).
		Str("action", action).
		Int("id", id).
		Msg("Admin mutation failed")
}

func (s *AdminService) publish(ctx context.Context, event entity.StorefrontEvent) {
	if s.publisher == nil {
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Error().Err(err).Str("event_type", event.EventType).Msg("Failed to marshal event")
		return
	}

	key := fmt.Sprintf("%s:%d", event.Entity, event.EntityID)
	if err := s.publisher.PublishMessage(ctx, key, data); err != nil {
		logger.Error().Err(err).Str("event_type", event.EventType).Msg("Failed to publish event")
	}
}

// eventType: category + create -> CATEGORY_CREATED
func eventType(entityName, action string) string {
	suffix := map[string]string{
		actionCreate: "CREATED",
		actionUpdate: "UPDATED",
		actionDelete: "DELETED",
	}[action]
	return strings.ToUpper(entityName) + "_" + suffix
}

func buildPayload(fields map[string]string, image *entity.ImageUpload, imageURL string) entity.MultipartPayload {
	if image == nil || image.Reader == nil {
		image = nil
		fields["image"] = imageURL
	}
	return entity.MultipartPayload{Fields: fields, Image: image}
}

func pickID(savedID, formID int) int {
	if savedID > 0 {
		return savedID
	}
	return formID
}

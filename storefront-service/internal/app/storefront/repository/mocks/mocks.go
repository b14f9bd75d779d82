package mocks

import (
	"context"
	"encoding/json"
	"sync"

	"hamperhouse/storefront-service/internal/app/storefront/entity"

	"github.com/stretchr/testify/mock"
)

// MockCatalogAPI мок для внешнего REST API
type MockCatalogAPI struct {
	mock.Mock
}

func (m *MockCatalogAPI) ListCategories(ctx context.Context, slug string) ([]entity.Category, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Category), args.Error(1)
}

func (m *MockCatalogAPI) CreateCategory(ctx context.Context, payload entity.MultipartPayload) (*entity.Category, error) {
	args := m.Called(ctx, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Category), args.Error(1)
}

func (m *MockCatalogAPI) UpdateCategory(ctx context.Context, id int, payload entity.MultipartPayload) (*entity.Category, error) {
	args := m.Called(ctx, id, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Category), args.Error(1)
}

func (m *MockCatalogAPI) DeleteCategory(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCatalogAPI) ListSubcategories(ctx context.Context, categoryID int) ([]entity.Subcategory, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Subcategory), args.Error(1)
}

func (m *MockCatalogAPI) CreateSubcategory(ctx context.Context, payload entity.MultipartPayload) (*entity.Subcategory, error) {
	args := m.Called(ctx, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Subcategory), args.Error(1)
}

func (m *MockCatalogAPI) UpdateSubcategory(ctx context.Context, id int, payload entity.MultipartPayload) (*entity.Subcategory, error) {
	args := m.Called(ctx, id, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Subcategory), args.Error(1)
}

func (m *MockCatalogAPI) DeleteSubcategory(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCatalogAPI) ListProducts(ctx context.Context, filter entity.ProductFilter) ([]entity.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Product), args.Error(1)
}

func (m *MockCatalogAPI) CreateProduct(ctx context.Context, payload entity.MultipartPayload) (*entity.Product, error) {
	args := m.Called(ctx, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *MockCatalogAPI) UpdateProduct(ctx context.Context, id int, payload entity.MultipartPayload) (*entity.Product, error) {
	args := m.Called(ctx, id, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *MockCatalogAPI) DeleteProduct(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCatalogAPI) ListSubmissions(ctx context.Context, search string) ([]entity.ContactSubmission, error) {
	args := m.Called(ctx, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.ContactSubmission), args.Error(1)
}

func (m *MockCatalogAPI) CreateSubmission(ctx context.Context, req entity.SubmissionRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockCatalogAPI) DeleteSubmission(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTagCache мок для TagCache
type MockTagCache struct {
	mock.Mock
}

// Get при попадании копирует значение из третьего аргумента Return через JSON
func (m *MockTagCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	args := m.Called(ctx, key, dest)
	if args.Bool(0) && len(args) > 2 && args.Get(2) != nil {
		data, _ := json.Marshal(args.Get(2))
		_ = json.Unmarshal(data, dest)
	}
	return args.Bool(0), args.Error(1)
}

func (m *MockTagCache) Set(ctx context.Context, key string, value any, tags ...string) error {
	args := m.Called(ctx, key, value, tags)
	return args.Error(0)
}

func (m *MockTagCache) InvalidateTags(ctx context.Context, tags ...string) error {
	args := m.Called(ctx, tags)
	return args.Error(0)
}

// MockAuditRepository мок для AuditRepository
type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) Record(ctx context.Context, entry *entity.AuditEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditRepository) List(ctx context.Context, limit int64) ([]entity.AuditEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.AuditEntry), args.Error(1)
}

// MockMessagePublisher мок для Kafka MessagePublisher
type MockMessagePublisher struct {
	mock.Mock
	mu       sync.Mutex
	Messages [][]byte
}

func (m *MockMessagePublisher) PublishMessage(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	m.Messages = append(m.Messages, value)
	m.mu.Unlock()
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockMessagePublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

package processor

import (
	"context"
	"errors"
	"testing"

	"hamperhouse/storefront-service/internal/app/storefront/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCatalogWarmer мок для service.CatalogWarmer
type MockCatalogWarmer struct {
	mock.Mock
}

func (m *MockCatalogWarmer) ListCategories(ctx context.Context) []entity.CategoryView {
	args := m.Called(ctx)
	return args.Get(0).([]entity.CategoryView)
}

func (m *MockCatalogWarmer) CategoryPage(ctx context.Context, categorySlug string) (*entity.CategoryPage, error) {
	args := m.Called(ctx, categorySlug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.CategoryPage), args.Error(1)
}

func TestNewCacheWarmer(t *testing.T) {
	mockSvc := new(MockCatalogWarmer)

	warmer := NewCacheWarmer(mockSvc, 10)

	assert.NotNil(t, warmer)
	assert.NotNil(t, warmer.cron)
	assert.NotNil(t, warmer.limiter)
}

func TestCacheWarmer_WarmOnce_AllPages(t *testing.T) {
	// Arrange
	mockSvc := new(MockCatalogWarmer)
	warmer := NewCacheWarmer(mockSvc, 1000)

	mockSvc.On("ListCategories", mock.Anything).Return([]entity.CategoryView{
		{ID: 1, Slug: "baby-hampers"},
		{ID: 2, Slug: "wedding-hampers"},
	})
	mockSvc.On("CategoryPage", mock.Anything, mock.AnythingOfType("string")).Return(&entity.CategoryPage{}, nil)

	// Act
	warmed, err := warmer.WarmOnce(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 2, warmed)
	mockSvc.AssertCalled(t, "CategoryPage", mock.Anything, "baby-hampers")
	mockSvc.AssertCalled(t, "CategoryPage", mock.Anything, "wedding-hampers")
}

func TestCacheWarmer_WarmOnce_PartialFailure(t *testing.T) {
	mockSvc := new(MockCatalogWarmer)
	warmer := NewCacheWarmer(mockSvc, 1000)

	mockSvc.On("ListCategories", mock.Anything).Return([]entity.CategoryView{
		{ID: 1, Slug: "baby-hampers"},
		{ID: 2, Slug: "gone"},
	})
	mockSvc.On("CategoryPage", mock.Anything, "baby-hampers").Return(&entity.CategoryPage{}, nil)
	mockSvc.On("CategoryPage", mock.Anything, "gone").Return(nil, errors.New("category not found"))

	warmed, err := warmer.WarmOnce(context.Background())

	assert.Error(t, err)
	assert.Equal(t, 1, warmed)
}

func TestCacheWarmer_WarmOnce_CancelledContext(t *testing.T) {
	mockSvc := new(MockCatalogWarmer)
	warmer := NewCacheWarmer(mockSvc, 1000)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mockSvc.On("ListCategories", mock.Anything).Return([]entity.CategoryView{{ID: 1, Slug: "baby-hampers"}})

	warmed, err := warmer.WarmOnce(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, warmed)
	mockSvc.AssertNotCalled(t, "CategoryPage", mock.Anything, mock.Anything)
}

func TestCacheWarmer_Start_InvalidSchedule(t *testing.T) {
	warmer := NewCacheWarmer(new(MockCatalogWarmer), 10)

	err := warmer.Start(context.Background(), "not a schedule")

	assert.Error(t, err)
}

func TestCacheWarmer_Start_RegistersEntry(t *testing.T) {
	warmer := NewCacheWarmer(new(MockCatalogWarmer), 10)

	err := warmer.Start(context.Background(), "*/15 * * * *")
	defer warmer.Stop()

	require.NoError(t, err)
	assert.Len(t, warmer.GetEntries(), 1)
}

package repository

import (
	"context"
	"testing"
	"time"

	"hamperhouse/storefront-service/internal/app/storefront/entity"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// TagCacheTestSuite тестовый suite для Redis tag cache
type TagCacheTestSuite struct {
	suite.Suite
	miniRedis *miniredis.Miniredis
	client    *redis.Client
	cache     TagCache
}

func TestTagCacheSuite(t *testing.T) {
	suite.Run(t, new(TagCacheTestSuite))
}

func (s *TagCacheTestSuite) SetupSuite() {
	var err error
	s.miniRedis, err = miniredis.Run()
	require.NoError(s.T(), err)

	s.client = redis.NewClient(&redis.Options{
		Addr: s.miniRedis.Addr(),
	})

	s.cache = NewRedisTagCache(s.client, time.Hour)
}

func (s *TagCacheTestSuite) SetupTest() {
	s.miniRedis.FlushAll()
}

func (s *TagCacheTestSuite) TearDownSuite() {
	s.client.Close()
	s.miniRedis.Close()
}

func (s *TagCacheTestSuite) TestGet_Miss() {
	var out []entity.Category

	found, err := s.cache.Get(context.Background(), "catalog:categories:all", &out)

	s.NoError(err)
	s.False(found)
	s.Nil(out)
}

func (s *TagCacheTestSuite) TestSetThenGet() {
	ctx := context.Background()

	// Arrange
	items := []entity.Category{{ID: 1, Name: "Baby", Slug: "baby"}}
	s.NoError(s.cache.Set(ctx, "catalog:categories:all", items, TagCategories))

	// Act
	var out []entity.Category
	found, err := s.cache.Get(ctx, "catalog:categories:all", &out)

	// Assert
	s.NoError(err)
	s.True(found)
	s.Equal(items, out)
	s.True(s.miniRedis.Exists("cache:tag:categories"))
	s.Greater(s.miniRedis.TTL("catalog:categories:all"), time.Duration(0))
}

func (s *TagCacheTestSuite) TestInvalidateTags_RemovesEveryRegisteredKey() {
	ctx := context.Background()

	// Arrange
	s.NoError(s.cache.Set(ctx, "catalog:categories:slug:baby", []int{1}, TagCategories))
	s.NoError(s.cache.Set(ctx, "catalog:subcategories:category:1", []int{2}, TagCategories))
	s.NoError(s.cache.Set(ctx, "catalog:products:category:1", []int{3}, TagProducts))

	// Act
	err := s.cache.InvalidateTags(ctx, TagCategories)

	// Assert
	s.NoError(err)
	s.False(s.miniRedis.Exists("catalog:categories:slug:baby"))
	s.False(s.miniRedis.Exists("catalog:subcategories:category:1"))
	s.False(s.miniRedis.Exists("cache:tag:categories"))
	s.True(s.miniRedis.Exists("catalog:products:category:1"))

	var out []int
	found, err := s.cache.Get(ctx, "catalog:categories:slug:baby", &out)
	s.NoError(err)
	s.False(found)
}

func (s *TagCacheTestSuite) TestInvalidateTags_BothTags() {
	ctx := context.Background()

	s.NoError(s.cache.Set(ctx, "catalog:categories:all", []int{1}, TagCategories))
	s.NoError(s.cache.Set(ctx, "catalog:products:slug:x", []int{2}, TagProducts))

	s.NoError(s.cache.InvalidateTags(ctx, TagCategories, TagProducts))

	s.Empty(s.miniRedis.Keys())
}

func (s *TagCacheTestSuite) TestInvalidateTags_UnknownTag() {
	s.NoError(s.cache.InvalidateTags(context.Background(), "nothing"))
}

func (s *TagCacheTestSuite) TestGet_RedisDown() {
	s.miniRedis.SetError("LOADING")
	defer s.miniRedis.SetError("")

	var out []int
	found, err := s.cache.Get(context.Background(), "catalog:categories:all", &out)

	s.Error(err)
	s.False(found)
}

func TestKeyPrefix(t *testing.T) {
	require.Equal(t, "catalog:products", keyPrefix("catalog:products:slug:x"))
	require.Equal(t, "plain", keyPrefix("plain"))
}

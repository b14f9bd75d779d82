package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	// Act
	cfg, err := Load()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Address())
	assert.Equal(t, "http://localhost:8000/api", cfg.API.InternalURL)
	assert.Equal(t, "http://localhost:8000/api", cfg.API.PublicURL)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
	assert.Equal(t, "localhost:6379", cfg.Redis.Address())
	assert.Equal(t, time.Hour, cfg.Redis.TTL)
	assert.False(t, cfg.Kafka.Enabled)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Empty(t, cfg.MongoDB.URI)
	assert.Equal(t, 12, cfg.Catalog.FeaturedLimit)
	assert.Equal(t, 4, cfg.Catalog.RelatedLimit)
	assert.Len(t, cfg.Catalog.Campaigns, 4)
	assert.Equal(t, "wedding-hampers", cfg.Catalog.Campaigns["wedding"])
}

func TestLoad_EnvOverrides(t *testing.T) {
	// Arrange
	t.Setenv("API_INTERNAL_URL", "http://api:8000/api")
	t.Setenv("API_PUBLIC_URL", "/api")
	t.Setenv("REDIS_TTL", "15m")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092")
	t.Setenv("CATALOG_FEATURED_LIMIT", "6")
	t.Setenv("CATALOG_CAMPAIGNS_BABY", "newborn")
	t.Setenv("SERVER_ALLOWED_ORIGINS", "https://shop.example.com,https://admin.example.com")

	// Act
	cfg, err := Load()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "http://api:8000/api", cfg.API.InternalURL)
	assert.Equal(t, "/api", cfg.API.PublicURL)
	assert.Equal(t, 15*time.Minute, cfg.Redis.TTL)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.True(t, cfg.Kafka.Enabled)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 6, cfg.Catalog.FeaturedLimit)
	assert.Equal(t, "newborn", cfg.Catalog.Campaigns["baby"])
	assert.Equal(t, "festival-hampers", cfg.Catalog.Campaigns["festival"])
	assert.Len(t, cfg.Server.AllowedOrigins, 2)
}

func TestLoad_InvalidFeaturedLimit(t *testing.T) {
	t.Setenv("CATALOG_FEATURED_LIMIT", "0")

	cfg, err := Load()

	assert.Nil(t, cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "CATALOG_FEATURED_LIMIT")
}

func TestLoad_KafkaEnabledWithoutBrokers(t *testing.T) {
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", " , ")

	cfg, err := Load()

	assert.Nil(t, cfg)
	assert.Error(t, err)
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(""))
	assert.Equal(t, []string{"a", "b"}, splitList(" a ,, b "))
}

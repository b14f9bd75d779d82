package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"hamperhouse/pkg/metrics"

	"github.com/redis/go-redis/v9"
)

const (
	serviceName  = "storefront-service"
	tagKeyPrefix = "cache:tag:"
)

type redisTagCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisTagCache создает кеш каталога поверх Redis
// Множество cache:tag:<tag> хранит ключи, которые надо удалить при инвалидации
func NewRedisTagCache(client *redis.Client, ttl time.Duration) TagCache {
	return &redisTagCache{
		client: client,
		ttl:    ttl,
	}
}

func (r *redisTagCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	timer := metrics.NewRedisTimer(serviceName, metrics.RedisOpGet)
	defer timer.ObserveDuration()

	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.RecordCacheMiss(serviceName, keyPrefix(key))
			return false, nil
		}
		metrics.RecordRedisError(serviceName, metrics.RedisOpGet)
		return false, fmt.Errorf("failed to get %s from redis: %w", key, err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cached %s: %w", key, err)
	}

	metrics.RecordCacheHit(serviceName, keyPrefix(key))
	return true, nil
}

func (r *redisTagCache) Set(ctx context.Context, key string, value any, tags ...string) error {
	timer := metrics.NewRedisTimer(serviceName, metrics.RedisOpSet)
	defer timer.ObserveDuration()

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}

	// Значение и регистрация в тегах уходят одной транзакцией
	pipe := r.client.TxPipeline()
	pipe.Set(ctx, key, data, r.ttl)
	for _, tag := range tags {
		tagKey := tagKeyPrefix + tag
		pipe.SAdd(ctx, tagKey, key)
		if r.ttl > 0 {
			pipe.Expire(ctx, tagKey, r.ttl)
		}
	}

	if _, err := pipe.Exec(ctx); err != nil {
		metrics.RecordRedisError(serviceName, metrics.RedisOpSet)
		return fmt.Errorf("failed to set %s in redis: %w", key, err)
	}

	return nil
}

func (r *redisTagCache) InvalidateTags(ctx context.Context, tags ...string) error {
	for _, tag := range tags {
		tagKey := tagKeyPrefix + tag

		membersTimer := metrics.NewRedisTimer(serviceName, metrics.RedisOpSMember)
		keys, err := r.client.SMembers(ctx, tagKey).Result()
		membersTimer.ObserveDuration()
		if err != nil {
			metrics.RecordRedisError(serviceName, metrics.RedisOpSMember)
			return fmt.Errorf("failed to read tag %s: %w", tag, err)
		}

		delTimer := metrics.NewRedisTimer(serviceName, metrics.RedisOpDel)
		err = r.client.Del(ctx, append(keys, tagKey)...).Err()
		delTimer.ObserveDuration()
		if err != nil {
			metrics.RecordRedisError(serviceName, metrics.RedisOpDel)
			return fmt.Errorf("failed to invalidate tag %s: %w", tag, err)
		}

		metrics.CacheInvalidations.WithLabelValues(tag).Inc()
	}

	return nil
}

// keyPrefix - первые два сегмента ключа для меток метрик (catalog:products)
func keyPrefix(key string) string {
	parts := strings.SplitN(key, ":", 3)
	if len(parts) < 2 {
		return key
	}
	return parts[0] + ":" + parts[1]
}

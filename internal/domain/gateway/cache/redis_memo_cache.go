package cache

import (
	"context"
	"errors"
	"time"

	"cep-api/internal/domain/model"
	"cep-api/pkg/redis"
)

// RedisMemoCache shares memoized results between instances; Redis expiry enforces freshness
type RedisMemoCache struct {
	client *redis.Client
	cache  *redis.Cache
}

var _ MemoCache = (*RedisMemoCache)(nil)

func NewRedisMemoCache(client *redis.Client) *RedisMemoCache {
	return &RedisMemoCache{
		client: client,
		cache:  redis.NewCache(client, redis.NewCacheOptions().WithCacheName("memo")),
	}
}

func (c *RedisMemoCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	err := c.cache.Get(ctx, key, dest)
	if errors.Is(err, redis.ErrCacheMiss) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (c *RedisMemoCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	return c.cache.SetWithTTL(ctx, key, value, ttl)
}

// Purge is a no-op: Redis evicts expired keys itself.
func (c *RedisMemoCache) Purge(_ context.Context) (int, error) {
	return 0, nil
}

func (c *RedisMemoCache) Clear(ctx context.Context) error {
	_, err := c.cache.Clear(ctx)
	return err
}

func (c *RedisMemoCache) Health(ctx context.Context) model.ComponentHealthStatus {
	details, err := redis.HealthCheck(ctx, c.client)
	details["type"] = "redis"
	if err != nil {
		return model.ComponentHealthStatus{Status: model.StatusDown, Details: details}
	}
	return model.ComponentHealthStatus{Status: model.StatusUp, Details: details}
}

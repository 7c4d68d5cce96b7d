package redis

import (
	"context"
	"encoding/json"
	"time"
)

// CacheOptions represents options for cache operations
type CacheOptions struct {
	// TTL is the time to live used by Set
	TTL time.Duration
	// CacheName namespaces keys as CacheName::key
	CacheName string
}

// NewCacheOptions creates a new cache options with default values
func NewCacheOptions() *CacheOptions {
	return &CacheOptions{TTL: 10 * time.Minute}
}

// WithTTL sets the TTL for cache operations
func (co *CacheOptions) WithTTL(ttl time.Duration) *CacheOptions {
	co.TTL = ttl
	return co
}

// WithCacheName sets the cache namespace
func (co *CacheOptions) WithCacheName(cacheName string) *CacheOptions {
	co.CacheName = cacheName
	return co
}

// Cache provides namespaced JSON caching with Redis-side expiry
type Cache struct {
	client *Client
	opts   *CacheOptions
}

// NewCache creates a new cache instance
func NewCache(client *Client, opts *CacheOptions) *Cache {
	if opts == nil {
		opts = NewCacheOptions()
	}
	return &Cache{
		client: client,
		opts:   opts,
	}
}

// buildCacheKey constructs the full cache key using prefix + CacheName::key
func (c *Cache) buildCacheKey(key string) string {
	if c.opts.CacheName != "" {
		key = c.opts.CacheName + "::" + key
	}
	return c.client.Key(key)
}

// Get decodes the cached value into dest, returning ErrCacheMiss when absent or expired
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := c.client.GetBytes(ctx, c.buildCacheKey(key))
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

// Set stores a value with the default TTL
func (c *Cache) Set(ctx context.Context, key string, value interface{}) error {
	return c.SetWithTTL(ctx, key, value, c.opts.TTL)
}

// SetWithTTL stores a value with a specific TTL
func (c *Cache) SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return c.client.SetJSON(ctx, c.buildCacheKey(key), value, ttl)
}

// Delete removes a cached value
func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.client.Delete(ctx, c.buildCacheKey(key))
}

// Clear removes every entry of this cache
func (c *Cache) Clear(ctx context.Context) (int, error) {
	return c.client.DeleteByPattern(ctx, c.buildCacheKey("*"), 100)
}

package redis

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"
)

func TestConfigValidate(t *testing.T) {
	if err := NewRedisConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if err := NewRedisConfig().WithAddr("").Validate(); err == nil {
		t.Fatal("empty addr should be rejected")
	}
	if err := NewRedisConfig().WithDatabase(16).Validate(); err == nil {
		t.Fatal("database 16 should be rejected")
	}
}

func TestNewClientRejectsInvalidConfig(t *testing.T) {
	if _, err := NewClient(NewRedisConfig().WithAddr("")); err == nil {
		t.Fatal("expected an error")
	}
}

func TestCacheKeyNamespacing(t *testing.T) {
	client, err := NewClient(NewRedisConfig().WithKeyPrefix("cep-api:"))
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = client.Close() }()

	cache := NewCache(client, NewCacheOptions().WithCacheName("memo"))
	if got := cache.buildCacheKey("weather:1:2"); got != "cep-api:memo::weather:1:2" {
		t.Fatalf("buildCacheKey() = %q", got)
	}
}

// integrationClient connects to REDIS_ADDR; the test is skipped when it's unset or unreachable.
func integrationClient(t *testing.T) *Client {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	client, err := NewClient(NewRedisConfig().WithAddr(addr).WithKeyPrefix("cep-api-test:"))
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := client.Ping(ctx); err != nil {
		t.Skipf("redis unreachable: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestCacheRoundTripIntegration(t *testing.T) {
	client := integrationClient(t)
	ctx := context.Background()
	cache := NewCache(client, NewCacheOptions().WithCacheName(t.Name()).WithTTL(time.Minute))
	t.Cleanup(func() { _, _ = cache.Clear(context.Background()) })

	var miss map[string]int
	if err := cache.Get(ctx, "k", &miss); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected ErrCacheMiss, got %v", err)
	}
	if err := cache.Set(ctx, "k", map[string]int{"days": 7}); err != nil {
		t.Fatal(err)
	}
	var got map[string]int
	if err := cache.Get(ctx, "k", &got); err != nil || got["days"] != 7 {
		t.Fatalf("Get() = %v, %v", got, err)
	}
	if n, err := cache.Clear(ctx); err != nil || n != 1 {
		t.Fatalf("Clear() = %d, %v", n, err)
	}

	details, err := HealthCheck(ctx, client)
	if err != nil || details["message"] != "UP" {
		t.Fatalf("HealthCheck() = %v, %v", details, err)
	}
}

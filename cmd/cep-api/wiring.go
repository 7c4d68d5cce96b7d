package main

import (
	"context"
	"fmt"
	"time"

	"cep-api/internal/domain/gateway/api"
	"cep-api/internal/domain/gateway/cache"
	"cep-api/internal/domain/gateway/db"
	"cep-api/internal/domain/gateway/queue"
	"cep-api/internal/infra/aws"
	gormdb "cep-api/internal/infra/database/gorm"
	"cep-api/internal/infra/database/sqlite"
	"cep-api/pkg/http"
	"cep-api/pkg/log"
	"cep-api/pkg/redis"
	"cep-api/pkg/resource"
)

// closers are released in reverse order on shutdown
type closers []func() error

func (c *closers) add(name string, fn func() error) {
	*c = append(*c, func() error {
		if err := fn(); err != nil {
			return fmt.Errorf("failed to close %s: %w", name, err)
		}
		return nil
	})
}

func (c closers) closeAll() {
	for i := len(c) - 1; i >= 0; i-- {
		if err := c[i](); err != nil {
			log.Warnf("%v", err)
		}
	}
}

// redisProvider connects on first use so Redis is only required when a component is configured for it
type redisProvider struct {
	client  *redis.Client
	closers *closers
}

func (p *redisProvider) get() (*redis.Client, error) {
	if p.client != nil {
		return p.client, nil
	}

	cfg := redis.NewRedisConfig().
		WithAddr(resource.GetString("app.redis.addr")).
		WithPassword(resource.GetString("app.redis.password")).
		WithDatabase(resource.GetInt("app.redis.db")).
		WithKeyPrefix(resource.GetString("app.redis.key-prefix"))

	client, err := redis.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	p.client = client
	p.closers.add("redis", client.Close)
	return client, nil
}

func clientOptions(prefix, loggerName string, rpsKey string) http.ClientOptions {
	return http.ClientOptions{
		Backoff: &http.BackoffConfig{
			Attempts: resource.GetIntOrDefault(prefix+".attempts", 2),
			Timeout:  resource.GetDurationOrDefault(prefix+".timeout", 5*time.Second),
			Step:     resource.GetDurationOrDefault(prefix+".backoff-step", http.DefaultBackoffStep),
		},
		Logger:            http.NewZapHTTPLogger(loggerName),
		RequestsPerSecond: resource.GetFloat64(rpsKey),
	}
}

func newCepGateways() []api.CepGateway {
	return []api.CepGateway{
		api.NewBrasilAPIGateway(
			resource.GetString("app.cep.brasilapi.base-url"),
			clientOptions("app.cep", "brasilapi", "app.cep.brasilapi.requests-per-second")),
		api.NewViaCepGateway(
			resource.GetString("app.cep.viacep.base-url"),
			clientOptions("app.cep", "viacep", "app.cep.viacep.requests-per-second")),
	}
}

func newWeatherGateways() (api.GeocodingGateway, api.WeatherGateway) {
	geocoding := api.NewGeocodingGateway(
		resource.GetString("app.weather.geocoding-url"),
		clientOptions("app.weather", "geocoding", "app.weather.requests-per-second"))
	weather := api.NewWeatherGateway(
		resource.GetString("app.weather.forecast-url"),
		clientOptions("app.weather", "open-meteo", "app.weather.requests-per-second"))
	return geocoding, weather
}

func newMemoCache(redisClients *redisProvider) (cache.MemoCache, error) {
	switch cacheType := resource.GetStringOrDefault("app.cache.type", "memory"); cacheType {
	case "memory":
		return cache.NewMemoryMemoCache(), nil
	case "redis":
		client, err := redisClients.get()
		if err != nil {
			return nil, err
		}
		return cache.NewRedisMemoCache(client), nil
	default:
		return nil, fmt.Errorf("unknown cache type %q", cacheType)
	}
}

func newHistoryGateway(redisClients *redisProvider, closers *closers) (db.HistoryGateway, error) {
	key := resource.GetStringOrDefault("app.history.key", db.DefaultHistoryKey)

	switch storage := resource.GetStringOrDefault("app.history.storage", "sqlite"); storage {
	case "memory":
		return db.NewMemoryHistoryGateway(), nil
	case "sqlite":
		conn, err := sqlite.Open(resource.GetString("app.history.sqlite-path"))
		if err != nil {
			return nil, err
		}
		closers.add("sqlite", conn.Close)
		return db.NewSQLiteHistoryGateway(conn, key), nil
	case "postgres":
		conn, err := gormdb.Open(gormdb.Config{
			DSN:             resource.GetString("app.database.dsn"),
			MaxOpenConns:    resource.GetInt("app.database.max-open-conns"),
			MaxIdleConns:    resource.GetInt("app.database.max-idle-conns"),
			ConnMaxLifetime: resource.GetDuration("app.database.conn-max-lifetime"),
		})
		if err != nil {
			return nil, err
		}
		if sqlDB, err := conn.DB(); err == nil {
			closers.add("postgres", sqlDB.Close)
		}
		return db.NewGormHistoryGateway(conn, key), nil
	case "redis":
		client, err := redisClients.get()
		if err != nil {
			return nil, err
		}
		return db.NewRedisHistoryGateway(client, key), nil
	default:
		return nil, fmt.Errorf("unknown history storage %q", storage)
	}
}

func newLookupEventGateway(ctx context.Context) (*queue.LookupEventGatewayImpl, error) {
	if !resource.GetBool("app.queue.enabled") {
		return queue.NewLookupEventGateway(nil, ""), nil
	}

	awsCfg, err := aws.LoadConfig(ctx, aws.Config{
		Region:          resource.GetString("app.aws.region"),
		Endpoint:        resource.GetString("app.aws.endpoint"),
		AccessKeyID:     resource.GetString("app.aws.access-key-id"),
		SecretAccessKey: resource.GetString("app.aws.secret-access-key"),
	})
	if err != nil {
		return nil, err
	}

	sender := aws.NewSQSSenderAdapter(aws.NewSqsClient(awsCfg, resource.GetString("app.aws.endpoint")))
	return queue.NewLookupEventGateway(sender, resource.GetString("app.queue.lookup-events-url")), nil
}

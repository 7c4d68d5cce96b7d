package db

import (
	"context"
	"errors"
	"fmt"

	"cep-api/internal/domain/entity"
	"cep-api/internal/domain/model"
	"cep-api/pkg/redis"
)

// RedisHistoryGateway stores the encoded list as a plain Redis string without expiry
type RedisHistoryGateway struct {
	client *redis.Client
	key    string
}

var _ HistoryGateway = (*RedisHistoryGateway)(nil)

func NewRedisHistoryGateway(client *redis.Client, key string) *RedisHistoryGateway {
	if key == "" {
		key = DefaultHistoryKey
	}
	return &RedisHistoryGateway{client: client, key: client.Key(key)}
}

func (gateway *RedisHistoryGateway) Load(ctx context.Context) ([]entity.ConsultaHistorico, error) {
	data, err := gateway.client.GetBytes(ctx, gateway.key)
	if errors.Is(err, redis.ErrCacheMiss) {
		return []entity.ConsultaHistorico{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	return decodeHistory(data)
}

func (gateway *RedisHistoryGateway) Save(ctx context.Context, entries []entity.ConsultaHistorico) error {
	if entries == nil {
		entries = []entity.ConsultaHistorico{}
	}
	if err := gateway.client.SetJSON(ctx, gateway.key, entries, 0); err != nil {
		return fmt.Errorf("failed to save history: %w", err)
	}
	return nil
}

func (gateway *RedisHistoryGateway) Delete(ctx context.Context) error {
	if err := gateway.client.Delete(ctx, gateway.key); err != nil {
		return fmt.Errorf("failed to delete history: %w", err)
	}
	return nil
}

func (gateway *RedisHistoryGateway) Health(ctx context.Context) model.ComponentHealthStatus {
	details, err := redis.HealthCheck(ctx, gateway.client)
	details["storage"] = "redis"
	if err != nil {
		return model.ComponentHealthStatus{Status: model.StatusDown, Details: details}
	}
	return model.ComponentHealthStatus{Status: model.StatusUp, Details: details}
}

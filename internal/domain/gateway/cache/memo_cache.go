package cache

import (
	"context"
	"time"

	"cep-api/internal/domain/model"
)

// MemoCache stores JSON-serializable results for a freshness window
type MemoCache interface {
	// Get decodes a fresh entry into dest, reporting whether one was found
	Get(ctx context.Context, key string, dest any) (bool, error)

	// Set stores value until ttl elapses
	Set(ctx context.Context, key string, value any, ttl time.Duration) error

	// Purge drops expired entries and returns how many were removed
	Purge(ctx context.Context) (int, error)

	// Clear drops every entry
	Clear(ctx context.Context) error

	Health(ctx context.Context) model.ComponentHealthStatus
}

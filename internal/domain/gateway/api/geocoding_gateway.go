package api

import (
	"context"
	"time"

	"cep-api/internal/domain/entity"
	"cep-api/pkg/http"
)

const (
	DefaultWeatherTimeout  = 8000 * time.Millisecond
	DefaultWeatherAttempts = 2
)

// GeocodingGateway resolves a city/state pair into coordinates
type GeocodingGateway interface {
	// Geocode returns the best candidate or a *ServiceError tagged geocoding
	Geocode(ctx context.Context, city, uf string) (*entity.Coordinates, error)
}

// DefaultWeatherBackoff returns the retry policy shared by geocoding and forecast calls.
func DefaultWeatherBackoff() *http.BackoffConfig {
	return http.NewBackoffConfig(DefaultWeatherAttempts, DefaultWeatherTimeout)
}

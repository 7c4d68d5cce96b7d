package api

import (
	"context"

	"cep-api/internal/domain/entity"
)

// ForecastDays is how many days are always requested from the forecast API
const ForecastDays = 16

// WeatherGateway fetches current conditions and the daily forecast for a point
type WeatherGateway interface {
	// FetchForecast returns ForecastDays daily entries in source order; city and uf are echoed into the location
	FetchForecast(ctx context.Context, latitude, longitude float64, city, uf string) (*entity.WeatherData, error)
}

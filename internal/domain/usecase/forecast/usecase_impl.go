package forecast

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"cep-api/internal/domain/entity"
	"cep-api/internal/domain/gateway/api"
	"cep-api/internal/domain/gateway/cache"
	"cep-api/internal/domain/model"
	"cep-api/pkg/log"
)

const (
	MinDays     = 1
	MaxDays     = api.ForecastDays
	DefaultDays = 7

	// DefaultCacheTTL is how long geocoding and weather results stay fresh
	DefaultCacheTTL = 10 * time.Minute

	// DefaultFetchTimeout bounds a shared fetch once it no longer follows a caller's context
	DefaultFetchTimeout = 30 * time.Second

	tracerName = "cep-api/usecase/forecast"
)

type Options struct {
	CacheTTL     time.Duration
	FetchTimeout time.Duration
}

type forecastUseCase struct {
	geocoding api.GeocodingGateway
	weather   api.WeatherGateway
	cache     cache.MemoCache
	ttl       time.Duration
	timeout   time.Duration
	group     singleflight.Group
}

// NewForecastUseCase builds the pipeline. memo may be nil to disable memoization.
func NewForecastUseCase(geocoding api.GeocodingGateway, weather api.WeatherGateway, memo cache.MemoCache, opts Options) UseCase {
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = DefaultCacheTTL
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = DefaultFetchTimeout
	}
	return &forecastUseCase{
		geocoding: geocoding,
		weather:   weather,
		cache:     memo,
		ttl:       opts.CacheTTL,
		timeout:   opts.FetchTimeout,
	}
}

func (useCase *forecastUseCase) Forecast(ctx context.Context, cepData *entity.CepData, days int) (*model.ForecastResult, error) {
	if days < MinDays || days > MaxDays {
		return nil, &InvalidDaysError{Days: days}
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "Forecast")
	defer span.End()

	var coordinates *entity.Coordinates
	var source model.CoordinateSource

	switch {
	case cepData.HasCoordinates():
		coordinates = cepData.Coordenadas
		source = model.SourceCep
	case cepData.HasLocation():
		resolved, err := useCase.geocode(ctx, cepData.Cidade, cepData.Uf)
		if err != nil {
			span.RecordError(err)
			return nil, &GeocodeError{Err: err}
		}
		coordinates = resolved
		source = model.SourceGeocoding
	default:
		return &model.ForecastResult{Status: model.ForecastNotReady, Days: days}, nil
	}
	span.SetAttributes(attribute.String("forecast.source", string(source)))

	weather, err := useCase.fetchWeather(ctx, *coordinates, cepData.Cidade, cepData.Uf)
	if err != nil {
		span.RecordError(err)
		return nil, &WeatherError{Err: err}
	}

	return &model.ForecastResult{
		Status:      model.ForecastReady,
		Source:      source,
		Days:        days,
		Coordinates: coordinates,
		Weather:     weather.FirstDays(days),
	}, nil
}

func (useCase *forecastUseCase) geocode(ctx context.Context, city, uf string) (*entity.Coordinates, error) {
	key := geocodeKey(city, uf)

	var coordinates entity.Coordinates
	if useCase.lookup(ctx, key, &coordinates) {
		return &coordinates, nil
	}

	result, err := useCase.shared(ctx, key, func(ctx context.Context) (any, error) {
		resolved, err := useCase.geocoding.Geocode(ctx, city, uf)
		if err != nil {
			return nil, err
		}
		useCase.store(ctx, key, resolved)
		return resolved, nil
	})
	if err != nil {
		return nil, err
	}

	resolved := *result.(*entity.Coordinates)
	return &resolved, nil
}

// fetchWeather always asks for the full ForecastDays range so one entry serves every days value
func (useCase *forecastUseCase) fetchWeather(ctx context.Context, coordinates entity.Coordinates, city, uf string) (*entity.WeatherData, error) {
	key := weatherKey(coordinates)

	var weather entity.WeatherData
	if useCase.lookup(ctx, key, &weather) {
		weather.Location.Cidade = city
		weather.Location.Uf = uf
		return &weather, nil
	}

	result, err := useCase.shared(ctx, key, func(ctx context.Context) (any, error) {
		fetched, err := useCase.weather.FetchForecast(ctx, coordinates.Latitude, coordinates.Longitude, city, uf)
		if err != nil {
			return nil, err
		}
		useCase.store(ctx, key, fetched)
		return fetched, nil
	})
	if err != nil {
		return nil, err
	}

	// coalesced callers share the result; hand each one its own copy
	fetched := result.(*entity.WeatherData).FirstDays(MaxDays)
	fetched.Location.Cidade = city
	fetched.Location.Uf = uf
	return fetched, nil
}

// shared runs fetch once for every concurrent caller of key. The fetch is detached from the
// caller that started it; each caller stops waiting when its own ctx is done.
func (useCase *forecastUseCase) shared(ctx context.Context, key string, fetch func(context.Context) (any, error)) (any, error) {
	results := useCase.group.DoChan(key, func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), useCase.timeout)
		defer cancel()
		return fetch(fetchCtx)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case result := <-results:
		return result.Val, result.Err
	}
}

func (useCase *forecastUseCase) lookup(ctx context.Context, key string, dest any) bool {
	if useCase.cache == nil {
		return false
	}
	found, err := useCase.cache.Get(ctx, key, dest)
	if err != nil {
		log.Warn("Memo cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return found
}

func (useCase *forecastUseCase) store(ctx context.Context, key string, value any) {
	if useCase.cache == nil {
		return
	}
	if err := useCase.cache.Set(ctx, key, value, useCase.ttl); err != nil {
		log.Warn("Memo cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func geocodeKey(city, uf string) string {
	return fmt.Sprintf("geocode:%s:%s", strings.ToLower(strings.TrimSpace(city)), strings.ToLower(strings.TrimSpace(uf)))
}

func weatherKey(coordinates entity.Coordinates) string {
	return "weather:" +
		strconv.FormatFloat(coordinates.Latitude, 'f', 6, 64) + ":" +
		strconv.FormatFloat(coordinates.Longitude, 'f', 6, 64)
}

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"

	"cep-api/internal/domain/entity"
	"cep-api/internal/domain/gateway/api"
	"cep-api/internal/domain/gateway/cache"
	"cep-api/internal/domain/model"
	"cep-api/internal/domain/usecase/cep"
	"cep-api/internal/domain/usecase/forecast"
	"cep-api/pkg/http"
	"cep-api/pkg/log"
	"cep-api/pkg/resource"
)

// lookupResult is one output line
type lookupResult struct {
	Input    string                `json:"input"`
	CepData  *entity.CepData       `json:"cepData,omitempty"`
	Forecast *model.ForecastResult `json:"forecast,omitempty"`
	Error    string                `json:"error,omitempty"`
}

func main() {
	days := flag.Int("days", 0, "also fetch a forecast for this many days (1-16)")
	workers := flag.Int("workers", 4, "concurrent lookups")
	timeout := flag.Duration("timeout", 30*time.Second, "overall timeout")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: cep-lookup [flags] CEP...\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	cepUseCase := newCepUseCase()

	var forecastUseCase forecast.UseCase
	if *days > 0 {
		forecastUseCase = newForecastUseCase()
	}

	results := lookupAll(ctx, flag.Args(), *workers, func(ctx context.Context, input string) lookupResult {
		return lookup(ctx, cepUseCase, forecastUseCase, *days, input)
	})

	encoder := json.NewEncoder(os.Stdout)
	failed := false
	for _, result := range results {
		if result.Error != "" {
			failed = true
		}
		if err := encoder.Encode(result); err != nil {
			log.Error("Failed to write result", zap.String("cep", result.Input), zap.Error(err))
		}
	}
	if failed {
		os.Exit(1)
	}
}

// newCepUseCase reads provider URLs from the same properties as the API server
func newCepUseCase() cep.UseCase {
	return cep.NewCepUseCase([]api.CepGateway{
		api.NewBrasilAPIGateway(
			resource.GetStringOrDefault("app.cep.brasilapi.base-url", "https://brasilapi.com.br/api/cep/v2"),
			http.ClientOptions{Backoff: api.DefaultCepBackoff()},
		),
		api.NewViaCepGateway(
			resource.GetStringOrDefault("app.cep.viacep.base-url", "https://viacep.com.br/ws"),
			http.ClientOptions{Backoff: api.DefaultCepBackoff()},
		),
	}, nil, nil)
}

func newForecastUseCase() forecast.UseCase {
	return forecast.NewForecastUseCase(
		api.NewGeocodingGateway(
			resource.GetStringOrDefault("app.weather.geocoding-url", "https://geocoding-api.open-meteo.com/v1/search"),
			http.ClientOptions{Backoff: api.DefaultWeatherBackoff()},
		),
		api.NewWeatherGateway(
			resource.GetStringOrDefault("app.weather.forecast-url", "https://api.open-meteo.com/v1/forecast"),
			http.ClientOptions{Backoff: api.DefaultWeatherBackoff()},
		),
		cache.NewMemoryMemoCache(),
		forecast.Options{},
	)
}

func lookup(ctx context.Context, cepUseCase cep.UseCase, forecastUseCase forecast.UseCase, days int, input string) lookupResult {
	result := lookupResult{Input: input}

	cepData, err := cepUseCase.FetchCepData(ctx, input)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	result.CepData = cepData

	if forecastUseCase != nil {
		forecastResult, err := forecastUseCase.Forecast(ctx, cepData, days)
		if err != nil {
			result.Error = err.Error()
			return result
		}
		result.Forecast = forecastResult
	}
	return result
}

// lookupAll fans inputs out to a fixed pool of workers and keeps results in input order
func lookupAll(ctx context.Context, inputs []string, workers int, fn func(context.Context, string) lookupResult) []lookupResult {
	if workers < 1 {
		workers = 1
	}

	results := make([]lookupResult, len(inputs))
	jobs := make(chan int, len(inputs))
	for i := range inputs {
		jobs <- i
	}
	close(jobs)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = fn(ctx, inputs[i])
			}
		}()
	}
	wg.Wait()

	return results
}

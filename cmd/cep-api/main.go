package main

import (
	"context"
	"errors"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"cep-api/configs"
	"cep-api/internal/application/controller"
	"cep-api/internal/application/middleware"
	"cep-api/internal/application/schedule"
	"cep-api/internal/domain/usecase/cep"
	"cep-api/internal/domain/usecase/forecast"
	"cep-api/internal/domain/usecase/health"
	"cep-api/internal/domain/usecase/history"
	"cep-api/internal/infra/tracing"
	"cep-api/pkg/log"
	"cep-api/pkg/msg"
	"cep-api/pkg/resource"
)

func main() {
	defer log.Sync()
	log.Info(msg.GetMessage("app.start"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Init infra
	shutdownTracing, err := tracing.Init(tracing.Config{
		Enabled:     resource.GetBool("app.tracing.enabled"),
		ZipkinURL:   resource.GetString("app.tracing.zipkin-url"),
		ServiceName: configs.Env.ApplicationName,
		Version:     resource.GetString("app.version"),
	})
	if err != nil {
		log.Fatalf("Failed to init tracing: %v", err)
	}

	var resources closers
	defer resources.closeAll()
	redisClients := &redisProvider{closers: &resources}

	memoCache, err := newMemoCache(redisClients)
	if err != nil {
		log.Fatalf("Failed to init memo cache: %v", err)
	}
	historyGateway, err := newHistoryGateway(redisClients, &resources)
	if err != nil {
		log.Fatalf("Failed to init history storage: %v", err)
	}
	lookupEvents, err := newLookupEventGateway(ctx)
	if err != nil {
		log.Fatalf("Failed to init lookup event queue: %v", err)
	}
	geocodingGateway, weatherGateway := newWeatherGateways()

	// Init UseCase
	historyUseCase := history.NewHistoryUseCase(historyGateway, history.Options{
		Limit: resource.GetIntOrDefault("app.history.limit", history.DefaultLimit),
	})
	cepUseCase := cep.NewCepUseCase(newCepGateways(), historyUseCase, lookupEvents)
	forecastUseCase := forecast.NewForecastUseCase(geocodingGateway, weatherGateway, memoCache, forecast.Options{
		CacheTTL: resource.GetDurationOrDefault("app.weather.cache-ttl", forecast.DefaultCacheTTL),
	})
	healthUseCase := health.NewHealthUseCase(historyGateway, memoCache, lookupEvents)

	// Init Controller
	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	middleware.SetupRequestLogger(e)
	api := e.Group(resource.GetStringOrDefault("app.server.context-path", configs.Env.ContextPath))

	// Init Routes
	controller.NewHealthController(api, healthUseCase).InitHealthRoutes()
	controller.NewCepController(api, cepUseCase, forecastUseCase).InitCepRoutes()
	controller.NewForecastController(api, forecastUseCase).InitForecastRoutes()
	controller.NewHistoryController(api, historyUseCase).InitHistoryRoutes()

	// Init Schedule
	cacheScheduler := schedule.NewCacheScheduler(memoCache, resource.GetStringOrDefault("app.cache.janitor-cron", "@every 1m"))
	if err := cacheScheduler.InitCacheScheduleTasks(); err != nil {
		log.Fatalf("Failed to init cache janitor: %v", err)
	}
	defer cacheScheduler.Stop()

	// Start Routes
	go func() {
		port := resource.GetStringOrDefault("app.server.port", configs.Env.Port)
		if err := e.Start(":" + port); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			log.Errorf("Server stopped: %v", err)
			stop()
		}
	}()
	log.Info(msg.GetMessage("app.started"))

	<-ctx.Done()
	log.Info(msg.GetMessage("app.stop"))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), resource.GetDurationOrDefault("app.server.shutdown-timeout", 10*time.Second))
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Failed to shut down server: %v", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Errorf("Failed to flush traces: %v", err)
	}
}

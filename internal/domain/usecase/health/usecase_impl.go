package health

import (
	"context"

	"cep-api/internal/domain/gateway/cache"
	"cep-api/internal/domain/gateway/db"
	"cep-api/internal/domain/gateway/queue"
	"cep-api/internal/domain/model"
)

type healthUseCase struct {
	dbGateway    db.HealthDBGateway
	cache        cache.MemoCache
	queueGateway queue.LookupEventGateway
}

func NewHealthUseCase(dbGateway db.HealthDBGateway, memo cache.MemoCache, queueGateway queue.LookupEventGateway) UseCase {
	return &healthUseCase{
		dbGateway:    dbGateway,
		cache:        memo,
		queueGateway: queueGateway,
	}
}

// CheckHealth reports DOWN when history storage or the cache is down.
// The queue is informational since publishing is best-effort.
func (useCase *healthUseCase) CheckHealth(ctx context.Context) model.HealthResponse {
	dbHealth := useCase.dbGateway.Health(ctx)
	cacheHealth := useCase.cache.Health(ctx)
	queueHealth := useCase.queueGateway.Health()

	overallStatus := model.StatusUp
	if dbHealth.Status != model.StatusUp || cacheHealth.Status != model.StatusUp {
		overallStatus = model.StatusDown
	}

	return model.HealthResponse{
		Status:  overallStatus,
		History: dbHealth,
		Cache:   cacheHealth,
		Queue:   queueHealth,
	}
}

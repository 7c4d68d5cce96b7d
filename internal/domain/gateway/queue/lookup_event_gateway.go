package queue

import (
	"context"

	"cep-api/internal/domain/model"
)

// LookupEventGateway publishes successful CEP lookups for downstream consumers
type LookupEventGateway interface {
	Publish(ctx context.Context, event model.LookupEvent) error
	Health() model.ComponentHealthStatus
}

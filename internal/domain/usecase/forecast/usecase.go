package forecast

import (
	"context"

	"cep-api/internal/domain/entity"
	"cep-api/internal/domain/model"
)

type UseCase interface {
	// Forecast resolves coordinates for cepData and returns the first days of its forecast.
	// A result with status NOT_READY and no error means the address has no usable location.
	Forecast(ctx context.Context, cepData *entity.CepData, days int) (*model.ForecastResult, error)
}

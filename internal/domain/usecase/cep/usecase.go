package cep

import (
	"context"

	"cep-api/internal/domain/entity"
)

type UseCase interface {
	// FetchCepData cleans raw, then asks each provider in order until one answers
	FetchCepData(ctx context.Context, raw string) (*entity.CepData, error)
}

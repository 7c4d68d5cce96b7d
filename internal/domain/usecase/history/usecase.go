package history

import (
	"context"

	"cep-api/internal/domain/entity"
)

type UseCase interface {
	// List returns the stored lookups, newest first
	List(ctx context.Context) ([]entity.ConsultaHistorico, error)

	// Add records a lookup, replacing any previous entry for the same CEP
	Add(ctx context.Context, cepData *entity.CepData) (*entity.ConsultaHistorico, error)

	// FindByCep returns the stored entry for cep so it can be replayed without refetching
	FindByCep(ctx context.Context, cep string) (*entity.ConsultaHistorico, error)

	// Clear removes every stored lookup
	Clear(ctx context.Context) error
}

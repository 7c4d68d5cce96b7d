package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"cep-api/internal/domain/entity"
)

// DefaultHistoryKey is the record key the history list is stored under
const DefaultHistoryKey = "cep-history"

// ErrCorruptHistory means the stored record could not be decoded
var ErrCorruptHistory = errors.New("stored history is not a valid entry list")

// HistoryGateway persists the whole history list under a single key.
// Read-modify-write ordering is the caller's responsibility.
type HistoryGateway interface {
	HealthDBGateway

	// Load returns the stored list, or an empty list when nothing is stored
	Load(ctx context.Context) ([]entity.ConsultaHistorico, error)

	// Save replaces the stored list
	Save(ctx context.Context, entries []entity.ConsultaHistorico) error

	// Delete removes the stored record
	Delete(ctx context.Context) error
}

func encodeHistory(entries []entity.ConsultaHistorico) ([]byte, error) {
	if entries == nil {
		entries = []entity.ConsultaHistorico{}
	}
	return json.Marshal(entries)
}

func decodeHistory(data []byte) ([]entity.ConsultaHistorico, error) {
	if len(data) == 0 {
		return []entity.ConsultaHistorico{}, nil
	}
	var entries []entity.ConsultaHistorico
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptHistory, err)
	}
	if entries == nil {
		entries = []entity.ConsultaHistorico{}
	}
	return entries, nil
}

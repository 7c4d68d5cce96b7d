package db

import (
	"context"
	"sync"

	"cep-api/internal/domain/entity"
	"cep-api/internal/domain/model"
)

// MemoryHistoryGateway keeps the encoded list in memory; it is lost on restart
type MemoryHistoryGateway struct {
	mu   sync.RWMutex
	data []byte
}

var _ HistoryGateway = (*MemoryHistoryGateway)(nil)

func NewMemoryHistoryGateway() *MemoryHistoryGateway {
	return &MemoryHistoryGateway{}
}

func (gateway *MemoryHistoryGateway) Load(_ context.Context) ([]entity.ConsultaHistorico, error) {
	gateway.mu.RLock()
	defer gateway.mu.RUnlock()
	return decodeHistory(gateway.data)
}

func (gateway *MemoryHistoryGateway) Save(_ context.Context, entries []entity.ConsultaHistorico) error {
	data, err := encodeHistory(entries)
	if err != nil {
		return err
	}
	gateway.mu.Lock()
	gateway.data = data
	gateway.mu.Unlock()
	return nil
}

func (gateway *MemoryHistoryGateway) Delete(_ context.Context) error {
	gateway.mu.Lock()
	gateway.data = nil
	gateway.mu.Unlock()
	return nil
}

func (gateway *MemoryHistoryGateway) Health(_ context.Context) model.ComponentHealthStatus {
	return upStatus(map[string]string{"storage": "memory"})
}

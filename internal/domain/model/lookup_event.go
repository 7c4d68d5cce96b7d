package model

import "cep-api/internal/domain/entity"

// LookupEvent is published after every successful CEP lookup
type LookupEvent struct {
	Cep        string          `json:"cep"`
	Provider   entity.Provider `json:"provider"`
	Cidade     string          `json:"cidade"`
	Uf         string          `json:"uf"`
	LookedUpAt int64           `json:"lookedUpAt"`
}

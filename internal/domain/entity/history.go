package entity

// ConsultaHistorico is one past lookup kept for replay.
type ConsultaHistorico struct {
	ID        string  `json:"id"`
	Cep       string  `json:"cep"`
	Cidade    string  `json:"cidade"`
	Uf        string  `json:"uf"`
	Timestamp int64   `json:"timestamp"`
	CepData   CepData `json:"cepData"`
}

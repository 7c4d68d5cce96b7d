package external

// ViaCepResponse represents the response of the ViaCEP json endpoint
type ViaCepResponse struct {
	Cep         string       `json:"cep"`
	Logradouro  string       `json:"logradouro"`
	Complemento string       `json:"complemento"`
	Bairro      string       `json:"bairro"`
	Localidade  string       `json:"localidade"`
	Uf          string       `json:"uf"`
	Ibge        string       `json:"ibge"`
	Gia         string       `json:"gia"`
	Ddd         string       `json:"ddd"`
	Siafi       string       `json:"siafi"`
	Erro        FlexibleBool `json:"erro"`
}

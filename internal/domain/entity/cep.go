package entity

import (
	"encoding/json"

	"cep-api/pkg/util/numberutils"
)

// Provider identifies the service that answered a CEP lookup.
type Provider string

const (
	ProviderBrasilAPI Provider = "BrasilAPI"
	ProviderViaCEP    Provider = "ViaCEP"
)

// Coordinates is a latitude/longitude pair in decimal degrees.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Valid reports whether both values are finite and inside their ranges.
func (c Coordinates) Valid() bool {
	return numberutils.IsFloatInRange(c.Latitude, -90, 90) &&
		numberutils.IsFloatInRange(c.Longitude, -180, 180)
}

// CepData is the normalized address returned by any provider.
type CepData struct {
	Cep         string       `json:"cep"`
	Logradouro  string       `json:"logradouro"`
	Bairro      string       `json:"bairro"`
	Cidade      string       `json:"cidade"`
	Uf          string       `json:"uf"`
	Ibge        string       `json:"ibge,omitempty"`
	Coordenadas *Coordinates `json:"coordenadas,omitempty"`
	Provedor    Provider     `json:"provedor"`
}

// HasCoordinates reports whether the address carries a usable coordinate pair.
func (c *CepData) HasCoordinates() bool {
	return c != nil && c.Coordenadas != nil && c.Coordenadas.Valid()
}

// HasLocation reports whether city and state are known.
func (c *CepData) HasLocation() bool {
	return c != nil && c.Cidade != "" && c.Uf != ""
}

// UnmarshalJSON drops a coordinate pair unless both values are present.
func (c *CepData) UnmarshalJSON(data []byte) error {
	type plain CepData
	var decoded struct {
		plain
		Coordenadas *struct {
			Latitude  *float64 `json:"latitude"`
			Longitude *float64 `json:"longitude"`
		} `json:"coordenadas"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}

	*c = CepData(decoded.plain)
	c.Coordenadas = nil
	if pair := decoded.Coordenadas; pair != nil && pair.Latitude != nil && pair.Longitude != nil {
		c.Coordenadas = &Coordinates{Latitude: *pair.Latitude, Longitude: *pair.Longitude}
	}
	return nil
}

package model

import "cep-api/internal/domain/entity"

// ForecastStatus tells whether a forecast could be produced for an address
type ForecastStatus string

const (
	ForecastReady    ForecastStatus = "READY"
	ForecastNotReady ForecastStatus = "NOT_READY"
)

// CoordinateSource tells where the forecast coordinates came from
type CoordinateSource string

const (
	SourceCep       CoordinateSource = "cep"
	SourceGeocoding CoordinateSource = "geocoding"
)

// ForecastResult is the outcome of the forecast pipeline. Weather is nil when Status is NOT_READY.
type ForecastResult struct {
	Status      ForecastStatus      `json:"status"`
	Source      CoordinateSource    `json:"source,omitempty"`
	Days        int                 `json:"days"`
	Coordinates *entity.Coordinates `json:"coordinates,omitempty"`
	Weather     *entity.WeatherData `json:"weather,omitempty"`
}

// ForecastRequestDTO is the body of POST /forecast
type ForecastRequestDTO struct {
	CepData *entity.CepData `json:"cepData"`
	Days    int             `json:"days"`
}

// CepForecastResponse combines a lookup with its forecast
type CepForecastResponse struct {
	CepData  *entity.CepData `json:"cepData"`
	Forecast *ForecastResult `json:"forecast"`
}

package api

import (
	"errors"

	"cep-api/internal/domain/entity"
	"cep-api/pkg/msg"
)

var (
	// ErrCepNotFound means the provider answered but has no such CEP.
	ErrCepNotFound = errors.New(msg.GetMessage("cep.not-found"))

	// ErrUnexpectedPayload means the provider answered with a body missing required fields.
	ErrUnexpectedPayload = errors.New("unexpected provider payload")

	// ErrLocationNotFound means geocoding returned no usable candidate.
	ErrLocationNotFound = errors.New(msg.GetMessage("forecast.location-not-found"))

	// ErrMalformedForecast means the forecast body is missing blocks or its daily arrays differ in length.
	ErrMalformedForecast = errors.New("malformed forecast payload")
)

// ProviderError tags a CEP lookup failure with the provider that produced it.
type ProviderError struct {
	Provider entity.Provider
	Err      error
}

func (e *ProviderError) Error() string {
	return msg.GetMessage("cep.provider-error", string(e.Provider))
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Service names an Open-Meteo API.
type Service string

const (
	ServiceGeocoding Service = "geocoding"
	ServiceWeather   Service = "weather"
)

// ServiceError tags a geocoding or weather failure.
type ServiceError struct {
	Service Service
	Err     error
}

func (e *ServiceError) Error() string {
	if e.Service == ServiceGeocoding {
		return msg.GetMessage("forecast.geocode-error")
	}
	return msg.GetMessage("forecast.weather-error")
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

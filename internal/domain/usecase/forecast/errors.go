package forecast

import (
	"errors"

	"cep-api/internal/domain/gateway/api"
	"cep-api/pkg/msg"
)

// InvalidDaysError is returned when days is outside [MinDays, MaxDays]
type InvalidDaysError struct {
	Days int
}

func (e *InvalidDaysError) Error() string {
	return msg.GetMessage("forecast.invalid-days", e.Days, MinDays, MaxDays)
}

// GeocodeError means the city/state pair could not be resolved; weather was not attempted
type GeocodeError struct {
	Err error
}

func (e *GeocodeError) Error() string {
	if errors.Is(e.Err, api.ErrLocationNotFound) {
		return msg.GetMessage("forecast.location-not-found")
	}
	return msg.GetMessage("forecast.geocode-error")
}

func (e *GeocodeError) Unwrap() error {
	return e.Err
}

// WeatherError means the forecast could not be fetched for resolved coordinates
type WeatherError struct {
	Err error
}

func (e *WeatherError) Error() string {
	return msg.GetMessage("forecast.weather-error")
}

func (e *WeatherError) Unwrap() error {
	return e.Err
}

package controller

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"cep-api/internal/domain/model"
	"cep-api/internal/domain/usecase/cep"
	"cep-api/internal/domain/usecase/forecast"
	"cep-api/internal/domain/usecase/history"
	"cep-api/pkg/log"
)

// writeError maps use case errors to their HTTP status and JSON body
func writeError(c echo.Context, err error) error {
	var (
		invalidCep   *cep.InvalidCepError
		lookupFailed *cep.LookupFailedError
		invalidDays  *forecast.InvalidDaysError
		geocodeErr   *forecast.GeocodeError
		weatherErr   *forecast.WeatherError
		notFound     *history.NotFoundError
	)

	switch {
	case errors.As(err, &invalidCep), errors.As(err, &invalidDays):
		return c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: err.Error()})
	case errors.As(err, &lookupFailed):
		return c.JSON(http.StatusNotFound, model.ErrorResponse{
			Error:    lookupFailed.Error(),
			Provider: lookupFailed.Provider(),
			Details:  lookupFailed.Details(),
		})
	case errors.As(err, &notFound):
		return c.JSON(http.StatusNotFound, model.ErrorResponse{Error: err.Error()})
	case errors.As(err, &geocodeErr):
		return c.JSON(http.StatusUnprocessableEntity, model.ErrorResponse{Error: err.Error()})
	case errors.As(err, &weatherErr):
		return c.JSON(http.StatusBadGateway, model.ErrorResponse{Error: err.Error()})
	default:
		log.Errorf("Unhandled error on %s %s: %v", c.Request().Method, c.Request().URL.Path, err)
		return c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: err.Error()})
	}
}

// forecastStatus is 202 while the address has no usable location
func forecastStatus(result *model.ForecastResult) int {
	if result.Status == model.ForecastNotReady {
		return http.StatusAccepted
	}
	return http.StatusOK
}

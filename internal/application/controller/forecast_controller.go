package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"cep-api/internal/domain/model"
	"cep-api/internal/domain/usecase/forecast"
	"cep-api/pkg/msg"
)

type ForecastController struct {
	api     *echo.Group
	useCase forecast.UseCase
}

func NewForecastController(api *echo.Group, useCase forecast.UseCase) *ForecastController {
	return &ForecastController{api: api, useCase: useCase}
}

// InitForecastRoutes initializes forecast routes
func (controller *ForecastController) InitForecastRoutes() {
	controller.api.POST("/forecast", controller.Forecast)
}

// Forecast godoc
// @Summary Forecast the weather for an address
// @Description Use the address coordinates when present, otherwise geocode city and state
// @Tags forecast
// @Accept json
// @Produce json
// @Param request body model.ForecastRequestDTO true "Address and number of days (default 7)"
// @Success 200 {object} model.ForecastResult "Forecast"
// @Success 202 {object} model.ForecastResult "Address without a usable location"
// @Failure 400 {object} model.ErrorResponse "Invalid body or days"
// @Failure 422 {object} model.ErrorResponse "Location could not be geocoded"
// @Failure 502 {object} model.ErrorResponse "Weather service failed"
// @Router /forecast [post]
func (controller *ForecastController) Forecast(c echo.Context) error {
	var dto model.ForecastRequestDTO
	if err := c.Bind(&dto); err != nil || dto.CepData == nil {
		return c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: msg.GetMessage("request.invalid-body")})
	}
	if dto.Days == 0 {
		dto.Days = forecast.DefaultDays
	}

	result, err := controller.useCase.Forecast(c.Request().Context(), dto.CepData, dto.Days)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(forecastStatus(result), result)
}

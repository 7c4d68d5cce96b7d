package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"cep-api/internal/domain/model"
	"cep-api/internal/domain/usecase/cep"
	"cep-api/internal/domain/usecase/forecast"
	"cep-api/pkg/util/numberutils"
)

type CepController struct {
	api             *echo.Group
	useCase         cep.UseCase
	forecastUseCase forecast.UseCase
}

func NewCepController(api *echo.Group, useCase cep.UseCase, forecastUseCase forecast.UseCase) *CepController {
	return &CepController{api: api, useCase: useCase, forecastUseCase: forecastUseCase}
}

// InitCepRoutes initializes cep routes
func (controller *CepController) InitCepRoutes() {
	controller.api.GET("/cep/:cep", controller.FindByCep)
	controller.api.GET("/cep/:cep/forecast", controller.FindForecastByCep)
}

// FindByCep godoc
// @Summary Look a CEP up
// @Description Query BrasilAPI and fall back to ViaCEP when it fails
// @Tags cep
// @Produce json
// @Param cep path string true "CEP, masked or digits only"
// @Success 200 {object} entity.CepData "Normalized address"
// @Failure 400 {object} model.ErrorResponse "Invalid CEP"
// @Failure 404 {object} model.ErrorResponse "Every provider failed"
// @Router /cep/{cep} [get]
func (controller *CepController) FindByCep(c echo.Context) error {
	cepData, err := controller.useCase.FetchCepData(c.Request().Context(), c.Param("cep"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, cepData)
}

// FindForecastByCep godoc
// @Summary Look a CEP up and forecast its weather
// @Tags cep
// @Produce json
// @Param cep path string true "CEP, masked or digits only"
// @Param days query int false "Forecast days (1-16)" default(7)
// @Success 200 {object} model.CepForecastResponse "Address and forecast"
// @Success 202 {object} model.CepForecastResponse "Address without a usable location"
// @Failure 400 {object} model.ErrorResponse "Invalid CEP or days"
// @Failure 404 {object} model.ErrorResponse "Every provider failed"
// @Failure 422 {object} model.ErrorResponse "Location could not be geocoded"
// @Failure 502 {object} model.ErrorResponse "Weather service failed"
// @Router /cep/{cep}/forecast [get]
func (controller *CepController) FindForecastByCep(c echo.Context) error {
	days := parseDays(c.QueryParam("days"))
	ctx := c.Request().Context()

	if days < forecast.MinDays || days > forecast.MaxDays {
		return writeError(c, &forecast.InvalidDaysError{Days: days})
	}

	cepData, err := controller.useCase.FetchCepData(ctx, c.Param("cep"))
	if err != nil {
		return writeError(c, err)
	}

	result, err := controller.forecastUseCase.Forecast(ctx, cepData, days)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(forecastStatus(result), model.CepForecastResponse{CepData: cepData, Forecast: result})
}

// parseDays falls back to DefaultDays when absent; garbage becomes 0 and is rejected
func parseDays(raw string) int {
	if raw == "" {
		return forecast.DefaultDays
	}
	return numberutils.ToIntWithDefault(raw, 0)
}

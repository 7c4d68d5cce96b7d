package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"cep-api/internal/domain/model"
	"cep-api/internal/domain/usecase/health"
)

type HealthController struct {
	api     *echo.Group
	useCase health.UseCase
}

func NewHealthController(api *echo.Group, useCase health.UseCase) *HealthController {
	return &HealthController{api: api, useCase: useCase}
}

// InitHealthRoutes initializes health check routes
func (controller *HealthController) InitHealthRoutes() {
	controller.api.GET("/health", controller.CheckHealth())
}

// CheckHealth godoc
// @Summary Service health
// @Description Report the state of history storage, memo cache and lookup event queue
// @Tags health
// @Produce json
// @Success 200 {object} model.HealthResponse "Every required component is up"
// @Failure 503 {object} model.HealthResponse "History storage or cache is down"
// @Router /health [get]
func (controller *HealthController) CheckHealth() echo.HandlerFunc {
	return func(c echo.Context) error {
		healthResponse := controller.useCase.CheckHealth(c.Request().Context())

		if healthResponse.Status != model.StatusUp {
			return c.JSON(http.StatusServiceUnavailable, healthResponse)
		}
		return c.JSON(http.StatusOK, healthResponse)
	}
}

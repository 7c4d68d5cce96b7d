package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"cep-api/internal/domain/usecase/history"
)

type HistoryController struct {
	api     *echo.Group
	useCase history.UseCase
}

func NewHistoryController(api *echo.Group, useCase history.UseCase) *HistoryController {
	return &HistoryController{api: api, useCase: useCase}
}

// InitHistoryRoutes initializes history routes
func (controller *HistoryController) InitHistoryRoutes() {
	controller.api.GET("/history", controller.List)
	controller.api.GET("/history/:cep", controller.FindByCep)
	controller.api.DELETE("/history", controller.Clear)
}

// List godoc
// @Summary List recent lookups
// @Tags history
// @Produce json
// @Success 200 {array} entity.ConsultaHistorico "Lookups, newest first"
// @Failure 500 {object} model.ErrorResponse "History storage failed"
// @Router /history [get]
func (controller *HistoryController) List(c echo.Context) error {
	entries, err := controller.useCase.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, entries)
}

// FindByCep godoc
// @Summary Replay a stored lookup
// @Description Return the stored address without querying the providers again
// @Tags history
// @Produce json
// @Param cep path string true "CEP"
// @Success 200 {object} entity.ConsultaHistorico "Stored lookup"
// @Failure 404 {object} model.ErrorResponse "CEP not in history"
// @Router /history/{cep} [get]
func (controller *HistoryController) FindByCep(c echo.Context) error {
	entry, err := controller.useCase.FindByCep(c.Request().Context(), c.Param("cep"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, entry)
}

// Clear godoc
// @Summary Clear the lookup history
// @Tags history
// @Success 204 "History cleared"
// @Failure 500 {object} model.ErrorResponse "History storage failed"
// @Router /history [delete]
func (controller *HistoryController) Clear(c echo.Context) error {
	if err := controller.useCase.Clear(c.Request().Context()); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

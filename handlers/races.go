package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Races lists races whose name contains the q param, with result counts.
func (h *Handler) Races(c echo.Context) error {
	races, err := h.store.Races(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError).SetInternal(err)
	}

	return c.JSON(http.StatusOK, races)
}

package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ldmxd/oceanswimmer/swims"
)

// SearchSwims returns one page of swim results matching the optional
// forename, surname, raceId, category and gender filters.
func (h *Handler) SearchSwims(c echo.Context) error {
	crit := swims.Criteria{
		Forename: c.QueryParam("forename"),
		Surname:  c.QueryParam("surname"),
		Race:     c.QueryParam("race"),
		Category: c.QueryParam("category"),
		Gender:   c.QueryParam("gender"),
		Page:     1,
		PageSize: swims.DefaultPageSize,
	}

	var raceID int
	err := echo.QueryParamsBinder(c).
		Int("raceId", &raceID).
		Int("page", &crit.Page).
		Int("pageSize", &crit.PageSize).
		BindError()
	if err != nil {
		return badParam(err)
	}
	if c.QueryParam("raceId") != "" {
		crit.RaceID = &raceID
	}

	page, err := h.store.Search(c.Request().Context(), crit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError).SetInternal(err)
	}

	return c.JSON(http.StatusOK, page)
}

func badParam(err error) error {
	var be *echo.BindingError
	if errors.As(err, &be) {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid %s param", be.Field)).SetInternal(err)
	}
	return echo.NewHTTPError(http.StatusBadRequest, err.Error())
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"recordshop/internal/model"
)

// Formats godoc
// @Summary List media formats
// @Tags catalog
// @Produce json
// @Success 200 {array} string
// @Router /formats [get]
func Formats(c echo.Context) error {
	return c.JSON(http.StatusOK, model.Formats())
}

// Genres godoc
// @Summary List genres
// @Tags catalog
// @Produce json
// @Success 200 {array} string
// @Router /genres [get]
func Genres(c echo.Context) error {
	return c.JSON(http.StatusOK, model.Genres())
}

// Banner answers the root path so a browser hit shows the API is up.
func Banner(c echo.Context) error {
	return c.String(http.StatusOK, "Record Shop API is running")
}

// Health is the liveness probe.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

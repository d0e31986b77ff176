package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "recordshop/internal/errors"
	"recordshop/internal/logger"
	"recordshop/internal/validation"
)

// fail turns a service error into an echo error carrying an ErrorResponse.
func fail(c echo.Context, err error) error {
	httpErr := apperrors.MapErrorToHTTP(err)
	resp := httpErr.ToErrorResponse()

	var fields validation.Errors
	if errors.As(err, &fields) {
		resp.Fields = fields
	}
	if httpErr.StatusCode >= 500 {
		logger.Log.Errorw("request failed", "method", c.Request().Method, "path", c.Path(), "error", err)
	}
	return echo.NewHTTPError(httpErr.StatusCode, resp)
}

// invalid rejects a request body that failed validation, listing the fields at fault.
func invalid(err error) error {
	resp := apperrors.ErrorResponse{Message: err.Error(), Code: "VALIDATION_ERROR"}
	var fields validation.Errors
	if errors.As(err, &fields) {
		resp.Fields = fields
	}
	return echo.NewHTTPError(http.StatusBadRequest, resp)
}

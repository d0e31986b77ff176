package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "recordshop/internal/errors"
	"recordshop/internal/logger"
	"recordshop/internal/policy"
)

// RequirePermission aborts with 403 unless the session role may perform
// action. It must run after Session.
func RequirePermission(action policy.Action) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session, ok := CurrentSession(c)
			if !ok {
				return unauthorized()
			}
			if !policy.Allowed(session.Role, action) {
				logger.Log.Warnw("permission denied", "user_id", session.UserID, "role", session.Role, "action", action)
				return echo.NewHTTPError(http.StatusForbidden, apperrors.ErrorResponse{
					Message: apperrors.ErrForbidden.Error(),
					Code:    "FORBIDDEN",
				})
			}
			return next(c)
		}
	}
}

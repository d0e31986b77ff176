package middleware

import (
	"errors"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"recordshop/internal/auth"
	apperrors "recordshop/internal/errors"
	"recordshop/internal/service"
)

const (
	tokenContextKey   = "user"
	sessionContextKey = "session"
)

// JWT validates the bearer token and stores it in the context under "user".
func JWT(secret []byte) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey:  secret,
		ContextKey:  tokenContextKey,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return unauthorized()
		},
	})
}

// Session resolves the token's session id against the session store and
// rejects tokens whose session expired or was logged out.
func Session(authService service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get(tokenContextKey).(*jwt.Token)
			if !ok {
				return unauthorized()
			}
			claims, ok := token.Claims.(*auth.Claims)
			if !ok || claims.ID == "" {
				return unauthorized()
			}

			session, err := authService.Authenticate(c.Request().Context(), claims.ID)
			if err != nil {
				if errors.Is(err, apperrors.ErrSessionInvalid) {
					return unauthorized()
				}
				return err
			}

			c.Set(sessionContextKey, session)
			return next(c)
		}
	}
}

// CurrentSession returns the session stored by Session.
func CurrentSession(c echo.Context) (*auth.Session, bool) {
	session, ok := c.Get(sessionContextKey).(*auth.Session)
	return session, ok && session != nil
}

func unauthorized() error {
	return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
		Message: apperrors.ErrSessionInvalid.Error(),
		Code:    "SESSION_INVALID",
	})
}

package router

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"recordshop/internal/config"
	"recordshop/internal/handler"
	"recordshop/internal/logger"
	"recordshop/internal/middleware"
	"recordshop/internal/policy"
	"recordshop/internal/service"
	"recordshop/internal/validation"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authService service.AuthService,
	authHandler *handler.AuthHandler,
	recordHandler *handler.RecordHandler,
) {
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			logger.Log.Infow("request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency.String(),
			)
			return nil
		},
	}))
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	e.Validator = validation.New()

	e.GET("/", handler.Banner)
	e.GET("/healthz", handler.Health)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/login", authHandler.Login)
	api.GET("/formats", handler.Formats)
	api.GET("/genres", handler.Genres)
	api.GET("/records", recordHandler.ListRecords)
	api.GET("/records/:id", recordHandler.GetRecord)

	// Per-route auth keeps 404 and 405 for unknown paths and methods under /api.
	jwt := middleware.JWT([]byte(cfg.JWTSecret))
	session := middleware.Session(authService)
	secured := func(extra ...echo.MiddlewareFunc) []echo.MiddlewareFunc {
		return append([]echo.MiddlewareFunc{jwt, session}, extra...)
	}

	api.POST("/logout", authHandler.Logout, secured()...)
	api.GET("/me", authHandler.Me, secured()...)

	if !cfg.EnforceRolePolicy {
		logger.Log.Warn("role policy is not enforced on mutating record routes")
		api.POST("/records", recordHandler.CreateRecord)
		api.PUT("/records/:id", recordHandler.UpdateRecord)
		api.DELETE("/records/:id", recordHandler.DeleteRecord)
		return
	}

	api.POST("/records", recordHandler.CreateRecord, secured(middleware.RequirePermission(policy.ActionAdd))...)
	api.PUT("/records/:id", recordHandler.UpdateRecord, secured(middleware.RequirePermission(policy.ActionUpdate))...)
	api.DELETE("/records/:id", recordHandler.DeleteRecord, secured(middleware.RequirePermission(policy.ActionDelete))...)
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"recordshop/docs"
	"recordshop/internal/auth"
	"recordshop/internal/cache"
	"recordshop/internal/config"
	"recordshop/internal/db"
	"recordshop/internal/handler"
	"recordshop/internal/logger"
	"recordshop/internal/model"
	"recordshop/internal/repository"
	"recordshop/internal/router"
	"recordshop/internal/service"
	"recordshop/internal/validation"
)

// @title Record Shop API
// @version 1.0
// @description Inventory API for the record shop staff client.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	envErr := godotenv.Load()

	cfg := config.Load()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	if envErr != nil {
		logger.Log.Warnw("no .env file loaded, using environment", "error", envErr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cacheClient := cache.New(ctx, cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()
	if cfg.RedisAddr != "" && !cacheClient.Enabled() {
		logger.Log.Warnw("redis unreachable, running without cache", "addr", cfg.RedisAddr)
	}

	recordRepo, userRepo := buildRepositories(cfg)

	if cfg.PasswordMode == service.PasswordModeBcrypt && cfg.StoreBackend == config.BackendMemory {
		users, err := userRepo.List(ctx)
		if err != nil {
			logger.Log.Fatalw("load staff directory", "error", err)
		}
		hashed, err := service.HashDirectory(users)
		if err != nil {
			logger.Log.Fatalw("hash staff directory", "error", err)
		}
		userRepo = repository.NewStaticUserRepository(hashed)
	}

	var validator *validation.Validator
	if cfg.ValidateRecords {
		validator = validation.New()
	}

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	sessionStore := auth.NewSessionStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, sessionStore, service.AuthOptions{
		SessionTTL:   cfg.SessionTTL,
		PasswordMode: cfg.PasswordMode,
	})
	recordService := service.NewRecordService(recordRepo, cacheClient, validator)

	e := echo.New()
	e.HideBanner = true
	router.Register(
		e,
		cfg,
		authService,
		handler.NewAuthHandler(authService),
		handler.NewRecordHandler(recordService),
	)

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = strings.TrimPrefix(strings.TrimPrefix(cfg.SwaggerHost, "http://"), "https://")
	}

	addr := ":" + cfg.ServerPort
	logger.Log.Infow("starting server",
		"addr", addr,
		"store", cfg.StoreBackend,
		"enforce_role_policy", cfg.EnforceRolePolicy,
		"validate_records", cfg.ValidateRecords,
		"swagger", "http://"+docs.SwaggerInfo.Host+"/swagger/index.html",
	)

	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatalw("server start", "error", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("server shutdown", "error", err)
	}
	logger.Log.Info("server stopped")
}

func buildRepositories(cfg *config.Config) (repository.RecordRepository, repository.UserRepository) {
	switch cfg.StoreBackend {
	case config.BackendMySQL:
		gormDB, err := db.NewMySQL(cfg.MySQLDSN)
		if err != nil {
			logger.Log.Fatalw("database init", "error", err)
		}
		if err := db.Migrate(gormDB); err != nil {
			logger.Log.Fatalw("database migrate", "error", err)
		}
		return repository.NewRecordRepository(gormDB), repository.NewUserRepository(gormDB)
	case config.BackendMemory:
		return repository.NewMemoryRecordRepository(model.DemoRecords()), repository.NewStaticUserRepository(model.DemoUsers())
	default:
		logger.Log.Fatalw("unknown store backend", "backend", cfg.StoreBackend)
		return nil, nil
	}
}

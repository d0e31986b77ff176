package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"recordshop/internal/config"
	"recordshop/internal/db"
	"recordshop/internal/logger"
	"recordshop/internal/model"
	"recordshop/internal/service"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	logger.Log.Info("starting seed script")

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		logger.Log.Fatalw("failed to connect to database", "error", err)
	}

	if os.Getenv("RESET_DB") == "true" {
		logger.Log.Warn("RESET_DB=true detected, dropping records and users tables")
		if err := gormDB.Migrator().DropTable(&model.Record{}, &model.User{}); err != nil {
			logger.Log.Warnw("failed to drop tables (may not exist)", "error", err)
		}
	}

	if err := db.Migrate(gormDB); err != nil {
		logger.Log.Fatalw("failed to run migrations", "error", err)
	}

	users := model.DemoUsers()
	if cfg.PasswordMode == service.PasswordModeBcrypt {
		if users, err = service.HashDirectory(users); err != nil {
			logger.Log.Fatalw("failed to hash staff passwords", "error", err)
		}
	}

	records := model.DemoRecords()
	if err := db.Seed(context.Background(), gormDB, records, users); err != nil {
		logger.Log.Fatalw("seed failed", "error", err)
	}

	logger.Log.Infow("seed completed", "records", len(records), "users", len(users))
}

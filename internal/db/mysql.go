package db

import (
	"context"
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"recordshop/internal/model"
)

// NewMySQL returns a connected GORM DB instance.
func NewMySQL(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect mysql: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the inventory and directory tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.Record{}, &model.User{}); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}

// Seed loads the demo inventory and staff directory. Rows that already exist
// are left alone, so running it twice is harmless.
func Seed(ctx context.Context, db *gorm.DB, records []model.Record, users []model.User) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(users) > 0 {
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&users).Error; err != nil {
				return fmt.Errorf("seed users: %w", err)
			}
		}
		if len(records) > 0 {
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&records).Error; err != nil {
				return fmt.Errorf("seed records: %w", err)
			}
		}
		return nil
	})
}

package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"recordshop/internal/model"
)

// ErrNotFound is returned by every backend when no row matches the id.
var ErrNotFound = errors.New("not found")

// RecordRepository defines record persistence operations.
type RecordRepository interface {
	List(ctx context.Context) ([]model.Record, error)
	FindByID(ctx context.Context, id uint) (*model.Record, error)
	Create(ctx context.Context, record *model.Record) error
	Update(ctx context.Context, id uint, patch model.RecordPatch) (*model.Record, error)
	Delete(ctx context.Context, id uint) (*model.Record, error)
}

// Scoped is implemented by stores whose ids are only meaningful for the
// lifetime of the store value. Scope returns a token unique to that lifetime.
type Scoped interface {
	Scope() string
}

type recordRepository struct {
	db *gorm.DB
}

// NewRecordRepository creates a GORM-backed record repository.
func NewRecordRepository(db *gorm.DB) RecordRepository {
	return &recordRepository{db: db}
}

// List returns every record in id order.
func (r *recordRepository) List(ctx context.Context) ([]model.Record, error) {
	records := []model.Record{}
	if err := r.db.WithContext(ctx).Order("id asc").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// FindByID finds a record by ID.
func (r *recordRepository) FindByID(ctx context.Context, id uint) (*model.Record, error) {
	var record model.Record
	if err := r.db.WithContext(ctx).First(&record, id).Error; err != nil {
		return nil, translate(err)
	}
	return &record, nil
}

// Create inserts the record; the database assigns the id.
func (r *recordRepository) Create(ctx context.Context, record *model.Record) error {
	record.ID = 0
	return r.db.WithContext(ctx).Create(record).Error
}

// Update merges the patch over the stored record.
func (r *recordRepository) Update(ctx context.Context, id uint, patch model.RecordPatch) (*model.Record, error) {
	var updated *model.Record
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var record model.Record
		if err := tx.First(&record, id).Error; err != nil {
			return translate(err)
		}
		patch.Apply(&record)
		if err := tx.Save(&record).Error; err != nil {
			return err
		}
		updated = &record
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the record and returns what was stored.
func (r *recordRepository) Delete(ctx context.Context, id uint) (*model.Record, error) {
	var deleted *model.Record
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var record model.Record
		if err := tx.First(&record, id).Error; err != nil {
			return translate(err)
		}
		if err := tx.Delete(&model.Record{}, id).Error; err != nil {
			return err
		}
		deleted = &record
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

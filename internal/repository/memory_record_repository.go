package repository

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"recordshop/internal/model"
)

// memoryRecordRepository keeps records in insertion order in process memory.
// Each call is atomic, but nothing orders calls against each other: the last
// write wins and data is gone on restart.
type memoryRecordRepository struct {
	mu      sync.RWMutex
	records []model.Record
	nextID  uint
	scope   string
}

// NewMemoryRecordRepository creates an in-memory repository holding a copy of seed.
// The id counter starts after the largest seeded id.
func NewMemoryRecordRepository(seed []model.Record) RecordRepository {
	repo := &memoryRecordRepository{
		records: make([]model.Record, 0, len(seed)),
		nextID:  1,
		scope:   uuid.NewString(),
	}
	for _, rec := range seed {
		repo.records = append(repo.records, rec)
		if rec.ID >= repo.nextID {
			repo.nextID = rec.ID + 1
		}
	}
	return repo
}

// Scope is fresh for every repository value, since ids restart with the seed.
func (r *memoryRecordRepository) Scope() string {
	return r.scope
}

func (r *memoryRecordRepository) List(_ context.Context) ([]model.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Record, len(r.records))
	copy(out, r.records)
	return out, nil
}

func (r *memoryRecordRepository) FindByID(_ context.Context, id uint) (*model.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	rec := r.records[i]
	return &rec, nil
}

// Create assigns the next id from the running counter. Ids are never handed
// out twice, even after the record holding one is deleted.
func (r *memoryRecordRepository) Create(_ context.Context, record *model.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	record.ID = r.nextID
	r.nextID++
	r.records = append(r.records, *record)
	return nil
}

func (r *memoryRecordRepository) Update(_ context.Context, id uint, patch model.RecordPatch) (*model.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	patch.Apply(&r.records[i])
	rec := r.records[i]
	return &rec, nil
}

func (r *memoryRecordRepository) Delete(_ context.Context, id uint) (*model.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	deleted := r.records[i]
	r.records = append(r.records[:i], r.records[i+1:]...)
	return &deleted, nil
}

// indexOf must be called with the lock held.
func (r *memoryRecordRepository) indexOf(id uint) int {
	for i := range r.records {
		if r.records[i].ID == id {
			return i
		}
	}
	return -1
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"recordshop/internal/cache"
	apperrors "recordshop/internal/errors"
	"recordshop/internal/logger"
	"recordshop/internal/model"
	"recordshop/internal/repository"
	"recordshop/internal/validation"
)

const recordCacheTTL = 5 * time.Minute

// RecordService exposes inventory operations.
type RecordService interface {
	ListRecords(ctx context.Context) ([]model.Record, error)
	GetRecord(ctx context.Context, id uint) (*model.Record, error)
	CreateRecord(ctx context.Context, in model.RecordInput) (*model.Record, error)
	UpdateRecord(ctx context.Context, id uint, patch model.RecordPatch) (*model.Record, error)
	DeleteRecord(ctx context.Context, id uint) (*model.Record, error)
}

// RecordCache is the part of the cache client the record service needs.
// *cache.Client satisfies it, nil included.
type RecordCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type recordService struct {
	repo      repository.RecordRepository
	cache     RecordCache
	validator *validation.Validator
	keyPrefix string

	// mu orders cache fills against invalidations; writes counts mutations
	// so a fill that raced one is dropped.
	mu     sync.Mutex
	writes uint64
}

// NewRecordService builds a RecordService with repository and cache. When
// validator is nil, bodies are stored as parsed. Stores that implement
// repository.Scoped get cache keys of their own.
func NewRecordService(repo repository.RecordRepository, recordCache RecordCache, validator *validation.Validator) RecordService {
	if recordCache == nil {
		recordCache = (*cache.Client)(nil)
	}
	prefix := "record:"
	if scoped, ok := repo.(repository.Scoped); ok {
		prefix = "record:" + scoped.Scope() + ":"
	}
	return &recordService{repo: repo, cache: recordCache, validator: validator, keyPrefix: prefix}
}

func (s *recordService) cacheKey(id uint) string {
	return fmt.Sprintf("%s%d", s.keyPrefix, id)
}

func (s *recordService) ListRecords(ctx context.Context) ([]model.Record, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return records, nil
}

func (s *recordService) GetRecord(ctx context.Context, id uint) (*model.Record, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.Record
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	s.mu.Lock()
	seen := s.writes
	s.mu.Unlock()

	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err)
	}

	s.store(ctx, record, seen)
	return record, nil
}

func (s *recordService) CreateRecord(ctx context.Context, in model.RecordInput) (*model.Record, error) {
	if err := s.validate(in); err != nil {
		return nil, err
	}

	record := in.ToRecord()
	if err := s.repo.Create(ctx, &record); err != nil {
		return nil, fmt.Errorf("create record: %w", err)
	}

	s.invalidate(ctx, record.ID)
	logger.Log.Infow("record created", "record_id", record.ID, "title", record.Title)
	return &record, nil
}

func (s *recordService) UpdateRecord(ctx context.Context, id uint, patch model.RecordPatch) (*model.Record, error) {
	if s.validator != nil {
		current, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, translate(err)
		}
		merged := *current
		patch.Apply(&merged)
		if err := s.validate(merged.Input()); err != nil {
			return nil, err
		}
	}

	record, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, translate(err)
	}

	s.invalidate(ctx, id)
	logger.Log.Infow("record updated", "record_id", id)
	return record, nil
}

func (s *recordService) DeleteRecord(ctx context.Context, id uint) (*model.Record, error) {
	record, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, translate(err)
	}

	s.invalidate(ctx, id)
	logger.Log.Infow("record deleted", "record_id", id)
	return record, nil
}

func (s *recordService) validate(in model.RecordInput) error {
	if s.validator == nil {
		return nil
	}
	if err := s.validator.ValidateRecord(in); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrInvalidRecord, err)
	}
	return nil
}

// store caches record unless a mutation happened since seen was read.
func (s *recordService) store(ctx context.Context, record *model.Record, seen uint64) {
	payload, err := json.Marshal(record)
	if err != nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.writes != seen {
		return
	}
	_ = s.cache.Set(ctx, s.cacheKey(record.ID), payload, recordCacheTTL)
}

func (s *recordService) invalidate(ctx context.Context, id uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes++
	_ = s.cache.Delete(ctx, s.cacheKey(id))
}

func translate(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.ErrRecordNotFound
	}
	return err
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "recordshop/internal/errors"
	"recordshop/internal/model"
	"recordshop/internal/repository"
	"recordshop/internal/validation"
)

func strPtr(s string) *string { return &s }

func TestRecordService_GetRecord(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(*MockRecordRepository)
		expectedError error
	}{
		{
			name: "found",
			setupMock: func(m *MockRecordRepository) {
				m.On("FindByID", mock.Anything, uint(1)).Return(&model.Record{ID: 1, Title: "Californication"}, nil)
			},
		},
		{
			name: "missing id maps to record not found",
			setupMock: func(m *MockRecordRepository) {
				m.On("FindByID", mock.Anything, uint(1)).Return(nil, repository.ErrNotFound)
			},
			expectedError: apperrors.ErrRecordNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockRecordRepository)
			tt.setupMock(mockRepo)

			svc := NewRecordService(mockRepo, nil, nil)
			record, err := svc.GetRecord(context.Background(), 1)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, record)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "Californication", record.Title)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestRecordService_CreateRecordWithoutValidationAcceptsAnyBody(t *testing.T) {
	mockRepo := new(MockRecordRepository)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Record")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*model.Record).ID = 7
		}).
		Return(nil)

	svc := NewRecordService(mockRepo, nil, nil)
	record, err := svc.CreateRecord(context.Background(), model.RecordInput{Title: "Untitled"})

	require.NoError(t, err)
	assert.Equal(t, uint(7), record.ID)
	mockRepo.AssertExpectations(t)
}

func TestRecordService_CreateRecordRejectsInvalidBody(t *testing.T) {
	mockRepo := new(MockRecordRepository)
	v := validation.NewWithClock(func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) })

	svc := NewRecordService(mockRepo, nil, v)
	_, err := svc.CreateRecord(context.Background(), model.RecordInput{Title: "Untitled"})

	assert.ErrorIs(t, err, apperrors.ErrInvalidRecord)
	var fields validation.Errors
	require.ErrorAs(t, err, &fields)
	assert.Equal(t, "This field is required", fields[validation.FieldArtist])
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRecordService_UpdateRecordValidatesMergedRecord(t *testing.T) {
	v := validation.NewWithClock(func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) })
	current := &model.Record{
		ID: 2, Title: "Black Summer", Artist: "Red Hot Chili Peppers", Format: "CD", Genre: "Rock",
		ReleaseYear: 2022, Price: decimal.RequireFromString("15.99"), StockQty: 3,
		CustomerID: "12A", CustomerFirstName: "Sam", CustomerLastName: "Doyle",
		CustomerContact: "12345678", CustomerEmail: "sam@example.com",
	}

	t.Run("valid patch is stored", func(t *testing.T) {
		mockRepo := new(MockRecordRepository)
		patch := model.RecordPatch{Title: strPtr("Black Summer (Live)")}
		updated := *current
		updated.Title = "Black Summer (Live)"
		mockRepo.On("FindByID", mock.Anything, uint(2)).Return(current, nil)
		mockRepo.On("Update", mock.Anything, uint(2), patch).Return(&updated, nil)

		svc := NewRecordService(mockRepo, nil, v)
		record, err := svc.UpdateRecord(context.Background(), 2, patch)

		require.NoError(t, err)
		assert.Equal(t, "Black Summer (Live)", record.Title)
		mockRepo.AssertExpectations(t)
	})

	t.Run("invalid patch never reaches the store", func(t *testing.T) {
		mockRepo := new(MockRecordRepository)
		mockRepo.On("FindByID", mock.Anything, uint(2)).Return(current, nil)

		svc := NewRecordService(mockRepo, nil, v)
		_, err := svc.UpdateRecord(context.Background(), 2, model.RecordPatch{CustomerID: strPtr("12")})

		assert.ErrorIs(t, err, apperrors.ErrInvalidRecord)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestRecordService_DeleteRecord(t *testing.T) {
	mockRepo := new(MockRecordRepository)
	mockRepo.On("Delete", mock.Anything, uint(3)).Return(&model.Record{ID: 3}, nil).Once()
	mockRepo.On("Delete", mock.Anything, uint(3)).Return(nil, repository.ErrNotFound).Once()

	svc := NewRecordService(mockRepo, nil, nil)

	record, err := svc.DeleteRecord(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, uint(3), record.ID)

	_, err = svc.DeleteRecord(context.Background(), 3)
	assert.ErrorIs(t, err, apperrors.ErrRecordNotFound)
	mockRepo.AssertExpectations(t)
}

func TestRecordService_CacheDoesNotOutliveMemoryStore(t *testing.T) {
	ctx := context.Background()
	shared := newFakeCache()

	first := NewRecordService(repository.NewMemoryRecordRepository(model.DemoRecords()), shared, nil)
	created, err := first.CreateRecord(ctx, model.RecordInput{Title: "Blue Train", Artist: "John Coltrane"})
	require.NoError(t, err)
	cached, err := first.GetRecord(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Blue Train", cached.Title)

	// A restarted server seeds a fresh store and hands out the same id again.
	second := NewRecordService(repository.NewMemoryRecordRepository(model.DemoRecords()), shared, nil)
	_, err = second.GetRecord(ctx, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrRecordNotFound)

	again, err := second.CreateRecord(ctx, model.RecordInput{Title: "Giant Steps", Artist: "John Coltrane"})
	require.NoError(t, err)
	require.Equal(t, created.ID, again.ID)

	got, err := second.GetRecord(ctx, again.ID)
	require.NoError(t, err)
	assert.Equal(t, "Giant Steps", got.Title)
}

func TestRecordService_CreateRecordDropsCachedEntryForNewID(t *testing.T) {
	shared := newFakeCache()
	require.NoError(t, shared.Set(context.Background(), "record:7", []byte(`{"id":7,"title":"Stale"}`), time.Minute))

	mockRepo := new(MockRecordRepository)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Record")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*model.Record).ID = 7
		}).
		Return(nil)

	svc := NewRecordService(mockRepo, shared, nil)
	_, err := svc.CreateRecord(context.Background(), model.RecordInput{Title: "Fresh"})

	require.NoError(t, err)
	assert.False(t, shared.has("record:7"))
}

func TestRecordService_GetRecordSkipsCacheFillAfterConcurrentUpdate(t *testing.T) {
	ctx := context.Background()
	shared := newFakeCache()
	mockRepo := new(MockRecordRepository)
	patch := model.RecordPatch{Title: strPtr("New Title")}

	var svc RecordService
	mockRepo.On("FindByID", mock.Anything, uint(1)).
		Run(func(mock.Arguments) {
			// The update lands between the read and the cache fill.
			_, err := svc.UpdateRecord(ctx, 1, patch)
			require.NoError(t, err)
		}).
		Return(&model.Record{ID: 1, Title: "Old Title"}, nil).Once()
	mockRepo.On("Update", mock.Anything, uint(1), patch).
		Return(&model.Record{ID: 1, Title: "New Title"}, nil).Once()

	svc = NewRecordService(mockRepo, shared, nil)
	record, err := svc.GetRecord(ctx, 1)

	require.NoError(t, err)
	assert.Equal(t, "Old Title", record.Title)
	assert.False(t, shared.has("record:1"))
	mockRepo.AssertExpectations(t)
}

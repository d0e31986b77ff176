package repository

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"recordshop/internal/model"
)

// setupTestDB opens an in-memory SQLite database with the record and user tables.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	// Every pooled connection to :memory: would get its own empty database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&model.Record{}, &model.User{}))
	return db
}

func TestRecordRepository_CRUD(t *testing.T) {
	repo := NewRecordRepository(setupTestDB(t))
	ctx := context.Background()

	first := model.Record{
		Title:       "X",
		Artist:      "Y",
		Format:      "CD",
		Genre:       "Pop",
		ReleaseYear: 2020,
		Price:       decimal.RequireFromString("9.99"),
		StockQty:    3,
		CustomerID:  "123A",
	}
	require.NoError(t, repo.Create(ctx, &first))
	assert.NotZero(t, first.ID)

	second := model.Record{Title: "Second", Artist: "Y"}
	require.NoError(t, repo.Create(ctx, &second))
	assert.Greater(t, second.ID, first.ID)

	records, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, first.ID, records[0].ID)
	assert.True(t, records[0].Price.Equal(decimal.RequireFromString("9.99")))

	updated, err := repo.Update(ctx, first.ID, model.RecordPatch{StockQty: intPtr(10)})
	require.NoError(t, err)
	assert.Equal(t, 10, updated.StockQty)
	assert.Equal(t, "X", updated.Title)
	assert.Equal(t, "123A", updated.CustomerID)

	deleted, err := repo.Delete(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, deleted.ID)

	_, err = repo.Delete(ctx, first.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.FindByID(ctx, first.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecordRepository_UpdateUnknownID(t *testing.T) {
	repo := NewRecordRepository(setupTestDB(t))

	rec, err := repo.Update(context.Background(), 404, model.RecordPatch{Title: strPtr("nope")})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, rec)
}

func TestRecordRepository_IDsNotReusedAfterDelete(t *testing.T) {
	repo := NewRecordRepository(setupTestDB(t))
	ctx := context.Background()

	a := model.Record{Title: "A"}
	require.NoError(t, repo.Create(ctx, &a))
	_, err := repo.Delete(ctx, a.ID)
	require.NoError(t, err)

	b := model.Record{Title: "B"}
	require.NoError(t, repo.Create(ctx, &b))
	assert.Greater(t, b.ID, a.ID)
}

func TestUserRepository_FindByEmail(t *testing.T) {
	db := setupTestDB(t)
	users := model.DemoUsers()
	require.NoError(t, db.Create(&users).Error)

	repo := NewUserRepository(db)
	ctx := context.Background()

	user, err := repo.FindByEmail(ctx, "manager@recordshop.com")
	require.NoError(t, err)
	assert.Equal(t, model.RoleManager, user.Role)

	_, err = repo.FindByEmail(ctx, "nobody@recordshop.com")
	assert.ErrorIs(t, err, ErrNotFound)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 3)
}

func TestStaticUserRepository(t *testing.T) {
	repo := NewStaticUserRepository(model.DemoUsers())
	ctx := context.Background()

	user, err := repo.FindByEmail(ctx, "admin@recordshop.com")
	require.NoError(t, err)
	assert.Equal(t, "Alex Admin", user.Name)

	_, err = repo.FindByEmail(ctx, "ADMIN@recordshop.com")
	assert.ErrorIs(t, err, ErrNotFound)

	byID, err := repo.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, model.RoleClerk, byID.Role)

	_, err = repo.FindByID(ctx, 9)
	assert.ErrorIs(t, err, ErrNotFound)
}

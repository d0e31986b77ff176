package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recordshop/internal/model"
)

func testSession(now time.Time) Session {
	return Session{
		ID:        "8f0c6a52-7d3e-4f43-9a55-1b0b8c9f6a10",
		UserID:    3,
		Email:     "admin@recordshop.com",
		Name:      "Alex Admin",
		Role:      model.RoleAdmin,
		CreatedAt: now,
		ExpiresAt: now.Add(time.Hour),
	}
}

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret")
	session := testSession(time.Now())

	token, err := svc.GenerateToken(session)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, session.ID, claims.ID)
	assert.Equal(t, session.UserID, claims.UserID)
	assert.Equal(t, model.RoleAdmin, claims.Role)
	assert.Equal(t, "3", claims.Subject)
}

func TestJWTService_RejectsForeignSecret(t *testing.T) {
	token, err := NewJWTService("one").GenerateToken(testSession(time.Now()))
	require.NoError(t, err)

	_, err = NewJWTService("two").ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsExpiredToken(t *testing.T) {
	svc := NewJWTService("test-secret")
	token, err := svc.GenerateToken(testSession(time.Now().Add(-2 * time.Hour)))
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestSessionValid(t *testing.T) {
	now := time.Now()
	session := testSession(now)

	assert.True(t, session.Valid(now))
	assert.False(t, session.Valid(session.ExpiresAt))
	assert.False(t, Session{}.Valid(now))
	assert.Equal(t, "Alex Admin", session.Profile().Name)
}

func TestMemorySessionStore(t *testing.T) {
	store := NewMemorySessionStore()
	now := time.Now()
	store.now = func() time.Time { return now }
	ctx := context.Background()

	session := testSession(now)
	require.NoError(t, store.Save(ctx, session))

	got, err := store.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.Email, got.Email)

	require.NoError(t, store.Delete(ctx, session.ID))
	_, err = store.Get(ctx, session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemorySessionStore_ExpiresLazily(t *testing.T) {
	store := NewMemorySessionStore()
	now := time.Now()
	store.now = func() time.Time { return now }
	ctx := context.Background()

	session := testSession(now)
	require.NoError(t, store.Save(ctx, session))

	now = now.Add(2 * time.Hour)
	_, err := store.Get(ctx, session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestNewSessionStoreFallsBackToMemory(t *testing.T) {
	_, ok := NewSessionStore(nil).(*MemorySessionStore)
	assert.True(t, ok)
}

func unreachableRedis(t *testing.T) *redis.Client {
	t.Helper()
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRedisSessionStore_ReportsRedisErrors(t *testing.T) {
	store := NewRedisSessionStore(unreachableRedis(t))
	ctx := context.Background()
	session := testSession(time.Now())

	assert.Error(t, store.Save(ctx, session))

	_, err := store.Get(ctx, session.ID)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSessionNotFound)

	err = store.Delete(ctx, session.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "delete session")
}

func TestRedisSessionStore_SkipsExpiredSession(t *testing.T) {
	store := NewRedisSessionStore(unreachableRedis(t))
	session := testSession(time.Now().Add(-2 * time.Hour))

	assert.NoError(t, store.Save(context.Background(), session))
}

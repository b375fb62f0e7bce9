package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// DatabaseStore tests need a Postgres DSN in ATTEMPTGUARD_TEST_POSTGRES_DSN.
func newTestDatabaseStore(t *testing.T) *DatabaseStore {
	t.Helper()

	dsn := os.Getenv("ATTEMPTGUARD_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("ATTEMPTGUARD_TEST_POSTGRES_DSN not set")
	}

	ds, err := NewDatabaseStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ds.Close() })
	return ds
}

func TestDatabaseStoreRoundTrip(t *testing.T) {
	ds := newTestDatabaseStore(t)
	ctx := context.Background()
	t.Cleanup(func() { _ = ds.Delete(ctx, "db-login") })

	first := time.Now().Truncate(time.Second)
	require.NoError(t, ds.Set(ctx, "db-login", State{Attempts: 2, FirstAttempt: first}, time.Minute))

	got, err := ds.Get(ctx, "db-login")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Attempts)
	assert.True(t, first.Equal(got.FirstAttempt))
	assert.True(t, got.LockedUntil.IsZero())

	locked := first.Add(5 * time.Minute)
	require.NoError(t, ds.Set(ctx, "db-login", State{Attempts: 5, FirstAttempt: first, LockedUntil: locked}, 5*time.Minute))

	got, err = ds.Get(ctx, "db-login")
	require.NoError(t, err)
	assert.Equal(t, 5, got.Attempts)
	assert.True(t, locked.Equal(got.LockedUntil))
}

func TestDatabaseStoreExpiryAndPrune(t *testing.T) {
	ds := newTestDatabaseStore(t)
	ctx := context.Background()

	require.NoError(t, ds.Set(ctx, "db-expired", State{Attempts: 1}, -time.Second))

	_, err := ds.Get(ctx, "db-expired")
	require.ErrorIs(t, err, ErrNotFound)

	ok, err := ds.Exists(ctx, "db-expired")
	require.NoError(t, err)
	assert.False(t, ok)

	removed, err := ds.Prune(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, removed, int64(1))
}

func TestDatabaseStoreDeleteMissing(t *testing.T) {
	ds := newTestDatabaseStore(t)
	require.NoError(t, ds.Delete(context.Background(), "db-never-set"))
}

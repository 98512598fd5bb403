//go:build integration

package db

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jonathan/intelliresume/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests require a running PostgreSQL database.
// Set TEST_DATABASE_URL environment variable to run them.

func getTestDB(t *testing.T) *DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	db, err := Connect(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, db.Migrate(ctx))

	_, _ = db.pool.Exec(ctx, "DELETE FROM resume_history")
	return db
}

func TestIntegration_HistoryStore_RoundTrip(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()

	store := NewHistoryStore(db)
	want := []types.HistoryEntry{
		{ID: "b", Name: "Newer", Timestamp: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), Resume: types.ResumeDocument{Skills: []string{"Go"}}},
		{ID: "a", Name: "Older", Timestamp: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Resume: types.ResumeDocument{Summary: "s"}},
	}
	require.NoError(t, store.Save(ctx, want))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].ID)
	assert.Equal(t, []string{"Go"}, got[0].Resume.Skills)
	assert.True(t, want[1].Timestamp.Equal(got[1].Timestamp))

	require.NoError(t, store.Save(ctx, nil))
	got, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

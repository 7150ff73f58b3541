package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kurihiro0119/ghstats/internal/domain"
)

// Runs against a real database only when GHSTATS_TEST_POSTGRES_URL is set.
func TestPostgresSnapshotRoundTrip(t *testing.T) {
	dsn := os.Getenv("GHSTATS_TEST_POSTGRES_URL")
	if dsn == "" {
		t.Skip("GHSTATS_TEST_POSTGRES_URL not set")
	}

	store, err := NewPostgresStorage(dsn)
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	username := "user-" + uuid.NewString()
	at := time.Date(2024, 3, 4, 5, 6, 7, 0, time.UTC)

	snapshot := &domain.Snapshot{
		Run: domain.ExportRun{
			ID:         uuid.NewString(),
			Username:   username,
			FetchedAt:  at,
			StatusCode: 200,
			RepoCount:  1,
			JSONPath:   "a.json",
			CSVPath:    "a.csv",
		},
		Repositories: []domain.SnapshotRepository{
			{Position: 0, FullName: username + "/r", Name: "r", CreatedAt: at, Data: []byte(`{"id":1}`)},
		},
	}
	require.NoError(t, store.SaveSnapshot(ctx, snapshot))

	runs, err := store.ListRuns(ctx, username, 5)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, snapshot.Run.ID, runs[0].ID)
	assert.True(t, at.Equal(runs[0].FetchedAt))
	assert.Equal(t, 1, runs[0].RepoCount)
}

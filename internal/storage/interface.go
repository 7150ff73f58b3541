package storage

import (
	"context"

	"github.com/kurihiro0119/ghstats/internal/domain"
)

// Storage is the abstract interface for the snapshot archive
type Storage interface {
	// SaveSnapshot stores a run and all of its repositories atomically
	SaveSnapshot(ctx context.Context, snapshot *domain.Snapshot) error

	// ListRuns returns the most recent runs for username, newest first
	ListRuns(ctx context.Context, username string, limit int) ([]*domain.ExportRun, error)

	// Migration
	Migrate(ctx context.Context) error

	// Connection management
	Close() error
}

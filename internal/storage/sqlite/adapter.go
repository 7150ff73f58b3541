package sqlite

import (
	"context"
	"database/sql"

	_ "github.com/mattn/go-sqlite3"

	"github.com/kurihiro0119/ghstats/internal/domain"
	"github.com/kurihiro0119/ghstats/internal/storage"
)

// sqliteStorage implements the Storage interface for SQLite
type sqliteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage creates a new SQLite storage instance
func NewSQLiteStorage(dbPath string) (storage.Storage, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, err
	}

	s := &sqliteStorage{db: db}
	if err := s.Migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// Migrate runs database migrations
func (s *sqliteStorage) Migrate(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS export_runs (
		id TEXT PRIMARY KEY,
		username TEXT NOT NULL,
		fetched_at TIMESTAMP NOT NULL,
		status_code INTEGER NOT NULL,
		repo_count INTEGER NOT NULL,
		json_path TEXT NOT NULL,
		csv_path TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_export_runs_username_fetched ON export_runs(username, fetched_at);

	CREATE TABLE IF NOT EXISTS export_repositories (
		run_id TEXT NOT NULL REFERENCES export_runs(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		full_name TEXT NOT NULL,
		name TEXT NOT NULL,
		created_at TIMESTAMP,
		data TEXT NOT NULL,
		PRIMARY KEY (run_id, position)
	);

	CREATE INDEX IF NOT EXISTS idx_export_repositories_full_name ON export_repositories(full_name);
	`

	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// SaveSnapshot saves a run and its repositories in one transaction
func (s *sqliteStorage) SaveSnapshot(ctx context.Context, snapshot *domain.Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	run := snapshot.Run
	_, err = tx.ExecContext(ctx, `
		INSERT INTO export_runs (id, username, fetched_at, status_code, repo_count, json_path, csv_path)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		run.ID,
		run.Username,
		run.FetchedAt.UTC(),
		run.StatusCode,
		run.RepoCount,
		run.JSONPath,
		run.CSVPath,
	)
	if err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO export_repositories (run_id, position, full_name, name, created_at, data)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, repo := range snapshot.Repositories {
		var createdAt sql.NullTime
		if !repo.CreatedAt.IsZero() {
			createdAt = sql.NullTime{Time: repo.CreatedAt.UTC(), Valid: true}
		}

		_, err = stmt.ExecContext(ctx,
			run.ID,
			repo.Position,
			repo.FullName,
			repo.Name,
			createdAt,
			string(repo.Data),
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// ListRuns retrieves the most recent runs for a user
func (s *sqliteStorage) ListRuns(ctx context.Context, username string, limit int) ([]*domain.ExportRun, error) {
	query := `
		SELECT id, username, fetched_at, status_code, repo_count, json_path, csv_path
		FROM export_runs
		WHERE username = ?
		ORDER BY fetched_at DESC
		LIMIT ?
	`
	rows, err := s.db.QueryContext(ctx, query, username, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*domain.ExportRun
	for rows.Next() {
		var r domain.ExportRun
		err := rows.Scan(&r.ID, &r.Username, &r.FetchedAt, &r.StatusCode, &r.RepoCount, &r.JSONPath, &r.CSVPath)
		if err != nil {
			return nil, err
		}
		runs = append(runs, &r)
	}

	return runs, rows.Err()
}

// Close closes the database connection
func (s *sqliteStorage) Close() error {
	return s.db.Close()
}

// Package pipeline runs one export: load the token, fetch the listing,
// project, sort, serialize and write the two output files.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/kurihiro0119/ghstats/internal/aggregator"
	"github.com/kurihiro0119/ghstats/internal/collector"
	"github.com/kurihiro0119/ghstats/internal/credential"
	"github.com/kurihiro0119/ghstats/internal/domain"
	apperrors "github.com/kurihiro0119/ghstats/internal/errors"
	"github.com/kurihiro0119/ghstats/internal/export"
	"github.com/kurihiro0119/ghstats/internal/storage"
	"github.com/kurihiro0119/ghstats/internal/transform"
)

// CollectorFactory builds a collector once the token is known.
type CollectorFactory func(token string) (collector.Collector, error)

// Request names the account, the token file and the output directory.
type Request struct {
	Username  string
	TokenFile string
	OutputDir string
}

// Result describes a completed export.
type Result struct {
	RunID   string
	Paths   export.Paths
	Columns []string
	Records []domain.Record
	Summary *aggregator.Summary
}

// Exporter runs the export pipeline.
type Exporter struct {
	newCollector CollectorFactory
	store        storage.Storage
	out          io.Writer
	year         string
	provider     string
	now          func() time.Time
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithStorage archives every successful export in store.
func WithStorage(store storage.Storage) Option {
	return func(e *Exporter) { e.store = store }
}

// WithFileLabels overrides the year and provider used in file names.
func WithFileLabels(year, provider string) Option {
	return func(e *Exporter) {
		e.year = year
		e.provider = provider
	}
}

// WithClock overrides the time source used for run timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Exporter) { e.now = now }
}

// NewExporter creates an exporter printing progress to out.
func NewExporter(newCollector CollectorFactory, out io.Writer, opts ...Option) *Exporter {
	e := &Exporter{
		newCollector: newCollector,
		out:          out,
		year:         "2024",
		provider:     "github",
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run performs the export. Nothing is written unless the fetch returns 200
// and every record has a valid created_at.
func (e *Exporter) Run(ctx context.Context, req Request) (*Result, error) {
	token, err := credential.LoadToken(req.TokenFile)
	if err != nil {
		return nil, err
	}

	coll, err := e.newCollector(token)
	if err != nil {
		return nil, apperrors.NewFetchError("failed to create client", err)
	}

	fetchedAt := e.now()
	res, err := coll.FetchRepositories(ctx)
	if err != nil {
		if status := apperrors.StatusCode(err); status != 0 {
			fmt.Fprintf(e.out, "Failed to retrieve repositories. Status code: %d\n", status)
		}
		return nil, err
	}

	raw, err := domain.DecodeRecords(res.Body)
	if err != nil {
		return nil, err
	}
	slog.Debug("decoded repositories", "count", len(raw))

	records, err := transform.SortByCreatedDesc(transform.Project(raw, domain.RepositoryFields))
	if err != nil {
		return nil, err
	}

	columns := transform.Columns(records, domain.RepositoryFields)
	if len(records) == 0 {
		fmt.Fprintln(e.out, "No repositories returned; the CSV will contain only a header.")
		columns = domain.RepositoryFields
	}
	table := export.Serialize(records, columns)

	paths := export.OutputPaths(req.OutputDir, e.year, e.provider, req.Username)

	fmt.Fprintln(e.out, "--")
	if err := export.NewWriter(e.out).Write(paths, res.Body, table); err != nil {
		return nil, err
	}
	fmt.Fprintln(e.out, "--")

	result := &Result{
		RunID:   uuid.New().String(),
		Paths:   paths,
		Columns: columns,
		Records: records,
		Summary: aggregator.Summarize(records),
	}

	if e.store != nil {
		e.archive(ctx, req.Username, fetchedAt, res.StatusCode, result)
	}

	return result, nil
}

// archive records the run in the snapshot store. Failures are reported as
// warnings only.
func (e *Exporter) archive(ctx context.Context, username string, fetchedAt time.Time, status int, result *Result) {
	previous, err := e.store.ListRuns(ctx, username, 1)
	if err != nil {
		fmt.Fprintf(e.out, "Warning: failed to read previous exports: %v\n", err)
	} else if len(previous) > 0 {
		fmt.Fprintf(e.out, "Previous export: %s (%d repositories)\n",
			previous[0].FetchedAt.UTC().Format(time.RFC3339), previous[0].RepoCount)
	}

	snapshot, err := buildSnapshot(result, username, fetchedAt, status)
	if err != nil {
		fmt.Fprintf(e.out, "Warning: failed to build snapshot: %v\n", err)
		return
	}
	if err := e.store.SaveSnapshot(ctx, snapshot); err != nil {
		fmt.Fprintf(e.out, "Warning: failed to save snapshot: %v\n", err)
		return
	}
	slog.Debug("snapshot saved", "run_id", result.RunID, "repositories", len(snapshot.Repositories))
}

func buildSnapshot(result *Result, username string, fetchedAt time.Time, status int) (*domain.Snapshot, error) {
	snapshot := &domain.Snapshot{
		Run: domain.ExportRun{
			ID:         result.RunID,
			Username:   username,
			FetchedAt:  fetchedAt,
			StatusCode: status,
			RepoCount:  len(result.Records),
			JSONPath:   result.Paths.JSON,
			CSVPath:    result.Paths.CSV,
		},
	}

	for i, r := range result.Records {
		obj := make(map[string]any, len(r))
		for _, f := range r {
			obj[f.Name] = f.Value
		}
		data, err := json.Marshal(obj)
		if err != nil {
			return nil, err
		}

		fullName, _ := r.String(domain.FieldFullName)
		name, _ := r.String(domain.FieldName)
		createdAt, _ := transform.CreatedAt(r)

		snapshot.Repositories = append(snapshot.Repositories, domain.SnapshotRepository{
			Position:  i,
			FullName:  fullName,
			Name:      name,
			CreatedAt: createdAt,
			Data:      data,
		})
	}

	return snapshot, nil
}

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/kurihiro0119/ghstats/internal/aggregator"
	"github.com/kurihiro0119/ghstats/internal/collector"
	"github.com/kurihiro0119/ghstats/internal/config"
	apperrors "github.com/kurihiro0119/ghstats/internal/errors"
	"github.com/kurihiro0119/ghstats/internal/logger"
	"github.com/kurihiro0119/ghstats/internal/pipeline"
	"github.com/kurihiro0119/ghstats/internal/storage"
	"github.com/kurihiro0119/ghstats/internal/storage/postgres"
	"github.com/kurihiro0119/ghstats/internal/storage/sqlite"
)

const version = "0.0.1"

const manText = `ghstats - Github Stats

Usage:

  ghstats      arg1          arg2             arg3
  ---------    -----------   --------------   ----------------
  ghstats      gh-username   .gh-token-file   path/to/save/dir

  ghstats      man|help|-h|--help
  ghstats      -v|--version`

const incorrectUsage = "Incorrect usage. Please use man or help for options."

var (
	helpAliases    = map[string]bool{"man": true, "help": true, "-h": true, "--help": true}
	versionAliases = map[string]bool{"-v": true, "--version": true}
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI with an explicit argument list and returns the exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	logger.SetupLoggerTo(stderr)

	if args == nil {
		args = []string{}
	}

	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err != nil && !apperrors.IsUsage(err) {
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return apperrors.ExitCode(err)
}

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ghstats <gh-username> <.gh-token-file> <path/to/save/dir>",
		Short: "Export your GitHub repositories to JSON and CSV",
		Long: `Fetch the repositories of the authenticated GitHub account and save them
as the raw JSON response and as a CSV table sorted newest first.`,
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE:               dispatch,
	}
}

func dispatch(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	switch {
	case len(args) == 0:
		fmt.Fprintln(out, manText)
		return nil
	case len(args) == 3:
		return runExport(cmd.Context(), out, pipeline.Request{
			Username:  args[0],
			TokenFile: args[1],
			OutputDir: args[2],
		})
	case helpAliases[args[0]]:
		fmt.Fprintln(out, manText)
		return nil
	case versionAliases[args[0]]:
		fmt.Fprintf(out, "Version: %s\n", version)
		return nil
	default:
		fmt.Fprintln(out, incorrectUsage)
		return apperrors.NewUsageError(incorrectUsage)
	}
}

func runExport(ctx context.Context, out io.Writer, req pipeline.Request) error {
	cfg, err := config.Load()
	if err != nil {
		return apperrors.NewConfigError(err)
	}
	if err := cfg.Validate(); err != nil {
		return apperrors.NewConfigError(err)
	}
	logger.SetDebug(cfg.Debug)

	opts := []pipeline.Option{pipeline.WithFileLabels(cfg.Year, cfg.Provider)}

	store, err := getStorage(cfg)
	if err != nil {
		fmt.Fprintf(out, "Warning: snapshot store unavailable: %v\n", err)
	} else if store != nil {
		defer store.Close()
		opts = append(opts, pipeline.WithStorage(store))
	}

	newCollector := func(token string) (collector.Collector, error) {
		return collector.NewGitHubCollector(token, collector.Options{
			BaseURL:    cfg.APIBaseURL,
			AuthScheme: cfg.AuthScheme,
			Timeout:    cfg.HTTPTimeout,
		})
	}

	slog.Debug("starting export", "user", req.Username, "dir", req.OutputDir, "store", cfg.StoreType)

	result, err := pipeline.NewExporter(newCollector, out, opts...).Run(ctx, req)
	if err != nil {
		return err
	}

	renderSummary(out, result.Summary)
	return nil
}

// getStorage opens the configured snapshot store, or returns nil when
// archiving is disabled.
func getStorage(cfg *config.Config) (storage.Storage, error) {
	switch cfg.StoreType {
	case config.StorePostgres:
		return postgres.NewPostgresStorage(cfg.PostgresURL)
	case config.StoreSQLite:
		return sqlite.NewSQLiteStorage(cfg.SQLitePath)
	default:
		return nil, nil
	}
}

func renderSummary(out io.Writer, s *aggregator.Summary) {
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Metric", "Value"})
	table.Append([]string{"Repositories", fmt.Sprintf("%d", s.Total)})
	table.Append([]string{"Forks", fmt.Sprintf("%d", s.Forks)})
	table.Append([]string{"Archived", fmt.Sprintf("%d", s.Archived)})
	table.Append([]string{"Private", fmt.Sprintf("%d", s.Private)})
	if s.Newest != nil {
		table.Append([]string{"Newest", s.Newest.Format("2006-01-02")})
		table.Append([]string{"Oldest", s.Oldest.Format("2006-01-02")})
	}

	langs := make([]string, 0, len(s.Languages))
	for _, l := range s.Languages {
		name := l.Language
		if name == "" {
			name = "(none)"
		}
		langs = append(langs, fmt.Sprintf("%s: %d", name, l.Count))
	}
	if len(langs) > 0 {
		table.Append([]string{"Languages", strings.Join(langs, ", ")})
	}

	years := make([]string, 0, len(s.CreatedByYear))
	for _, y := range s.CreatedByYear {
		years = append(years, fmt.Sprintf("%d: %d", y.Year, y.Count))
	}
	if len(years) > 0 {
		table.Append([]string{"Created per year", strings.Join(years, ", ")})
	}
	table.Render()
}

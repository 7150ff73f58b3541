package export

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	apperrors "github.com/kurihiro0119/ghstats/internal/errors"
)

// Paths are the two files produced by one export.
type Paths struct {
	JSON string
	CSV  string
}

// OutputPaths derives <dir>/<year>-<provider>-<username>.{json,csv}.
func OutputPaths(dir, year, provider, username string) Paths {
	base := fmt.Sprintf("%s-%s-%s", year, provider, username)
	return Paths{
		JSON: filepath.Join(dir, base+".json"),
		CSV:  filepath.Join(dir, base+".csv"),
	}
}

// WriteFileAtomic replaces path with data. The content goes to path+".tmp",
// is synced, and is then renamed over path, so readers never observe a
// truncated file.
func WriteFileAtomic(path string, data []byte) error {
	tmp := path + ".tmp"

	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to sync temporary file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to close temporary file: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}
	return nil
}

// Writer persists the raw body and the CSV table, printing a line for each
// file it saves.
type Writer struct {
	out io.Writer
}

// NewWriter creates a Writer that reports to out.
func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out}
}

// Write saves body to paths.JSON, then table to paths.CSV. A failure on the
// CSV leaves the JSON file in place.
func (w *Writer) Write(paths Paths, body []byte, table string) error {
	if err := WriteFileAtomic(paths.JSON, body); err != nil {
		return apperrors.NewWriteError(paths.JSON, err)
	}
	slog.Debug("wrote file", "path", paths.JSON, "bytes", len(body))
	fmt.Fprintf(w.out, "File %s successfully saved.\n", paths.JSON)

	fmt.Fprintln(w.out, "- Converting JSON to CSV...")
	fmt.Fprintln(w.out, "- JSON successfully converted to CSV.")

	if err := WriteFileAtomic(paths.CSV, []byte(table)); err != nil {
		return apperrors.NewWriteError(paths.CSV, err)
	}
	slog.Debug("wrote file", "path", paths.CSV, "bytes", len(table))
	fmt.Fprintf(w.out, "File %s successfully saved.\n", paths.CSV)

	return nil
}

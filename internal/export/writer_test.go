package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/kurihiro0119/ghstats/internal/errors"
)

func TestOutputPaths(t *testing.T) {
	p := OutputPaths("out/", "2024", "github", "octocat")
	assert.Equal(t, filepath.Join("out", "2024-github-octocat.json"), p.JSON)
	assert.Equal(t, filepath.Join("out", "2024-github-octocat.csv"), p.CSV)

	assert.Equal(t, p, OutputPaths("out", "2024", "github", "octocat"))
}

func TestWriteFileAtomicReplaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.csv")
	require.NoError(t, os.WriteFile(path, []byte("old content that is longer"), 0o644))

	require.NoError(t, WriteFileAtomic(path, []byte("new")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
	assert.NoFileExists(t, path+".tmp")
}

func TestWriteFileAtomicMissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "f.csv")

	assert.Error(t, WriteFileAtomic(path, []byte("x")))
	assert.NoFileExists(t, path)
}

func TestWriterWrite(t *testing.T) {
	dir := t.TempDir()
	paths := OutputPaths(dir, "2024", "github", "me")
	var out bytes.Buffer

	err := NewWriter(&out).Write(paths, []byte(`[]`), "id\n")
	require.NoError(t, err)

	body, err := os.ReadFile(paths.JSON)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(body))

	table, err := os.ReadFile(paths.CSV)
	require.NoError(t, err)
	assert.Equal(t, "id\n", string(table))

	assert.Contains(t, out.String(), "File "+paths.JSON+" successfully saved.")
	assert.Equal(t, "File "+paths.JSON+" successfully saved.\n"+
		"- Converting JSON to CSV...\n"+
		"- JSON successfully converted to CSV.\n"+
		"File "+paths.CSV+" successfully saved.\n", out.String())
}

func TestWriterKeepsJSONWhenCSVFails(t *testing.T) {
	dir := t.TempDir()
	paths := Paths{
		JSON: filepath.Join(dir, "a.json"),
		CSV:  filepath.Join(dir, "missing", "a.csv"),
	}
	var out bytes.Buffer

	err := NewWriter(&out).Write(paths, []byte(`[]`), "id\n")

	assert.Equal(t, apperrors.ErrCodeWrite, apperrors.CodeOf(err))
	assert.FileExists(t, paths.JSON)
	assert.NotContains(t, out.String(), "a.csv successfully")
}

package errors

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorWrapping(t *testing.T) {
	err := NewCredentialError("/nope", fs.ErrNotExist)

	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Contains(t, err.Error(), "CREDENTIAL_ERROR")
	assert.Contains(t, err.Error(), "/nope")
}

func TestStatusCode(t *testing.T) {
	wrapped := fmt.Errorf("export: %w", NewStatusError(404))

	assert.True(t, IsFetch(wrapped))
	assert.Equal(t, 404, StatusCode(wrapped))
	assert.Equal(t, 0, StatusCode(stderrors.New("plain")))
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"usage", NewUsageError("bad"), 2},
		{"fetch", NewStatusError(500), 1},
		{"data shape", NewDataShapeError("bad", nil), 1},
		{"plain", stderrors.New("boom"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

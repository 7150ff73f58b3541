package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetDebug(t *testing.T) {
	var buf bytes.Buffer
	SetupLoggerTo(&buf)

	slog.Debug("hidden")
	assert.Empty(t, buf.String())

	SetDebug(false)
	slog.Debug("still hidden")
	assert.Empty(t, buf.String())

	SetDebug(true)
	slog.Debug("shown", "key", "value")
	assert.Contains(t, buf.String(), "msg=shown")
	assert.Contains(t, buf.String(), "key=value")

	SetupLoggerTo(&bytes.Buffer{})
}

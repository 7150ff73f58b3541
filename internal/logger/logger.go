package logger

import (
	"io"
	"log/slog"
	"os"
)

var ProgramLevel = new(slog.LevelVar)

// SetupLogger installs a text logger on stderr at info level.
func SetupLogger() {
	SetupLoggerTo(os.Stderr)
}

// SetupLoggerTo installs the default logger writing to w.
func SetupLoggerTo(w io.Writer) {
	ProgramLevel.Set(slog.LevelInfo)

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:     ProgramLevel,
		AddSource: false,
	}))
	slog.SetDefault(logger)
}

// SetDebug lowers the level to debug when debug is true.
func SetDebug(debug bool) {
	if debug {
		ProgramLevel.Set(slog.LevelDebug)
	}
}

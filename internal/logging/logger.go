package logging

import (
	"io"
	"log/slog"
	"os"
)

// New builds the process logger: JSON records on stdout, filtered at the
// given level. Unknown level strings fall back to info instead of failing
// startup.
func New(level string) *slog.Logger {
	var lvl slog.LevelVar
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl.Set(slog.LevelInfo)
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: &lvl}))
}

// Discard returns a logger whose output goes nowhere, for tests that need a
// logger but not its noise.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

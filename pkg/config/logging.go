package config

import (
	"log/slog"
	"os"
)

// NewLogger builds the driver's *slog.Logger, replacing the teacher's
// core.Logger interface and fmt.Printf-backed DefaultLogger (§2 ambient
// stack). verbose selects Debug level; otherwise Info and above.
func NewLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}

package config

import (
	"io"
	"log/slog"

	slogmulti "github.com/samber/slog-multi"
)

// SetupLogger creates a logger that writes readable text to stderr and, when
// sink is non-nil, JSON records to sink as well.
func SetupLogger(stderr, sink io.Writer, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	stderrHandler := slog.NewTextHandler(stderr, opts)
	if sink == nil {
		return slog.New(stderrHandler)
	}

	// JSON for machine parsing
	sinkHandler := slog.NewJSONHandler(sink, opts)
	return slog.New(slogmulti.Fanout(stderrHandler, sinkHandler))
}

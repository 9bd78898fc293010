// Package config holds the tunables shared by the analyzer, the rule engine
// and the session, and builds the structured logger they write to.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Config holds all configuration values. There is no file or environment
// lookup; hosts fill the struct themselves, usually starting from Default.
type Config struct {
	// Analysis
	ProgressEvery int // vertices between progress reports and cancellation checks

	// Selection rules
	RuleTimeout time.Duration

	// Triangle-mesh import
	WeldTolerance float64

	// Logging
	LogLevel slog.Level
}

// Default returns the configuration used when the host does not override
// anything.
func Default() Config {
	return Config{
		ProgressEvery: 100,
		RuleTimeout:   5 * time.Second,
		WeldTolerance: 1e-5,
		LogLevel:      slog.LevelInfo,
	}
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var errs []error
	if c.ProgressEvery < 1 {
		errs = append(errs, fmt.Errorf("config: ProgressEvery must be at least 1, got %d", c.ProgressEvery))
	}
	if c.RuleTimeout <= 0 {
		errs = append(errs, fmt.Errorf("config: RuleTimeout must be positive, got %s", c.RuleTimeout))
	}
	if c.WeldTolerance < 0 || c.WeldTolerance != c.WeldTolerance {
		errs = append(errs, fmt.Errorf("config: WeldTolerance must be a non-negative number, got %g", c.WeldTolerance))
	}
	return errors.Join(errs...)
}

// ParseLogLevel maps a level name to a slog.Level. Unknown names map to Info.
func ParseLogLevel(s string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

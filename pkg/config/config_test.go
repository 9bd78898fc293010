package config

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 100, cfg.ProgressEvery)
	assert.Equal(t, 5*time.Second, cfg.RuleTimeout)
	assert.Equal(t, 1e-5, cfg.WeldTolerance)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"zero progress interval", func(c *Config) { c.ProgressEvery = 0 }, "ProgressEvery"},
		{"negative timeout", func(c *Config) { c.RuleTimeout = -time.Second }, "RuleTimeout"},
		{"negative tolerance", func(c *Config) { c.WeldTolerance = -1 }, "WeldTolerance"},
		{"NaN tolerance", func(c *Config) { c.WeldTolerance = math.NaN() }, "WeldTolerance"},
		{"zero tolerance is fine", func(c *Config) { c.WeldTolerance = 0 }, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateReportsAllFields(t *testing.T) {
	err := Config{}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ProgressEvery")
	assert.Contains(t, err.Error(), "RuleTimeout")
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"Warning": slog.LevelWarn,
		" error ": slog.LevelError,
		"bogus":   slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLogLevel(in), in)
	}
}

func TestSetupLoggerFanout(t *testing.T) {
	var stderr, sink bytes.Buffer
	logger := SetupLogger(&stderr, &sink, slog.LevelInfo)

	logger.Info("analysis finished", "pairs", 3)
	logger.Debug("hidden")

	assert.Contains(t, stderr.String(), "analysis finished")
	assert.Contains(t, stderr.String(), "pairs=3")
	assert.NotContains(t, stderr.String(), "hidden")

	var record map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(sink.Bytes()), &record))
	assert.Equal(t, "analysis finished", record["msg"])
	assert.Equal(t, float64(3), record["pairs"])
}

func TestSetupLoggerWithoutSink(t *testing.T) {
	var stderr bytes.Buffer
	logger := SetupLogger(&stderr, nil, slog.LevelDebug)
	logger.Debug("scan progress", "percent", 50)
	assert.True(t, strings.Contains(stderr.String(), "percent=50"))
}

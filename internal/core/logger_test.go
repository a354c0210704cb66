// AngelaMos | 2026
// logger_test.go

package core

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beanvoyage/storefront/internal/config"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		level   string
		enabled slog.Level
		dropped slog.Level
	}{
		{level: "debug", enabled: slog.LevelDebug, dropped: slog.LevelDebug - 1},
		{level: "info", enabled: slog.LevelInfo, dropped: slog.LevelDebug},
		{level: "warn", enabled: slog.LevelWarn, dropped: slog.LevelInfo},
		{level: "error", enabled: slog.LevelError, dropped: slog.LevelWarn},
		{level: "", enabled: slog.LevelInfo, dropped: slog.LevelDebug},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger := NewLogger(config.LogConfig{Level: tt.level}, &bytes.Buffer{})
			assert.True(t, logger.Enabled(context.Background(), tt.enabled))
			assert.False(t, logger.Enabled(context.Background(), tt.dropped))
		})
	}
}

func TestNewLoggerJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	NewLogger(config.LogConfig{Level: "info", Format: "json"}, &buf).Info("renewal batch finished", "renewed", 3)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "renewal batch finished", line["msg"])
	assert.InDelta(t, 3, line["renewed"], 0)
}

package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want slog.Level
		ok   bool
	}{
		{"debug", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{" warn ", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"verbose", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
	}
	for _, tc := range tests {
		got, ok := ParseLevel(tc.in)
		assert.Equal(t, tc.want, got, "level for %q", tc.in)
		assert.Equal(t, tc.ok, ok, "ok for %q", tc.in)
	}
}

func TestNew_FiltersByLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := New(&buf, "warn")
	l.Info("hidden")
	l.Warn("shown", "key", "value")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "shown", rec["msg"])
	assert.Equal(t, "WARN", rec["level"])
	assert.Equal(t, "value", rec["key"])
}

func TestNew_InvalidLevelWarns(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := New(&buf, "loud")
	assert.Contains(t, buf.String(), "invalid log level configured")

	buf.Reset()
	l.Debug("hidden")
	assert.Empty(t, buf.String())
}

package logging_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"pulse-tools/pulsetools/logging"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	require := require.New(t)

	tests := map[string]struct {
		input string
		want  slog.Level
	}{
		"debug":   {input: "debug", want: slog.LevelDebug},
		"warn":    {input: "WARN", want: slog.LevelWarn},
		"warning": {input: "warning", want: slog.LevelWarn},
		"error":   {input: "error", want: slog.LevelError},
		"info":    {input: "info", want: slog.LevelInfo},
		"unknown": {input: "verbose", want: slog.LevelInfo},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			require.Equal(tc.want, logging.ParseLevel(tc.input))
		})
	}
}

func TestNewJSON(t *testing.T) {
	require := require.New(t)

	var buf bytes.Buffer
	logger := logging.New(&buf, "warn", "json")

	logger.Info("hidden")
	logger.Warn("snapshot rejected", "reason", "top level is not an object")

	var entry map[string]interface{}
	require.NoError(json.Unmarshal(buf.Bytes(), &entry))
	require.Equal("snapshot rejected", entry["msg"])
	require.Equal("WARN", entry["level"])
	require.Equal("top level is not an object", entry["reason"])
}

func TestNewText(t *testing.T) {
	require := require.New(t)

	var buf bytes.Buffer
	logging.New(&buf, "debug", "text").Debug("recomputed", "points", 3)

	require.Contains(buf.String(), "level=DEBUG")
	require.Contains(buf.String(), "points=3")
}

package console

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsoleLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewConsoleLogger(ConsoleLoggerParams{Service: "worker", Format: "json", Output: &buf})

	l.Info("Relationship created", "id", "r1")

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "Relationship created", line["msg"])
	assert.Equal(t, "r1", line["id"])
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "worker", line["prefix"])
}

func TestConsoleLogger_DebugLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewConsoleLogger(ConsoleLoggerParams{Output: &buf})
	l.Debug("hidden")
	assert.Empty(t, buf.String())

	buf.Reset()
	l = NewConsoleLogger(ConsoleLoggerParams{Debug: true, Output: &buf})
	l.Debug("shown", "key", "value")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "key=value")
}

func TestConsoleLogger_LevelOverridesDebug(t *testing.T) {
	var buf bytes.Buffer
	l := NewConsoleLogger(ConsoleLoggerParams{Debug: true, Level: "warn", Output: &buf})
	l.Info("hidden")
	assert.Empty(t, buf.String())

	l.Warn("shown")
	assert.Contains(t, buf.String(), "shown")

	buf.Reset()
	l = NewConsoleLogger(ConsoleLoggerParams{Level: "nonsense", Output: &buf})
	l.Info("falls back to info")
	assert.Contains(t, buf.String(), "falls back to info")
}

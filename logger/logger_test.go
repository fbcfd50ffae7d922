package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonLogger(t *testing.T, level string) (*Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	cfg := &Config{Level: level, Format: FormatJSON}
	return newWithWriter(cfg, "dbconsole", &buf), &buf
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

func TestLogger_ComponentAndFields(t *testing.T) {
	l, buf := jsonLogger(t, "debug")

	l.WithComponent("session").Info("opened", map[string]interface{}{"session_id": "abc"})

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "opened", lines[0]["message"])
	assert.Equal(t, "session", lines[0][FieldComponent])
	assert.Equal(t, "dbconsole", lines[0][FieldService])
	assert.Equal(t, "abc", lines[0]["session_id"])
	assert.Equal(t, "info", lines[0]["level"])
}

func TestLogger_LevelFilter(t *testing.T) {
	l, buf := jsonLogger(t, "warn")

	l.Debug("hidden")
	l.Info("hidden")
	l.Warn("shown")
	l.Error("shown too", map[string]interface{}{"cause": errors.New("boom")})

	lines := decodeLines(t, buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "warn", lines[0]["level"])
	assert.Equal(t, "boom", lines[1]["cause"])
}

func TestLogger_WithError(t *testing.T) {
	l, buf := jsonLogger(t, "info")

	l.WithError(errors.New("close failed")).WithFields(map[string]interface{}{"n": 2}).Warn("cleanup")

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "close failed", lines[0][FieldError])
	assert.EqualValues(t, 2, lines[0]["n"])
}

func TestNop(t *testing.T) {
	assert.NotPanics(t, func() {
		Nop().WithComponent("x").Error("nothing")
	})
}

func TestGlobal(t *testing.T) {
	prev := Global()
	t.Cleanup(func() { SetGlobal(prev) })

	l, buf := jsonLogger(t, "info")
	SetGlobal(l)
	WithComponent("registry").Info("scan")

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "registry", lines[0][FieldComponent])
}

func TestConfig_DefaultsAndValidate(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	assert.Equal(t, "warn", cfg.Level)
	assert.Equal(t, FormatConsole, cfg.Format)
	assert.Equal(t, "stderr", cfg.Output)
	assert.True(t, cfg.Timestamp)
	require.NoError(t, cfg.Validate())

	bad := cfg
	bad.Level = "loud"
	assert.ErrorContains(t, bad.Validate(), "logging.level")

	bad = cfg
	bad.Format = "xml"
	assert.ErrorContains(t, bad.Validate(), "logging.format")

	bad = cfg
	bad.Output = "file"
	assert.ErrorContains(t, bad.Validate(), "logging.output")
}

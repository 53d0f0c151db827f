package util

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLogLevel("DEBUG"))
	assert.Equal(t, LevelWarn, ParseLogLevel("warning"))
	assert.Equal(t, LevelError, ParseLogLevel("error"))
	assert.Equal(t, LevelInfo, ParseLogLevel("bogus"))
}

func TestLoggerTextOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := &Logger{level: LevelInfo, fields: map[string]interface{}{}}
	logger.AddOutput(NewConsoleOutput(&buf, FormatText))

	logger.Debug("hidden")
	logger.With(F("rule", "hysteresis-gap")).Warn("gap too small", F("gap", 0.5))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[WARN] gap too small")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "gap=0.5 rule=hysteresis-gap"))
}

func TestLoggerJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	logger, err := NewLogger("debug", path, false)
	require.NoError(t, err)

	logger.Debugf("loaded %d sections", 3)
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry LogEntry
	require.NoError(t, sonic.Unmarshal(bytes.TrimSpace(data), &entry))
	assert.Equal(t, "DEBUG", entry.Level)
	assert.Equal(t, "loaded 3 sections", entry.Message)
}

func TestGlobalLoggerNoopWithoutInit(t *testing.T) {
	SetLogger(nil)
	assert.NotPanics(t, func() {
		LogInfo("nothing")
		LogErrorf("nothing %d", 1)
	})
}

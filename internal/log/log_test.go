package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DefaultConfig(t *testing.T) {
	t.Parallel()

	logger := New(nil)
	assert.NotNil(t, logger)
}

func TestNew_JSONOutput(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(&Config{
		Output: &buf,
		Level:  slog.LevelInfo,
	})

	logger.Info("test message", "key", "value")

	var logEntry map[string]interface{}
	err := json.Unmarshal(buf.Bytes(), &logEntry)
	require.NoError(t, err)

	assert.Contains(t, logEntry, "ts")
	assert.NotContains(t, logEntry, "time")
	assert.Contains(t, logEntry, "level")
	assert.Equal(t, "test message", logEntry["msg"])
	assert.Equal(t, "value", logEntry["key"])
}

func TestNew_DebugLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(&Config{
		Output: &buf,
		Debug:  true,
	})

	logger.Debug("debug message")

	assert.Contains(t, buf.String(), "debug message")
}

func TestNew_InfoLevel_HidesDebug(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(&Config{
		Output: &buf,
		Level:  slog.LevelInfo,
	})

	logger.Debug("debug message")

	assert.Empty(t, buf.String())
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"loud":    slog.LevelInfo,
	}
	for name, want := range tests {
		assert.Equal(t, want, ParseLevel(name), name)
	}
}

func TestOpenFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "opentabs.log")
	logger, closer, err := OpenFile(path, "warn")
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown", "k", 1)
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], `"msg":"shown"`)
}

func TestDiscard(t *testing.T) {
	t.Parallel()

	assert.False(t, Discard().Enabled(t.Context(), slog.LevelError))
}

func TestLogHelpers(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(&Config{Output: &buf})

	LogInvocation(logger, InvocationInfo{Version: "1.0.0", Groups: 2, Views: 5})
	LogSettingsDefaulted(logger, "/c/config.yaml", 30, 15)
	LogFocusTimeout(logger, 2000)
	LogOutcome(logger, "focused", 3, "v1")

	out := buf.String()
	assert.Contains(t, out, `"msg":"open tabs invoked"`)
	assert.Contains(t, out, `"views":5`)
	assert.Contains(t, out, `"truncation_line_length":30`)
	assert.Contains(t, out, `"level":"WARN"`)
	assert.Contains(t, out, `"outcome":"focused"`)
	assert.Contains(t, out, `"row":3`)
}

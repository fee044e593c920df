// Package log provides JSON-lines structured logging for opentabs.
package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Config configures the structured logger.
type Config struct {
	// Output is the writer for log output (default: os.Stderr)
	Output io.Writer

	// Level is the minimum log level (default: LevelInfo)
	Level slog.Level

	// Debug enables debug level logging (overrides Level)
	Debug bool
}

// DefaultConfig returns the default logging configuration.
func DefaultConfig() *Config {
	return &Config{
		Output: os.Stderr,
		Level:  slog.LevelInfo,
		Debug:  false,
	}
}

// New creates a new JSON-lines structured logger:
//
//	{"ts":"2026-01-15T10:30:00Z","level":"INFO","msg":"open tabs","rows":4}
func New(cfg *Config) *slog.Logger {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}

	level := cfg.Level
	if cfg.Debug {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				a.Key = "ts"
			}
			return a
		},
	}

	return slog.New(slog.NewJSONHandler(output, opts))
}

// ParseLevel maps a config level name to a slog level. Unknown names are
// treated as info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// OpenFile creates a logger appending to path. The returned closer must be
// called when the logger is no longer used.
func OpenFile(path, level string) (*slog.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return New(&Config{Output: f, Level: ParseLevel(level)}), f, nil
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// InvocationInfo is logged once per run.
type InvocationInfo struct {
	Version      string
	ConfigPath   string
	SnapshotPath string
	Groups       int
	Views        int
	FocusCommand bool
}

// LogInvocation logs the start of a run.
func LogInvocation(logger *slog.Logger, info InvocationInfo) {
	logger.Info("open tabs invoked",
		"version", info.Version,
		"config_path", info.ConfigPath,
		"snapshot_path", info.SnapshotPath,
		"groups", info.Groups,
		"views", info.Views,
		"focus_command", info.FocusCommand,
	)
}

// LogSettingsDefaulted logs that the truncation fallback was used.
func LogSettingsDefaulted(logger *slog.Logger, configPath string, lineLength, previewLength int) {
	logger.Info("truncation settings defaulted",
		"config_path", configPath,
		"truncation_line_length", lineLength,
		"truncation_preview_length", previewLength,
	)
}

// LogFocusTimeout logs a focus command that exceeded its deadline.
func LogFocusTimeout(logger *slog.Logger, timeoutMs int64) {
	logger.Warn("focus command timeout", "timeout_ms", timeoutMs)
}

// LogOutcome logs how the panel closed and the confirmed row, if any.
func LogOutcome(logger *slog.Logger, outcome string, row int, viewID string) {
	logger.Info("panel closed", "outcome", outcome, "row", row, "view_id", viewID)
}

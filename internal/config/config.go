package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Fallback truncation settings used when either key is missing.
const (
	DefaultLineLength    = 30
	DefaultPreviewLength = 15
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid configuration")

// Config represents the opentabs configuration.
type Config struct {
	TruncationLineLength    int         `yaml:"truncation_line_length"`    // Folder paths longer than this are truncated
	TruncationPreviewLength int         `yaml:"truncation_preview_length"` // Characters kept at each end of a truncated path
	Focus                   FocusConfig `yaml:"focus"`
	Panel                   PanelConfig `yaml:"panel"`
	Log                     LogConfig   `yaml:"log"`

	// TruncationDefaulted is set when either truncation key was missing and
	// the fallback pair was used.
	TruncationDefaulted bool `yaml:"-"`
}

// FocusConfig controls how a picked view is focused in the editor.
type FocusConfig struct {
	Command   string `yaml:"command"`    // Command template; empty prints the pick to stdout
	TimeoutMs int    `yaml:"timeout_ms"` // Max runtime of one focus command
}

// PanelConfig holds quick panel settings.
type PanelConfig struct {
	AltScreen bool `yaml:"alt_screen"` // Render the panel in the alternate screen
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // Log file path (overrides default)
}

// fileConfig mirrors Config with pointers for the keys whose presence
// matters.
type fileConfig struct {
	TruncationLineLength    *int        `yaml:"truncation_line_length"`
	TruncationPreviewLength *int        `yaml:"truncation_preview_length"`
	Focus                   FocusConfig `yaml:"focus"`
	Panel                   PanelConfig `yaml:"panel"`
	Log                     LogConfig   `yaml:"log"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		TruncationLineLength:    DefaultLineLength,
		TruncationPreviewLength: DefaultPreviewLength,
		Focus: FocusConfig{
			Command:   "",
			TimeoutMs: 2000,
		},
		Panel: PanelConfig{
			AltScreen: true,
		},
		Log: LogConfig{
			Level: "info",
			File:  "", // Use default from paths
		},
	}
}

// ConfigPath returns the config file in use.
func ConfigPath() string {
	if p := os.Getenv("OPENTABS_CONFIG"); p != "" {
		return p
	}
	return DefaultPaths().ConfigFile()
}

// LoadFromFile loads configuration from the specified file.
// A missing file yields the defaults. When either truncation key is absent
// from both the file and the environment, the fallback pair is used for both
// and TruncationDefaulted is set.
func LoadFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()
	var lineSet, previewSet bool

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		fc := fileConfig{Focus: cfg.Focus, Panel: cfg.Panel, Log: cfg.Log}
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
		cfg.Focus, cfg.Panel, cfg.Log = fc.Focus, fc.Panel, fc.Log
		if fc.TruncationLineLength != nil {
			cfg.TruncationLineLength = *fc.TruncationLineLength
			lineSet = true
		}
		if fc.TruncationPreviewLength != nil {
			cfg.TruncationPreviewLength = *fc.TruncationPreviewLength
			previewSet = true
		}
	case os.IsNotExist(err):
		// Defaults only.
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	lineEnv, previewEnv := cfg.ApplyEnvOverrides()
	lineSet = lineSet || lineEnv
	previewSet = previewSet || previewEnv

	if !lineSet || !previewSet {
		cfg.TruncationLineLength = DefaultLineLength
		cfg.TruncationPreviewLength = DefaultPreviewLength
		cfg.TruncationDefaulted = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Notice is the message shown once when the truncation fallback was used,
// or "" otherwise.
func (c *Config) Notice(path string) string {
	if !c.TruncationDefaulted {
		return ""
	}
	return fmt.Sprintf("Could not find 'truncation_line_length' and 'truncation_preview_length' settings. "+
		"Defaulting truncation_line_length: %d and truncation_preview_length: %d. "+
		"Update %s to change the above values.", DefaultLineLength, DefaultPreviewLength, path)
}

// SaveToFile saves the configuration to the specified file.
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks that all values are usable.
func (c *Config) Validate() error {
	if c.TruncationLineLength <= 0 {
		return fmt.Errorf("%w: truncation_line_length must be positive, got %d", ErrInvalid, c.TruncationLineLength)
	}
	if c.TruncationPreviewLength <= 0 {
		return fmt.Errorf("%w: truncation_preview_length must be positive, got %d", ErrInvalid, c.TruncationPreviewLength)
	}
	if c.Focus.TimeoutMs < 0 {
		return fmt.Errorf("%w: focus.timeout_ms must be non-negative, got %d", ErrInvalid, c.Focus.TimeoutMs)
	}
	if c.Log.Level != "" && !isValidLogLevel(c.Log.Level) {
		return fmt.Errorf("%w: log.level %q (must be debug, info, warn, or error)", ErrInvalid, c.Log.Level)
	}
	if c.TruncationPreviewLength > c.TruncationLineLength {
		log.Printf("WARN config: truncation_preview_length %d exceeds truncation_line_length %d; truncated halves will overlap",
			c.TruncationPreviewLength, c.TruncationLineLength)
	}
	return nil
}

// ApplyEnvOverrides applies environment variable overrides to the config.
// It reports which truncation keys the environment supplied.
func (c *Config) ApplyEnvOverrides() (lineSet, previewSet bool) {
	if v := os.Getenv("OPENTABS_TRUNCATION_LINE_LENGTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.TruncationLineLength = n
			lineSet = true
		} else {
			log.Printf("WARN config: ignoring OPENTABS_TRUNCATION_LINE_LENGTH=%q: %v", v, err)
		}
	}
	if v := os.Getenv("OPENTABS_TRUNCATION_PREVIEW_LENGTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.TruncationPreviewLength = n
			previewSet = true
		} else {
			log.Printf("WARN config: ignoring OPENTABS_TRUNCATION_PREVIEW_LENGTH=%q: %v", v, err)
		}
	}
	if v := os.Getenv("OPENTABS_FOCUS_COMMAND"); v != "" {
		c.Focus.Command = v
	}
	if v := os.Getenv("OPENTABS_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil && b {
			c.Log.Level = "debug"
		}
	}
	if v := os.Getenv("OPENTABS_LOG_LEVEL"); v != "" {
		if isValidLogLevel(v) {
			c.Log.Level = v
		}
	}
	return lineSet, previewSet
}

// ListKeys returns all configuration keys.
func ListKeys() []string {
	return []string{
		"truncation_line_length",
		"truncation_preview_length",
		"focus.command",
		"focus.timeout_ms",
		"panel.alt_screen",
		"log.level",
		"log.file",
	}
}

// Get retrieves a configuration value by key. Truncation keys are top-level;
// the others use "section.key".
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "truncation_line_length":
		return strconv.Itoa(c.TruncationLineLength), nil
	case "truncation_preview_length":
		return strconv.Itoa(c.TruncationPreviewLength), nil
	}

	section, field, err := splitKey(key)
	if err != nil {
		return "", err
	}

	switch section {
	case "focus":
		return c.getFocusField(field)
	case "panel":
		return c.getPanelField(field)
	case "log":
		return c.getLogField(field)
	default:
		return "", fmt.Errorf("unknown section: %s", section)
	}
}

// Set sets a configuration value by key.
func (c *Config) Set(key, value string) error {
	switch key {
	case "truncation_line_length":
		return setPositiveInt(&c.TruncationLineLength, key, value)
	case "truncation_preview_length":
		return setPositiveInt(&c.TruncationPreviewLength, key, value)
	}

	section, field, err := splitKey(key)
	if err != nil {
		return err
	}

	switch section {
	case "focus":
		return c.setFocusField(field, value)
	case "panel":
		return c.setPanelField(field, value)
	case "log":
		return c.setLogField(field, value)
	default:
		return fmt.Errorf("unknown section: %s", section)
	}
}

func splitKey(key string) (string, string, error) {
	parts := strings.Split(key, ".")
	if len(parts) != 2 {
		return "", "", errors.New("key must be a top-level key or in format 'section.key'")
	}
	return parts[0], parts[1], nil
}

func setPositiveInt(dst *int, name, value string) error {
	v, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", name, err)
	}
	if v <= 0 {
		return fmt.Errorf("invalid %s: must be positive", name)
	}
	*dst = v
	return nil
}

func (c *Config) getFocusField(field string) (string, error) {
	switch field {
	case "command":
		return c.Focus.Command, nil
	case "timeout_ms":
		return strconv.Itoa(c.Focus.TimeoutMs), nil
	default:
		return "", fmt.Errorf("unknown field: focus.%s", field)
	}
}

func (c *Config) setFocusField(field, value string) error {
	switch field {
	case "command":
		c.Focus.Command = value
	case "timeout_ms":
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid value for timeout_ms: %w", err)
		}
		if v < 0 {
			return fmt.Errorf("invalid timeout_ms: must be non-negative")
		}
		c.Focus.TimeoutMs = v
	default:
		return fmt.Errorf("unknown field: focus.%s", field)
	}
	return nil
}

func (c *Config) getPanelField(field string) (string, error) {
	switch field {
	case "alt_screen":
		return strconv.FormatBool(c.Panel.AltScreen), nil
	default:
		return "", fmt.Errorf("unknown field: panel.%s", field)
	}
}

func (c *Config) setPanelField(field, value string) error {
	switch field {
	case "alt_screen":
		v, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value for alt_screen: %w", err)
		}
		c.Panel.AltScreen = v
	default:
		return fmt.Errorf("unknown field: panel.%s", field)
	}
	return nil
}

func (c *Config) getLogField(field string) (string, error) {
	switch field {
	case "level":
		return c.Log.Level, nil
	case "file":
		return c.Log.File, nil
	default:
		return "", fmt.Errorf("unknown field: log.%s", field)
	}
}

func (c *Config) setLogField(field, value string) error {
	switch field {
	case "level":
		if !isValidLogLevel(value) {
			return fmt.Errorf("invalid level: %s (must be debug, info, warn, or error)", value)
		}
		c.Log.Level = value
	case "file":
		c.Log.File = value
	default:
		return fmt.Errorf("unknown field: log.%s", field)
	}
	return nil
}

func isValidLogLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/runger/opentabs/internal/config"
	"github.com/runger/opentabs/internal/host"
	applog "github.com/runger/opentabs/internal/log"
	"github.com/runger/opentabs/internal/panel"
	"github.com/runger/opentabs/internal/picker"
	"github.com/runger/opentabs/internal/tabs"
)

// openPanel opens the interactive quick panel. The returned func releases
// the terminal. Tests replace it with a scripted UI.
var openPanel = openTTYPanel

// loadConfig loads --config, OPENTABS_CONFIG or the default config file and
// returns it with the path it came from.
func loadConfig() (*config.Config, string, error) {
	path := configFile
	if path == "" {
		path = config.ConfigPath()
	}
	cfg, err := config.LoadFromFile(path)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

// openLogger opens the JSON log file. Logging never blocks the command: on
// failure records are dropped.
func openLogger(cfg *config.Config) (*slog.Logger, func()) {
	path := cfg.Log.File
	if path == "" {
		path = config.DefaultPaths().LogFile()
	}
	logger, closer, err := applog.OpenFile(path, cfg.Log.Level)
	if err != nil {
		return applog.Discard(), func() {}
	}
	return logger, func() { _ = closer.Close() }
}

// newFocuser builds the focus command focuser, or nil when none is set.
func newFocuser(cfg *config.Config, stderr io.Writer) (host.Focuser, error) {
	if cfg.Focus.Command == "" {
		return nil, nil
	}
	f, err := host.NewCommandFocuser(cfg.Focus.Command)
	if err != nil {
		return nil, err
	}
	if cfg.Focus.TimeoutMs > 0 {
		f.Timeout = msDuration(cfg.Focus.TimeoutMs)
	}
	f.Stdout = stderr
	f.Stderr = stderr
	return f, nil
}

func msDuration(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

func settingsFrom(cfg *config.Config) tabs.Settings {
	return tabs.Settings{
		LineLength:    cfg.TruncationLineLength,
		PreviewLength: cfg.TruncationPreviewLength,
	}
}

// quickPanel is a panel.UI that reports how it closed.
type quickPanel interface {
	panel.UI
	// Result returns the confirmed row; ok is false without a confirm.
	Result() (index int, ok bool)
	IsCancelled() bool
}

func runOpenTabs(cmd *cobra.Command, args []string) error {
	cfg, cfgPath, err := loadConfig()
	if err != nil {
		return fallbackError("failed to load config: %v", err)
	}
	if cmd.Flags().Changed("focus-cmd") {
		cfg.Focus.Command = focusCommand
	}

	logger, closeLog := openLogger(cfg)
	defer closeLog()

	if notice := cfg.Notice(cfgPath); notice != "" {
		fmt.Fprintln(cmd.ErrOrStderr(), notice)
		applog.LogSettingsDefaulted(logger, cfgPath, cfg.TruncationLineLength, cfg.TruncationPreviewLength)
	}

	snap, err := host.ReadSnapshot(snapshotPath)
	if err != nil {
		return fallbackError("failed to read snapshot: %v", err)
	}

	focuser, err := newFocuser(cfg, cmd.ErrOrStderr())
	if err != nil {
		return fallbackError("%v", err)
	}
	window := host.NewSnapshotWindow(snap, focuser)

	applog.LogInvocation(logger, applog.InvocationInfo{
		Version:      Version,
		ConfigPath:   cfgPath,
		SnapshotPath: snapshotPath,
		Groups:       window.NumGroups(),
		Views:        len(window.Views()),
		FocusCommand: focuser != nil,
	})

	command := &panel.Command{
		Window:     window,
		Classifier: tabs.Classifier{Separator: window.Separator()},
		Settings:   settingsFrom(cfg),
		Logger:     logger,
	}
	if !command.IsEnabled() {
		return fallbackError("no open tabs")
	}

	ui, closeUI, err := openPanel(cfg)
	if err != nil {
		return fallbackError("%v", err)
	}
	defer closeUI()

	command.UI = ui

	sess, err := command.Run()
	if err != nil {
		return fallbackError("%v", err)
	}
	if len(sess.Rows()) == 0 {
		return fallbackError("no tabs to list")
	}

	if err := sess.Err(); err != nil {
		if errors.Is(err, host.ErrFocusTimeout) {
			applog.LogFocusTimeout(logger, int64(cfg.Focus.TimeoutMs))
		}
		return fallbackError("%v", err)
	}

	if ui.IsCancelled() {
		applog.LogOutcome(logger, "cancelled", panel.NoSelection, "")
		return &ExitError{Code: ExitCancelled}
	}

	row, confirmed := ui.Result()
	focused, ok := sess.Focused()
	if !confirmed || !ok {
		return fallbackError("no tab focused")
	}
	applog.LogOutcome(logger, "focused", row, focused.ID())

	if focuser == nil {
		fmt.Fprintln(cmd.OutOrStdout(), host.Describe(focused))
	}
	return nil
}

// openTTYPanel runs the panel on the controlling terminal, since stdin may
// carry the snapshot and stdout the result.
func openTTYPanel(cfg *config.Config) (quickPanel, func(), error) {
	if err := checkTTY(); err != nil {
		return nil, nil, err
	}
	if err := checkTERM(); err != nil {
		return nil, nil, err
	}

	paths := config.DefaultPaths()
	if err := os.MkdirAll(paths.RuntimeDir, 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create runtime directory: %w", err)
	}
	lockFd, err := acquireLock(paths.LockFile())
	if err != nil {
		return nil, nil, err
	}

	tty, err := os.OpenFile(ttyPath, os.O_RDWR, 0)
	if err != nil {
		releaseLock(lockFd)
		return nil, nil, fmt.Errorf("cannot open %s: %w", ttyPath, err)
	}
	if err := checkTermWidth(tty); err != nil {
		tty.Close()
		releaseLock(lockFd)
		return nil, nil, err
	}

	// stdout may be a pipe, so detect colors from the tty. SetColorProfile
	// updates the default renderer the picker styles use.
	lipgloss.SetColorProfile(termenv.NewOutput(tty).ColorProfile())

	ui := &picker.Panel{
		Input:     tty,
		Output:    tty,
		AltScreen: cfg.Panel.AltScreen,
	}
	release := func() {
		tty.Close()
		releaseLock(lockFd)
	}
	return ui, release, nil
}

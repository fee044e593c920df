package panel

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/runger/opentabs/internal/host"
	"github.com/runger/opentabs/internal/tabs"
)

// ErrDisabled is returned by Run when the window has no open views.
var ErrDisabled = errors.New("open tabs: no views open")

// Command is the "Open Tabs" window command.
type Command struct {
	Window     host.Window
	UI         UI
	Classifier tabs.Classifier
	Settings   tabs.Settings
	Logger     *slog.Logger
}

// IsEnabled reports whether the command can run: at least one view is open.
func (c *Command) IsEnabled() bool {
	return len(c.Window.Views()) != 0
}

// IsVisible mirrors IsEnabled; the command is hidden without open views.
func (c *Command) IsVisible() bool {
	return c.IsEnabled()
}

// Run lists the tabs of the window and blocks until the panel closes. The
// returned session reports what was focused. When every open view is
// untracked the panel is not shown and the session has no rows.
func (c *Command) Run() (*Session, error) {
	if !c.IsEnabled() {
		return nil, ErrDisabled
	}

	logger := c.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	sess := NewSession(c.Window, c.Classifier, c.Settings, logger)
	logger.Debug("open tabs",
		"rows", len(sess.rows),
		"groups", c.Window.NumGroups(),
		"preselected", sess.preselected,
	)
	if len(sess.rows) == 0 {
		return sess, nil
	}

	if err := c.UI.Show(sess.Request()); err != nil {
		return sess, fmt.Errorf("quick panel: %w", err)
	}
	return sess, nil
}

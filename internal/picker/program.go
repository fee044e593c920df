package picker

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/runger/opentabs/internal/panel"
)

// ErrUnexpectedModel is returned when the program ends with a foreign model.
var ErrUnexpectedModel = errors.New("unexpected model type")

// Panel runs the quick panel as a Bubble Tea program. It implements
// panel.UI.
type Panel struct {
	Input     io.Reader
	Output    io.Writer
	AltScreen bool
	Context   context.Context

	// Options are appended to the program options, mainly for tests.
	Options []tea.ProgramOption

	final Model
	ran   bool
}

// Show runs the panel until the user confirms or cancels.
func (p *Panel) Show(req panel.Request) error {
	opts := []tea.ProgramOption{}
	if p.Input != nil {
		opts = append(opts, tea.WithInput(p.Input))
	}
	if p.Output != nil {
		opts = append(opts, tea.WithOutput(p.Output))
	}
	if p.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	if p.Context != nil {
		opts = append(opts, tea.WithContext(p.Context))
	}
	opts = append(opts, p.Options...)

	finalModel, err := tea.NewProgram(NewModel(req), opts...).Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	m, ok := finalModel.(Model)
	if !ok {
		return ErrUnexpectedModel
	}
	p.final = m
	p.ran = true
	return nil
}

// Result returns the confirmed row of the last Show.
func (p *Panel) Result() (int, bool) {
	if !p.ran {
		return panel.NoSelection, false
	}
	return p.final.Result()
}

// IsCancelled reports whether the last Show ended with a cancel.
func (p *Panel) IsCancelled() bool {
	return p.ran && p.final.IsCancelled()
}

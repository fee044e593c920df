package panel

import (
	"log/slog"

	"github.com/runger/opentabs/internal/host"
	"github.com/runger/opentabs/internal/tabs"
)

// NoSelection is the index a panel reports when nothing is chosen.
const NoSelection = -1

// Resolve maps a chosen row index to its view. NoSelection falls back to
// the last highlighted row, then to the pre-selected row. An index that is
// still unresolved or out of range yields false.
func Resolve(rows []Row, chosen, lastHighlighted, preselected int) (host.View, bool) {
	idx := chosen
	if idx == NoSelection {
		idx = lastHighlighted
	}
	if idx == NoSelection {
		idx = preselected
	}
	if idx < 0 || idx >= len(rows) || rows[idx].Entry == nil {
		return nil, false
	}
	return rows[idx].Entry.View(), true
}

// Request is what a UI needs to show the quick panel.
type Request struct {
	Rows        []Row
	Placeholder string
	// Selected is the row highlighted when the panel opens, or NoSelection.
	Selected int
	// OnSelect fires once when the panel closes, with NoSelection on cancel.
	OnSelect func(index int)
	// OnHighlight fires when the highlighted row changes. Nil disables live
	// preview.
	OnHighlight func(index int)
}

// UI shows a quick panel and blocks until it closes.
type UI interface {
	Show(req Request) error
}

// Session is the per-invocation state between the panel and the window.
type Session struct {
	window          host.Window
	rows            []Row
	multiGroup      bool
	preselected     int
	lastHighlighted int
	logger          *slog.Logger

	focused  host.View
	focusErr error
}

// NewSession classifies the window and projects its rows. In a window with
// a single group the active view is pre-selected.
func NewSession(w host.Window, c tabs.Classifier, s tabs.Settings, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	rows := Project(c.Classify(w), s)
	sess := &Session{
		window:          w,
		rows:            rows,
		multiGroup:      w.NumGroups() > 1,
		preselected:     NoSelection,
		lastHighlighted: NoSelection,
		logger:          logger,
	}
	if !sess.multiGroup {
		sess.preselected = activeRow(rows, w.ActiveView())
		sess.lastHighlighted = sess.preselected
	}
	return sess
}

func activeRow(rows []Row, active host.View) int {
	if active == nil {
		return NoSelection
	}
	for i, r := range rows {
		if r.Entry.View() == active {
			return i
		}
	}
	return NoSelection
}

// Rows returns the projected rows.
func (s *Session) Rows() []Row { return s.rows }

// MultiGroup reports whether the window is split into several groups.
func (s *Session) MultiGroup() bool { return s.multiGroup }

// Preselected is the row of the active view, or NoSelection.
func (s *Session) Preselected() int { return s.preselected }

// LastHighlighted is the most recent highlighted row, or NoSelection.
func (s *Session) LastHighlighted() int { return s.lastHighlighted }

// Request builds the panel request. Multi-group windows get no default
// highlight and no live preview.
func (s *Session) Request() Request {
	req := Request{
		Rows:        s.rows,
		Placeholder: Placeholder(len(s.rows)),
		Selected:    NoSelection,
		OnSelect:    s.OnSelect,
	}
	if !s.multiGroup {
		req.Selected = s.preselected
		req.OnHighlight = s.OnHighlight
	}
	return req
}

// OnSelect handles the confirm callback. A cancel (NoSelection) restores
// the pre-selected view, undoing any preview.
func (s *Session) OnSelect(index int) {
	s.logger.Debug("panel select", "index", index)
	s.focus(index, NoSelection)
}

// OnHighlight handles the highlight callback used for live preview.
func (s *Session) OnHighlight(index int) {
	s.logger.Debug("panel highlight", "index", index)
	if index >= 0 && index < len(s.rows) {
		s.lastHighlighted = index
	}
	s.focus(index, s.lastHighlighted)
}

func (s *Session) focus(index, lastHighlighted int) {
	fallbackHighlight, fallbackPreselect := lastHighlighted, s.preselected
	if s.multiGroup {
		fallbackHighlight, fallbackPreselect = NoSelection, NoSelection
	}

	v, ok := Resolve(s.rows, index, fallbackHighlight, fallbackPreselect)
	if !ok {
		s.logger.Debug("no view to focus", "index", index)
		return
	}
	if err := s.window.Focus(v); err != nil {
		s.logger.Warn("focus failed", "view_id", v.ID(), "error", err)
		s.focusErr = err
		return
	}
	s.focused = v
	s.focusErr = nil
}

// Focused returns the view most recently focused by this session.
func (s *Session) Focused() (host.View, bool) {
	return s.focused, s.focused != nil
}

// Err returns the error of the most recent failed focus, if it was not
// followed by a successful one.
func (s *Session) Err() error {
	return s.focusErr
}

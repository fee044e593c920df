package picker

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/runger/opentabs/internal/panel"
)

// pickerState represents the current state of the picker's state machine.
type pickerState int

const (
	stateBrowsing  pickerState = iota // Panel open, accepting input
	stateConfirmed                    // User confirmed a row (Enter)
	stateCancelled                    // User cancelled (Esc / Ctrl+C)
)

// KeyMap defines the panel key bindings. Keys not bound here go to the
// query input.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Confirm  key.Binding
	Cancel   key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "ctrl+p"), key.WithHelp("↑", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "ctrl+n"), key.WithHelp("↓", "down")),
		PageUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
		Confirm:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Cancel:   key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "cancel")),
	}
}

// Model is the Bubble Tea model for the open tabs quick panel.
type Model struct {
	state     pickerState
	rows      []panel.Row
	matches   []Match
	selection int // Index into matches; -1 when empty
	offset    int // First visible match

	input textinput.Model
	keys  KeyMap

	width  int // Terminal width
	height int // Terminal height

	onSelect    func(int)
	onHighlight func(int)
	highlighted int // Last row index reported as highlighted

	// result holds the confirmed row index, or panel.NoSelection.
	result int
}

// NewModel creates a panel model for req. The row at req.Selected starts
// highlighted; without one the first row does and is reported through
// OnHighlight.
func NewModel(req panel.Request) Model {
	in := textinput.New()
	in.Prompt = "> "
	in.Placeholder = req.Placeholder
	in.PromptStyle = queryStyle
	in.PlaceholderStyle = dimStyle
	in.Focus()

	m := Model{
		state:       stateBrowsing,
		rows:        req.Rows,
		matches:     Filter(req.Rows, ""),
		selection:   -1,
		input:       in,
		keys:        DefaultKeyMap(),
		onSelect:    req.OnSelect,
		onHighlight: req.OnHighlight,
		result:      panel.NoSelection,
	}
	if len(m.matches) > 0 {
		m.selection = 0
	}
	m.highlighted = panel.NoSelection
	if req.Selected >= 0 && req.Selected < len(m.matches) {
		// The host already shows the pre-selected row.
		m.selection = req.Selected
		m.highlighted = m.Current()
	}
	m.emitHighlight()
	m.ensureVisible()
	return m
}

// Current returns the row index under the cursor, or panel.NoSelection when
// the filter matches nothing.
func (m Model) Current() int {
	if m.selection < 0 || m.selection >= len(m.matches) {
		return panel.NoSelection
	}
	return m.matches[m.selection].Index
}

// Result returns the confirmed row index. ok is false when the panel was
// cancelled or is still open.
func (m Model) Result() (index int, ok bool) {
	return m.result, m.state == stateConfirmed
}

// IsCancelled reports whether the user dismissed the panel.
func (m Model) IsCancelled() bool {
	return m.state == stateCancelled
}

// Query returns the current filter text.
func (m Model) Query() string {
	return m.input.Value()
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(msg.Width-runewidth.StringWidth(m.input.Prompt)-1, 0)
		m.ensureVisible()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.state != stateBrowsing {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.state = stateCancelled
		m.result = panel.NoSelection
		if m.onSelect != nil {
			m.onSelect(panel.NoSelection)
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Confirm):
		idx := m.Current()
		if idx == panel.NoSelection {
			return m, nil
		}
		m.state = stateConfirmed
		m.result = idx
		if m.onSelect != nil {
			m.onSelect(idx)
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.move(-1)
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.move(1)
		return m, nil

	case key.Matches(msg, m.keys.PageUp):
		m.move(-m.listHeight())
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.move(m.listHeight())
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.refilter()
	}
	return m, cmd
}

// move shifts the cursor by delta, clamped to the visible matches.
func (m *Model) move(delta int) {
	if len(m.matches) == 0 {
		return
	}
	m.selection = min(max(m.selection+delta, 0), len(m.matches)-1)
	m.ensureVisible()
	m.emitHighlight()
}

// refilter recomputes the matches for the current query and puts the cursor
// on the best match.
func (m *Model) refilter() {
	m.matches = Filter(m.rows, m.input.Value())
	m.offset = 0
	m.selection = -1
	if len(m.matches) > 0 {
		m.selection = 0
	}
	m.ensureVisible()
	m.emitHighlight()
}

// emitHighlight reports the row under the cursor when it changed.
func (m *Model) emitHighlight() {
	cur := m.Current()
	if cur == m.highlighted {
		return
	}
	m.highlighted = cur
	if m.onHighlight != nil {
		m.onHighlight(cur)
	}
}

// ensureVisible scrolls so the cursor is inside the list window.
func (m *Model) ensureVisible() {
	if m.selection < 0 {
		m.offset = 0
		return
	}
	h := m.listHeight()
	if m.selection < m.offset {
		m.offset = m.selection
	}
	if m.selection >= m.offset+h {
		m.offset = m.selection - h + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// listHeight returns the number of visible list rows (terminal height minus
// the query and status lines).
func (m Model) listHeight() int {
	const chrome = 2
	h := m.height - chrome
	if h < 1 {
		h = 10 // Sensible default before first WindowSizeMsg
	}
	return h
}

// --- View rendering ---

var (
	selectedStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	normalStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	queryStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	dimStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	matchStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	underlineStyle  = lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("245"))
	strongStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("245"))
	plainStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	variableStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	navigationStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("176"))
)

// View implements tea.Model.
func (m Model) View() string {
	if m.state != stateBrowsing {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.input.View())
	b.WriteRune('\n')
	b.WriteString(m.viewList())
	b.WriteRune('\n')
	b.WriteString(m.viewStatus())
	return b.String()
}

// viewList renders the visible window of matches with the cursor marker.
func (m Model) viewList() string {
	if len(m.matches) == 0 {
		return dimStyle.Render("No matches")
	}

	end := min(m.offset+m.listHeight(), len(m.matches))
	lines := make([]string, 0, end-m.offset)
	for i := m.offset; i < end; i++ {
		lines = append(lines, m.viewRow(m.matches[i], i == m.selection))
	}
	return strings.Join(lines, "\n")
}

// viewRow renders one row: marker, kind symbol, label, details and the
// right-aligned group annotation.
func (m Model) viewRow(match Match, selected bool) string {
	row := m.rows[match.Index]

	base := normalStyle
	marker := "  "
	if selected {
		base = selectedStyle
		marker = "> "
	}

	label := CleanText(row.Label)
	details := make([]panel.Detail, 0, len(row.Details))
	texts := make([]string, 0, len(row.Details))
	for _, d := range row.Details {
		if d.Text != "" {
			d.Text = CleanText(d.Text)
			details = append(details, d)
			texts = append(texts, d.Text)
		}
	}
	plain := strings.TrimSpace(label + " " + strings.Join(texts, " "))
	annotation := CleanText(row.Annotation)

	var b strings.Builder
	b.WriteString(base.Render(marker))
	b.WriteString(kindStyle(row.Kind).Render(kindSymbol(row.Kind)))
	b.WriteRune(' ')

	// marker + symbol + space
	const lead = 4
	avail := m.width - lead
	if m.width > 0 && runewidth.StringWidth(plain) > avail {
		b.WriteString(base.Render(MiddleTruncate(plain, avail)))
		return b.String()
	}

	if label == row.Label {
		b.WriteString(highlightMatches(label, match.Matched, base))
	} else {
		b.WriteString(base.Render(label))
	}
	for _, d := range details {
		b.WriteRune(' ')
		b.WriteString(emphasisStyle(d.Emphasis).Render(d.Text))
	}

	if annotation != "" && m.width > 0 {
		pad := avail - runewidth.StringWidth(plain) - runewidth.StringWidth(annotation)
		if pad >= 1 {
			b.WriteString(strings.Repeat(" ", pad))
			b.WriteString(dimStyle.Render(annotation))
		}
	}
	return b.String()
}

// viewStatus renders the match count and key hints.
func (m Model) viewStatus() string {
	hints := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Confirm, m.keys.Cancel}
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		help := h.Help()
		parts = append(parts, help.Key+" "+help.Desc)
	}
	return dimStyle.Render(fmt.Sprintf("%d/%d  %s", len(m.matches), len(m.rows), strings.Join(parts, " • ")))
}

// highlightMatches renders s with the runes at the matched byte offsets
// emphasised. Offsets past the end of s are ignored.
func highlightMatches(s string, matched []int, base lipgloss.Style) string {
	if len(matched) == 0 {
		return base.Render(s)
	}
	hit := make(map[int]bool, len(matched))
	for _, i := range matched {
		hit[i] = true
	}

	var b, run strings.Builder
	runHit := false
	flush := func() {
		if run.Len() == 0 {
			return
		}
		if runHit {
			b.WriteString(matchStyle.Render(run.String()))
		} else {
			b.WriteString(base.Render(run.String()))
		}
		run.Reset()
	}
	for i, r := range s {
		if hit[i] != runHit {
			flush()
			runHit = hit[i]
		}
		run.WriteRune(r)
	}
	flush()
	return b.String()
}

func emphasisStyle(e panel.Emphasis) lipgloss.Style {
	switch e {
	case panel.Underline:
		return underlineStyle
	case panel.Strong:
		return strongStyle
	default:
		return plainStyle
	}
}

func kindStyle(k panel.Kind) lipgloss.Style {
	if k == panel.KindNavigation {
		return navigationStyle
	}
	return variableStyle
}

// kindSymbol is the one-letter badge drawn before each row.
func kindSymbol(k panel.Kind) string {
	return strings.ToUpper(k.String()[:1])
}

// Package panel projects tracked tabs onto quick panel rows and resolves the
// row a user picks back to the view it came from.
package panel

import (
	"fmt"
	"strings"

	"github.com/runger/opentabs/internal/tabs"
)

// Kind selects the icon shown next to a row. It has no behavioural effect.
type Kind int

const (
	KindVariable   Kind = iota // File-backed tab
	KindNavigation             // Unsaved buffer
)

func (k Kind) String() string {
	switch k {
	case KindVariable:
		return "variable"
	case KindNavigation:
		return "navigation"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Emphasis is the text style of a Detail.
type Emphasis int

const (
	Plain Emphasis = iota
	Underline
	Strong
)

// Detail is one fragment of a row's detail line.
type Detail struct {
	Text     string
	Emphasis Emphasis
}

// Markup renders the detail in the HTML-flavoured form editor panels accept.
func (d Detail) Markup() string {
	switch d.Emphasis {
	case Underline:
		return "<u>" + d.Text + "</u>"
	case Strong:
		return "<strong>" + d.Text + "</strong>"
	default:
		return d.Text
	}
}

// Marker texts used in details.
const (
	ModifiedMarker = "*modified"
	UnsavedMarker  = "*unsaved"
)

// Row is one line of the quick panel.
type Row struct {
	Label      string
	Details    []Detail
	Annotation string
	Kind       Kind
	Entry      tabs.Entry
}

// DetailText joins the non-empty details as plain text.
func (r Row) DetailText() string {
	parts := make([]string, 0, len(r.Details))
	for _, d := range r.Details {
		if d.Text != "" {
			parts = append(parts, d.Text)
		}
	}
	return strings.Join(parts, " ")
}

// DetailMarkup joins the non-empty details as markup.
func (r Row) DetailMarkup() string {
	parts := make([]string, 0, len(r.Details))
	for _, d := range r.Details {
		if d.Text != "" {
			parts = append(parts, d.Markup())
		}
	}
	return strings.Join(parts, " ")
}

// FilterValue is the text the panel's fuzzy filter matches against.
func (r Row) FilterValue() string {
	if text := r.DetailText(); text != "" {
		return r.Label + " " + text
	}
	return r.Label
}

// Project builds one row per entry, in entry order.
func Project(entries []tabs.Entry, s tabs.Settings) []Row {
	rows := make([]Row, 0, len(entries))
	for _, e := range entries {
		switch e := e.(type) {
		case *tabs.FileEntry:
			rows = append(rows, fileRow(e, s))
		case *tabs.BufferEntry:
			rows = append(rows, bufferRow(e))
		}
	}
	return rows
}

func fileRow(e *tabs.FileEntry, s tabs.Settings) Row {
	folder := e.TruncatedPath(s)
	modified := ""
	if e.Modified {
		modified = ModifiedMarker
	}
	return Row{
		Label: fmt.Sprintf("%s|%d", e.ShortName, e.WindowGroup),
		Details: []Detail{
			{Text: folder.Head(), Emphasis: Underline},
			{Text: folder.Tail(), Emphasis: Strong},
			{Text: modified, Emphasis: Strong},
		},
		Annotation: annotation(e.WindowGroup),
		Kind:       KindVariable,
		Entry:      e,
	}
}

func bufferRow(e *tabs.BufferEntry) Row {
	return Row{
		Label:      fmt.Sprintf("%s|%d", e.DisplayName, e.WindowGroup),
		Details:    []Detail{{Text: UnsavedMarker}},
		Annotation: annotation(e.WindowGroup),
		Kind:       KindNavigation,
		Entry:      e,
	}
}

func annotation(group int) string {
	return fmt.Sprintf("group%d", group)
}

// Placeholder is the hint shown in the panel's empty query input.
func Placeholder(count int) string {
	return fmt.Sprintf("OpenTabs: %d", count)
}

package host

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// ErrNoSnapshot is returned when the snapshot input is empty.
var ErrNoSnapshot = errors.New("empty window snapshot")

// Snapshot is the window state exported by an editor integration.
// JSON input is accepted as well since it is valid YAML.
type Snapshot struct {
	Folder    string          `yaml:"folder" json:"folder"`       // Project root (optional)
	Separator string          `yaml:"separator" json:"separator"` // Path separator used by the editor (optional)
	Active    string          `yaml:"active" json:"active"`       // ID of the active view (optional)
	Groups    []SnapshotGroup `yaml:"groups" json:"groups"`
}

// SnapshotGroup is one visual group of the window.
type SnapshotGroup struct {
	Views []*SnapshotView `yaml:"views" json:"views"`
}

// SnapshotView is one open document of a snapshot.
type SnapshotView struct {
	ViewID string `yaml:"id" json:"id"`
	File   string `yaml:"file" json:"file"`
	Title  string `yaml:"name" json:"name"`
	Dirty  bool   `yaml:"dirty" json:"dirty"`
}

func (v *SnapshotView) ID() string       { return v.ViewID }
func (v *SnapshotView) FileName() string { return v.File }
func (v *SnapshotView) Name() string     { return v.Title }
func (v *SnapshotView) IsDirty() bool    { return v.Dirty }

func (v *SnapshotView) String() string {
	return fmt.Sprintf("SnapshotView(id=%s, file=%s, name=%s, dirty=%t)", v.ViewID, v.File, v.Title, v.Dirty)
}

// DecodeSnapshot parses a snapshot and assigns generated IDs to views that
// have none.
func DecodeSnapshot(r io.Reader) (*Snapshot, error) {
	var snap Snapshot
	if err := yaml.NewDecoder(r).Decode(&snap); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoSnapshot
		}
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}

	for gi := range snap.Groups {
		views := snap.Groups[gi].Views[:0]
		for _, v := range snap.Groups[gi].Views {
			if v == nil {
				continue
			}
			if strings.TrimSpace(v.ViewID) == "" {
				v.ViewID = uuid.New().String()
			}
			views = append(views, v)
		}
		snap.Groups[gi].Views = views
	}

	return &snap, nil
}

// ReadSnapshot reads a snapshot from path, or from stdin when path is "-".
func ReadSnapshot(path string) (*Snapshot, error) {
	if path == "" || path == "-" {
		return DecodeSnapshot(os.Stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer f.Close()

	return DecodeSnapshot(f)
}

// SnapshotWindow is a Window backed by a Snapshot. Focus is delegated to a
// Focuser; the last focused view is remembered for the caller.
type SnapshotWindow struct {
	snap    *Snapshot
	focuser Focuser
	groupOf map[*SnapshotView]int
	focused *SnapshotView
}

// NewSnapshotWindow wraps snap. focuser may be nil, in which case Focus only
// records the view.
func NewSnapshotWindow(snap *Snapshot, focuser Focuser) *SnapshotWindow {
	w := &SnapshotWindow{
		snap:    snap,
		focuser: focuser,
		groupOf: make(map[*SnapshotView]int),
	}
	for gi, g := range snap.Groups {
		for _, v := range g.Views {
			w.groupOf[v] = gi
		}
	}
	return w
}

// NumGroups implements Window. An editor window always has one group, even
// when the snapshot lists none.
func (w *SnapshotWindow) NumGroups() int {
	if len(w.snap.Groups) == 0 {
		return 1
	}
	return len(w.snap.Groups)
}

// ViewsInGroup implements Window.
func (w *SnapshotWindow) ViewsInGroup(group int) []View {
	if group < 0 || group >= len(w.snap.Groups) {
		return nil
	}
	src := w.snap.Groups[group].Views
	views := make([]View, 0, len(src))
	for _, v := range src {
		views = append(views, v)
	}
	return views
}

// Views implements Window.
func (w *SnapshotWindow) Views() []View {
	var views []View
	for gi := range w.snap.Groups {
		views = append(views, w.ViewsInGroup(gi)...)
	}
	return views
}

// ActiveView implements Window. The first view with the active ID wins.
func (w *SnapshotWindow) ActiveView() View {
	if w.snap.Active == "" {
		return nil
	}
	for _, g := range w.snap.Groups {
		for _, v := range g.Views {
			if v.ViewID == w.snap.Active {
				return v
			}
		}
	}
	return nil
}

// Variables implements Window.
func (w *SnapshotWindow) Variables() map[string]string {
	vars := map[string]string{}
	if w.snap.Folder != "" {
		vars[FolderVariable] = w.snap.Folder
	}
	return vars
}

// Separator returns the path separator declared by the snapshot, or "".
func (w *SnapshotWindow) Separator() string {
	return w.snap.Separator
}

// Focus implements Window.
func (w *SnapshotWindow) Focus(v View) error {
	sv, ok := v.(*SnapshotView)
	if !ok {
		return ErrUnknownView
	}
	group, ok := w.groupOf[sv]
	if !ok {
		return ErrUnknownView
	}

	w.focused = sv
	if w.focuser == nil {
		return nil
	}
	return w.focuser.Focus(v, group)
}

// Focused returns the most recently focused view.
func (w *SnapshotWindow) Focused() (View, bool) {
	if w.focused == nil {
		return nil, false
	}
	return w.focused, true
}

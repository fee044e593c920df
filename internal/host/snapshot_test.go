package host

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlSnapshot = `
folder: /proj
active: v1
groups:
  - views:
      - id: v1
        file: /proj/src/a.py
      - id: v2
        name: Untitled-1
        dirty: true
  - views:
      - file: /proj/b.go
`

func TestDecodeSnapshot_YAML(t *testing.T) {
	t.Parallel()

	snap, err := DecodeSnapshot(strings.NewReader(yamlSnapshot))
	require.NoError(t, err)

	assert.Equal(t, "/proj", snap.Folder)
	assert.Equal(t, "v1", snap.Active)
	require.Len(t, snap.Groups, 2)
	require.Len(t, snap.Groups[0].Views, 2)
	assert.Equal(t, "/proj/src/a.py", snap.Groups[0].Views[0].File)
	assert.Equal(t, "Untitled-1", snap.Groups[0].Views[1].Title)
	assert.True(t, snap.Groups[0].Views[1].Dirty)
	assert.NotEmpty(t, snap.Groups[1].Views[0].ViewID, "missing id should be generated")
}

func TestDecodeSnapshot_JSON(t *testing.T) {
	t.Parallel()

	in := `{"folder": "/proj", "active": "b", "groups": [{"views": [{"id": "a", "file": "/proj/x.go"}, {"id": "b", "name": "scratch", "dirty": false}]}]}`
	snap, err := DecodeSnapshot(strings.NewReader(in))
	require.NoError(t, err)

	require.Len(t, snap.Groups, 1)
	assert.Equal(t, "a", snap.Groups[0].Views[0].ViewID)
	assert.Equal(t, "scratch", snap.Groups[0].Views[1].Title)
}

func TestDecodeSnapshot_GeneratedIDsAreUnique(t *testing.T) {
	t.Parallel()

	in := "groups:\n  - views:\n      - name: one\n      - name: two\n"
	snap, err := DecodeSnapshot(strings.NewReader(in))
	require.NoError(t, err)

	views := snap.Groups[0].Views
	assert.NotEqual(t, views[0].ViewID, views[1].ViewID)
}

func TestDecodeSnapshot_Empty(t *testing.T) {
	t.Parallel()

	_, err := DecodeSnapshot(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrNoSnapshot)
}

func TestDecodeSnapshot_Invalid(t *testing.T) {
	t.Parallel()

	_, err := DecodeSnapshot(strings.NewReader("groups: [unterminated"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse snapshot")
}

func TestSnapshotWindow_Groups(t *testing.T) {
	t.Parallel()

	snap, err := DecodeSnapshot(strings.NewReader(yamlSnapshot))
	require.NoError(t, err)
	w := NewSnapshotWindow(snap, nil)

	assert.Equal(t, 2, w.NumGroups())
	assert.Len(t, w.ViewsInGroup(0), 2)
	assert.Len(t, w.ViewsInGroup(1), 1)
	assert.Nil(t, w.ViewsInGroup(2))
	assert.Nil(t, w.ViewsInGroup(-1))
	assert.Len(t, w.Views(), 3)
	assert.Equal(t, map[string]string{FolderVariable: "/proj"}, w.Variables())
}

func TestSnapshotWindow_NoGroupsStillReportsOne(t *testing.T) {
	t.Parallel()

	w := NewSnapshotWindow(&Snapshot{}, nil)
	assert.Equal(t, 1, w.NumGroups())
	assert.Empty(t, w.Views())
	assert.Nil(t, w.ActiveView())
	assert.Empty(t, w.Variables())
}

func TestSnapshotWindow_ActiveViewIdentity(t *testing.T) {
	t.Parallel()

	snap, err := DecodeSnapshot(strings.NewReader(yamlSnapshot))
	require.NoError(t, err)
	w := NewSnapshotWindow(snap, nil)

	active := w.ActiveView()
	require.NotNil(t, active)
	assert.True(t, active == w.ViewsInGroup(0)[0], "active view must be the same handle")
	assert.False(t, active == w.ViewsInGroup(0)[1])
}

type recordingFocuser struct {
	views  []View
	groups []int
}

func (r *recordingFocuser) Focus(v View, group int) error {
	r.views = append(r.views, v)
	r.groups = append(r.groups, group)
	return nil
}

func TestSnapshotWindow_Focus(t *testing.T) {
	t.Parallel()

	snap, err := DecodeSnapshot(strings.NewReader(yamlSnapshot))
	require.NoError(t, err)
	rec := &recordingFocuser{}
	w := NewSnapshotWindow(snap, rec)

	_, ok := w.Focused()
	assert.False(t, ok)

	target := w.ViewsInGroup(1)[0]
	require.NoError(t, w.Focus(target))

	focused, ok := w.Focused()
	require.True(t, ok)
	assert.Equal(t, target, focused)
	assert.Equal(t, []int{1}, rec.groups)
}

func TestSnapshotWindow_FocusUnknownView(t *testing.T) {
	t.Parallel()

	w := NewSnapshotWindow(&Snapshot{}, nil)
	err := w.Focus(&SnapshotView{ViewID: "stray"})
	assert.ErrorIs(t, err, ErrUnknownView)
}

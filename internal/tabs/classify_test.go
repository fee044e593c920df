package tabs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runger/opentabs/internal/host"
)

var posix = Classifier{Separator: "/"}

func window(folder string, groups ...[]*host.SnapshotView) *host.SnapshotWindow {
	snap := &host.Snapshot{Folder: folder}
	for _, g := range groups {
		snap.Groups = append(snap.Groups, host.SnapshotGroup{Views: g})
	}
	return host.NewSnapshotWindow(snap, nil)
}

func TestClassify_FileAndBuffer(t *testing.T) {
	t.Parallel()

	a := &host.SnapshotView{ViewID: "1", File: "/proj/src/a.py", Dirty: true}
	buf := &host.SnapshotView{ViewID: "2", Title: "Untitled-1"}
	entries := posix.Classify(window("/proj", []*host.SnapshotView{a, buf}))
	require.Len(t, entries, 2)

	fe, ok := entries[0].(*FileEntry)
	require.True(t, ok)
	assert.Equal(t, "/proj/src/a.py", fe.FullPath)
	assert.Equal(t, "a.py", fe.ShortName)
	assert.Equal(t, "/proj", fe.Root)
	assert.True(t, fe.Modified)
	assert.Equal(t, 0, fe.Group())
	assert.True(t, fe.View() == host.View(a))

	be, ok := entries[1].(*BufferEntry)
	require.True(t, ok)
	assert.Equal(t, "Untitled-1", be.DisplayName)
	assert.True(t, be.View() == host.View(buf))
}

func TestClassify_FileWinsOverName(t *testing.T) {
	t.Parallel()

	v := &host.SnapshotView{ViewID: "1", File: "/p/x.go", Title: "custom title"}
	entries := posix.Classify(window("", []*host.SnapshotView{v}))
	require.Len(t, entries, 1)
	assert.IsType(t, &FileEntry{}, entries[0])
}

func TestClassify_SkipsNamelessViews(t *testing.T) {
	t.Parallel()

	entries := posix.Classify(window("/p",
		[]*host.SnapshotView{{ViewID: "1"}, {ViewID: "2", Title: "notes"}, {ViewID: "3"}},
	))
	require.Len(t, entries, 1)
	assert.Equal(t, "notes", entries[0].(*BufferEntry).DisplayName)
}

func TestClassify_GroupOrder(t *testing.T) {
	t.Parallel()

	entries := posix.Classify(window("/p",
		[]*host.SnapshotView{{ViewID: "a", File: "/p/a"}, {ViewID: "b", File: "/p/b"}},
		[]*host.SnapshotView{{ViewID: "c", Title: "c"}},
		[]*host.SnapshotView{{ViewID: "d", File: "/p/d"}},
	))

	var ids []string
	var groups []int
	for _, e := range entries {
		ids = append(ids, e.View().ID())
		groups = append(groups, e.Group())
	}
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids)
	assert.Equal(t, []int{0, 0, 1, 2}, groups)
}

func TestClassify_EmptyWindow(t *testing.T) {
	t.Parallel()

	assert.Empty(t, posix.Classify(window("/p")))
}

func TestFolderPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		root string
		file string
		want string
	}{
		{"no root", "", "/proj/src/a.py", NoFolder},
		{"nested", "/proj", "/proj/src/a.py", "src"},
		{"deep", "/proj", "/proj/src/pkg/util/a.py", "src/pkg/util"},
		{"project root", "/proj", "/proj/a.py", ProjectFolder},
		{"root with trailing separator", "/proj/", "/proj/src/a.py", "src"},
		{"outside root", "/other", "/proj/src/a.py", "proj/src"},
		{"short name repeated in folder", "/proj", "/proj/a.py/a.py", "a.py"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			entries := posix.Classify(window(tt.root, []*host.SnapshotView{{ViewID: "1", File: tt.file}}))
			require.Len(t, entries, 1)
			assert.Equal(t, tt.want, entries[0].(*FileEntry).FolderPath())
		})
	}
}

func TestFolderPath_WindowsSeparator(t *testing.T) {
	t.Parallel()

	c := Classifier{Separator: `\`}
	entries := c.Classify(window(`C:\proj`, []*host.SnapshotView{{ViewID: "1", File: `C:\proj\src\main.go`}}))
	require.Len(t, entries, 1)
	fe := entries[0].(*FileEntry)
	assert.Equal(t, "main.go", fe.ShortName)
	assert.Equal(t, "src", fe.FolderPath())
}

func TestBasename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want string
	}{
		{"/proj/src/a.py", "a.py"},
		{"a.py", "a.py"},
		{"/proj/src/", "src"},
		{"/", "/"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Basename(tt.path, "/"), tt.path)
	}
}

func TestEntryString(t *testing.T) {
	t.Parallel()

	fe := &FileEntry{Handle: &host.SnapshotView{ViewID: "7"}, FullPath: "/p/a", ShortName: "a", Root: "/p", WindowGroup: 1}
	assert.Equal(t, "FileEntry(view_id=7, file_name=/p/a, short_name=a, folder_name=/p, group=1, modified=false)", fe.String())

	be := &BufferEntry{Handle: &host.SnapshotView{ViewID: "8"}, DisplayName: "scratch"}
	assert.Equal(t, "BufferEntry(view_id=8, tab_name=scratch, group=0)", be.String())
}

package tabs

import (
	"path/filepath"
	"strings"

	"github.com/runger/opentabs/internal/host"
)

// Classifier turns the views of a window into tracked entries.
type Classifier struct {
	// Separator is the editor's path separator. Defaults to the OS one.
	Separator string
}

// Classify walks the groups of w in order, then the views of each group in
// tab order. Views with neither a file nor a name are skipped.
func (c Classifier) Classify(w host.Window) []Entry {
	root := w.Variables()[host.FolderVariable]
	sep := c.separator()

	var entries []Entry
	for group := 0; group < w.NumGroups(); group++ {
		for _, v := range w.ViewsInGroup(group) {
			if e := c.classify(v, root, sep, group); e != nil {
				entries = append(entries, e)
			}
		}
	}
	return entries
}

func (c Classifier) classify(v host.View, root, sep string, group int) Entry {
	if file := v.FileName(); file != "" {
		return &FileEntry{
			Handle:      v,
			FullPath:    file,
			ShortName:   Basename(file, sep),
			Root:        root,
			WindowGroup: group,
			Modified:    v.IsDirty(),
			sep:         sep,
		}
	}
	if name := v.Name(); name != "" {
		return &BufferEntry{Handle: v, DisplayName: name, WindowGroup: group}
	}
	return nil
}

func (c Classifier) separator() string {
	if c.Separator == "" {
		return string(filepath.Separator)
	}
	return c.Separator
}

// Basename returns the last sep-delimited component of path. Unlike a plain
// basename, trailing separators are ignored, so "/proj/src/" gives "src"
// rather than "" and short_name is never empty for a non-empty path.
func Basename(path, sep string) string {
	trimmed := strings.TrimRight(path, sep)
	if trimmed == "" {
		return path
	}
	if i := strings.LastIndex(trimmed, sep); i >= 0 {
		return trimmed[i+len(sep):]
	}
	return trimmed
}

// Package tabs classifies the open views of a window into file-backed
// entries and unsaved buffers, and derives the folder text shown for each
// file.
package tabs

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/runger/opentabs/internal/host"
)

// Folder display markers.
const (
	// ProjectFolder marks a file that lives directly in the project root.
	ProjectFolder = "[project]"
	// NoFolder is shown when the window has no project root.
	NoFolder = "-"
)

// Entry is one tracked tab: either a *FileEntry or a *BufferEntry.
type Entry interface {
	View() host.View
	Group() int
	entry()
}

// FileEntry is an open document backed by a file.
type FileEntry struct {
	Handle      host.View
	FullPath    string
	ShortName   string
	Root        string // Project root; "" when the window has none
	WindowGroup int
	Modified    bool

	sep string
}

// BufferEntry is an open document without a file but with a tab name.
type BufferEntry struct {
	Handle      host.View
	DisplayName string
	WindowGroup int
}

func (e *FileEntry) View() host.View { return e.Handle }
func (e *FileEntry) Group() int      { return e.WindowGroup }
func (*FileEntry) entry()            {}

func (e *BufferEntry) View() host.View { return e.Handle }
func (e *BufferEntry) Group() int      { return e.WindowGroup }
func (*BufferEntry) entry()            {}

// FolderPath returns the folder of the file relative to the project root.
// Stripping is best effort: a file outside the root keeps its directory
// structure instead of failing.
func (e *FileEntry) FolderPath() string {
	if e.Root == "" {
		return NoFolder
	}

	sep := e.separator()
	rel := strings.TrimPrefix(e.FullPath, e.Root)
	rel = strings.TrimSuffix(rel, e.ShortName)
	rel = strings.TrimPrefix(rel, sep)
	rel = strings.TrimSuffix(rel, sep)
	if rel == "" {
		return ProjectFolder
	}
	return rel
}

// TruncatedPath returns the folder path shortened under settings.
func (e *FileEntry) TruncatedPath(s Settings) TruncatedPath {
	return Truncate(e.FolderPath(), s)
}

func (e *FileEntry) separator() string {
	if e.sep == "" {
		return string(filepath.Separator)
	}
	return e.sep
}

func (e *FileEntry) String() string {
	return fmt.Sprintf("FileEntry(view_id=%s, file_name=%s, short_name=%s, folder_name=%s, group=%d, modified=%t)",
		e.Handle.ID(), e.FullPath, e.ShortName, e.Root, e.WindowGroup, e.Modified)
}

func (e *BufferEntry) String() string {
	return fmt.Sprintf("BufferEntry(view_id=%s, tab_name=%s, group=%d)", e.Handle.ID(), e.DisplayName, e.WindowGroup)
}

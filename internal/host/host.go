// Package host defines the editor side of the open tabs command: the window
// that owns open documents and the documents themselves.
//
// The command never owns a View. It only reads attributes from it and hands
// it back to Window.Focus, so View values must compare equal by identity.
package host

import "errors"

// FolderVariable is the window variable that carries the project root.
const FolderVariable = "folder"

// ErrUnknownView is returned by Focus for a view the window does not own.
var ErrUnknownView = errors.New("view is not open in this window")

// View is an open document.
type View interface {
	// ID is a stable identifier for the lifetime of the invocation.
	ID() string
	// FileName is the backing file path, or "" for an unsaved buffer.
	FileName() string
	// Name is the tab title the editor shows for buffers without a file.
	Name() string
	// IsDirty reports unsaved modifications.
	IsDirty() bool
}

// Window is the editor window that holds the open views.
type Window interface {
	// NumGroups is the number of visual groups (split columns/rows), >= 1.
	NumGroups() int
	// ViewsInGroup returns the views of one group in tab order.
	ViewsInGroup(group int) []View
	// Views returns every open view across all groups.
	Views() []View
	// ActiveView returns the focused view or nil.
	ActiveView() View
	// Variables returns window metadata such as the project folder.
	Variables() map[string]string
	// Focus brings a view to the front.
	Focus(v View) error
}

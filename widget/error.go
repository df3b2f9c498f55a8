package widget

import "github.com/ardnew/inflate/pkg"

var (
	// ErrNotWidget indicates a container child inflated to something other
	// than a *Widget.
	ErrNotWidget = pkg.NewError("child is not a widget")
	// ErrUnknownFormat indicates an unsupported output format name.
	ErrUnknownFormat = pkg.NewError("unknown output format")
)

package layout

import "errors"

var (
	// ErrPaneNotFound is returned when an operator is given a pane or grid
	// id that is absent from the tree. The tree is left unchanged.
	ErrPaneNotFound = errors.New("pane not found in layout")

	// ErrMaxPanes is returned when a split would exceed the configured
	// pane ceiling. The tree is left unchanged.
	ErrMaxPanes = errors.New("maximum pane count reached")
)

package viewport

import "errors"

// Errors returned by viewport tree operations.
var (
	// ErrUnknownLeaf indicates a leaf ID not present in the tree.
	ErrUnknownLeaf = errors.New("unknown pane")

	// ErrLastPane indicates an attempt to close the only pane.
	ErrLastPane = errors.New("cannot close last pane")
)

package cursor

import "errors"

// Errors returned by selection set operations.
var (
	// ErrUnknownCursor indicates an ID not present in the set.
	ErrUnknownCursor = errors.New("unknown cursor")

	// ErrLastCursor indicates an attempt to remove the only cursor.
	ErrLastCursor = errors.New("cannot remove last cursor")
)

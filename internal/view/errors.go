package view

import "errors"

// Errors returned by view operations.
var (
	// ErrInvariant indicates a multi-cursor edit produced a primitive the
	// buffer rejected. The edit is rolled back before it is returned.
	ErrInvariant = errors.New("multi-cursor invariant violated")

	// ErrClosed indicates an operation on a disposed view.
	ErrClosed = errors.New("view is closed")
)

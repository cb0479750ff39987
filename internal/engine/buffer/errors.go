package buffer

import "errors"

// Errors returned by buffer operations.
var (
	// ErrOutOfBounds indicates a position or line outside the buffer.
	ErrOutOfBounds = errors.New("position out of bounds")

	// ErrInvalidRange indicates a range whose start is after its end.
	ErrInvalidRange = errors.New("invalid range")

	// ErrEditMismatch indicates a replayed deletion whose recorded text
	// differs from the buffer content.
	ErrEditMismatch = errors.New("edit does not match buffer content")
)

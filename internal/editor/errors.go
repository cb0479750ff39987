package editor

import "errors"

// Errors returned by editor operations.
var (
	// ErrUnknownBuffer indicates a buffer ID not present in the registry.
	ErrUnknownBuffer = errors.New("unknown buffer")
)

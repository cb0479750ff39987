package script

import "errors"

// Errors for script execution.
var (
	// ErrStateClosed is returned when running code on a closed engine.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrTimeout is returned when a script runs past its time limit.
	ErrTimeout = errors.New("lua execution timeout")
)

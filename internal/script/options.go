package script

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// DefaultTimeout bounds a single run unless WithTimeout says otherwise.
const DefaultTimeout = 5 * time.Second

// Option configures an Engine.
type Option func(*Engine)

// WithTimeout sets the time limit of a single run. 0 disables it.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) {
		e.timeout = d
	}
}

// WithOutput sets where print writes. The default discards output.
func WithOutput(w io.Writer) Option {
	return func(e *Engine) {
		e.out = w
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

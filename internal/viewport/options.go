package viewport

import (
	"github.com/rs/zerolog"

	"github.com/dshills/paneedit/internal/engine/buffer"
)

// Releaser is told when no pane shows a buffer anymore.
type Releaser interface {
	Release(buf *buffer.Buffer)
}

// ReleaserFunc adapts a function to the Releaser interface.
type ReleaserFunc func(buf *buffer.Buffer)

// Release calls f(buf).
func (f ReleaserFunc) Release(buf *buffer.Buffer) {
	f(buf)
}

// Option configures a Tree during creation.
type Option func(*Tree)

// WithReleaser sets who is told about buffers no pane shows anymore.
func WithReleaser(r Releaser) Option {
	return func(t *Tree) {
		t.releaser = r
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger zerolog.Logger) Option {
	return func(t *Tree) {
		t.logger = logger
	}
}

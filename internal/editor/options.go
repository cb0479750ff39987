package editor

import (
	"github.com/rs/zerolog"

	"github.com/dshills/paneedit/internal/engine/search"
	"github.com/dshills/paneedit/internal/view"
)

// ScratchName is the name of the buffer an editor starts with.
const ScratchName = "Untitled"

// Option configures an Editor during creation.
type Option func(*Editor)

// WithLogger sets the logger. Buffers, views and the pane tree get
// sub-loggers tagged with their component.
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Editor) {
		e.logger = logger
	}
}

// WithHistoryLimit caps the undo history of every buffer the editor
// opens. 0 keeps every group.
func WithHistoryLimit(limit int) Option {
	return func(e *Editor) {
		e.historyLimit = limit
	}
}

// WithScrollMargin sets the scroll margin of every view.
func WithScrollMargin(lines int) Option {
	return func(e *Editor) {
		e.viewOpts = append(e.viewOpts, view.WithScrollMargin(lines))
	}
}

// WithSearchOptions sets the default search options of every view.
func WithSearchOptions(opts search.Options) Option {
	return func(e *Editor) {
		e.viewOpts = append(e.viewOpts, view.WithSearchOptions(opts))
	}
}

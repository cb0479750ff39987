package view

import (
	"github.com/rs/zerolog"

	"github.com/dshills/paneedit/internal/engine/search"
)

// Default configuration values.
const (
	DefaultScrollMargin = 0
)

// Option configures a View during creation.
type Option func(*View)

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger zerolog.Logger) Option {
	return func(v *View) {
		v.logger = logger
	}
}

// WithScrollMargin sets how many lines EnsureVisible keeps between the
// primary cursor and the window edge.
func WithScrollMargin(lines int) Option {
	return func(v *View) {
		if lines >= 0 {
			v.scrollMargin = lines
		}
	}
}

// WithSearchOptions sets the options used by Find when none are given.
func WithSearchOptions(opts search.Options) Option {
	return func(v *View) {
		v.searchDefaults = opts
	}
}

package buffer

import "github.com/rs/zerolog"

// Option is a functional option for configuring a Buffer.
type Option func(*Buffer)

// WithName sets the buffer's display name, usually a file path.
func WithName(name string) Option {
	return func(b *Buffer) {
		b.name = name
	}
}

// WithLineEnding sets the line ending re-emitted by Export.
func WithLineEnding(le LineEnding) Option {
	return func(b *Buffer) {
		b.lineEnding = le
	}
}

// WithHistoryLimit caps the undo stack. 0 keeps every group.
func WithHistoryLimit(limit int) Option {
	return func(b *Buffer) {
		b.historyLimit = limit
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger zerolog.Logger) Option {
	return func(b *Buffer) {
		b.logger = logger
	}
}

// DetectLineEnding returns a LineEnding based on the most common line ending in the text.
// Returns LineEndingLF if no line endings are found.
func DetectLineEnding(text string) LineEnding {
	var lfCount, crlfCount, crCount int

	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				crlfCount++
				i++
			} else {
				crCount++
			}
		case '\n':
			lfCount++
		}
	}

	switch {
	case crlfCount > 0 && crlfCount >= lfCount && crlfCount >= crCount:
		return LineEndingCRLF
	case crCount > 0 && crCount >= lfCount:
		return LineEndingCR
	default:
		return LineEndingLF
	}
}

// Package highlight tokenises buffer lines for syntax colouring.
//
// A Highlighter observes one buffer and caches the spans of each line
// until an edit touches that line or a line above it. Lines are
// tokenised on their own, so constructs spanning lines (block comments,
// multi-line strings) are coloured per line only.
//
// Lexers come from chroma and are chosen by buffer name:
//
//	h := highlight.New(buf)
//	defer h.Close()
//	for _, span := range h.Spans(0) {
//	    // span.Type is a chroma.TokenType
//	}
package highlight

package view

import "github.com/dshills/paneedit/internal/engine/buffer"

// Scroll returns the top-left position of the visible window.
func (v *View) Scroll() buffer.Position {
	return v.scroll
}

// SetScroll sets the top-left position of the visible window. The line
// is clamped to the buffer; the column is a horizontal offset and may
// exceed the line length.
func (v *View) SetScroll(pos buffer.Position) {
	pos.Line = max(0, min(pos.Line, v.buf.LineCount()-1))
	pos.Col = max(0, pos.Col)
	v.scroll = pos
}

// EnsureVisible scrolls so the primary head lies inside a window of
// height lines and width columns, keeping the configured margin.
func (v *View) EnsureVisible(height, width int) {
	if height <= 0 || width <= 0 {
		return
	}

	head := v.sel.Primary().Head
	margin := min(v.scrollMargin, (height-1)/2)

	switch {
	case head.Line < v.scroll.Line+margin:
		v.scroll.Line = max(0, head.Line-margin)
	case head.Line > v.scroll.Line+height-1-margin:
		v.scroll.Line = head.Line - height + 1 + margin
	}
	v.scroll.Line = max(0, min(v.scroll.Line, v.buf.LineCount()-1))

	switch {
	case head.Col < v.scroll.Col:
		v.scroll.Col = head.Col
	case head.Col >= v.scroll.Col+width:
		v.scroll.Col = head.Col - width + 1
	}
}

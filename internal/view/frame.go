package view

import "github.com/dshills/paneedit/internal/engine/buffer"

// Frame is what a renderer needs to draw a view.
type Frame struct {
	Name     string
	Modified bool
	Scroll   buffer.Position

	// Lines are the visible lines, top to bottom.
	Lines []Line

	// Selections and Heads intersect the visible lines, in buffer order.
	Selections []buffer.Range
	Heads      []buffer.Position
	Primary    buffer.Position

	// Matches are the search matches on the visible lines.
	Matches []buffer.Range
}

// Line is one visible buffer line.
type Line struct {
	Number int
	Text   string
}

// Snapshot captures the visible part of the view for a window of the
// given height.
func (v *View) Snapshot(height int) Frame {
	f := Frame{
		Name:     v.buf.Name(),
		Modified: v.buf.Modified(),
		Scroll:   v.scroll,
		Primary:  v.sel.Primary().Head,
	}

	first := v.scroll.Line
	last := min(v.buf.LineCount(), first+max(height, 0)) - 1
	for i := first; i <= last; i++ {
		text, _ := v.buf.Line(i)
		f.Lines = append(f.Lines, Line{Number: i, Text: text})
	}

	visible := func(r buffer.Range) bool {
		return r.End.Line >= first && r.Start.Line <= last
	}

	for _, c := range v.sel.Sorted() {
		if r := c.Range(); visible(r) {
			f.Selections = append(f.Selections, r)
		}
		if c.Head.Line >= first && c.Head.Line <= last {
			f.Heads = append(f.Heads, c.Head)
		}
	}

	for _, m := range v.Matches() {
		if visible(m) {
			f.Matches = append(f.Matches, m)
		}
	}

	return f
}

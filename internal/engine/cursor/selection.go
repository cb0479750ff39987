package cursor

import (
	"fmt"

	"github.com/dshills/paneedit/internal/engine/buffer"
)

// Position is an alias for buffer.Position for convenience.
type Position = buffer.Position

// Range is an alias for buffer.Range for convenience.
type Range = buffer.Range

// Selection represents a selected region of text.
// Anchor is where the selection started and Head is where the cursor is.
// When Anchor == Head the selection is a caret with no extent.
type Selection struct {
	Anchor Position
	Head   Position
}

// NewSelection creates a selection from anchor to head.
func NewSelection(anchor, head Position) Selection {
	return Selection{Anchor: anchor, Head: head}
}

// NewCursorSelection creates a caret at pos.
func NewCursorSelection(pos Position) Selection {
	return Selection{Anchor: pos, Head: pos}
}

// IsEmpty returns true if the selection is a caret.
func (s Selection) IsEmpty() bool {
	return s.Anchor == s.Head
}

// Range returns the normalized range (Start <= End).
func (s Selection) Range() Range {
	return buffer.NewRange(s.Anchor, s.Head)
}

// Start returns the earlier of anchor and head.
func (s Selection) Start() Position {
	return buffer.MinPos(s.Anchor, s.Head)
}

// End returns the later of anchor and head.
func (s Selection) End() Position {
	return buffer.MaxPos(s.Anchor, s.Head)
}

// IsForward returns true if head is at or after anchor.
func (s Selection) IsForward() bool {
	return !s.Head.Before(s.Anchor)
}

// IsBackward returns true if head is before anchor.
func (s Selection) IsBackward() bool {
	return s.Head.Before(s.Anchor)
}

// Extend moves the head to pos, keeping the anchor.
func (s Selection) Extend(pos Position) Selection {
	return Selection{Anchor: s.Anchor, Head: pos}
}

// MoveTo collapses the selection to a caret at pos.
func (s Selection) MoveTo(pos Position) Selection {
	return NewCursorSelection(pos)
}

// Collapse returns a caret at the head.
func (s Selection) Collapse() Selection {
	return NewCursorSelection(s.Head)
}

// CollapseToStart returns a caret at the start.
func (s Selection) CollapseToStart() Selection {
	return NewCursorSelection(s.Start())
}

// CollapseToEnd returns a caret at the end.
func (s Selection) CollapseToEnd() Selection {
	return NewCursorSelection(s.End())
}

// Flip swaps anchor and head.
func (s Selection) Flip() Selection {
	return Selection{Anchor: s.Head, Head: s.Anchor}
}

// Contains returns true if pos is inside [Start, End).
func (s Selection) Contains(pos Position) bool {
	return s.Range().Contains(pos)
}

// Touches returns true if the selections overlap or are adjacent.
func (s Selection) Touches(other Selection) bool {
	return s.Range().Touches(other.Range())
}

// Merge returns the union of two selections, keeping the direction of s.
// A caret counts as forward.
func (s Selection) Merge(other Selection) Selection {
	r := s.Range().Union(other.Range())
	if s.IsBackward() {
		return Selection{Anchor: r.End, Head: r.Start}
	}
	return Selection{Anchor: r.Start, Head: r.End}
}

// String returns a human-readable representation of the selection.
func (s Selection) String() string {
	if s.IsEmpty() {
		return fmt.Sprintf("Cursor%s", s.Head)
	}
	return fmt.Sprintf("Selection{%s -> %s}", s.Anchor, s.Head)
}

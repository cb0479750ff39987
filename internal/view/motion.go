package view

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"

	"github.com/dshills/paneedit/internal/engine/buffer"
	"github.com/dshills/paneedit/internal/engine/cursor"
)

// lineLen returns the rune length of line, or 0 for a bad index.
func lineLen(buf *buffer.Buffer, line int) int {
	n, err := buf.LineLen(line)
	if err != nil {
		return 0
	}
	return n
}

// prevPos returns the position one character before p, crossing to the
// end of the previous line at column 0.
func prevPos(buf *buffer.Buffer, p buffer.Position) buffer.Position {
	if p.Col > 0 {
		return buffer.Pos(p.Line, p.Col-1)
	}
	if p.Line > 0 {
		return buffer.Pos(p.Line-1, lineLen(buf, p.Line-1))
	}
	return p
}

// nextPos returns the position one character after p, crossing to the
// start of the next line at the end of a line.
func nextPos(buf *buffer.Buffer, p buffer.Position) buffer.Position {
	if p.Col < lineLen(buf, p.Line) {
		return buffer.Pos(p.Line, p.Col+1)
	}
	if p.Line < buf.LineCount()-1 {
		return buffer.Pos(p.Line+1, 0)
	}
	return p
}

// move applies to every cursor a motion computed from its head.
// With extend the anchor stays put; otherwise each cursor becomes a caret.
func (v *View) move(extend bool, motion func(buf *buffer.Buffer, head buffer.Position) buffer.Position) {
	v.sel.Transform(func(c cursor.Cursor) cursor.Selection {
		head := motion(v.buf, c.Head)
		if extend {
			return c.Extend(head)
		}
		return c.MoveTo(head)
	})
	v.goals = nil
}

// MoveLeft moves every cursor one character left. Without extend a
// selection collapses to its start instead.
func (v *View) MoveLeft(extend bool) {
	v.sel.Transform(func(c cursor.Cursor) cursor.Selection {
		switch {
		case extend:
			return c.Extend(prevPos(v.buf, c.Head))
		case !c.IsCaret():
			return c.CollapseToStart()
		default:
			return c.MoveTo(prevPos(v.buf, c.Head))
		}
	})
	v.goals = nil
}

// MoveRight moves every cursor one character right. Without extend a
// selection collapses to its end instead.
func (v *View) MoveRight(extend bool) {
	v.sel.Transform(func(c cursor.Cursor) cursor.Selection {
		switch {
		case extend:
			return c.Extend(nextPos(v.buf, c.Head))
		case !c.IsCaret():
			return c.CollapseToEnd()
		default:
			return c.MoveTo(nextPos(v.buf, c.Head))
		}
	})
	v.goals = nil
}

// MoveUp moves every cursor one line up, keeping its preferred column.
func (v *View) MoveUp(extend bool) {
	v.moveVertical(-1, extend)
}

// MoveDown moves every cursor one line down, keeping its preferred column.
func (v *View) MoveDown(extend bool) {
	v.moveVertical(1, extend)
}

func (v *View) moveVertical(delta int, extend bool) {
	goals := make(map[cursor.ID]int, v.sel.Count())

	v.sel.Transform(func(c cursor.Cursor) cursor.Selection {
		goal, ok := v.goals[c.ID]
		if !ok {
			goal = c.Head.Col
		}
		goals[c.ID] = goal

		head := v.verticalTarget(c.Head, delta, goal)
		if extend {
			return c.Extend(head)
		}
		return c.MoveTo(head)
	})

	v.goals = goals
}

// verticalTarget returns the position delta lines from p at the goal
// column. Moving past the first or last line goes to its start or end.
func (v *View) verticalTarget(p buffer.Position, delta, goal int) buffer.Position {
	line := p.Line + delta
	switch {
	case line < 0:
		return buffer.Position{}
	case line >= v.buf.LineCount():
		return v.buf.End()
	}
	return buffer.Pos(line, min(goal, lineLen(v.buf, line)))
}

// MoveLineStart moves every cursor to the first non-blank character of
// its line, or to column 0 if it is already there.
func (v *View) MoveLineStart(extend bool) {
	v.move(extend, func(buf *buffer.Buffer, head buffer.Position) buffer.Position {
		text, _ := buf.Line(head.Line)
		indent := 0
		for _, r := range text {
			if !unicode.IsSpace(r) {
				break
			}
			indent++
		}
		if head.Col == indent {
			indent = 0
		}
		return buffer.Pos(head.Line, indent)
	})
}

// MoveLineEnd moves every cursor to the end of its line.
func (v *View) MoveLineEnd(extend bool) {
	v.move(extend, func(buf *buffer.Buffer, head buffer.Position) buffer.Position {
		return buffer.Pos(head.Line, lineLen(buf, head.Line))
	})
}

// MoveDocStart moves every cursor to the start of the buffer.
func (v *View) MoveDocStart(extend bool) {
	v.move(extend, func(*buffer.Buffer, buffer.Position) buffer.Position {
		return buffer.Position{}
	})
}

// MoveDocEnd moves every cursor to the end of the buffer.
func (v *View) MoveDocEnd(extend bool) {
	v.move(extend, func(buf *buffer.Buffer, _ buffer.Position) buffer.Position {
		return buf.End()
	})
}

// MoveWordLeft moves every cursor to the start of the previous word.
func (v *View) MoveWordLeft(extend bool) {
	v.move(extend, wordLeft)
}

// MoveWordRight moves every cursor to the end of the next word.
func (v *View) MoveWordRight(extend bool) {
	v.move(extend, wordRight)
}

// segment is a word-boundary segment of a line in rune columns.
type segment struct {
	start, end int
	word       bool
}

// segments splits a line at Unicode word boundaries.
func segments(line string) []segment {
	var segs []segment
	col := 0
	state := -1
	for len(line) > 0 {
		var w string
		w, line, state = uniseg.FirstWordInString(line, state)
		n := utf8.RuneCountInString(w)
		segs = append(segs, segment{start: col, end: col + n, word: isWord(w)})
		col += n
	}
	return segs
}

func isWord(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			return true
		}
	}
	return false
}

func wordRight(buf *buffer.Buffer, p buffer.Position) buffer.Position {
	text, _ := buf.Line(p.Line)
	for _, s := range segments(text) {
		if s.word && s.end > p.Col {
			return buffer.Pos(p.Line, s.end)
		}
	}
	if n := lineLen(buf, p.Line); p.Col < n {
		return buffer.Pos(p.Line, n)
	}
	return nextPos(buf, p)
}

func wordLeft(buf *buffer.Buffer, p buffer.Position) buffer.Position {
	text, _ := buf.Line(p.Line)
	segs := segments(text)
	for i := len(segs) - 1; i >= 0; i-- {
		if segs[i].word && segs[i].start < p.Col {
			return buffer.Pos(p.Line, segs[i].start)
		}
	}
	if p.Col > 0 {
		return buffer.Pos(p.Line, 0)
	}
	return prevPos(buf, p)
}

// AddCursorAt adds a caret at pos and makes it primary.
func (v *View) AddCursorAt(pos buffer.Position) error {
	if !v.buf.Valid(pos) {
		return fmt.Errorf("add cursor %s: %w", pos, buffer.ErrOutOfBounds)
	}
	v.sel.AddCursor(pos)
	return nil
}

// AddCursorBelow adds a caret one line below the primary cursor's head.
// It reports false on the last line.
func (v *View) AddCursorBelow() bool {
	return v.addCursorVertical(1)
}

// AddCursorAbove adds a caret one line above the primary cursor's head.
// It reports false on the first line.
func (v *View) AddCursorAbove() bool {
	return v.addCursorVertical(-1)
}

func (v *View) addCursorVertical(delta int) bool {
	primary := v.sel.Primary()
	line := primary.Head.Line + delta
	if line < 0 || line >= v.buf.LineCount() {
		return false
	}

	goal, ok := v.goals[primary.ID]
	if !ok {
		goal = primary.Head.Col
	}

	id := v.sel.AddCursor(buffer.Pos(line, min(goal, lineLen(v.buf, line))))
	if v.goals == nil {
		v.goals = map[cursor.ID]int{}
	}
	v.goals[id] = goal
	return true
}

// CollapseSelections turns every selection into a caret at its head.
func (v *View) CollapseSelections() {
	v.sel.CollapseAllToHead()
}

// SwapAnchorHead flips the direction of every selection.
func (v *View) SwapAnchorHead() {
	v.sel.SwapAll()
}

// ClearSecondary removes every cursor but the primary.
func (v *View) ClearSecondary() {
	v.sel.RemoveSecondary()
}

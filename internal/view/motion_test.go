package view

import (
	"errors"
	"testing"

	"github.com/dshills/paneedit/internal/engine/buffer"
)

func TestMoveLeftRight(t *testing.T) {
	buf := buffer.NewBufferFromString("ab\ncd")
	v := New(buf)

	v.Cursors().Reset(p(1, 0))
	v.MoveLeft(false)
	if got := v.Cursors().Primary().Head; got != p(0, 2) {
		t.Errorf("left at column 0 should wrap to previous line end, got %s", got)
	}

	v.MoveRight(false)
	if got := v.Cursors().Primary().Head; got != p(1, 0) {
		t.Errorf("right at line end should wrap to next line, got %s", got)
	}

	v.MoveDocStart(false)
	v.MoveLeft(false)
	if got := v.Cursors().Primary().Head; got != p(0, 0) {
		t.Errorf("left at buffer start should stay, got %s", got)
	}

	v.MoveDocEnd(false)
	v.MoveRight(false)
	if got := v.Cursors().Primary().Head; got != p(1, 2) {
		t.Errorf("right at buffer end should stay, got %s", got)
	}
}

func TestMoveExtendAndCollapse(t *testing.T) {
	v := New(buffer.NewBufferFromString("abcdef"))
	v.Cursors().Reset(p(0, 2))

	v.MoveRight(true)
	v.MoveRight(true)
	c := v.Cursors().Primary()
	if c.Anchor != p(0, 2) || c.Head != p(0, 4) {
		t.Errorf("extend should keep anchor, got %s", c)
	}

	v.MoveLeft(false)
	if got := v.Cursors().Primary(); !got.IsCaret() || got.Head != p(0, 2) {
		t.Errorf("left without extend should collapse to start, got %s", got)
	}
}

func TestVerticalMotionKeepsGoalColumn(t *testing.T) {
	v := New(buffer.NewBufferFromString("long line\nab\nanother line"))
	v.Cursors().Reset(p(0, 7))

	v.MoveDown(false)
	if got := v.Cursors().Primary().Head; got != p(1, 2) {
		t.Errorf("short line should clamp column, got %s", got)
	}

	v.MoveDown(false)
	if got := v.Cursors().Primary().Head; got != p(2, 7) {
		t.Errorf("goal column should be restored, got %s", got)
	}

	v.MoveDown(false)
	if got := v.Cursors().Primary().Head; got != p(2, 12) {
		t.Errorf("down on last line should go to end, got %s", got)
	}

	v.MoveDocStart(false)
	v.MoveUp(false)
	if got := v.Cursors().Primary().Head; got != p(0, 0) {
		t.Errorf("up on first line should go to start, got %s", got)
	}
}

func TestMultiCursorMotionMergesWhereTheyMeet(t *testing.T) {
	v := New(buffer.NewBufferFromString("a\nb\nc"))
	v.Cursors().Reset(p(0, 0), p(1, 0), p(2, 0))

	v.MoveDown(false)
	if v.Cursors().Count() != 3 {
		t.Errorf("cursors moving together should not merge early, got %d", v.Cursors().Count())
	}

	v.MoveDocEnd(false)
	if v.Cursors().Count() != 1 {
		t.Errorf("cursors meeting at the end should merge, got %d", v.Cursors().Count())
	}
}

func TestLineStartEnd(t *testing.T) {
	v := New(buffer.NewBufferFromString("    indented"))
	v.Cursors().Reset(p(0, 8))

	v.MoveLineStart(false)
	if got := v.Cursors().Primary().Head; got != p(0, 4) {
		t.Errorf("first press should go to indentation, got %s", got)
	}

	v.MoveLineStart(false)
	if got := v.Cursors().Primary().Head; got != p(0, 0) {
		t.Errorf("second press should go to column 0, got %s", got)
	}

	v.MoveLineEnd(true)
	c := v.Cursors().Primary()
	if c.Head != p(0, 12) || c.Anchor != p(0, 0) {
		t.Errorf("extend to line end, got %s", c)
	}
}

func TestWordMotion(t *testing.T) {
	v := New(buffer.NewBufferFromString("hello, wide world\nnext"))
	v.Cursors().Reset(p(0, 0))

	stops := []buffer.Position{p(0, 5), p(0, 11), p(0, 17), p(1, 0), p(1, 4)}
	for _, want := range stops {
		v.MoveWordRight(false)
		if got := v.Cursors().Primary().Head; got != want {
			t.Fatalf("word right: got %s, want %s", got, want)
		}
	}

	back := []buffer.Position{p(1, 0), p(0, 17), p(0, 12), p(0, 7), p(0, 0)}
	for _, want := range back {
		v.MoveWordLeft(false)
		if got := v.Cursors().Primary().Head; got != want {
			t.Fatalf("word left: got %s, want %s", got, want)
		}
	}
}

func TestAddCursorBelowAbove(t *testing.T) {
	v := New(buffer.NewBufferFromString("abcdef\nab\nabcdef"))
	v.Cursors().Reset(p(0, 4))

	if !v.AddCursorBelow() || !v.AddCursorBelow() {
		t.Fatal("expected cursors to be added")
	}
	if v.AddCursorBelow() {
		t.Error("no line below the last")
	}

	if !equalPositions(heads(v), []buffer.Position{p(0, 4), p(1, 2), p(2, 4)}) {
		t.Errorf("goal column should carry through short lines, got %v", heads(v))
	}

	v.ClearSecondary()
	if v.Cursors().Count() != 1 || v.Cursors().Primary().Head != p(2, 4) {
		t.Errorf("only the newest cursor should remain, got %v", heads(v))
	}

	if !v.AddCursorAbove() {
		t.Fatal("expected cursor above")
	}
	if v.Cursors().Primary().Head != p(1, 2) {
		t.Errorf("unexpected primary %s", v.Cursors().Primary().Head)
	}
}

func TestAddCursorAt(t *testing.T) {
	v := New(buffer.NewBufferFromString("abc"))
	if err := v.AddCursorAt(p(0, 2)); err != nil {
		t.Fatal(err)
	}
	if v.Cursors().Count() != 2 {
		t.Errorf("expected 2 cursors, got %d", v.Cursors().Count())
	}
	if err := v.AddCursorAt(p(3, 0)); !errors.Is(err, buffer.ErrOutOfBounds) {
		t.Errorf("expected ErrOutOfBounds, got %v", err)
	}
}

func TestCollapseAndSwap(t *testing.T) {
	v := New(buffer.NewBufferFromString("abcdef"))
	v.Cursors().Reset(p(0, 1))
	v.MoveRight(true)
	v.MoveRight(true)

	v.SwapAnchorHead()
	if c := v.Cursors().Primary(); c.Head != p(0, 1) || c.Anchor != p(0, 3) {
		t.Errorf("swap should flip, got %s", c)
	}

	v.CollapseSelections()
	if c := v.Cursors().Primary(); !c.IsCaret() || c.Head != p(0, 1) {
		t.Errorf("collapse should go to head, got %s", c)
	}
}

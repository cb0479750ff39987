package view

import (
	"fmt"
	"strings"
	"testing"

	"github.com/dshills/paneedit/internal/engine/buffer"
)

func numberedBuffer(n int) *buffer.Buffer {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i)
	}
	return buffer.NewBufferFromString(strings.Join(lines, "\n"))
}

func TestEnsureVisible(t *testing.T) {
	v := New(numberedBuffer(100))

	v.Cursors().Reset(p(50, 0))
	v.EnsureVisible(10, 80)
	if got := v.Scroll().Line; got != 41 {
		t.Errorf("scrolling down should put the head on the last row, got top %d", got)
	}

	v.Cursors().Reset(p(5, 0))
	v.EnsureVisible(10, 80)
	if got := v.Scroll().Line; got != 5 {
		t.Errorf("scrolling up should put the head on the first row, got top %d", got)
	}

	v.Cursors().Reset(p(7, 0))
	v.EnsureVisible(10, 80)
	if got := v.Scroll().Line; got != 5 {
		t.Errorf("visible head should not scroll, got top %d", got)
	}
}

func TestEnsureVisibleMargin(t *testing.T) {
	v := New(numberedBuffer(100), WithScrollMargin(2))

	v.Cursors().Reset(p(20, 0))
	v.EnsureVisible(10, 80)
	if got := v.Scroll().Line; got != 13 {
		t.Errorf("expected margin of 2 below head, got top %d", got)
	}

	v.Cursors().Reset(p(14, 0))
	v.EnsureVisible(10, 80)
	if got := v.Scroll().Line; got != 12 {
		t.Errorf("expected margin of 2 above head, got top %d", got)
	}
}

func TestEnsureVisibleHorizontal(t *testing.T) {
	v := New(buffer.NewBufferFromString(strings.Repeat("x", 200)))

	v.Cursors().Reset(p(0, 150))
	v.EnsureVisible(10, 80)
	if got := v.Scroll().Col; got != 71 {
		t.Errorf("expected horizontal scroll 71, got %d", got)
	}

	v.Cursors().Reset(p(0, 10))
	v.EnsureVisible(10, 80)
	if got := v.Scroll().Col; got != 10 {
		t.Errorf("expected horizontal scroll 10, got %d", got)
	}
}

func TestScrollFollowsLineEdits(t *testing.T) {
	buf := numberedBuffer(20)
	v := New(buf)
	v.SetScroll(p(10, 0))

	other := New(buf)
	other.Cursors().Reset(p(0, 0))
	other.InsertText("a\nb\n")

	if got := v.Scroll().Line; got != 12 {
		t.Errorf("scroll should keep showing the same text, got top %d", got)
	}

	v.SetScroll(p(500, -3))
	if got := v.Scroll(); got != p(21, 0) {
		t.Errorf("SetScroll should clamp, got %s", got)
	}
}

func TestSnapshot(t *testing.T) {
	buf := numberedBuffer(10)
	buf.SetName("numbers.txt")
	v := New(buf)
	v.SetScroll(p(2, 0))
	v.Cursors().Reset(p(0, 0), p(3, 1), p(4, 2))
	v.Find("line")

	f := v.Snapshot(3)
	if f.Name != "numbers.txt" {
		t.Errorf("unexpected name %q", f.Name)
	}
	if len(f.Lines) != 3 || f.Lines[0].Number != 2 || f.Lines[2].Text != "line 4" {
		t.Errorf("unexpected lines %+v", f.Lines)
	}
	if len(f.Heads) != 2 {
		t.Errorf("only visible heads should be included, got %v", f.Heads)
	}
	if f.Primary != p(4, 2) {
		t.Errorf("unexpected primary %s", f.Primary)
	}
	if len(f.Matches) != 3 {
		t.Errorf("expected 3 visible matches, got %d", len(f.Matches))
	}

	tail := v.Snapshot(0)
	if len(tail.Lines) != 0 {
		t.Errorf("zero height should show nothing, got %d lines", len(tail.Lines))
	}
}

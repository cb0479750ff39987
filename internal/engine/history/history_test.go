package history

import (
	"errors"
	"strings"
	"testing"
)

// appendEdit appends or trims a suffix of a string document.
type appendEdit struct {
	text   string
	remove bool
}

func (e appendEdit) Invert() appendEdit {
	return appendEdit{text: e.text, remove: !e.remove}
}

func (e appendEdit) apply(doc string) string {
	if e.remove {
		return strings.TrimSuffix(doc, e.text)
	}
	return doc + e.text
}

func applyAll(doc string, edits []appendEdit) string {
	for _, e := range edits {
		doc = e.apply(doc)
	}
	return doc
}

func typed(s string) Group[appendEdit] {
	var edits []appendEdit
	for _, r := range s {
		edits = append(edits, appendEdit{text: string(r)})
	}
	return NewGroup("type "+s, edits...)
}

func TestNewHistory(t *testing.T) {
	h := New[appendEdit](0)
	if h.CanUndo() || h.CanRedo() {
		t.Error("new history should be empty")
	}
	if h.Limit() != 0 {
		t.Errorf("expected unbounded limit, got %d", h.Limit())
	}

	if New[appendEdit](-5).Limit() != 0 {
		t.Error("negative limit should mean unbounded")
	}
}

func TestGroupInvert(t *testing.T) {
	g := typed("abc")
	doc := applyAll("", g.Edits)
	if doc != "abc" {
		t.Fatalf("expected abc, got %q", doc)
	}

	inv := g.Invert()
	if len(inv) != 3 {
		t.Fatalf("expected 3 inverse edits, got %d", len(inv))
	}
	if inv[0].text != "c" || !inv[0].remove {
		t.Errorf("first inverse edit should remove c, got %+v", inv[0])
	}
	if got := applyAll(doc, inv); got != "" {
		t.Errorf("inverse should restore empty doc, got %q", got)
	}
}

func TestGroupIsEmpty(t *testing.T) {
	if !NewGroup[appendEdit]("nothing").IsEmpty() {
		t.Error("group without edits should be empty")
	}
	if typed("a").IsEmpty() {
		t.Error("group with edits should not be empty")
	}
}

func TestUndoRedoRoundTrip(t *testing.T) {
	h := New[appendEdit](0)
	doc := ""

	for _, word := range []string{"hello", " ", "world"} {
		g := typed(word)
		doc = applyAll(doc, g.Edits)
		h.Commit(g)
	}

	g, ok := h.Undo()
	if !ok {
		t.Fatal("undo should succeed")
	}
	doc = applyAll(doc, g.Invert())
	if doc != "hello " {
		t.Errorf("after undo expected %q, got %q", "hello ", doc)
	}
	if h.UndoCount() != 2 || h.RedoCount() != 1 {
		t.Errorf("unexpected stack sizes undo=%d redo=%d", h.UndoCount(), h.RedoCount())
	}

	g, ok = h.Redo()
	if !ok {
		t.Fatal("redo should succeed")
	}
	doc = applyAll(doc, g.Edits)
	if doc != "hello world" {
		t.Errorf("after redo expected %q, got %q", "hello world", doc)
	}
	if h.UndoCount() != 3 || h.RedoCount() != 0 {
		t.Errorf("unexpected stack sizes undo=%d redo=%d", h.UndoCount(), h.RedoCount())
	}

	info, ok := h.PeekUndo()
	if !ok || info.Description != "type world" {
		t.Errorf("redo should restore group order, top is %q", info.Description)
	}
}

func TestEmptyHistoryIsNoOp(t *testing.T) {
	h := New[appendEdit](0)

	if _, ok := h.Undo(); ok {
		t.Error("undo on empty history should report false")
	}
	if _, ok := h.Redo(); ok {
		t.Error("redo on empty history should report false")
	}
	if _, ok := h.PeekUndo(); ok {
		t.Error("peek undo on empty history should report false")
	}
	if _, ok := h.PeekRedo(); ok {
		t.Error("peek redo on empty history should report false")
	}
}

func TestCommitClearsRedo(t *testing.T) {
	h := New[appendEdit](0)
	h.Commit(typed("a"))
	h.Commit(typed("b"))

	h.Undo()
	if !h.CanRedo() {
		t.Fatal("redo should be available after undo")
	}

	h.Commit(typed("c"))
	if h.CanRedo() {
		t.Error("commit should discard the redo branch")
	}
	if h.UndoCount() != 2 {
		t.Errorf("expected 2 undo groups, got %d", h.UndoCount())
	}
}

func TestCommitIgnoresEmptyGroup(t *testing.T) {
	h := New[appendEdit](0)
	h.Commit(typed("a"))
	h.Undo()

	h.Commit(NewGroup[appendEdit]("empty"))
	if h.UndoCount() != 0 {
		t.Error("empty group should not be pushed")
	}
	if !h.CanRedo() {
		t.Error("empty group should not clear redo")
	}
}

func TestLimit(t *testing.T) {
	h := New[appendEdit](3)
	for _, s := range []string{"a", "b", "c", "d", "e"} {
		h.Commit(typed(s))
	}

	if h.UndoCount() != 3 {
		t.Fatalf("expected 3 groups, got %d", h.UndoCount())
	}

	infos := h.UndoInfo()
	if infos[0].Description != "type c" {
		t.Errorf("oldest groups should be dropped, oldest is %q", infos[0].Description)
	}

	h.SetLimit(1)
	if h.UndoCount() != 1 {
		t.Errorf("SetLimit should trim, got %d", h.UndoCount())
	}
	if info, _ := h.PeekUndo(); info.Description != "type e" {
		t.Errorf("newest group should survive, got %q", info.Description)
	}
}

func TestUnboundedKeepsEverything(t *testing.T) {
	h := New[appendEdit](0)
	for i := 0; i < 5000; i++ {
		h.Commit(typed("x"))
	}
	if h.UndoCount() != 5000 {
		t.Errorf("expected 5000 groups, got %d", h.UndoCount())
	}
}

func TestBeginEndGroup(t *testing.T) {
	h := New[appendEdit](0)

	h.BeginGroup("Reload")
	if !h.IsGrouping() {
		t.Fatal("should be grouping")
	}
	h.Commit(typed("ab"))
	h.Commit(typed("cd"))
	h.EndGroup()

	if h.IsGrouping() {
		t.Error("group should be closed")
	}
	if h.UndoCount() != 1 {
		t.Fatalf("expected 1 folded group, got %d", h.UndoCount())
	}

	g, _ := h.Undo()
	if g.Name != "Reload" || g.Len() != 4 {
		t.Errorf("unexpected folded group %q with %d edits", g.Name, g.Len())
	}
}

func TestNestedBeginGroupIgnored(t *testing.T) {
	h := New[appendEdit](0)
	h.BeginGroup("outer")
	h.BeginGroup("inner")
	h.Commit(typed("a"))
	h.EndGroup()

	info, ok := h.PeekUndo()
	if !ok || info.Description != "outer" {
		t.Errorf("outer group name should win, got %+v", info)
	}
}

func TestEndGroupWithoutEdits(t *testing.T) {
	h := New[appendEdit](0)
	h.BeginGroup("empty")
	h.EndGroup()
	if h.UndoCount() != 0 {
		t.Error("empty group should not be pushed")
	}
}

func TestCancelGroup(t *testing.T) {
	h := New[appendEdit](0)
	h.BeginGroup("cancelled")
	h.Commit(typed("a"))
	h.CancelGroup()

	if h.UndoCount() != 0 || h.IsGrouping() {
		t.Error("cancelled group should leave no trace")
	}
}

func TestUndoClosesOpenGroup(t *testing.T) {
	h := New[appendEdit](0)
	h.BeginGroup("open")
	h.Commit(typed("a"))

	g, ok := h.Undo()
	if !ok || g.Name != "open" {
		t.Errorf("undo should close and pop the open group, got %q ok=%v", g.Name, ok)
	}
}

func TestGroupScope(t *testing.T) {
	h := New[appendEdit](0)

	func() {
		defer h.GroupScope("scoped").End()
		h.Commit(typed("a"))
		h.Commit(typed("b"))
	}()

	if h.UndoCount() != 1 {
		t.Errorf("expected 1 group, got %d", h.UndoCount())
	}

	outer := h.GroupScope("outer")
	inner := h.GroupScope("inner")
	h.Commit(typed("c"))
	inner.End()
	if !h.IsGrouping() {
		t.Error("an inner scope must not close the outer group")
	}
	h.Commit(typed("d"))
	outer.End()
	outer.End()

	if h.UndoCount() != 2 {
		t.Fatalf("expected 2 groups, got %d", h.UndoCount())
	}
	if info, _ := h.PeekUndo(); info.Description != "outer" || info.Edits != 2 {
		t.Errorf("nested scope should fold into the outer group, got %+v", info)
	}
}

func TestTransaction(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name      string
		fn        func(h *History[appendEdit]) error
		wantErr   error
		wantCount int
		wantEdits int
	}{
		{
			name: "success",
			fn: func(h *History[appendEdit]) error {
				h.Commit(typed("a"))
				h.Commit(typed("b"))
				return nil
			},
			wantCount: 1,
			wantEdits: 2,
		},
		{
			name: "failure keeps applied edits undoable",
			fn: func(h *History[appendEdit]) error {
				h.Commit(typed("a"))
				return boom
			},
			wantErr:   boom,
			wantCount: 1,
			wantEdits: 1,
		},
		{
			name:    "failure before any edit",
			fn:      func(*History[appendEdit]) error { return boom },
			wantErr: boom,
		},
		{
			name: "nested transaction folds into outer",
			fn: func(h *History[appendEdit]) error {
				h.Commit(typed("a"))
				return h.Transaction("inner", func() error {
					h.Commit(typed("b"))
					return nil
				})
			},
			wantCount: 1,
			wantEdits: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := New[appendEdit](0)
			err := h.Transaction("tx", func() error { return tt.fn(h) })
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
			if h.IsGrouping() {
				t.Error("transaction left a group open")
			}
			if h.UndoCount() != tt.wantCount {
				t.Fatalf("undo count = %d, want %d", h.UndoCount(), tt.wantCount)
			}
			if tt.wantCount > 0 {
				info, _ := h.PeekUndo()
				if info.Description != "tx" || info.Edits != tt.wantEdits {
					t.Errorf("group = %+v, want tx with %d edits", info, tt.wantEdits)
				}
			}
		})
	}
}

func TestCheckpoint(t *testing.T) {
	h := New[appendEdit](0)
	h.Commit(typed("a"))
	cp := h.CreateCheckpoint()

	h.Commit(typed("b"))
	h.Commit(typed("c"))
	if n := h.UndoCountSince(cp); n != 2 {
		t.Errorf("expected 2 groups since checkpoint, got %d", n)
	}

	h.Undo()
	h.Undo()
	h.Undo()
	if n := h.UndoCountSince(cp); n != 0 {
		t.Errorf("expected 0 after unwinding past checkpoint, got %d", n)
	}
}

func TestCheckpointSurvivesLimit(t *testing.T) {
	tests := []struct {
		name   string
		limit  int
		before int
		after  int
		clear  bool
		want   int
	}{
		{"unbounded", 0, 3, 2, false, 2},
		{"oldest groups dropped below checkpoint", 3, 3, 2, false, 2},
		{"checkpoint itself dropped", 2, 1, 4, false, 2},
		{"cleared then committed", 0, 2, 0, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := New[appendEdit](tt.limit)
			for range tt.before {
				h.Commit(typed("x"))
			}
			cp := h.CreateCheckpoint()
			if tt.clear {
				h.Clear()
			}
			for range tt.after {
				h.Commit(typed("y"))
			}
			if n := h.UndoCountSince(cp); n != tt.want {
				t.Errorf("UndoCountSince = %d, want %d", n, tt.want)
			}
		})
	}
}

func TestClear(t *testing.T) {
	h := New[appendEdit](0)
	h.Commit(typed("a"))
	h.Commit(typed("b"))
	h.Undo()
	h.BeginGroup("g")

	h.Clear()
	if h.CanUndo() || h.CanRedo() || h.IsGrouping() {
		t.Error("clear should reset everything")
	}
}

func TestRedoInfo(t *testing.T) {
	h := New[appendEdit](0)
	h.Commit(typed("a"))
	h.Commit(typed("b"))
	h.Undo()
	h.Undo()

	infos := h.RedoInfo()
	if len(infos) != 2 {
		t.Fatalf("expected 2 redo entries, got %d", len(infos))
	}
	if info, _ := h.PeekRedo(); info.Description != "type a" {
		t.Errorf("next redo should be the oldest undone group, got %q", info.Description)
	}
	if infos[0].Edits != 1 {
		t.Errorf("expected 1 edit, got %d", infos[0].Edits)
	}
}

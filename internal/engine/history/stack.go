package history

// History manages the undo/redo stacks of one buffer.
// It is not safe for concurrent use; the editing core runs on one goroutine.
type History[E Edit[E]] struct {
	undoStack []Group[E]
	redoStack []Group[E]

	// Grouping state
	grouping  bool
	groupName string
	pending   []E

	// limit caps the undo stack; 0 means unbounded.
	limit int

	// dropped counts groups removed from the bottom of the undo stack by
	// the limit or Clear, so checkpoint depths stay absolute.
	dropped int
}

// New creates a history. A limit <= 0 keeps every group.
func New[E Edit[E]](limit int) *History[E] {
	if limit < 0 {
		limit = 0
	}
	return &History[E]{limit: limit}
}

// Commit pushes a group onto the undo stack and clears the redo stack.
// Empty groups are ignored. While a group is open the edits are folded
// into the pending group instead.
func (h *History[E]) Commit(g Group[E]) {
	if g.IsEmpty() {
		return
	}

	h.redoStack = nil

	if h.grouping {
		h.pending = append(h.pending, g.Edits...)
		return
	}

	h.push(g)
}

// push adds a group and enforces the limit.
func (h *History[E]) push(g Group[E]) {
	h.undoStack = append(h.undoStack, g)
	h.trim()
}

func (h *History[E]) trim() {
	if h.limit > 0 && len(h.undoStack) > h.limit {
		excess := len(h.undoStack) - h.limit
		h.undoStack = h.undoStack[excess:]
		h.dropped += excess
	}
}

// Undo pops the most recent group and moves it to the redo stack.
// The caller applies g.Invert() to the buffer. Returns false when there
// is nothing to undo. An open group is closed first.
func (h *History[E]) Undo() (Group[E], bool) {
	h.EndGroup()

	if len(h.undoStack) == 0 {
		return Group[E]{}, false
	}

	g := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.redoStack = append(h.redoStack, g)
	return g, true
}

// Redo pops the most recently undone group and moves it back to the undo
// stack. The caller re-applies g.Edits in order. Returns false when there
// is nothing to redo.
func (h *History[E]) Redo() (Group[E], bool) {
	if len(h.redoStack) == 0 {
		return Group[E]{}, false
	}

	g := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.push(g)
	return g, true
}

// CanUndo returns true if undo is available.
func (h *History[E]) CanUndo() bool {
	return len(h.undoStack) > 0 || len(h.pending) > 0
}

// CanRedo returns true if redo is available.
func (h *History[E]) CanRedo() bool {
	return len(h.redoStack) > 0
}

// UndoCount returns the number of groups that can be undone.
func (h *History[E]) UndoCount() int {
	return len(h.undoStack)
}

// RedoCount returns the number of groups that can be redone.
func (h *History[E]) RedoCount() int {
	return len(h.redoStack)
}

// BeginGroup starts folding commits into a single group.
// Nested calls are ignored; the outermost group wins.
func (h *History[E]) BeginGroup(name string) {
	if h.grouping {
		return
	}

	h.grouping = true
	h.groupName = name
	h.pending = nil
}

// EndGroup closes the open group and pushes it if it holds any edits.
func (h *History[E]) EndGroup() {
	if !h.grouping {
		return
	}

	h.grouping = false
	if len(h.pending) > 0 {
		h.push(NewGroup(h.groupName, h.pending...))
	}
	h.pending = nil
}

// CancelGroup drops the open group without recording it.
func (h *History[E]) CancelGroup() {
	h.grouping = false
	h.pending = nil
}

// IsGrouping returns true if a group is open.
func (h *History[E]) IsGrouping() bool {
	return h.grouping
}

// Clear removes all undo/redo history.
func (h *History[E]) Clear() {
	h.dropped += len(h.undoStack)
	h.undoStack = nil
	h.redoStack = nil
	h.grouping = false
	h.pending = nil
}

// UndoInfo returns info about the undo stack, oldest first.
func (h *History[E]) UndoInfo() []Info {
	result := make([]Info, len(h.undoStack))
	for i, g := range h.undoStack {
		result[i] = g.Info()
	}
	return result
}

// RedoInfo returns info about the redo stack, oldest first.
func (h *History[E]) RedoInfo() []Info {
	result := make([]Info, len(h.redoStack))
	for i, g := range h.redoStack {
		result[i] = g.Info()
	}
	return result
}

// PeekUndo returns info about the next undo group without removing it.
func (h *History[E]) PeekUndo() (Info, bool) {
	if len(h.undoStack) == 0 {
		return Info{}, false
	}
	return h.undoStack[len(h.undoStack)-1].Info(), true
}

// PeekRedo returns info about the next redo group without removing it.
func (h *History[E]) PeekRedo() (Info, bool) {
	if len(h.redoStack) == 0 {
		return Info{}, false
	}
	return h.redoStack[len(h.redoStack)-1].Info(), true
}

// SetLimit changes the maximum number of undo groups.
// If the current stack is larger, oldest groups are removed.
func (h *History[E]) SetLimit(limit int) {
	if limit < 0 {
		limit = 0
	}
	h.limit = limit
	h.trim()
}

// Limit returns the maximum number of undo groups (0 = unbounded).
func (h *History[E]) Limit() int {
	return h.limit
}

package history

import "time"

// Edit is a reversible primitive mutation.
type Edit[E any] interface {
	// Invert returns the edit that undoes this one.
	Invert() E
}

// Group is an ordered sequence of edits applied as one undo/redo unit.
type Group[E Edit[E]] struct {
	Name  string
	Edits []E
	Time  time.Time
}

// NewGroup creates a group stamped with the current time.
func NewGroup[E Edit[E]](name string, edits ...E) Group[E] {
	return Group[E]{
		Name:  name,
		Edits: edits,
		Time:  time.Now(),
	}
}

// IsEmpty returns true if the group holds no edits.
func (g Group[E]) IsEmpty() bool {
	return len(g.Edits) == 0
}

// Len returns the number of edits in the group.
func (g Group[E]) Len() int {
	return len(g.Edits)
}

// Invert returns the inverse edits in reverse order.
// Applying them in order restores the content the group started from.
func (g Group[E]) Invert() []E {
	result := make([]E, len(g.Edits))
	for i, e := range g.Edits {
		result[len(g.Edits)-1-i] = e.Invert()
	}
	return result
}

// Info returns display information about the group.
func (g Group[E]) Info() Info {
	return Info{
		Description: g.Name,
		Timestamp:   g.Time,
		Edits:       len(g.Edits),
	}
}

// Info provides read-only info about a group.
// Used for displaying undo/redo history to users.
type Info struct {
	Description string
	Timestamp   time.Time
	Edits       int
}

// GroupScope closes a group opened by History.GroupScope.
// Usage:
//
//	func reload(h *History[buffer.Edit]) {
//	    defer h.GroupScope("Reload").End()
//	    // ... multiple commits ...
//	}
type GroupScope[E Edit[E]] struct {
	history *History[E]
	owner   bool
}

// GroupScope opens a group unless one is already open, in which case the
// commits fold into the outer group and End does nothing.
func (h *History[E]) GroupScope(name string) *GroupScope[E] {
	owner := !h.grouping
	h.BeginGroup(name)
	return &GroupScope[E]{history: h, owner: owner}
}

// End closes the group if this scope opened it.
// Safe to call multiple times; only the first call has effect.
func (g *GroupScope[E]) End() {
	if g.owner {
		g.history.EndGroup()
		g.owner = false
	}
}

// Transaction runs fn within a grouped undo context. Whatever fn
// committed is recorded as one group even when fn fails, since those
// edits are already in the buffer; fn's error is returned.
func (h *History[E]) Transaction(name string, fn func() error) error {
	defer h.GroupScope(name).End()
	return fn()
}

// Checkpoint represents a point in history that can be returned to.
type Checkpoint struct {
	depth int
}

// CreateCheckpoint creates a checkpoint at the current history position.
func (h *History[E]) CreateCheckpoint() Checkpoint {
	return Checkpoint{depth: h.dropped + len(h.undoStack)}
}

// UndoCountSince returns how many groups must be undone to get back to cp.
// It is 0 if the history has already been unwound past the checkpoint,
// and never more than UndoCount when the limit dropped older groups.
func (h *History[E]) UndoCountSince(cp Checkpoint) int {
	n := h.dropped + len(h.undoStack) - cp.depth
	return max(min(n, len(h.undoStack)), 0)
}

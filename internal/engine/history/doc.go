// Package history provides undo/redo functionality for the editing core.
//
// History records value groups of reversible edits rather than executable
// commands. Applying an edit is the caller's job; History only keeps the
// two stacks in order:
//
//	h := history.New[buffer.Edit](0) // 0 means unbounded
//
//	h.Commit(history.Group[buffer.Edit]{Name: "Type 'x'", Edits: edits})
//
//	if g, ok := h.Undo(); ok {
//	    for _, e := range g.Invert() {
//	        // apply e
//	    }
//	}
//
// # Edit Groups
//
// A Group is the atomic undo unit. Every edit produced by one logical
// action, including one edit per cursor in a multi-cursor action, belongs
// to the same group so a single undo reverts all of them.
//
// # Command Grouping
//
// Several logical actions can be folded into one group:
//
//	h.BeginGroup("Reload")
//	// ... multiple commits ...
//	h.EndGroup()
//
// # Empty History
//
// Undo and Redo on an empty stack return false. An empty history is a
// normal state and never an error.
package history

// Package cursor provides multi-cursor selection management.
//
// The cursor package handles:
//
//   - Text selections with the anchor/head model via Selection
//   - Identified cursors with Cursor
//   - The per-view selection set with Set
//   - Position fix-up after buffer edits
//
// Selection Model:
//
// Selections use an anchor/head model where:
//   - Anchor: The position where the selection started
//   - Head: The current cursor position (where typing would occur)
//
// When Anchor == Head, the selection represents just a caret with no
// selected text. The selection can extend forward (head > anchor) or
// backward (head < anchor), preserving the user's selection direction.
//
// Multi-Cursor Support:
//
// Set manages cursors that are:
//   - Kept in creation order, with a primary cursor
//   - Merged whenever they overlap or touch
//   - Fixed up together after every buffer edit
//
// Basic usage:
//
//	set := cursor.NewSet(buffer.Pos(0, 0))
//	set.AddCursor(buffer.Pos(1, 0))
//
//	// After the buffer applies an edit
//	set.FixUp(edit)
//
// Thread Safety:
//
// Selection and Cursor are immutable value types. Set is not safe for
// concurrent use.
package cursor

package cursor

import "fmt"

// ID identifies a cursor within its Set. IDs increase with creation,
// so a smaller ID means an earlier cursor.
type ID uint64

// Cursor is a selection with a stable identity.
type Cursor struct {
	ID ID
	Selection
}

// IsCaret returns true if the cursor has no extent.
func (c Cursor) IsCaret() bool {
	return c.IsEmpty()
}

// String returns a human-readable representation of the cursor.
func (c Cursor) String() string {
	return fmt.Sprintf("#%d %s", c.ID, c.Selection)
}

package cursor

import (
	"cmp"
	"fmt"
	"slices"
)

// Set manages the cursors of one view.
//
// Cursors are kept in creation order and never overlap or touch; every
// operation that changes extents merges afterwards. A Set is never empty
// and always has a primary cursor, by default the most recently added.
type Set struct {
	cursors []Cursor
	primary ID
	nextID  ID
}

// NewSet creates a set with a single caret at pos.
func NewSet(pos Position) *Set {
	s := &Set{}
	s.Reset(pos)
	return s
}

// NewSetFromSelections creates a set from selections in creation order.
// The last selection becomes primary. An empty slice yields a caret at (0:0).
func NewSetFromSelections(sels ...Selection) *Set {
	s := &Set{}
	s.ResetSelections(sels...)
	return s
}

func (s *Set) add(sel Selection) ID {
	s.nextID++
	s.cursors = append(s.cursors, Cursor{ID: s.nextID, Selection: sel})
	s.primary = s.nextID
	return s.nextID
}

func (s *Set) index(id ID) int {
	return slices.IndexFunc(s.cursors, func(c Cursor) bool { return c.ID == id })
}

// AddCursor adds a caret at pos and makes it primary.
// It returns the ID of the cursor that holds pos after merging.
func (s *Set) AddCursor(pos Position) ID {
	return s.AddSelection(pos, pos)
}

// AddSelection adds a selection and makes it primary.
// It returns the ID of the cursor that holds the selection after merging.
func (s *Set) AddSelection(anchor, head Position) ID {
	id := s.add(NewSelection(anchor, head))
	return s.mergeTracking(id)
}

// Get returns the cursor with the given ID.
func (s *Set) Get(id ID) (Cursor, bool) {
	i := s.index(id)
	if i < 0 {
		return Cursor{}, false
	}
	return s.cursors[i], true
}

// Has returns true if a cursor with the given ID exists.
func (s *Set) Has(id ID) bool {
	return s.index(id) >= 0
}

// All returns a copy of the cursors in creation order.
func (s *Set) All() []Cursor {
	return slices.Clone(s.cursors)
}

// Sorted returns a copy of the cursors in buffer order.
func (s *Set) Sorted() []Cursor {
	sorted := slices.Clone(s.cursors)
	slices.SortFunc(sorted, compareCursors)
	return sorted
}

// Primary returns the primary cursor.
func (s *Set) Primary() Cursor {
	c, _ := s.Get(s.primary)
	return c
}

// SetPrimary makes the cursor with the given ID primary.
func (s *Set) SetPrimary(id ID) error {
	if !s.Has(id) {
		return fmt.Errorf("set primary %d: %w", id, ErrUnknownCursor)
	}
	s.primary = id
	return nil
}

// Count returns the number of cursors.
func (s *Set) Count() int {
	return len(s.cursors)
}

// IsMulti returns true if there are multiple cursors.
func (s *Set) IsMulti() bool {
	return len(s.cursors) > 1
}

// HasSelection returns true if any cursor has extent.
func (s *Set) HasSelection() bool {
	return slices.ContainsFunc(s.cursors, func(c Cursor) bool { return !c.IsEmpty() })
}

// MoveHead moves a cursor's head to pos. With extend the anchor stays,
// otherwise the cursor collapses to a caret at pos.
func (s *Set) MoveHead(id ID, pos Position, extend bool) error {
	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("move head %d: %w", id, ErrUnknownCursor)
	}
	if extend {
		s.cursors[i].Selection = s.cursors[i].Extend(pos)
	} else {
		s.cursors[i].Selection = s.cursors[i].MoveTo(pos)
	}
	s.Merge()
	return nil
}

// Select replaces a cursor's selection and merges.
func (s *Set) Select(id ID, sel Selection) error {
	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("select %d: %w", id, ErrUnknownCursor)
	}
	s.cursors[i].Selection = sel
	s.Merge()
	return nil
}

// Transform replaces every cursor's selection with fn's result and merges
// once at the end, so cursors moving past each other merge only where
// they finally meet.
func (s *Set) Transform(fn func(Cursor) Selection) {
	for i, c := range s.cursors {
		s.cursors[i].Selection = fn(c)
	}
	s.Merge()
}

// SwapAnchorHead flips the direction of one cursor.
func (s *Set) SwapAnchorHead(id ID) error {
	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("swap anchor/head %d: %w", id, ErrUnknownCursor)
	}
	s.cursors[i].Selection = s.cursors[i].Flip()
	return nil
}

// SwapAll flips the direction of every cursor.
func (s *Set) SwapAll() {
	for i := range s.cursors {
		s.cursors[i].Selection = s.cursors[i].Flip()
	}
}

// CollapseAllToHead turns every cursor into a caret at its head.
func (s *Set) CollapseAllToHead() {
	for i := range s.cursors {
		s.cursors[i].Selection = s.cursors[i].Collapse()
	}
	s.Merge()
}

// Remove deletes a cursor. The last cursor cannot be removed.
// If the primary is removed, the most recent remaining cursor becomes primary.
func (s *Set) Remove(id ID) error {
	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("remove %d: %w", id, ErrUnknownCursor)
	}
	if len(s.cursors) == 1 {
		return ErrLastCursor
	}
	s.cursors = slices.Delete(s.cursors, i, i+1)
	if s.primary == id {
		s.primary = s.cursors[len(s.cursors)-1].ID
	}
	return nil
}

// RemoveSecondary keeps only the primary cursor.
func (s *Set) RemoveSecondary() {
	s.cursors = []Cursor{s.Primary()}
}

// Reset replaces all cursors with carets at the given positions, the last
// one primary. With no positions a single caret at (0:0) is created.
func (s *Set) Reset(positions ...Position) {
	sels := make([]Selection, len(positions))
	for i, p := range positions {
		sels[i] = NewCursorSelection(p)
	}
	s.ResetSelections(sels...)
}

// ResetSelections replaces all cursors with the given selections, the
// last one primary. With no selections a single caret at (0:0) is created.
func (s *Set) ResetSelections(sels ...Selection) {
	s.cursors = nil
	if len(sels) == 0 {
		s.add(NewCursorSelection(Position{}))
		return
	}
	for _, sel := range sels {
		s.add(sel)
	}
	s.Merge()
}

// Clone returns a deep copy of the set. IDs are preserved.
func (s *Set) Clone() *Set {
	return &Set{
		cursors: slices.Clone(s.cursors),
		primary: s.primary,
		nextID:  s.nextID,
	}
}

// Restore overwrites the set in place with a copy of other, IDs and
// primary included.
func (s *Set) Restore(other *Set) {
	s.cursors = slices.Clone(other.cursors)
	s.primary = other.primary
	s.nextID = max(s.nextID, other.nextID)
}

// Ranges returns the cursor ranges in buffer order.
func (s *Set) Ranges() []Range {
	sorted := s.Sorted()
	ranges := make([]Range, len(sorted))
	for i, c := range sorted {
		ranges[i] = c.Range()
	}
	return ranges
}

// Merge unions overlapping or touching cursors. The earliest-created
// cursor of each merged group survives and keeps its direction.
func (s *Set) Merge() {
	s.mergeTracking(s.primary)
}

// mergeTracking merges and returns the ID that now holds id's selection.
func (s *Set) mergeTracking(id ID) ID {
	if len(s.cursors) <= 1 {
		return id
	}

	sorted := s.Sorted()
	merged := sorted[:1]
	// absorbed maps a dropped ID to the ID it was merged into.
	absorbed := map[ID]ID{}

	for _, c := range sorted[1:] {
		last := &merged[len(merged)-1]
		if c.Start().After(last.End()) {
			merged = append(merged, c)
			continue
		}

		survivor, dropped := *last, c
		if c.ID < last.ID {
			survivor, dropped = c, *last
		}
		absorbed[dropped.ID] = survivor.ID
		for from, to := range absorbed {
			if to == dropped.ID {
				absorbed[from] = survivor.ID
			}
		}
		*last = Cursor{ID: survivor.ID, Selection: survivor.Merge(dropped.Selection)}
	}

	slices.SortFunc(merged, func(a, b Cursor) int {
		return cmp.Compare(a.ID, b.ID)
	})
	s.cursors = merged

	if to, ok := absorbed[s.primary]; ok {
		s.primary = to
	}
	if to, ok := absorbed[id]; ok {
		return to
	}
	return id
}

func compareCursors(a, b Cursor) int {
	if c := a.Start().Compare(b.Start()); c != 0 {
		return c
	}
	if c := a.End().Compare(b.End()); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

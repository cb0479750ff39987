package cursor

import "github.com/dshills/paneedit/internal/engine/buffer"

// MapInsert returns where p ends up after text spanning r was inserted
// at r.Start.
//
// Transformation rules:
//   - Before the insertion point: unchanged
//   - On the insertion line at or after it: moved onto the last inserted
//     line, keeping its distance from the insertion point
//   - On a later line: shifted down by the inserted line count
func MapInsert(p Position, r Range) Position {
	if p.Before(r.Start) {
		return p
	}
	if p.Line == r.Start.Line {
		return Position{Line: r.End.Line, Col: r.End.Col + p.Col - r.Start.Col}
	}
	return Position{Line: p.Line + r.End.Line - r.Start.Line, Col: p.Col}
}

// MapDelete returns where p ends up after the text in r was removed.
//
// Transformation rules:
//   - At or before the range start: unchanged
//   - Inside the range: collapsed to the range start
//   - On the range's end line after it: joined onto the start line
//   - On a later line: shifted up by the removed line count
func MapDelete(p Position, r Range) Position {
	if !p.After(r.Start) {
		return p
	}
	if p.Before(r.End) {
		return r.Start
	}
	if p.Line == r.End.Line {
		return Position{Line: r.Start.Line, Col: r.Start.Col + p.Col - r.End.Col}
	}
	return Position{Line: p.Line - (r.End.Line - r.Start.Line), Col: p.Col}
}

// MapPosition maps p through an applied edit.
func MapPosition(p Position, e buffer.Edit) Position {
	if e.IsInsert() {
		return MapInsert(p, e.Range)
	}
	return MapDelete(p, e.Range)
}

// MapSelection maps both ends of a selection through an applied edit.
func MapSelection(sel Selection, e buffer.Edit) Selection {
	return Selection{
		Anchor: MapPosition(sel.Anchor, e),
		Head:   MapPosition(sel.Head, e),
	}
}

// FixUp maps every cursor through an applied edit and merges.
// It never fails: every position valid before the edit is valid after it.
func (s *Set) FixUp(e buffer.Edit) {
	if e.IsNoOp() {
		return
	}
	for i := range s.cursors {
		s.cursors[i].Selection = MapSelection(s.cursors[i].Selection, e)
	}
	s.Merge()
}

// FixUpAll applies FixUp for each edit in application order.
func (s *Set) FixUpAll(edits []buffer.Edit) {
	for _, e := range edits {
		s.FixUp(e)
	}
}

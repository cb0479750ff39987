package buffer

import "fmt"

// EditKind distinguishes the two primitive mutations.
type EditKind uint8

const (
	EditInsert EditKind = iota // Text was inserted
	EditDelete                 // Text was deleted
)

// String returns a string representation of the edit kind.
func (k EditKind) String() string {
	switch k {
	case EditInsert:
		return "insert"
	case EditDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Edit is an immutable record of one primitive mutation.
//
// For an insertion Range.Start is the insertion point and Range.End is the
// end of the inserted text. For a deletion Range is the removed range.
// Text is the inserted or removed text in both cases, so inverting an edit
// only flips its kind.
type Edit struct {
	Kind  EditKind
	Range Range
	Text  string
}

// InsertEdit builds the insertion of text at pos.
func InsertEdit(pos Position, text string) Edit {
	return Edit{
		Kind:  EditInsert,
		Range: Range{Start: pos, End: EndOf(pos, text)},
		Text:  text,
	}
}

// DeleteEdit builds the deletion of text spanning rng.
func DeleteEdit(rng Range, text string) Edit {
	return Edit{Kind: EditDelete, Range: rng, Text: text}
}

// Invert returns the edit that undoes e.
func (e Edit) Invert() Edit {
	inv := e
	if e.Kind == EditInsert {
		inv.Kind = EditDelete
	} else {
		inv.Kind = EditInsert
	}
	return inv
}

// IsInsert returns true if this is an insertion.
func (e Edit) IsInsert() bool {
	return e.Kind == EditInsert
}

// IsDelete returns true if this is a deletion.
func (e Edit) IsDelete() bool {
	return e.Kind == EditDelete
}

// IsNoOp returns true if this edit changes nothing.
func (e Edit) IsNoOp() bool {
	return e.Range.IsEmpty() && e.Text == ""
}

// String returns a human-readable representation of the edit.
func (e Edit) String() string {
	if e.Kind == EditInsert {
		return fmt.Sprintf("Insert(%s, %q)", e.Range.Start, e.Text)
	}
	return fmt.Sprintf("Delete%s %q", e.Range, e.Text)
}

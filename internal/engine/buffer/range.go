package buffer

import "fmt"

// Range is a span of text between two positions.
// Start is inclusive, End is exclusive: [Start, End).
type Range struct {
	Start Position
	End   Position
}

// NewRange creates a range from two positions in either order.
func NewRange(a, b Position) Range {
	if b.Before(a) {
		a, b = b, a
	}
	return Range{Start: a, End: b}
}

// PointRange returns an empty range at p.
func PointRange(p Position) Range {
	return Range{Start: p, End: p}
}

// String returns a human-readable representation of the range.
func (r Range) String() string {
	return fmt.Sprintf("[%s-%s)", r.Start, r.End)
}

// IsEmpty returns true if the range has zero length.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// IsValid returns true if Start <= End.
func (r Range) IsValid() bool {
	return !r.End.Before(r.Start)
}

// IsMultiLine returns true if the range spans more than one line.
func (r Range) IsMultiLine() bool {
	return r.Start.Line != r.End.Line
}

// Contains returns true if p is within the range.
func (r Range) Contains(p Position) bool {
	return !p.Before(r.Start) && p.Before(r.End)
}

// ContainsRange returns true if other lies entirely within r.
func (r Range) ContainsRange(other Range) bool {
	return !other.Start.Before(r.Start) && !other.End.After(r.End)
}

// Overlaps returns true if the two ranges share at least one position.
func (r Range) Overlaps(other Range) bool {
	return r.Start.Before(other.End) && other.Start.Before(r.End)
}

// Touches returns true if the ranges overlap or are adjacent.
func (r Range) Touches(other Range) bool {
	return !r.Start.After(other.End) && !other.Start.After(r.End)
}

// Union returns the smallest range covering both ranges.
func (r Range) Union(other Range) Range {
	return Range{Start: MinPos(r.Start, other.Start), End: MaxPos(r.End, other.End)}
}

// Intersect returns the overlap of two ranges and whether there is one.
func (r Range) Intersect(other Range) (Range, bool) {
	start := MaxPos(r.Start, other.Start)
	end := MinPos(r.End, other.End)
	if end.Before(start) {
		return Range{}, false
	}
	return Range{Start: start, End: end}, true
}

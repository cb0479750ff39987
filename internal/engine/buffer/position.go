package buffer

import "fmt"

// Position is a line and column location in a buffer.
// Both Line and Col are 0-indexed; Col counts runes, not bytes.
type Position struct {
	Line int
	Col  int
}

// Pos is shorthand for Position{Line: line, Col: col}.
func Pos(line, col int) Position {
	return Position{Line: line, Col: col}
}

// String returns a human-readable representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d:%d)", p.Line, p.Col)
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other.
func (p Position) Compare(other Position) int {
	if p.Line < other.Line {
		return -1
	}
	if p.Line > other.Line {
		return 1
	}
	if p.Col < other.Col {
		return -1
	}
	if p.Col > other.Col {
		return 1
	}
	return 0
}

// Before returns true if p comes before other.
func (p Position) Before(other Position) bool {
	return p.Compare(other) < 0
}

// After returns true if p comes after other.
func (p Position) After(other Position) bool {
	return p.Compare(other) > 0
}

// IsZero returns true if this is the zero position (0:0).
func (p Position) IsZero() bool {
	return p.Line == 0 && p.Col == 0
}

// MinPos returns the earlier of two positions.
func MinPos(a, b Position) Position {
	if a.Before(b) {
		return a
	}
	return b
}

// MaxPos returns the later of two positions.
func MaxPos(a, b Position) Position {
	if a.After(b) {
		return a
	}
	return b
}

// EndOf returns the position reached after inserting text at start.
// The text must already use \n line separators.
func EndOf(start Position, text string) Position {
	line, col := start.Line, start.Col
	for _, r := range text {
		if r == '\n' {
			line++
			col = 0
			continue
		}
		col++
	}
	return Position{Line: line, Col: col}
}

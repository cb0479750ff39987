package buffer

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dshills/paneedit/internal/engine/history"
)

// LineEnding specifies the line ending style of the persisted content.
type LineEnding uint8

const (
	LineEndingLF   LineEnding = iota // Unix: \n
	LineEndingCRLF                   // Windows: \r\n
	LineEndingCR                     // Old Mac: \r
)

// String returns the string representation of the line ending.
func (le LineEnding) String() string {
	switch le {
	case LineEndingCRLF:
		return "\\r\\n"
	case LineEndingCR:
		return "\\r"
	default:
		return "\\n"
	}
}

// Sequence returns the actual line ending characters.
func (le LineEnding) Sequence() string {
	switch le {
	case LineEndingCRLF:
		return "\r\n"
	case LineEndingCR:
		return "\r"
	default:
		return "\n"
	}
}

// Normalize converts every line ending in s to \n.
func Normalize(s string) string {
	if !strings.ContainsRune(s, '\r') {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// Buffer holds the text of one document as lines of runes.
//
// A Buffer always has at least one line and never stores line breaks
// inside a line. It does not know about cursors; interested parties
// register with Observe and are told about every applied Edit.
// Buffer is not safe for concurrent use.
type Buffer struct {
	id         string
	name       string
	lines      [][]rune
	lineEnding LineEnding

	revision      uint64
	savedRevision uint64

	observers    []observer
	nextObserver int

	historyLimit int
	history      *history.History[Edit]

	logger zerolog.Logger
}

type observer struct {
	id int
	fn func(Edit)
}

// NewBuffer creates a new empty buffer.
func NewBuffer(opts ...Option) *Buffer {
	b := &Buffer{
		id:     uuid.NewString(),
		lines:  [][]rune{{}},
		logger: zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(b)
	}

	b.history = history.New[Edit](b.historyLimit)
	return b
}

// NewBufferFromString creates a buffer with initial content.
// The line ending is detected from s unless set by an option.
func NewBufferFromString(s string, opts ...Option) *Buffer {
	opts = append([]Option{WithLineEnding(DetectLineEnding(s))}, opts...)
	b := NewBuffer(opts...)
	b.lines = splitLines(Normalize(s))
	return b
}

func splitLines(s string) [][]rune {
	parts := strings.Split(s, "\n")
	lines := make([][]rune, len(parts))
	for i, p := range parts {
		lines[i] = []rune(p)
	}
	return lines
}

// ID returns the buffer's unique identifier.
func (b *Buffer) ID() string {
	return b.id
}

// Name returns the buffer's display name.
func (b *Buffer) Name() string {
	return b.name
}

// SetName changes the buffer's display name.
func (b *Buffer) SetName(name string) {
	b.name = name
}

// LineEnding returns the line ending used by Export.
func (b *Buffer) LineEnding() LineEnding {
	return b.lineEnding
}

// History returns the buffer's undo history. Views commit edit groups to
// it; the buffer itself never does.
func (b *Buffer) History() *history.History[Edit] {
	return b.history
}

// Revision returns a counter incremented by every mutation.
func (b *Buffer) Revision() uint64 {
	return b.revision
}

// Modified returns true if the buffer changed since the last MarkSaved.
func (b *Buffer) Modified() bool {
	return b.revision != b.savedRevision
}

// MarkSaved records the current revision as persisted.
func (b *Buffer) MarkSaved() {
	b.savedRevision = b.revision
}

// Read Operations

// LineCount returns the number of lines. It is always at least 1.
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// Line returns the text of a line without its line break.
func (b *Buffer) Line(line int) (string, error) {
	if line < 0 || line >= len(b.lines) {
		return "", fmt.Errorf("line %d: %w", line, ErrOutOfBounds)
	}
	return string(b.lines[line]), nil
}

// LineLen returns the length of a line in runes.
func (b *Buffer) LineLen(line int) (int, error) {
	if line < 0 || line >= len(b.lines) {
		return 0, fmt.Errorf("line %d: %w", line, ErrOutOfBounds)
	}
	return len(b.lines[line]), nil
}

// Text returns the full content with \n line separators.
func (b *Buffer) Text() string {
	var sb strings.Builder
	for i, l := range b.lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(string(l))
	}
	return sb.String()
}

// Export returns the full content using the buffer's line ending.
func (b *Buffer) Export() string {
	if b.lineEnding == LineEndingLF {
		return b.Text()
	}
	return strings.ReplaceAll(b.Text(), "\n", b.lineEnding.Sequence())
}

// IsEmpty returns true if the buffer holds no text.
func (b *Buffer) IsEmpty() bool {
	return len(b.lines) == 1 && len(b.lines[0]) == 0
}

// End returns the position after the last rune.
func (b *Buffer) End() Position {
	last := len(b.lines) - 1
	return Position{Line: last, Col: len(b.lines[last])}
}

// Valid reports whether pos addresses a location in the buffer.
func (b *Buffer) Valid(pos Position) bool {
	return pos.Line >= 0 && pos.Line < len(b.lines) &&
		pos.Col >= 0 && pos.Col <= len(b.lines[pos.Line])
}

// Clamp returns the nearest valid position to pos.
func (b *Buffer) Clamp(pos Position) Position {
	if pos.Line < 0 {
		return Position{}
	}
	if pos.Line >= len(b.lines) {
		return b.End()
	}
	pos.Col = max(0, min(pos.Col, len(b.lines[pos.Line])))
	return pos
}

func (b *Buffer) checkPos(pos Position) error {
	if !b.Valid(pos) {
		return fmt.Errorf("%s: %w", pos, ErrOutOfBounds)
	}
	return nil
}

func (b *Buffer) checkRange(rng Range) error {
	if !rng.IsValid() {
		return fmt.Errorf("%s: %w", rng, ErrInvalidRange)
	}
	if err := b.checkPos(rng.Start); err != nil {
		return err
	}
	return b.checkPos(rng.End)
}

// Read returns the text in rng.
func (b *Buffer) Read(rng Range) (string, error) {
	if err := b.checkRange(rng); err != nil {
		return "", err
	}
	return b.read(rng), nil
}

func (b *Buffer) read(rng Range) string {
	s, e := rng.Start, rng.End
	if s.Line == e.Line {
		return string(b.lines[s.Line][s.Col:e.Col])
	}

	var sb strings.Builder
	sb.WriteString(string(b.lines[s.Line][s.Col:]))
	for i := s.Line + 1; i < e.Line; i++ {
		sb.WriteByte('\n')
		sb.WriteString(string(b.lines[i]))
	}
	sb.WriteByte('\n')
	sb.WriteString(string(b.lines[e.Line][:e.Col]))
	return sb.String()
}

// Write Operations

// Insert inserts text at pos and returns the applied Edit.
// Line endings in text are normalized. Inserting empty text is a no-op.
func (b *Buffer) Insert(pos Position, text string) (Edit, error) {
	if err := b.checkPos(pos); err != nil {
		return Edit{}, fmt.Errorf("insert: %w", err)
	}

	text = Normalize(text)
	edit := InsertEdit(pos, text)
	if text == "" {
		return edit, nil
	}

	line := b.lines[pos.Line]
	parts := splitLines(text)
	last := len(parts) - 1

	// Build fresh line slices so no backing array is shared.
	tail := slices.Clone(line[pos.Col:])
	parts[0] = append(slices.Clone(line[:pos.Col]), parts[0]...)
	parts[last] = append(parts[last], tail...)

	b.lines = slices.Replace(b.lines, pos.Line, pos.Line+1, parts...)
	b.changed(edit)
	return edit, nil
}

// Delete removes the text in rng and returns the applied Edit.
// Deleting an empty range is a no-op.
func (b *Buffer) Delete(rng Range) (Edit, error) {
	if err := b.checkRange(rng); err != nil {
		return Edit{}, fmt.Errorf("delete: %w", err)
	}

	edit := DeleteEdit(rng, b.read(rng))
	if rng.IsEmpty() {
		return edit, nil
	}

	s, e := rng.Start, rng.End
	merged := append(slices.Clone(b.lines[s.Line][:s.Col]), b.lines[e.Line][e.Col:]...)
	b.lines = slices.Replace(b.lines, s.Line, e.Line+1, merged)
	b.changed(edit)
	return edit, nil
}

// Apply replays a recorded edit, as undo and redo do.
// A deletion must match the current content exactly.
func (b *Buffer) Apply(e Edit) (Edit, error) {
	if e.Kind == EditInsert {
		return b.Insert(e.Range.Start, e.Text)
	}

	got, err := b.Read(e.Range)
	if err != nil {
		return Edit{}, fmt.Errorf("apply: %w", err)
	}
	if got != e.Text {
		return Edit{}, fmt.Errorf("apply %s: %w", e, ErrEditMismatch)
	}
	return b.Delete(e.Range)
}

// Observers

// Observe registers fn to be called after every applied mutation.
// Observers run synchronously in registration order. The returned
// function unregisters fn.
func (b *Buffer) Observe(fn func(Edit)) (cancel func()) {
	b.nextObserver++
	id := b.nextObserver
	b.observers = append(b.observers, observer{id: id, fn: fn})

	return func() {
		b.observers = slices.DeleteFunc(b.observers, func(o observer) bool {
			return o.id == id
		})
	}
}

// ObserverCount returns the number of registered observers.
func (b *Buffer) ObserverCount() int {
	return len(b.observers)
}

func (b *Buffer) changed(e Edit) {
	b.revision++
	for _, o := range slices.Clone(b.observers) {
		o.fn(e)
	}
}

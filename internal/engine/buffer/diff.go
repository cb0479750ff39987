package buffer

import (
	"fmt"
	"slices"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
)

// Replace swaps the whole content for text using a line diff, so only the
// changed lines are touched and positions in unchanged regions survive.
// It returns the applied edits in application order; the caller commits
// them to the history as one group.
func (b *Buffer) Replace(text string) ([]Edit, error) {
	text = Normalize(text)
	old := b.Text()
	if old == text {
		return nil, nil
	}

	diffs := myers.ComputeEdits(b.uri(), old, text)

	// Convert to positions against the original content, then apply from
	// the bottom up so earlier positions stay valid.
	type lineEdit struct {
		rng  Range
		text string
	}
	pending := make([]lineEdit, 0, len(diffs))
	for _, d := range diffs {
		pending = append(pending, lineEdit{
			rng:  NewRange(b.linePos(d.Span.Start().Line()-1), b.linePos(d.Span.End().Line()-1)),
			text: d.NewText,
		})
	}
	slices.SortStableFunc(pending, func(x, y lineEdit) int {
		return x.rng.Start.Compare(y.rng.Start)
	})

	var applied []Edit
	for i := len(pending) - 1; i >= 0; i-- {
		p := pending[i]
		if !p.rng.IsEmpty() {
			e, err := b.Delete(p.rng)
			if err != nil {
				return applied, fmt.Errorf("replace: %w", err)
			}
			applied = append(applied, e)
		}
		if p.text != "" {
			e, err := b.Insert(p.rng.Start, p.text)
			if err != nil {
				return applied, fmt.Errorf("replace: %w", err)
			}
			applied = append(applied, e)
		}
	}

	if b.Text() != text {
		b.logger.Warn().
			Str("buffer", b.name).
			Int("edits", len(applied)).
			Msg("line diff did not reproduce content, replacing whole buffer")
		return b.replaceAll(applied, text)
	}

	return applied, nil
}

// replaceAll deletes everything and inserts text, appending to applied.
func (b *Buffer) replaceAll(applied []Edit, text string) ([]Edit, error) {
	e, err := b.Delete(Range{End: b.End()})
	if err != nil {
		return applied, fmt.Errorf("replace: %w", err)
	}
	if !e.IsNoOp() {
		applied = append(applied, e)
	}
	e, err = b.Insert(Position{}, text)
	if err != nil {
		return applied, fmt.Errorf("replace: %w", err)
	}
	if !e.IsNoOp() {
		applied = append(applied, e)
	}
	return applied, nil
}

// linePos returns the start of line, or the end of the buffer when line
// is past the last line.
func (b *Buffer) linePos(line int) Position {
	if line >= len(b.lines) {
		return b.End()
	}
	return Position{Line: line}
}

func (b *Buffer) uri() span.URI {
	name := b.name
	if name == "" {
		name = b.id
	}
	return span.URIFromPath(name)
}

// UnifiedDiff returns a unified diff from the buffer content to other.
// It is empty when they are equal.
func (b *Buffer) UnifiedDiff(fromName, toName, other string) string {
	old := b.Text()
	other = Normalize(other)
	edits := myers.ComputeEdits(span.URIFromPath(fromName), old, other)
	if len(edits) == 0 {
		return ""
	}
	return fmt.Sprint(gotextdiff.ToUnified(fromName, toName, old, edits))
}

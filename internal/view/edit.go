package view

import (
	"fmt"

	"github.com/dshills/paneedit/internal/engine/buffer"
	"github.com/dshills/paneedit/internal/engine/cursor"
	"github.com/dshills/paneedit/internal/engine/history"
)

// Action is the primitive an EditFunc asks for at one cursor: delete
// Range, then insert Text at Range.Start. An empty Range is a pure
// insertion and empty Text a pure deletion.
type Action struct {
	Range buffer.Range
	Text  string
}

// EditFunc computes the action for one cursor. It sees the buffer as
// left by the actions of the cursors before it.
type EditFunc func(buf *buffer.Buffer, c cursor.Cursor) (Action, error)

// ApplyForAllCursors runs fn once per cursor, earliest in the buffer
// first, and records every resulting edit as one history group named
// desc. Each cursor is handed to fn as it stands after the actions of
// the cursors before it, even when those actions merged it into a
// neighbour in the live selection set.
//
// If fn fails, or the buffer rejects an action, the edits made so far
// are reverted and this view's cursors are restored. Buffer rejections
// are reported as ErrInvariant. Other views over the buffer only see the
// edits and their inverses, so their cursors may end up collapsed.
func (v *View) ApplyForAllCursors(desc string, fn EditFunc) error {
	if v.IsClosed() {
		return ErrClosed
	}

	saved := v.sel.Clone()
	wasModified := v.buf.Modified()
	pending := v.sel.Sorted()
	var applied []buffer.Edit

	for i := range pending {
		act, err := fn(v.buf, pending[i])
		if err != nil {
			v.rollback(applied, saved, wasModified)
			return err
		}

		edits, err := v.perform(act)
		applied = append(applied, edits...)
		if err != nil {
			v.rollback(applied, saved, wasModified)
			v.logger.Error().
				Err(err).
				Str("op", desc).
				Str("buffer", v.buf.Name()).
				Int("cursors", saved.Count()).
				Msg("multi-cursor edit rolled back")
			return fmt.Errorf("%s: %w: %w", desc, ErrInvariant, err)
		}

		for _, e := range edits {
			for j := i + 1; j < len(pending); j++ {
				pending[j].Selection = cursor.MapSelection(pending[j].Selection, e)
			}
		}
	}

	v.buf.History().Commit(history.NewGroup(desc, applied...))
	return nil
}

// perform applies one action and returns the non-empty edits it made.
func (v *View) perform(act Action) ([]buffer.Edit, error) {
	var edits []buffer.Edit

	if !act.Range.IsEmpty() {
		e, err := v.buf.Delete(act.Range)
		if err != nil {
			return edits, err
		}
		edits = append(edits, e)
	}

	if act.Text != "" {
		e, err := v.buf.Insert(act.Range.Start, act.Text)
		if err != nil {
			return edits, err
		}
		edits = append(edits, e)
	}

	return edits, nil
}

// rollback reverts applied edits newest first and restores, in place,
// the selection set captured before they were made. An unmodified buffer
// is marked saved again since its content is back where it was.
func (v *View) rollback(applied []buffer.Edit, saved *cursor.Set, wasModified bool) {
	for i := len(applied) - 1; i >= 0; i-- {
		if _, err := v.buf.Apply(applied[i].Invert()); err != nil {
			v.logger.Error().Err(err).Str("edit", applied[i].String()).Msg("rollback failed")
			return
		}
	}
	v.sel.Restore(saved)
	if !wasModified {
		v.buf.MarkSaved()
	}
}

// InsertText replaces every selection with text. Carets insert.
func (v *View) InsertText(text string) error {
	return v.ApplyForAllCursors("Insert", func(_ *buffer.Buffer, c cursor.Cursor) (Action, error) {
		return Action{Range: c.Range(), Text: text}, nil
	})
}

// InsertNewline breaks the line at every cursor.
func (v *View) InsertNewline() error {
	return v.ApplyForAllCursors("Newline", func(_ *buffer.Buffer, c cursor.Cursor) (Action, error) {
		return Action{Range: c.Range(), Text: "\n"}, nil
	})
}

// DeleteSelections removes the selected text. Carets are left alone.
func (v *View) DeleteSelections() error {
	return v.ApplyForAllCursors("Delete selection", func(_ *buffer.Buffer, c cursor.Cursor) (Action, error) {
		return Action{Range: c.Range()}, nil
	})
}

// DeleteBackward removes each selection, or the character before each
// caret. At the start of a line it joins with the previous line.
func (v *View) DeleteBackward() error {
	return v.ApplyForAllCursors("Delete backward", func(buf *buffer.Buffer, c cursor.Cursor) (Action, error) {
		if !c.IsCaret() {
			return Action{Range: c.Range()}, nil
		}
		return Action{Range: buffer.NewRange(prevPos(buf, c.Head), c.Head)}, nil
	})
}

// DeleteForward removes each selection, or the character after each
// caret. At the end of a line it joins with the next line.
func (v *View) DeleteForward() error {
	return v.ApplyForAllCursors("Delete forward", func(buf *buffer.Buffer, c cursor.Cursor) (Action, error) {
		if !c.IsCaret() {
			return Action{Range: c.Range()}, nil
		}
		return Action{Range: buffer.NewRange(c.Head, nextPos(buf, c.Head))}, nil
	})
}

// Undo reverts the buffer's most recent edit group and leaves a caret at
// each changed place. It reports false when there is nothing to undo.
func (v *View) Undo() (bool, error) {
	h := v.buf.History()
	g, ok := h.Undo()
	if !ok {
		return false, nil
	}

	if err := v.replay(g.Invert()); err != nil {
		h.Redo()
		return false, fmt.Errorf("undo %q: %w", g.Name, err)
	}
	return true, nil
}

// UndoTo undoes groups until the buffer's history is back at cp and
// returns how many were undone.
func (v *View) UndoTo(cp history.Checkpoint) (int, error) {
	n := v.buf.History().UndoCountSince(cp)
	for i := range n {
		if _, err := v.Undo(); err != nil {
			return i, err
		}
	}
	return n, nil
}

// Redo re-applies the most recently undone group and leaves a caret at
// each changed place. It reports false when there is nothing to redo.
func (v *View) Redo() (bool, error) {
	h := v.buf.History()
	g, ok := h.Redo()
	if !ok {
		return false, nil
	}

	if err := v.replay(g.Edits); err != nil {
		h.Undo()
		return false, fmt.Errorf("redo %q: %w", g.Name, err)
	}
	return true, nil
}

// replay applies edits in order and resets the selection set to one caret
// per edit: the end of inserted text or the start of a removed range.
func (v *View) replay(edits []buffer.Edit) error {
	saved := v.sel.Clone()
	wasModified := v.buf.Modified()
	var applied []buffer.Edit
	var carets []buffer.Position

	for _, e := range edits {
		a, err := v.buf.Apply(e)
		if err != nil {
			v.rollback(applied, saved, wasModified)
			v.logger.Error().Err(err).Str("edit", e.String()).Msg("history replay rolled back")
			return fmt.Errorf("%w: %w", ErrInvariant, err)
		}
		applied = append(applied, a)

		for i := range carets {
			carets[i] = cursor.MapPosition(carets[i], a)
		}
		if a.IsInsert() {
			carets = append(carets, a.Range.End)
		} else {
			carets = append(carets, a.Range.Start)
		}
	}

	v.sel.Reset(carets...)
	v.goals = nil
	return nil
}

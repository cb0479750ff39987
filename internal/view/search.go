package view

import (
	"github.com/dshills/paneedit/internal/engine/buffer"
	"github.com/dshills/paneedit/internal/engine/cursor"
	"github.com/dshills/paneedit/internal/engine/search"
)

// Find stores pattern as the view's query. With no options given the
// view's defaults apply. An invalid regular expression leaves the
// previous query in place.
func (v *View) Find(pattern string, opts ...search.Options) error {
	o := v.searchDefaults
	if len(opts) > 0 {
		o = opts[0]
	}

	m, err := search.Compile(pattern, o)
	if err != nil {
		return err
	}

	v.matcher = m
	v.matches = nil
	v.matchRevision = 0
	return nil
}

// ClearSearch forgets the query.
func (v *View) ClearSearch() {
	v.matcher = nil
	v.matches = nil
}

// Query returns the current search pattern, or "" when there is none.
func (v *View) Query() string {
	if v.matcher == nil {
		return ""
	}
	return v.matcher.Pattern()
}

// Matches returns every match of the current query in buffer order.
// Results are cached until the buffer changes.
func (v *View) Matches() []buffer.Range {
	if v.matcher == nil {
		return nil
	}
	if v.matches == nil || v.matchRevision != v.buf.Revision() {
		v.matches = search.Collect(v.matcher.Find(v.buf))
		if v.matches == nil {
			v.matches = []buffer.Range{}
		}
		v.matchRevision = v.buf.Revision()
	}
	return v.matches
}

// FindNext selects the next match after the primary cursor's head,
// wrapping at the end of the buffer. It reports false when there is no
// query or no match.
func (v *View) FindNext() (bool, error) {
	if v.matcher == nil {
		return false, nil
	}
	r, ok := v.matcher.Next(v.buf, v.sel.Primary().Head, search.Forward)
	if !ok {
		return false, nil
	}
	return true, v.selectPrimary(r)
}

// FindPrev selects the match before the primary selection's start,
// wrapping at the start of the buffer. It reports false when there is
// no query or no match.
func (v *View) FindPrev() (bool, error) {
	if v.matcher == nil {
		return false, nil
	}
	r, ok := v.matcher.Next(v.buf, v.sel.Primary().Start(), search.Backward)
	if !ok {
		return false, nil
	}
	return true, v.selectPrimary(r)
}

// selectPrimary makes the primary cursor select r.
func (v *View) selectPrimary(r buffer.Range) error {
	v.goals = nil
	return v.sel.Select(v.sel.Primary().ID, cursor.NewSelection(r.Start, r.End))
}

// SelectAllMatches replaces the cursors with one selection per match and
// returns how many there are. With no matches the cursors are unchanged.
func (v *View) SelectAllMatches() int {
	matches := v.Matches()
	if len(matches) == 0 {
		return 0
	}

	sels := make([]cursor.Selection, len(matches))
	for i, r := range matches {
		sels[i] = cursor.NewSelection(r.Start, r.End)
	}
	v.sel.ResetSelections(sels...)
	v.goals = nil
	return v.sel.Count()
}

package view

import (
	"github.com/rs/zerolog"

	"github.com/dshills/paneedit/internal/engine/buffer"
	"github.com/dshills/paneedit/internal/engine/cursor"
	"github.com/dshills/paneedit/internal/engine/search"
)

// View is one window onto a Buffer. It owns a selection set, a scroll
// offset and the last search. Several views may share a buffer; each
// keeps its own cursors consistent by observing the buffer.
type View struct {
	buf    *buffer.Buffer
	sel    *cursor.Set
	cancel func()

	scroll       buffer.Position
	scrollMargin int

	// goals holds the preferred column for vertical motion per cursor.
	goals map[cursor.ID]int

	searchDefaults search.Options
	matcher        *search.Matcher
	matches        []buffer.Range
	matchRevision  uint64

	logger zerolog.Logger
}

// New creates a view over buf with a caret at the start of the buffer.
func New(buf *buffer.Buffer, opts ...Option) *View {
	v := &View{
		buf:          buf,
		sel:          cursor.NewSet(buffer.Position{}),
		scrollMargin: DefaultScrollMargin,
		logger:       zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(v)
	}

	v.cancel = buf.Observe(v.onEdit)
	return v
}

// Clone creates a new view over the same buffer with a copy of this
// view's selections, scroll offset and search.
func (v *View) Clone() *View {
	c := &View{
		buf:            v.buf,
		sel:            v.sel.Clone(),
		scroll:         v.scroll,
		scrollMargin:   v.scrollMargin,
		searchDefaults: v.searchDefaults,
		matcher:        v.matcher,
		logger:         v.logger,
	}
	c.cancel = c.buf.Observe(c.onEdit)
	return c
}

// Close stops observing the buffer. It is safe to call more than once.
func (v *View) Close() {
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
}

// IsClosed returns true after Close.
func (v *View) IsClosed() bool {
	return v.cancel == nil
}

// Buffer returns the viewed buffer.
func (v *View) Buffer() *buffer.Buffer {
	return v.buf
}

// Cursors returns the view's selection set.
func (v *View) Cursors() *cursor.Set {
	return v.sel
}

// onEdit keeps the selection set in step with the buffer, whichever view
// made the change.
func (v *View) onEdit(e buffer.Edit) {
	v.sel.FixUp(e)
	top := cursor.MapPosition(buffer.Pos(v.scroll.Line, 0), e)
	v.scroll.Line = min(top.Line, v.buf.LineCount()-1)
	v.goals = nil
}

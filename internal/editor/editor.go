package editor

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/dshills/paneedit/internal/engine/buffer"
	"github.com/dshills/paneedit/internal/engine/history"
	"github.com/dshills/paneedit/internal/view"
	"github.com/dshills/paneedit/internal/viewport"
)

// Editor owns the open buffers and the pane tree. It is the entry point
// for command layers: scripts, the CLI and any interactive front end.
type Editor struct {
	buffers map[string]*buffer.Buffer // id -> buffer
	order   []string                  // open order
	tree    *viewport.Tree

	historyLimit int
	viewOpts     []view.Option
	logger       zerolog.Logger
}

// New creates an editor showing an empty scratch buffer.
func New(opts ...Option) *Editor {
	e := &Editor{
		buffers: make(map[string]*buffer.Buffer),
		logger:  zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(e)
	}

	scratch := e.newBuffer(ScratchName, "")
	e.tree = viewport.New(e.newView(scratch),
		viewport.WithReleaser(e),
		viewport.WithLogger(e.logger.With().Str("component", "viewport").Logger()),
	)
	return e
}

func (e *Editor) newBuffer(name, content string) *buffer.Buffer {
	buf := buffer.NewBufferFromString(content,
		buffer.WithName(name),
		buffer.WithHistoryLimit(e.historyLimit),
		buffer.WithLogger(e.logger.With().Str("component", "buffer").Str("name", name).Logger()),
	)
	e.buffers[buf.ID()] = buf
	e.order = append(e.order, buf.ID())

	e.logger.Debug().
		Str("buffer", name).
		Str("id", buf.ID()).
		Int("lines", buf.LineCount()).
		Msg("buffer opened")
	return buf
}

func (e *Editor) newView(buf *buffer.Buffer) *view.View {
	opts := append([]view.Option{
		view.WithLogger(e.logger.With().Str("component", "view").Logger()),
	}, e.viewOpts...)
	return view.New(buf, opts...)
}

// Open shows the buffer called name in the active pane. A buffer that is
// already open under that name is reused and content is ignored;
// otherwise a new buffer is created from content.
func (e *Editor) Open(name, content string) (*buffer.Buffer, error) {
	buf, ok := e.BufferByName(name)
	if !ok {
		buf = e.newBuffer(name, content)
	}

	if err := e.Show(buf.ID()); err != nil {
		return nil, err
	}
	return buf, nil
}

// Show displays a registered buffer in the active pane with a fresh view.
// Nothing happens if the pane already shows it.
func (e *Editor) Show(id string) error {
	buf, err := e.Buffer(id)
	if err != nil {
		return err
	}
	if e.ActiveView().Buffer() == buf {
		return nil
	}
	return e.tree.ReplaceView(e.tree.Active(), e.newView(buf))
}

// Buffer returns a registered buffer by ID.
func (e *Editor) Buffer(id string) (*buffer.Buffer, error) {
	buf, ok := e.buffers[id]
	if !ok {
		return nil, fmt.Errorf("buffer %s: %w", id, ErrUnknownBuffer)
	}
	return buf, nil
}

// BufferByName returns the registered buffer called name.
func (e *Editor) BufferByName(name string) (*buffer.Buffer, bool) {
	for _, id := range e.order {
		if buf := e.buffers[id]; buf.Name() == name {
			return buf, true
		}
	}
	return nil, false
}

// Buffers returns the registered buffers in open order.
func (e *Editor) Buffers() []*buffer.Buffer {
	bufs := make([]*buffer.Buffer, 0, len(e.order))
	for _, id := range e.order {
		bufs = append(bufs, e.buffers[id])
	}
	return bufs
}

// Reload replaces a buffer's content with a line diff. The change is one
// undo group and cursors in unchanged regions keep their place.
func (e *Editor) Reload(id, content string) error {
	buf, err := e.Buffer(id)
	if err != nil {
		return err
	}

	// Edits applied before a failure are still recorded so they can be
	// undone.
	edits, err := buf.Replace(content)
	buf.History().Commit(history.NewGroup("Reload", edits...))
	if err != nil {
		return fmt.Errorf("reload %s: %w", buf.Name(), err)
	}

	buf.MarkSaved()
	e.logger.Debug().Str("buffer", buf.Name()).Uint64("revision", buf.Revision()).Msg("buffer reloaded")
	return nil
}

// Release drops a buffer no pane shows anymore from the registry.
func (e *Editor) Release(buf *buffer.Buffer) {
	if _, ok := e.buffers[buf.ID()]; !ok {
		return
	}
	delete(e.buffers, buf.ID())
	for i, id := range e.order {
		if id == buf.ID() {
			e.order = append(e.order[:i], e.order[i+1:]...)
			break
		}
	}

	e.logger.Debug().Str("buffer", buf.Name()).Str("id", buf.ID()).Msg("buffer released")
}

// Tree returns the pane tree.
func (e *Editor) Tree() *viewport.Tree {
	return e.tree
}

// ActiveView returns the view of the active pane.
func (e *Editor) ActiveView() *view.View {
	return e.tree.ActiveView()
}

// ActiveBuffer returns the buffer shown in the active pane.
func (e *Editor) ActiveBuffer() *buffer.Buffer {
	return e.tree.ActiveView().Buffer()
}

// Split divides the active pane. The new pane shows the same buffer and
// becomes active.
func (e *Editor) Split(o viewport.Orientation) (viewport.LeafID, error) {
	return e.tree.Split(e.tree.Active(), o)
}

// ClosePane closes the active pane.
func (e *Editor) ClosePane() error {
	return e.tree.Close(e.tree.Active())
}

// Close closes every pane, releasing all buffers.
func (e *Editor) Close() {
	e.tree.CloseAll()
}

package viewport

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/dshills/paneedit/internal/engine/buffer"
	"github.com/dshills/paneedit/internal/view"
)

// LeafID identifies a pane.
type LeafID uint64

// Orientation is the direction a split divides its space.
type Orientation uint8

const (
	// Vertical places the two panes side by side, like vim's :vsplit.
	Vertical Orientation = iota
	// Horizontal stacks the two panes, like vim's :split.
	Horizontal
)

// String returns the orientation name.
func (o Orientation) String() string {
	if o == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// node is either a leaf holding a view or a split holding two children.
type node struct {
	parent *node

	id   LeafID
	view *view.View

	orientation   Orientation
	first, second *node
}

func (n *node) isLeaf() bool {
	return n.first == nil
}

// Tree arranges views in nested splits with exactly one active pane.
type Tree struct {
	root   *node
	leaves map[LeafID]*node
	active LeafID
	nextID LeafID

	releaser Releaser
	logger   zerolog.Logger
}

// New creates a tree with a single pane showing v.
func New(v *view.View, opts ...Option) *Tree {
	t := &Tree{
		leaves: make(map[LeafID]*node),
		logger: zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(t)
	}

	t.root = t.newLeaf(v)
	t.active = t.root.id
	return t
}

func (t *Tree) newLeaf(v *view.View) *node {
	t.nextID++
	n := &node{id: t.nextID, view: v}
	t.leaves[n.id] = n
	return n
}

func (t *Tree) leaf(id LeafID) (*node, error) {
	n, ok := t.leaves[id]
	if !ok {
		return nil, fmt.Errorf("pane %d: %w", id, ErrUnknownLeaf)
	}
	return n, nil
}

// Split divides a pane in two. The new pane gets a clone of the pane's
// view over the same buffer and becomes active.
func (t *Tree) Split(id LeafID, o Orientation) (LeafID, error) {
	n, err := t.leaf(id)
	if err != nil {
		return 0, err
	}

	added := t.newLeaf(n.view.Clone())
	split := &node{
		parent:      n.parent,
		orientation: o,
		first:       n,
		second:      added,
	}
	t.replace(n, split)
	n.parent = split
	added.parent = split

	t.active = added.id
	t.logger.Debug().
		Uint64("pane", uint64(id)).
		Uint64("new", uint64(added.id)).
		Stringer("orientation", o).
		Msg("pane split")
	return added.id, nil
}

// replace puts repl where old was in old's parent.
func (t *Tree) replace(old, repl *node) {
	p := old.parent
	repl.parent = p
	switch {
	case p == nil:
		t.root = repl
	case p.first == old:
		p.first = repl
	default:
		p.second = repl
	}
}

// Close removes a pane. Its sibling takes over the space and, if the
// closed pane was active, the sibling's first pane becomes active. The
// pane's view is closed and its buffer released when no pane shows it.
func (t *Tree) Close(id LeafID) error {
	n, err := t.leaf(id)
	if err != nil {
		return err
	}
	if len(t.leaves) == 1 {
		return ErrLastPane
	}

	split := n.parent
	sibling := split.first
	if sibling == n {
		sibling = split.second
	}
	t.replace(split, sibling)
	delete(t.leaves, id)

	if t.active == id {
		t.active = firstLeaf(sibling).id
	}

	t.dispose(n.view)
	t.logger.Debug().Uint64("pane", uint64(id)).Msg("pane closed")
	return nil
}

// dispose closes v and releases its buffer if no pane shows it.
func (t *Tree) dispose(v *view.View) {
	v.Close()
	buf := v.Buffer()
	if t.shows(buf) {
		return
	}
	t.logger.Debug().Str("buffer", buf.Name()).Msg("buffer no longer shown")
	if t.releaser != nil {
		t.releaser.Release(buf)
	}
}

// shows reports whether any pane shows buf.
func (t *Tree) shows(buf *buffer.Buffer) bool {
	for _, n := range t.leaves {
		if n.view.Buffer() == buf {
			return true
		}
	}
	return false
}

func firstLeaf(n *node) *node {
	for !n.isLeaf() {
		n = n.first
	}
	return n
}

// ReplaceView shows v in a pane, closing the view it had before.
func (t *Tree) ReplaceView(id LeafID, v *view.View) error {
	n, err := t.leaf(id)
	if err != nil {
		return err
	}
	old := n.view
	if old == v {
		return nil
	}
	n.view = v
	t.dispose(old)
	return nil
}

// Active returns the active pane.
func (t *Tree) Active() LeafID {
	return t.active
}

// ActiveView returns the view of the active pane.
func (t *Tree) ActiveView() *view.View {
	return t.leaves[t.active].view
}

// SetActive makes a pane active.
func (t *Tree) SetActive(id LeafID) error {
	if _, err := t.leaf(id); err != nil {
		return err
	}
	t.active = id
	return nil
}

// View returns the view of a pane.
func (t *Tree) View(id LeafID) (*view.View, error) {
	n, err := t.leaf(id)
	if err != nil {
		return nil, err
	}
	return n.view, nil
}

// Count returns the number of panes.
func (t *Tree) Count() int {
	return len(t.leaves)
}

// Leaves returns the pane IDs left to right, top to bottom.
func (t *Tree) Leaves() []LeafID {
	var ids []LeafID
	var walk func(n *node)
	walk = func(n *node) {
		if n.isLeaf() {
			ids = append(ids, n.id)
			return
		}
		walk(n.first)
		walk(n.second)
	}
	walk(t.root)
	return ids
}

// Views returns the views of all panes in Leaves order.
func (t *Tree) Views() []*view.View {
	ids := t.Leaves()
	views := make([]*view.View, len(ids))
	for i, id := range ids {
		views[i] = t.leaves[id].view
	}
	return views
}

// FocusNext activates the pane after the active one, wrapping around.
func (t *Tree) FocusNext() LeafID {
	return t.focus(1)
}

// FocusPrev activates the pane before the active one, wrapping around.
func (t *Tree) FocusPrev() LeafID {
	return t.focus(-1)
}

func (t *Tree) focus(delta int) LeafID {
	ids := t.Leaves()
	for i, id := range ids {
		if id == t.active {
			t.active = ids[(i+delta+len(ids))%len(ids)]
			break
		}
	}
	return t.active
}

// CloseAll closes every view, releasing their buffers. The tree must not
// be used afterwards.
func (t *Tree) CloseAll() {
	for _, id := range t.Leaves() {
		n := t.leaves[id]
		delete(t.leaves, id)
		t.dispose(n.view)
	}
}

package viewport

import "github.com/dshills/paneedit/internal/view"

// Rect is a screen rectangle in cells.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Pane is a laid-out pane.
type Pane struct {
	ID     LeafID
	View   *view.View
	Rect   Rect
	Active bool
}

// Divider is the one-cell gap between the two sides of a split.
type Divider struct {
	Rect        Rect
	Orientation Orientation
}

// Layout divides r between the panes. Each split gives its children
// equal shares, separated by a one-cell divider.
func (t *Tree) Layout(r Rect) []Pane {
	panes, _ := t.arrange(r)
	return panes
}

// Dividers returns the dividers between panes laid out in r.
func (t *Tree) Dividers(r Rect) []Divider {
	_, divs := t.arrange(r)
	return divs
}

func (t *Tree) arrange(r Rect) ([]Pane, []Divider) {
	var panes []Pane
	var divs []Divider

	var walk func(n *node, r Rect)
	walk = func(n *node, r Rect) {
		if n.isLeaf() {
			panes = append(panes, Pane{
				ID:     n.id,
				View:   n.view,
				Rect:   r,
				Active: n.id == t.active,
			})
			return
		}

		a, div, b := splitRect(r, n.orientation)
		divs = append(divs, Divider{Rect: div, Orientation: n.orientation})
		walk(n.first, a)
		walk(n.second, b)
	}
	walk(t.root, r)

	return panes, divs
}

// splitRect divides r into two halves and the divider between them.
func splitRect(r Rect, o Orientation) (Rect, Rect, Rect) {
	if o == Vertical {
		avail := max(r.Width-1, 0)
		left := avail / 2
		right := avail - left
		return Rect{X: r.X, Y: r.Y, Width: left, Height: r.Height},
			Rect{X: r.X + left, Y: r.Y, Width: min(r.Width, 1), Height: r.Height},
			Rect{X: r.X + left + 1, Y: r.Y, Width: right, Height: r.Height}
	}

	avail := max(r.Height-1, 0)
	top := avail / 2
	bottom := avail - top
	return Rect{X: r.X, Y: r.Y, Width: r.Width, Height: top},
		Rect{X: r.X, Y: r.Y + top, Width: r.Width, Height: min(r.Height, 1)},
		Rect{X: r.X, Y: r.Y + top + 1, Width: r.Width, Height: bottom}
}

package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/paneedit/internal/engine/buffer"
	"github.com/dshills/paneedit/internal/highlight"
	"github.com/dshills/paneedit/internal/view"
	"github.com/dshills/paneedit/internal/viewport"
)

// Painter draws a pane tree onto a tcell screen. Each pane shows its
// visible lines and, when at least two rows tall, a status line.
//
// Painting scrolls each view so its primary cursor is visible.
type Painter struct {
	screen tcell.Screen
	theme  Theme

	// highlighters per shown buffer, created when syntax colours are on.
	highlighters map[*buffer.Buffer]*highlight.Highlighter
}

// Option configures a Painter.
type Option func(*Painter)

// WithTheme sets the styles used for drawing.
func WithTheme(t Theme) Option {
	return func(p *Painter) {
		p.theme = t
	}
}

// New creates a painter for screen. The screen must be initialised.
func New(screen tcell.Screen, opts ...Option) *Painter {
	p := &Painter{
		screen:       screen,
		theme:        DefaultTheme(),
		highlighters: make(map[*buffer.Buffer]*highlight.Highlighter),
	}

	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Draw paints every pane and the dividers between them, then shows the
// screen.
func (p *Painter) Draw(tree *viewport.Tree) {
	w, h := p.screen.Size()
	area := viewport.Rect{Width: w, Height: h}

	p.screen.Clear()
	p.screen.HideCursor()

	shown := make(map[*buffer.Buffer]bool)
	for _, pane := range tree.Layout(area) {
		p.drawPane(pane)
		shown[pane.View.Buffer()] = true
	}
	for _, d := range tree.Dividers(area) {
		p.drawDivider(d)
	}
	p.prune(shown)

	p.screen.Show()
}

func (p *Painter) drawPane(pane viewport.Pane) {
	r := pane.Rect
	if r.Width <= 0 || r.Height <= 0 {
		return
	}

	textHeight := r.Height
	if r.Height >= 2 {
		textHeight--
	}

	v := pane.View
	v.EnsureVisible(textHeight, r.Width)
	f := v.Snapshot(textHeight)
	hl := p.highlighter(v.Buffer())

	for row := range textHeight {
		y := r.Y + row
		if row >= len(f.Lines) {
			p.fill(r.X, y, r.Width, ' ', p.theme.Text)
			p.screen.SetContent(r.X, y, '~', nil, p.theme.Filler)
			continue
		}
		p.drawLine(pane, f, f.Lines[row], y, hl)
	}

	if pane.Active {
		head := f.Primary
		x, y := head.Col-f.Scroll.Col, head.Line-f.Scroll.Line
		if x >= 0 && x < r.Width && y >= 0 && y < textHeight {
			p.screen.ShowCursor(r.X+x, r.Y+y)
		}
	}

	if r.Height >= 2 {
		p.drawStatus(pane, f, r.Y+r.Height-1)
	}
}

func (p *Painter) drawLine(pane viewport.Pane, f view.Frame, line view.Line, y int, hl *highlight.Highlighter) {
	r := pane.Rect
	runes := []rune(line.Text)

	var spans []highlight.Span
	if hl != nil {
		spans = hl.Spans(line.Number)
	}

	for x := range r.Width {
		col := f.Scroll.Col + x
		pos := buffer.Pos(line.Number, col)

		ch := ' '
		style := p.theme.Text
		if col < len(runes) {
			ch = runes[col]
			if ch == '\t' {
				ch = ' '
			}
			style = p.theme.tokenStyle(style, highlight.TypeAt(spans, col))
			if covered(f.Matches, pos) {
				style = p.theme.Match.Foreground(fgOf(style))
			}
		}

		if col <= len(runes) {
			switch {
			case covered(f.Selections, pos):
				style = p.theme.Selection
			case isCaret(f, pos) && !(pane.Active && pos == f.Primary):
				style = p.theme.Caret
			}
		}

		p.screen.SetContent(r.X+x, y, ch, nil, style)
	}
}

// isCaret reports whether pos holds a cursor head other than a
// selection end.
func isCaret(f view.Frame, pos buffer.Position) bool {
	for _, h := range f.Heads {
		if h == pos {
			return true
		}
	}
	return false
}

// covered reports whether pos lies inside one of ranges, end exclusive.
func covered(ranges []buffer.Range, pos buffer.Position) bool {
	for _, r := range ranges {
		if !pos.Before(r.Start) && pos.Before(r.End) {
			return true
		}
	}
	return false
}

func fgOf(s tcell.Style) tcell.Color {
	fg, _, _ := s.Decompose() //nolint:staticcheck // only the foreground is carried over
	return fg
}

func (p *Painter) drawStatus(pane viewport.Pane, f view.Frame, y int) {
	style := p.theme.Status
	if pane.Active {
		style = p.theme.StatusActive
	}

	name := f.Name
	if name == "" {
		name = "[No Name]"
	}
	left := " " + name
	if f.Modified {
		left += " [+]"
	}
	right := fmt.Sprintf("%d:%d ", f.Primary.Line+1, f.Primary.Col+1)

	r := pane.Rect
	p.fill(r.X, y, r.Width, ' ', style)
	p.puts(r.X, y, r.Width, left, style)
	if n := len([]rune(right)); len([]rune(left))+n < r.Width {
		p.puts(r.X+r.Width-n, y, n, right, style)
	}
}

func (p *Painter) drawDivider(d viewport.Divider) {
	ch := '│'
	if d.Orientation == viewport.Horizontal {
		ch = '─'
	}
	for y := d.Rect.Y; y < d.Rect.Y+d.Rect.Height; y++ {
		p.fill(d.Rect.X, y, d.Rect.Width, ch, p.theme.Divider)
	}
}

func (p *Painter) fill(x, y, width int, ch rune, style tcell.Style) {
	for i := range width {
		p.screen.SetContent(x+i, y, ch, nil, style)
	}
}

func (p *Painter) puts(x, y, width int, s string, style tcell.Style) {
	i := 0
	for _, ch := range s {
		if i >= width {
			return
		}
		p.screen.SetContent(x+i, y, ch, nil, style)
		i++
	}
}

// highlighter returns the highlighter of buf, or nil when syntax colours
// are off.
func (p *Painter) highlighter(buf *buffer.Buffer) *highlight.Highlighter {
	if p.theme.Syntax == nil {
		return nil
	}
	hl, ok := p.highlighters[buf]
	if !ok {
		hl = highlight.New(buf)
		p.highlighters[buf] = hl
	}
	return hl
}

// prune closes the highlighters of buffers no longer shown.
func (p *Painter) prune(shown map[*buffer.Buffer]bool) {
	for buf, hl := range p.highlighters {
		if !shown[buf] {
			hl.Close()
			delete(p.highlighters, buf)
		}
	}
}

// Close releases the painter's highlighters. The screen is left alone.
func (p *Painter) Close() {
	p.prune(nil)
}

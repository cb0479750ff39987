package render

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/paneedit/internal/viewport"
)

// Dump returns the screen contents as text, one line per row with
// trailing blanks trimmed.
func Dump(screen tcell.Screen) string {
	w, h := screen.Size()

	var sb strings.Builder
	for y := range h {
		var row strings.Builder
		for x := range w {
			ch, _, _, _ := screen.GetContent(x, y) //nolint:staticcheck // GetContent is the correct API
			if ch == 0 {
				ch = ' '
			}
			row.WriteRune(ch)
		}
		sb.WriteString(strings.TrimRight(row.String(), " "))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Text paints tree onto an off-screen terminal of the given size and
// returns the result as text.
func Text(tree *viewport.Tree, width, height int, opts ...Option) (string, error) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		return "", err
	}
	defer screen.Fini()
	screen.SetSize(width, height)

	p := New(screen, opts...)
	defer p.Close()
	p.Draw(tree)
	return Dump(screen), nil
}

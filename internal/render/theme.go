package render

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/gdamore/tcell/v2"
)

// Theme holds the styles of the screen elements.
type Theme struct {
	Text         tcell.Style
	Selection    tcell.Style
	Match        tcell.Style
	Caret        tcell.Style
	Filler       tcell.Style
	Divider      tcell.Style
	Status       tcell.Style
	StatusActive tcell.Style

	// Syntax colours token types. Nil disables highlighting.
	Syntax *chroma.Style
}

// DefaultTheme returns the built-in theme without syntax colours.
func DefaultTheme() Theme {
	return Theme{
		Text:         tcell.StyleDefault,
		Selection:    tcell.StyleDefault.Reverse(true),
		Match:        tcell.StyleDefault.Underline(true),
		Caret:        tcell.StyleDefault.Reverse(true),
		Filler:       tcell.StyleDefault.Foreground(tcell.ColorGray),
		Divider:      tcell.StyleDefault.Foreground(tcell.ColorGray),
		Status:       tcell.StyleDefault.Foreground(tcell.ColorGray).Reverse(true),
		StatusActive: tcell.StyleDefault.Bold(true).Reverse(true),
	}
}

// SyntaxStyle returns the chroma style called name, or the fallback
// style when there is none.
func SyntaxStyle(name string) *chroma.Style {
	return styles.Get(name)
}

// tokenStyle applies the syntax colours of tt on top of base.
func (t Theme) tokenStyle(base tcell.Style, tt chroma.TokenType) tcell.Style {
	if t.Syntax == nil {
		return base
	}

	e := t.Syntax.Get(tt)
	if e.Colour.IsSet() {
		base = base.Foreground(convertColour(e.Colour))
	}
	if e.Bold == chroma.Yes {
		base = base.Bold(true)
	}
	if e.Italic == chroma.Yes {
		base = base.Italic(true)
	}
	if e.Underline == chroma.Yes {
		base = base.Underline(true)
	}
	return base
}

func convertColour(c chroma.Colour) tcell.Color {
	return tcell.NewRGBColor(int32(c.Red()), int32(c.Green()), int32(c.Blue()))
}

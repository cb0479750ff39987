package highlight

import (
	"unicode/utf8"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"

	"github.com/dshills/paneedit/internal/engine/buffer"
)

// Span is a run of one token type on a line, in rune columns.
type Span struct {
	StartCol int
	EndCol   int
	Type     chroma.TokenType
}

// Highlighter produces spans for the lines of a buffer.
type Highlighter struct {
	buf    *buffer.Buffer
	lexer  chroma.Lexer
	cancel func()

	cache map[int][]Span

	// tokenised counts lines run through the lexer.
	tokenised int
}

// New creates a highlighter for buf. The lexer is chosen from the
// buffer name; unknown names get the fallback plain text lexer.
func New(buf *buffer.Buffer) *Highlighter {
	h := &Highlighter{
		buf:   buf,
		lexer: LexerFor(buf.Name()),
		cache: make(map[int][]Span),
	}
	h.cancel = buf.Observe(h.invalidate)
	return h
}

// LexerFor returns the lexer matching a file name, or the plain text
// lexer.
func LexerFor(name string) chroma.Lexer {
	lex := lexers.Match(name)
	if lex == nil {
		lex = lexers.Fallback
	}
	return chroma.Coalesce(lex)
}

// Language returns the name of the lexer in use.
func (h *Highlighter) Language() string {
	return h.lexer.Config().Name
}

// invalidate drops cached lines from the first changed line down; the
// lines below may have moved.
func (h *Highlighter) invalidate(e buffer.Edit) {
	from := e.Range.Start.Line
	for line := range h.cache {
		if line >= from {
			delete(h.cache, line)
		}
	}
}

// Spans returns the token spans of a line. Out of range lines have none.
func (h *Highlighter) Spans(line int) []Span {
	if spans, ok := h.cache[line]; ok {
		return spans
	}

	text, err := h.buf.Line(line)
	if err != nil {
		return nil
	}

	spans := h.tokenise(text)
	h.cache[line] = spans
	return spans
}

func (h *Highlighter) tokenise(text string) []Span {
	h.tokenised++
	if text == "" {
		return nil
	}

	it, err := h.lexer.Tokenise(nil, text)
	if err != nil {
		return []Span{{EndCol: utf8.RuneCountInString(text), Type: chroma.Text}}
	}

	var spans []Span
	col := 0
	for _, tok := range it.Tokens() {
		n := utf8.RuneCountInString(tok.Value)
		if n == 0 {
			continue
		}
		// Lexers add a trailing newline to the last token.
		end := min(col+n, utf8.RuneCountInString(text))
		if end > col {
			spans = append(spans, Span{StartCol: col, EndCol: end, Type: tok.Type})
		}
		col += n
	}
	return spans
}

// TypeAt returns the token type at a column, or chroma.Text.
func TypeAt(spans []Span, col int) chroma.TokenType {
	for _, s := range spans {
		if col >= s.StartCol && col < s.EndCol {
			return s.Type
		}
	}
	return chroma.Text
}

// Close stops observing the buffer.
func (h *Highlighter) Close() {
	if h.cancel != nil {
		h.cancel()
		h.cancel = nil
	}
}

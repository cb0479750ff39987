package search

import (
	"errors"
	"fmt"
	"iter"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/language"
	textsearch "golang.org/x/text/search"

	"github.com/dshills/paneedit/internal/engine/buffer"
)

// ErrInvalidPattern indicates a regular expression that does not compile.
var ErrInvalidPattern = errors.New("invalid search pattern")

// TextSource is the read-only view of a document that search needs.
// *buffer.Buffer satisfies it.
type TextSource interface {
	LineCount() int
	Line(line int) (string, error)
}

// Options control how a pattern is interpreted.
type Options struct {
	// Regexp treats the pattern as a regular expression.
	Regexp bool
	// IgnoreCase matches without regard to letter case.
	IgnoreCase bool
}

// Direction selects which way NextMatch looks.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// String returns the direction name.
func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// Matcher is a compiled pattern.
type Matcher struct {
	pattern string
	opts    Options
	re      *regexp.Regexp
	fold    *textsearch.Pattern
}

// Compile prepares pattern for matching.
func Compile(pattern string, opts Options) (*Matcher, error) {
	m := &Matcher{pattern: pattern, opts: opts}
	if pattern == "" {
		return m, nil
	}

	switch {
	case opts.Regexp:
		expr := pattern
		if opts.IgnoreCase {
			expr = "(?i)" + expr
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
		}
		m.re = re
	case opts.IgnoreCase:
		m.fold = textsearch.New(language.Und, textsearch.IgnoreCase).CompileString(pattern)
	}
	return m, nil
}

// Pattern returns the source pattern.
func (m *Matcher) Pattern() string {
	return m.pattern
}

// Options returns the options the matcher was compiled with.
func (m *Matcher) Options() Options {
	return m.opts
}

// Find returns the matches in src in buffer order. The sequence is lazy
// and can be ranged over more than once.
func (m *Matcher) Find(src TextSource) iter.Seq[buffer.Range] {
	return func(yield func(buffer.Range) bool) {
		if m.pattern == "" {
			return
		}
		for i := 0; i < src.LineCount(); i++ {
			line, err := src.Line(i)
			if err != nil {
				return
			}
			for start, end := range m.matchLine(line) {
				r := buffer.Range{
					Start: buffer.Pos(i, start),
					End:   buffer.Pos(i, end),
				}
				if !yield(r) {
					return
				}
			}
		}
	}
}

// matchLine yields rune column pairs of the matches in one line.
func (m *Matcher) matchLine(line string) iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		switch {
		case m.re != nil:
			for _, loc := range m.re.FindAllStringIndex(line, -1) {
				if !yield(runeCol(line, loc[0]), runeCol(line, loc[1])) {
					return
				}
			}
		default:
			offset := 0
			for offset <= len(line) {
				start, end := m.indexLiteral(line[offset:])
				if start < 0 {
					return
				}
				start += offset
				end += offset
				if !yield(runeCol(line, start), runeCol(line, end)) {
					return
				}
				if end > start {
					offset = end
				} else {
					_, size := utf8.DecodeRuneInString(line[start:])
					offset = start + max(size, 1)
				}
			}
		}
	}
}

func (m *Matcher) indexLiteral(s string) (int, int) {
	if m.fold != nil {
		return m.fold.IndexString(s)
	}
	i := strings.Index(s, m.pattern)
	if i < 0 {
		return -1, -1
	}
	return i, i + len(m.pattern)
}

func runeCol(line string, byteOffset int) int {
	return utf8.RuneCountInString(line[:byteOffset])
}

// Next returns the match following (or preceding) from, wrapping around
// the buffer. Forward picks the first match with Start >= from and
// End > from; Backward picks the last match with Start < from. It
// reports false only when there are no matches at all.
func (m *Matcher) Next(src TextSource, from buffer.Position, dir Direction) (buffer.Range, bool) {
	var first, last, found buffer.Range
	var seen, hit bool

	for r := range m.Find(src) {
		if !seen {
			first = r
			seen = true
		}
		last = r

		switch dir {
		case Forward:
			if !r.Start.Before(from) && r.End.After(from) {
				return r, true
			}
		case Backward:
			if r.Start.Before(from) {
				found, hit = r, true
			}
		}
	}

	if !seen {
		return buffer.Range{}, false
	}
	if dir == Backward {
		if hit {
			return found, true
		}
		return last, true
	}
	return first, true
}

// FindMatches compiles pattern and returns its matches in src.
// An empty pattern yields no matches.
func FindMatches(src TextSource, pattern string, opts Options) (iter.Seq[buffer.Range], error) {
	m, err := Compile(pattern, opts)
	if err != nil {
		return nil, err
	}
	return m.Find(src), nil
}

// NextMatch compiles pattern and returns the next match from from in
// direction dir. See Matcher.Next.
func NextMatch(src TextSource, pattern string, opts Options, from buffer.Position, dir Direction) (buffer.Range, bool, error) {
	m, err := Compile(pattern, opts)
	if err != nil {
		return buffer.Range{}, false, err
	}
	r, ok := m.Next(src, from, dir)
	return r, ok, nil
}

// Collect gathers a match sequence into a slice.
func Collect(seq iter.Seq[buffer.Range]) []buffer.Range {
	return slices.Collect(seq)
}

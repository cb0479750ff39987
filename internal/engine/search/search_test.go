package search

import (
	"errors"
	"testing"

	"github.com/dshills/paneedit/internal/engine/buffer"
)

func rng(sl, sc, el, ec int) buffer.Range {
	return buffer.Range{Start: buffer.Pos(sl, sc), End: buffer.Pos(el, ec)}
}

func TestFindMatchesLiteral(t *testing.T) {
	buf := buffer.NewBufferFromString("foo bar foo")

	seq, err := FindMatches(buf, "foo", Options{})
	if err != nil {
		t.Fatal(err)
	}
	got := Collect(seq)
	want := []buffer.Range{rng(0, 0, 0, 3), rng(0, 8, 0, 11)}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("match %d = %s, want %s", i, got[i], want[i])
		}
	}

	// The sequence is restartable.
	if n := len(Collect(seq)); n != 2 {
		t.Errorf("second pass should yield 2 matches, got %d", n)
	}
}

func TestNextMatchWraps(t *testing.T) {
	buf := buffer.NewBufferFromString("foo bar foo")

	r, ok, err := NextMatch(buf, "foo", Options{}, buffer.Pos(0, 11), Forward)
	if err != nil || !ok {
		t.Fatalf("expected a match, got ok=%v err=%v", ok, err)
	}
	if r != rng(0, 0, 0, 3) {
		t.Errorf("forward from end should wrap to (0,0)-(0,3), got %s", r)
	}

	r, _, _ = NextMatch(buf, "foo", Options{}, buffer.Pos(0, 1), Forward)
	if r != rng(0, 8, 0, 11) {
		t.Errorf("forward from inside first match should find second, got %s", r)
	}

	r, _, _ = NextMatch(buf, "foo", Options{}, buffer.Pos(0, 8), Backward)
	if r != rng(0, 0, 0, 3) {
		t.Errorf("backward from second match should find first, got %s", r)
	}

	r, _, _ = NextMatch(buf, "foo", Options{}, buffer.Pos(0, 0), Backward)
	if r != rng(0, 8, 0, 11) {
		t.Errorf("backward from start should wrap to last, got %s", r)
	}
}

func TestNextMatchNoMatches(t *testing.T) {
	buf := buffer.NewBufferFromString("nothing here")
	_, ok, err := NextMatch(buf, "zzz", Options{}, buffer.Pos(0, 0), Forward)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("expected no match")
	}
}

func TestEmptyPattern(t *testing.T) {
	buf := buffer.NewBufferFromString("abc")
	seq, err := FindMatches(buf, "", Options{})
	if err != nil {
		t.Fatal(err)
	}
	if n := len(Collect(seq)); n != 0 {
		t.Errorf("empty pattern should match nothing, got %d", n)
	}
}

func TestMatchesDoNotSpanLines(t *testing.T) {
	buf := buffer.NewBufferFromString("ab\ncd\nab")
	seq, _ := FindMatches(buf, "b\nc", Options{})
	if n := len(Collect(seq)); n != 0 {
		t.Errorf("matches must not cross lines, got %d", n)
	}

	seq, _ = FindMatches(buf, "ab", Options{})
	got := Collect(seq)
	if len(got) != 2 || got[1] != rng(2, 0, 2, 2) {
		t.Errorf("unexpected matches %v", got)
	}
}

func TestRuneColumns(t *testing.T) {
	buf := buffer.NewBufferFromString("ééfoo")
	seq, _ := FindMatches(buf, "foo", Options{})
	got := Collect(seq)
	if len(got) != 1 || got[0] != rng(0, 2, 0, 5) {
		t.Errorf("columns should count runes, got %v", got)
	}
}

func TestIgnoreCase(t *testing.T) {
	buf := buffer.NewBufferFromString("Foo FOO foo")

	tests := []struct {
		name string
		opts Options
		want int
	}{
		{"literal sensitive", Options{}, 1},
		{"literal insensitive", Options{IgnoreCase: true}, 3},
		{"regexp sensitive", Options{Regexp: true}, 1},
		{"regexp insensitive", Options{Regexp: true, IgnoreCase: true}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq, err := FindMatches(buf, "foo", tt.opts)
			if err != nil {
				t.Fatal(err)
			}
			if n := len(Collect(seq)); n != tt.want {
				t.Errorf("expected %d matches, got %d", tt.want, n)
			}
		})
	}
}

func TestRegexp(t *testing.T) {
	buf := buffer.NewBufferFromString("a1 b22 c333")
	seq, err := FindMatches(buf, `[0-9]+`, Options{Regexp: true})
	if err != nil {
		t.Fatal(err)
	}
	got := Collect(seq)
	want := []buffer.Range{rng(0, 1, 0, 2), rng(0, 4, 0, 6), rng(0, 8, 0, 11)}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("match %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestInvalidRegexp(t *testing.T) {
	buf := buffer.NewBufferFromString("abc")
	_, err := FindMatches(buf, "(", Options{Regexp: true})
	if !errors.Is(err, ErrInvalidPattern) {
		t.Errorf("expected ErrInvalidPattern, got %v", err)
	}
	_, _, err = NextMatch(buf, "[", Options{Regexp: true}, buffer.Pos(0, 0), Forward)
	if !errors.Is(err, ErrInvalidPattern) {
		t.Errorf("expected ErrInvalidPattern, got %v", err)
	}
}

func TestZeroWidthMatchAtFromIsSkipped(t *testing.T) {
	buf := buffer.NewBufferFromString("ab\ncd")
	r, ok, err := NextMatch(buf, "^", Options{Regexp: true}, buffer.Pos(0, 0), Forward)
	if err != nil || !ok {
		t.Fatalf("expected match, got ok=%v err=%v", ok, err)
	}
	if r.Start != buffer.Pos(1, 0) {
		t.Errorf("zero-width match at from should be skipped, got %s", r)
	}
}

func TestStopEarly(t *testing.T) {
	buf := buffer.NewBufferFromString("x x x x")
	m, err := Compile("x", Options{})
	if err != nil {
		t.Fatal(err)
	}
	n := 0
	for range m.Find(buf) {
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Errorf("expected to stop after 2, got %d", n)
	}
}

// Package search finds pattern matches in line-oriented text.
//
// Matching is done line by line, so a match never spans a line break.
// Literal patterns are matched exactly, or with golang.org/x/text/search
// when case is ignored; regular expressions use the regexp package.
//
// Basic usage:
//
//	for r := range search.FindMatches(buf, "foo", search.Options{}) {
//	    // r is a buffer.Range
//	}
//
//	next, ok, err := search.NextMatch(buf, "foo", search.Options{}, pos, search.Forward)
package search

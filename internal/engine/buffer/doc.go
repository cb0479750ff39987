// Package buffer provides the text buffer at the bottom of the editing
// core. A Buffer stores lines of runes and applies two primitive
// mutations, Insert and Delete, each of which yields an immutable Edit
// that can be inverted and replayed.
//
// The buffer package provides:
//
//   - Line/column positions with rune columns
//   - Reversible Edit values for undo/redo
//   - Synchronous change observers for views and highlighters
//   - Diff-based whole-content replacement for reloads
//   - Line ending detection and normalization
//
// Basic usage:
//
//	buf := buffer.NewBufferFromString("Hello, World!")
//
//	// Insert text
//	e, _ := buf.Insert(buffer.Pos(0, 7), "Beautiful ") // "Hello, Beautiful World!"
//
//	// Undo it by applying the inverse
//	buf.Apply(e.Invert()) // "Hello, World!"
//
// Positions:
//
// A Position is valid when Line < LineCount() and Col <= LineLen(Line).
// Operations given an invalid position fail with ErrOutOfBounds; they
// never clamp. Clamp exists for navigation code that wants the nearest
// valid position.
//
// Thread Safety:
//
// Buffer is not safe for concurrent use. The editing core runs on a
// single goroutine and observers are called synchronously.
package buffer

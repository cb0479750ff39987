// Package view provides a window onto a text buffer.
//
// A View owns a selection set, a scroll offset and the last search query
// for one buffer. Any number of views may share a buffer: each registers
// an observer and fixes up its own cursors after every edit, no matter
// which view made it.
//
// Every editing command goes through ApplyForAllCursors, which visits
// cursors in buffer order, applies one primitive per cursor and commits
// the resulting edits to the buffer's history as a single group, so one
// undo reverts the whole multi-cursor edit.
//
// Basic usage:
//
//	buf := buffer.NewBufferFromString("hello\nworld")
//	v := view.New(buf)
//	v.MoveLineEnd(false)
//	v.AddCursorBelow()
//	v.InsertText("!") // "hello!\nworld!"
//	v.Undo()          // "hello\nworld"
package view

// Package script runs Lua against an editor.
//
// Scripts see a global table named editor:
//
//	editor.open("notes.txt", "hello\nworld")
//	editor.set_cursor(1, 6)
//	editor.add_cursor(2, 6)
//	editor.insert("!")
//	print(editor.text())
//
// Lines and columns are 1-based. Errors from the editor are raised as
// Lua errors and end the run unless caught with pcall. The state is
// sandboxed: only the base, table, string and math libraries are open,
// code cannot be loaded from files or strings, and print writes to the
// engine's output. Each run is bounded by a timeout.
package script

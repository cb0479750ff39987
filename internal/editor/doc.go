// Package editor ties buffers, views and the pane tree together.
//
// An Editor keeps a registry of open buffers keyed by ID. Opening a name
// that is already open reuses its buffer. A buffer leaves the registry
// when the last pane showing it closes or shows something else.
//
//	ed := editor.New(editor.WithHistoryLimit(1000))
//	buf, _ := ed.Open("main.go", src)
//	ed.ActiveView().InsertText("// edited\n")
//	ed.Split(viewport.Vertical)
package editor

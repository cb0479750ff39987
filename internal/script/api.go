package script

import (
	"fmt"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/paneedit/internal/engine/buffer"
	"github.com/dshills/paneedit/internal/engine/history"
	"github.com/dshills/paneedit/internal/engine/search"
	"github.com/dshills/paneedit/internal/view"
	"github.com/dshills/paneedit/internal/viewport"
)

// register installs the global editor table. Positions are 1-based in
// Lua and converted at this boundary.
func (e *Engine) register() {
	mod := e.L.NewTable()

	funcs := map[string]lua.LGFunction{
		// Buffers
		"text":   e.text,
		"line":   e.line,
		"lines":  e.lineCount,
		"name":   e.name,
		"open":   e.open,
		"reload": e.reload,

		// Editing
		"insert":      e.insert,
		"newline":     e.newline,
		"delete":      e.deleteForward,
		"backspace":   e.deleteBackward,
		"undo":        e.undo,
		"redo":        e.redo,
		"transaction": e.transaction,
		"checkpoint":  e.checkpoint,
		"undo_to":     e.undoTo,

		// Cursors
		"move":       e.move,
		"add_cursor": e.addCursor,
		"set_cursor": e.setCursor,
		"select":     e.selectRange,
		"cursors":    e.cursors,
		"selected":   e.selected,
		"collapse":   e.collapse,

		// Search
		"find":               e.find,
		"find_next":          e.findNext,
		"find_prev":          e.findPrev,
		"select_all_matches": e.selectAllMatches,

		// Panes
		"split":      e.split,
		"close":      e.closePane,
		"focus_next": e.focusNext,
		"focus_prev": e.focusPrev,
		"panes":      e.panes,
	}
	for name, fn := range funcs {
		e.L.SetField(mod, name, e.L.NewFunction(fn))
	}

	e.L.SetGlobal("editor", mod)
}

func (e *Engine) active() *view.View {
	return e.ed.ActiveView()
}

// checkPos reads a 1-based (line, col) pair starting at argument n.
func checkPos(L *lua.LState, n int) buffer.Position {
	line := L.CheckInt(n)
	col := L.CheckInt(n + 1)
	if line < 1 {
		L.ArgError(n, "line must be >= 1")
	}
	if col < 1 {
		L.ArgError(n+1, "column must be >= 1")
	}
	return buffer.Pos(line-1, col-1)
}

func posTable(L *lua.LState, p buffer.Position) *lua.LTable {
	tbl := L.NewTable()
	L.SetField(tbl, "line", lua.LNumber(p.Line+1))
	L.SetField(tbl, "col", lua.LNumber(p.Col+1))
	return tbl
}

// print(...) writes its arguments separated by tabs.
func (e *Engine) print(L *lua.LState) int {
	n := L.GetTop()
	parts := make([]string, n)
	for i := 1; i <= n; i++ {
		parts[i-1] = L.ToStringMeta(L.Get(i)).String()
	}
	fmt.Fprintln(e.out, strings.Join(parts, "\t"))
	return 0
}

// text() -> string
func (e *Engine) text(L *lua.LState) int {
	L.Push(lua.LString(e.active().Buffer().Text()))
	return 1
}

// line(n) -> string
func (e *Engine) line(L *lua.LState) int {
	n := L.CheckInt(1)
	s, err := e.active().Buffer().Line(n - 1)
	if err != nil {
		L.RaiseError("line: %v", err)
		return 0
	}
	L.Push(lua.LString(s))
	return 1
}

// lines() -> number
func (e *Engine) lineCount(L *lua.LState) int {
	L.Push(lua.LNumber(e.active().Buffer().LineCount()))
	return 1
}

// name() -> string
func (e *Engine) name(L *lua.LState) int {
	L.Push(lua.LString(e.active().Buffer().Name()))
	return 1
}

// open(name, [content]) shows a buffer in the active pane.
func (e *Engine) open(L *lua.LState) int {
	name := L.CheckString(1)
	content := L.OptString(2, "")
	if _, err := e.ed.Open(name, content); err != nil {
		L.RaiseError("open: %v", err)
	}
	return 0
}

// reload(content) replaces the active buffer's content with a line diff.
func (e *Engine) reload(L *lua.LState) int {
	content := L.CheckString(1)
	if err := e.ed.Reload(e.active().Buffer().ID(), content); err != nil {
		L.RaiseError("reload: %v", err)
	}
	return 0
}

func (e *Engine) edit(L *lua.LState, op string, fn func() error) int {
	if err := fn(); err != nil {
		L.RaiseError("%s: %v", op, err)
	}
	return 0
}

// insert(s) replaces every selection with s.
func (e *Engine) insert(L *lua.LState) int {
	s := L.CheckString(1)
	return e.edit(L, "insert", func() error { return e.active().InsertText(s) })
}

// newline() breaks the line at every cursor.
func (e *Engine) newline(L *lua.LState) int {
	return e.edit(L, "newline", e.active().InsertNewline)
}

// delete() removes each selection or the character after each caret.
func (e *Engine) deleteForward(L *lua.LState) int {
	return e.edit(L, "delete", e.active().DeleteForward)
}

// backspace() removes each selection or the character before each caret.
func (e *Engine) deleteBackward(L *lua.LState) int {
	return e.edit(L, "backspace", e.active().DeleteBackward)
}

// undo() -> bool
func (e *Engine) undo(L *lua.LState) int {
	ok, err := e.active().Undo()
	if err != nil {
		L.RaiseError("undo: %v", err)
		return 0
	}
	L.Push(lua.LBool(ok))
	return 1
}

// redo() -> bool
func (e *Engine) redo(L *lua.LState) int {
	ok, err := e.active().Redo()
	if err != nil {
		L.RaiseError("redo: %v", err)
		return 0
	}
	L.Push(lua.LBool(ok))
	return 1
}

// transaction([name], fn) records every edit fn makes to the active
// buffer as one undo group. Edits made before an error stay grouped and
// the error is raised again.
func (e *Engine) transaction(L *lua.LState) int {
	name := "Script"
	fnIdx := 1
	if L.Get(1).Type() == lua.LTString {
		name = L.CheckString(1)
		fnIdx = 2
	}
	fn := L.CheckFunction(fnIdx)

	h := e.active().Buffer().History()
	err := h.Transaction(name, func() error {
		return L.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true})
	})
	if err != nil {
		L.RaiseError("transaction %q: %v", name, err)
	}
	return 0
}

// checkpointRef ties a history checkpoint to the buffer it was taken in.
type checkpointRef struct {
	buf *buffer.Buffer
	cp  history.Checkpoint
}

// checkpoint() -> checkpoint of the active buffer's history.
func (e *Engine) checkpoint(L *lua.LState) int {
	buf := e.active().Buffer()
	ud := L.NewUserData()
	ud.Value = checkpointRef{buf: buf, cp: buf.History().CreateCheckpoint()}
	L.Push(ud)
	return 1
}

// undo_to(checkpoint) -> number of groups undone.
func (e *Engine) undoTo(L *lua.LState) int {
	ud := L.CheckUserData(1)
	ref, ok := ud.Value.(checkpointRef)
	if !ok {
		L.ArgError(1, "checkpoint expected")
		return 0
	}
	v := e.active()
	if ref.buf != v.Buffer() {
		L.RaiseError("undo_to: checkpoint belongs to buffer %q", ref.buf.Name())
		return 0
	}
	n, err := v.UndoTo(ref.cp)
	if err != nil {
		L.RaiseError("undo_to: %v", err)
		return 0
	}
	L.Push(lua.LNumber(n))
	return 1
}

var motions = map[string]func(v *view.View, extend bool){
	"left":       (*view.View).MoveLeft,
	"right":      (*view.View).MoveRight,
	"up":         (*view.View).MoveUp,
	"down":       (*view.View).MoveDown,
	"word_left":  (*view.View).MoveWordLeft,
	"word_right": (*view.View).MoveWordRight,
	"line_start": (*view.View).MoveLineStart,
	"line_end":   (*view.View).MoveLineEnd,
	"doc_start":  (*view.View).MoveDocStart,
	"doc_end":    (*view.View).MoveDocEnd,
}

// move(direction, [extend], [count]) moves every cursor.
func (e *Engine) move(L *lua.LState) int {
	dir := L.CheckString(1)
	extend := L.OptBool(2, false)
	count := L.OptInt(3, 1)

	motion, ok := motions[dir]
	if !ok {
		L.ArgError(1, fmt.Sprintf("unknown direction %q", dir))
		return 0
	}
	for range count {
		motion(e.active(), extend)
	}
	return 0
}

// add_cursor(line, col) adds a caret and makes it primary.
func (e *Engine) addCursor(L *lua.LState) int {
	pos := checkPos(L, 1)
	return e.edit(L, "add_cursor", func() error { return e.active().AddCursorAt(pos) })
}

// set_cursor(line, col) replaces all cursors with one caret.
func (e *Engine) setCursor(L *lua.LState) int {
	pos := checkPos(L, 1)
	v := e.active()
	if !v.Buffer().Valid(pos) {
		L.RaiseError("set_cursor: position %s: %v", pos, buffer.ErrOutOfBounds)
		return 0
	}
	v.Cursors().Reset(pos)
	return 0
}

// select(line, col, line, col) replaces all cursors with one selection
// from the first position (anchor) to the second (head).
func (e *Engine) selectRange(L *lua.LState) int {
	anchor := checkPos(L, 1)
	head := checkPos(L, 3)
	v := e.active()
	if !v.Buffer().Valid(anchor) || !v.Buffer().Valid(head) {
		L.RaiseError("select: %v", buffer.ErrOutOfBounds)
		return 0
	}
	v.Cursors().Reset(anchor)
	if err := v.Cursors().MoveHead(v.Cursors().Primary().ID, head, true); err != nil {
		L.RaiseError("select: %v", err)
	}
	return 0
}

// cursors() -> {{anchor={line,col}, head={line,col}, primary=bool}, ...}
// in buffer order.
func (e *Engine) cursors(L *lua.LState) int {
	sel := e.active().Cursors()
	primary := sel.Primary().ID

	tbl := L.NewTable()
	for _, c := range sel.Sorted() {
		entry := L.NewTable()
		L.SetField(entry, "anchor", posTable(L, c.Anchor))
		L.SetField(entry, "head", posTable(L, c.Head))
		L.SetField(entry, "primary", lua.LBool(c.ID == primary))
		tbl.Append(entry)
	}
	L.Push(tbl)
	return 1
}

// selected() -> {string, ...} the selected text of every cursor in
// buffer order.
func (e *Engine) selected(L *lua.LState) int {
	v := e.active()
	tbl := L.NewTable()
	for _, c := range v.Cursors().Sorted() {
		s, err := v.Buffer().Read(c.Range())
		if err != nil {
			L.RaiseError("selected: %v", err)
			return 0
		}
		tbl.Append(lua.LString(s))
	}
	L.Push(tbl)
	return 1
}

// collapse() turns every selection into a caret at its head.
func (e *Engine) collapse(L *lua.LState) int {
	e.active().CollapseSelections()
	return 0
}

// find(pattern, [{regexp=bool, ignore_case=bool}]) -> number of matches
func (e *Engine) find(L *lua.LState) int {
	pattern := L.CheckString(1)
	v := e.active()

	var err error
	if opts, ok := L.Get(2).(*lua.LTable); ok {
		err = v.Find(pattern, search.Options{
			Regexp:     lua.LVAsBool(L.GetField(opts, "regexp")),
			IgnoreCase: lua.LVAsBool(L.GetField(opts, "ignore_case")),
		})
	} else {
		err = v.Find(pattern)
	}
	if err != nil {
		L.RaiseError("find: %v", err)
		return 0
	}

	L.Push(lua.LNumber(len(v.Matches())))
	return 1
}

// find_next() -> bool
func (e *Engine) findNext(L *lua.LState) int {
	ok, err := e.active().FindNext()
	if err != nil {
		L.RaiseError("find_next: %v", err)
		return 0
	}
	L.Push(lua.LBool(ok))
	return 1
}

// find_prev() -> bool
func (e *Engine) findPrev(L *lua.LState) int {
	ok, err := e.active().FindPrev()
	if err != nil {
		L.RaiseError("find_prev: %v", err)
		return 0
	}
	L.Push(lua.LBool(ok))
	return 1
}

// select_all_matches() -> number of cursors
func (e *Engine) selectAllMatches(L *lua.LState) int {
	L.Push(lua.LNumber(e.active().SelectAllMatches()))
	return 1
}

// split(["vertical"|"horizontal"]) -> pane id
func (e *Engine) split(L *lua.LState) int {
	var o viewport.Orientation
	switch s := L.OptString(1, "vertical"); s {
	case "vertical", "v":
		o = viewport.Vertical
	case "horizontal", "h":
		o = viewport.Horizontal
	default:
		L.ArgError(1, fmt.Sprintf("unknown orientation %q", s))
		return 0
	}

	id, err := e.ed.Split(o)
	if err != nil {
		L.RaiseError("split: %v", err)
		return 0
	}
	L.Push(lua.LNumber(id))
	return 1
}

// close() closes the active pane.
func (e *Engine) closePane(L *lua.LState) int {
	return e.edit(L, "close", e.ed.ClosePane)
}

// focus_next() -> pane id
func (e *Engine) focusNext(L *lua.LState) int {
	L.Push(lua.LNumber(e.ed.Tree().FocusNext()))
	return 1
}

// focus_prev() -> pane id
func (e *Engine) focusPrev(L *lua.LState) int {
	L.Push(lua.LNumber(e.ed.Tree().FocusPrev()))
	return 1
}

// panes() -> number
func (e *Engine) panes(L *lua.LState) int {
	L.Push(lua.LNumber(e.ed.Tree().Count()))
	return 1
}

package script

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/paneedit/internal/editor"
)

// Engine runs Lua code against an editor in a sandboxed state.
//
// Only the base, table, string and math libraries are available; there
// is no io, os, debug or package access. The editor is exposed as the
// global table "editor".
//
// An Engine is not safe for concurrent use.
type Engine struct {
	L  *lua.LState
	ed *editor.Editor

	timeout time.Duration
	out     io.Writer
	logger  zerolog.Logger
	closed  bool
}

// New creates an engine bound to ed.
func New(ed *editor.Editor, opts ...Option) (*Engine, error) {
	e := &Engine{
		ed:      ed,
		timeout: DefaultTimeout,
		out:     io.Discard,
		logger:  zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(e)
	}

	e.L = lua.NewState(lua.Options{SkipOpenLibs: true})
	if err := openSafeLibraries(e.L); err != nil {
		e.L.Close()
		return nil, err
	}
	e.installSandbox()
	e.register()
	return e, nil
}

// openSafeLibraries opens only the libraries that cannot reach outside
// the process.
func openSafeLibraries(L *lua.LState) error {
	libs := []struct {
		name string
		open lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	}

	for _, lib := range libs {
		err := L.CallByParam(lua.P{
			Fn:      L.NewFunction(lib.open),
			NRet:    0,
			Protect: true,
		}, lua.LString(lib.name))
		if err != nil {
			return fmt.Errorf("open %s library: %w", lib.name, err)
		}
	}
	return nil
}

// installSandbox removes base functions that load code from files or
// strings and routes print to the engine's output.
func (e *Engine) installSandbox() {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "module"} {
		e.L.SetGlobal(name, lua.LNil)
	}
	e.L.SetGlobal("print", e.L.NewFunction(e.print))
}

// DoString runs a chunk of Lua code.
func (e *Engine) DoString(ctx context.Context, code string) error {
	return e.run(ctx, "<string>", func() error {
		return e.L.DoString(code)
	})
}

// DoFile runs the Lua file at path.
func (e *Engine) DoFile(ctx context.Context, path string) error {
	return e.run(ctx, path, func() error {
		return e.L.DoFile(path)
	})
}

func (e *Engine) run(ctx context.Context, name string, fn func() error) (err error) {
	if e.closed {
		return ErrStateClosed
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}
	e.L.SetContext(ctx)
	defer e.L.RemoveContext()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
		if err != nil {
			e.logger.Warn().Err(err).Str("script", name).Msg("script failed")
		}
	}()

	if err := fn(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("%s: %w", name, ErrTimeout)
		}
		if ctx.Err() != nil {
			return fmt.Errorf("%s: %w", name, ctx.Err())
		}
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// Close releases the Lua state. Further runs return ErrStateClosed.
func (e *Engine) Close() {
	if e.closed {
		return
	}
	e.L.Close()
	e.closed = true
}

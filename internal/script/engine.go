package script

import (
	"context"
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/wobl/internal/input/key"
	"github.com/dshills/wobl/internal/logging"
	"github.com/dshills/wobl/internal/renderer/core"
)

// Grid is the drawing surface exposed to scripts.
// *renderer.Renderer implements it.
type Grid interface {
	Size() (width, height int)
	DrawCell(x, y int, cell core.Cell)
	DrawTextAttr(x, y int, text string, fg, bg core.Color, attrs core.Attribute)
	Clear()
	Present() error
	SetFPS(fps int)
	FPS() int
	IsKeyPressed(k key.Key) bool
	IsKeyJustPressed(k key.Key) bool
	IsKeyJustReleased(k key.Key) bool
	QuitRequested() bool
}

// Engine owns a sandboxed Lua state bound to a grid.
//
// gopher-lua states are not goroutine-safe. An Engine must be used from a
// single goroutine.
type Engine struct {
	L      *lua.LState
	grid   Grid
	logger *logging.Logger
	frames uint64
	closed bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger routes print and wobl.log output to logger.
func WithLogger(logger *logging.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New creates an engine with the wobl API installed.
func New(grid Grid, opts ...Option) *Engine {
	e := &Engine{
		grid:   grid,
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.WithComponent("script")

	e.L = lua.NewState(lua.Options{
		SkipOpenLibs: true,
	})
	openSafeLibraries(e.L)
	e.install()
	return e
}

// openSafeLibraries opens the pure libraries and removes the loaders.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require"} {
		L.SetGlobal(name, lua.LNil)
	}
}

// DoFile loads and runs a script file.
func (e *Engine) DoFile(path string) error {
	if e.closed {
		return ErrClosed
	}
	return e.protect(func() error {
		return e.L.DoFile(path)
	})
}

// DoString runs a chunk of Lua source.
func (e *Engine) DoString(code string) error {
	if e.closed {
		return ErrClosed
	}
	return e.protect(func() error {
		return e.L.DoString(code)
	})
}

func (e *Engine) protect(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn()
}

// Frame calls frame(n) with the next frame number. It reports false when
// the script asked to stop.
func (e *Engine) Frame() (bool, error) {
	if e.closed {
		return false, ErrClosed
	}
	fn, ok := e.L.GetGlobal("frame").(*lua.LFunction)
	if !ok {
		return false, ErrNoFrame
	}

	e.frames++
	err := e.protect(func() error {
		return e.L.CallByParam(lua.P{
			Fn:      fn,
			NRet:    1,
			Protect: true,
		}, lua.LNumber(e.frames))
	})
	if err != nil {
		return false, fmt.Errorf("frame %d: %w", e.frames, err)
	}

	ret := e.L.Get(-1)
	e.L.Pop(1)
	return ret != lua.LFalse, nil
}

// Frames returns how many times frame(n) has been called.
func (e *Engine) Frames() uint64 {
	return e.frames
}

// Run calls frame(n) and presents the grid until the script returns false,
// the backend requests quit, or ctx is done. A cancelled context also
// interrupts a script that is still running.
func (e *Engine) Run(ctx context.Context) error {
	if e.closed {
		return ErrClosed
	}
	e.L.SetContext(ctx)
	defer e.L.RemoveContext()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		more, err := e.Frame()
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			return err
		}
		if !more {
			e.logger.Debug("script stopped after %d frames", e.frames)
			return nil
		}
		if err := e.grid.Present(); err != nil {
			return err
		}
		if e.grid.QuitRequested() {
			e.logger.Info("quit requested after %d frames", e.frames)
			return nil
		}
	}
}

// Close releases the Lua state. Calling Close more than once is a no-op.
func (e *Engine) Close() {
	if e.closed {
		return
	}
	e.closed = true
	e.L.Close()
}

// Run loads the script at path and runs it against grid.
func Run(ctx context.Context, grid Grid, path string, opts ...Option) error {
	e := New(grid, opts...)
	defer e.Close()

	if err := e.DoFile(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return e.Run(ctx)
}

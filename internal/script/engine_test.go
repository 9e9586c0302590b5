package script

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/wobl/internal/input/key"
	"github.com/dshills/wobl/internal/logging"
	"github.com/dshills/wobl/internal/renderer"
	"github.com/dshills/wobl/internal/renderer/backend"
	"github.com/dshills/wobl/internal/renderer/core"
)

func newTestGrid(t *testing.T) (*renderer.Renderer, *backend.NullBackend) {
	t.Helper()
	b := backend.NewNullBackend(backend.ModeDiff)
	r, err := renderer.New(b, renderer.Options{Title: "script", Width: 8, Height: 3})
	if err != nil {
		t.Fatalf("renderer.New failed: %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r, b
}

func newTestEngine(t *testing.T, code string) (*Engine, *renderer.Renderer, *backend.NullBackend) {
	t.Helper()
	r, b := newTestGrid(t)
	e := New(r)
	t.Cleanup(e.Close)
	if err := e.DoString(code); err != nil {
		t.Fatalf("DoString failed: %v", err)
	}
	return e, r, b
}

func TestDrawText(t *testing.T) {
	e, r, _ := newTestEngine(t, `
function frame(n)
  wobl.draw_text(1, 0, "hi", "red", "blue", "bold,underline")
  return false
end`)

	more, err := e.Frame()
	if err != nil {
		t.Fatalf("Frame failed: %v", err)
	}
	if more {
		t.Error("expected frame to stop")
	}

	want := core.NewCell('h', core.ColorRed, core.ColorBlue, core.Attributes(core.AttrBold, core.AttrUnderline))
	if got := r.Back(1, 0); !got.Equals(want) {
		t.Errorf("expected %+v, got %+v", want, got)
	}
	if got := r.Back(2, 0).Rune(); got != 'i' {
		t.Errorf("expected 'i', got %q", got)
	}
}

func TestDrawCellDefaults(t *testing.T) {
	e, r, _ := newTestEngine(t, `
function frame(n)
  wobl.draw_cell(0, 2, "#")
  wobl.draw_cell(1, 2, "")
  wobl.draw_cell(2, 2, "xyz")
end`)

	if _, err := e.Frame(); err != nil {
		t.Fatalf("Frame failed: %v", err)
	}
	want := core.NewCell('#', core.ColorReset, core.ColorReset, core.AttrNone)
	if got := r.Back(0, 2); !got.Equals(want) {
		t.Errorf("expected %+v, got %+v", want, got)
	}
	if got := r.Back(1, 2).Rune(); got != ' ' {
		t.Errorf("empty glyph should draw a space, got %q", got)
	}
	if got := r.Back(2, 2).Grapheme; got != "x" {
		t.Errorf("expected first grapheme only, got %q", got)
	}
}

func TestBadArguments(t *testing.T) {
	tests := []struct {
		name string
		code string
	}{
		{"bad color", `wobl.draw_text(0, 0, "x", "mauve-ish")`},
		{"bad attribute", `wobl.draw_text(0, 0, "x", "red", "reset", "sparkle")`},
		{"bad key", `wobl.pressed("hyper")`},
		{"missing text", `wobl.draw_text(0, 0)`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newTestGrid(t)
			e := New(r)
			defer e.Close()
			if err := e.DoString(tt.code); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestRunStopsOnFalse(t *testing.T) {
	e, _, b := newTestEngine(t, `
function frame(n)
  wobl.draw_text(0, 0, tostring(n))
  if n == 3 then
    return false
  end
end`)

	if err := e.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if e.Frames() != 3 {
		t.Errorf("expected 3 frames, got %d", e.Frames())
	}
	// the stopping frame is not presented
	if b.Flushes() != 2 {
		t.Errorf("expected 2 presents, got %d", b.Flushes())
	}
}

func TestRunStopsOnQuit(t *testing.T) {
	e, _, b := newTestEngine(t, `function frame(n) end`)
	b.RequestQuit()

	if err := e.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if e.Frames() != 1 {
		t.Errorf("expected 1 frame, got %d", e.Frames())
	}
}

func TestRunCancelled(t *testing.T) {
	e, _, _ := newTestEngine(t, `function frame(n) end`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := e.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRunPresentError(t *testing.T) {
	e, _, b := newTestEngine(t, `function frame(n) end`)
	b.FailFlush(backend.ErrInjected)

	if err := e.Run(context.Background()); !errors.Is(err, backend.ErrInjected) {
		t.Errorf("expected injected error, got %v", err)
	}
}

func TestFrameErrors(t *testing.T) {
	e, _, _ := newTestEngine(t, `x = 1`)
	if _, err := e.Frame(); !errors.Is(err, ErrNoFrame) {
		t.Errorf("expected ErrNoFrame, got %v", err)
	}

	e2, _, _ := newTestEngine(t, `function frame(n) error("boom") end`)
	_, err := e2.Frame()
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Errorf("expected script error, got %v", err)
	}
	if !strings.Contains(err.Error(), "frame 1") {
		t.Errorf("error should name the frame, got %v", err)
	}
}

func TestKeyQueries(t *testing.T) {
	e, _, b := newTestEngine(t, `
held, down, up = false, false, false
function frame(n)
  held = wobl.pressed("a")
  down = wobl.just_pressed("A")
  up = wobl.just_released("escape")
end`)

	b.QueuePoll(key.KeyA, key.KeyEscape)
	b.QueuePoll(key.KeyA)
	b.WaitFrame()
	b.WaitFrame()

	if _, err := e.Frame(); err != nil {
		t.Fatalf("Frame failed: %v", err)
	}
	if e.L.GetGlobal("held").String() != "true" {
		t.Error("expected a held")
	}
	if e.L.GetGlobal("down").String() != "false" {
		t.Error("a should no longer be just pressed")
	}
	if e.L.GetGlobal("up").String() != "true" {
		t.Error("expected escape just released")
	}
}

func TestSizeAndFPS(t *testing.T) {
	e, r, _ := newTestEngine(t, `
w, h = wobl.size()
wobl.set_fps(24)
f = wobl.fps()
`)
	if e.L.GetGlobal("w").String() != "8" || e.L.GetGlobal("h").String() != "3" {
		t.Errorf("unexpected size %s x %s", e.L.GetGlobal("w"), e.L.GetGlobal("h"))
	}
	if r.FPS() != 24 {
		t.Errorf("expected fps 24, got %d", r.FPS())
	}
	if e.L.GetGlobal("f").String() != "24" {
		t.Errorf("expected wobl.fps() 24, got %s", e.L.GetGlobal("f"))
	}
}

func TestSandbox(t *testing.T) {
	e, _, _ := newTestEngine(t, `
has_io = io ~= nil
has_os = os ~= nil
has_dofile = dofile ~= nil
has_require = require ~= nil
has_string = string ~= nil and math ~= nil and table ~= nil
`)
	for _, name := range []string{"has_io", "has_os", "has_dofile", "has_require"} {
		if e.L.GetGlobal(name).String() != "false" {
			t.Errorf("%s should be false", name)
		}
	}
	if e.L.GetGlobal("has_string").String() != "true" {
		t.Error("pure libraries should be open")
	}
}

func TestPrintGoesToLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.Config{Level: logging.LevelInfo, Output: &buf, Prefix: "test"})

	r, _ := newTestGrid(t)
	e := New(r, WithLogger(logger))
	defer e.Close()

	if err := e.DoString(`print("hello", 42) wobl.log("again")`); err != nil {
		t.Fatalf("DoString failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "hello 42") || !strings.Contains(out, "again") {
		t.Errorf("expected script output in log, got %q", out)
	}
	if !strings.Contains(out, "component=script") {
		t.Errorf("expected component field, got %q", out)
	}
}

func TestRunFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.lua")
	code := `function frame(n) wobl.draw_text(0, 1, "ok") return n < 2 end`
	if err := os.WriteFile(path, []byte(code), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}

	r, b := newTestGrid(t)
	if err := Run(context.Background(), r, path); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if got := b.CellAt(0, 1).Rune(); got != 'o' {
		t.Errorf("expected presented 'o', got %q", got)
	}

	if err := Run(context.Background(), r, filepath.Join(t.TempDir(), "missing.lua")); err == nil {
		t.Error("expected error for missing script")
	}
}

func TestClosedEngine(t *testing.T) {
	r, _ := newTestGrid(t)
	e := New(r)
	e.Close()
	e.Close()
	if err := e.DoString("x = 1"); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}
	if _, err := e.Frame(); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}
}

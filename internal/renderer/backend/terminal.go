package backend

import (
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/wobl/internal/input/key"
	"github.com/dshills/wobl/internal/renderer/core"
)

// Terminal implements Backend using tcell for terminal output.
//
// The terminal keeps what it last displayed, so it runs in ModeDiff.
// Terminals report key presses and auto-repeats but never releases; a
// held key is released once no press or repeat has been seen for the
// release timeout.
type Terminal struct {
	frameInput
	mu sync.Mutex

	screen        tcell.Screen
	opts          Options
	title         string
	width, height int
	lastSeen      [key.Count]time.Time
	pending       []key.Event
	quit          bool
	initialized   bool
	closed        bool
}

// NewTerminal creates a new terminal backend on the controlling terminal.
func NewTerminal(opts ...Option) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewTerminalWithScreen(screen, opts...), nil
}

// NewTerminalWithScreen creates a terminal backend on an existing screen.
// Tests pass a tcell simulation screen.
func NewTerminalWithScreen(screen tcell.Screen, opts ...Option) *Terminal {
	o := buildOptions(opts)
	return &Terminal{
		frameInput: newFrameInput(o.Clock),
		screen:     screen,
		opts:       o,
	}
}

// Init takes over the terminal. The grid is drawn from the top-left
// corner; cells beyond the terminal size are dropped by tcell.
func (t *Terminal) Init(title string, width, height int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return ErrClosed
	}
	if t.initialized {
		return ErrAlreadyInitialized
	}
	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.SetTitle(title)
	t.screen.HideCursor()
	t.screen.Clear()
	t.screen.Show()

	t.title = title
	t.width = width
	t.height = height
	t.initialized = true
	return nil
}

// Mode returns ModeDiff.
func (t *Terminal) Mode() Mode {
	return ModeDiff
}

// Title returns the title passed to Init.
func (t *Terminal) Title() string {
	return t.title
}

// DrawCell stages a cell in tcell's back buffer.
func (t *Terminal) DrawCell(x, y int, cell core.Cell) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.closed {
		return ErrNotInitialized
	}
	mainc := cell.Rune()
	combc := cell.Combining()
	if cell.Attrs.Has(core.AttrHidden) {
		mainc, combc = ' ', nil
	}
	t.screen.SetContent(x, y, mainc, combc, convertStyle(cell))
	return nil
}

// Flush writes staged cells to the terminal.
func (t *Terminal) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.closed {
		return ErrNotInitialized
	}
	t.screen.Show()
	return nil
}

// WaitFrame drains pending terminal events without blocking, synthesizes
// releases for keys that went quiet, updates key state and paces the frame.
func (t *Terminal) WaitFrame() error {
	t.mu.Lock()
	if !t.initialized || t.closed {
		t.mu.Unlock()
		return ErrNotInitialized
	}

	now := t.opts.Clock.Now()
	t.pending = t.pending[:0]
	for t.screen.HasPendingEvent() {
		ev := t.screen.PollEvent()
		if ev == nil {
			break
		}
		t.handleEvent(ev, now)
	}
	for _, k := range t.keys.Held().Keys() {
		if now.Sub(t.lastSeen[k]) >= t.opts.ReleaseTimeout {
			t.pending = append(t.pending, key.Event{Key: k, Action: key.Release})
		}
	}
	t.keys.Sample(t.pending)
	t.mu.Unlock()

	t.pacer.Wait()
	return nil
}

func (t *Terminal) handleEvent(ev tcell.Event, now time.Time) {
	switch e := ev.(type) {
	case *tcell.EventKey:
		if e.Key() == tcell.KeyCtrlC {
			t.quit = true
		}
		for _, k := range translateKey(e) {
			action := key.Press
			if t.keys.IsPressed(k) {
				action = key.Repeat
			}
			t.lastSeen[k] = now
			t.pending = append(t.pending, key.Event{Key: k, Action: action})
		}
	case *tcell.EventResize:
		t.screen.Sync()
	}
}

// QuitRequested reports whether Ctrl+C was received.
func (t *Terminal) QuitRequested() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.quit
}

// Close restores the terminal. It is safe to call more than once.
func (t *Terminal) Close() (err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return nil
	}
	t.closed = true
	if !t.initialized {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("terminal teardown: %v", r)
		}
	}()
	t.screen.Fini()
	return nil
}

// convertStyle converts a cell's colors and attributes to a tcell.Style.
func convertStyle(c core.Cell) tcell.Style {
	style := tcell.StyleDefault.
		Foreground(convertColor(c.Fg)).
		Background(convertColor(c.Bg))

	a := c.Attrs
	if a.Has(core.AttrBold) {
		style = style.Bold(true)
	}
	if a.Has(core.AttrDim) {
		style = style.Dim(true)
	}
	if a.Has(core.AttrItalic) {
		style = style.Italic(true)
	}
	if a.Has(core.AttrUnderline) {
		style = style.Underline(true)
	}
	if a.Has(core.AttrBlink) {
		style = style.Blink(true)
	}
	if a.Has(core.AttrReverse) {
		style = style.Reverse(true)
	}
	if a.Has(core.AttrStrikethrough) {
		style = style.StrikeThrough(true)
	}
	return style
}

// convertColor maps a Color to tcell. Reset maps to the terminal default,
// palette colors stay indexed and everything else is sent as true color.
func convertColor(c core.Color) tcell.Color {
	switch {
	case c.IsDefault():
		return tcell.ColorDefault
	case c.Indexed:
		return tcell.PaletteColor(int(c.R))
	default:
		return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
	}
}

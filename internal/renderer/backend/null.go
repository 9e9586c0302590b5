package backend

import (
	"errors"
	"sync"

	"github.com/dshills/wobl/internal/input/key"
	"github.com/dshills/wobl/internal/renderer/core"
)

// DrawCall records a single DrawCell invocation.
type DrawCall struct {
	X, Y int
	Cell core.Cell
}

// NullBackend is an in-memory backend for testing.
// It records every call and replays scripted keyboard input.
type NullBackend struct {
	mu sync.Mutex
	frameInput

	mode          Mode
	title         string
	width, height int
	cells         [][]core.Cell

	draws   []DrawCall
	flushes int
	waits   int

	// scripted input consumed one entry per WaitFrame
	polls  [][]key.Key
	events [][]key.Event

	drawErr  error
	failAt   int
	flushErr error
	waitErr  error
	closeErr error

	quit        bool
	initialized bool
	closed      bool
}

// NewNullBackend creates a null backend using the given buffering mode.
func NewNullBackend(mode Mode, opts ...Option) *NullBackend {
	o := buildOptions(opts)
	return &NullBackend{
		frameInput: newFrameInput(o.Clock),
		mode:       mode,
		failAt:     -1,
	}
}

// Init allocates the surface.
func (b *NullBackend) Init(title string, width, height int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrClosed
	}
	if b.initialized {
		return ErrAlreadyInitialized
	}
	b.title = title
	b.width = width
	b.height = height
	b.cells = make([][]core.Cell, height)
	for i := range b.cells {
		b.cells[i] = make([]core.Cell, width)
	}
	b.blank()
	b.initialized = true
	return nil
}

func (b *NullBackend) blank() {
	empty := core.EmptyCell()
	for y := range b.cells {
		for x := range b.cells[y] {
			b.cells[y][x] = empty
		}
	}
}

// Mode returns the configured buffering mode.
func (b *NullBackend) Mode() Mode {
	return b.mode
}

// DrawCell records the call and updates the surface.
func (b *NullBackend) DrawCell(x, y int, cell core.Cell) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized {
		return ErrNotInitialized
	}
	if b.drawErr != nil && (b.failAt < 0 || len(b.draws) == b.failAt) {
		return b.drawErr
	}
	b.draws = append(b.draws, DrawCall{X: x, Y: y, Cell: cell})
	if x >= 0 && x < b.width && y >= 0 && y < b.height {
		b.cells[y][x] = cell
	}
	return nil
}

// Flush counts the call.
func (b *NullBackend) Flush() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized {
		return ErrNotInitialized
	}
	if b.flushErr != nil {
		return b.flushErr
	}
	b.flushes++
	return nil
}

// WaitFrame consumes the next scripted input and paces the frame.
// In direct mode the surface is blanked, as a real direct device would.
func (b *NullBackend) WaitFrame() error {
	if err := b.sample(); err != nil {
		return err
	}
	b.pacer.Wait()
	return nil
}

func (b *NullBackend) sample() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized {
		return ErrNotInitialized
	}
	if b.waitErr != nil {
		return b.waitErr
	}
	b.waits++

	switch {
	case len(b.events) > 0:
		b.keys.Sample(b.events[0])
		b.events = b.events[1:]
	case len(b.polls) > 0:
		b.keys.Poll(b.polls[0])
		b.polls = b.polls[1:]
	default:
		b.keys.Begin()
	}

	if b.mode == ModeDirect {
		b.blank()
	}
	return nil
}

// QuitRequested reports whether RequestQuit was called.
func (b *NullBackend) QuitRequested() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.quit
}

// Close marks the backend closed.
func (b *NullBackend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	return b.closeErr
}

// QueuePoll schedules the set of held keys reported at a future WaitFrame.
func (b *NullBackend) QueuePoll(keys ...key.Key) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.polls = append(b.polls, keys)
}

// QueueEvents schedules key events delivered at a future WaitFrame.
func (b *NullBackend) QueueEvents(events ...key.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, events)
}

// RequestQuit simulates the user closing the device.
func (b *NullBackend) RequestQuit() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.quit = true
}

// FailDraw makes DrawCell return err. With at >= 0 only the call at that
// index in the draw log fails; otherwise every call fails.
func (b *NullBackend) FailDraw(err error, at int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.drawErr = err
	b.failAt = at
}

// FailFlush makes Flush return err.
func (b *NullBackend) FailFlush(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.flushErr = err
}

// FailWait makes WaitFrame return err.
func (b *NullBackend) FailWait(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.waitErr = err
}

// FailClose makes Close return err.
func (b *NullBackend) FailClose(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closeErr = err
}

// Draws returns a copy of the draw log.
func (b *NullBackend) Draws() []DrawCall {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]DrawCall, len(b.draws))
	copy(out, b.draws)
	return out
}

// ResetDraws clears the draw log.
func (b *NullBackend) ResetDraws() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.draws = nil
}

// Flushes returns the number of successful Flush calls.
func (b *NullBackend) Flushes() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.flushes
}

// Waits returns the number of successful WaitFrame calls.
func (b *NullBackend) Waits() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.waits
}

// CellAt returns the cell on the surface at x, y.
func (b *NullBackend) CellAt(x, y int) core.Cell {
	b.mu.Lock()
	defer b.mu.Unlock()
	if x >= 0 && x < b.width && y >= 0 && y < b.height {
		return b.cells[y][x]
	}
	return core.EmptyCell()
}

// Title returns the title passed to Init.
func (b *NullBackend) Title() string {
	return b.title
}

// Closed reports whether Close was called.
func (b *NullBackend) Closed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed
}

// ErrInjected is a convenience error for failure injection in tests.
var ErrInjected = errors.New("injected failure")

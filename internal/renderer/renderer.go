package renderer

import (
	"fmt"
	"time"

	"github.com/rivo/uniseg"

	"github.com/dshills/wobl/internal/input/key"
	"github.com/dshills/wobl/internal/logging"
	"github.com/dshills/wobl/internal/renderer/backend"
	"github.com/dshills/wobl/internal/renderer/core"
	"github.com/dshills/wobl/internal/renderer/dirty"
)

// Options configures the renderer.
type Options struct {
	// Title is passed to the backend on Init.
	Title string

	// Width and Height are the grid dimensions in cells.
	Width  int
	Height int

	// FPS is the target frame rate. Zero means unbounded.
	FPS int

	// Logger receives per-frame debug output and teardown warnings.
	// Nil discards.
	Logger *logging.Logger
}

// DefaultOptions returns the default grid configuration.
func DefaultOptions() Options {
	return Options{
		Title:  "wobl",
		Width:  60,
		Height: 25,
		FPS:    60,
	}
}

// Stats describes the most recent frame.
type Stats struct {
	// Frame counts successful presents.
	Frame uint64

	// Emitted is the number of cells sent to the backend.
	Emitted int

	// Slept is how long the backend paced the frame.
	Slept time.Duration
}

// sleepReporter is implemented by backends that expose their pacing.
type sleepReporter interface {
	LastSleep() time.Duration
}

// Renderer is the character-grid engine.
type Renderer struct {
	backend backend.Backend
	mode    backend.Mode
	logger  *logging.Logger

	width  int
	height int
	fps    int

	// back is composed by draw calls. front mirrors what the backend
	// shows and exists only in diff mode.
	back  []core.Cell
	front []core.Cell
	dirty *dirty.Tracker

	stats  Stats
	closed bool
}

// New initializes the backend and allocates the grid.
func New(b backend.Backend, opts Options) (*Renderer, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, opts.Width, opts.Height)
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	if err := b.Init(opts.Title, opts.Width, opts.Height); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSetup, &OperationError{Op: "init", Err: err})
	}
	b.SetFPS(opts.FPS)

	r := &Renderer{
		backend: b,
		mode:    b.Mode(),
		logger:  logger.WithComponent("renderer"),
		width:   opts.Width,
		height:  opts.Height,
		fps:     opts.FPS,
		back:    newBuffer(opts.Width * opts.Height),
	}
	if r.mode == backend.ModeDiff {
		r.front = newBuffer(opts.Width * opts.Height)
		r.dirty = dirty.NewTracker(opts.Height)
	}

	r.logger.Info("grid %dx%d on %s backend, fps %d", r.width, r.height, r.mode, r.fps)
	return r, nil
}

func newBuffer(n int) []core.Cell {
	buf := make([]core.Cell, n)
	empty := core.EmptyCell()
	for i := range buf {
		buf[i] = empty
	}
	return buf
}

func (r *Renderer) index(x, y int) int {
	return y*r.width + x
}

func (r *Renderer) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < r.width && y < r.height
}

// Size returns the grid dimensions.
func (r *Renderer) Size() (width, height int) {
	return r.width, r.height
}

// Mode returns the reconciliation strategy in use.
func (r *Renderer) Mode() backend.Mode {
	return r.mode
}

// DrawCell writes a cell into the back buffer. Out-of-bounds positions are
// ignored.
func (r *Renderer) DrawCell(x, y int, cell core.Cell) {
	if !r.inBounds(x, y) {
		return
	}
	idx := r.index(x, y)
	if r.back[idx].Equals(cell) {
		return
	}
	r.back[idx] = cell
	if r.dirty != nil {
		r.dirty.MarkRow(y)
	}
}

// DrawText draws text starting at x, y with no attributes.
func (r *Renderer) DrawText(x, y int, text string, fg, bg core.Color) {
	r.DrawTextAttr(x, y, text, fg, bg, core.AttrNone)
}

// DrawTextAttr draws text one grapheme per cell. A newline returns to
// column x on the next row. Text running past the grid edge is clipped.
func (r *Renderer) DrawTextAttr(x, y int, text string, fg, bg core.Color, attrs core.Attribute) {
	col, row := x, y
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		s := g.Str()
		if s == "\n" || s == "\r\n" {
			col = x
			row++
			continue
		}
		r.DrawCell(col, row, core.NewGraphemeCell(s, fg, bg, attrs))
		col++
	}
}

// Clear resets the back buffer to empty cells. The front buffer is kept,
// so the next Present sends every cell that was not already empty.
func (r *Renderer) Clear() {
	empty := core.EmptyCell()
	for i := range r.back {
		r.back[i] = empty
	}
	if r.dirty != nil {
		r.dirty.MarkAll()
	}
}

// Present reconciles the grid with the backend, flushes, then lets the
// backend sample input and pace the frame.
//
// On a draw failure the sweep stops and the error is returned. Cells sent
// before the failure are recorded as shown; the rest stay pending for the
// next Present.
func (r *Renderer) Present() error {
	if r.closed {
		return ErrClosed
	}

	var (
		emitted int
		err     error
	)
	if r.mode == backend.ModeDiff {
		emitted, err = r.sweepDiff()
	} else {
		emitted, err = r.sweepDirect()
	}
	r.stats.Emitted = emitted
	if err != nil {
		return err
	}

	if err := r.backend.Flush(); err != nil {
		return &OperationError{Op: "flush", Err: err}
	}
	if err := r.backend.WaitFrame(); err != nil {
		return &OperationError{Op: "wait", Err: err}
	}

	r.stats.Frame++
	r.stats.Slept = 0
	if sr, ok := r.backend.(sleepReporter); ok {
		r.stats.Slept = sr.LastSleep()
	}
	r.logger.Debug("frame %d: emitted %d cells, slept %v", r.stats.Frame, emitted, r.stats.Slept)
	return nil
}

// sweepDiff sends cells where back differs from front, in row-major order.
// Only rows marked dirty since their last successful sweep are compared.
func (r *Renderer) sweepDiff() (int, error) {
	emitted := 0
	for _, span := range r.dirty.Spans() {
		for y := span.Start; y < span.End; y++ {
			for x := 0; x < r.width; x++ {
				idx := r.index(x, y)
				if r.back[idx].Equals(r.front[idx]) {
					continue
				}
				if err := r.backend.DrawCell(x, y, r.back[idx]); err != nil {
					return emitted, &OperationError{Op: "draw", X: x, Y: y, Err: err}
				}
				r.front[idx] = r.back[idx]
				emitted++
			}
			r.dirty.Clear(dirty.NewSpan(y, y+1))
		}
	}
	return emitted, nil
}

// sweepDirect sends every cell.
func (r *Renderer) sweepDirect() (int, error) {
	emitted := 0
	for y := 0; y < r.height; y++ {
		for x := 0; x < r.width; x++ {
			if err := r.backend.DrawCell(x, y, r.back[r.index(x, y)]); err != nil {
				return emitted, &OperationError{Op: "draw", X: x, Y: y, Err: err}
			}
			emitted++
		}
	}
	return emitted, nil
}

// Front returns the cell the backend was last sent at x, y. In direct mode
// there is no front buffer and the back buffer is returned.
func (r *Renderer) Front(x, y int) core.Cell {
	if !r.inBounds(x, y) {
		return core.EmptyCell()
	}
	if r.front == nil {
		return r.back[r.index(x, y)]
	}
	return r.front[r.index(x, y)]
}

// Back returns the cell composed for the next present at x, y.
func (r *Renderer) Back(x, y int) core.Cell {
	if !r.inBounds(x, y) {
		return core.EmptyCell()
	}
	return r.back[r.index(x, y)]
}

// Stats returns statistics for the most recent Present.
func (r *Renderer) Stats() Stats {
	return r.stats
}

// SetFPS changes the target frame rate. Zero or less means unbounded.
func (r *Renderer) SetFPS(fps int) {
	if fps < 0 {
		fps = 0
	}
	r.fps = fps
	r.backend.SetFPS(fps)
	r.logger.Debug("fps set to %d", fps)
}

// FPS returns the target frame rate, or 0 when unbounded.
func (r *Renderer) FPS() int {
	return r.fps
}

// IsKeyPressed reports whether the key is held.
func (r *Renderer) IsKeyPressed(k key.Key) bool {
	return r.backend.IsKeyPressed(k)
}

// IsKeyJustPressed reports whether the key went down during the last Present.
func (r *Renderer) IsKeyJustPressed(k key.Key) bool {
	return r.backend.IsKeyJustPressed(k)
}

// IsKeyJustReleased reports whether the key went up during the last Present.
func (r *Renderer) IsKeyJustReleased(k key.Key) bool {
	return r.backend.IsKeyJustReleased(k)
}

// QuitRequested reports whether the backend was asked to close.
func (r *Renderer) QuitRequested() bool {
	return r.backend.QuitRequested()
}

// Close releases the backend. Teardown failures are logged and returned.
// Calling Close more than once is a no-op.
func (r *Renderer) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	if err := r.backend.Close(); err != nil {
		r.logger.Warn("backend teardown failed: %v", err)
		return &OperationError{Op: "close", Err: err}
	}
	return nil
}

// Package backend provides the device abstraction for the renderer.
package backend

import (
	"errors"

	"github.com/dshills/wobl/internal/input/key"
	"github.com/dshills/wobl/internal/renderer/core"
)

// Errors returned by backends.
var (
	ErrNotInitialized     = errors.New("backend not initialized")
	ErrAlreadyInitialized = errors.New("backend already initialized")
	ErrClosed             = errors.New("backend closed")
)

// Mode describes how a backend treats its drawing surface between frames.
type Mode int

const (
	// ModeDiff devices keep the previous frame on screen. The renderer
	// sends only cells that changed since the last present.
	ModeDiff Mode = iota

	// ModeDirect devices start every frame from a blank surface. The
	// renderer sends every cell of the grid on each present.
	ModeDirect
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeDiff:
		return "diff"
	case ModeDirect:
		return "direct"
	default:
		return "unknown"
	}
}

// Backend is an output device with keyboard input and frame pacing.
type Backend interface {
	// Init opens the device with the given title and grid size.
	Init(title string, width, height int) error

	// Mode reports the buffering strategy the renderer must use.
	Mode() Mode

	// SetFPS sets the target frame rate. Zero or less disables pacing.
	SetFPS(fps int)

	// DrawCell stages a cell at the given grid position.
	DrawCell(x, y int, cell core.Cell) error

	// Flush makes staged cells visible.
	Flush() error

	// WaitFrame samples keyboard state and sleeps for the rest of the
	// frame period.
	WaitFrame() error

	// IsKeyPressed reports whether the key is held.
	IsKeyPressed(k key.Key) bool

	// IsKeyJustPressed reports whether the key went down during the last WaitFrame.
	IsKeyJustPressed(k key.Key) bool

	// IsKeyJustReleased reports whether the key went up during the last WaitFrame.
	IsKeyJustReleased(k key.Key) bool

	// QuitRequested reports whether the user asked the device to close.
	QuitRequested() bool

	// Close releases the device and restores the host.
	Close() error
}

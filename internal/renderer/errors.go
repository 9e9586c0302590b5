package renderer

import (
	"errors"
	"fmt"
)

// Renderer errors.
var (
	// ErrSetup indicates the backend could not be initialized.
	ErrSetup = errors.New("backend setup failed")

	// ErrClosed indicates the renderer was used after Close.
	ErrClosed = errors.New("renderer closed")

	// ErrInvalidSize indicates a grid dimension that is not positive.
	ErrInvalidSize = errors.New("invalid grid size")
)

// OperationError reports a backend failure during a renderer operation.
type OperationError struct {
	Op   string // init, draw, flush, wait or close
	X, Y int    // cell position, for draw
	Err  error  // underlying backend error
}

func (e *OperationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Op == "draw" {
		return fmt.Sprintf("draw (%d, %d): %v", e.X, e.Y, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *OperationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

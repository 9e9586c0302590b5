package script

import "errors"

var (
	// ErrNoFrame indicates a script that does not define frame(n).
	ErrNoFrame = errors.New("script does not define a frame function")

	// ErrClosed indicates use of an engine after Close.
	ErrClosed = errors.New("script engine closed")
)

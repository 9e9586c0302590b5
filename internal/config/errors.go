package config

import (
	"errors"
	"fmt"
)

// Errors returned by configuration operations.
var (
	// ErrUnsupportedFormat indicates a config file extension with no parser.
	ErrUnsupportedFormat = errors.New("unsupported config format")

	// ErrUnknownKey indicates a setting name that does not exist.
	ErrUnknownKey = errors.New("unknown setting")

	// ErrNoFile indicates a watch on a loader with no config file.
	ErrNoFile = errors.New("no config file to watch")
)

// ParseError represents an error while parsing a configuration file.
type ParseError struct {
	// Path is the file path that failed to parse.
	Path string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError describes an invalid setting value.
type ValidationError struct {
	// Field is the setting key, e.g. "canvas.scale".
	Field string
	// Reason describes what is wrong with the value.
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

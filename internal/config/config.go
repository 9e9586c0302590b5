package config

import (
	"errors"
	"strconv"
	"time"

	"github.com/dshills/wobl/internal/logging"
)

// Backend names accepted by the backend setting.
const (
	BackendTerminal = "terminal"
	BackendCanvas   = "canvas"
)

// Config holds every wobl setting.
type Config struct {
	Title   string
	Width   int
	Height  int
	FPS     int
	Backend string

	LogLevel string
	LogFile  string

	// ReleaseTimeout applies to the terminal backend only.
	ReleaseTimeout time.Duration

	Canvas CanvasConfig
}

// CanvasConfig holds settings for the canvas backend.
type CanvasConfig struct {
	// Snapshot is a PNG path written on every present. Empty disables it.
	Snapshot string
	// Scale multiplies snapshot pixel dimensions.
	Scale int
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Title:          "wobl",
		Width:          60,
		Height:         25,
		FPS:            60,
		Backend:        BackendTerminal,
		LogLevel:       "info",
		ReleaseTimeout: 500 * time.Millisecond,
		Canvas: CanvasConfig{
			Scale: 1,
		},
	}
}

// Validate checks every setting and returns all problems joined.
func (c Config) Validate() error {
	var errs []error
	invalid := func(field, reason string) {
		errs = append(errs, &ValidationError{Field: field, Reason: reason})
	}

	if c.Width <= 0 {
		invalid("width", "must be positive")
	}
	if c.Height <= 0 {
		invalid("height", "must be positive")
	}
	if c.FPS < 0 {
		invalid("fps", "must not be negative")
	}
	switch c.Backend {
	case BackendTerminal, BackendCanvas:
	default:
		invalid("backend", "must be terminal or canvas, got "+strconv.Quote(c.Backend))
	}
	if _, ok := logging.LookupLevel(c.LogLevel); !ok {
		invalid("log_level", "unknown level "+strconv.Quote(c.LogLevel))
	}
	if c.ReleaseTimeout <= 0 {
		invalid("release_timeout", "must be positive")
	}
	if c.Canvas.Scale < 1 {
		invalid("canvas.scale", "must be at least 1")
	}
	return errors.Join(errs...)
}

// Restart lists settings that differ from other and cannot change while
// running. Everything except fps needs a restart.
func (c Config) Restart(other Config) []string {
	var keys []string
	check := func(key string, changed bool) {
		if changed {
			keys = append(keys, key)
		}
	}
	check("title", c.Title != other.Title)
	check("width", c.Width != other.Width)
	check("height", c.Height != other.Height)
	check("backend", c.Backend != other.Backend)
	check("log_level", c.LogLevel != other.LogLevel)
	check("log_file", c.LogFile != other.LogFile)
	check("release_timeout", c.ReleaseTimeout != other.ReleaseTimeout)
	check("canvas.snapshot", c.Canvas.Snapshot != other.Canvas.Snapshot)
	check("canvas.scale", c.Canvas.Scale != other.Canvas.Scale)
	return keys
}

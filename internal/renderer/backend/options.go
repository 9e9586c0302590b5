package backend

import (
	"time"

	"github.com/dshills/wobl/internal/frame"
	"github.com/dshills/wobl/internal/input/key"
)

// DefaultReleaseTimeout is how long a terminal key stays held without a
// press or repeat before a release is synthesized.
const DefaultReleaseTimeout = 500 * time.Millisecond

// Options holds backend settings shared by all devices.
type Options struct {
	// Clock drives frame pacing and release synthesis.
	Clock frame.Clock

	// ReleaseTimeout applies to the terminal backend.
	ReleaseTimeout time.Duration

	// Keys is polled by the canvas backend once per frame.
	Keys KeySource

	// Snapshot is a PNG path the canvas backend writes on every flush.
	Snapshot string

	// Scale multiplies canvas snapshot dimensions.
	Scale int
}

// DefaultOptions returns the default backend settings.
func DefaultOptions() Options {
	return Options{
		Clock:          frame.SystemClock{},
		ReleaseTimeout: DefaultReleaseTimeout,
		Scale:          1,
	}
}

// Option configures a backend.
type Option func(*Options)

// WithClock sets the clock used for pacing and key timing.
func WithClock(c frame.Clock) Option {
	return func(o *Options) {
		if c != nil {
			o.Clock = c
		}
	}
}

// WithReleaseTimeout sets the terminal release timeout.
func WithReleaseTimeout(d time.Duration) Option {
	return func(o *Options) {
		if d > 0 {
			o.ReleaseTimeout = d
		}
	}
}

// WithKeySource sets the key source polled by the canvas backend.
func WithKeySource(src KeySource) Option {
	return func(o *Options) {
		o.Keys = src
	}
}

// WithSnapshot sets the canvas snapshot path.
func WithSnapshot(path string) Option {
	return func(o *Options) {
		o.Snapshot = path
	}
}

// WithScale sets the canvas snapshot scale factor.
func WithScale(n int) Option {
	return func(o *Options) {
		if n >= 1 {
			o.Scale = n
		}
	}
}

func buildOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// KeySource reports the keys currently held down on a polled device.
type KeySource interface {
	KeysDown() []key.Key
}

// KeySourceFunc adapts a function to KeySource.
type KeySourceFunc func() []key.Key

// KeysDown calls f.
func (f KeySourceFunc) KeysDown() []key.Key {
	return f()
}

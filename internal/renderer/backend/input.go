package backend

import (
	"time"

	"github.com/dshills/wobl/internal/frame"
	"github.com/dshills/wobl/internal/input/key"
)

// frameInput carries the key tracker and frame pacer every backend needs.
// Backends embed it to get the key queries and SetFPS.
type frameInput struct {
	keys  *key.Tracker
	pacer *frame.Pacer
}

func newFrameInput(clock frame.Clock) frameInput {
	return frameInput{
		keys:  key.NewTracker(),
		pacer: frame.NewPacer(clock),
	}
}

// SetFPS sets the target frame rate. Zero or less disables pacing.
func (f frameInput) SetFPS(fps int) {
	f.pacer.SetFPS(fps)
}

// IsKeyPressed reports whether the key is held.
func (f frameInput) IsKeyPressed(k key.Key) bool {
	return f.keys.IsPressed(k)
}

// IsKeyJustPressed reports whether the key went down during the last frame.
func (f frameInput) IsKeyJustPressed(k key.Key) bool {
	return f.keys.IsJustPressed(k)
}

// IsKeyJustReleased reports whether the key went up during the last frame.
func (f frameInput) IsKeyJustReleased(k key.Key) bool {
	return f.keys.IsJustReleased(k)
}

// LastSleep returns how long the last WaitFrame slept.
func (f frameInput) LastSleep() time.Duration {
	return f.pacer.LastSleep()
}

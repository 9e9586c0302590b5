package frame

import "time"

// Pacer sleeps between frames to hold a target frame rate.
//
// A Pacer is not safe for concurrent use.
type Pacer struct {
	clock      Clock
	target     time.Duration
	frameStart time.Time
	lastSleep  time.Duration
}

// NewPacer creates an unbounded pacer. The frame timer starts now.
func NewPacer(clock Clock) *Pacer {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Pacer{
		clock:      clock,
		frameStart: clock.Now(),
	}
}

// SetFPS sets the target rate. Zero or negative disables pacing.
func (p *Pacer) SetFPS(fps int) {
	if fps <= 0 {
		p.target = 0
		return
	}
	p.target = time.Second / time.Duration(fps)
}

// FPS returns the configured rate, or 0 when unbounded.
func (p *Pacer) FPS() int {
	if p.target <= 0 {
		return 0
	}
	return int(time.Second / p.target)
}

// Target returns the per-frame budget, or 0 when unbounded.
func (p *Pacer) Target() time.Duration {
	return p.target
}

// Wait blocks until the frame budget measured from the previous Wait has
// elapsed, then restarts the frame timer. It returns the time slept.
func (p *Pacer) Wait() time.Duration {
	var slept time.Duration
	if p.target > 0 {
		elapsed := p.clock.Now().Sub(p.frameStart)
		if elapsed < p.target {
			slept = p.target - elapsed
			p.clock.Sleep(slept)
		}
	}
	p.frameStart = p.clock.Now()
	p.lastSleep = slept
	return slept
}

// LastSleep returns what the most recent Wait slept.
func (p *Pacer) LastSleep() time.Duration {
	return p.lastSleep
}

// Package system provides the wall-clock and frame-pacing adapters used by the
// scroll engine outside of tests.
package system

import "time"

// DefaultFrameInterval approximates one frame at 60Hz.
const DefaultFrameInterval = 16 * time.Millisecond

// Clock implements scroll.Clock using the process clock. Readings keep their
// monotonic component so elapsed time is immune to wall-clock jumps.
type Clock struct{}

// New creates a new Clock.
func New() *Clock {
	return &Clock{}
}

// Now returns the current time.
func (Clock) Now() time.Time {
	return time.Now()
}

// After waits for d to elapse and then sends the current time.
func (Clock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}

// Frames paces scroll ticks with a time.Ticker.
type Frames struct {
	Interval time.Duration
}

// NewFrames returns a frame source firing every interval; non-positive values
// use DefaultFrameInterval.
func NewFrames(interval time.Duration) *Frames {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &Frames{Interval: interval}
}

// Start begins delivering frames. The returned func stops the ticker and may
// be called more than once.
func (f *Frames) Start() (<-chan time.Time, func()) {
	interval := f.Interval
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	ticker := time.NewTicker(interval)
	return ticker.C, ticker.Stop
}

package scroll

import (
	"math"
	"time"
)

// Geometry is a snapshot of the container being scrolled through.
type Geometry struct {
	// Top is the container's offset from the document origin.
	Top float64 `json:"top"`
	// Height is the container height.
	Height float64 `json:"height"`
	// ViewportHeight is the visible viewport height.
	ViewportHeight float64 `json:"viewport_height"`
}

// GeometryProvider reads live container geometry. ok is false when the
// container is no longer available.
type GeometryProvider interface {
	Read() (g Geometry, ok bool)
}

// GeometryFunc adapts a function to GeometryProvider.
type GeometryFunc func() (Geometry, bool)

// Read calls f.
func (f GeometryFunc) Read() (Geometry, bool) { return f() }

// StaticGeometry always reports the same snapshot.
type StaticGeometry Geometry

// Read returns the snapshot.
func (g StaticGeometry) Read() (Geometry, bool) { return Geometry(g), true }

// Mode selects how a Positioner moves to an offset.
type Mode string

// Scroll modes.
const (
	ModeInstant Mode = "instant"
	ModeSmooth  Mode = "smooth"
)

// Positioner receives scroll commands.
type Positioner interface {
	ScrollTo(offset float64, mode Mode)
}

// PositionerFunc adapts a function to Positioner.
type PositionerFunc func(offset float64, mode Mode)

// ScrollTo calls f.
func (f PositionerFunc) ScrollTo(offset float64, mode Mode) { f(offset, mode) }

// Clock supplies time to the engine.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

// Frames paces ticks, typically once per rendering frame. stop releases the
// source and must be safe to call more than once.
type Frames interface {
	Start() (frames <-chan time.Time, stop func())
}

// Progress maps elapsed time onto [0,1]. A non-positive duration is treated
// as already finished.
func Progress(elapsed, duration time.Duration) float64 {
	if duration <= 0 {
		return 1
	}
	p := float64(elapsed) / float64(duration)
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	default:
		return p
	}
}

// Target is the driven-phase scroll offset for progress p.
func Target(g Geometry, p, focusFraction float64) float64 {
	focus := focusFraction * g.ViewportHeight
	return math.Max(0, g.Top+p*g.Height-focus)
}

// SettleTarget is the offset of the final smooth scroll.
func SettleTarget(g Geometry, offset float64) float64 {
	return g.Top - offset
}

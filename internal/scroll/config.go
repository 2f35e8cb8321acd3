package scroll

import "time"

// Defaults applied to zero Config fields.
const (
	DefaultDuration      = 15 * time.Second
	DefaultFocusFraction = 0.35
	DefaultSettleDelay   = 450 * time.Millisecond
	DefaultSettleOffset  = 24.0
)

// Config tunes the engine. Duration must match the duration given to any
// visual cue that is meant to finish together with the scroll.
type Config struct {
	Duration      time.Duration
	FocusFraction float64
	SettleDelay   time.Duration
	SettleOffset  float64
}

// DefaultConfig returns the stock pacing.
func DefaultConfig() Config {
	return Config{
		Duration:      DefaultDuration,
		FocusFraction: DefaultFocusFraction,
		SettleDelay:   DefaultSettleDelay,
		SettleOffset:  DefaultSettleOffset,
	}
}

func (c Config) withDefaults() Config {
	if c.Duration <= 0 {
		c.Duration = DefaultDuration
	}
	if c.FocusFraction <= 0 {
		c.FocusFraction = DefaultFocusFraction
	}
	if c.SettleDelay <= 0 {
		c.SettleDelay = DefaultSettleDelay
	}
	if c.SettleOffset == 0 {
		c.SettleOffset = DefaultSettleOffset
	}
	return c
}

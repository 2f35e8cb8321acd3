// Package config loads and validates service configuration via Viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/JakeFAU/fighter-timeline/internal/progress"
	"github.com/JakeFAU/fighter-timeline/internal/scroll"
	"github.com/JakeFAU/fighter-timeline/internal/timeline"
)

// Config captures all service configuration knobs loaded via Viper.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Auth      AuthConfig      `mapstructure:"auth"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Timeline  TimelineConfig  `mapstructure:"timeline"`
	Scroll    ScrollConfig    `mapstructure:"scroll"`
	Progress  ProgressConfig  `mapstructure:"progress"`
	Storage   StorageConfig   `mapstructure:"storage"`
	DB        DBConfig        `mapstructure:"db"`
}

// ServerConfig controls HTTP server behavior.
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// AuthConfig defines API authentication toggles.
type AuthConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	APIKey  string `mapstructure:"api_key"`
}

// RateLimitConfig throttles /v1 requests per client. RPS <= 0 disables it.
type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool   `mapstructure:"development"`
	Level       string `mapstructure:"level"`
}

// TimelineConfig holds the presentation policy.
type TimelineConfig struct {
	MinEvents int `mapstructure:"min_events"`
}

// ScrollConfig paces the progress engine. DurationMS is also reported to
// renderers so synchronized cues use the same value.
type ScrollConfig struct {
	DurationMS      int     `mapstructure:"duration_ms"`
	FocusFraction   float64 `mapstructure:"focus_fraction"`
	SettleDelayMS   int     `mapstructure:"settle_delay_ms"`
	SettleOffset    float64 `mapstructure:"settle_offset"`
	FrameIntervalMS int     `mapstructure:"frame_interval_ms"`
}

// ProgressConfig sizes the telemetry hub.
type ProgressConfig struct {
	BufferSize     int `mapstructure:"buffer_size"`
	MaxBatchEvents int `mapstructure:"max_batch_events"`
	MaxBatchWaitMS int `mapstructure:"max_batch_wait_ms"`
}

// StorageConfig selects where fighter records come from.
type StorageConfig struct {
	Provider string `mapstructure:"provider"`
	SeedFile string `mapstructure:"seed_file"`
}

// DBConfig controls access to the Postgres fighter table.
type DBConfig struct {
	DSN      string `mapstructure:"dsn"`
	Table    string `mapstructure:"table"`
	MaxConns int32  `mapstructure:"max_conns"`
}

// Load builds a Config from an optional file plus TIMELINE_* environment
// overrides.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("TIMELINE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("auth.enabled", false)
	v.SetDefault("auth.api_key", "")
	v.SetDefault("rate_limit.rps", 0)
	v.SetDefault("rate_limit.burst", 20)
	v.SetDefault("logging.development", true)
	v.SetDefault("logging.level", "info")
	v.SetDefault("timeline.min_events", timeline.DefaultMinEvents)
	v.SetDefault("scroll.duration_ms", scroll.DefaultDuration.Milliseconds())
	v.SetDefault("scroll.focus_fraction", scroll.DefaultFocusFraction)
	v.SetDefault("scroll.settle_delay_ms", scroll.DefaultSettleDelay.Milliseconds())
	v.SetDefault("scroll.settle_offset", scroll.DefaultSettleOffset)
	v.SetDefault("scroll.frame_interval_ms", 16)
	v.SetDefault("progress.buffer_size", 1024)
	v.SetDefault("progress.max_batch_events", 256)
	v.SetDefault("progress.max_batch_wait_ms", 250)
	v.SetDefault("storage.provider", "memory")
	v.SetDefault("storage.seed_file", "")
	v.SetDefault("db.dsn", "")
	v.SetDefault("db.table", "fighters_fighter")
	v.SetDefault("db.max_conns", 4)
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be > 0")
	}
	if c.Auth.Enabled && c.Auth.APIKey == "" {
		return fmt.Errorf("auth.api_key must be set when auth is enabled")
	}
	if c.RateLimit.RPS > 0 && c.RateLimit.Burst <= 0 {
		return fmt.Errorf("rate_limit.burst must be > 0 when rate limiting is enabled")
	}
	if c.Timeline.MinEvents <= 0 {
		return fmt.Errorf("timeline.min_events must be > 0")
	}
	if c.Scroll.DurationMS <= 0 {
		return fmt.Errorf("scroll.duration_ms must be > 0")
	}
	if c.Scroll.FocusFraction <= 0 || c.Scroll.FocusFraction >= 1 {
		return fmt.Errorf("scroll.focus_fraction must be in (0,1)")
	}
	if c.Scroll.SettleDelayMS < 0 {
		return fmt.Errorf("scroll.settle_delay_ms must be >= 0")
	}
	if c.Scroll.FrameIntervalMS <= 0 {
		return fmt.Errorf("scroll.frame_interval_ms must be > 0")
	}
	switch c.Storage.Provider {
	case "memory":
	case "postgres":
		if c.DB.DSN == "" {
			return fmt.Errorf("db.dsn must be set when storage.provider is postgres")
		}
	default:
		return fmt.Errorf("storage.provider %q is not supported", c.Storage.Provider)
	}
	return nil
}

// ScrollEngine converts the scroll section into engine settings.
func (c Config) ScrollEngine() scroll.Config {
	return scroll.Config{
		Duration:      time.Duration(c.Scroll.DurationMS) * time.Millisecond,
		FocusFraction: c.Scroll.FocusFraction,
		SettleDelay:   time.Duration(c.Scroll.SettleDelayMS) * time.Millisecond,
		SettleOffset:  c.Scroll.SettleOffset,
	}
}

// FrameInterval is the pacing of scroll ticks.
func (c Config) FrameInterval() time.Duration {
	return time.Duration(c.Scroll.FrameIntervalMS) * time.Millisecond
}

// Policy returns the timeline presentation policy.
func (c Config) Policy() timeline.Policy {
	return timeline.Policy{MinEvents: c.Timeline.MinEvents}
}

// Hub returns progress hub settings; the logger is attached by the caller.
func (c Config) Hub() progress.Config {
	return progress.Config{
		BufferSize:     c.Progress.BufferSize,
		MaxBatchEvents: c.Progress.MaxBatchEvents,
		MaxBatchWait:   time.Duration(c.Progress.MaxBatchWaitMS) * time.Millisecond,
	}
}

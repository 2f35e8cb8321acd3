// Package app initializes and holds long-lived application services, acting as
// a dependency injection container.
package app

import (
	"context"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/JakeFAU/fighter-timeline/internal/clock/system"
	"github.com/JakeFAU/fighter-timeline/internal/config"
	"github.com/JakeFAU/fighter-timeline/internal/fighter"
	"github.com/JakeFAU/fighter-timeline/internal/highlights"
	"github.com/JakeFAU/fighter-timeline/internal/progress"
	"github.com/JakeFAU/fighter-timeline/internal/progress/sinks"
	"github.com/JakeFAU/fighter-timeline/internal/scroll"
	"github.com/JakeFAU/fighter-timeline/internal/storage/memory"
	"github.com/JakeFAU/fighter-timeline/internal/storage/postgres"
)

// App holds the shared, long-lived services. It is built once at startup and
// handed to the command that needs it.
type App struct {
	Config     config.Config
	Logger     *zap.Logger
	Source     fighter.Source
	Hub        *progress.Hub
	Engine     *scroll.Engine
	Highlights *highlights.Service
}

// New builds the container from cfg. Prometheus collectors are registered
// against reg, or the default registerer when reg is nil.
func New(ctx context.Context, cfg config.Config, logger *zap.Logger, reg prometheus.Registerer) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Info("initializing application services", zap.String("storage", cfg.Storage.Provider))

	source, err := newSource(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	promSink, err := sinks.NewPrometheusSink(reg)
	if err != nil {
		_ = closeSource(source)
		return nil, fmt.Errorf("init progress metrics: %w", err)
	}
	hubCfg := cfg.Hub()
	hubCfg.Logger = logger.Named("progress")
	hub := progress.NewHub(hubCfg, sinks.NewLogSink(logger.Named("progress")), promSink)

	engine := scroll.New(
		cfg.ScrollEngine(),
		system.New(),
		system.NewFrames(cfg.FrameInterval()),
		hub,
		logger.Named("engine"),
	)
	svc := highlights.NewService(highlights.Options{
		Source:   source,
		Policy:   cfg.Policy(),
		Duration: engine.Config().Duration,
		Emitter:  hub,
		Logger:   logger.Named("highlights"),
	})

	return &App{
		Config:     cfg,
		Logger:     logger,
		Source:     source,
		Hub:        hub,
		Engine:     engine,
		Highlights: svc,
	}, nil
}

func newSource(ctx context.Context, cfg config.Config, logger *zap.Logger) (fighter.Source, error) {
	switch cfg.Storage.Provider {
	case "memory", "":
		if cfg.Storage.SeedFile == "" {
			logger.Info("using empty in-memory fighter store")
			return memory.NewFighterStore(), nil
		}
		store, err := memory.LoadFighterStore(cfg.Storage.SeedFile)
		if err != nil {
			return nil, fmt.Errorf("init memory store: %w", err)
		}
		logger.Info("seeded in-memory fighter store",
			zap.String("seed_file", cfg.Storage.SeedFile),
			zap.Int("fighters", store.Len()),
		)
		return store, nil
	case "postgres":
		store, err := postgres.NewFighterStore(ctx, postgres.FighterStoreConfig{
			DSN:      cfg.DB.DSN,
			Table:    cfg.DB.Table,
			MaxConns: cfg.DB.MaxConns,
		})
		if err != nil {
			return nil, fmt.Errorf("init postgres store: %w", err)
		}
		logger.Info("connected to postgres fighter store", zap.String("table", cfg.DB.Table))
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage provider: %s", cfg.Storage.Provider)
	}
}

// NewViewer returns a Viewer driving its own container.
func (a *App) NewViewer() *highlights.Viewer {
	return highlights.NewViewer(a.Highlights, scroll.NewController(a.Engine))
}

// Ready pings the fighter source when it supports it.
func (a *App) Ready(ctx context.Context) error {
	pinger, ok := a.Source.(interface{ Ping(context.Context) error })
	if !ok {
		return nil
	}
	return pinger.Ping(ctx)
}

// Close flushes telemetry and releases the fighter source. All failures are
// reported together.
func (a *App) Close(ctx context.Context) error {
	a.Logger.Info("shutting down application services")
	var err error
	if a.Hub != nil {
		err = multierr.Append(err, a.Hub.Close(ctx))
	}
	err = multierr.Append(err, closeSource(a.Source))
	return err
}

func closeSource(src fighter.Source) error {
	switch c := src.(type) {
	case io.Closer:
		if err := c.Close(); err != nil {
			return fmt.Errorf("close fighter source: %w", err)
		}
	case interface{ Close() }:
		c.Close()
	}
	return nil
}

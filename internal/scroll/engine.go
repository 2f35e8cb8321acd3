package scroll

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/JakeFAU/fighter-timeline/internal/progress"
)

// Outcome is the lifecycle state of a Run.
type Outcome string

// Run outcomes.
const (
	OutcomeRunning   Outcome = "running"
	OutcomeCompleted Outcome = "completed"
	OutcomeCanceled  Outcome = "canceled"
	OutcomeDetached  Outcome = "detached"
)

func (o Outcome) stage() progress.Stage {
	switch o {
	case OutcomeCompleted:
		return progress.StageRunDone
	case OutcomeDetached:
		return progress.StageRunDetached
	default:
		return progress.StageRunCanceled
	}
}

// Engine starts scroll runs. It holds no per-run state and is safe for
// concurrent use.
type Engine struct {
	cfg     Config
	clock   Clock
	frames  Frames
	emitter progress.Emitter
	logger  *zap.Logger
}

// New constructs an Engine. A nil emitter discards telemetry and a nil logger
// is replaced with a no-op logger.
func New(cfg Config, clock Clock, frames Frames, emitter progress.Emitter, logger *zap.Logger) *Engine {
	if emitter == nil {
		emitter = progress.Discard
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		cfg:     cfg.withDefaults(),
		clock:   clock,
		frames:  frames,
		emitter: emitter,
		logger:  logger,
	}
}

// Config returns the effective configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// StartOption customises a single run.
type StartOption func(*Run)

// WithLabel tags telemetry from the run, usually with the fighter ID.
func WithLabel(label string) StartOption {
	return func(r *Run) { r.label = label }
}

// Start begins a run against the container read by geo, sending commands to
// pos. When the geometry cannot be read nothing is scheduled and ok is false.
// Cancelling ctx cancels the run.
func (e *Engine) Start(ctx context.Context, geo GeometryProvider, pos Positioner, opts ...StartOption) (*Run, bool) {
	if geo == nil || pos == nil {
		return nil, false
	}
	if _, ok := geo.Read(); !ok {
		e.logger.Debug("container unavailable; scroll run not started")
		return nil, false
	}
	if ctx == nil {
		ctx = context.Background()
	}

	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	runCtx, cancel := context.WithCancel(ctx)
	r := &Run{
		id:      id,
		engine:  e,
		geo:     geo,
		pos:     pos,
		cancel:  cancel,
		done:    make(chan struct{}),
		outcome: OutcomeRunning,
	}
	for _, opt := range opts {
		opt(r)
	}

	r.start = e.clock.Now()
	frames, stop := e.frames.Start()
	r.emit(progress.StageRunStart, 0, 0, 0)
	e.logger.Debug("scroll run started", zap.Stringer("run_id", id), zap.String("label", r.label))

	go r.loop(runCtx, frames, stop)
	return r, true
}

// Run is one activation of the engine.
type Run struct {
	id     uuid.UUID
	label  string
	engine *Engine
	geo    GeometryProvider
	pos    Positioner
	start  time.Time
	cancel context.CancelFunc
	done   chan struct{}

	// mu serialises scroll commands against Cancel.
	mu       sync.Mutex
	outcome  Outcome
	progress float64
	target   float64
}

// ID identifies the run in telemetry.
func (r *Run) ID() uuid.UUID {
	return r.id
}

// Done is closed once the run's goroutine has exited.
func (r *Run) Done() <-chan struct{} {
	return r.done
}

// Outcome reports the current lifecycle state.
func (r *Run) Outcome() Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.outcome
}

// Progress reports the progress of the last issued scroll.
func (r *Run) Progress() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.progress
}

// Cancel stops the run. It is idempotent and a no-op once the run has ended.
// It must not be called from inside Positioner.ScrollTo.
func (r *Run) Cancel() {
	r.end(OutcomeCanceled)
	r.cancel()
}

func (r *Run) loop(ctx context.Context, frames <-chan time.Time, stopFrames func()) {
	defer close(r.done)
	defer r.cancel()

	finished := r.drive(ctx, frames)
	stopFrames()
	if !finished {
		return
	}

	select {
	case <-ctx.Done():
		r.end(OutcomeCanceled)
		return
	case <-r.engine.clock.After(r.engine.cfg.SettleDelay):
	}

	g, ok := r.geo.Read()
	if !ok {
		r.end(OutcomeDetached)
		return
	}
	target := SettleTarget(g, r.engine.cfg.SettleOffset)
	if !r.scrollTo(ctx, target, ModeSmooth, 1) {
		return
	}
	r.emit(progress.StageRunSettle, 1, target, 0)
	r.end(OutcomeCompleted)
}

// drive issues one instant scroll per frame and reports whether progress
// reached 1.
func (r *Run) drive(ctx context.Context, frames <-chan time.Time) bool {
	cfg := r.engine.cfg
	for {
		select {
		case <-ctx.Done():
			r.end(OutcomeCanceled)
			return false
		case <-frames:
			p := Progress(r.engine.clock.Now().Sub(r.start), cfg.Duration)
			g, ok := r.geo.Read()
			if !ok {
				r.end(OutcomeDetached)
				return false
			}
			if !r.scrollTo(ctx, Target(g, p, cfg.FocusFraction), ModeInstant, p) {
				return false
			}
			if p >= 1 {
				return true
			}
		}
	}
}

func (r *Run) scrollTo(ctx context.Context, offset float64, mode Mode, p float64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.outcome != OutcomeRunning {
		return false
	}
	if ctx.Err() != nil {
		r.outcome = OutcomeCanceled
		r.recordEndLocked(OutcomeCanceled.stage())
		return false
	}
	r.pos.ScrollTo(offset, mode)
	r.progress, r.target = p, offset
	return true
}

// end records a terminal outcome once.
func (r *Run) end(o Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.outcome != OutcomeRunning {
		return
	}
	r.outcome = o
	r.recordEndLocked(o.stage())
}

func (r *Run) recordEndLocked(stage progress.Stage) {
	elapsed := r.engine.clock.Now().Sub(r.start)
	if elapsed < 0 {
		elapsed = 0
	}
	r.emit(stage, r.progress, r.target, elapsed)
	r.engine.logger.Debug("scroll run ended",
		zap.Stringer("run_id", r.id),
		zap.String("outcome", string(r.outcome)),
		zap.Float64("progress", r.progress),
	)
}

func (r *Run) emit(stage progress.Stage, p, target float64, dur time.Duration) {
	r.engine.emitter.Emit(progress.Event{
		RunID:    progress.UUIDToBytes(r.id),
		TS:       r.engine.clock.Now(),
		Stage:    stage,
		Fighter:  r.label,
		Progress: p,
		Target:   target,
		Dur:      dur,
	})
}

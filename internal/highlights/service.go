// Package highlights turns fighter biographies into the view model rendered by
// hosts and wires that view to the scroll engine.
package highlights

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/JakeFAU/fighter-timeline/internal/fighter"
	"github.com/JakeFAU/fighter-timeline/internal/progress"
	"github.com/JakeFAU/fighter-timeline/internal/timeline"
)

// View is what a host renders for one biography.
type View struct {
	Fighter    *fighter.Record  `json:"fighter,omitempty"`
	Events     []timeline.Event `json:"events"`
	Mode       timeline.Mode    `json:"mode"`
	DurationMS int64            `json:"duration_ms"`
}

// Service parses biographies and applies the presentation policy.
type Service struct {
	source   fighter.Source
	policy   timeline.Policy
	duration time.Duration
	emitter  progress.Emitter
	logger   *zap.Logger
	now      func() time.Time
}

// Options configures a Service.
type Options struct {
	Source fighter.Source
	Policy timeline.Policy
	// Duration is the scroll duration shared with renderers.
	Duration time.Duration
	Emitter  progress.Emitter
	Logger   *zap.Logger
}

// NewService constructs a Service. Source may be nil when only FromText is used.
func NewService(opts Options) *Service {
	if opts.Emitter == nil {
		opts.Emitter = progress.Discard
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Service{
		source:   opts.Source,
		policy:   opts.Policy,
		duration: opts.Duration,
		emitter:  opts.Emitter,
		logger:   opts.Logger,
		now:      time.Now,
	}
}

// Build looks up a fighter and returns its view. Lookup errors are returned
// unchanged so callers can match fighter.ErrNotFound.
func (s *Service) Build(ctx context.Context, id int64) (View, error) {
	if s.source == nil {
		return View{}, fmt.Errorf("no fighter source configured")
	}
	rec, err := s.source.Get(ctx, id)
	if err != nil {
		return View{}, err
	}
	view := s.view(rec.BioLong, rec.Label())
	view.Fighter = &rec
	return view, nil
}

// FromText builds a view for a raw biography.
func (s *Service) FromText(text string) View {
	return s.view(text, "")
}

func (s *Service) view(text, label string) View {
	report := timeline.Analyze(text)
	mode := s.policy.Mode(report.Events)
	s.emitter.Emit(progress.Event{
		TS:      s.now(),
		Stage:   progress.StageParse,
		Fighter: label,
		Events:  len(report.Events),
		Dropped: report.Dropped,
		Note:    string(mode),
	})
	if report.Dropped > 0 {
		s.logger.Debug("dropped malformed biography blocks",
			zap.String("fighter", label),
			zap.Int("blocks", report.Blocks),
			zap.Int("dropped", report.Dropped),
		)
	}
	return View{
		Events:     report.Events,
		Mode:       mode,
		DurationMS: s.duration.Milliseconds(),
	}
}

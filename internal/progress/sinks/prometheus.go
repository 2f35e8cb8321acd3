package sinks

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/JakeFAU/fighter-timeline/internal/progress"
)

// PrometheusSink exports timeline telemetry. It owns collectors for scroll
// runs started, finished and active, plus parse yield.
type PrometheusSink struct {
	runsStarted  prometheus.Counter
	runsFinished *prometheus.CounterVec
	runsActive   prometheus.Gauge
	runDuration  *prometheus.HistogramVec

	parseEvents  prometheus.Histogram
	parseDropped prometheus.Counter

	tracker *runTracker
}

// NewPrometheusSink registers the collectors against reg, falling back to the
// default registerer.
func NewPrometheusSink(reg prometheus.Registerer) (*PrometheusSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	s := &PrometheusSink{
		runsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "timeline_runs_started_total",
			Help: "Scroll runs started.",
		}),
		runsFinished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "timeline_runs_finished_total",
			Help: "Scroll runs finished, partitioned by outcome.",
		}, []string{"outcome"}),
		runsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "timeline_runs_active",
			Help: "Scroll runs currently driving a container.",
		}),
		runDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "timeline_run_duration_seconds",
			Help:    "Wall time per finished scroll run.",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 15, 20, 30, 60},
		}, []string{"outcome"}),
		parseEvents: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "timeline_parse_events",
			Help:    "Events recovered per parsed biography.",
			Buckets: []float64{0, 1, 2, 3, 5, 8, 13, 21},
		}),
		parseDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "timeline_parse_dropped_blocks_total",
			Help: "Biography blocks skipped because the header was malformed.",
		}),
		tracker: newRunTracker(),
	}
	for _, collector := range []prometheus.Collector{
		s.runsStarted,
		s.runsFinished,
		s.runsActive,
		s.runDuration,
		s.parseEvents,
		s.parseDropped,
	} {
		if err := reg.Register(collector); err != nil {
			return nil, fmt.Errorf("register progress collector: %w", err)
		}
	}
	return s, nil
}

// Consume updates the collectors from batch.
func (s *PrometheusSink) Consume(_ context.Context, batch []progress.Event) error {
	for _, evt := range batch {
		switch {
		case evt.Stage == progress.StageParse:
			s.parseEvents.Observe(float64(evt.Events))
			if evt.Dropped > 0 {
				s.parseDropped.Add(float64(evt.Dropped))
			}
		case evt.Stage == progress.StageRunStart:
			s.runsStarted.Inc()
			if s.tracker.start(evt.RunID) {
				s.runsActive.Inc()
			}
		case evt.Stage.Terminal():
			s.finish(evt)
		}
	}
	return nil
}

func (s *PrometheusSink) finish(evt progress.Event) {
	outcome := outcomeLabel(evt.Stage)
	s.runsFinished.WithLabelValues(outcome).Inc()
	if evt.Dur > 0 {
		s.runDuration.WithLabelValues(outcome).Observe(evt.Dur.Seconds())
	}
	if s.tracker.complete(evt.RunID) {
		s.runsActive.Dec()
	}
}

func outcomeLabel(stage progress.Stage) string {
	return strings.ToLower(strings.TrimPrefix(string(stage), "RUN_"))
}

// Close implements progress.Sink; it performs no action.
func (s *PrometheusSink) Close(context.Context) error {
	return nil
}

type runTracker struct {
	mu      sync.Mutex
	running map[[16]byte]struct{}
}

func newRunTracker() *runTracker {
	return &runTracker{running: make(map[[16]byte]struct{})}
}

func (t *runTracker) start(id [16]byte) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.running[id]; ok {
		return false
	}
	t.running[id] = struct{}{}
	return true
}

func (t *runTracker) complete(id [16]byte) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.running[id]; !ok {
		return false
	}
	delete(t.running, id)
	return true
}

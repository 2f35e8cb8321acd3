package sinks

import (
	"context"

	"go.uber.org/zap"

	"github.com/JakeFAU/fighter-timeline/internal/progress"
)

// LogSink writes one structured log line per event.
type LogSink struct {
	logger *zap.Logger
}

// NewLogSink wires a Zap logger to the sink interface.
func NewLogSink(logger *zap.Logger) *LogSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogSink{logger: logger}
}

// Consume logs each event in the batch.
func (s *LogSink) Consume(_ context.Context, batch []progress.Event) error {
	for _, evt := range batch {
		fields := []zap.Field{
			zap.String("stage", string(evt.Stage)),
			zap.Time("ts", evt.TS),
		}
		if evt.Fighter != "" {
			fields = append(fields, zap.String("fighter", evt.Fighter))
		}
		if evt.Stage == progress.StageParse {
			fields = append(fields, zap.Int("events", evt.Events), zap.Int("dropped", evt.Dropped))
		} else {
			fields = append(fields,
				zap.Stringer("run_id", evt.RunUUID()),
				zap.Float64("progress", evt.Progress),
				zap.Float64("target", evt.Target),
				zap.Duration("dur", evt.Dur),
			)
		}
		if evt.Note != "" {
			fields = append(fields, zap.String("note", evt.Note))
		}
		s.logger.Info("progress event", fields...)
	}
	return nil
}

// Close implements progress.Sink; it performs no action.
func (s *LogSink) Close(context.Context) error {
	return nil
}

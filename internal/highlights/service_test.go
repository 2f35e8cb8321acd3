package highlights

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/JakeFAU/fighter-timeline/internal/fighter"
	"github.com/JakeFAU/fighter-timeline/internal/progress"
	"github.com/JakeFAU/fighter-timeline/internal/storage/memory"
	"github.com/JakeFAU/fighter-timeline/internal/timeline"
)

const richBio = "[2015-03-01] Pro Debut\nWon by decision.\n\n" +
	"[2017] Title Shot\nLost a split decision.\n\n" +
	"[2019] Champion\nFinished in round two."

type recorder struct {
	mu     sync.Mutex
	events []progress.Event
}

func (r *recorder) Emit(evt progress.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, evt)
}

func (r *recorder) stages() []progress.Stage {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]progress.Stage, 0, len(r.events))
	for _, evt := range r.events {
		out = append(out, evt.Stage)
	}
	return out
}

func (r *recorder) last() progress.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[len(r.events)-1]
}

func TestServiceBuild(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	store := memory.NewFighterStore(
		fighter.Record{ID: 1, Name: "Rich", BioLong: richBio},
		fighter.Record{ID: 2, Name: "Sparse", BioLong: "[2020] Debut\n\nnot a header"},
	)
	svc := NewService(Options{Source: store, Duration: 15 * time.Second, Emitter: rec})

	view, err := svc.Build(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, timeline.ModeTimeline, view.Mode)
	require.Len(t, view.Events, 3)
	require.Equal(t, int64(15000), view.DurationMS)
	require.NotNil(t, view.Fighter)
	require.Equal(t, "Rich", view.Fighter.Name)

	evt := rec.last()
	require.Equal(t, progress.StageParse, evt.Stage)
	require.Equal(t, "1", evt.Fighter)
	require.Equal(t, 3, evt.Events)
	require.Zero(t, evt.Dropped)
	require.NoError(t, evt.Validate())

	view, err = svc.Build(context.Background(), 2)
	require.NoError(t, err)
	require.Equal(t, timeline.ModeNoHighlights, view.Mode)
	require.Len(t, view.Events, 1)
	require.Equal(t, 1, rec.last().Dropped)
}

func TestServiceBuildErrors(t *testing.T) {
	t.Parallel()

	svc := NewService(Options{Source: memory.NewFighterStore()})
	_, err := svc.Build(context.Background(), 42)
	require.ErrorIs(t, err, fighter.ErrNotFound)

	_, err = NewService(Options{}).Build(context.Background(), 1)
	require.ErrorContains(t, err, "no fighter source")
}

func TestServiceFromTextHonoursPolicy(t *testing.T) {
	t.Parallel()

	svc := NewService(Options{Policy: timeline.Policy{MinEvents: 4}})
	view := svc.FromText(richBio)
	require.Nil(t, view.Fighter)
	require.Len(t, view.Events, 3)
	require.Equal(t, timeline.ModeNoHighlights, view.Mode)

	view = svc.FromText("")
	require.NotNil(t, view.Events)
	require.Empty(t, view.Events)
	require.Equal(t, timeline.ModeNoHighlights, view.Mode)
}

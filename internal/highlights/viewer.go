package highlights

import (
	"context"
	"sync"

	"github.com/JakeFAU/fighter-timeline/internal/fighter"
	"github.com/JakeFAU/fighter-timeline/internal/scroll"
	"github.com/JakeFAU/fighter-timeline/internal/timeline"
)

// Viewer presents one fighter at a time inside a single container. A new
// record is parsed once; when it has enough events the scroll run restarts,
// otherwise any running scroll is stopped.
type Viewer struct {
	svc  *Service
	ctrl *scroll.Controller

	mu      sync.Mutex
	shown   bool
	current fighter.Record
	view    View
}

// NewViewer binds a Viewer to a scroll controller.
func NewViewer(svc *Service, ctrl *scroll.Controller) *Viewer {
	return &Viewer{svc: svc, ctrl: ctrl}
}

// Show displays rec. Showing the same record again returns the cached view and
// leaves the running scroll alone.
func (v *Viewer) Show(ctx context.Context, rec fighter.Record, geo scroll.GeometryProvider, pos scroll.Positioner) View {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.shown && v.current == rec {
		return v.view
	}

	view := v.svc.view(rec.BioLong, rec.Label())
	view.Fighter = &rec
	v.current, v.view, v.shown = rec, view, true

	if view.Mode != timeline.ModeTimeline {
		v.ctrl.Stop()
		return view
	}
	v.ctrl.Restart(ctx, geo, pos, scroll.WithLabel(rec.Label()))
	return view
}

// Close stops any running scroll.
func (v *Viewer) Close() {
	v.ctrl.Stop()
}

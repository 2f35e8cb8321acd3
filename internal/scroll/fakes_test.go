package scroll

import (
	"sync"
	"testing"
	"time"

	"github.com/JakeFAU/fighter-timeline/internal/progress"
)

type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []fakeTimer
}

type fakeTimer struct {
	at time.Time
	ch chan time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) After(d time.Duration) <-chan time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	ch := make(chan time.Time, 1)
	if d <= 0 {
		ch <- c.now
		return ch
	}
	c.timers = append(c.timers, fakeTimer{at: c.now.Add(d), ch: ch})
	return ch
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	pending := c.timers[:0]
	for _, tm := range c.timers {
		if !tm.at.After(c.now) {
			tm.ch <- c.now
			continue
		}
		pending = append(pending, tm)
	}
	c.timers = pending
}

func (c *fakeClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}

// fakeFrames hands out an unbuffered channel per run so a send completes only
// once the run has taken the frame.
type fakeFrames struct {
	mu      sync.Mutex
	chans   []chan time.Time
	stopped int
}

func (f *fakeFrames) Start() (<-chan time.Time, func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan time.Time)
	f.chans = append(f.chans, ch)
	var once sync.Once
	return ch, func() {
		once.Do(func() {
			f.mu.Lock()
			f.stopped++
			f.mu.Unlock()
		})
	}
}

func (f *fakeFrames) Started() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.chans)
}

func (f *fakeFrames) Stopped() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stopped
}

func (f *fakeFrames) tick(t *testing.T) {
	t.Helper()
	f.mu.Lock()
	ch := f.chans[len(f.chans)-1]
	f.mu.Unlock()
	select {
	case ch <- time.Time{}:
	case <-time.After(time.Second):
		t.Fatal("frame was not consumed")
	}
}

type fakeGeometry struct {
	mu sync.Mutex
	g  Geometry
	ok bool
}

func newFakeGeometry(g Geometry) *fakeGeometry {
	return &fakeGeometry{g: g, ok: true}
}

func (f *fakeGeometry) Read() (Geometry, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.g, f.ok
}

func (f *fakeGeometry) detach() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ok = false
}

type scrollCall struct {
	Offset float64
	Mode   Mode
}

type recorder struct {
	mu    sync.Mutex
	calls []scrollCall
}

func (r *recorder) ScrollTo(offset float64, mode Mode) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, scrollCall{Offset: offset, Mode: mode})
}

func (r *recorder) Calls() []scrollCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]scrollCall(nil), r.calls...)
}

func (r *recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

type eventLog struct {
	mu     sync.Mutex
	events []progress.Event
}

func (l *eventLog) Emit(evt progress.Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, evt)
}

func (l *eventLog) Stages() []progress.Stage {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]progress.Stage, 0, len(l.events))
	for _, evt := range l.events {
		out = append(out, evt.Stage)
	}
	return out
}

func (l *eventLog) Events() []progress.Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]progress.Event(nil), l.events...)
}

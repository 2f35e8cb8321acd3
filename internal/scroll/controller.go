package scroll

import (
	"context"
	"sync"
)

// Controller owns the run driving one container. Restarting cancels the
// previous run and waits for it to exit before a new one begins, so two runs
// never drive the same container.
type Controller struct {
	engine *Engine

	mu      sync.Mutex
	current *Run
}

// NewController binds a Controller to engine.
func NewController(engine *Engine) *Controller {
	return &Controller{engine: engine}
}

// Restart cancels any active run and starts a fresh one with a new start time
// and geometry. It returns false when the container is unavailable, in which
// case no run is active afterwards.
func (c *Controller) Restart(ctx context.Context, geo GeometryProvider, pos Positioner, opts ...StartOption) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopLocked()
	run, ok := c.engine.Start(ctx, geo, pos, opts...)
	if !ok {
		return false
	}
	c.current = run
	return true
}

// Stop cancels the active run, if any. Safe to call repeatedly.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
}

// Current returns the most recently started run, or nil.
func (c *Controller) Current() *Run {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

func (c *Controller) stopLocked() {
	if c.current == nil {
		return
	}
	c.current.Cancel()
	<-c.current.Done()
	c.current = nil
}

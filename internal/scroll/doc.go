// Package scroll drives a viewport along a rendered timeline at a fixed pace.
//
// An Engine turns elapsed time into a scroll target: on every frame it reads
// the container geometry, computes progress = elapsed/Duration clamped to
// [0,1], and requests an immediate scroll to
//
//	max(0, top + progress*height - FocusFraction*viewportHeight)
//
// Once progress reaches 1 it waits SettleDelay and issues one smooth scroll to
// top - SettleOffset. Each Run owns its start time and its goroutine; Cancel is
// idempotent and no scroll is requested by a run after Cancel returns.
// Controller keeps at most one run alive per container.
package scroll

package scroll

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestControllerRestart cancels the old run before driving the new container.
func TestControllerRestart(t *testing.T) {
	t.Parallel()

	h := newHarness()
	ctrl := NewController(h.engine)
	t.Cleanup(ctrl.Stop)

	first := &recorder{}
	require.True(t, ctrl.Restart(context.Background(), newFakeGeometry(testGeometry), first))
	firstRun := ctrl.Current()
	h.frames.tick(t)
	waitCalls(t, first, 1)

	h.clock.Advance(5 * time.Second)

	second := &recorder{}
	other := Geometry{Top: 400, Height: 1000, ViewportHeight: 800}
	require.True(t, ctrl.Restart(context.Background(), newFakeGeometry(other), second))
	secondRun := ctrl.Current()
	require.NotSame(t, firstRun, secondRun)

	select {
	case <-firstRun.Done():
	default:
		t.Fatal("previous run still alive after Restart")
	}
	require.Equal(t, OutcomeCanceled, firstRun.Outcome())

	h.frames.tick(t)
	waitCalls(t, second, 1)
	require.InDelta(t, 120.0, second.Calls()[0].Offset, 1e-9)
	require.Equal(t, 1, first.Len())

	ctrl.Stop()
	ctrl.Stop()
	require.Nil(t, ctrl.Current())
	require.Equal(t, OutcomeCanceled, secondRun.Outcome())
}

func TestControllerRestartWithoutContainer(t *testing.T) {
	t.Parallel()

	h := newHarness()
	ctrl := NewController(h.engine)

	require.True(t, ctrl.Restart(context.Background(), newFakeGeometry(testGeometry), &recorder{}))
	prev := ctrl.Current()

	gone := newFakeGeometry(testGeometry)
	gone.detach()
	require.False(t, ctrl.Restart(context.Background(), gone, &recorder{}))
	require.Nil(t, ctrl.Current())
	require.Equal(t, OutcomeCanceled, prev.Outcome())
}

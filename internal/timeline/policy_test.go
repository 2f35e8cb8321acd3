package timeline

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPolicyMode(t *testing.T) {
	t.Parallel()

	three := Parse(careerBio)
	two := three[:2]

	require.Equal(t, ModeTimeline, Policy{}.Mode(three))
	require.Equal(t, ModeNoHighlights, Policy{}.Mode(two))
	require.Equal(t, ModeNoHighlights, Policy{}.Mode(nil))

	require.Equal(t, ModeTimeline, Policy{MinEvents: 2}.Mode(two))
	require.Equal(t, ModeNoHighlights, Policy{MinEvents: 4}.Mode(three))
}

func TestPolicyThresholdDefaults(t *testing.T) {
	t.Parallel()

	require.Equal(t, DefaultMinEvents, Policy{}.Threshold())
	require.Equal(t, DefaultMinEvents, Policy{MinEvents: -1}.Threshold())
	require.Equal(t, 5, Policy{MinEvents: 5}.Threshold())
}

package timeline

// DefaultMinEvents is the smallest number of events worth drawing as a
// timeline.
const DefaultMinEvents = 3

// Mode selects how a consuming view presents parsed events.
type Mode string

// Presentation modes.
const (
	ModeTimeline     Mode = "timeline"
	ModeNoHighlights Mode = "no_highlights"
)

// Policy decides whether a parsed biography has enough material for a
// timeline. The zero value uses DefaultMinEvents.
type Policy struct {
	MinEvents int
}

// Threshold returns the effective minimum event count.
func (p Policy) Threshold() int {
	if p.MinEvents <= 0 {
		return DefaultMinEvents
	}
	return p.MinEvents
}

// Mode picks the presentation mode for events.
func (p Policy) Mode(events []Event) Mode {
	if len(events) >= p.Threshold() {
		return ModeTimeline
	}
	return ModeNoHighlights
}

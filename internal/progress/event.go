package progress

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Stage denotes the milestone represented by an Event.
type Stage string

// Supported stages.
const (
	StageParse       Stage = "PARSE"
	StageRunStart    Stage = "RUN_START"
	StageRunSettle   Stage = "RUN_SETTLE"
	StageRunDone     Stage = "RUN_DONE"
	StageRunCanceled Stage = "RUN_CANCELED"
	StageRunDetached Stage = "RUN_DETACHED"
)

// Event captures one observation from the parser or the scroll engine.
type Event struct {
	// RunID identifies a scroll run; it is zero for parse events.
	RunID [16]byte
	// TS is the timestamp recorded by the emitter.
	TS time.Time
	Stage Stage
	// Fighter optionally labels the record the event belongs to.
	Fighter string
	// Progress is the run progress in [0,1] when the event was recorded.
	Progress float64
	// Target is the last scroll offset requested by the run.
	Target float64
	// Events and Dropped carry parse counts.
	Events  int
	Dropped int
	// Dur is the elapsed run time for terminal run stages.
	Dur  time.Duration
	Note string
}

// IsRun reports whether the stage belongs to a scroll run.
func (s Stage) IsRun() bool {
	switch s {
	case StageRunStart, StageRunSettle, StageRunDone, StageRunCanceled, StageRunDetached:
		return true
	default:
		return false
	}
}

// Terminal reports whether the stage ends a run.
func (s Stage) Terminal() bool {
	return s == StageRunDone || s == StageRunCanceled || s == StageRunDetached
}

// Validate performs coarse validation on Event payloads.
func (e Event) Validate() error {
	if e.TS.IsZero() {
		return errors.New("timestamp is required")
	}
	switch {
	case e.Stage == StageParse:
		if e.Events < 0 || e.Dropped < 0 {
			return errors.New("parse counts must be >= 0")
		}
	case e.Stage.IsRun():
		if e.RunID == [16]byte{} {
			return errors.New("run id is required")
		}
		if e.Progress < 0 || e.Progress > 1 {
			return fmt.Errorf("progress %v out of range", e.Progress)
		}
	default:
		return fmt.Errorf("unknown stage %q", e.Stage)
	}
	if e.Dur < 0 {
		return errors.New("duration must be >= 0")
	}
	return nil
}

// RunUUID converts the binary run ID to uuid.UUID.
func (e Event) RunUUID() uuid.UUID {
	return uuid.UUID(e.RunID)
}

// UUIDToBytes encodes a uuid.UUID into the Event form.
func UUIDToBytes(id uuid.UUID) [16]byte {
	var dest [16]byte
	copy(dest[:], id[:])
	return dest
}

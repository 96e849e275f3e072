package clock

import "time"

// Label names the phase shown above the countdown.
type Label string

const (
	LabelSession Label = "Session"
	LabelBreak   Label = "Break"
)

// Phase is the tick driver state derived from a State snapshot.
type Phase string

const (
	PhaseIdle     Phase = "idle"
	PhaseCounting Phase = "counting"
	PhaseExpired  Phase = "expired"
)

// State is a read-only snapshot of the clock.
type State struct {
	BreakLength   int
	SessionLength int
	Label         Label
	TimeRemaining int
	Running       bool
}

// Phase derives the tick driver state.
func (state State) Phase() Phase {
	if !state.Running {
		return PhaseIdle
	}
	if state.TimeRemaining <= 0 {
		return PhaseExpired
	}
	return PhaseCounting
}

// Display returns the remaining time as MM:SS.
func (state State) Display() string {
	return FormatTime(state.TimeRemaining)
}

// EventType defines the type of clock event.
type EventType string

const (
	EventStateChange EventType = "state_change"
	EventTick        EventType = "tick"
	EventExpired     EventType = "expired"
)

// Event represents a clock update for observers.
type Event struct {
	Type  EventType
	State State
	At    time.Time
}

package clock

import (
	"log"
	"sync"
	"time"

	"tfclock/internal/core/model"
)

// Alert is the sound collaborator fired on expiry and rewound on reset.
type Alert interface {
	Play() error
	Rewind() error
}

// Options contains runtime collaborators for Clock.
type Options struct {
	Scheduler Scheduler
	Alert     Alert
	Logf      func(format string, args ...any)
	Now       func() time.Time
}

// Clock owns the session/break countdown state and its tick driver.
type Clock struct {
	mu         sync.Mutex
	config     model.ClockConfig
	options    Options
	state      State
	pending    Timer
	generation uint64
	events     []chan Event
	closed     bool
}

// New creates an idle Clock loaded with the configured defaults.
func New(config model.ClockConfig, options Options) *Clock {
	defaults := model.DefaultClockConfig()
	if config.TickInterval <= 0 {
		config.TickInterval = defaults.TickInterval
	}
	if config.Bounds.Min <= 0 || config.Bounds.Max < config.Bounds.Min {
		config.Bounds = defaults.Bounds
	}
	if !config.Bounds.Contains(config.BreakLength) {
		config.BreakLength = defaults.BreakLength
	}
	if !config.Bounds.Contains(config.SessionLength) {
		config.SessionLength = defaults.SessionLength
	}
	if options.Scheduler == nil {
		options.Scheduler = SystemScheduler
	}
	if options.Alert == nil {
		options.Alert = silentAlert{}
	}
	if options.Logf == nil {
		options.Logf = log.Printf
	}
	if options.Now == nil {
		options.Now = time.Now
	}

	clock := &Clock{
		config:  config,
		options: options,
	}
	clock.state = clock.initialState()
	return clock
}

// State returns a snapshot of the current fields.
func (clock *Clock) State() State {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	return clock.state
}

// Subscribe registers a new observer channel.
func (clock *Clock) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	clock.mu.Lock()
	defer clock.mu.Unlock()
	if clock.closed {
		close(ch)
		return ch
	}
	clock.events = append(clock.events, ch)
	return ch
}

// IncrementBreak adds a minute to the break length unless running or at the maximum.
func (clock *Clock) IncrementBreak() bool {
	return clock.mutate(func(state *State) bool {
		if state.Running || state.BreakLength >= clock.config.Bounds.Max {
			return false
		}
		state.BreakLength++
		return true
	})
}

// DecrementBreak removes a minute from the break length unless running or at the minimum.
func (clock *Clock) DecrementBreak() bool {
	return clock.mutate(func(state *State) bool {
		if state.Running || state.BreakLength <= clock.config.Bounds.Min {
			return false
		}
		state.BreakLength--
		return true
	})
}

// IncrementSession adds a minute to the session length and resyncs the countdown.
func (clock *Clock) IncrementSession() bool {
	return clock.mutate(func(state *State) bool {
		if state.Running || state.SessionLength >= clock.config.Bounds.Max {
			return false
		}
		state.SessionLength++
		state.TimeRemaining = state.SessionLength * 60
		return true
	})
}

// DecrementSession removes a minute from the session length and resyncs the countdown.
func (clock *Clock) DecrementSession() bool {
	return clock.mutate(func(state *State) bool {
		if state.Running || state.SessionLength <= clock.config.Bounds.Min {
			return false
		}
		state.SessionLength--
		state.TimeRemaining = state.SessionLength * 60
		return true
	})
}

// ToggleRunning starts or stops the countdown.
func (clock *Clock) ToggleRunning() bool {
	return clock.mutate(func(state *State) bool {
		state.Running = !state.Running
		return true
	})
}

// Pause stops the countdown if it is running.
func (clock *Clock) Pause() bool {
	return clock.mutate(func(state *State) bool {
		if !state.Running {
			return false
		}
		state.Running = false
		return true
	})
}

// Reset restores every field to its default and rewinds the alert.
func (clock *Clock) Reset() {
	clock.mutate(func(state *State) bool {
		*state = clock.initialState()
		return true
	})
	if err := clock.options.Alert.Rewind(); err != nil {
		clock.options.Logf("clock: rewind alert: %v", err)
	}
}

// SetSwitchLabel changes whether expiry toggles the Session/Break label.
func (clock *Clock) SetSwitchLabel(enabled bool) {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	clock.config.SwitchLabel = enabled
}

// Close cancels the pending tick and closes observers.
func (clock *Clock) Close() {
	clock.mu.Lock()
	if clock.closed {
		clock.mu.Unlock()
		return
	}
	clock.closed = true
	clock.cancelLocked()
	events := clock.events
	clock.events = nil
	clock.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

func (clock *Clock) mutate(apply func(state *State) bool) bool {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	if clock.closed {
		return false
	}
	if !apply(&clock.state) {
		return false
	}
	clock.rearmLocked()
	clock.emitLocked(EventStateChange)
	return true
}

func (clock *Clock) tick(generation uint64) {
	clock.mu.Lock()
	if clock.closed || generation != clock.generation || !clock.state.Running {
		clock.mu.Unlock()
		return
	}
	clock.pending = nil

	if clock.state.TimeRemaining > 0 {
		clock.state.TimeRemaining--
	}
	expired := clock.state.TimeRemaining == 0
	if expired {
		clock.emitLocked(EventExpired)
		clock.expireLocked()
	}
	clock.emitLocked(EventTick)
	clock.rearmLocked()
	clock.mu.Unlock()

	if expired {
		if err := clock.options.Alert.Play(); err != nil {
			clock.options.Logf("clock: play alert: %v", err)
		}
	}
}

func (clock *Clock) expireLocked() {
	if clock.state.Label == LabelSession {
		clock.state.TimeRemaining = clock.state.BreakLength * 60
		if clock.config.SwitchLabel {
			clock.state.Label = LabelBreak
		}
		return
	}
	clock.state.TimeRemaining = clock.state.SessionLength * 60
	if clock.config.SwitchLabel {
		clock.state.Label = LabelSession
	}
}

// rearmLocked cancels the pending tick and, while running, schedules the next one.
func (clock *Clock) rearmLocked() {
	clock.cancelLocked()
	if !clock.state.Running {
		return
	}
	generation := clock.generation
	clock.pending = clock.options.Scheduler.AfterFunc(clock.config.TickInterval, func() {
		clock.tick(generation)
	})
}

func (clock *Clock) cancelLocked() {
	clock.generation++
	if clock.pending != nil {
		clock.pending.Stop()
		clock.pending = nil
	}
}

func (clock *Clock) initialState() State {
	return State{
		BreakLength:   clock.config.BreakLength,
		SessionLength: clock.config.SessionLength,
		Label:         LabelSession,
		TimeRemaining: clock.config.SessionLength * 60,
		Running:       false,
	}
}

func (clock *Clock) emitLocked(eventType EventType) {
	event := Event{
		Type:  eventType,
		State: clock.state,
		At:    clock.options.Now(),
	}
	for _, ch := range clock.events {
		select {
		case ch <- event:
		default:
		}
	}
}

type silentAlert struct{}

func (silentAlert) Play() error   { return nil }
func (silentAlert) Rewind() error { return nil }

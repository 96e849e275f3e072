package model

import "time"

// LengthBounds constrains an adjustable phase length in minutes.
type LengthBounds struct {
	Min int
	Max int
}

// Contains reports whether value lies inside the bounds.
func (bounds LengthBounds) Contains(value int) bool {
	return value >= bounds.Min && value <= bounds.Max
}

// ClockConfig contains the defaults and limits for the session/break clock.
type ClockConfig struct {
	BreakLength   int
	SessionLength int
	Bounds        LengthBounds

	TickInterval time.Duration
	// SwitchLabel toggles the Session/Break label on expiry. Off by default:
	// the label stays on "Session" and only the reloaded duration changes.
	SwitchLabel bool
}

// DefaultClockConfig returns the 25 + 5 defaults.
func DefaultClockConfig() ClockConfig {
	return ClockConfig{
		BreakLength:   5,
		SessionLength: 25,
		Bounds: LengthBounds{
			Min: 1,
			Max: 60,
		},
		TickInterval: time.Second,
	}
}

package core

import "time"

// Signal is the light shown to one approach.
// Remaining is a display countdown; phase control lives in the scheduler.
type Signal struct {
	State     SignalState
	Remaining time.Duration
}

// NewSignal returns a red signal with no countdown
func NewSignal() Signal {
	return Signal{State: Red}
}

// Set overwrites the state and countdown unconditionally
func (s *Signal) Set(state SignalState, duration time.Duration) {
	s.State = state
	if duration < 0 {
		duration = 0
	}
	s.Remaining = duration
}

// Tick decrements the countdown, clamped at zero
func (s *Signal) Tick(dt time.Duration) {
	if dt <= 0 || s.Remaining <= 0 {
		return
	}
	s.Remaining -= dt
	if s.Remaining < 0 {
		s.Remaining = 0
	}
}

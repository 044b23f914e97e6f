package traffix

import (
	"time"

	"github.com/google/uuid"

	"github.com/anggasct/traffix/pkg/core"
)

// applyPhase sets the phase, its timer and the signals without notifying
func (s *Simulation) applyPhase(p core.PhaseState) {
	s.phase = p
	s.phaseTimer = p.Duration(s.cfg)

	for i := range s.signals {
		s.signals[i].Set(core.Red, 0)
	}
	s.signals[p.Direction()].Set(p.Signal(), s.phaseTimer)
}

// enterPhase moves the scheduler into p and notifies observers.
// The timer restarts at the full duration of p; overshoot is discarded.
func (s *Simulation) enterPhase(p core.PhaseState, cause core.PhaseCause) {
	from := s.phase
	s.applyPhase(p)

	s.observers.NotifyPhaseChange(core.PhaseChange{
		ID:       uuid.NewString(),
		From:     from,
		To:       p,
		Duration: s.phaseTimer,
		Cause:    cause,
		At:       s.clock,
	})
}

// ToggleAutoMode flips auto mode. Disabling freezes the signals as they are,
// enabling restarts the cycle at N_GREEN.
func (s *Simulation) ToggleAutoMode() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.autoMode = !s.autoMode
	if s.autoMode {
		s.enterPhase(core.NGreen, core.CauseToggle)
	}
	s.observers.NotifyModeChange(s.autoMode)
}

// AutoMode reports whether the phase scheduler is running
func (s *Simulation) AutoMode() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.autoMode
}

// Phase returns the current phase and the time left in it
func (s *Simulation) Phase() (core.PhaseState, time.Duration) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.phase, s.phaseTimer
}

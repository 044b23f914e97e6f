package traffix

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/anggasct/traffix/pkg/core"
)

type emergencyState struct {
	active     bool
	remaining  time.Duration
	direction  core.Direction
	incidentID string
}

// clearanceWatch follows one emergency vehicle until it leaves the canvas
type clearanceWatch struct {
	incidentID string
	vehicleID  uint64
	direction  core.Direction
	spawnedAt  time.Duration
}

// TriggerEmergency preempts a random approach.
// It returns false when a preemption window is already open.
func (s *Simulation) TriggerEmergency() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.emergency.active {
		return false
	}
	dir := core.Directions[s.rng.Intn(core.NumApproaches)]
	s.startEmergency(dir)
	return true
}

// TriggerEmergencyAt preempts the given approach
func (s *Simulation) TriggerEmergencyAt(dir core.Direction) (bool, error) {
	if !dir.Valid() {
		return false, core.NewInputError(core.ErrCodeInvalidDirection, "direction", int(dir))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.emergency.active {
		return false, nil
	}
	s.startEmergency(dir)
	return true, nil
}

// EmergencyActive reports whether a preemption window is open
func (s *Simulation) EmergencyActive() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.emergency.active
}

// startEmergency opens a window on dir. When dir has no room the vehicle is
// placed on another approach, and that approach is preempted instead.
func (s *Simulation) startEmergency(dir core.Direction) {
	target := dir
	if s.approaches[dir].Full() {
		if other, ok := lo.Find(core.Directions[:], func(d core.Direction) bool {
			return !s.approaches[d].Full()
		}); ok {
			target = other
		}
	}

	s.emergency = emergencyState{
		active:     true,
		remaining:  s.cfg.EmergencyDuration,
		direction:  target,
		incidentID: uuid.NewString(),
	}

	wasAuto := s.autoMode
	s.autoMode = false

	var vehicleID uint64
	tracked := false
	if !s.approaches[target].Full() {
		vehicleID = s.nextID()
		tracked = s.approaches[target].Spawn(core.Emergency, vehicleID)
	}
	if tracked {
		s.watches = append(s.watches, clearanceWatch{
			incidentID: s.emergency.incidentID,
			vehicleID:  vehicleID,
			direction:  target,
			spawnedAt:  s.clock,
		})
	}

	for i := range s.signals {
		s.signals[i].Set(core.Red, 0)
	}
	s.signals[target].Set(core.Green, s.cfg.EmergencyDuration)

	if wasAuto {
		s.observers.NotifyModeChange(false)
	}
	s.observers.NotifyEmergencyTriggered(core.EmergencyStart{
		IncidentID: s.emergency.incidentID,
		Direction:  target,
		VehicleID:  vehicleID,
		Tracked:    tracked,
		Window:     s.cfg.EmergencyDuration,
		At:         s.clock,
	})
}

// endEmergency closes the window and hands control back to the scheduler
// at the yellow phase of the preempted direction
func (s *Simulation) endEmergency() {
	dir := s.emergency.direction
	incidentID := s.emergency.incidentID
	s.emergency = emergencyState{}

	s.autoMode = true
	s.enterPhase(core.YellowPhase(dir), core.CauseHandoff)
	s.observers.NotifyModeChange(true)
	s.observers.NotifyEmergencyEnded(incidentID, dir)
}

// checkClearance concludes every watch whose vehicle has left the canvas or
// has been followed longer than the clearance timeout
func (s *Simulation) checkClearance() {
	if len(s.watches) == 0 {
		return
	}

	pending := s.watches[:0]
	for _, w := range s.watches {
		elapsed := s.clock - w.spawnedAt

		if _, present := s.approaches[w.direction].Find(w.vehicleID); !present {
			s.recordClearance(w, elapsed, false)
			continue
		}

		if elapsed >= s.cfg.EmergencyClearanceTimeout {
			s.recordClearance(w, elapsed, true)
			s.observers.NotifyError(core.NewClearanceTimeoutError(w.incidentID, w.vehicleID, w.direction, elapsed))
			if s.emergency.active && s.emergency.incidentID == w.incidentID {
				s.endEmergency()
			}
			continue
		}

		pending = append(pending, w)
	}
	s.watches = pending
}

// recordClearance logs a concluded watch. Only real exits become response samples.
func (s *Simulation) recordClearance(w clearanceWatch, elapsed time.Duration, timedOut bool) {
	s.emergencySeq++

	event := core.EmergencyEvent{
		ID:            fmt.Sprintf("EV-%d", s.emergencySeq),
		IncidentID:    w.incidentID,
		Time:          s.now(),
		Type:          s.cfg.EmergencyVehicleType,
		ClearanceTime: elapsed,
		Direction:     w.direction,
		VehicleID:     w.vehicleID,
		TimedOut:      timedOut,
	}
	if !timedOut {
		s.responseSamples = append(s.responseSamples, elapsed)
	}
	s.emergencyLog.Push(event)
	s.observers.NotifyEmergencyCleared(event)
}

package traffix

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/anggasct/traffix/pkg/approach"
	"github.com/anggasct/traffix/pkg/core"
	"github.com/anggasct/traffix/pkg/vehicle"
)

// Simulation is a single four-approach intersection.
//
// Update and the control operations take the write lock, readers take the
// read lock and receive copies, so every tick is observed atomically.
// Observers are notified synchronously while the lock is held and must not
// call back into the Simulation.
type Simulation struct {
	mu sync.RWMutex

	cfg        core.Config
	rng        core.Rand
	now        func() time.Time
	instanceID string

	signals    [core.NumApproaches]core.Signal
	approaches [core.NumApproaches]*approach.Approach

	autoMode   bool
	phase      core.PhaseState
	phaseTimer time.Duration

	emergency emergencyState
	watches   []clearanceWatch

	violations      *eventLog[core.Violation]
	emergencyLog    *eventLog[core.EmergencyEvent]
	responseSamples []time.Duration
	processed       uint64

	clock         time.Duration
	nextVehicleID uint64
	violationSeq  uint64
	emergencySeq  uint64

	observers *core.ObserverManager
}

// New creates a simulation in auto mode showing North green
func New(cfg core.Config) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rng := cfg.Rand
	if rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng = rand.New(rand.NewSource(seed))
	}
	now := cfg.Clock
	if now == nil {
		now = time.Now
	}

	s := &Simulation{
		cfg:          cfg,
		rng:          rng,
		now:          now,
		instanceID:   uuid.NewString(),
		autoMode:     true,
		violations:   newEventLog[core.Violation](cfg.LogCapacity),
		emergencyLog: newEventLog[core.EmergencyEvent](cfg.LogCapacity),
		observers:    core.NewObserverManager(),
	}
	for _, dir := range core.Directions {
		s.signals[dir] = core.NewSignal()
		s.approaches[dir] = approach.New(dir, cfg, rng)
	}
	s.applyPhase(core.NGreen)

	return s, nil
}

// NewDefault creates a simulation with DefaultConfig
func NewDefault() *Simulation {
	s, err := New(core.DefaultConfig())
	if err != nil {
		panic(fmt.Sprintf("traffix: default configuration rejected: %v", err))
	}
	return s
}

// Update advances the simulation by dt. Negative values are treated as zero.
func (s *Simulation) Update(dt time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if dt < 0 {
		dt = 0
	}
	s.clock += dt

	for i := range s.signals {
		s.signals[i].Tick(dt)
	}

	if s.emergency.active {
		s.emergency.remaining -= dt
		if s.emergency.remaining <= 0 {
			s.endEmergency()
		}
	} else if s.autoMode {
		s.phaseTimer -= dt
		if s.phaseTimer <= 0 {
			s.enterPhase(s.phase.Next(), core.CauseAuto)
		}
	}

	for _, dir := range core.Directions {
		report := s.approaches[dir].Update(dt, s.signals[dir].State, s.nextID)
		s.apply(dir, report)
	}

	s.checkClearance()
}

func (s *Simulation) nextID() uint64 {
	s.nextVehicleID++
	return s.nextVehicleID
}

// apply folds one approach report into the simulation state
func (s *Simulation) apply(dir core.Direction, report approach.Report) {
	for _, notice := range report.Violations {
		s.recordViolation(dir, notice)
	}
	if len(report.Exited) > 0 {
		s.processed += uint64(len(report.Exited))
		s.observers.NotifyVehicleExit(core.VehicleExit{Direction: dir, IDs: report.Exited})
	}
}

func (s *Simulation) recordViolation(dir core.Direction, notice approach.Notice) {
	s.violationSeq++

	kind := "Red Light"
	if notice.Signal == core.Yellow {
		kind = "Yellow Light"
	}

	v := core.Violation{
		ID:        fmt.Sprintf("V-%d", s.violationSeq),
		Time:      s.now(),
		Location:  dir.Bound(),
		Type:      kind,
		Fine:      s.cfg.ViolationFine,
		VehicleID: notice.VehicleID,
		Direction: dir,
		Signal:    notice.Signal,
	}
	s.violations.Push(v)
	s.observers.NotifyViolation(v)
}

// SetAllSignals overrides all four signals with state
func (s *Simulation) SetAllSignals(state core.SignalState) error {
	if !state.Valid() {
		return core.NewInputError(core.ErrCodeInvalidSignalState, "signal", int(state))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.signals {
		s.signals[i].Set(state, 0)
	}
	return nil
}

// AddObserver registers an observer
func (s *Simulation) AddObserver(observer core.Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers.AddObserver(observer)
}

// RemoveObserver unregisters an observer
func (s *Simulation) RemoveObserver(observer core.Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers.RemoveObserver(observer)
}

// Signals returns the four signals in N,S,E,W order
func (s *Simulation) Signals() [core.NumApproaches]core.SignalView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.signalViews()
}

func (s *Simulation) signalViews() [core.NumApproaches]core.SignalView {
	var out [core.NumApproaches]core.SignalView
	for _, dir := range core.Directions {
		out[dir] = core.SignalView{
			Direction: dir,
			State:     s.signals[dir].State,
			Remaining: s.signals[dir].Remaining,
		}
	}
	return out
}

// Vehicles returns every vehicle, flattened in N,S,E,W order
func (s *Simulation) Vehicles() []core.VehicleView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.vehicleViews()
}

func (s *Simulation) vehicleViews() []core.VehicleView {
	return lo.Map(s.allVehicles(), func(v vehicle.Vehicle, _ int) core.VehicleView {
		return v.View()
	})
}

func (s *Simulation) allVehicles() []vehicle.Vehicle {
	return lo.FlatMap(core.Directions[:], func(dir core.Direction, _ int) []vehicle.Vehicle {
		return s.approaches[dir].Vehicles()
	})
}

// VehiclesOn returns the vehicles of one approach, newest first
func (s *Simulation) VehiclesOn(dir core.Direction) []core.VehicleView {
	if !dir.Valid() {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return lo.Map(s.approaches[dir].Vehicles(), func(v vehicle.Vehicle, _ int) core.VehicleView {
		return v.View()
	})
}

// Violations returns the violation log, newest first
func (s *Simulation) Violations() []core.Violation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.violations.Items()
}

// EmergencyLog returns the clearance log, newest first
func (s *Simulation) EmergencyLog() []core.EmergencyEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.emergencyLog.Items()
}

// Snapshot returns everything a live map needs in one consistent read
func (s *Simulation) Snapshot() core.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	signals := s.signalViews()
	return core.Snapshot{
		InstanceID:      s.instanceID,
		Clock:           s.clock,
		Phase:           s.phase,
		PhaseRemaining:  s.phaseTimer,
		AutoMode:        s.autoMode,
		EmergencyActive: s.emergency.active,
		Signals:         signals[:],
		Vehicles:        s.vehicleViews(),
		Stats:           s.stats(),
	}
}

// Clock returns the total simulated time
func (s *Simulation) Clock() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.clock
}

// InstanceID returns the unique id of this simulation
func (s *Simulation) InstanceID() string {
	return s.instanceID
}

// Config returns the configuration the simulation was built with
func (s *Simulation) Config() core.Config {
	return s.cfg
}

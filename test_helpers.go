package traffix

import (
	"sync"
	"testing"
	"time"

	"github.com/anggasct/traffix/pkg/core"
)

// TestObserver is a mock observer for testing that captures all observer events
type TestObserver struct {
	mutex           sync.RWMutex
	PhaseChanges    []core.PhaseChange
	ModeChanges     []bool
	Violations      []core.Violation
	EmergencyStarts []core.EmergencyStart
	EmergencyEnds   []EmergencyEndEvent
	EmergencyClears []core.EmergencyEvent
	Exits           []core.VehicleExit
	Errors          []error
}

type EmergencyEndEvent struct {
	IncidentID string
	Direction  core.Direction
}

// NewTestObserver creates a new test observer
func NewTestObserver() *TestObserver {
	return &TestObserver{
		PhaseChanges:    make([]core.PhaseChange, 0),
		ModeChanges:     make([]bool, 0),
		Violations:      make([]core.Violation, 0),
		EmergencyStarts: make([]core.EmergencyStart, 0),
		EmergencyEnds:   make([]EmergencyEndEvent, 0),
		EmergencyClears: make([]core.EmergencyEvent, 0),
		Exits:           make([]core.VehicleExit, 0),
		Errors:          make([]error, 0),
	}
}

// Observer interface implementations
func (o *TestObserver) OnPhaseChange(change core.PhaseChange) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.PhaseChanges = append(o.PhaseChanges, change)
}

func (o *TestObserver) OnModeChange(auto bool) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.ModeChanges = append(o.ModeChanges, auto)
}

// ExtendedObserver interface implementations
func (o *TestObserver) OnViolation(v core.Violation) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.Violations = append(o.Violations, v)
}

func (o *TestObserver) OnEmergencyTriggered(start core.EmergencyStart) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.EmergencyStarts = append(o.EmergencyStarts, start)
}

func (o *TestObserver) OnEmergencyEnded(incidentID string, dir core.Direction) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.EmergencyEnds = append(o.EmergencyEnds, EmergencyEndEvent{IncidentID: incidentID, Direction: dir})
}

func (o *TestObserver) OnEmergencyCleared(event core.EmergencyEvent) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.EmergencyClears = append(o.EmergencyClears, event)
}

func (o *TestObserver) OnVehicleExit(exit core.VehicleExit) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.Exits = append(o.Exits, exit)
}

func (o *TestObserver) OnError(err error) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.Errors = append(o.Errors, err)
}

// Helper methods for test assertions
func (o *TestObserver) Reset() {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.PhaseChanges = nil
	o.ModeChanges = nil
	o.Violations = nil
	o.EmergencyStarts = nil
	o.EmergencyEnds = nil
	o.EmergencyClears = nil
	o.Exits = nil
	o.Errors = nil
}

func (o *TestObserver) PhaseChangeCount() int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	return len(o.PhaseChanges)
}

func (o *TestObserver) LastPhaseChange() *core.PhaseChange {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	if len(o.PhaseChanges) == 0 {
		return nil
	}
	return &o.PhaseChanges[len(o.PhaseChanges)-1]
}

func (o *TestObserver) ErrorCount() int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	return len(o.Errors)
}

// Test simulation builders - common configurations for testing

// ScriptedRand replays Floats and Ints in order, repeating the last value once exhausted
type ScriptedRand struct {
	Floats []float64
	Ints   []int
}

func (r *ScriptedRand) Float64() float64 {
	if len(r.Floats) == 0 {
		return 0
	}
	f := r.Floats[0]
	if len(r.Floats) > 1 {
		r.Floats = r.Floats[1:]
	}
	return f
}

func (r *ScriptedRand) Intn(n int) int {
	if len(r.Ints) == 0 {
		return 0
	}
	i := r.Ints[0]
	if len(r.Ints) > 1 {
		r.Ints = r.Ints[1:]
	}
	return i % n
}

// QuietConfig returns a configuration whose spawn timers never fire within
// horizon (up to a few minutes) and whose vehicles never run lights.
// Every draw is 0.999, so vehicles turn right and TriggerEmergency picks North.
func QuietConfig(horizon time.Duration) core.Config {
	cfg := core.DefaultConfig()
	cfg.SpawnMin = horizon + time.Second
	cfg.SpawnMax = horizon + 2*time.Second
	cfg.ViolationProbability = 0
	cfg.Rand = &ScriptedRand{Floats: []float64{0.999}}
	return cfg
}

// CreateTestSimulation creates a simulation, failing the test on an invalid configuration
func CreateTestSimulation(t *testing.T, cfg core.Config) *Simulation {
	t.Helper()
	sim, err := New(cfg)
	if err != nil {
		t.Fatalf("Failed to create simulation: %v", err)
	}
	return sim
}

// Test assertions and utilities

// AssertPhase checks the current phase and its remaining time
func AssertPhase(t *testing.T, sim *Simulation, expected core.PhaseState, remaining time.Duration) {
	t.Helper()
	phase, timer := sim.Phase()
	if phase != expected {
		t.Errorf("Expected phase %s, got %s", expected, phase)
	}
	if timer != remaining {
		t.Errorf("Expected phase timer %s, got %s", remaining, timer)
	}
}

// AssertSignals checks all four signal colours in N,S,E,W order
func AssertSignals(t *testing.T, sim *Simulation, expected [core.NumApproaches]core.SignalState) {
	t.Helper()
	for i, view := range sim.Signals() {
		if view.State != expected[i] {
			t.Errorf("Expected %s signal %s, got %s", view.Direction, expected[i], view.State)
		}
	}
}

// AssertSingleNonRed checks that exactly one approach shows a non-red signal
func AssertSingleNonRed(t *testing.T, sim *Simulation) {
	t.Helper()
	nonRed := 0
	for _, view := range sim.Signals() {
		if view.State != core.Red {
			nonRed++
		}
	}
	if nonRed != 1 {
		t.Errorf("Expected exactly one non-red signal, got %d", nonRed)
	}
}

// Run advances sim by total in steps of tick
func Run(sim *Simulation, total, tick time.Duration) {
	for elapsed := time.Duration(0); elapsed < total; elapsed += tick {
		step := tick
		if total-elapsed < tick {
			step = total - elapsed
		}
		sim.Update(step)
	}
}

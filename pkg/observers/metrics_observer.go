package observers

import (
	"sync"
	"time"

	"github.com/anggasct/traffix/pkg/core"
)

// MetricsObserver collects metrics about simulation execution
type MetricsObserver struct {
	phaseVisits          map[core.PhaseState]int
	phaseTimeScheduled   map[core.PhaseState]time.Duration
	transitionCounts     map[string]int
	violationsByDir      map[core.Direction]int
	vehiclesExited       map[core.Direction]int
	emergenciesTriggered int
	emergenciesCleared   int
	emergenciesTimedOut  int
	errorCount           int
	mutex                sync.RWMutex
}

// NewMetricsObserver creates a new metrics observer
func NewMetricsObserver() *MetricsObserver {
	return &MetricsObserver{
		phaseVisits:        make(map[core.PhaseState]int),
		phaseTimeScheduled: make(map[core.PhaseState]time.Duration),
		transitionCounts:   make(map[string]int),
		violationsByDir:    make(map[core.Direction]int),
		vehiclesExited:     make(map[core.Direction]int),
	}
}

// OnPhaseChange records phase entry metrics
func (o *MetricsObserver) OnPhaseChange(change core.PhaseChange) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	o.phaseVisits[change.To]++
	o.phaseTimeScheduled[change.To] += change.Duration

	transitionKey := change.From.String() + "->" + change.To.String()
	o.transitionCounts[transitionKey]++
}

// OnModeChange is a no-op
func (o *MetricsObserver) OnModeChange(auto bool) {}

// OnViolation records violation metrics
func (o *MetricsObserver) OnViolation(v core.Violation) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	o.violationsByDir[v.Direction]++
}

// OnEmergencyTriggered records preemption starts
func (o *MetricsObserver) OnEmergencyTriggered(start core.EmergencyStart) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	o.emergenciesTriggered++
}

// OnEmergencyEnded is a no-op
func (o *MetricsObserver) OnEmergencyEnded(incidentID string, dir core.Direction) {}

// OnEmergencyCleared records clearance metrics
func (o *MetricsObserver) OnEmergencyCleared(event core.EmergencyEvent) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	if event.TimedOut {
		o.emergenciesTimedOut++
		return
	}
	o.emergenciesCleared++
}

// OnVehicleExit records throughput metrics
func (o *MetricsObserver) OnVehicleExit(exit core.VehicleExit) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	o.vehiclesExited[exit.Direction] += len(exit.IDs)
}

// OnError records error metrics
func (o *MetricsObserver) OnError(err error) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	o.errorCount++
}

// GetPhaseVisitCounts returns the number of times each phase was entered
func (o *MetricsObserver) GetPhaseVisitCounts() map[core.PhaseState]int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()

	result := make(map[core.PhaseState]int)
	for phase, count := range o.phaseVisits {
		result[phase] = count
	}
	return result
}

// GetPhaseTimeScheduled returns the total duration scheduled for each phase
func (o *MetricsObserver) GetPhaseTimeScheduled() map[core.PhaseState]time.Duration {
	o.mutex.RLock()
	defer o.mutex.RUnlock()

	result := make(map[core.PhaseState]time.Duration)
	for phase, duration := range o.phaseTimeScheduled {
		result[phase] = duration
	}
	return result
}

// GetTransitionCounts returns the number of times each transition occurred
func (o *MetricsObserver) GetTransitionCounts() map[string]int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()

	result := make(map[string]int)
	for transition, count := range o.transitionCounts {
		result[transition] = count
	}
	return result
}

// GetViolationCounts returns the number of violations per approach
func (o *MetricsObserver) GetViolationCounts() map[core.Direction]int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()

	result := make(map[core.Direction]int)
	for dir, count := range o.violationsByDir {
		result[dir] = count
	}
	return result
}

// GetVehiclesExited returns the number of reclaimed vehicles per approach
func (o *MetricsObserver) GetVehiclesExited() map[core.Direction]int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()

	result := make(map[core.Direction]int)
	for dir, count := range o.vehiclesExited {
		result[dir] = count
	}
	return result
}

// GetEmergencyCounts returns triggered, cleared and timed out emergency counts
func (o *MetricsObserver) GetEmergencyCounts() (triggered, cleared, timedOut int) {
	o.mutex.RLock()
	defer o.mutex.RUnlock()

	return o.emergenciesTriggered, o.emergenciesCleared, o.emergenciesTimedOut
}

// GetErrorCount returns the number of errors
func (o *MetricsObserver) GetErrorCount() int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()

	return o.errorCount
}

// Reset resets all metrics
func (o *MetricsObserver) Reset() {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	o.phaseVisits = make(map[core.PhaseState]int)
	o.phaseTimeScheduled = make(map[core.PhaseState]time.Duration)
	o.transitionCounts = make(map[string]int)
	o.violationsByDir = make(map[core.Direction]int)
	o.vehiclesExited = make(map[core.Direction]int)
	o.emergenciesTriggered = 0
	o.emergenciesCleared = 0
	o.emergenciesTimedOut = 0
	o.errorCount = 0
}

package observers

import (
	"fmt"
	"sync"

	"github.com/anggasct/traffix/pkg/core"
)

// ValidationObserver checks that the scheduler follows the fixed cycle
type ValidationObserver struct {
	core.BaseObserver

	expectedPhases map[core.PhaseState]bool
	visitedPhases  map[core.PhaseState]bool
	problems       []string
	mutex          sync.RWMutex
}

// NewValidationObserver creates a new validation observer expecting every phase
func NewValidationObserver() *ValidationObserver {
	o := &ValidationObserver{
		expectedPhases: make(map[core.PhaseState]bool),
		visitedPhases:  make(map[core.PhaseState]bool),
		problems:       make([]string, 0),
	}
	for _, p := range core.Phases() {
		o.expectedPhases[p] = true
	}
	return o
}

// addProblem records a problem
func (o *ValidationObserver) addProblem(message string) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.problems = append(o.problems, message)
}

// OnPhaseChange validates a phase entry against its cause
func (o *ValidationObserver) OnPhaseChange(change core.PhaseChange) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	o.visitedPhases[change.To] = true

	switch change.Cause {
	case core.CauseAuto:
		if change.To != change.From.Next() {
			o.problems = append(o.problems, fmt.Sprintf(
				"Invalid auto transition from '%s' to '%s'", change.From, change.To))
		}
	case core.CauseToggle:
		if change.To != core.NGreen {
			o.problems = append(o.problems, fmt.Sprintf(
				"Auto mode re-enabled into '%s' instead of '%s'", change.To, core.NGreen))
		}
	case core.CauseHandoff:
		if !change.To.IsYellow() {
			o.problems = append(o.problems, fmt.Sprintf(
				"Emergency handoff into non-yellow phase '%s'", change.To))
		}
	default:
		o.problems = append(o.problems, fmt.Sprintf("Unknown phase cause '%s'", change.Cause))
	}
}

// OnViolation checks that nobody ran a green light
func (o *ValidationObserver) OnViolation(v core.Violation) {
	if v.Signal == core.Green {
		o.addProblem(fmt.Sprintf("Violation %s recorded on a green signal", v.ID))
	}
}

// OnError records errors
func (o *ValidationObserver) OnError(err error) {
	o.addProblem(fmt.Sprintf("Error occurred: %v", err))
}

// GetProblems returns every problem found so far
func (o *ValidationObserver) GetProblems() []string {
	o.mutex.RLock()
	defer o.mutex.RUnlock()

	result := make([]string, len(o.problems))
	copy(result, o.problems)
	return result
}

// GetUnvisitedPhases returns phases that were expected but not entered
func (o *ValidationObserver) GetUnvisitedPhases() []core.PhaseState {
	o.mutex.RLock()
	defer o.mutex.RUnlock()

	var unvisited []core.PhaseState
	for _, p := range core.Phases() {
		if o.expectedPhases[p] && !o.visitedPhases[p] {
			unvisited = append(unvisited, p)
		}
	}

	return unvisited
}

// HasProblems returns whether any problems occurred
func (o *ValidationObserver) HasProblems() bool {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	return len(o.problems) > 0
}

// Reset resets the validation state
func (o *ValidationObserver) Reset() {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	o.visitedPhases = make(map[core.PhaseState]bool)
	o.problems = make([]string, 0)
}

package core

import (
	"fmt"
	"time"
)

// PhaseState is one step of the fixed round-robin signal cycle
type PhaseState int

const (
	NGreen PhaseState = iota
	NYellow
	EGreen
	EYellow
	SGreen
	SYellow
	WGreen
	WYellow
)

// NumPhases is the number of states in one full cycle
const NumPhases = 8

var phaseNames = [NumPhases]string{
	"N_GREEN", "N_YELLOW",
	"E_GREEN", "E_YELLOW",
	"S_GREEN", "S_YELLOW",
	"W_GREEN", "W_YELLOW",
}

// cycle order is N -> E -> S -> W
var phaseDirections = [NumPhases / 2]Direction{North, East, South, West}

// Phases lists every phase in cycle order starting from NGreen
func Phases() []PhaseState {
	out := make([]PhaseState, NumPhases)
	for i := range out {
		out[i] = PhaseState(i)
	}
	return out
}

// Valid reports whether p is a known phase
func (p PhaseState) Valid() bool {
	return p >= NGreen && p <= WYellow
}

func (p PhaseState) String() string {
	if !p.Valid() {
		return fmt.Sprintf("phase(%d)", int(p))
	}
	return phaseNames[p]
}

// MarshalText implements encoding.TextMarshaler
func (p PhaseState) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Next returns the phase that follows p in the cycle
func (p PhaseState) Next() PhaseState {
	return PhaseState((int(p) + 1) % NumPhases)
}

// Direction returns the approach served by p
func (p PhaseState) Direction() Direction {
	return phaseDirections[int(p)/2]
}

// IsYellow reports whether p is the clearance half of its direction's slot
func (p PhaseState) IsYellow() bool {
	return int(p)%2 == 1
}

// Signal returns the colour shown to the served approach during p
func (p PhaseState) Signal() SignalState {
	if p.IsYellow() {
		return Yellow
	}
	return Green
}

// Duration returns how long p is held under cfg
func (p PhaseState) Duration(cfg Config) time.Duration {
	if p.IsYellow() {
		return cfg.YellowDuration
	}
	return cfg.GreenDuration
}

// GreenPhase returns the green phase serving d
func GreenPhase(d Direction) PhaseState {
	for i, pd := range phaseDirections {
		if pd == d {
			return PhaseState(i * 2)
		}
	}
	return NGreen
}

// YellowPhase returns the yellow phase serving d
func YellowPhase(d Direction) PhaseState {
	return GreenPhase(d) + 1
}

// PhaseCause records why the scheduler entered a phase
type PhaseCause string

const (
	// CauseAuto is a timer-driven advance of the cycle
	CauseAuto PhaseCause = "auto"
	// CauseToggle is the deterministic reset when auto mode is re-enabled
	CauseToggle PhaseCause = "toggle"
	// CauseHandoff is the return from emergency preemption
	CauseHandoff PhaseCause = "handoff"
)

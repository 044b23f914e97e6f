// Package traffix provides a tick-driven simulation of a four-approach road
// intersection: a fixed-cycle signal scheduler, vehicle kinematics with
// car-following and turning, red-light violation sampling and an
// emergency-vehicle preemption protocol with response-time telemetry.
package traffix

import (
	"github.com/anggasct/traffix/pkg/builders"
	"github.com/anggasct/traffix/pkg/core"
	"github.com/anggasct/traffix/pkg/observers"
)

// Core types
type (
	// Config holds the tunables of a simulation instance
	Config = core.Config

	// Direction identifies one of the four approaches
	Direction = core.Direction

	// SignalState is the colour shown by a signal
	SignalState = core.SignalState

	// PhaseState is one step of the signal cycle
	PhaseState = core.PhaseState

	// VehicleKind distinguishes regular traffic from priority vehicles
	VehicleKind = core.VehicleKind

	// Stats is the aggregate metrics snapshot
	Stats = core.Stats

	// Snapshot is the full read model of a simulation
	Snapshot = core.Snapshot

	// SignalView is a read-only signal
	SignalView = core.SignalView

	// VehicleView is a read-only vehicle
	VehicleView = core.VehicleView

	// Violation is a recorded red-light run
	Violation = core.Violation

	// EmergencyEvent is a recorded emergency clearance
	EmergencyEvent = core.EmergencyEvent

	// PhaseChange describes one entry into a phase
	PhaseChange = core.PhaseChange
)

// Re-export observer types
type (
	// Observer receives the required lifecycle notifications
	Observer = core.Observer

	// ExtendedObserver receives every notification
	ExtendedObserver = core.ExtendedObserver

	// BaseObserver provides no-op notification handlers
	BaseObserver = core.BaseObserver

	// LoggingObserver writes notifications through slog
	LoggingObserver = observers.LoggingObserver

	// MetricsObserver collects counters about a running simulation
	MetricsObserver = observers.MetricsObserver
)

// Re-export builder and error types
type (
	// SimulationBuilder provides a fluent interface for building configurations
	SimulationBuilder = builders.SimulationBuilder

	// ConfigurationError represents an invalid configuration field
	ConfigurationError = core.ConfigurationError

	// InputError represents an out-of-range control argument
	InputError = core.InputError

	// ClearanceTimeoutError reports an emergency watch concluded by the fallback
	ClearanceTimeoutError = core.ClearanceTimeoutError

	// ErrorCollector collects multiple errors during validation
	ErrorCollector = core.ErrorCollector
)

// Re-export constants
const (
	North = core.North
	South = core.South
	East  = core.East
	West  = core.West

	Red    = core.Red
	Yellow = core.Yellow
	Green  = core.Green

	NGreen  = core.NGreen
	NYellow = core.NYellow
	EGreen  = core.EGreen
	EYellow = core.EYellow
	SGreen  = core.SGreen
	SYellow = core.SYellow
	WGreen  = core.WGreen
	WYellow = core.WYellow
)

// Re-export constructors
var (
	// DefaultConfig returns the timings of the reference intersection
	DefaultConfig = core.DefaultConfig

	// ParseDirection parses a direction name
	ParseDirection = core.ParseDirection

	// ParseSignalState parses a signal colour
	ParseSignalState = core.ParseSignalState

	// NewLoggingObserver creates a slog backed observer
	NewLoggingObserver = observers.NewLoggingObserver

	// NewMetricsObserver creates a metrics observer
	NewMetricsObserver = observers.NewMetricsObserver

	// NewSimulationBuilder starts a fluent configuration
	NewSimulationBuilder = builders.NewSimulationBuilder
)

// Package builders provides fluent builders for configuring simulations
package builders

import (
	"time"

	"github.com/anggasct/traffix/pkg/core"
)

// SimulationBuilder provides a fluent interface for building simulation configurations
type SimulationBuilder struct {
	cfg       core.Config
	observers []core.Observer
	errors    *core.ErrorCollector
}

// NewSimulationBuilder creates a builder starting from DefaultConfig
func NewSimulationBuilder() *SimulationBuilder {
	return NewSimulationBuilderFrom(core.DefaultConfig())
}

// NewSimulationBuilderFrom creates a builder starting from cfg
func NewSimulationBuilderFrom(cfg core.Config) *SimulationBuilder {
	return &SimulationBuilder{
		cfg:       cfg,
		observers: make([]core.Observer, 0),
		errors:    core.NewErrorCollector(),
	}
}

// WithSeed fixes the random seed
func (b *SimulationBuilder) WithSeed(seed int64) *SimulationBuilder {
	b.cfg.Seed = seed
	return b
}

// WithRand replaces the seeded source
func (b *SimulationBuilder) WithRand(rng core.Rand) *SimulationBuilder {
	if rng == nil {
		b.errors.Add(core.NewConfigurationError("rand", "must not be nil"))
		return b
	}
	b.cfg.Rand = rng
	return b
}

// WithClock sets the wall clock used to stamp log entries
func (b *SimulationBuilder) WithClock(clock func() time.Time) *SimulationBuilder {
	if clock == nil {
		b.errors.Add(core.NewConfigurationError("clock", "must not be nil"))
		return b
	}
	b.cfg.Clock = clock
	return b
}

// WithPhaseDurations sets the green and yellow hold times
func (b *SimulationBuilder) WithPhaseDurations(green, yellow time.Duration) *SimulationBuilder {
	b.cfg.GreenDuration = green
	b.cfg.YellowDuration = yellow
	return b
}

// WithEmergency sets the preemption window and the clearance timeout
func (b *SimulationBuilder) WithEmergency(window, clearanceTimeout time.Duration) *SimulationBuilder {
	b.cfg.EmergencyDuration = window
	b.cfg.EmergencyClearanceTimeout = clearanceTimeout
	return b
}

// WithEmergencyVehicleType sets the label recorded in the emergency log
func (b *SimulationBuilder) WithEmergencyVehicleType(kind string) *SimulationBuilder {
	b.cfg.EmergencyVehicleType = kind
	return b
}

// WithSpawnInterval sets the range the spawn countdown is drawn from
func (b *SimulationBuilder) WithSpawnInterval(min, max time.Duration) *SimulationBuilder {
	b.cfg.SpawnMin = min
	b.cfg.SpawnMax = max
	return b
}

// WithCapacity sets the maximum number of vehicles per approach
func (b *SimulationBuilder) WithCapacity(n int) *SimulationBuilder {
	b.cfg.MaxVehiclesPerApproach = n
	return b
}

// WithViolations sets the per-tick violation probability and the fine label
func (b *SimulationBuilder) WithViolations(probability float64, fine string) *SimulationBuilder {
	b.cfg.ViolationProbability = probability
	b.cfg.ViolationFine = fine
	return b
}

// WithLogCapacity sets the size of the violation and emergency logs
func (b *SimulationBuilder) WithLogCapacity(n int) *SimulationBuilder {
	b.cfg.LogCapacity = n
	return b
}

// WithObserver registers an observer to attach once the simulation exists
func (b *SimulationBuilder) WithObserver(observer core.Observer) *SimulationBuilder {
	if observer == nil {
		b.errors.Add(core.NewConfigurationError("observer", "must not be nil"))
		return b
	}
	b.observers = append(b.observers, observer)
	return b
}

// Observers returns the registered observers
func (b *SimulationBuilder) Observers() []core.Observer {
	result := make([]core.Observer, len(b.observers))
	copy(result, b.observers)
	return result
}

// Build validates and returns the configuration. All problems are reported together.
func (b *SimulationBuilder) Build() (core.Config, error) {
	ec := core.NewErrorCollector()
	for _, err := range b.errors.GetErrors() {
		ec.Add(err)
	}

	if err := b.cfg.Validate(); err != nil {
		if collected, ok := err.(*core.ErrorCollector); ok {
			for _, e := range collected.GetErrors() {
				ec.Add(e)
			}
		} else {
			ec.Add(err)
		}
	}

	if ec.HasErrors() {
		return core.Config{}, ec
	}
	return b.cfg, nil
}

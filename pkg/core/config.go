package core

import (
	"fmt"
	"time"
)

// Config holds the tunables of a simulation instance
type Config struct {
	// Seed for the random source; zero picks a time based seed
	Seed int64 `yaml:"seed"`

	GreenDuration  time.Duration `yaml:"green_duration"`
	YellowDuration time.Duration `yaml:"yellow_duration"`

	EmergencyDuration time.Duration `yaml:"emergency_duration"`
	// Maximum time the engine waits for a tracked emergency vehicle to leave
	EmergencyClearanceTimeout time.Duration `yaml:"emergency_clearance_timeout"`
	EmergencyVehicleType      string        `yaml:"emergency_vehicle_type"`

	SpawnMin               time.Duration `yaml:"spawn_min"`
	SpawnMax               time.Duration `yaml:"spawn_max"`
	MaxVehiclesPerApproach int           `yaml:"max_vehicles_per_approach"`

	ViolationProbability float64 `yaml:"violation_probability"`
	ViolationFine        string  `yaml:"violation_fine"`

	LogCapacity int `yaml:"log_capacity"`

	// Clock stamps log entries; defaults to time.Now
	Clock func() time.Time `yaml:"-"`
	// Rand overrides the seeded source when set
	Rand Rand `yaml:"-"`
}

// DefaultConfig returns the timings of the reference intersection
func DefaultConfig() Config {
	return Config{
		GreenDuration:             10 * time.Second,
		YellowDuration:            2 * time.Second,
		EmergencyDuration:         15 * time.Second,
		EmergencyClearanceTimeout: 60 * time.Second,
		EmergencyVehicleType:      "Ambulance",
		SpawnMin:                  4 * time.Second,
		SpawnMax:                  8 * time.Second,
		MaxVehiclesPerApproach:    10,
		ViolationProbability:      0.0005,
		ViolationFine:             "$150",
		LogCapacity:               10,
		Clock:                     time.Now,
	}
}

// Validate checks every field and returns all problems at once
func (c Config) Validate() error {
	ec := NewErrorCollector()

	positive := func(field string, d time.Duration) {
		if d <= 0 {
			ec.Add(NewConfigurationError(field, fmt.Sprintf("must be positive, got %s", d)))
		}
	}
	positive("green_duration", c.GreenDuration)
	positive("yellow_duration", c.YellowDuration)
	positive("emergency_duration", c.EmergencyDuration)
	positive("emergency_clearance_timeout", c.EmergencyClearanceTimeout)
	positive("spawn_min", c.SpawnMin)

	if c.SpawnMax <= c.SpawnMin {
		ec.Add(NewConfigurationError("spawn_max", fmt.Sprintf("must be greater than spawn_min (%s), got %s", c.SpawnMin, c.SpawnMax)))
	}
	if c.MaxVehiclesPerApproach <= 0 {
		ec.Add(NewConfigurationError("max_vehicles_per_approach", fmt.Sprintf("must be positive, got %d", c.MaxVehiclesPerApproach)))
	}
	if c.ViolationProbability < 0 || c.ViolationProbability > 1 {
		ec.Add(NewConfigurationError("violation_probability", fmt.Sprintf("must be within [0, 1], got %g", c.ViolationProbability)))
	}
	if c.LogCapacity <= 0 {
		ec.Add(NewConfigurationError("log_capacity", fmt.Sprintf("must be positive, got %d", c.LogCapacity)))
	}

	if ec.HasErrors() {
		return ec
	}
	return nil
}

// CycleDuration is the length of one full N->E->S->W round
func (c Config) CycleDuration() time.Duration {
	return NumApproaches * (c.GreenDuration + c.YellowDuration)
}

// Package approach manages the queue of vehicles feeding the intersection from one direction.
package approach

import (
	"time"

	"github.com/samber/lo"

	"github.com/anggasct/traffix/pkg/core"
	"github.com/anggasct/traffix/pkg/vehicle"
)

// Notice is a violation raised by one vehicle during a tick
type Notice struct {
	VehicleID uint64
	Signal    core.SignalState
}

// Report summarises one approach tick for the owning simulation
type Report struct {
	Spawned    []uint64
	Violations []Notice
	Exited     []uint64
}

// Approach owns the vehicles of one direction, newest first.
// Index 0 is the vehicle farthest from the intersection.
type Approach struct {
	direction core.Direction
	vehicles  []vehicle.Vehicle
	countdown time.Duration

	spawnMin  time.Duration
	spawnMax  time.Duration
	capacity  int
	violation float64
	rng       core.Rand
}

// New creates an empty approach with its first spawn uniformly in [0, SpawnMin)
func New(dir core.Direction, cfg core.Config, rng core.Rand) *Approach {
	a := &Approach{
		direction: dir,
		vehicles:  make([]vehicle.Vehicle, 0, cfg.MaxVehiclesPerApproach),
		spawnMin:  cfg.SpawnMin,
		spawnMax:  cfg.SpawnMax,
		capacity:  cfg.MaxVehiclesPerApproach,
		violation: cfg.ViolationProbability,
		rng:       rng,
	}
	a.countdown = time.Duration(rng.Float64() * float64(cfg.SpawnMin))
	return a
}

// Update runs the spawn timer, advances every vehicle and reclaims those that left the canvas.
// nextID is called once per spawned vehicle.
func (a *Approach) Update(dt time.Duration, signal core.SignalState, nextID func() uint64) Report {
	var report Report
	if dt < 0 {
		dt = 0
	}

	a.countdown -= dt
	if a.countdown <= 0 {
		if len(a.vehicles) < a.capacity {
			id := nextID()
			a.push(vehicle.New(id, a.direction, core.Normal, a.rng))
			report.Spawned = append(report.Spawned, id)
		}
		a.countdown = a.reroll()
	}

	rules := vehicle.Rules{ViolationProbability: a.violation, Rand: a.rng}
	for i := len(a.vehicles) - 1; i >= 0; i-- {
		out := a.vehicles[i].Update(dt, signal, a.vehicles[i+1:], rules)
		if out.Violation {
			report.Violations = append(report.Violations, Notice{
				VehicleID: a.vehicles[i].ID,
				Signal:    out.Signal,
			})
		}
	}

	visible, gone := lo.FilterReject(a.vehicles, func(v vehicle.Vehicle, _ int) bool {
		return v.Visible()
	})
	if len(gone) > 0 {
		a.vehicles = visible
		report.Exited = lo.Map(gone, func(v vehicle.Vehicle, _ int) uint64 { return v.ID })
	}

	return report
}

// Spawn inserts a vehicle at the start pose. It returns false when the approach is full.
func (a *Approach) Spawn(kind core.VehicleKind, id uint64) bool {
	if len(a.vehicles) >= a.capacity {
		return false
	}
	a.push(vehicle.New(id, a.direction, kind, a.rng))
	return true
}

func (a *Approach) push(v vehicle.Vehicle) {
	a.vehicles = append(a.vehicles, vehicle.Vehicle{})
	copy(a.vehicles[1:], a.vehicles)
	a.vehicles[0] = v
}

func (a *Approach) reroll() time.Duration {
	return a.spawnMin + time.Duration(a.rng.Float64()*float64(a.spawnMax-a.spawnMin))
}

// Direction returns the approach direction
func (a *Approach) Direction() core.Direction {
	return a.direction
}

// Vehicles returns a copy of the queue, newest first
func (a *Approach) Vehicles() []vehicle.Vehicle {
	out := make([]vehicle.Vehicle, len(a.vehicles))
	copy(out, a.vehicles)
	return out
}

// Find returns a copy of the vehicle with id
func (a *Approach) Find(id uint64) (vehicle.Vehicle, bool) {
	return lo.Find(a.vehicles, func(v vehicle.Vehicle) bool { return v.ID == id })
}

// Len returns the current occupancy
func (a *Approach) Len() int {
	return len(a.vehicles)
}

// Full reports whether the approach is at capacity
func (a *Approach) Full() bool {
	return len(a.vehicles) >= a.capacity
}

// SpawnCountdown returns the time left until the next spawn attempt
func (a *Approach) SpawnCountdown() time.Duration {
	return a.countdown
}

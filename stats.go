package traffix

import (
	"time"

	"github.com/samber/lo"

	"github.com/anggasct/traffix/pkg/core"
	"github.com/anggasct/traffix/pkg/vehicle"
)

// Stats recomputes the aggregate metrics from the current state
func (s *Simulation) Stats() core.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats()
}

func (s *Simulation) stats() core.Stats {
	vehicles := s.allVehicles()

	stopped := lo.Filter(vehicles, func(v vehicle.Vehicle, _ int) bool { return !v.Moving })
	avgWait := 0.0
	if len(stopped) > 0 {
		avgWait = lo.SumBy(stopped, func(v vehicle.Vehicle) float64 { return v.Wait.Seconds() }) / float64(len(stopped))
	}

	byDirection := make(map[core.Direction]int, core.NumApproaches)
	for _, dir := range core.Directions {
		byDirection[dir] = s.approaches[dir].Len()
	}

	samples := lo.Map(s.responseSamples, func(d time.Duration, _ int) float64 { return d.Seconds() })
	avgResponse := 0.0
	var last *float64
	if len(samples) > 0 {
		avgResponse = lo.Sum(samples) / float64(len(samples))
		l := samples[len(samples)-1]
		last = &l
	}

	return core.Stats{
		TotalVehicles:          s.processed + uint64(len(vehicles)),
		AvgWaitTime:            avgWait,
		VehiclesByDirection:    byDirection,
		AvgEmergencyResponse:   avgResponse,
		LastEmergencyClearance: last,
		IncidentCount:          s.violationSeq,
		EmergenciesCleared:     len(samples),
	}
}

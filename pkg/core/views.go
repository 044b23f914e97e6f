package core

import "time"

// SignalView is a read-only copy of one signal
type SignalView struct {
	Direction Direction     `json:"direction"`
	State     SignalState   `json:"state"`
	Remaining time.Duration `json:"remaining"`
}

// VehicleView is a read-only copy of one vehicle for renderers
type VehicleView struct {
	ID        uint64        `json:"id"`
	Direction Direction     `json:"direction"`
	X         float64       `json:"x"`
	Y         float64       `json:"y"`
	Width     float64       `json:"width"`
	Height    float64       `json:"height"`
	Angle     float64       `json:"angle"`
	Color     VehicleColor  `json:"color"`
	Kind      VehicleKind   `json:"type"`
	Moving    bool          `json:"moving"`
	Wait      time.Duration `json:"wait"`
}

// Stats is a snapshot of the aggregate metrics, recomputed on demand.
// Durations are expressed in seconds.
type Stats struct {
	TotalVehicles          uint64            `json:"totalVehicles"`
	AvgWaitTime            float64           `json:"avgWaitTime"`
	VehiclesByDirection    map[Direction]int `json:"vehiclesByDirection"`
	AvgEmergencyResponse   float64           `json:"avgEmergencyResponse"`
	LastEmergencyClearance *float64          `json:"lastEmergencyClearance"`
	IncidentCount          uint64            `json:"incidentCount"`
	EmergenciesCleared     int               `json:"emergenciesCleared"`
}

// Snapshot is the full state a live map needs in one read
type Snapshot struct {
	InstanceID      string        `json:"instanceId"`
	Clock           time.Duration `json:"clock"`
	Phase           PhaseState    `json:"phase"`
	PhaseRemaining  time.Duration `json:"phaseRemaining"`
	AutoMode        bool          `json:"autoMode"`
	EmergencyActive bool          `json:"emergencyActive"`
	Signals         []SignalView  `json:"signals"`
	Vehicles        []VehicleView `json:"vehicles"`
	Stats           Stats         `json:"stats"`
}

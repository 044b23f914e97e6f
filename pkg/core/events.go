package core

import "time"

// PhaseChange describes one entry into a scheduler phase
type PhaseChange struct {
	ID       string        `json:"id"`
	From     PhaseState    `json:"from"`
	To       PhaseState    `json:"to"`
	Duration time.Duration `json:"duration"`
	Cause    PhaseCause    `json:"cause"`
	At       time.Duration `json:"at"` // simulated clock
}

// Violation is a recorded red-light run
type Violation struct {
	ID        string      `json:"id"`
	Time      time.Time   `json:"time"`
	Location  string      `json:"location"`
	Type      string      `json:"type"`
	Fine      string      `json:"fine"`
	VehicleID uint64      `json:"vehicleId"`
	Direction Direction   `json:"direction"`
	Signal    SignalState `json:"signal"`
}

// EmergencyStart describes the beginning of a preemption window
type EmergencyStart struct {
	IncidentID string        `json:"incidentId"`
	Direction  Direction     `json:"direction"`
	VehicleID  uint64        `json:"vehicleId"`
	Tracked    bool          `json:"tracked"`
	Window     time.Duration `json:"window"`
	At         time.Duration `json:"at"`
}

// EmergencyEvent is a recorded emergency clearance
type EmergencyEvent struct {
	ID            string        `json:"id"`
	IncidentID    string        `json:"incidentId"`
	Time          time.Time     `json:"time"`
	Type          string        `json:"type"`
	ClearanceTime time.Duration `json:"clearanceTime"`
	Direction     Direction     `json:"direction"`
	VehicleID     uint64        `json:"vehicleId"`
	TimedOut      bool          `json:"timedOut"`
}

// VehicleExit reports vehicles reclaimed by one approach in one tick
type VehicleExit struct {
	Direction Direction `json:"direction"`
	IDs       []uint64  `json:"ids"`
}

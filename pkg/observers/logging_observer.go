// Package observers provides observers for monitoring simulation events
package observers

import (
	"context"
	"log/slog"
	"sync"

	"github.com/anggasct/traffix/pkg/core"
)

// LoggingObserver writes simulation events as structured log records
type LoggingObserver struct {
	logger *slog.Logger
	level  slog.Level
	mutex  sync.RWMutex
}

// NewLoggingObserver creates a new logging observer. Records below level are dropped.
func NewLoggingObserver(logger *slog.Logger, level slog.Level) *LoggingObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingObserver{
		logger: logger,
		level:  level,
	}
}

// SetLevel changes the minimum level
func (o *LoggingObserver) SetLevel(level slog.Level) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.level = level
}

// log writes a record at the specified level
func (o *LoggingObserver) log(level slog.Level, msg string, args ...any) {
	o.mutex.RLock()
	defer o.mutex.RUnlock()

	if level < o.level {
		return
	}
	o.logger.Log(context.Background(), level, msg, args...)
}

// OnPhaseChange logs phase entries
func (o *LoggingObserver) OnPhaseChange(change core.PhaseChange) {
	o.log(slog.LevelInfo, "phase change",
		"id", change.ID,
		"from", change.From.String(),
		"to", change.To.String(),
		"duration", change.Duration,
		"cause", string(change.Cause),
		"at", change.At)
}

// OnModeChange logs auto mode switches
func (o *LoggingObserver) OnModeChange(auto bool) {
	o.log(slog.LevelInfo, "auto mode changed", "enabled", auto)
}

// OnViolation logs red-light runs
func (o *LoggingObserver) OnViolation(v core.Violation) {
	o.log(slog.LevelWarn, "violation recorded",
		"id", v.ID,
		"location", v.Location,
		"type", v.Type,
		"fine", v.Fine,
		"vehicle", v.VehicleID)
}

// OnEmergencyTriggered logs preemption starts
func (o *LoggingObserver) OnEmergencyTriggered(start core.EmergencyStart) {
	o.log(slog.LevelInfo, "emergency preemption started",
		"incident", start.IncidentID,
		"direction", start.Direction.String(),
		"vehicle", start.VehicleID,
		"tracked", start.Tracked,
		"window", start.Window)
}

// OnEmergencyEnded logs preemption ends
func (o *LoggingObserver) OnEmergencyEnded(incidentID string, dir core.Direction) {
	o.log(slog.LevelInfo, "emergency preemption ended",
		"incident", incidentID,
		"direction", dir.String())
}

// OnEmergencyCleared logs clearance measurements
func (o *LoggingObserver) OnEmergencyCleared(event core.EmergencyEvent) {
	level := slog.LevelInfo
	if event.TimedOut {
		level = slog.LevelWarn
	}
	o.log(level, "emergency vehicle cleared",
		"id", event.ID,
		"incident", event.IncidentID,
		"type", event.Type,
		"clearance", event.ClearanceTime,
		"timed_out", event.TimedOut)
}

// OnVehicleExit logs reclaimed vehicles
func (o *LoggingObserver) OnVehicleExit(exit core.VehicleExit) {
	o.log(slog.LevelDebug, "vehicles exited",
		"direction", exit.Direction.String(),
		"count", len(exit.IDs))
}

// OnError logs errors
func (o *LoggingObserver) OnError(err error) {
	o.log(slog.LevelError, "simulation error", "error", err, "code", int(core.GetErrorCode(err)))
}

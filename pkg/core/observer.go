package core

// Observer represents an entity that observes the simulation lifecycle
type Observer interface {
	// Required methods

	// OnPhaseChange is called whenever the scheduler enters a phase
	OnPhaseChange(change PhaseChange)

	// OnModeChange is called when auto mode is switched on or off
	OnModeChange(auto bool)
}

// ExtendedObserver provides additional optional observation methods
type ExtendedObserver interface {
	Observer

	// OnViolation is called when a violation is recorded
	OnViolation(v Violation)

	// OnEmergencyTriggered is called when a preemption window opens
	OnEmergencyTriggered(start EmergencyStart)

	// OnEmergencyEnded is called when a preemption window closes
	OnEmergencyEnded(incidentID string, dir Direction)

	// OnEmergencyCleared is called when a clearance is logged
	OnEmergencyCleared(event EmergencyEvent)

	// OnVehicleExit is called when an approach reclaims vehicles
	OnVehicleExit(exit VehicleExit)

	// OnError is called when an error occurs during processing
	OnError(err error)
}

// BaseObserver provides a default implementation with no-op methods
type BaseObserver struct{}

// OnPhaseChange implements the required Observer method
func (o *BaseObserver) OnPhaseChange(change PhaseChange) {}

// OnModeChange implements the required Observer method
func (o *BaseObserver) OnModeChange(auto bool) {}

// OnViolation implements the optional ExtendedObserver method
func (o *BaseObserver) OnViolation(v Violation) {}

// OnEmergencyTriggered implements the optional ExtendedObserver method
func (o *BaseObserver) OnEmergencyTriggered(start EmergencyStart) {}

// OnEmergencyEnded implements the optional ExtendedObserver method
func (o *BaseObserver) OnEmergencyEnded(incidentID string, dir Direction) {}

// OnEmergencyCleared implements the optional ExtendedObserver method
func (o *BaseObserver) OnEmergencyCleared(event EmergencyEvent) {}

// OnVehicleExit implements the optional ExtendedObserver method
func (o *BaseObserver) OnVehicleExit(exit VehicleExit) {}

// OnError implements the optional ExtendedObserver method
func (o *BaseObserver) OnError(err error) {}

// ObserverManager manages a collection of observers
type ObserverManager struct {
	observers []Observer
}

// NewObserverManager creates a new observer manager
func NewObserverManager() *ObserverManager {
	return &ObserverManager{
		observers: make([]Observer, 0),
	}
}

// AddObserver adds an observer to the manager
func (om *ObserverManager) AddObserver(observer Observer) {
	if observer == nil {
		return
	}
	om.observers = append(om.observers, observer)
}

// RemoveObserver removes an observer from the manager
func (om *ObserverManager) RemoveObserver(observer Observer) {
	for i, obs := range om.observers {
		if obs == observer {
			om.observers = append(om.observers[:i], om.observers[i+1:]...)
			break
		}
	}
}

// Len returns the number of registered observers
func (om *ObserverManager) Len() int {
	return len(om.observers)
}

// each calls fn for every observer, converting panics into OnError calls
func (om *ObserverManager) each(method string, fn func(Observer)) {
	observers := make([]Observer, len(om.observers))
	copy(observers, om.observers)

	for _, observer := range observers {
		func() {
			defer func() {
				if r := recover(); r != nil {
					if extObs, ok := observer.(ExtendedObserver); ok && method != "OnError" {
						func() {
							defer func() { recover() }()
							extObs.OnError(&ObserverError{Method: method, Panic: r})
						}()
					}
				}
			}()
			fn(observer)
		}()
	}
}

// eachExtended is each restricted to observers implementing ExtendedObserver
func (om *ObserverManager) eachExtended(method string, fn func(ExtendedObserver)) {
	om.each(method, func(o Observer) {
		if extObs, ok := o.(ExtendedObserver); ok {
			fn(extObs)
		}
	})
}

// NotifyPhaseChange notifies all observers of a phase entry
func (om *ObserverManager) NotifyPhaseChange(change PhaseChange) {
	om.each("OnPhaseChange", func(o Observer) { o.OnPhaseChange(change) })
}

// NotifyModeChange notifies all observers of an auto mode switch
func (om *ObserverManager) NotifyModeChange(auto bool) {
	om.each("OnModeChange", func(o Observer) { o.OnModeChange(auto) })
}

// NotifyViolation notifies all observers of a recorded violation
func (om *ObserverManager) NotifyViolation(v Violation) {
	om.eachExtended("OnViolation", func(o ExtendedObserver) { o.OnViolation(v) })
}

// NotifyEmergencyTriggered notifies all observers of a preemption start
func (om *ObserverManager) NotifyEmergencyTriggered(start EmergencyStart) {
	om.eachExtended("OnEmergencyTriggered", func(o ExtendedObserver) { o.OnEmergencyTriggered(start) })
}

// NotifyEmergencyEnded notifies all observers of a preemption end
func (om *ObserverManager) NotifyEmergencyEnded(incidentID string, dir Direction) {
	om.eachExtended("OnEmergencyEnded", func(o ExtendedObserver) { o.OnEmergencyEnded(incidentID, dir) })
}

// NotifyEmergencyCleared notifies all observers of a logged clearance
func (om *ObserverManager) NotifyEmergencyCleared(event EmergencyEvent) {
	om.eachExtended("OnEmergencyCleared", func(o ExtendedObserver) { o.OnEmergencyCleared(event) })
}

// NotifyVehicleExit notifies all observers of reclaimed vehicles
func (om *ObserverManager) NotifyVehicleExit(exit VehicleExit) {
	om.eachExtended("OnVehicleExit", func(o ExtendedObserver) { o.OnVehicleExit(exit) })
}

// NotifyError notifies all observers of errors
func (om *ObserverManager) NotifyError(err error) {
	om.eachExtended("OnError", func(o ExtendedObserver) { o.OnError(err) })
}

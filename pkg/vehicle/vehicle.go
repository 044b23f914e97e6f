// Package vehicle implements the kinematics of a single car on an approach:
// car-following, stop-line gating, violation sampling and turn-box steering.
package vehicle

import (
	"math"
	"time"

	"github.com/anggasct/traffix/pkg/core"
)

const (
	// NormalBaseSpeed and NormalSpeedJitter bound the speed of regular cars, in px/ms
	NormalBaseSpeed   = 0.05
	NormalSpeedJitter = 0.02
	// EmergencySpeed is the speed of priority vehicles, in px/ms
	EmergencySpeed = 0.1

	// TurnRate is the angular speed inside the turn box, in degrees/ms
	TurnRate = 0.09
	// TurnAngle is the total rotation of a left or right turn
	TurnAngle = 90.0
)

// Rules carries the per-tick policy the owner applies to its vehicles
type Rules struct {
	ViolationProbability float64
	Rand                 core.Rand
}

// Outcome is what a vehicle reports back to its owner after a tick
type Outcome struct {
	// Violation is set on the single tick a vehicle decides to run the light
	Violation bool
	// Signal is the colour that was run
	Signal core.SignalState
}

// Vehicle is a car bound to one approach. It stores the approach direction
// only; the approach owns the value.
type Vehicle struct {
	ID        uint64
	Direction core.Direction
	X, Y      float64
	Width     float64
	Height    float64
	Heading   float64 // degrees, 0 = up, clockwise
	Speed     float64 // px/ms
	Color     core.VehicleColor
	Kind      core.VehicleKind
	Turn      core.TurnIntent
	Moving    bool
	Wait      time.Duration

	passedStopLine bool
	runningLight   bool
	turning        bool
	turned         bool
	turnOrigin     float64
	turnProgress   float64
}

// New spawns a vehicle at the start pose of dir.
// Draws from rng in order: speed, colour, turn intent (emergency vehicles skip speed and colour).
func New(id uint64, dir core.Direction, kind core.VehicleKind, rng core.Rand) Vehicle {
	geo := core.GeometryFor(dir)
	v := Vehicle{
		ID:        id,
		Direction: dir,
		X:         geo.StartX,
		Y:         geo.StartY,
		Width:     core.VehicleWidth,
		Height:    core.VehicleHeight,
		Heading:   geo.Heading,
		Kind:      kind,
		Moving:    true,
	}

	if kind == core.Emergency {
		v.Speed = EmergencySpeed
		v.Color = core.White
	} else {
		v.Speed = NormalBaseSpeed + rng.Float64()*NormalSpeedJitter
		v.Color = core.CarColors[rng.Intn(len(core.CarColors))]
	}

	switch r := rng.Float64(); {
	case r < 0.5:
		v.Turn = core.Straight
	case r < 0.75:
		v.Turn = core.Left
	default:
		v.Turn = core.Right
	}

	return v
}

// Update advances the vehicle by dt. ahead holds the vehicles closer to the
// intersection on the same approach.
func (v *Vehicle) Update(dt time.Duration, signal core.SignalState, ahead []Vehicle, rules Rules) Outcome {
	if dt < 0 {
		dt = 0
	}
	ms := millis(dt)
	geo := core.GeometryFor(v.Direction)

	var out Outcome
	remaining := geo.ToStopLine(v.X, v.Y)
	if remaining <= 0 {
		v.passedStopLine = true
	}

	moving := true
	switch {
	case v.blocked(ahead):
		moving = false
	case v.mustYield(signal, remaining, v.Speed*ms):
		if rules.ViolationProbability > 0 && rules.Rand != nil && rules.Rand.Float64() < rules.ViolationProbability {
			v.runningLight = true
			out.Violation = true
			out.Signal = signal
		} else {
			moving = false
		}
	}

	v.Moving = moving
	if !moving {
		v.Wait += dt
		return out
	}
	v.Wait = 0

	rad := v.Heading * math.Pi / 180
	v.X += math.Sin(rad) * v.Speed * ms
	v.Y -= math.Cos(rad) * v.Speed * ms
	if !v.passedStopLine && geo.ToStopLine(v.X, v.Y) <= 0 {
		v.passedStopLine = true
	}

	v.steer(ms)
	return out
}

// blocked reports whether any vehicle ahead is inside the following gap
func (v *Vehicle) blocked(ahead []Vehicle) bool {
	gap := v.Height * core.FollowGapFactor
	for i := range ahead {
		if math.Hypot(v.X-ahead[i].X, v.Y-ahead[i].Y) < gap {
			return true
		}
	}
	return false
}

// mustYield reports whether the stop line gates this vehicle on this tick.
// A vehicle is approaching when it is within one length of the line or
// its next step would cross it.
func (v *Vehicle) mustYield(signal core.SignalState, remaining, step float64) bool {
	if v.Kind == core.Emergency || v.runningLight || v.passedStopLine || signal == core.Green {
		return false
	}
	return remaining <= v.Height || remaining-step <= 0
}

// steer runs the turn-box heading interpolation
func (v *Vehicle) steer(ms float64) {
	if v.Turn == core.Straight || v.turned || !v.passedStopLine {
		return
	}
	if !v.turning {
		if !core.TurnBox.Contains(v.X, v.Y) {
			return
		}
		v.turning = true
		v.turnOrigin = v.Heading
	}

	sign := 1.0
	if v.Turn == core.Left {
		sign = -1.0
	}

	v.turnProgress += TurnRate * ms
	if v.turnProgress >= TurnAngle {
		v.turnProgress = TurnAngle
		v.Heading = NormalizeHeading(v.turnOrigin + sign*TurnAngle)
		v.turning = false
		v.turned = true
		return
	}
	v.Heading = NormalizeHeading(v.turnOrigin + sign*v.turnProgress)
}

// PassedStopLine reports whether the vehicle has crossed its stop line
func (v *Vehicle) PassedStopLine() bool { return v.passedStopLine }

// Turning reports whether a turn is in progress
func (v *Vehicle) Turning() bool { return v.turning }

// TurnComplete reports whether the vehicle finished its turn
func (v *Vehicle) TurnComplete() bool { return v.turned }

// TurnProgress returns the degrees rotated so far
func (v *Vehicle) TurnProgress() float64 { return v.turnProgress }

// RunningLight reports whether the vehicle committed to a violation
func (v *Vehicle) RunningLight() bool { return v.runningLight }

// Visible reports whether the vehicle is still inside the canvas bounds
func (v *Vehicle) Visible() bool {
	return core.VisibleBounds.Contains(v.X, v.Y)
}

// View returns a read-only copy for renderers
func (v *Vehicle) View() core.VehicleView {
	return core.VehicleView{
		ID:        v.ID,
		Direction: v.Direction,
		X:         v.X,
		Y:         v.Y,
		Width:     v.Width,
		Height:    v.Height,
		Angle:     v.Heading,
		Color:     v.Color,
		Kind:      v.Kind,
		Moving:    v.Moving,
		Wait:      v.Wait,
	}
}

// NormalizeHeading maps h into [0, 360)
func NormalizeHeading(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

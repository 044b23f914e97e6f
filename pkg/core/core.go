// Package core provides the central types and interfaces for the traffix intersection engine.
package core

import (
	"fmt"
	"strings"
)

// Direction identifies one of the four approaches feeding the intersection.
// The numeric value doubles as the signal/approach index.
type Direction int

const (
	// North is the approach entering from the top of the canvas
	North Direction = iota
	// South is the approach entering from the bottom of the canvas
	South
	// East is the approach entering from the right of the canvas
	East
	// West is the approach entering from the left of the canvas
	West
)

// NumApproaches is the fixed number of approaches and signals
const NumApproaches = 4

// Directions lists every approach in processing order
var Directions = [NumApproaches]Direction{North, South, East, West}

var directionNames = [NumApproaches]string{"north", "south", "east", "west"}

// Valid reports whether d is one of the four approaches
func (d Direction) Valid() bool {
	return d >= North && d <= West
}

func (d Direction) String() string {
	if !d.Valid() {
		return fmt.Sprintf("direction(%d)", int(d))
	}
	return directionNames[d]
}

// Short returns the single-letter form used in phase names
func (d Direction) Short() string {
	if !d.Valid() {
		return "?"
	}
	return strings.ToUpper(directionNames[d][:1])
}

// Bound returns the human readable location label, e.g. "Northbound"
func (d Direction) Bound() string {
	if !d.Valid() {
		return "Unknown"
	}
	name := directionNames[d]
	return strings.ToUpper(name[:1]) + name[1:] + "bound"
}

// MarshalText implements encoding.TextMarshaler
func (d Direction) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, NewInputError(ErrCodeInvalidDirection, "direction", int(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseDirection accepts the full name or the single-letter form, case-insensitively
func ParseDirection(s string) (Direction, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range directionNames {
		if s == name || s == name[:1] {
			return Direction(i), nil
		}
	}
	return 0, NewInputError(ErrCodeInvalidDirection, "direction", s)
}

// SignalState is the colour shown by a signal
type SignalState int

const (
	// Red stops traffic at the stop line
	Red SignalState = iota
	// Yellow warns that the signal is about to turn red
	Yellow
	// Green lets traffic through
	Green
)

var signalStateNames = [...]string{"RED", "YELLOW", "GREEN"}

// Valid reports whether s is a known signal colour
func (s SignalState) Valid() bool {
	return s >= Red && s <= Green
}

func (s SignalState) String() string {
	if !s.Valid() {
		return fmt.Sprintf("signal(%d)", int(s))
	}
	return signalStateNames[s]
}

// MarshalText implements encoding.TextMarshaler
func (s SignalState) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, NewInputError(ErrCodeInvalidSignalState, "signal", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (s *SignalState) UnmarshalText(text []byte) error {
	parsed, err := ParseSignalState(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseSignalState parses "red", "yellow" or "green" in any case
func ParseSignalState(s string) (SignalState, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for i, name := range signalStateNames {
		if s == name {
			return SignalState(i), nil
		}
	}
	return 0, NewInputError(ErrCodeInvalidSignalState, "signal", s)
}

// VehicleKind distinguishes regular traffic from priority vehicles
type VehicleKind int

const (
	// Normal vehicles obey signals and may run a light
	Normal VehicleKind = iota
	// Emergency vehicles ignore signals and drive preemption
	Emergency
)

func (k VehicleKind) String() string {
	switch k {
	case Normal:
		return "normal"
	case Emergency:
		return "emergency"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// MarshalText implements encoding.TextMarshaler
func (k VehicleKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// VehicleColor is the body colour shown by renderers
type VehicleColor int

const (
	Blue VehicleColor = iota
	RedCar
	Purple
	YellowCar
	Indigo
	Pink
	GreenCar
	White
)

var vehicleColorNames = [...]string{"blue", "red", "purple", "yellow", "indigo", "pink", "green", "white"}

// CarColors are the colours normal vehicles are painted with
var CarColors = [...]VehicleColor{Blue, RedCar, Purple, YellowCar, Indigo, Pink, GreenCar}

func (c VehicleColor) String() string {
	if c < Blue || c > White {
		return fmt.Sprintf("color(%d)", int(c))
	}
	return vehicleColorNames[c]
}

// MarshalText implements encoding.TextMarshaler
func (c VehicleColor) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// TurnIntent is the manoeuvre a vehicle performs inside the intersection
type TurnIntent int

const (
	Straight TurnIntent = iota
	Left
	Right
)

func (t TurnIntent) String() string {
	switch t {
	case Straight:
		return "straight"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("turn(%d)", int(t))
	}
}

// MarshalText implements encoding.TextMarshaler
func (t TurnIntent) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Rand is the randomness source the engine draws from.
// *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

package core

// Canvas layout. Coordinates are pixels on a 400x400 canvas with y growing downwards.
const (
	VehicleWidth  = 10.0
	VehicleHeight = 16.0

	// FollowGapFactor times the vehicle height is the car-following stop distance
	FollowGapFactor = 1.5
)

// Rect is an axis-aligned region, bounds inclusive
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// Contains reports whether (x, y) lies inside r
func (r Rect) Contains(x, y float64) bool {
	return x >= r.MinX && x <= r.MaxX && y >= r.MinY && y <= r.MaxY
}

var (
	// VisibleBounds is the region outside of which vehicles are reclaimed
	VisibleBounds = Rect{MinX: -30, MinY: -30, MaxX: 430, MaxY: 430}

	// TurnBox is the central region where turning vehicles rotate
	TurnBox = Rect{MinX: 170, MinY: 170, MaxX: 230, MaxY: 230}
)

// Axis is the coordinate a vehicle travels along before turning
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

// Geometry is the fixed pose and stop line of one approach
type Geometry struct {
	StartX, StartY float64
	Heading        float64 // degrees, 0 = up, clockwise
	StopLine       float64
	Axis           Axis
	Sign           float64 // +1 when the travel coordinate grows towards the intersection
}

var geometries = [NumApproaches]Geometry{
	North: {StartX: 215, StartY: -20, Heading: 180, StopLine: 160, Axis: AxisY, Sign: 1},
	South: {StartX: 175, StartY: 420, Heading: 0, StopLine: 240, Axis: AxisY, Sign: -1},
	East:  {StartX: 420, StartY: 215, Heading: 270, StopLine: 240, Axis: AxisX, Sign: -1},
	West:  {StartX: -20, StartY: 175, Heading: 90, StopLine: 160, Axis: AxisX, Sign: 1},
}

// GeometryFor returns the layout of approach d
func GeometryFor(d Direction) Geometry {
	if !d.Valid() {
		return Geometry{}
	}
	return geometries[d]
}

// ToStopLine is the signed distance left to the stop line along the travel axis.
// It is positive before the line and zero or negative once past it.
func (g Geometry) ToStopLine(x, y float64) float64 {
	coord := y
	if g.Axis == AxisX {
		coord = x
	}
	return g.Sign * (g.StopLine - coord)
}

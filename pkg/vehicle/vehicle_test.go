package vehicle_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/anggasct/traffix/pkg/core"
	"github.com/anggasct/traffix/pkg/vehicle"
	"github.com/stretchr/testify/assert"
)

// fixedRand always returns the same draws
type fixedRand struct {
	f float64
	n int
}

func (r fixedRand) Float64() float64 { return r.f }
func (r fixedRand) Intn(n int) int   { return r.n % n }

func TestNew(t *testing.T) {
	t.Run("Spawns at approach start pose", func(t *testing.T) {
		rng := rand.New(rand.NewSource(7))
		for _, dir := range core.Directions {
			v := vehicle.New(1, dir, core.Normal, rng)
			geo := core.GeometryFor(dir)

			assert.Equal(t, geo.StartX, v.X)
			assert.Equal(t, geo.StartY, v.Y)
			assert.Equal(t, geo.Heading, v.Heading)
			assert.Equal(t, core.VehicleWidth, v.Width)
			assert.Equal(t, core.VehicleHeight, v.Height)
			assert.GreaterOrEqual(t, v.Speed, vehicle.NormalBaseSpeed)
			assert.Less(t, v.Speed, vehicle.NormalBaseSpeed+vehicle.NormalSpeedJitter)
			assert.NotEqual(t, core.White, v.Color)
			assert.True(t, v.Moving)
		}
	})

	t.Run("Emergency vehicles are fast and white", func(t *testing.T) {
		v := vehicle.New(9, core.East, core.Emergency, fixedRand{f: 0.1})

		assert.Equal(t, vehicle.EmergencySpeed, v.Speed)
		assert.Equal(t, core.White, v.Color)
		assert.Equal(t, core.Emergency, v.Kind)
	})

	t.Run("Turn intent thresholds", func(t *testing.T) {
		cases := []struct {
			draw float64
			want core.TurnIntent
		}{
			{0.0, core.Straight},
			{0.49, core.Straight},
			{0.5, core.Left},
			{0.74, core.Left},
			{0.75, core.Right},
			{0.99, core.Right},
		}
		for _, tc := range cases {
			v := vehicle.New(1, core.North, core.Normal, fixedRand{f: tc.draw, n: 3})
			assert.Equal(t, tc.want, v.Turn, "draw %v", tc.draw)
			assert.Equal(t, core.CarColors[3], v.Color)
		}
	})
}

func northbound(y float64) vehicle.Vehicle {
	v := vehicle.New(1, core.North, core.Normal, fixedRand{f: 0})
	v.Y = y
	return v
}

func TestStopLine(t *testing.T) {
	t.Run("Stops at red within one length of the line", func(t *testing.T) {
		v := northbound(150)

		out := v.Update(100*time.Millisecond, core.Red, nil, vehicle.Rules{})

		assert.False(t, out.Violation)
		assert.False(t, v.Moving)
		assert.Equal(t, 150.0, v.Y)
		assert.Equal(t, 100*time.Millisecond, v.Wait)

		v.Update(50*time.Millisecond, core.Yellow, nil, vehicle.Rules{})
		assert.Equal(t, 150*time.Millisecond, v.Wait)
	})

	t.Run("Stops when the next step would cross the line", func(t *testing.T) {
		v := northbound(130)

		v.Update(time.Second, core.Red, nil, vehicle.Rules{})

		assert.False(t, v.Moving)
		assert.Equal(t, 130.0, v.Y)
	})

	t.Run("Far vehicles keep moving on red", func(t *testing.T) {
		v := northbound(0)

		v.Update(100*time.Millisecond, core.Red, nil, vehicle.Rules{})

		assert.True(t, v.Moving)
		assert.InDelta(t, 5.0, v.Y, 1e-9)
	})

	t.Run("Green releases a stopped vehicle and resets wait", func(t *testing.T) {
		v := northbound(150)
		v.Update(time.Second, core.Red, nil, vehicle.Rules{})
		assert.Equal(t, time.Second, v.Wait)

		v.Update(100*time.Millisecond, core.Green, nil, vehicle.Rules{})

		assert.True(t, v.Moving)
		assert.Zero(t, v.Wait)
		assert.InDelta(t, 155.0, v.Y, 1e-9)
	})

	t.Run("Vehicles past the line ignore the signal", func(t *testing.T) {
		v := northbound(165)

		v.Update(100*time.Millisecond, core.Red, nil, vehicle.Rules{})

		assert.True(t, v.PassedStopLine())
		assert.True(t, v.Moving)
	})

	t.Run("Emergency vehicles ignore red", func(t *testing.T) {
		v := vehicle.New(2, core.North, core.Emergency, fixedRand{f: 0})
		v.Y = 150

		v.Update(100*time.Millisecond, core.Red, nil, vehicle.Rules{})

		assert.True(t, v.Moving)
		assert.InDelta(t, 160.0, v.Y, 1e-9)
	})
}

func TestViolation(t *testing.T) {
	t.Run("Successful roll runs the light once", func(t *testing.T) {
		v := northbound(150)
		rules := vehicle.Rules{ViolationProbability: 0.5, Rand: fixedRand{f: 0.1}}

		out := v.Update(100*time.Millisecond, core.Red, nil, rules)

		assert.True(t, out.Violation)
		assert.Equal(t, core.Red, out.Signal)
		assert.True(t, v.Moving)
		assert.True(t, v.RunningLight())

		out = v.Update(100*time.Millisecond, core.Red, nil, rules)
		assert.False(t, out.Violation)
		assert.True(t, v.Moving)
	})

	t.Run("Failed roll stops the vehicle", func(t *testing.T) {
		v := northbound(150)
		rules := vehicle.Rules{ViolationProbability: 0.5, Rand: fixedRand{f: 0.9}}

		out := v.Update(100*time.Millisecond, core.Yellow, nil, rules)

		assert.False(t, out.Violation)
		assert.False(t, v.Moving)
	})

	t.Run("Blocked vehicles never roll", func(t *testing.T) {
		v := northbound(150)
		leader := northbound(165)
		rules := vehicle.Rules{ViolationProbability: 1, Rand: fixedRand{f: 0}}

		out := v.Update(100*time.Millisecond, core.Red, []vehicle.Vehicle{leader}, rules)

		assert.False(t, out.Violation)
		assert.False(t, v.Moving)
	})
}

func TestCarFollowing(t *testing.T) {
	t.Run("Stops inside the following gap even on green", func(t *testing.T) {
		v := northbound(50)
		leader := northbound(70)

		v.Update(100*time.Millisecond, core.Green, []vehicle.Vehicle{leader}, vehicle.Rules{})

		assert.False(t, v.Moving)
		assert.Equal(t, 50.0, v.Y)
	})

	t.Run("Moves when the gap is clear", func(t *testing.T) {
		v := northbound(50)
		leader := northbound(80)

		v.Update(100*time.Millisecond, core.Green, []vehicle.Vehicle{leader}, vehicle.Rules{})

		assert.True(t, v.Moving)
	})
}

func TestTurning(t *testing.T) {
	drive := func(v *vehicle.Vehicle, ticks int) {
		for i := 0; i < ticks; i++ {
			v.Update(50*time.Millisecond, core.Green, nil, vehicle.Rules{})
		}
	}

	t.Run("Right turn from north ends heading west", func(t *testing.T) {
		v := northbound(168)
		v.Turn = core.Right

		v.Update(50*time.Millisecond, core.Green, nil, vehicle.Rules{})
		assert.True(t, v.Turning())
		assert.InDelta(t, 184.5, v.Heading, 1e-9)

		drive(&v, 40)
		assert.True(t, v.TurnComplete())
		assert.False(t, v.Turning())
		assert.Equal(t, 270.0, v.Heading)
		assert.Equal(t, vehicle.TurnAngle, v.TurnProgress())
	})

	t.Run("Left turn from north ends heading east", func(t *testing.T) {
		v := northbound(168)
		v.Turn = core.Left

		drive(&v, 40)
		assert.True(t, v.TurnComplete())
		assert.Equal(t, 90.0, v.Heading)
	})

	t.Run("Left turn from south wraps through zero", func(t *testing.T) {
		v := vehicle.New(1, core.South, core.Normal, fixedRand{f: 0})
		v.Y = 232
		v.Turn = core.Left

		drive(&v, 40)
		assert.Equal(t, 270.0, v.Heading)
	})

	t.Run("Straight vehicles never rotate", func(t *testing.T) {
		v := northbound(168)
		v.Turn = core.Straight

		drive(&v, 40)
		assert.False(t, v.TurnComplete())
		assert.Equal(t, 180.0, v.Heading)
	})

	t.Run("Stationary vehicles do not progress the turn", func(t *testing.T) {
		v := northbound(180)
		v.Turn = core.Right
		v.Update(50*time.Millisecond, core.Green, nil, vehicle.Rules{})
		progress := v.TurnProgress()

		leader := v
		v.Update(50*time.Millisecond, core.Green, []vehicle.Vehicle{leader}, vehicle.Rules{})
		assert.Equal(t, progress, v.TurnProgress())
	})
}

func TestVisibilityAndView(t *testing.T) {
	v := northbound(429)
	assert.True(t, v.Visible())

	v.Y = 431
	assert.False(t, v.Visible())

	view := v.View()
	assert.Equal(t, v.ID, view.ID)
	assert.Equal(t, v.Heading, view.Angle)
	assert.Equal(t, core.North, view.Direction)
}

func TestNormalizeHeading(t *testing.T) {
	assert.Equal(t, 270.0, vehicle.NormalizeHeading(-90))
	assert.Equal(t, 0.0, vehicle.NormalizeHeading(360))
	assert.Equal(t, 90.0, vehicle.NormalizeHeading(450))
}

package driver_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/anggasct/traffix/pkg/driver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingStepper struct {
	mu     sync.Mutex
	deltas []time.Duration
}

func (s *recordingStepper) Update(dt time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deltas = append(s.deltas, dt)
}

func (s *recordingStepper) Deltas() []time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]time.Duration, len(s.deltas))
	copy(out, s.deltas)
	return out
}

func quietOptions() driver.Options {
	opts := driver.DefaultOptions()
	opts.Interval = 5 * time.Millisecond
	opts.MaxDelta = 0
	opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	return opts
}

func TestClamp(t *testing.T) {
	interval := 50 * time.Millisecond
	maxDelta := 250 * time.Millisecond

	cases := []struct {
		name string
		dt   time.Duration
		want time.Duration
	}{
		{"Negative becomes zero", -10 * time.Millisecond, 0},
		{"Zero passes", 0, 0},
		{"Regular tick passes", 52 * time.Millisecond, 52 * time.Millisecond},
		{"Limit passes", maxDelta, maxDelta},
		{"Stall becomes one interval", 3 * time.Second, interval},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, driver.Clamp(tc.dt, interval, maxDelta))
		})
	}
}

func TestRunner(t *testing.T) {
	t.Run("Start and stop", func(t *testing.T) {
		stepper := &recordingStepper{}
		runner := driver.NewRunner(stepper, quietOptions())
		assert.False(t, runner.Running())

		require.NoError(t, runner.Start(context.Background()))
		assert.True(t, runner.Running())
		assert.ErrorIs(t, runner.Start(context.Background()), driver.ErrAlreadyRunning)

		assert.Eventually(t, func() bool { return runner.Ticks() >= 3 }, time.Second, time.Millisecond)

		require.NoError(t, runner.Stop())
		assert.False(t, runner.Running())
		assert.ErrorIs(t, runner.Stop(), driver.ErrNotRunning)

		ticks := runner.Ticks()
		time.Sleep(20 * time.Millisecond)
		assert.Equal(t, ticks, runner.Ticks())
		assert.Len(t, stepper.Deltas(), int(ticks))
		for _, dt := range stepper.Deltas() {
			assert.GreaterOrEqual(t, dt, time.Duration(0))
			assert.LessOrEqual(t, dt, 25*time.Millisecond)
		}
	})

	t.Run("Context cancellation stops the loop", func(t *testing.T) {
		runner := driver.NewRunner(&recordingStepper{}, quietOptions())
		ctx, cancel := context.WithCancel(context.Background())

		require.NoError(t, runner.Start(ctx))
		cancel()

		assert.Eventually(t, func() bool { return !runner.Running() }, time.Second, time.Millisecond)
		require.NoError(t, runner.Start(context.Background()))
		require.NoError(t, runner.Stop())
	})

	t.Run("Stalled clock is clamped to one interval", func(t *testing.T) {
		var mu sync.Mutex
		current := time.Unix(0, 0)
		opts := quietOptions()
		opts.Now = func() time.Time {
			mu.Lock()
			defer mu.Unlock()
			current = current.Add(time.Minute)
			return current
		}
		stepper := &recordingStepper{}
		runner := driver.NewRunner(stepper, opts)

		require.NoError(t, runner.Start(context.Background()))
		assert.Eventually(t, func() bool { return runner.Ticks() >= 2 }, time.Second, time.Millisecond)
		require.NoError(t, runner.Stop())

		for _, dt := range stepper.Deltas() {
			assert.Equal(t, opts.Interval, dt)
		}
		assert.Equal(t, runner.Ticks(), runner.Stalls())
	})

	t.Run("Zero options take defaults", func(t *testing.T) {
		runner := driver.NewRunner(&recordingStepper{}, driver.Options{})
		assert.False(t, runner.Running())
	})
}

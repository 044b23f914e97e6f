// Package driver runs a simulation on a wall-clock cadence.
//
// The engine owns no goroutine; a Runner is the external loop that derives
// each tick's delta from the time elapsed since the previous one.
package driver

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

const (
	// DefaultInterval is the tick cadence used when none is configured
	DefaultInterval = 50 * time.Millisecond
	// DefaultStallFactor times the interval is the largest delta passed through unchanged
	DefaultStallFactor = 5
)

var (
	// ErrAlreadyRunning is returned by Start on a running Runner
	ErrAlreadyRunning = errors.New("driver: runner already running")
	// ErrNotRunning is returned by Stop on a stopped Runner
	ErrNotRunning = errors.New("driver: runner not running")
)

// Stepper is anything advanced by a time delta
type Stepper interface {
	Update(dt time.Duration)
}

// Options configures a Runner
type Options struct {
	Interval time.Duration
	// MaxDelta is the largest delta passed through; longer gaps count as one interval
	MaxDelta time.Duration
	Logger   *slog.Logger
	// Now is the wall clock; defaults to time.Now
	Now func() time.Time
}

// DefaultOptions returns a 50ms cadence with stall recovery at five intervals
func DefaultOptions() Options {
	return Options{
		Interval: DefaultInterval,
		MaxDelta: DefaultStallFactor * DefaultInterval,
		Logger:   slog.Default(),
		Now:      time.Now,
	}
}

// Runner calls Stepper.Update at a fixed cadence until stopped
type Runner struct {
	stepper  Stepper
	interval time.Duration
	maxDelta time.Duration
	logger   *slog.Logger
	now      func() time.Time

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}

	ticks   atomic.Uint64
	stalled atomic.Uint64
}

// NewRunner creates a stopped runner. Zero option fields take their defaults.
func NewRunner(stepper Stepper, opts Options) *Runner {
	defaults := DefaultOptions()
	if opts.Interval <= 0 {
		opts.Interval = defaults.Interval
	}
	if opts.MaxDelta <= 0 {
		opts.MaxDelta = DefaultStallFactor * opts.Interval
	}
	if opts.Logger == nil {
		opts.Logger = defaults.Logger
	}
	if opts.Now == nil {
		opts.Now = defaults.Now
	}

	return &Runner{
		stepper:  stepper,
		interval: opts.Interval,
		maxDelta: opts.MaxDelta,
		logger:   opts.Logger,
		now:      opts.Now,
	}
}

// Start launches the tick loop. The loop ends when ctx is cancelled or Stop is called.
func (r *Runner) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cancel != nil {
		return ErrAlreadyRunning
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	r.cancel = cancel
	r.done = done

	go r.loop(ctx, done)

	r.logger.Debug("driver started", "interval", r.interval, "max_delta", r.maxDelta)
	return nil
}

// Stop cancels the loop and waits for the in-flight tick to finish
func (r *Runner) Stop() error {
	r.mu.Lock()
	if r.cancel == nil {
		r.mu.Unlock()
		return ErrNotRunning
	}
	cancel, done := r.cancel, r.done
	r.mu.Unlock()

	cancel()
	<-done
	return nil
}

// Running reports whether the loop is active
func (r *Runner) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cancel != nil
}

// Ticks returns the number of Update calls made so far
func (r *Runner) Ticks() uint64 {
	return r.ticks.Load()
}

// Stalls returns the number of deltas replaced by one interval
func (r *Runner) Stalls() uint64 {
	return r.stalled.Load()
}

func (r *Runner) loop(ctx context.Context, done chan struct{}) {
	ticker := time.NewTicker(r.interval)
	defer func() {
		ticker.Stop()

		r.mu.Lock()
		if r.done == done {
			r.cancel()
			r.cancel = nil
			r.done = nil
		}
		r.mu.Unlock()

		close(done)
		r.logger.Debug("driver stopped", "ticks", r.ticks.Load())
	}()

	last := r.now()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			now := r.now()
			raw := now.Sub(last)
			last = now

			dt := Clamp(raw, r.interval, r.maxDelta)
			if raw > r.maxDelta {
				r.stalled.Add(1)
				r.logger.Warn("tick stalled, delta clamped", "delta", raw, "used", dt)
			}

			r.stepper.Update(dt)
			r.ticks.Add(1)
		}
	}
}

// Clamp normalises a wall-clock delta: negative values become zero and
// anything above maxDelta is replaced by a single interval.
func Clamp(dt, interval, maxDelta time.Duration) time.Duration {
	switch {
	case dt < 0:
		return 0
	case dt > maxDelta:
		return interval
	default:
		return dt
	}
}

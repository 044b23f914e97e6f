package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anggasct/traffix"
	"github.com/anggasct/traffix/pkg/config"
	"github.com/anggasct/traffix/pkg/core"
	"github.com/anggasct/traffix/pkg/driver"
	"github.com/anggasct/traffix/pkg/observers"
	"github.com/anggasct/traffix/visualization"
)

const (
	defaultStatsInterval = 10 * time.Second
)

func main() {
	configPath := flag.String("config", "", "Path to configuration file (defaults are used when empty)")
	debug := flag.Bool("debug", false, "Enable debug logging")
	interval := flag.Duration("interval", driver.DefaultInterval, "Tick interval")
	statsEvery := flag.Duration("stats", defaultStatsInterval, "Interval between statistics reports")
	dotPath := flag.String("dot", "", "Write the phase cycle as a Graphviz file and exit")
	flag.Parse()

	logLevel := slog.LevelInfo
	if *debug {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	cfg := core.DefaultConfig()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			slog.Error("failed to load configuration", "config", *configPath, "error", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	if *dotPath != "" {
		options := visualization.DefaultDOTOptions()
		options.ShowPreemption = true
		if err := visualization.NewDOTGenerator(cfg, options).GenerateToFile(*dotPath); err != nil {
			slog.Error("failed to write phase graph", "path", *dotPath, "error", err)
			os.Exit(1)
		}
		slog.Info("phase graph written", "path", *dotPath)
		return
	}

	sim, err := traffix.New(cfg)
	if err != nil {
		slog.Error("failed to create simulation", "error", err)
		os.Exit(1)
	}
	sim.AddObserver(observers.NewLoggingObserver(logger.With("component", "traffix"), slog.LevelInfo))

	slog.Info("starting traffix simulation",
		"instance", sim.InstanceID(),
		"config", *configPath,
		"interval", *interval,
		"debug", *debug,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	opts := driver.DefaultOptions()
	opts.Interval = *interval
	opts.MaxDelta = driver.DefaultStallFactor * *interval
	opts.Logger = logger.With("component", "driver")

	runner := driver.NewRunner(sim, opts)
	if err := runner.Start(ctx); err != nil {
		slog.Error("failed to start driver", "error", err)
		os.Exit(1)
	}

	ticker := time.NewTicker(*statsEvery)
	defer ticker.Stop()

	for {
		select {
		case sig := <-sigChan:
			slog.Info("received shutdown signal", "signal", sig)
			if err := runner.Stop(); err != nil {
				slog.Error("shutdown failed", "error", err)
				os.Exit(1)
			}
			logStats(sim, runner)
			slog.Info("traffix simulation stopped", "ticks", runner.Ticks())
			return
		case <-ticker.C:
			logStats(sim, runner)
		}
	}
}

func logStats(sim *traffix.Simulation, runner *driver.Runner) {
	stats := sim.Stats()
	phase, remaining := sim.Phase()

	slog.Info("simulation stats",
		"clock", sim.Clock(),
		"phase", phase.String(),
		"phase_remaining", remaining,
		"auto_mode", sim.AutoMode(),
		"emergency_active", sim.EmergencyActive(),
		"total_vehicles", stats.TotalVehicles,
		"avg_wait_s", stats.AvgWaitTime,
		"incidents", stats.IncidentCount,
		"emergencies_cleared", stats.EmergenciesCleared,
		"avg_emergency_response_s", stats.AvgEmergencyResponse,
		"stalls", runner.Stalls(),
	)
}

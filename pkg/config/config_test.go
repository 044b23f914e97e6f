package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/anggasct/traffix/pkg/config"
	"github.com/anggasct/traffix/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("Overlays values on defaults", func(t *testing.T) {
		cfg, err := config.Parse([]byte(`
seed: 42
green_duration: 20s
yellow_duration: 1500ms
violation_probability: 0.01
emergency_vehicle_type: Fire Truck
`))

		require.NoError(t, err)
		assert.Equal(t, int64(42), cfg.Seed)
		assert.Equal(t, 20*time.Second, cfg.GreenDuration)
		assert.Equal(t, 1500*time.Millisecond, cfg.YellowDuration)
		assert.Equal(t, 0.01, cfg.ViolationProbability)
		assert.Equal(t, "Fire Truck", cfg.EmergencyVehicleType)

		defaults := core.DefaultConfig()
		assert.Equal(t, defaults.EmergencyDuration, cfg.EmergencyDuration)
		assert.Equal(t, defaults.MaxVehiclesPerApproach, cfg.MaxVehiclesPerApproach)
		assert.NotNil(t, cfg.Clock)
	})

	t.Run("Empty document yields defaults", func(t *testing.T) {
		cfg, err := config.Parse(nil)

		require.NoError(t, err)
		assert.Equal(t, core.DefaultConfig().GreenDuration, cfg.GreenDuration)
	})

	t.Run("Unknown fields are rejected", func(t *testing.T) {
		_, err := config.Parse([]byte("green_time: 10s\n"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse config")
	})

	t.Run("Invalid values fail validation", func(t *testing.T) {
		_, err := config.Parse([]byte("spawn_min: 8s\nspawn_max: 4s\n"))

		require.Error(t, err)
		assert.True(t, core.IsConfigurationError(err))
		assert.Contains(t, err.Error(), "spawn_max")
	})
}

func TestLoad(t *testing.T) {
	t.Run("Reads a file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "traffix.yaml")
		require.NoError(t, os.WriteFile(path, []byte("max_vehicles_per_approach: 4\n"), 0o644))

		cfg, err := config.Load(path)

		require.NoError(t, err)
		assert.Equal(t, 4, cfg.MaxVehiclesPerApproach)
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))

		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestMarshal(t *testing.T) {
	cfg := core.DefaultConfig()
	cfg.GreenDuration = 30 * time.Second

	data, err := config.Marshal(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(data), "green_duration: 30s")
	assert.NotContains(t, string(data), "clock")

	back, err := config.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, cfg.GreenDuration, back.GreenDuration)
	assert.Equal(t, cfg.ViolationFine, back.ViolationFine)
}

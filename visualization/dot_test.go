package visualization_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/anggasct/traffix/pkg/core"
	"github.com/anggasct/traffix/visualization"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDOTGeneration(t *testing.T) {
	generator := visualization.NewDOTGenerator(core.DefaultConfig())

	dotContent, err := generator.Generate()
	require.NoError(t, err)

	assert.Contains(t, dotContent, "digraph PhaseCycle")
	for _, phase := range core.Phases() {
		assert.Contains(t, dotContent, "\""+phase.String()+"\"")
	}

	assert.Contains(t, dotContent, "\"N_GREEN\" -> \"N_YELLOW\"")
	assert.Contains(t, dotContent, "\"N_YELLOW\" -> \"E_GREEN\"")
	assert.Contains(t, dotContent, "\"W_YELLOW\" -> \"N_GREEN\"")
	assert.Equal(t, core.NumPhases, strings.Count(dotContent, " -> "))

	assert.Contains(t, dotContent, "lightgreen")
	assert.Contains(t, dotContent, "(initial)")
	assert.Contains(t, dotContent, "\\n10s")
	assert.Contains(t, dotContent, "\\n2s")
	assert.NotContains(t, dotContent, "PREEMPT_")
}

func TestDOTGenerationWithPreemption(t *testing.T) {
	cfg := core.DefaultConfig()
	cfg.EmergencyDuration = 12 * time.Second

	options := visualization.DefaultDOTOptions()
	options.ShowPreemption = true
	generator := visualization.NewDOTGenerator(cfg, options)

	dotContent, err := generator.Generate()
	require.NoError(t, err)

	for _, dir := range core.Directions {
		node := "PREEMPT_" + dir.Short()
		assert.Contains(t, dotContent, "\""+node+"\" -> \""+core.YellowPhase(dir).String()+"\"")
	}
	assert.Contains(t, dotContent, "Northbound green")
	assert.Contains(t, dotContent, "\\n12s")
	assert.Contains(t, dotContent, "shape=octagon")
}

func TestDOTGenerationWithoutDurations(t *testing.T) {
	options := visualization.DefaultDOTOptions()
	options.ShowDurations = false

	dotContent, err := visualization.NewDOTGenerator(core.DefaultConfig(), options).Generate()
	require.NoError(t, err)

	assert.NotContains(t, dotContent, "\\n10s")
	assert.Contains(t, dotContent, "rankdir=LR")
}

func TestDOTGenerationRejectsInvalidConfig(t *testing.T) {
	cfg := core.DefaultConfig()
	cfg.GreenDuration = 0

	_, err := visualization.NewDOTGenerator(cfg).Generate()
	require.Error(t, err)
	assert.True(t, core.IsConfigurationError(err))
}

func TestDOTGenerator_GenerateToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cycle.dot")

	err := visualization.NewDOTGenerator(core.DefaultConfig()).GenerateToFile(path)
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "digraph PhaseCycle")
}

func TestSVGGenerator(t *testing.T) {
	if _, err := exec.LookPath("dot"); err != nil {
		t.Skip("graphviz not installed")
	}

	svgContent, err := visualization.NewSVGGenerator(core.DefaultConfig()).Generate()
	require.NoError(t, err)
	assert.Contains(t, svgContent, "<svg")
}

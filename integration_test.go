package traffix

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anggasct/traffix/pkg/builders"
	"github.com/anggasct/traffix/pkg/core"
	"github.com/anggasct/traffix/pkg/observers"
)

func TestIntegration_CycleAndPreemption(t *testing.T) {
	validation := observers.NewValidationObserver()
	metrics := observers.NewMetricsObserver()

	sim, err := Build(builders.NewSimulationBuilderFrom(QuietConfig(3 * time.Minute)).
		WithObserver(validation).
		WithObserver(metrics))
	require.NoError(t, err)

	tick := 50 * time.Millisecond

	// One full cycle returns to N_GREEN
	Run(sim, 48*time.Second, tick)
	AssertPhase(t, sim, core.NGreen, 10*time.Second)
	assert.Empty(t, validation.GetUnvisitedPhases())
	assert.Equal(t, 1, metrics.GetTransitionCounts()["W_YELLOW->N_GREEN"])

	started, err := sim.TriggerEmergencyAt(core.East)
	require.NoError(t, err)
	require.True(t, started)
	AssertSignals(t, sim, [core.NumApproaches]core.SignalState{core.Red, core.Red, core.Green, core.Red})

	Run(sim, 16*time.Second, tick)

	phase, _ := sim.Phase()
	assert.Equal(t, core.EYellow, phase)
	assert.True(t, sim.AutoMode())
	assert.False(t, sim.EmergencyActive())
	assert.Equal(t, 1, metrics.GetTransitionCounts()["N_GREEN->E_YELLOW"])

	triggered, cleared, timedOut := metrics.GetEmergencyCounts()
	assert.Equal(t, 1, triggered)
	assert.Equal(t, 1, cleared)
	assert.Equal(t, 0, timedOut)
	assert.Equal(t, 1, metrics.GetVehiclesExited()[core.East])

	log := sim.EmergencyLog()
	require.Len(t, log, 1)
	assert.Equal(t, "EV-1", log[0].ID)
	assert.False(t, log[0].TimedOut)
	assert.Less(t, log[0].ClearanceTime, 10*time.Second)

	// The cycle resumes from the handoff
	Run(sim, time.Second, tick)
	AssertPhase(t, sim, core.SGreen, 10*time.Second)
	AssertSingleNonRed(t, sim)

	assert.False(t, validation.HasProblems(), "problems: %v", validation.GetProblems())
	assert.Zero(t, metrics.GetErrorCount())
}

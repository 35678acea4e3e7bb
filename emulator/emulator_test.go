package emulator_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rwl/jetstream/emulator"
)

func TestStepProducesBoundedThreePhase(t *testing.T) {
	e := emulator.NewStandardThreePhase(4000, 1)

	for k := 0; k < 1000; k++ {
		s := e.NextSample()
		for i, v := range s {
			assert.Less(t, math.Abs(float64(v)), float64(math.MaxInt32), "variable %d sample %d", i, k)
		}
	}
}

func TestStepIsDeterministicForFixedSeed(t *testing.T) {
	a := emulator.NewStandardThreePhase(4000, 42)
	b := emulator.NewStandardThreePhase(4000, 42)

	for k := 0; k < 50; k++ {
		require.Equal(t, a.NextSample(), b.NextSample(), "sample %d", k)
	}
}

func TestStartEventInjectsFault(t *testing.T) {
	e := emulator.NewStandardThreePhase(4000, 7)
	before := e.NextSample()

	e.StartEvent(emulator.ThreePhaseFault)
	after := e.NextSample()

	assert.NotEqual(t, before, after)
}

func TestOverFrequencyEventuallyDecays(t *testing.T) {
	e := emulator.NewStandardThreePhase(4000, 3)
	e.StartEvent(emulator.OverFrequency)
	assert.InDelta(t, 0.1, e.Fdeviation, 1e-9)

	for k := 0; k < emulator.MaxEmulatedFrequencyDurationSamples; k++ {
		e.Step()
	}
	assert.Zero(t, e.Fdeviation)
}

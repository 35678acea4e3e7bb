package spatialref_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rwl/jetstream/spatialref"
)

func TestBuildThreePhaseNoNeutral(t *testing.T) {
	// countV=3, countI=3, stride 3 (no neutral): the voltage group spans
	// [3, 9), so with count=6 indices 3..5 reference i-3; the current group
	// [12, 18) lies beyond count.
	refs := spatialref.Build(6, 3, 3, false)
	require := assert.New(t)
	require.Len(refs, 6)

	for i := 0; i < 3; i++ {
		require.Falsef(refs[i].IsSet(), "voltage phase %d should have no reference", i)
	}
	for i := 3; i < 6; i++ {
		idx, ok := refs[i].Get()
		require.Truef(ok, "index %d lies in the voltage group and should have a reference", i)
		require.Equal(i-3, idx)
	}
}

func TestBuildFourWireWithNeutral(t *testing.T) {
	// 4-wire voltage group (3 phases + neutral) and matching current group.
	refs := spatialref.Build(8, 1, 1, true)
	require := assert.New(t)
	require.Len(refs, 8)

	for i := 0; i < 4; i++ {
		require.False(refs[i].IsSet())
	}
	for i := 4; i < 8; i++ {
		require.False(refs[i].IsSet())
	}
}

func TestBuildMultiCircuitVoltageGroup(t *testing.T) {
	// Two four-wire voltage circuits back to back: count=8, countV=2, countI=0.
	refs := spatialref.Build(8, 2, 0, true)
	require := assert.New(t)

	for i := 0; i < 4; i++ {
		require.False(refs[i].IsSet())
	}
	for i := 4; i < 8; i++ {
		idx, ok := refs[i].Get()
		require.True(ok)
		require.Equal(i-4, idx)
	}
}

func TestNoneIsUnset(t *testing.T) {
	idx, ok := spatialref.None.Get()
	assert.False(t, ok)
	assert.Equal(t, 0, idx)
}

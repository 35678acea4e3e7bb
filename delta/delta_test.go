package delta_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rwl/jetstream/delta"
)

func roundTrip(t *testing.T, mode delta.Mode, layers int, raw [][]int32) {
	t.Helper()

	variables := len(raw[0])
	enc := delta.NewEngine(mode, layers, variables)
	dec := delta.NewAccumulator(mode, layers, variables)

	out := make([][]int32, len(raw))
	for j := range out {
		out[j] = make([]int32, variables)
	}

	for j, row := range raw {
		for i, v := range row {
			residual := enc.Encode(j, i, v)
			if j == 0 {
				out[0][i] = residual
				continue
			}
			out[j][i] = dec.Decode(j, i, residual, out[j-1][i])
		}
	}

	require.Equal(t, raw, out)
}

func TestRoundTripArithmetic(t *testing.T) {
	raw := [][]int32{
		{100, 200, 300},
		{105, 198, 299},
		{110, 205, 280},
		{90, 210, 260},
		{95, 190, 250},
		{100, 188, 240},
	}
	roundTrip(t, delta.Arithmetic, 3, raw)
}

func TestRoundTripXOR(t *testing.T) {
	raw := [][]int32{
		{1, 2, 3},
		{5, 6, 7},
		{9, 2, 1},
		{0, 0, 0},
		{127, 255, 64},
	}
	roundTrip(t, delta.XOR, 3, raw)
}

func TestRoundTripSingleLayer(t *testing.T) {
	raw := [][]int32{
		{10},
		{20},
		{15},
		{15},
	}
	roundTrip(t, delta.Arithmetic, 1, raw)
}

func TestEncodeWrapsOnOverflow(t *testing.T) {
	enc := delta.NewEngine(delta.Arithmetic, 3, 1)
	enc.Encode(0, 0, 2147483647)
	residual := enc.Encode(1, 0, -2147483648)
	// -2147483648 - 2147483647 wraps in two's complement to 1.
	assert.Equal(t, int32(1), residual)
}

func TestAccumulatorResetClearsHistory(t *testing.T) {
	acc := delta.NewAccumulator(delta.Arithmetic, 3, 1)
	acc.Decode(1, 0, 10, 0)
	acc.Reset()

	// After reset, a fresh decode of indexTs=1 should behave as if the
	// accumulator were newly constructed.
	fresh := delta.NewAccumulator(delta.Arithmetic, 3, 1)
	got := acc.Decode(1, 0, 42, 100)
	want := fresh.Decode(1, 0, 42, 100)
	assert.Equal(t, want, got)
}

// Package delta implements the multi-layer delta (or XOR) transform applied
// to each variable's integer stream before Simple-8b/varint packing. Encode
// and Decode mirror each other: Engine folds a raw sample into a residual
// and keeps the per-layer history needed for the next sample; Accumulator
// does the inverse, folding a residual back into the reconstructed stream.
package delta

// Mode selects the operator the cascade combines values with. Both encoder
// and decoder must agree on the mode; it is not carried in the message.
type Mode int

const (
	// Arithmetic combines values by subtraction (encode) / addition
	// (decode), using Go's defined wraparound behaviour on overflow.
	Arithmetic Mode = iota
	// XOR combines values bitwise; the same operator undoes it, so encode
	// and decode share one implementation.
	XOR
)

func (m Mode) combine(a, b int32) int32 {
	if m == XOR {
		return a ^ b
	}
	return a - b //nolint:gosec // wraparound is the documented behaviour
}

func (m Mode) accumulate(a, b int32) int32 {
	if m == XOR {
		return a ^ b
	}
	return a + b //nolint:gosec // wraparound is the documented behaviour
}

// Engine runs the encode-side cascade for a fixed number of layers across a
// fixed number of variables. One Engine is shared by every variable in a
// stream; per-variable history lives in prev, indexed [layer][variable].
type Engine struct {
	mode    Mode
	layers  int
	prev    [][]int32
	scratch []int32
}

// NewEngine allocates an Engine for the given number of cascade layers and
// variables. layers and variables must both be positive.
func NewEngine(mode Mode, layers, variables int) *Engine {
	prev := make([][]int32, layers)
	for k := range prev {
		prev[k] = make([]int32, variables)
	}
	return &Engine{
		mode:    mode,
		layers:  layers,
		prev:    prev,
		scratch: make([]int32, layers),
	}
}

// SetMode changes the combining operator. Callers must only change the mode
// between messages, never mid-cascade, since encoder and decoder must agree
// on every sample.
func (e *Engine) SetMode(m Mode) {
	e.mode = m
}

// Encode folds val, the raw (post spatial-reference) value of variable i at
// sample index j (0-based within the current message), through the cascade
// and returns the residual to pack. It also updates the engine's per-layer
// history for the next call with the same variable.
func (e *Engine) Encode(j, i int, val int32) int32 {
	if j == 0 {
		e.prev[0][i] = val
		return val
	}

	e.scratch[0] = e.mode.combine(val, e.prev[0][i])

	top := min(j, e.layers)
	for k := 1; k < top; k++ {
		e.scratch[k] = e.mode.combine(e.scratch[k-1], e.prev[k][i])
	}

	residual := e.scratch[min(j-1, e.layers-1)]

	e.prev[0][i] = val
	lastLayer := min(j, e.layers-1)
	for k := 1; k <= lastLayer; k++ {
		e.prev[k][i] = e.scratch[k-1]
	}

	return residual
}

// Accumulator runs the decode-side cascade, mirroring Engine. delta_sum is
// indexed [layer][variable] with layers-1 rows, matching the encoder's
// scratch depth minus the innermost layer that is never separately stored.
type Accumulator struct {
	mode   Mode
	layers int
	sum    [][]int32
}

// NewAccumulator allocates an Accumulator for the given number of cascade
// layers and variables.
func NewAccumulator(mode Mode, layers, variables int) *Accumulator {
	sum := make([][]int32, layers-1)
	for k := range sum {
		sum[k] = make([]int32, variables)
	}
	return &Accumulator{mode: mode, layers: layers, sum: sum}
}

// SetMode changes the combining operator; see Engine.SetMode.
func (a *Accumulator) SetMode(m Mode) {
	a.mode = m
}

// Decode reconstructs the value of variable i at sample index indexTs (>= 1)
// given the residual just decoded and the already-reconstructed value of the
// same variable at indexTs-1.
func (a *Accumulator) Decode(indexTs, i int, residual, prevValue int32) int32 {
	if len(a.sum) == 0 {
		// A single-layer cascade carries the first difference directly.
		return a.mode.accumulate(prevValue, residual)
	}

	maxIndex := min(indexTs, a.layers-1) - 1

	a.sum[maxIndex][i] = a.mode.accumulate(a.sum[maxIndex][i], residual)
	for k := maxIndex; k >= 1; k-- {
		a.sum[k-1][i] = a.mode.accumulate(a.sum[k-1][i], a.sum[k][i])
	}

	return a.mode.accumulate(prevValue, a.sum[0][i])
}

// Reset zeroes the accumulator's history. The decoder calls this after
// decoding every message, including on error, so accumulated state never
// leaks across message boundaries.
func (a *Accumulator) Reset() {
	for k := range a.sum {
		for i := range a.sum[k] {
			a.sum[k][i] = 0
		}
	}
}

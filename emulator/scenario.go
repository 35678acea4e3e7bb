package emulator

import "math"

// VoltageScale and CurrentScale are the fixed-point multipliers spec.md §6's
// collaborator contract applies before truncating the emulator's floating
// point output to int32: "these are multiplied by 100 and 1000
// respectively and truncated to i32".
const (
	VoltageScale = 100
	CurrentScale = 1000
)

// ToI32 truncates a scaled emulator reading to int32, matching the
// collaborator contract's "multiplied ... and truncated to i32" (Go's
// float64-to-int32 conversion truncates toward zero, same as the Rust
// `as i32` cast the original source performs).
func ToI32(value float64, scale float64) int32 {
	return int32(value * scale) //nolint:gosec
}

// StandardHarmonicNumbers, StandardHarmonicMags and StandardHarmonicAngs are
// the current harmonic set spec.md §8 names for seeding the scenario table:
// "current harmonics {5,7,11,13,17,19,23,25} at tabulated magnitudes and
// angles".
var (
	StandardHarmonicNumbers = []float64{5, 7, 11, 13, 17, 19, 23, 25}
	StandardHarmonicMags    = []float64{0.05, 0.04, 0.03, 0.02, 0.015, 0.01, 0.008, 0.006}
	StandardHarmonicAngs    = []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8}
)

// StandardVoltageMag and StandardCurrentMag are the positive-sequence
// magnitudes spec.md §8 names: "positive-sequence magnitudes 500 A and
// 400 000/sqrt(3)*sqrt(2) V".
var (
	StandardCurrentMag = 500.0
	StandardVoltageMag = 400000.0 / math.Sqrt(3) * math.Sqrt(2)
)

// StandardNoiseMax is the noise ceiling spec.md §8 names: "noise <= 1e-6".
const StandardNoiseMax = 1e-6

// NewStandardThreePhase builds the Emulator spec.md §8's scenario table
// seeds: a three-phase voltage group at StandardVoltageMag and a three-phase
// current group at StandardCurrentMag carrying StandardHarmonicNumbers, both
// with StandardNoiseMax noise, sampling at samplingRate Hz around 50 Hz.
func NewStandardThreePhase(samplingRate int, seed int64) *Emulator {
	e := New(samplingRate, 50.0, seed)
	e.V = &ThreePhase{
		PosSeqMag: StandardVoltageMag,
		NoiseMax:  StandardNoiseMax,
	}
	e.I = &ThreePhase{
		PosSeqMag:    StandardCurrentMag,
		NoiseMax:     StandardNoiseMax,
		HarmonicNums: StandardHarmonicNumbers,
		HarmonicMags: StandardHarmonicMags,
		HarmonicAngs: StandardHarmonicAngs,
	}
	return e
}

// NextSample advances the emulator one step and returns the 6 scaled
// integer variables in [Va, Vb, Vc, Ia, Ib, Ic] order, the three-phase
// sample-set shape spec.md §8's scenarios use.
func (e *Emulator) NextSample() [6]int32 {
	e.Step()
	return [6]int32{
		ToI32(e.V.A, VoltageScale),
		ToI32(e.V.B, VoltageScale),
		ToI32(e.V.C, VoltageScale),
		ToI32(e.I.A, CurrentScale),
		ToI32(e.I.B, CurrentScale),
		ToI32(e.I.C, CurrentScale),
	}
}

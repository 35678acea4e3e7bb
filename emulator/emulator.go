// Package emulator generates three-phase voltage and current waveforms for
// exercising the codec in tests and the example CLI. It is the data source
// spec.md §1 and §6 describe as an external collaborator: "a provider that,
// on request, yields the next per-variable integer tuple". The codec
// packages never import this one.
package emulator

import (
	"math"
	"math/rand"
)

// twoPiOverThree is the 120-degree phase separation between A, B and C.
const twoPiOverThree = 2.0 * math.Pi / 3.0

// EventType names a transient condition StartEvent can inject into a
// ThreePhase emulation.
type EventType int

const (
	SinglePhaseFault EventType = iota
	ThreePhaseFault
	OverVoltage
	UnderVoltage
	OverFrequency
	UnderFrequency
)

// Event durations in samples, grounded on
// original_source/src/emulator/emulator.rs's exported constants.
const (
	MaxEmulatedFaultDurationSamples     = 6000
	MaxEmulatedFrequencyDurationSamples = 8000
)

// ThreePhase models one three-phase quantity (a voltage or current group):
// a positive-sequence phasor with optional negative- and zero-sequence
// components, harmonic injection, Gaussian noise and a fault overlay.
type ThreePhase struct {
	PosSeqMag    float64
	PhaseOffset  float64
	NegSeqMag    float64
	NegSeqAng    float64
	ZeroSeqMag   float64
	ZeroSeqAng   float64
	HarmonicNums []float64
	HarmonicMags []float64 // relative to PosSeqMag
	HarmonicAngs []float64
	NoiseMax     float64

	faultPosSeqMag       float64
	faultRemainingSamples int

	A, B, C float64
}

func (p *ThreePhase) step(r *rand.Rand, posSeqPhase float64) {
	posSeqMag := p.PosSeqMag
	if p.faultRemainingSamples > 0 {
		posSeqMag += p.faultPosSeqMag
		p.faultRemainingSamples--
	}

	a1 := math.Sin(posSeqPhase) * posSeqMag
	b1 := math.Sin(posSeqPhase-twoPiOverThree) * posSeqMag
	c1 := math.Sin(posSeqPhase+twoPiOverThree) * posSeqMag

	a2 := math.Sin(posSeqPhase+p.NegSeqAng) * p.NegSeqMag * p.PosSeqMag
	b2 := math.Sin(posSeqPhase+twoPiOverThree+p.NegSeqAng) * p.NegSeqMag * p.PosSeqMag
	c2 := math.Sin(posSeqPhase-twoPiOverThree+p.NegSeqAng) * p.NegSeqMag * p.PosSeqMag

	abc0 := math.Sin(posSeqPhase+p.ZeroSeqAng) * p.ZeroSeqMag

	var ah, bh, ch float64
	if len(p.HarmonicNums) == len(p.HarmonicMags) && len(p.HarmonicNums) == len(p.HarmonicAngs) {
		for idx, n := range p.HarmonicNums {
			mag := p.HarmonicMags[idx] * p.PosSeqMag
			ang := p.HarmonicAngs[idx]
			ah += math.Sin(n*posSeqPhase+ang) * mag
			bh += math.Sin(n*(posSeqPhase-twoPiOverThree)+ang) * mag
			ch += math.Sin(n*(posSeqPhase+twoPiOverThree)+ang) * mag
		}
	}

	ra := r.NormFloat64() * p.NoiseMax * p.PosSeqMag
	rb := r.NormFloat64() * p.NoiseMax * p.PosSeqMag
	rc := r.NormFloat64() * p.NoiseMax * p.PosSeqMag

	p.A = a1 + a2 + abc0 + ah + ra
	p.B = b1 + b2 + abc0 + bh + rb
	p.C = c1 + c2 + abc0 + ch + rc
}

// Emulator advances a paired three-phase voltage and current model one
// sample at a time. It is the reference data source for spec.md §8's
// scenario table: construct one, optionally inject an Event, and call Step
// repeatedly, reading V and I after each call.
type Emulator struct {
	SamplingRate int
	Fnom         float64
	Fdeviation   float64

	V *ThreePhase
	I *ThreePhase

	r *rand.Rand

	angle                     float64
	fDeviationRemainingSamples int
}

// New constructs an Emulator sampling at samplingRate Hz around a nominal
// frequency of frequency Hz, seeded for reproducible test vectors.
func New(samplingRate int, frequency float64, seed int64) *Emulator {
	return &Emulator{
		SamplingRate: samplingRate,
		Fnom:         frequency,
		r:            rand.New(rand.NewSource(seed)),
	}
}

func wrapAngle(a float64) float64 {
	if a > math.Pi {
		return a - 2*math.Pi
	}
	return a
}

// StartEvent injects a transient condition lasting MaxEmulatedFaultDurationSamples
// (or MaxEmulatedFrequencyDurationSamples for the frequency events) into the
// voltage/current model, grounded on
// original_source/src/emulator/emulator.rs's StartEvent.
func (e *Emulator) StartEvent(event EventType) {
	switch event {
	case SinglePhaseFault, ThreePhaseFault:
		if e.I != nil {
			e.I.faultPosSeqMag = e.I.PosSeqMag * 1.2
			e.I.faultRemainingSamples = MaxEmulatedFaultDurationSamples
		}
		if e.V != nil {
			e.V.faultPosSeqMag = e.V.PosSeqMag * -0.2
			e.V.faultRemainingSamples = MaxEmulatedFaultDurationSamples
		}
	case OverVoltage:
		if e.V != nil {
			e.V.faultPosSeqMag = e.V.PosSeqMag * 0.2
			e.V.faultRemainingSamples = MaxEmulatedFaultDurationSamples
		}
	case UnderVoltage:
		if e.V != nil {
			e.V.faultPosSeqMag = e.V.PosSeqMag * -0.2
			e.V.faultRemainingSamples = MaxEmulatedFaultDurationSamples
		}
	case OverFrequency:
		e.Fdeviation = 0.1
		e.fDeviationRemainingSamples = MaxEmulatedFrequencyDurationSamples
	case UnderFrequency:
		e.Fdeviation = -0.1
		e.fDeviationRemainingSamples = MaxEmulatedFrequencyDurationSamples
	}
}

// Step advances the phasor model by one sample period, updating V.{A,B,C}
// and I.{A,B,C}.
func (e *Emulator) Step() {
	f := e.Fnom + e.Fdeviation

	if e.fDeviationRemainingSamples > 0 {
		e.fDeviationRemainingSamples--
		if e.fDeviationRemainingSamples == 0 {
			e.Fdeviation = 0
		}
	}

	ts := 1.0 / float64(e.SamplingRate)
	e.angle = wrapAngle(f*2*math.Pi*ts + e.angle)
	posSeqPhase := e.angle

	if e.V != nil {
		e.V.step(e.r, posSeqPhase+e.V.PhaseOffset)
	}
	if e.I != nil {
		e.I.step(e.r, posSeqPhase+e.I.PhaseOffset)
	}
}

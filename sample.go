// Package jetstream implements a streaming codec for high-rate,
// multi-variable sampled measurement data from electrical-power
// instrumentation: voltage and current waveforms carrying per-sample
// quality flags. A batch of N successive samples of M integer variables,
// plus their M quality words, is packed into one compact message and later
// reconstructed bit-exactly.
package jetstream

// Sample is one timestamped set of M variable readings and their quality
// words. I32s and Q must both have exactly the configured variable count.
type Sample struct {
	T    uint64
	I32s []int32
	Q    []uint32
}

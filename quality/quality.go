// Package quality run-length encodes the per-variable quality word stream
// that accompanies each sample batch, and expands it back out on decode.
package quality

import "github.com/rwl/jetstream/varint"

// Pair is one run of a quality value. Run == 0 is the encoder's flush-time
// sentinel meaning "this value holds for all remaining samples".
type Pair struct {
	Value uint32
	Run   uint32
}

// History accumulates the run-length pairs for a single variable across the
// samples of one message.
type History struct {
	pairs   []Pair
	scratch [varint.MaxLen32]byte
}

// Reset clears the history so it can be reused for the next message.
func (h *History) Reset() {
	h.pairs = h.pairs[:0]
}

// Observe appends q to the run currently being built, starting a new run
// when q differs from the last one (or when this is the first sample).
func (h *History) Observe(q uint32) {
	if len(h.pairs) == 0 {
		h.pairs = append(h.pairs, Pair{Value: q, Run: 1})
		return
	}
	last := &h.pairs[len(h.pairs)-1]
	if last.Value == q {
		last.Run++
		return
	}
	h.pairs = append(h.pairs, Pair{Value: q, Run: 1})
}

// Pairs returns the accumulated runs. The caller must not retain the slice
// across a Reset.
func (h *History) Pairs() []Pair {
	return h.pairs
}

// AppendEncoded writes the history's pairs to dst as (value, run) uvarint32
// pairs, overriding the final pair's run with the 0 sentinel, and returns the
// extended slice. It does not mutate the History.
func AppendEncoded(dst []byte, h *History) []byte {
	buf := h.scratch[:]
	n := len(h.pairs)
	for idx, p := range h.pairs {
		run := p.Run
		if idx == n-1 {
			run = 0
		}
		w := varint.PutUvarint32(buf, p.Value)
		dst = append(dst, buf[:w]...)
		w = varint.PutUvarint32(buf, run)
		dst = append(dst, buf[:w]...)
	}
	return dst
}

// Expand reads run-length pairs from b and fills out[0:samples] with the
// corresponding quality values, returning the number of bytes consumed. It
// stops after covering every sample, or immediately after a pair whose run
// is 0, whichever comes first; a trailing 0-run pair fills every remaining
// sample with its value.
func Expand(b []byte, out []uint32, samples int) (int, error) {
	consumed := 0
	filled := 0

	for filled < samples {
		value, n, err := varint.Uvarint32(b[consumed:])
		if err != nil {
			return 0, err
		}
		consumed += n

		run, n, err := varint.Uvarint32(b[consumed:])
		if err != nil {
			return 0, err
		}
		consumed += n

		if run == 0 {
			for ; filled < samples; filled++ {
				out[filled] = value
			}
			break
		}

		for k := uint32(0); k < run && filled < samples; k++ {
			out[filled] = value
			filled++
		}
	}

	return consumed, nil
}

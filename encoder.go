package jetstream

import (
	"github.com/google/uuid"

	"github.com/rwl/jetstream/bitops"
	"github.com/rwl/jetstream/delta"
	"github.com/rwl/jetstream/errs"
	"github.com/rwl/jetstream/message"
	"github.com/rwl/jetstream/quality"
	"github.com/rwl/jetstream/simple8b"
	"github.com/rwl/jetstream/spatialref"
	"github.com/rwl/jetstream/varint"
)

// defaultDeltaLayers is the cascade depth chosen for every sampling rate.
// See deltaLayersFor.
const defaultDeltaLayers = 3

// deltaLayersFor picks the delta cascade depth for a stream's sampling
// rate. The original source documents a rate-dependent branch whose two
// outcomes are both 3; the branch point is kept as a single named function
// so a future rate-dependent policy has one call site to change.
func deltaLayersFor(samplingRate float64) int {
	return defaultDeltaLayers
}

// Encoder incrementally packs timestamped sample-sets for one stream into
// framed messages. It is constructed once per stream and reused for many
// messages; after construction it performs no heap allocation on the hot
// path.
type Encoder struct {
	id          uuid.UUID
	m           int
	n           int
	useSimple8b bool

	eng         *delta.Engine
	spatialRefs []spatialref.Ref
	quality     []quality.History

	encodedSamples int
	startTimestamp uint64
	residuals      [][]int32 // [variable][sample]
	zigzagScratch  []uint64
	varintScratch  [varint.MaxLen32]byte
	bodyScratch    []byte

	bufs   [2][]byte
	active int
}

// NewEncoder constructs an Encoder for a stream identified by id, carrying
// M variables per sample and batching N samples per message. samplingRate
// only affects the delta cascade depth (see deltaLayersFor).
func NewEncoder(id uuid.UUID, m int, samplingRate float64, n int) (*Encoder, error) {
	if m <= 0 || n <= 0 {
		return nil, errs.ErrInvalidConfig
	}

	residuals := make([][]int32, m)
	for i := range residuals {
		residuals[i] = make([]int32, n)
	}

	bufCap := message.MaxHeaderSize + n*m*8 + m*4
	e := &Encoder{
		id:            id,
		m:             m,
		n:             n,
		useSimple8b:   n > 16,
		eng:           delta.NewEngine(delta.Arithmetic, deltaLayersFor(samplingRate), m),
		spatialRefs:   make([]spatialref.Ref, m),
		quality:       make([]quality.History, m),
		residuals:     residuals,
		zigzagScratch: make([]uint64, n),
	}
	e.bufs[0] = make([]byte, 0, bufCap)
	e.bufs[1] = make([]byte, 0, bufCap)
	e.bodyScratch = make([]byte, 0, bufCap)

	return e, nil
}

// SetSpatialRefs configures the spatial reference map; see
// spatialref.Build.
func (e *Encoder) SetSpatialRefs(count, countV, countI int, includeNeutral bool) {
	e.spatialRefs = spatialref.Build(count, countV, countI, includeNeutral)
}

// SetXOR switches the delta cascade's combining operator between arithmetic
// subtraction (default) and bitwise XOR. The paired Decoder must be
// configured identically.
func (e *Encoder) SetXOR(useXOR bool) {
	if useXOR {
		e.eng.SetMode(delta.XOR)
	} else {
		e.eng.SetMode(delta.Arithmetic)
	}
}

// Encode ingests one sample. If it completes the current batch (N samples
// since the last flush), the framed message is emitted and returned;
// otherwise it returns a nil slice while staging the sample's residuals.
func (e *Encoder) Encode(sample Sample) ([]byte, error) {
	if len(sample.I32s) != e.m || len(sample.Q) != e.m {
		return nil, errs.ErrSampleShape
	}

	j := e.encodedSamples
	if j == 0 {
		e.startTimestamp = sample.T
	}

	for i := 0; i < e.m; i++ {
		e.quality[i].Observe(sample.Q[i])

		val := sample.I32s[i]
		if ref, ok := e.spatialRefs[i].Get(); ok {
			val -= sample.I32s[ref]
		}

		e.residuals[i][j] = e.eng.Encode(j, i, val)
	}

	e.encodedSamples++
	if e.encodedSamples >= e.n {
		return e.End()
	}

	return nil, nil
}

// End flushes the samples accumulated so far (which may be fewer than N)
// as a single message and resets the batch. Callers that want to emit a
// short final batch call this directly; Encode calls it automatically once
// a full batch has accumulated. Called with nothing accumulated, it still
// emits a valid header-only frame whose actual_samples is 0.
func (e *Encoder) End() ([]byte, error) {
	actual := e.encodedSamples

	header := message.Header{
		ID:             e.id,
		StartTimestamp: e.startTimestamp,
		ActualSamples:  int32(actual), //nolint:gosec
	}

	buf := e.bufs[e.active][:0]
	buf = header.Bytes(buf)

	body, err := e.encodeBody(actual)
	if err != nil {
		e.resetBatch()
		return nil, err
	}

	if actual > message.Threshold {
		compressed, err := message.Deflate(body)
		if err != nil {
			e.resetBatch()
			return nil, err
		}
		body = compressed
	}
	buf = append(buf, body...)

	e.active = 1 - e.active
	e.resetBatch()

	return buf, nil
}

// Cancel discards the in-progress batch without emitting a message.
func (e *Encoder) Cancel() {
	e.resetBatch()
}

func (e *Encoder) resetBatch() {
	e.encodedSamples = 0
	for i := range e.quality {
		e.quality[i].Reset()
	}
}

func (e *Encoder) encodeBody(actual int) ([]byte, error) {
	body := e.bodyScratch[:0]

	if e.useSimple8b {
		for i := 0; i < e.m; i++ {
			for j := 0; j < actual; j++ {
				e.zigzagScratch[j] = bitops.ZigZagEncode64(int64(e.residuals[i][j]))
			}
			var err error
			body, err = simple8b.EncodeAll(body, e.zigzagScratch[:actual])
			if err != nil {
				// ValueOutOfBounds: a residual exceeded 2^60-1, indicating
				// too few delta layers for the input's dynamic range.
				return nil, err
			}
		}
	} else {
		for j := 0; j < actual; j++ {
			for i := 0; i < e.m; i++ {
				n := varint.PutVarint32(e.varintScratch[:], e.residuals[i][j])
				body = append(body, e.varintScratch[:n]...)
			}
		}
	}

	for i := 0; i < e.m; i++ {
		body = quality.AppendEncoded(body, &e.quality[i])
	}

	e.bodyScratch = body
	return body, nil
}

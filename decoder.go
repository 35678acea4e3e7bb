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

// Decoder is the exact inverse of Encoder: it reads one framed message at a
// time and reconstructs the original samples into Out, a pre-allocated
// buffer of length N. Decoder is constructed once per stream and reused for
// many messages.
type Decoder struct {
	id          uuid.UUID
	m           int
	n           int
	useSimple8b bool

	acc         *delta.Accumulator
	spatialRefs []spatialref.Ref

	// Out holds the reconstructed samples of the most recently decoded
	// message, valid for indices [0, actualSamples).
	Out []Sample

	qualScratch    []uint32
	inflateScratch []byte
}

// NewDecoder constructs a Decoder paired with an Encoder built from the same
// (id, m, samplingRate, n).
func NewDecoder(id uuid.UUID, m int, samplingRate float64, n int) (*Decoder, error) {
	if m <= 0 || n <= 0 {
		return nil, errs.ErrInvalidConfig
	}

	out := make([]Sample, n)
	for j := range out {
		out[j] = Sample{I32s: make([]int32, m), Q: make([]uint32, m)}
	}

	d := &Decoder{
		id:             id,
		m:              m,
		n:              n,
		useSimple8b:    n > 16,
		acc:            delta.NewAccumulator(delta.Arithmetic, deltaLayersFor(samplingRate), m),
		spatialRefs:    make([]spatialref.Ref, m),
		Out:            out,
		qualScratch:    make([]uint32, n),
		inflateScratch: make([]byte, 0, n*m*8+m*4),
	}

	return d, nil
}

// SetSpatialRefs configures the spatial reference map; see
// spatialref.Build. It must match the paired Encoder's configuration.
func (d *Decoder) SetSpatialRefs(count, countV, countI int, includeNeutral bool) {
	d.spatialRefs = spatialref.Build(count, countV, countI, includeNeutral)
}

// SetXOR switches the delta accumulator's combining operator. It must match
// the paired Encoder's configuration.
func (d *Decoder) SetXOR(useXOR bool) {
	if useXOR {
		d.acc.SetMode(delta.XOR)
	} else {
		d.acc.SetMode(delta.Arithmetic)
	}
}

// DecodeToBuffer decodes frame into Out. On success Out[0:actualSamples]
// holds the reconstructed samples and actualSamples is returned. On error
// Out's contents are undefined for this call, but the accumulator's
// internal state is always zeroed before returning.
func (d *Decoder) DecodeToBuffer(frame []byte) (int, error) {
	defer d.acc.Reset()

	header, hn, err := message.ParseHeader(frame)
	if err != nil {
		return 0, err
	}
	if !header.MatchesID(d.id) {
		return 0, errs.ErrIDMismatch
	}

	actual := int(header.ActualSamples)
	if actual > d.n {
		actual = d.n
	}

	d.Out[0].T = header.StartTimestamp

	body := frame[hn:]
	if actual > message.Threshold {
		body, err = message.Inflate(d.inflateScratch, body, d.n*d.m*8+d.m*4)
		if err != nil {
			return 0, err
		}
		d.inflateScratch = body
	}

	var qualBody []byte
	if d.useSimple8b {
		qualBody, err = d.decodeSimple8b(body, actual)
	} else {
		qualBody, err = d.decodeVarint(body, actual)
	}
	if err != nil {
		return 0, err
	}

	d.applySpatialRefFixup(actual)

	if err := d.decodeQuality(qualBody, actual); err != nil {
		return 0, err
	}

	return actual, nil
}

func (d *Decoder) decodeSimple8b(body []byte, actual int) ([]byte, error) {
	decodeCounter := 0
	target := actual * d.m

	words, err := simple8b.ForEach(body, func(v uint64) bool {
		indexTs := decodeCounter % actual
		variable := decodeCounter / actual

		decoded := int32(bitops.ZigZagDecode64(v)) //nolint:gosec

		if indexTs == 0 {
			d.Out[0].I32s[variable] = decoded
		} else {
			d.Out[indexTs].T = uint64(indexTs) //nolint:gosec
			d.Out[indexTs].I32s[variable] = d.acc.Decode(indexTs, variable, decoded, d.Out[indexTs-1].I32s[variable])
		}

		decodeCounter++
		return decodeCounter < target
	})
	if err != nil {
		return nil, err
	}

	return body[words*simple8b.WordBytes:], nil
}

func (d *Decoder) decodeVarint(body []byte, actual int) ([]byte, error) {
	if actual == 0 {
		return body, nil
	}

	pos := 0

	for i := 0; i < d.m; i++ {
		val, n, err := varint.Varint32(body[pos:])
		if err != nil {
			return nil, err
		}
		d.Out[0].I32s[i] = val
		pos += n
	}

	for j := 1; j < actual; j++ {
		d.Out[j].T = uint64(j) //nolint:gosec
		for i := 0; i < d.m; i++ {
			residual, n, err := varint.Varint32(body[pos:])
			if err != nil {
				return nil, err
			}
			pos += n
			d.Out[j].I32s[i] = d.acc.Decode(j, i, residual, d.Out[j-1].I32s[i])
		}
	}

	return body[pos:], nil
}

func (d *Decoder) applySpatialRefFixup(actual int) {
	for i, ref := range d.spatialRefs {
		j, ok := ref.Get()
		if !ok {
			continue
		}
		for k := 0; k < actual; k++ {
			d.Out[k].I32s[i] += d.Out[k].I32s[j]
		}
	}
}

func (d *Decoder) decodeQuality(body []byte, actual int) error {
	pos := 0
	for i := 0; i < d.m; i++ {
		n, err := quality.Expand(body[pos:], d.qualScratch, actual)
		if err != nil {
			return err
		}
		pos += n
		for j := 0; j < actual; j++ {
			d.Out[j].Q[i] = d.qualScratch[j]
		}
	}
	return nil
}

// Package message implements the on-wire frame: a fixed uncompressed header
// followed by a payload body that is optionally DEFLATEd. Header encoding
// follows the teacher's fixed-header Parse/Bytes pattern, pinned to a single
// big-endian engine since the wire format has no endianness choice.
package message

import (
	"github.com/google/uuid"

	"github.com/rwl/jetstream/endian"
	"github.com/rwl/jetstream/errs"
	"github.com/rwl/jetstream/varint"
)

var engine = endian.GetBigEndianEngine()

// MaxHeaderSize is an upper bound on the encoded header size: 16 bytes of id,
// 8 bytes of timestamp, and the worst-case 5-byte varint sample count.
const MaxHeaderSize = 16 + 8 + varint.MaxLen32

// Header is the fixed prologue of every frame.
type Header struct {
	ID             uuid.UUID
	StartTimestamp uint64
	ActualSamples  int32
}

// Bytes appends the header's wire encoding to dst and returns the extended
// slice.
func (h Header) Bytes(dst []byte) []byte {
	dst = append(dst, h.ID[:]...)
	dst = engine.AppendUint64(dst, h.StartTimestamp)

	var buf [varint.MaxLen32]byte
	n := varint.PutVarint32(buf[:], h.ActualSamples)
	dst = append(dst, buf[:n]...)

	return dst
}

// ParseHeader decodes a Header from the front of b and returns it along with
// the number of bytes consumed.
func ParseHeader(b []byte) (Header, int, error) {
	if len(b) < 16+8 {
		return Header{}, 0, errs.ErrSampleShape
	}

	var h Header
	copy(h.ID[:], b[:16])
	h.StartTimestamp = engine.Uint64(b[16:24])

	samples, n, err := varint.Varint32(b[24:])
	if err != nil {
		return Header{}, 0, err
	}
	h.ActualSamples = samples

	return h, 24 + n, nil
}

// MatchesID reports whether h's stream id equals id.
func (h Header) MatchesID(id uuid.UUID) bool {
	return h.ID == id
}

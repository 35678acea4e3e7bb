// Package varint implements the 32-bit little-endian base-128 variable
// length integer encoding used for the small-batch (non-Simple-8b) payload
// path and for the quality run-length stream.
//
// It mirrors the shape of encoding/binary's Uvarint/Varint but is pinned to
// 32-bit values so callers never pay for or risk a 64-bit decode on a field
// that is contractually 32 bits wide.
package varint

import "github.com/rwl/jetstream/errs"

// MaxLen32 is the maximum number of bytes a 32-bit varint can occupy.
const MaxLen32 = 5

// PutUvarint32 encodes x into buf and returns the number of bytes written.
// buf must be at least MaxLen32 bytes long.
func PutUvarint32(buf []byte, x uint32) int {
	i := 0
	for x >= 0x80 {
		buf[i] = byte(x) | 0x80
		x >>= 7
		i++
	}
	buf[i] = byte(x)

	return i + 1
}

// Uvarint32 decodes a uint32 from buf, returning the value and the number of
// bytes consumed. It returns ErrVarintOverflow if more than MaxLen32 bytes
// are consumed without terminating, or if buf is exhausted first.
func Uvarint32(buf []byte) (uint32, int, error) {
	var x uint32
	var s uint

	for i, b := range buf {
		if i == MaxLen32 {
			return 0, 0, errs.ErrVarintOverflow
		}

		if b < 0x80 {
			if i == MaxLen32-1 && b > 0x0F {
				return 0, 0, errs.ErrVarintOverflow
			}

			return x | uint32(b)<<s, i + 1, nil
		}

		x |= uint32(b&0x7F) << s
		s += 7
	}

	return 0, 0, errs.ErrVarintOverflow
}

// PutVarint32 zig-zag encodes x and writes it as an unsigned varint,
// returning the number of bytes written.
func PutVarint32(buf []byte, x int32) int {
	ux := uint32(x) << 1
	if x < 0 {
		ux = ^ux
	}

	return PutUvarint32(buf, ux)
}

// Varint32 decodes a zig-zag encoded signed 32-bit integer, returning the
// value and the number of bytes consumed.
func Varint32(buf []byte) (int32, int, error) {
	ux, n, err := Uvarint32(buf)
	if err != nil {
		return 0, 0, err
	}

	x := int32(ux >> 1) //nolint:gosec
	if ux&1 != 0 {
		x = ^x
	}

	return x, n, nil
}

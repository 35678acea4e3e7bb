// Package bitops provides the zig-zag mapping between signed and unsigned
// 64-bit integers used throughout the codec to keep small-magnitude signed
// residuals small after unsigned encoding.
package bitops

// ZigZagEncode64 maps a signed integer to an unsigned one so that numbers
// with a small absolute value (regardless of sign) end up with a small
// encoded value: 0, -1, 1, -2, 2, ... map to 0, 1, 2, 3, 4, ...
func ZigZagEncode64(x int64) uint64 {
	return uint64(x<<1) ^ uint64(x>>63) //nolint:gosec
}

// ZigZagDecode64 reverses ZigZagEncode64.
func ZigZagDecode64(v uint64) int64 {
	return int64(v>>1) ^ -int64(v&1) //nolint:gosec
}

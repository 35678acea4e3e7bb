// Package simple8b implements the Ann & Moffat 64-bit word integer packing
// scheme: up to 240 non-negative integers per word, selected greedily by a
// 4-bit selector in the word's top nibble. Every selector's shape is a fixed
// (count, bit width) entry in the selectors table, and packing and unpacking
// share one loop each driven by that entry, with no per-selector functions.
package simple8b

import (
	"github.com/rwl/jetstream/endian"
	"github.com/rwl/jetstream/errs"
)

// MaxValue is the largest value a single Simple-8b slot can hold (selector 15,
// 60 bits).
const MaxValue = 1<<60 - 1

// WordBytes is the on-wire size of one packed word.
const WordBytes = 8

type slot struct {
	n, bits int
}

// selectors is the 16-entry selector table: index is the 4-bit selector,
// n is how many values it packs, bits is the per-value width (0 means the
// RLE-of-ones selectors 0 and 1).
var selectors = [16]slot{
	{240, 0},
	{120, 0},
	{60, 1},
	{30, 2},
	{20, 3},
	{15, 4},
	{12, 5},
	{10, 6},
	{8, 7},
	{7, 8},
	{6, 10},
	{5, 12},
	{4, 15},
	{3, 20},
	{2, 30},
	{1, 60},
}

var engine = endian.GetBigEndianEngine()

// canPack reports whether the first n elements of src (which must have at
// least n elements) fit selector (n, bits).
func canPack(src []uint64, n, bits int) bool {
	if len(src) < n {
		return false
	}
	if bits == 0 {
		for i := 0; i < n; i++ {
			if src[i] != 1 {
				return false
			}
		}
		return true
	}
	max := uint64(1)<<uint(bits) - 1
	for i := 0; i < n; i++ {
		if src[i] > max {
			return false
		}
	}
	return true
}

// pack packs the chosen selector's values into a 64-bit word. sel and n must
// agree with selectors[sel].n.
func pack(sel int, src []uint64) uint64 {
	word := uint64(sel) << 60
	if selectors[sel].bits == 0 {
		return word
	}
	bits := uint(selectors[sel].bits)
	for i, v := range src[:selectors[sel].n] {
		word |= v << (uint(i) * bits)
	}
	return word
}

// unpack expands a packed word into dst, returning the number of values
// written. dst must have capacity for at least 240 values.
func unpack(word uint64, dst []uint64) (int, error) {
	sel := word >> 60
	if sel >= 16 {
		return 0, errs.ErrBadSelector
	}
	s := selectors[sel]
	if s.bits == 0 {
		for i := 0; i < s.n; i++ {
			dst[i] = 1
		}
		return s.n, nil
	}
	mask := uint64(1)<<uint(s.bits) - 1
	for i := 0; i < s.n; i++ {
		dst[i] = (word >> (uint(i) * uint(s.bits))) & mask
	}
	return s.n, nil
}

// Encode packs as many leading values of src as possible into a single word,
// trying selectors widest-first (0 through 15). It returns the packed word
// and how many values from src it consumed. An empty src packs to a zero
// word consuming zero values.
func Encode(src []uint64) (uint64, int, error) {
	if len(src) == 0 {
		return 0, 0, nil
	}
	for sel, s := range selectors {
		if canPack(src, s.n, s.bits) {
			return pack(sel, src), s.n, nil
		}
	}
	return 0, 0, errs.ErrValueOutOfBounds
}

// EncodeAll packs every value in src into as few words as possible, appending
// the big-endian 8-byte words to dst and returning the extended slice.
func EncodeAll(dst []byte, src []uint64) ([]byte, error) {
	for i := 0; i < len(src); {
		word, n, err := Encode(src[i:])
		if err != nil {
			return nil, err
		}
		dst = engine.AppendUint64(dst, word)
		i += n
	}
	return dst, nil
}

// CountBytes returns the total number of integers represented by a packed
// byte stream, without unpacking their values.
func CountBytes(b []byte) (int, error) {
	count := 0
	for len(b) >= WordBytes {
		word := engine.Uint64(b)
		b = b[WordBytes:]
		sel := word >> 60
		if sel >= 16 {
			return 0, errs.ErrBadSelector
		}
		count += selectors[sel].n
	}
	return count, nil
}

// CountBytesBetween returns the number of integers in a packed byte stream
// whose value v satisfies min <= v < max, without allocating the full
// unpacked array.
func CountBytesBetween(b []byte, min, max uint64) (int, error) {
	var buf [240]uint64
	count := 0
	for len(b) >= WordBytes {
		word := engine.Uint64(b)
		b = b[WordBytes:]
		n, err := unpack(word, buf[:])
		if err != nil {
			return 0, err
		}
		for i := 0; i < n; i++ {
			if buf[i] >= min && buf[i] < max {
				count++
			}
		}
	}
	return count, nil
}

// ForEach reads consecutive 8-byte big-endian words from b and invokes f once
// per packed value in packing order. If f returns false, iteration stops
// immediately and ForEach returns the number of whole words consumed so far.
// A selector of 16 or more in a word is reported as ErrBadSelector.
func ForEach(b []byte, f func(uint64) bool) (int, error) {
	var buf [240]uint64
	words := 0
	for len(b) >= WordBytes {
		word := engine.Uint64(b)
		b = b[WordBytes:]
		n, err := unpack(word, buf[:])
		if err != nil {
			return words, err
		}
		words++
		for i := 0; i < n; i++ {
			if !f(buf[i]) {
				return words, nil
			}
		}
	}
	return words, nil
}

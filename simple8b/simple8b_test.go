package simple8b_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rwl/jetstream/errs"
	"github.com/rwl/jetstream/simple8b"
)

func collect(t *testing.T, b []byte) []uint64 {
	t.Helper()
	var got []uint64
	_, err := simple8b.ForEach(b, func(v uint64) bool {
		got = append(got, v)
		return true
	})
	require.NoError(t, err)
	return got
}

func TestRoundTripSelectorBoundaries(t *testing.T) {
	cases := []struct {
		name string
		n    int
		max  uint64
	}{
		{"sel0-ones-240", 240, 1},
		{"sel1-ones-120", 120, 1},
		{"sel2-60x1bit", 60, 1},
		{"sel3-30x2bit", 30, 3},
		{"sel4-20x3bit", 20, 7},
		{"sel5-15x4bit", 15, 15},
		{"sel6-12x5bit", 12, 31},
		{"sel7-10x6bit", 10, 63},
		{"sel8-8x7bit", 8, 127},
		{"sel9-7x8bit", 7, 255},
		{"sel10-6x10bit", 6, 1023},
		{"sel11-5x12bit", 5, 4095},
		{"sel12-4x15bit", 4, 32767},
		{"sel13-3x20bit", 3, 1048575},
		{"sel14-2x30bit", 2, 1073741823},
		{"sel15-1x60bit", 1, simple8b.MaxValue},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			src := make([]uint64, c.n)
			for i := range src {
				src[i] = c.max
			}
			// Selectors 0/1 only accept runs of exactly 1.
			if c.max == 1 && c.n >= 60 {
				for i := range src {
					src[i] = 1
				}
			}

			packed, err := simple8b.EncodeAll(nil, src)
			require.NoError(t, err)
			assert.Equal(t, simple8b.WordBytes, len(packed), "expected a single packed word for %s", c.name)

			got := collect(t, packed)
			assert.Equal(t, src, got)
		})
	}
}

func TestEncodeAllMultiWord(t *testing.T) {
	src := make([]uint64, 500)
	for i := range src {
		src[i] = uint64(i % 7)
	}

	packed, err := simple8b.EncodeAll(nil, src)
	require.NoError(t, err)
	assert.True(t, len(packed)%simple8b.WordBytes == 0)

	got := collect(t, packed)
	assert.Equal(t, src, got)

	count, err := simple8b.CountBytes(packed)
	require.NoError(t, err)
	assert.Equal(t, len(src), count)

	between, err := simple8b.CountBytesBetween(packed, 2, 5)
	require.NoError(t, err)
	want := 0
	for _, v := range src {
		if v >= 2 && v < 5 {
			want++
		}
	}
	assert.Equal(t, want, between)
}

func TestEncodeValueOutOfBounds(t *testing.T) {
	src := []uint64{simple8b.MaxValue + 1}
	_, err := simple8b.EncodeAll(nil, src)
	require.ErrorIs(t, err, errs.ErrValueOutOfBounds)
}

func TestForEachEarlyStop(t *testing.T) {
	src := make([]uint64, 300)
	for i := range src {
		src[i] = uint64(i % 3)
	}
	packed, err := simple8b.EncodeAll(nil, src)
	require.NoError(t, err)

	var got []uint64
	_, err = simple8b.ForEach(packed, func(v uint64) bool {
		got = append(got, v)
		return len(got) < 5
	})
	require.NoError(t, err)
	assert.Equal(t, src[:5], got)
}

func TestForEachIgnoresTruncatedTail(t *testing.T) {
	// A trailing fragment shorter than one 8-byte word is ignored by the
	// loop bound: ForEach stops at the last whole word, here after zero words.
	packed := []byte{0, 0, 0}
	n, err := simple8b.ForEach(packed, func(uint64) bool { return true })
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestEncodeEmpty(t *testing.T) {
	packed, err := simple8b.EncodeAll(nil, nil)
	require.NoError(t, err)
	assert.Empty(t, packed)
}

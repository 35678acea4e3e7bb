package compress

import (
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/rwl/jetstream"
	"github.com/rwl/jetstream/emulator"
	"github.com/rwl/jetstream/format"
)

// captureFrame runs a real jetstream encoder over m channels and returns one
// complete frame, the same way fixture.Registry callers build the payloads
// these codecs actually compress. For m == 6 the samples are the emulated
// three-phase signal as-is; other widths repeat its six channels cyclically
// and add each channel's index, so every channel still carries real,
// non-degenerate sample data.
func captureFrame(t *testing.T, m int, samplingRate float64, n, totalSamples int) []byte {
	t.Helper()

	enc, err := jetstream.NewEncoder(uuid.New(), m, samplingRate, n)
	require.NoError(t, err)

	e := emulator.NewStandardThreePhase(int(samplingRate), 7)
	var frame []byte
	for k := 0; k < totalSamples; k++ {
		vals := make([]int32, m)
		if m == 6 {
			s := e.NextSample()
			copy(vals, s[:])
		} else {
			s := e.NextSample()
			for i := range vals {
				vals[i] = s[i%6] + int32(i)
			}
		}
		out, err := enc.Encode(jetstream.Sample{T: uint64(k), I32s: vals, Q: make([]uint32, m)})
		require.NoError(t, err)
		if out != nil {
			frame = out
		}
	}
	if frame == nil {
		frame, err = enc.End()
		require.NoError(t, err)
	}
	require.NotEmpty(t, frame)
	return frame
}

func getAllCodecs() map[string]Codec {
	return map[string]Codec{
		"NoOp": NewNoOpCompressor(),
		"LZ4":  NewLZ4Compressor(),
		"S2":   NewS2Compressor(),
		"Zstd": NewZstdCompressor(),
	}
}

func TestCompressionType_String(t *testing.T) {
	tests := []struct {
		cType    format.CompressionType
		expected string
	}{
		{format.CompressionNone, "None"},
		{format.CompressionZstd, "Zstd"},
		{format.CompressionS2, "S2"},
		{format.CompressionLZ4, "LZ4"},
		{format.CompressionType(0xFF), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.cType.String())
		})
	}
}

func TestCompressionStats_Calculations(t *testing.T) {
	tests := []struct {
		name            string
		stats           CompressionStats
		expectedRatio   float64
		expectedSavings float64
	}{
		{
			name:            "good compression",
			stats:           CompressionStats{Algorithm: format.CompressionZstd, OriginalSize: 1000, CompressedSize: 300},
			expectedRatio:   0.3,
			expectedSavings: 70.0,
		},
		{
			name:            "no compression benefit",
			stats:           CompressionStats{Algorithm: format.CompressionNone, OriginalSize: 500, CompressedSize: 500},
			expectedRatio:   1.0,
			expectedSavings: 0.0,
		},
		{
			name:            "compression overhead",
			stats:           CompressionStats{Algorithm: format.CompressionS2, OriginalSize: 100, CompressedSize: 120},
			expectedRatio:   1.2,
			expectedSavings: -20.0,
		},
		{
			name:            "zero original size",
			stats:           CompressionStats{Algorithm: format.CompressionLZ4, OriginalSize: 0, CompressedSize: 100},
			expectedRatio:   0.0,
			expectedSavings: 100.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.InDelta(t, tt.expectedRatio, tt.stats.CompressionRatio(), 0.001)
			require.InDelta(t, tt.expectedSavings, tt.stats.SpaceSavings(), 0.001)
		})
	}
}

func TestCreateCodecAndGetCodec(t *testing.T) {
	for _, ct := range []format.CompressionType{format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4} {
		t.Run(ct.String(), func(t *testing.T) {
			c, err := CreateCodec(ct, "fixture")
			require.NoError(t, err)
			require.NotNil(t, c)

			g, err := GetCodec(ct)
			require.NoError(t, err)
			require.NotNil(t, g)
		})
	}

	_, err := CreateCodec(format.CompressionType(0xFF), "fixture")
	require.Error(t, err)

	_, err = GetCodec(format.CompressionType(0xFF))
	require.Error(t, err)
}

func TestAllCodecs_EmptyData(t *testing.T) {
	for name, codec := range getAllCodecs() {
		t.Run(name, func(t *testing.T) {
			compressed, err := codec.Compress(nil)
			require.NoError(t, err)

			decompressed, err := codec.Decompress(compressed)
			require.NoError(t, err)
			require.Empty(t, decompressed)
		})
	}
}

// TestAllCodecs_RoundTripOnCapturedFrames exercises each codec against real
// jetstream frames of varying shapes: a single-sample frame (mostly header,
// little to compress), a typical scenario-sized frame, and a large
// multi-channel frame.
func TestAllCodecs_RoundTripOnCapturedFrames(t *testing.T) {
	frames := map[string][]byte{
		"single_sample": captureFrame(t, 6, 4000, 1, 1),
		"typical_a10-2": captureFrame(t, 6, 4000, 50, 50),
		"wide_channels": captureFrame(t, 32, 4000, 50, 50),
		"long_capture":  captureFrame(t, 6, 4000, 50, 500),
	}

	for frameName, frame := range frames {
		for codecName, codec := range getAllCodecs() {
			t.Run(frameName+"/"+codecName, func(t *testing.T) {
				compressed, err := codec.Compress(frame)
				require.NoError(t, err)

				decompressed, err := codec.Decompress(compressed)
				require.NoError(t, err)
				require.Equal(t, frame, decompressed)
			})
		}
	}
}

func TestNoOpCompressor_AliasesInput(t *testing.T) {
	frame := captureFrame(t, 6, 4000, 50, 50)
	c := NewNoOpCompressor()

	compressed, err := c.Compress(frame)
	require.NoError(t, err)
	require.Same(t, &frame[0], &compressed[0])

	decompressed, err := c.Decompress(compressed)
	require.NoError(t, err)
	require.Same(t, &compressed[0], &decompressed[0])
}

func TestAllCodecs_InvalidCompressedData(t *testing.T) {
	garbage := []byte{0xde, 0xad, 0xbe, 0xef, 0x00, 0x01, 0x02, 0x03}

	for name, codec := range getAllCodecs() {
		t.Run(name, func(t *testing.T) {
			_, err := codec.Decompress(garbage)
			if name == "NoOp" {
				// NoOp has no wire format to validate; it always succeeds.
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
		})
	}
}

// TestAllCodecs_ConcurrentUsage guards against state leaking across the
// pooled encoder/decoder instances each codec keeps for reuse.
func TestAllCodecs_ConcurrentUsage(t *testing.T) {
	frame := captureFrame(t, 6, 4000, 50, 50)

	for name, codec := range getAllCodecs() {
		t.Run(name, func(t *testing.T) {
			var wg sync.WaitGroup
			errCh := make(chan error, 32)

			for i := 0; i < 32; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					compressed, err := codec.Compress(frame)
					if err != nil {
						errCh <- err
						return
					}
					decompressed, err := codec.Decompress(compressed)
					if err != nil {
						errCh <- err
						return
					}
					if string(decompressed) != string(frame) {
						errCh <- fmt.Errorf("round trip mismatch")
					}
				}()
			}
			wg.Wait()
			close(errCh)
			for err := range errCh {
				require.NoError(t, err)
			}
		})
	}
}

func TestAllCodecs_InterfaceCompliance(t *testing.T) {
	for name, codec := range getAllCodecs() {
		t.Run(name, func(t *testing.T) {
			var _ Codec = codec
			require.NotNil(t, codec)
		})
	}
}

// TestAllCodecs_HighlyCompressibleFrame checks that the real compressors
// meaningfully shrink a frame built from a constant (non-varying) signal,
// where delta/Simple-8b encoding leaves long runs of identical words.
func TestAllCodecs_HighlyCompressibleFrame(t *testing.T) {
	enc, err := jetstream.NewEncoder(uuid.New(), 6, 4000, 200)
	require.NoError(t, err)

	var frame []byte
	for k := 0; k < 200; k++ {
		out, err := enc.Encode(jetstream.Sample{T: uint64(k), I32s: make([]int32, 6), Q: make([]uint32, 6)})
		require.NoError(t, err)
		if out != nil {
			frame = out
		}
	}
	require.NotEmpty(t, frame)

	for name, codec := range getAllCodecs() {
		t.Run(name, func(t *testing.T) {
			compressed, err := codec.Compress(frame)
			require.NoError(t, err)

			if name != "NoOp" {
				require.Less(t, len(compressed), len(frame),
					"a constant-signal frame should compress smaller than its source")
			}

			decompressed, err := codec.Decompress(compressed)
			require.NoError(t, err)
			require.Equal(t, frame, decompressed)
		})
	}
}

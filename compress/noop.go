package compress

// NoOpCompressor stores captured frames in a fixture.Registry uncompressed.
//
// This codec is useful for:
//   - A registry populated during a test run and never written to disk,
//     where the compression/decompression cost would only slow the suite
//     down for no storage benefit
//   - Isolating whether a size regression comes from the jetstream frame
//     itself or from the fixture cache's compression stage
//   - A baseline to compare Zstd/S2/LZ4's ratio against on real captured
//     scenario frames
//
// Performance characteristics:
//   - Compress/Decompress: 0 ns/byte (just returns the frame)
//   - Memory overhead: none (no copy)
//   - Compression ratio: 1.0 (the frame is stored byte-for-byte)
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

// NewNoOpCompressor creates a codec that stores fixture frames as-is.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Compress returns the captured frame unchanged.
//
// Note: the returned slice shares the same underlying memory as data.
// Callers should not modify a frame after handing it to a Registry if they
// plan to use the returned slice.
func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns the stored frame unchanged.
//
// Note: the returned slice shares the same underlying memory as data.
func (c NoOpCompressor) Decompress(data []byte) ([]byte, error) {
	return data, nil
}

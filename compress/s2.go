package compress

import "github.com/klauspost/compress/s2"

// S2Compressor is the middle ground between NoOpCompressor and
// ZstdCompressor for a fixture.Registry: faster than Zstd at a still-useful
// ratio on delta/Simple-8b-encoded jetstream frames, good for a corpus that
// gets rebuilt on every test run.
type S2Compressor struct{}

var _ Codec = (*S2Compressor)(nil)

// NewS2Compressor creates a new S2 codec for captured jetstream frames.
func NewS2Compressor() S2Compressor {
	return S2Compressor{}
}

// Compress compresses a captured jetstream frame using S2.
func (c S2Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Encode(nil, data), nil
}

// Decompress restores a captured jetstream frame from its S2-compressed
// form.
func (c S2Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Decode(nil, data)
}

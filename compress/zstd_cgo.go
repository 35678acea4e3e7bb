//go:build nobuild

// This build-tagged-out variant documents the cgo path a deployment willing
// to pay the cgo build cost could switch ZstdCompressor to: gozstd's C
// binding typically compresses captured jetstream frames faster than the
// pure-Go path in zstd_pure.go, at the cost of a cgo toolchain requirement
// jetstream otherwise avoids.
package compress

import (
	"github.com/valyala/gozstd"
)

// Compress compresses a captured jetstream frame via gozstd's cgo binding.
func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	return gozstd.CompressLevel(nil, data, 3), nil
}

// Decompress restores a captured jetstream frame via gozstd's cgo binding.
func (c ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return gozstd.Decompress(nil, data)
}

package message

import (
	"bytes"
	"io"
	"sync"

	"github.com/klauspost/compress/flate"
	"github.com/rs/zerolog"

	"github.com/rwl/jetstream/errs"
	"github.com/rwl/jetstream/internal/pool"
)

// Threshold is the actual_samples count above which a payload body is
// DEFLATEd, per the message framer's size-budget trade-off: small batches
// are not worth the CPU cost of compression.
const Threshold = 4096

// Log is jetstream's package-level logger. It defaults to a no-op so the
// library stays silent unless a host application opts in by replacing it.
var Log = zerolog.Nop()

// flateWriterPool mirrors compress/zstd_pure.go's pooled-encoder pattern:
// flate.Writer is explicitly designed for Reset-and-reuse.
var flateWriterPool = sync.Pool{
	New: func() any {
		w, _ := flate.NewWriter(io.Discard, flate.BestCompression)
		return w
	},
}

// flateReaderPool mirrors the same pattern for the decompression side.
var flateReaderPool = sync.Pool{
	New: func() any {
		return flate.NewReader(bytes.NewReader(nil))
	},
}

// Deflate compresses body at maximum compression and returns the compressed
// bytes, even when they are larger than body (that case is logged as a
// warning). A write or close failure is logged and reported as ErrDeflate
// with a nil result. The
// compression scratch is a pooled internal/pool.ByteBuffer, the same
// transient-resource pattern compress/zstd_pure.go uses for its zstd
// encoder/decoder pools.
func Deflate(body []byte) ([]byte, error) {
	w := flateWriterPool.Get().(*flate.Writer)
	defer flateWriterPool.Put(w)

	bb := pool.GetBlobBuffer()
	defer pool.PutBlobBuffer(bb)

	w.Reset(bb)

	if _, err := w.Write(body); err != nil {
		Log.Error().Err(err).Msg("deflate write failed")
		return nil, errs.ErrDeflate
	}
	if err := w.Close(); err != nil {
		Log.Error().Err(err).Msg("deflate close failed")
		return nil, errs.ErrDeflate
	}

	compressed := make([]byte, bb.Len())
	copy(compressed, bb.Bytes())
	if len(compressed) > len(body) {
		Log.Warn().
			Int("uncompressed_size", len(body)).
			Int("compressed_size", len(compressed)).
			Msg("deflated payload body is larger than the uncompressed body")
	}

	return compressed, nil
}

// Inflate decompresses a DEFLATEd payload body into dst[:0], growing it if
// needed, and returns the extended slice. dst is owned by the caller (a
// Decoder's own scratch buffer, reused across messages) so Inflate performs
// no allocation once dst has grown to the stream's steady-state size.
func Inflate(dst, compressed []byte, sizeHint int) ([]byte, error) {
	r := flateReaderPool.Get().(flate.Resetter)
	defer flateReaderPool.Put(r)

	if err := r.Reset(bytes.NewReader(compressed), nil); err != nil {
		return nil, errs.ErrInflate
	}
	rc := r.(io.Reader)

	buf := bytes.NewBuffer(dst[:0])
	if cap(dst) < sizeHint {
		buf.Grow(sizeHint)
	}
	if _, err := io.Copy(buf, rc); err != nil {
		return nil, errs.ErrInflate
	}

	return buf.Bytes(), nil
}

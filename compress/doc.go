// Package compress provides the Codec abstraction the fixture package uses
// to store captured emulator vectors and benchmark corpora: NoOp, Zstd, S2
// and LZ4 implementations of the same Compress/Decompress pair, selected by
// format.CompressionType. This is a second compression stage independent of
// the message package's DEFLATE, which applies to a frame's payload body
// (for batches above message.Threshold samples) regardless of which Codec a
// fixture cache picks for its own storage.
//
// Zstd is favored for archived scenario corpora (best ratio, infrequent
// reads); S2 or LZ4 suit a fixture cache rebuilt on every test run, where
// compression speed matters more than ratio.
package compress

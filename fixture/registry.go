// Package fixture captures reference emulator output as replayable golden
// vectors: a scenario (a name plus the parameters that produced it) is
// registered once, keyed by an xxhash64 digest of those parameters, and its
// encoded frame bytes are cached in a compressed form chosen by a
// compress.Codec.
//
// This gives the compression/collision-tracking stack the teacher carried
// for its columnar blob format a home in a codec that has no metric-name or
// blob concept of its own: fixture captures and replays test data for
// exactly the scenarios spec.md's size-budget table names, adapted from the
// teacher's internal/collision.Tracker (duplicate-name/hash-collision
// detection) and internal/hash.ID (xxhash64 keying).
package fixture

import (
	"github.com/cespare/xxhash/v2"

	"github.com/rwl/jetstream/compress"
	"github.com/rwl/jetstream/errs"
	"github.com/rwl/jetstream/internal/pool"
)

// Key is the xxhash64 digest of a scenario's descriptive parameters (its
// name plus the encoded config that produced it).
type Key uint64

// KeyFor derives a Key from a scenario's descriptive string, adapted from
// the teacher's internal/hash.ID metric-name hashing.
func KeyFor(descriptor string) Key {
	return Key(xxhash.Sum64String(descriptor))
}

// entry is one registered scenario's captured, compressed payload.
type entry struct {
	name       string
	compressed []byte
}

// Registry tracks fixture scenarios and their captured frame bytes, and
// detects key collisions, adapted from the teacher's
// internal/collision.Tracker (there tracking metric names sharing a blob;
// here tracking scenario descriptors sharing a cache key).
type Registry struct {
	codec        compress.Codec
	entries      map[Key]entry
	scenarios    []string // ordered registration list
	order        []Key    // registration order, parallel to scenarios
	hasCollision bool
}

// NewRegistry creates an empty Registry that compresses captured frames
// with codec.
func NewRegistry(codec compress.Codec) *Registry {
	return &Registry{codec: codec, entries: make(map[Key]entry)}
}

// Capture compresses frame via the Registry's codec and registers it under
// name, keyed by k. It returns ErrInvalidScenarioName for an empty name,
// ErrDuplicateScenario if name was already registered under any key, and
// ErrHashCollision if a different scenario already holds key k.
func (r *Registry) Capture(name string, k Key, frame []byte) error {
	if name == "" {
		return errs.ErrInvalidScenarioName
	}

	for _, s := range r.scenarios {
		if s == name {
			return errs.ErrDuplicateScenario
		}
	}

	if existing, ok := r.entries[k]; ok {
		if existing.name == name {
			return errs.ErrDuplicateScenario
		}
		r.hasCollision = true
		return errs.ErrHashCollision
	}

	compressed, err := r.codec.Compress(frame)
	if err != nil {
		return err
	}

	r.entries[k] = entry{name: name, compressed: compressed}
	r.scenarios = append(r.scenarios, name)
	r.order = append(r.order, k)

	return nil
}

// Fetch decompresses and returns the frame bytes captured under k.
func (r *Registry) Fetch(k Key) ([]byte, bool, error) {
	e, ok := r.entries[k]
	if !ok {
		return nil, false, nil
	}

	frame, err := r.codec.Decompress(e.compressed)
	if err != nil {
		return nil, false, err
	}

	return frame, true, nil
}

// HasCollision reports whether any registered key was reused by a distinct
// scenario.
func (r *Registry) HasCollision() bool {
	return r.hasCollision
}

// Scenarios returns the registered scenario names in registration order.
func (r *Registry) Scenarios() []string {
	return r.scenarios
}

// Count returns the number of registered scenarios.
func (r *Registry) Count() int {
	return len(r.scenarios)
}

// Reset clears every tracked scenario, allowing the Registry to be reused
// for a fresh capture run.
func (r *Registry) Reset() {
	for k := range r.entries {
		delete(r.entries, k)
	}
	r.scenarios = r.scenarios[:0]
	r.order = r.order[:0]
	r.hasCollision = false
}

// Dump decompresses and concatenates every captured scenario's frame, in
// registration order, into one combined blob suitable for writing out as a
// single corpus archive. It assembles the result in a pooled
// internal/pool.ByteBuffer sized for a multi-scenario dump rather than a
// single frame, since a full registry export commonly spans many scenarios
// at once.
func (r *Registry) Dump() ([]byte, error) {
	bb := pool.GetBlobSetBuffer()
	defer pool.PutBlobSetBuffer(bb)

	for _, k := range r.order {
		frame, err := r.codec.Decompress(r.entries[k].compressed)
		if err != nil {
			return nil, err
		}
		bb.MustWrite(frame)
	}

	out := make([]byte, bb.Len())
	copy(out, bb.Bytes())

	return out, nil
}

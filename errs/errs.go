// Package errs collects the sentinel errors surfaced by jetstream's codec
// packages, following the same "errors.New sentinel, fmt.Errorf(%w) at the
// call site" shape the teacher's blob package uses for its own errs package.
package errs

import "errors"

var (
	// ErrIDMismatch is returned by a Decoder when a frame's stream id does
	// not match the id the decoder was constructed with.
	ErrIDMismatch = errors.New("jetstream: frame id does not match decoder id")

	// ErrValueOutOfBounds is returned by the Simple-8b encoder when a
	// residual exceeds the 60-bit selector budget.
	ErrValueOutOfBounds = errors.New("jetstream: value out of bounds for simple-8b encoding")

	// ErrVarintOverflow is returned when a varint cannot be decoded within
	// its maximum byte width.
	ErrVarintOverflow = errors.New("jetstream: varint overflow")

	// ErrBadSelector is returned when a packed Simple-8b word carries a
	// selector value outside the 16-entry table.
	ErrBadSelector = errors.New("jetstream: invalid simple-8b selector")

	// ErrInflate is returned when the DEFLATE-compressed payload body
	// cannot be inflated.
	ErrInflate = errors.New("jetstream: could not inflate payload body")

	// ErrDeflate is returned when the DEFLATE writer used to compress an
	// outgoing payload body fails.
	ErrDeflate = errors.New("jetstream: could not deflate payload body")

	// ErrSampleShape is returned when a Sample's I32s or Q slice does not
	// have exactly the configured number of variables. message.ParseHeader
	// also returns it for a frame too short to hold the id and timestamp.
	ErrSampleShape = errors.New("jetstream: sample does not match configured variable count")

	// ErrInvalidConfig is returned by constructors given an invalid stream
	// configuration (e.g. zero variables, zero samples per message).
	ErrInvalidConfig = errors.New("jetstream: invalid stream configuration")

	// ErrHashCollision is returned by a fixture Registry when two distinct
	// scenarios hash to the same cache key without being the same scenario.
	ErrHashCollision = errors.New("jetstream: fixture cache key collision")

	// ErrDuplicateScenario is returned when the same scenario name is
	// registered twice against a fixture Registry.
	ErrDuplicateScenario = errors.New("jetstream: duplicate fixture scenario")

	// ErrInvalidScenarioName is returned by a fixture Registry given an
	// empty scenario name.
	ErrInvalidScenarioName = errors.New("jetstream: invalid fixture scenario name")
)

// Package spatialref builds the per-variable spatial reference map used to
// let adjacent three-phase (or four-wire) circuit groups encode differences
// against a neighbour instead of raw values.
package spatialref

// Ref is an optional variable index. The zero value is unset; a Go nullable
// index is used here instead of the original's negative-sentinel int so a
// caller cannot mistake "unset" for a legitimate index 0.
type Ref struct {
	index int
	set   bool
}

// None is the unset Ref.
var None = Ref{}

// Some returns a Ref pointing at variable index i.
func Some(i int) Ref {
	return Ref{index: i, set: true}
}

// Get returns the referenced index and whether it is set.
func (r Ref) Get() (int, bool) {
	return r.index, r.set
}

// IsSet reports whether the reference points at a variable.
func (r Ref) IsSet() bool {
	return r.set
}

// Build produces a slice of length count where entry i references variable
// i-inc whenever i falls within the voltage group [inc, countV*inc) or the
// current group [(countV+1)*inc, (countV+countI)*inc), and is None
// otherwise. inc is 4 when includeNeutral is set, else 3, grouping
// three-phase (or four-wire) circuits so adjacent members of the same group
// reference the previous member.
func Build(count, countV, countI int, includeNeutral bool) []Ref {
	refs := make([]Ref, count)

	inc := 3
	if includeNeutral {
		inc = 4
	}

	for i := 0; i < count; i++ {
		if i < inc {
			continue
		}
		switch {
		case i < countV*inc:
			refs[i] = Some(i - inc)
		case i >= (countV+1)*inc && i < (countV+countI)*inc:
			refs[i] = Some(i - inc)
		}
	}

	return refs
}

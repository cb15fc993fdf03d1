package graph

import (
	"errors"
	"fmt"
	"iter"

	"github.com/sanonone/hetgraph/pkg/core/iloc"
)

var (
	// ErrNegativeIloc is returned when a negative node iloc is passed to
	// an adjacency lookup. Only non-negative ilocs index groups.
	ErrNegativeIloc = errors.New("node ilocs must be non-negative")

	// ErrRaggedShape is returned by NewRagged for malformed splits.
	ErrRaggedShape = errors.New("invalid ragged shape")
)

// Ragged is a flat, offset-delimited (CSR-style) grouping of edge ilocs by
// node: group i is flat[splits[i]:splits[i+1]]. Group lookup is a pure view,
// no copy and no per-node allocation.
type Ragged struct {
	flat   *iloc.Array
	splits []int
}

// NewRagged builds a Ragged from a flat array and its splits. splits must
// start at 0, be non-decreasing and end at flat's length.
func NewRagged(flat *iloc.Array, splits []int) (*Ragged, error) {
	if len(splits) == 0 || splits[0] != 0 {
		return nil, fmt.Errorf("%w: expected splits to start at 0", ErrRaggedShape)
	}
	for i := 1; i < len(splits); i++ {
		if splits[i] < splits[i-1] {
			return nil, fmt.Errorf("%w: splits decrease at %d (%d -> %d)",
				ErrRaggedShape, i, splits[i-1], splits[i])
		}
	}
	if last := splits[len(splits)-1]; last != flat.Len() {
		return nil, fmt.Errorf("%w: expected final split %d to equal flat length %d",
			ErrRaggedShape, last, flat.Len())
	}
	return &Ragged{flat: flat, splits: splits}, nil
}

// newRagged skips validation for the internal builders, whose outputs
// satisfy the invariants by construction.
func newRagged(flat *iloc.Array, splits []int) *Ragged {
	return &Ragged{flat: flat, splits: splits}
}

// NumGroups returns the number of groups.
func (r *Ragged) NumGroups() int { return len(r.splits) - 1 }

// Len returns the total number of grouped entries.
func (r *Ragged) Len() int { return r.flat.Len() }

// Group returns the entries of group i as a view. Negative indices fail;
// indices past the last group return the empty group, so isolated or unknown
// nodes read as degree 0 rather than erroring.
func (r *Ragged) Group(i int) (iloc.Slice, error) {
	if i < 0 {
		return iloc.Slice{}, fmt.Errorf("%w: found %d", ErrNegativeIloc, i)
	}
	if i >= r.NumGroups() {
		return iloc.Slice{}, nil
	}
	return r.flat.Slice(r.splits[i], r.splits[i+1]), nil
}

// Items iterates the (group index, group) pairs in ascending group order.
// The sequence is lazy and restartable.
func (r *Ragged) Items() iter.Seq2[int, iloc.Slice] {
	return func(yield func(int, iloc.Slice) bool) {
		for i := 0; i < r.NumGroups(); i++ {
			if !yield(i, r.flat.Slice(r.splits[i], r.splits[i+1])) {
				return
			}
		}
	}
}

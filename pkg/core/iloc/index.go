// Package iloc maps arbitrary external identifiers to dense integer
// locations ("ilocs") and stores bulk iloc data at the smallest unsigned
// width that fits.
//
// An Index is built once from a fixed identifier sequence and never mutated.
// Downstream code works purely in ilocs; the Index converts back to external
// identifiers only at the API boundary.
package iloc

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	// ErrDuplicateID is returned when an identifier sequence contains a
	// value more than once.
	ErrDuplicateID = errors.New("duplicate identifier")

	// ErrUnknownID is returned by strict translations (and by feature
	// lookups further up the stack) when an identifier is not part of the
	// index.
	ErrUnknownID = errors.New("unknown identifier")
)

// Index is a bidirectional mapping between external identifiers and ilocs in
// [0, Len()). Iteration order is insertion order. Identifiers must be unique.
type Index[ID comparable] struct {
	order []ID
	byID  map[ID]int
	width Width
}

// New builds an Index over ids. It fails with ErrDuplicateID, listing every
// duplicated value, if the identifiers are not unique.
func New[ID comparable](ids []ID) (*Index[ID], error) {
	byID := make(map[ID]int, len(ids))
	var dups []ID
	for i, id := range ids {
		if _, seen := byID[id]; seen {
			if !slices.Contains(dups, id) {
				dups = append(dups, id)
			}
			continue
		}
		byID[id] = i
	}
	if len(dups) > 0 {
		return nil, fmt.Errorf(
			"%w: expected identifiers to appear once, found some that appeared more: %s",
			ErrDuplicateID, commaSep(dups),
		)
	}
	return &Index[ID]{
		order: slices.Clone(ids),
		byID:  byID,
		width: WidthFor(len(ids)),
	}, nil
}

// Len returns the number of indexed identifiers.
func (ix *Index[ID]) Len() int { return len(ix.order) }

// Width returns the storage width chosen for this index's ilocs.
func (ix *Index[ID]) Width() Width { return ix.width }

// Sentinel returns the missing marker used by ToCompact: the maximum value
// representable at the index width.
func (ix *Index[ID]) Sentinel() int { return int(ix.width.Max()) }

// Contains reports whether id is indexed.
func (ix *Index[ID]) Contains(id ID) bool {
	_, ok := ix.byID[id]
	return ok
}

// All returns the indexed identifiers in iloc order.
func (ix *Index[ID]) All() []ID { return slices.Clone(ix.order) }

// ToIloc translates ids to ilocs. Unknown identifiers map to -1.
func (ix *Index[ID]) ToIloc(ids []ID) []int {
	out := make([]int, len(ids))
	for i, id := range ids {
		loc, ok := ix.byID[id]
		if !ok {
			loc = -1
		}
		out[i] = loc
	}
	return out
}

// ToIlocStrict translates ids to ilocs, failing with ErrUnknownID if any are
// missing. One missing identifier is reported alone; several are reported as
// the full set.
func (ix *Index[ID]) ToIlocStrict(ids []ID) ([]int, error) {
	out := make([]int, len(ids))
	var missing []ID
	for i, id := range ids {
		loc, ok := ix.byID[id]
		if !ok {
			missing = append(missing, id)
			continue
		}
		out[i] = loc
	}
	if len(missing) == 1 {
		return nil, fmt.Errorf("%w: %v", ErrUnknownID, missing[0])
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownID, commaSep(missing))
	}
	return out, nil
}

// ToCompact translates ids into a compact Array at the index width. Unknown
// identifiers map to the width's sentinel, which sorts after every valid
// iloc.
func (ix *Index[ID]) ToCompact(ids []ID) *Array {
	a := NewArray(ix.width, len(ids))
	for i, id := range ids {
		loc, ok := ix.byID[id]
		if !ok {
			a.SetSentinel(i)
			continue
		}
		a.Set(i, loc)
	}
	return a
}

// FromIloc is the inverse translation. The ilocs are assumed valid; an
// out-of-range iloc panics, as it indicates a bug in the caller rather than
// bad user input.
func (ix *Index[ID]) FromIloc(ilocs []int) []ID {
	out := make([]ID, len(ilocs))
	for i, loc := range ilocs {
		out[i] = ix.order[loc]
	}
	return out
}

// ID returns the identifier at a single iloc, panicking if out of range.
func (ix *Index[ID]) ID(loc int) ID { return ix.order[loc] }

// IsValid reports whether loc is a valid iloc for this index.
func (ix *Index[ID]) IsValid(loc int) bool {
	return 0 <= loc && loc < len(ix.order)
}

// ValidMask flags, element-wise, which of the given ilocs are valid.
func (ix *Index[ID]) ValidMask(ilocs []int) []bool {
	out := make([]bool, len(ilocs))
	for i, loc := range ilocs {
		out[i] = ix.IsValid(loc)
	}
	return out
}

func commaSep[T any](vals []T) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = fmt.Sprintf("%v", v)
	}
	return strings.Join(parts, ", ")
}

// Package graph is the in-memory storage and indexing layer for a large,
// possibly heterogeneous graph. It holds node and edge collections, maps
// external identifiers to dense ilocs, stores per-type feature matrices, and
// builds CSR-style adjacency indices that answer "which edges touch node X"
// in near-constant time.
//
// Collections are built once and never mutated. After construction every
// query is a pure function of immutable state and safe for concurrent use;
// the lazily built adjacency views are guarded so each is constructed
// exactly once.
package graph

import (
	"errors"
	"fmt"

	"github.com/sanonone/hetgraph/pkg/core/iloc"
)

var (
	// ErrTypeRange is returned when the type starts do not partition the
	// element ilocs into contiguous, ordered, gap-free ranges.
	ErrTypeRange = errors.New("invalid type range")

	// ErrUnknownType is returned when a type name is not part of a
	// collection.
	ErrUnknownType = errors.New("unknown type")
)

// TypeStart marks where the elements of one type begin within the iloc
// space. Elements must be supplied grouped by type, in the order the types
// are listed; each type's stop is the next type's start.
type TypeStart struct {
	Name  string
	Start int
}

// Range is the half-open iloc interval [Start, Stop) owned by one type.
type Range struct {
	Start int
	Stop  int
}

// Len returns the number of ilocs in the range.
func (r Range) Len() int { return r.Stop - r.Start }

// Contains reports whether loc falls inside the range.
func (r Range) Contains(loc int) bool { return r.Start <= loc && loc < r.Stop }

// ElementData stores the shared metadata of a homogeneous set of graph
// elements (nodes or edges): one identifier index, one type-name index, a
// compact per-element type-code column, and the contiguous iloc range of
// each type.
type ElementData[ID comparable] struct {
	ids        *iloc.Index[ID]
	types      *iloc.Index[string]
	typeCodes  *iloc.Array
	typeRanges map[string]Range
}

// NewElementData builds the shared element metadata. The type ranges derived
// from typeStarts must partition [0, len(ids)): the first start must be 0
// and no start may exceed its stop.
func NewElementData[ID comparable](ids []ID, typeStarts []TypeStart) (*ElementData[ID], error) {
	n := len(ids)
	if len(typeStarts) == 0 && n > 0 {
		return nil, fmt.Errorf("%w: expected at least one type for %d elements", ErrTypeRange, n)
	}

	typeRanges := make(map[string]Range, len(typeStarts))
	typeNames := make([]string, len(typeStarts))
	for i, ts := range typeStarts {
		stop := n
		if i+1 < len(typeStarts) {
			stop = typeStarts[i+1].Start
		}
		if i == 0 && ts.Start != 0 {
			return nil, fmt.Errorf("%w: expected first type (%q) to start at iloc 0, found start %d",
				ErrTypeRange, ts.Name, ts.Start)
		}
		if ts.Start > stop {
			return nil, fmt.Errorf("%w: type %q starts at %d, after its stop %d",
				ErrTypeRange, ts.Name, ts.Start, stop)
		}
		typeRanges[ts.Name] = Range{Start: ts.Start, Stop: stop}
		typeNames[i] = ts.Name
	}

	idIndex, err := iloc.New(ids)
	if err != nil {
		return nil, fmt.Errorf("ids: %w", err)
	}
	typeIndex, err := iloc.New(typeNames)
	if err != nil {
		return nil, fmt.Errorf("types: %w", err)
	}

	// there is typically a small number of types, so the per-element type
	// column stores at the type index width (usually one byte per element)
	typeCodes := iloc.NewArray(typeIndex.Width(), n)
	for code, name := range typeNames {
		r := typeRanges[name]
		for loc := r.Start; loc < r.Stop; loc++ {
			typeCodes.Set(loc, code)
		}
	}

	return &ElementData[ID]{
		ids:        idIndex,
		types:      typeIndex,
		typeCodes:  typeCodes,
		typeRanges: typeRanges,
	}, nil
}

// Len returns the number of elements.
func (d *ElementData[ID]) Len() int { return d.ids.Len() }

// Contains reports whether the external identifier is part of the
// collection.
func (d *ElementData[ID]) Contains(id ID) bool { return d.ids.Contains(id) }

// IDs returns the identifier index of the elements.
func (d *ElementData[ID]) IDs() *iloc.Index[ID] { return d.ids }

// Types returns the type-name index of the elements.
func (d *ElementData[ID]) Types() *iloc.Index[string] { return d.types }

// TypeRange returns the contiguous iloc range owned by the given type.
func (d *ElementData[ID]) TypeRange(typeName string) (Range, error) {
	r, ok := d.typeRanges[typeName]
	if !ok {
		return Range{}, fmt.Errorf("%w: %q", ErrUnknownType, typeName)
	}
	return r, nil
}

// TypeCodes returns the per-element type column, stored as raw type ilocs.
func (d *ElementData[ID]) TypeCodes() *iloc.Array { return d.typeCodes }

// TypeCodeOf returns the type iloc of the element at loc, panicking if out
// of range.
func (d *ElementData[ID]) TypeCodeOf(loc int) int { return d.typeCodes.Get(loc) }

// TypeOf returns the type name of the element at loc, panicking if out of
// range. O(1) via the cached type-code column.
func (d *ElementData[ID]) TypeOf(loc int) string {
	return d.types.ID(d.typeCodes.Get(loc))
}

// TypesOf resolves the type names of several element ilocs at once.
func (d *ElementData[ID]) TypesOf(locs []int) []string {
	out := make([]string, len(locs))
	for i, loc := range locs {
		out[i] = d.TypeOf(loc)
	}
	return out
}

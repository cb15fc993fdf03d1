package graph

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/sanonone/hetgraph/pkg/core/feature"
	"github.com/sanonone/hetgraph/pkg/core/iloc"
	"github.com/sanonone/hetgraph/pkg/metrics"
)

// ErrFeatureShape is returned when a type's feature matrix does not have one
// row per node of that type.
var ErrFeatureShape = errors.New("invalid feature shape")

// NodeData extends ElementData with one feature matrix per node type. Row i
// of a type's matrix belongs to the node whose iloc is the type range's
// start plus i.
type NodeData[ID comparable] struct {
	*ElementData[ID]
	features map[string]feature.Matrix
}

// NewNodeData builds a node collection. Every type present in features must
// be a known type and its matrix must have exactly one row per node of that
// type; types without features are allowed.
func NewNodeData[ID comparable](ids []ID, typeStarts []TypeStart, features map[string]feature.Matrix) (*NodeData[ID], error) {
	elements, err := NewElementData(ids, typeStarts)
	if err != nil {
		return nil, err
	}

	for typeName, m := range features {
		r, ok := elements.typeRanges[typeName]
		if !ok {
			return nil, fmt.Errorf("features[%q]: %w", typeName, ErrUnknownType)
		}
		rows, _ := m.Dims()
		if rows != r.Len() {
			return nil, fmt.Errorf("%w: features[%q]: expected one row per node, found %d nodes and %d rows",
				ErrFeatureShape, typeName, r.Len(), rows)
		}
	}

	metrics.ElementsTotal.WithLabelValues("nodes").Set(float64(len(ids)))

	return &NodeData[ID]{ElementData: elements, features: features}, nil
}

// FeaturesOfType returns the full feature matrix of the given type.
func (d *NodeData[ID]) FeaturesOfType(typeName string) (feature.Matrix, error) {
	m, ok := d.features[typeName]
	if !ok {
		return nil, fmt.Errorf("features: %w: %q", ErrUnknownType, typeName)
	}
	return m, nil
}

// Features returns the feature rows of the given global node ilocs, which
// must all belong to typeName. The ilocs are translated to local rows by
// subtracting the type range's start; an iloc outside the type's range is
// reported as an unknown identifier, whether it belongs to another type or
// is invalid outright.
func (d *NodeData[ID]) Features(typeName string, locs []int) (*mat.Dense, error) {
	m, ok := d.features[typeName]
	if !ok {
		return nil, fmt.Errorf("features: %w: %q", ErrUnknownType, typeName)
	}
	r := d.typeRanges[typeName]
	rows, cols := m.Dims()

	var bad []int
	for _, loc := range locs {
		if row := loc - r.Start; row < 0 || row >= rows {
			bad = append(bad, loc)
		}
	}
	if len(bad) == 1 {
		return nil, fmt.Errorf("%w: node iloc %d is not a %q node", iloc.ErrUnknownID, bad[0], typeName)
	}
	if len(bad) > 0 {
		return nil, fmt.Errorf("%w: node ilocs %v are not %q nodes", iloc.ErrUnknownID, bad, typeName)
	}

	if len(locs) == 0 || cols == 0 {
		return &mat.Dense{}, nil
	}
	out := mat.NewDense(len(locs), cols, nil)
	for i, loc := range locs {
		m.Row(out.RawRowView(i), loc-r.Start)
	}
	return out, nil
}

// FeatureInfo reports, per type with features, the column count and storage
// dtype, so consumers can pre-allocate compatible buffers.
func (d *NodeData[ID]) FeatureInfo() map[string]feature.Info {
	info := make(map[string]feature.Info, len(d.features))
	for typeName, m := range d.features {
		info[typeName] = feature.InfoOf(m)
	}
	return info
}

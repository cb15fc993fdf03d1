package graph

import (
	"errors"
	"fmt"
	"sync"

	"github.com/sanonone/hetgraph/pkg/core/iloc"
	"github.com/sanonone/hetgraph/pkg/metrics"
)

var (
	// ErrColumnShape is returned when an edge column's length does not
	// match the number of edge identifiers.
	ErrColumnShape = errors.New("invalid column shape")

	// ErrEndpoint is returned when an edge endpoint is not a valid node
	// iloc of the referenced node collection.
	ErrEndpoint = errors.New("edge endpoint outside node iloc range")

	// ErrDirection is returned when an adjacency lookup requests neither
	// incoming nor outgoing edges.
	ErrDirection = errors.New("expected at least one of In or Out")
)

// Direction selects which incident edges an adjacency lookup considers.
// In and Out may be combined; Both covers every incident edge, with
// self-loops counted once.
type Direction uint8

const (
	In Direction = 1 << iota
	Out

	Both = In | Out
)

func (d Direction) String() string {
	switch d {
	case In:
		return "in"
	case Out:
		return "out"
	case Both:
		return "both"
	default:
		return fmt.Sprintf("Direction(%d)", uint8(d))
	}
}

// EdgeData extends ElementData with the edge endpoint and weight columns and
// owns the lazily built adjacency views. The node collection reference is
// non-owning and is read only for its size and type column.
type EdgeData[ID comparable, NID comparable] struct {
	*ElementData[ID]

	sources  *iloc.Array // node ilocs, stored at the node index width
	targets  *iloc.Array
	weights  []float64
	nodes    *NodeData[NID]
	numNodes int

	// each view is built at most once, on first request; the collection is
	// immutable so there is nothing to invalidate
	directedOnce         sync.Once
	undirectedOnce       sync.Once
	directedByTypeOnce   sync.Once
	undirectedByTypeOnce sync.Once

	inAdj   *Ragged
	outAdj  *Ragged
	bothAdj *Ragged

	// keyed by the node-type iloc of the edge's other endpoint
	inAdjByType   map[int]*Ragged
	outAdjByType  map[int]*Ragged
	bothAdjByType map[int]*Ragged
}

// NewEdgeData builds an edge collection over an already-built node
// collection. sources and targets hold node ilocs; all three columns must
// have one entry per edge identifier.
func NewEdgeData[ID comparable, NID comparable](
	ids []ID,
	sources, targets []int,
	weights []float64,
	typeStarts []TypeStart,
	nodes *NodeData[NID],
) (*EdgeData[ID, NID], error) {
	elements, err := NewElementData(ids, typeStarts)
	if err != nil {
		return nil, err
	}

	numEdges := len(ids)
	for name, length := range map[string]int{
		"sources": len(sources),
		"targets": len(targets),
		"weights": len(weights),
	} {
		if length != numEdges {
			return nil, fmt.Errorf("%w: %s: expected length %d to match ids, found length %d",
				ErrColumnShape, name, numEdges, length)
		}
	}

	numNodes := nodes.Len()
	for i := 0; i < numEdges; i++ {
		if sources[i] < 0 || sources[i] >= numNodes {
			return nil, fmt.Errorf("%w: sources[%d]: found node iloc %d, want [0, %d)",
				ErrEndpoint, i, sources[i], numNodes)
		}
		if targets[i] < 0 || targets[i] >= numNodes {
			return nil, fmt.Errorf("%w: targets[%d]: found node iloc %d, want [0, %d)",
				ErrEndpoint, i, targets[i], numNodes)
		}
	}

	nodeWidth := iloc.WidthFor(numNodes)
	metrics.ElementsTotal.WithLabelValues("edges").Set(float64(numEdges))

	return &EdgeData[ID, NID]{
		ElementData: elements,
		sources:     iloc.FromInts(nodeWidth, sources),
		targets:     iloc.FromInts(nodeWidth, targets),
		weights:     weights,
		nodes:       nodes,
		numNodes:    numNodes,
	}, nil
}

// Sources returns the per-edge source node iloc column.
func (d *EdgeData[ID, NID]) Sources() *iloc.Array { return d.sources }

// Targets returns the per-edge target node iloc column.
func (d *EdgeData[ID, NID]) Targets() *iloc.Array { return d.targets }

// Weights returns the per-edge weight column.
func (d *EdgeData[ID, NID]) Weights() []float64 { return d.weights }

// Nodes returns the node collection the endpoints refer to.
func (d *EdgeData[ID, NID]) Nodes() *NodeData[NID] { return d.nodes }

// NumNodes returns the size of the referenced node collection.
func (d *EdgeData[ID, NID]) NumNodes() int { return d.numNodes }

// SelfLoops counts the edges whose source and target coincide.
func (d *EdgeData[ID, NID]) SelfLoops() int {
	count := 0
	for i := 0; i < d.sources.Len(); i++ {
		if d.sources.Get(i) == d.targets.Get(i) {
			count++
		}
	}
	return count
}

// adj returns the cached adjacency view for dir, building it on first use.
func (d *EdgeData[ID, NID]) adj(dir Direction) (*Ragged, error) {
	switch dir {
	case Both:
		d.undirectedOnce.Do(d.initUndirected)
		return d.bothAdj, nil
	case In:
		d.directedOnce.Do(d.initDirected)
		return d.inAdj, nil
	case Out:
		d.directedOnce.Do(d.initDirected)
		return d.outAdj, nil
	default:
		return nil, fmt.Errorf("%w, found %v", ErrDirection, dir)
	}
}

// adjByType is adj partitioned by the type of the edge's other endpoint.
func (d *EdgeData[ID, NID]) adjByType(dir Direction) (map[int]*Ragged, error) {
	switch dir {
	case Both:
		d.undirectedByTypeOnce.Do(d.initUndirectedByType)
		return d.bothAdjByType, nil
	case In:
		d.directedByTypeOnce.Do(d.initDirectedByType)
		return d.inAdjByType, nil
	case Out:
		d.directedByTypeOnce.Do(d.initDirectedByType)
		return d.outAdjByType, nil
	default:
		return nil, fmt.Errorf("%w, found %v", ErrDirection, dir)
	}
}

// Degree returns the number of edges incident to the node in the given
// direction, with self-loops counted once under Both. Isolated or unknown
// node ilocs have degree 0; only negative ilocs fail.
func (d *EdgeData[ID, NID]) Degree(nodeIloc int, dir Direction) (int, error) {
	locs, err := d.EdgeIlocs(nodeIloc, dir)
	if err != nil {
		return 0, err
	}
	return locs.Len(), nil
}

// Degrees returns the degree of every node in the referenced collection, in
// node iloc order.
func (d *EdgeData[ID, NID]) Degrees(dir Direction) ([]int, error) {
	adj, err := d.adj(dir)
	if err != nil {
		return nil, err
	}
	out := make([]int, d.numNodes)
	for i, group := range adj.Items() {
		out[i] = group.Len()
	}
	return out, nil
}

// EdgeIlocs returns the ilocs of the edges incident to the node in the
// given direction, as a no-copy view into the cached adjacency index.
func (d *EdgeData[ID, NID]) EdgeIlocs(nodeIloc int, dir Direction) (iloc.Slice, error) {
	adj, err := d.adj(dir)
	if err != nil {
		return iloc.Slice{}, err
	}
	return adj.Group(nodeIloc)
}

// EdgeIlocsByOtherType restricts EdgeIlocs to edges whose other endpoint
// (target for Out, source for In) has the given node type. A type that never
// occurs adjacent to the node, including one unknown to the node collection,
// yields the empty group.
func (d *EdgeData[ID, NID]) EdgeIlocsByOtherType(nodeIloc int, dir Direction, otherType string) (iloc.Slice, error) {
	byType, err := d.adjByType(dir)
	if err != nil {
		return iloc.Slice{}, err
	}
	if nodeIloc < 0 {
		return iloc.Slice{}, fmt.Errorf("%w: found %d", ErrNegativeIloc, nodeIloc)
	}
	typeCode := d.nodes.Types().ToIloc([]string{otherType})[0]
	adj, ok := byType[typeCode]
	if !ok {
		return iloc.Slice{}, nil
	}
	return adj.Group(nodeIloc)
}

package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/tidwall/btree"
	"gopkg.in/yaml.v3"

	"github.com/sanonone/hetgraph/pkg/core/feature"
	"github.com/sanonone/hetgraph/pkg/core/graph"
)

// GraphFile is the YAML description of a graph to load. It plays the role of
// the graph-construction side of the library's contract: it arranges elements
// into type-contiguous iloc order and resolves endpoint identifiers before
// handing everything to the collections.
type GraphFile struct {
	Nodes []NodeSpec `yaml:"nodes"`
	Edges []EdgeSpec `yaml:"edges"`
}

// NodeSpec declares one node. Type defaults to "default"; features are
// optional but must have the same length for every node of one type.
type NodeSpec struct {
	ID       string    `yaml:"id"`
	Type     string    `yaml:"type"`
	Features []float64 `yaml:"features"`
}

// EdgeSpec declares one directed edge between node IDs. A missing edge ID
// gets a generated one; weight defaults to 1.
type EdgeSpec struct {
	ID     string   `yaml:"id"`
	Source string   `yaml:"source"`
	Target string   `yaml:"target"`
	Type   string   `yaml:"type"`
	Weight *float64 `yaml:"weight"`
}

const defaultType = "default"

// LoadGraphFile reads and decodes a YAML graph description.
func LoadGraphFile(path string) (*GraphFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file GraphFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &file, nil
}

// Build assembles the node and edge collections from the description. Types
// are laid out in sorted name order, elements within a type in declaration
// order.
func (f *GraphFile) Build() (*graph.NodeData[string], *graph.EdgeData[string, string], error) {
	nodes, err := f.buildNodes()
	if err != nil {
		return nil, nil, err
	}
	edges, err := f.buildEdges(nodes)
	if err != nil {
		return nil, nil, err
	}
	return nodes, edges, nil
}

func (f *GraphFile) buildNodes() (*graph.NodeData[string], error) {
	// group declarations by type; the btree keeps type order deterministic
	var byType btree.Map[string, []NodeSpec]
	for _, n := range f.Nodes {
		typ := n.Type
		if typ == "" {
			typ = defaultType
		}
		group, _ := byType.Get(typ)
		byType.Set(typ, append(group, n))
	}

	var (
		ids      []string
		starts   []graph.TypeStart
		features = map[string]feature.Matrix{}
		buildErr error
	)
	byType.Scan(func(typ string, group []NodeSpec) bool {
		starts = append(starts, graph.TypeStart{Name: typ, Start: len(ids)})

		cols := len(group[0].Features)
		flat := make([]float64, 0, len(group)*cols)
		for _, n := range group {
			ids = append(ids, n.ID)
			if len(n.Features) != cols {
				buildErr = fmt.Errorf("node %q: expected %d features like the rest of type %q, found %d",
					n.ID, cols, typ, len(n.Features))
				return false
			}
			flat = append(flat, n.Features...)
		}
		if cols > 0 {
			m, err := feature.NewDense(len(group), cols, flat)
			if err != nil {
				buildErr = err
				return false
			}
			features[typ] = m
		}
		return true
	})
	if buildErr != nil {
		return nil, buildErr
	}

	return graph.NewNodeData(ids, starts, features)
}

func (f *GraphFile) buildEdges(nodes *graph.NodeData[string]) (*graph.EdgeData[string, string], error) {
	var byType btree.Map[string, []EdgeSpec]
	for _, e := range f.Edges {
		typ := e.Type
		if typ == "" {
			typ = defaultType
		}
		group, _ := byType.Get(typ)
		byType.Set(typ, append(group, e))
	}

	var (
		ids     []string
		starts  []graph.TypeStart
		srcIDs  []string
		tgtIDs  []string
		weights []float64
	)
	byType.Scan(func(typ string, group []EdgeSpec) bool {
		starts = append(starts, graph.TypeStart{Name: typ, Start: len(ids)})
		for _, e := range group {
			id := e.ID
			if id == "" {
				id = uuid.NewString()
			}
			ids = append(ids, id)
			srcIDs = append(srcIDs, e.Source)
			tgtIDs = append(tgtIDs, e.Target)
			if e.Weight != nil {
				weights = append(weights, *e.Weight)
			} else {
				weights = append(weights, 1)
			}
		}
		return true
	})

	sources, err := nodes.IDs().ToIlocStrict(srcIDs)
	if err != nil {
		return nil, fmt.Errorf("edge sources: %w", err)
	}
	targets, err := nodes.IDs().ToIlocStrict(tgtIDs)
	if err != nil {
		return nil, fmt.Errorf("edge targets: %w", err)
	}

	return graph.NewEdgeData(ids, sources, targets, weights, starts, nodes)
}

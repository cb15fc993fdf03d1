package graph

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/sanonone/hetgraph/pkg/core/feature"
	"github.com/sanonone/hetgraph/pkg/core/iloc"
)

func mustMatrix(t *testing.T, rows, cols int, data []float64) feature.Matrix {
	t.Helper()
	m, err := feature.NewDense(rows, cols, data)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func twoTypeNodes(t *testing.T) *NodeData[string] {
	t.Helper()
	nodes, err := NewNodeData(
		[]string{"a", "b", "c", "d"},
		[]TypeStart{{"p", 0}, {"q", 2}},
		map[string]feature.Matrix{
			"p": mustMatrix(t, 2, 2, []float64{1, 2, 3, 4}),
			"q": mustMatrix(t, 2, 3, []float64{5, 6, 7, 8, 9, 10}),
		},
	)
	if err != nil {
		t.Fatal(err)
	}
	return nodes
}

func TestNodeFeatures(t *testing.T) {
	nodes := twoTypeNodes(t)

	// row i of a type's matrix is the node at iloc range.Start + i
	r, err := nodes.TypeRange("q")
	if err != nil {
		t.Fatal(err)
	}
	full, err := nodes.FeaturesOfType("q")
	if err != nil {
		t.Fatal(err)
	}
	for loc := r.Start; loc < r.Stop; loc++ {
		got, err := nodes.Features("q", []int{loc})
		if err != nil {
			t.Fatal(err)
		}
		_, cols := full.Dims()
		for j := 0; j < cols; j++ {
			if want := full.At(loc-r.Start, j); math.Abs(got.At(0, j)-want) > 0 {
				t.Errorf("Features(q, [%d])[0, %d] = %v, want %v", loc, j, got.At(0, j), want)
			}
		}
	}

	// several ilocs at once, in request order
	got, err := nodes.Features("p", []int{1, 0})
	if err != nil {
		t.Fatal(err)
	}
	if got.At(0, 0) != 3 || got.At(1, 0) != 1 {
		t.Errorf("Features(p, [1 0]) rows out of order: %v, %v", got.At(0, 0), got.At(1, 0))
	}
}

func TestNodeFeaturesUnknownIlocs(t *testing.T) {
	nodes := twoTypeNodes(t)

	// iloc from an earlier type (translates negative) and from a later type
	// (translates too large) are both "unknown identifier", not an index
	// failure
	for _, loc := range []int{0, 1} { // type "p" ilocs queried as "q"
		if _, err := nodes.Features("q", []int{loc}); !errors.Is(err, iloc.ErrUnknownID) {
			t.Errorf("Features(q, [%d]): expected ErrUnknownID, got %v", loc, err)
		}
	}
	for _, loc := range []int{2, 3, 99} { // past type "p"
		if _, err := nodes.Features("p", []int{loc}); !errors.Is(err, iloc.ErrUnknownID) {
			t.Errorf("Features(p, [%d]): expected ErrUnknownID, got %v", loc, err)
		}
	}

	// one offender reported alone, several as the set
	_, err := nodes.Features("p", []int{2})
	if err == nil || strings.Contains(err.Error(), "[") {
		t.Errorf("single bad iloc should be reported alone: %v", err)
	}
	_, err = nodes.Features("p", []int{2, 3})
	if err == nil || !strings.Contains(err.Error(), "[2 3]") {
		t.Errorf("several bad ilocs should be reported as the set: %v", err)
	}

	if _, err := nodes.Features("nope", []int{0}); !errors.Is(err, ErrUnknownType) {
		t.Errorf("expected ErrUnknownType, got %v", err)
	}
}

func TestNodeFeatureValidation(t *testing.T) {
	ids := []string{"a", "b", "c"}
	starts := []TypeStart{{"p", 0}}

	// row count must match the type's element count
	_, err := NewNodeData(ids, starts, map[string]feature.Matrix{
		"p": mustMatrix(t, 2, 1, []float64{1, 2}),
	})
	if !errors.Is(err, ErrFeatureShape) {
		t.Fatalf("expected ErrFeatureShape, got %v", err)
	}
	if msg := err.Error(); !strings.Contains(msg, `"p"`) || !strings.Contains(msg, "3") || !strings.Contains(msg, "2") {
		t.Errorf("error should name the type and both counts: %v", msg)
	}

	// features for a type the collection does not have
	_, err = NewNodeData(ids, starts, map[string]feature.Matrix{
		"q": mustMatrix(t, 3, 1, []float64{1, 2, 3}),
	})
	if !errors.Is(err, ErrUnknownType) {
		t.Fatalf("expected ErrUnknownType, got %v", err)
	}

	// types without features are fine
	nodes, err := NewNodeData(ids, starts, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := nodes.FeaturesOfType("p"); !errors.Is(err, ErrUnknownType) {
		t.Errorf("expected ErrUnknownType for feature-less type, got %v", err)
	}
}

func TestNodeFeatureInfo(t *testing.T) {
	nodes := twoTypeNodes(t)
	info := nodes.FeatureInfo()
	if len(info) != 2 {
		t.Fatalf("FeatureInfo has %d entries, want 2", len(info))
	}
	if info["p"].Columns != 2 || info["p"].DType != feature.Float64 {
		t.Errorf(`info["p"] = %+v`, info["p"])
	}
	if info["q"].Columns != 3 {
		t.Errorf(`info["q"] = %+v`, info["q"])
	}
}

func TestNodeFeaturesEmptySelection(t *testing.T) {
	nodes := twoTypeNodes(t)
	got, err := nodes.Features("p", nil)
	if err != nil {
		t.Fatal(err)
	}
	if rows, _ := got.Dims(); rows != 0 {
		t.Errorf("empty selection returned %d rows", rows)
	}
}

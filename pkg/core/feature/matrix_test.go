package feature

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/james-bowman/sparse"
)

// every variant storing the same 3x2 matrix must answer shape, dtype and
// element queries consistently
func testVariants(t *testing.T) map[string]Matrix {
	t.Helper()

	data64 := []float64{1, 2, 3, 4, 5, 6}
	data32 := []float32{1, 2, 3, 4, 5, 6}

	dense, err := NewDense(3, 2, slices.Clone(data64))
	if err != nil {
		t.Fatal(err)
	}
	dense32, err := NewDense32(3, 2, slices.Clone(data32))
	if err != nil {
		t.Fatal(err)
	}
	half, err := NewHalf(3, 2, slices.Clone(data32))
	if err != nil {
		t.Fatal(err)
	}

	csr := sparse.NewDOK(3, 2)
	for i := 0; i < 3; i++ {
		for j := 0; j < 2; j++ {
			csr.Set(i, j, data64[i*2+j])
		}
	}

	return map[string]Matrix{
		"dense":   dense,
		"dense32": dense32,
		"half":    half,
		"csr":     NewCSR(csr.ToCSR()),
	}
}

func TestMatrixVariants(t *testing.T) {
	want := [][]float64{{1, 2}, {3, 4}, {5, 6}}

	for name, m := range testVariants(t) {
		rows, cols := m.Dims()
		if rows != 3 || cols != 2 {
			t.Errorf("%s: Dims = (%d, %d), want (3, 2)", name, rows, cols)
			continue
		}
		for i := 0; i < rows; i++ {
			row := m.Row(nil, i)
			for j := 0; j < cols; j++ {
				if math.Abs(row[j]-want[i][j]) > 1e-3 {
					t.Errorf("%s: Row(%d)[%d] = %v, want %v", name, i, j, row[j], want[i][j])
				}
				if math.Abs(m.At(i, j)-want[i][j]) > 1e-3 {
					t.Errorf("%s: At(%d, %d) = %v, want %v", name, i, j, m.At(i, j), want[i][j])
				}
			}
		}
	}
}

func TestMatrixDTypes(t *testing.T) {
	variants := testVariants(t)
	want := map[string]DType{
		"dense":   Float64,
		"dense32": Float32,
		"half":    Float16,
		"csr":     Float64,
	}
	for name, m := range variants {
		if m.DType() != want[name] {
			t.Errorf("%s: DType = %v, want %v", name, m.DType(), want[name])
		}
		info := InfoOf(m)
		if info.Columns != 2 || info.DType != want[name] {
			t.Errorf("%s: InfoOf = %+v", name, info)
		}
	}
}

func TestMatrixShapeErrors(t *testing.T) {
	if _, err := NewDense(2, 3, []float64{1, 2}); !errors.Is(err, ErrShape) {
		t.Errorf("NewDense: expected ErrShape, got %v", err)
	}
	if _, err := NewDense32(2, 3, []float32{1}); !errors.Is(err, ErrShape) {
		t.Errorf("NewDense32: expected ErrShape, got %v", err)
	}
	if _, err := NewHalf(1, 1, nil); !errors.Is(err, ErrShape) {
		t.Errorf("NewHalf: expected ErrShape, got %v", err)
	}
}

func TestEmptyDense(t *testing.T) {
	d, err := NewDense(0, 4, nil)
	if err != nil {
		t.Fatal(err)
	}
	rows, cols := d.Dims()
	if rows != 0 || cols != 4 {
		t.Fatalf("Dims = (%d, %d), want (0, 4)", rows, cols)
	}
	if d.Mat() != nil {
		t.Error("empty Dense should have no backing gonum matrix")
	}
}

func TestCSRRowZeroFill(t *testing.T) {
	dok := sparse.NewDOK(2, 3)
	dok.Set(0, 1, 5)
	m := NewCSR(dok.ToCSR())

	dst := []float64{9, 9, 9}
	got := m.Row(dst, 0)
	if !slices.Equal(got, []float64{0, 5, 0}) {
		t.Fatalf("Row(0) = %v, want [0 5 0]", got)
	}
	// an all-zero row must clear the destination too
	got = m.Row(dst, 1)
	if !slices.Equal(got, []float64{0, 0, 0}) {
		t.Fatalf("Row(1) = %v, want zeros", got)
	}
}

// Package feature stores per-type 2-D feature matrices behind one Matrix
// interface, so the graph layer can mix dense float64, dense float32, half
// precision and sparse CSR storage per node type while exposing a uniform
// shape/dtype query surface.
package feature

import (
	"errors"
	"fmt"

	"github.com/james-bowman/sparse"
	"github.com/x448/float16"
	"gonum.org/v1/gonum/mat"
)

// ErrShape is returned when a matrix constructor is given data that does not
// match the requested dimensions.
var ErrShape = errors.New("invalid matrix shape")

// DType identifies the element storage type of a Matrix. Reads always go
// through float64; DType only describes the storage, letting consumers
// pre-allocate compatible buffers.
type DType uint8

const (
	Float64 DType = iota
	Float32
	Float16
)

func (d DType) String() string {
	switch d {
	case Float64:
		return "float64"
	case Float32:
		return "float32"
	case Float16:
		return "float16"
	default:
		return fmt.Sprintf("DType(%d)", uint8(d))
	}
}

// Info describes one type's feature matrix: its column count and storage
// dtype.
type Info struct {
	Columns int
	DType   DType
}

// Matrix is a read-only 2-D numeric container. Row i holds the features of
// the i-th element of the owning type, in ascending iloc order within that
// type's range.
type Matrix interface {
	// Dims returns the row and column counts.
	Dims() (rows, cols int)
	// DType returns the element storage type.
	DType() DType
	// At returns the element at row i, column j.
	At(i, j int) float64
	// Row copies row i into dst, which must have length cols, and returns
	// dst. A nil dst allocates.
	Row(dst []float64, i int) []float64
}

// InfoOf returns the Info for a Matrix.
func InfoOf(m Matrix) Info {
	_, cols := m.Dims()
	return Info{Columns: cols, DType: m.DType()}
}

// --- Dense (float64, gonum) ---

// Dense is a dense float64 matrix backed by gonum. Empty shapes (a type with
// no nodes, or zero-width features) are valid even though gonum itself
// rejects them; the backing matrix is simply absent.
type Dense struct {
	m    *mat.Dense // nil when rows == 0 or cols == 0
	rows int
	cols int
}

// NewDense builds a Dense from row-major data of length rows*cols.
func NewDense(rows, cols int, data []float64) (*Dense, error) {
	if len(data) != rows*cols {
		return nil, fmt.Errorf("%w: expected %d*%d=%d values, found %d",
			ErrShape, rows, cols, rows*cols, len(data))
	}
	d := &Dense{rows: rows, cols: cols}
	if rows > 0 && cols > 0 {
		d.m = mat.NewDense(rows, cols, data)
	}
	return d, nil
}

// FromDense wraps an existing gonum matrix.
func FromDense(m *mat.Dense) *Dense {
	rows, cols := m.Dims()
	return &Dense{m: m, rows: rows, cols: cols}
}

func (d *Dense) Dims() (int, int)    { return d.rows, d.cols }
func (d *Dense) DType() DType        { return Float64 }
func (d *Dense) At(i, j int) float64 { return d.m.At(i, j) }

func (d *Dense) Row(dst []float64, i int) []float64 {
	if d.m == nil {
		if dst == nil {
			dst = make([]float64, d.cols)
		}
		return dst
	}
	return mat.Row(dst, i, d.m)
}

// Mat exposes the underlying gonum matrix for callers that want to run
// gonum operations directly. Nil when the matrix has no rows.
func (d *Dense) Mat() *mat.Dense { return d.m }

// --- Dense32 (float32 flat slice) ---

// Dense32 stores rows contiguously as float32, halving the footprint of
// Dense. This is the layout used for embedding vectors throughout the rest
// of the system.
type Dense32 struct {
	data []float32
	rows int
	cols int
}

// NewDense32 builds a Dense32 from row-major data of length rows*cols.
func NewDense32(rows, cols int, data []float32) (*Dense32, error) {
	if len(data) != rows*cols {
		return nil, fmt.Errorf("%w: expected %d*%d=%d values, found %d",
			ErrShape, rows, cols, rows*cols, len(data))
	}
	return &Dense32{data: data, rows: rows, cols: cols}, nil
}

func (d *Dense32) Dims() (int, int) { return d.rows, d.cols }
func (d *Dense32) DType() DType     { return Float32 }

func (d *Dense32) At(i, j int) float64 {
	return float64(d.data[i*d.cols+j])
}

func (d *Dense32) Row(dst []float64, i int) []float64 {
	if dst == nil {
		dst = make([]float64, d.cols)
	}
	row := d.data[i*d.cols : (i+1)*d.cols]
	for j, v := range row {
		dst[j] = float64(v)
	}
	return dst
}

// --- Half (float16) ---

// Half stores rows as IEEE 754 half-precision values, for feature sets large
// enough that storage dominates and ~3 decimal digits of precision suffice.
type Half struct {
	data []float16.Float16
	rows int
	cols int
}

// NewHalf builds a Half matrix by converting row-major float32 data.
func NewHalf(rows, cols int, data []float32) (*Half, error) {
	if len(data) != rows*cols {
		return nil, fmt.Errorf("%w: expected %d*%d=%d values, found %d",
			ErrShape, rows, cols, rows*cols, len(data))
	}
	packed := make([]float16.Float16, len(data))
	for i, v := range data {
		packed[i] = float16.Fromfloat32(v)
	}
	return &Half{data: packed, rows: rows, cols: cols}, nil
}

func (h *Half) Dims() (int, int) { return h.rows, h.cols }
func (h *Half) DType() DType     { return Float16 }

func (h *Half) At(i, j int) float64 {
	return float64(h.data[i*h.cols+j].Float32())
}

func (h *Half) Row(dst []float64, i int) []float64 {
	if dst == nil {
		dst = make([]float64, h.cols)
	}
	row := h.data[i*h.cols : (i+1)*h.cols]
	for j, v := range row {
		dst[j] = float64(v.Float32())
	}
	return dst
}

// --- CSR (sparse) ---

// CSR wraps a compressed-sparse-row matrix for feature sets that are mostly
// zero (one-hot encodings, bag-of-words).
type CSR struct {
	m *sparse.CSR
}

// NewCSR wraps an existing sparse CSR matrix.
func NewCSR(m *sparse.CSR) *CSR { return &CSR{m: m} }

func (c *CSR) Dims() (int, int)    { return c.m.Dims() }
func (c *CSR) DType() DType        { return Float64 }
func (c *CSR) At(i, j int) float64 { return c.m.At(i, j) }

func (c *CSR) Row(dst []float64, i int) []float64 {
	_, cols := c.m.Dims()
	if dst == nil {
		dst = make([]float64, cols)
	} else {
		for j := range dst {
			dst[j] = 0
		}
	}
	c.m.DoRowNonZero(i, func(_, j int, v float64) {
		dst[j] = v
	})
	return dst
}

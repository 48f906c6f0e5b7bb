// Package dmatrix implements the dense decimal matrix kernel (component A):
// construction, row subset, multiply, in-place add, and free, adapted from
// the row-pointer-to-row-array DecimalMatrix of original_source/src/utils.c
// (generate_zero_dmatrix, subset_dmatrix_row, multiply_dmatrices,
// add_to_dmatrix, delete_dmatrix) into row-major Go slices.
package dmatrix

import (
	"context"

	"github.com/KiraVill/genomicSimulation/simerrs"
	"github.com/KiraVill/genomicSimulation/yield"
)

// Matrix is a dense, row-major matrix of float64. It owns its storage; no
// two Matrix values share backing arrays.
type Matrix struct {
	Rows, Cols int
	data       []float64
}

// Zeros allocates a new Rows x Cols matrix filled with 0.0.
func Zeros(rows, cols int) (*Matrix, error) {
	if rows < 0 || cols < 0 {
		return nil, simerrs.New(simerrs.InvalidArgument, "matrix dimensions must be non-negative, got %dx%d", rows, cols)
	}
	return &Matrix{Rows: rows, Cols: cols, data: make([]float64, rows*cols)}, nil
}

// At returns the value at (row, col).
func (m *Matrix) At(row, col int) float64 {
	return m.data[row*m.Cols+col]
}

// Set assigns the value at (row, col).
func (m *Matrix) Set(row, col int, v float64) {
	m.data[row*m.Cols+col] = v
}

// RowSubset copies row i into a new 1xCols matrix.
func RowSubset(m *Matrix, i int) (*Matrix, error) {
	if m == nil {
		return nil, simerrs.New(simerrs.InvalidArgument, "nil matrix")
	}
	if i < 0 || i >= m.Rows {
		return nil, simerrs.New(simerrs.InvalidArgument, "row %d out of range [0,%d)", i, m.Rows)
	}
	out, err := Zeros(1, m.Cols)
	if err != nil {
		return nil, err
	}
	copy(out.data, m.data[i*m.Cols:(i+1)*m.Cols])
	return out, nil
}

// Multiply computes A x B as a new matrix, failing on shape mismatch. The
// inner loop yields cooperatively every yield.Every rows, the idiomatic
// equivalent of the original's R_CheckUserInterrupt() inside tight loops.
func Multiply(ctx context.Context, a, b *Matrix) (*Matrix, error) {
	if a == nil || b == nil {
		return nil, simerrs.New(simerrs.InvalidArgument, "nil matrix")
	}
	if a.Cols != b.Rows {
		return nil, simerrs.New(simerrs.ShapeMismatch, "cannot multiply %dx%d by %dx%d", a.Rows, a.Cols, b.Rows, b.Cols)
	}
	out, err := Zeros(a.Rows, b.Cols)
	if err != nil {
		return nil, err
	}
	for i := 0; i < a.Rows; i++ {
		if err := yield.Check(ctx, i); err != nil {
			return nil, err
		}
		for k := 0; k < a.Cols; k++ {
			av := a.At(i, k)
			if av == 0 {
				continue
			}
			for j := 0; j < b.Cols; j++ {
				out.Set(i, j, out.At(i, j)+av*b.At(k, j))
			}
		}
	}
	return out, nil
}

// AddInto computes a <- a + b in place, failing on shape mismatch.
func AddInto(a, b *Matrix) error {
	if a == nil || b == nil {
		return simerrs.New(simerrs.InvalidArgument, "nil matrix")
	}
	if a.Rows != b.Rows || a.Cols != b.Cols {
		return simerrs.New(simerrs.ShapeMismatch, "cannot add %dx%d and %dx%d", a.Rows, a.Cols, b.Rows, b.Cols)
	}
	for i := range a.data {
		a.data[i] += b.data[i]
	}
	return nil
}

// Free clears m's backing storage; idempotent, leaves a zero-sized
// sentinel. Go's GC reclaims memory on its own, but Free mirrors the
// original's delete_dmatrix so callers that hold a *Matrix past its
// intended lifetime get a zero matrix back, not stale data.
func Free(m *Matrix) {
	if m == nil {
		return
	}
	m.Rows, m.Cols = 0, 0
	m.data = nil
}

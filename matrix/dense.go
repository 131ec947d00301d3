// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"
	"math"
	"strings"
)

// Dense is a row-major matrix of float64 values.
// Used for Jacobians and reduced susceptance blocks, which are small enough
// to factorize densely.
type Dense struct {
	r, c           int       // shape
	data           []float64 // row-major backing buffer, len == r*c
	validateNaNInf bool      // reject NaN/±Inf on Set
}

// denseErrorf decorates an error with method name and coordinates.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// NewDense allocates a zero-filled rows×cols matrix.
//
// Inputs:
//   - rows, cols: strictly positive dimensions.
//
// Returns:
//   - *Dense or ErrInvalidDimensions.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDense(rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}

	return &Dense{
		r:              rows,
		c:              cols,
		data:           make([]float64, rows*cols),
		validateNaNInf: DefaultValidateNaNInf,
	}, nil
}

// NewDenseFrom copies a row-major buffer into a new rows×cols matrix.
// Returns ErrDimensionMismatch when len(values) != rows*cols.
func NewDenseFrom(rows, cols int, values []float64) (*Dense, error) {
	m, err := NewDense(rows, cols)
	if err != nil {
		return nil, err
	}
	if len(values) != rows*cols {
		return nil, ErrDimensionMismatch
	}
	copy(m.data, values)

	return m, nil
}

// Rows returns the row count.
func (m *Dense) Rows() int { return m.r }

// Cols returns the column count.
func (m *Dense) Cols() int { return m.c }

// Shape packs Rows() and Cols() into a single call.
func (m *Dense) Shape() (rows, cols int) { return m.r, m.c }

// RawRowMajor exposes the backing buffer. Callers that mutate it bypass the
// numeric policy; linear solvers use it to avoid an element-by-element copy.
func (m *Dense) RawRowMajor() []float64 { return m.data }

func (m *Dense) indexOf(row, col int) (int, error) {
	if row < 0 || row >= m.r {
		return 0, ErrOutOfRange
	}
	if col < 0 || col >= m.c {
		return 0, ErrOutOfRange
	}

	return row*m.c + col, nil
}

// At returns the value at (row, col) or ErrOutOfRange.
func (m *Dense) At(row, col int) (float64, error) {
	off, err := m.indexOf(row, col)
	if err != nil {
		return 0, denseErrorf(ctxAt, row, col, err)
	}

	return m.data[off], nil
}

// Set stores v at (row, col).
// Returns ErrOutOfRange for bad indices and ErrNaNInf when v is not finite
// and the instance validates its values.
func (m *Dense) Set(row, col int, v float64) error {
	off, err := m.indexOf(row, col)
	if err != nil {
		return denseErrorf(ctxSet, row, col, err)
	}
	if m.validateNaNInf && (math.IsNaN(v) || math.IsInf(v, 0)) {
		return denseErrorf(ctxSet, row, col, ErrNaNInf)
	}
	m.data[off] = v

	return nil
}

// AddAt accumulates v into (row, col). Jacobian assembly stamps several
// partial derivatives into one cell.
func (m *Dense) AddAt(row, col int, v float64) error {
	off, err := m.indexOf(row, col)
	if err != nil {
		return denseErrorf("AddAt", row, col, err)
	}
	m.data[off] += v

	return nil
}

// Zero resets every element to 0 while keeping the allocation.
func (m *Dense) Zero() {
	for i := range m.data {
		m.data[i] = 0
	}
}

// Clone returns a deep copy preserving the numeric policy.
func (m *Dense) Clone() Matrix {
	cp := make([]float64, len(m.data))
	copy(cp, m.data)

	return &Dense{r: m.r, c: m.c, data: cp, validateNaNInf: m.validateNaNInf}
}

// MulVec computes y = m·x.
//
// Errors:
//   - ErrDimensionMismatch when len(x) != Cols().
//
// Complexity:
//   - Time O(r*c), Space O(r).
func (m *Dense) MulVec(x []float64) ([]float64, error) {
	if err := ValidateVecLen(x, m.c); err != nil {
		return nil, matrixErrorf(opMulVec, err)
	}
	y := make([]float64, m.r)
	var i, j, base int
	var sum float64
	for i = 0; i < m.r; i++ {
		base = i * m.c
		sum = 0
		for j = 0; j < m.c; j++ {
			sum += m.data[base+j] * x[j]
		}
		y[i] = sum
	}

	return y, nil
}

// NormInf returns the maximum absolute row sum.
func (m *Dense) NormInf() float64 {
	var best float64
	for i := 0; i < m.r; i++ {
		var s float64
		for _, v := range m.data[i*m.c : (i+1)*m.c] {
			s += math.Abs(v)
		}
		if s > best {
			best = s
		}
	}

	return best
}

// String renders the matrix one row per line, mostly for test failures.
func (m *Dense) String() string {
	var sb strings.Builder
	for i := 0; i < m.r; i++ {
		sb.WriteByte('[')
		for j := 0; j < m.c; j++ {
			if j > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%.6g", m.data[i*m.c+j])
		}
		sb.WriteString("]\n")
	}

	return sb.String()
}

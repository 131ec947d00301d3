// SPDX-License-Identifier: MIT

package matrix

import "sort"

// Triplet accumulates (row, col, value) stamps before compression.
// Duplicate coordinates are summed on Compress, which is exactly how branch
// admittances are stamped into a bus matrix.
type Triplet[T Element] struct {
	r, c int
	rows []int
	cols []int
	vals []T
}

// NewTriplet returns an empty rows×cols stamp buffer.
// Returns ErrInvalidDimensions when either dimension is non-positive.
func NewTriplet[T Element](rows, cols int) (*Triplet[T], error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}

	return &Triplet[T]{r: rows, c: cols}, nil
}

// Add stamps v at (i, j). Returns ErrOutOfRange for invalid coordinates.
func (t *Triplet[T]) Add(i, j int, v T) error {
	if i < 0 || i >= t.r || j < 0 || j >= t.c {
		return ErrOutOfRange
	}
	t.rows = append(t.rows, i)
	t.cols = append(t.cols, j)
	t.vals = append(t.vals, v)

	return nil
}

// Len reports the number of stamps recorded so far.
func (t *Triplet[T]) Len() int { return len(t.vals) }

// Compress converts the stamp buffer into compressed sparse row form.
//
// Implementation:
//   - Stage 1: stable-sort stamp indices by (row, col).
//   - Stage 2: sweep once, summing runs of equal coordinates.
//   - Stage 3: build row pointers from per-row counts.
//
// Behavior highlights:
//   - Duplicates are summed; explicit zeros produced by cancelling stamps
//     are kept so the sparsity pattern only depends on topology.
//   - Column indices inside each row are strictly increasing.
//
// Returns:
//   - *Sparse[T]; the Triplet stays usable afterwards.
//
// Complexity:
//   - Time O(k log k) for k stamps, Space O(k).
func (t *Triplet[T]) Compress() *Sparse[T] {
	k := len(t.vals)
	order := make([]int, k)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ia, ib := order[a], order[b]
		if t.rows[ia] != t.rows[ib] {
			return t.rows[ia] < t.rows[ib]
		}

		return t.cols[ia] < t.cols[ib]
	})

	s := &Sparse[T]{
		r:      t.r,
		c:      t.c,
		rowPtr: make([]int, t.r+1),
		colIdx: make([]int, 0, k),
		val:    make([]T, 0, k),
	}
	lastRow, lastCol := -1, -1
	for _, p := range order {
		i, j := t.rows[p], t.cols[p]
		if i == lastRow && j == lastCol {
			s.val[len(s.val)-1] += t.vals[p]
			continue
		}
		s.colIdx = append(s.colIdx, j)
		s.val = append(s.val, t.vals[p])
		s.rowPtr[i+1]++
		lastRow, lastCol = i, j
	}
	for i := 0; i < t.r; i++ {
		s.rowPtr[i+1] += s.rowPtr[i]
	}

	return s
}

// Sparse is an immutable compressed-sparse-row matrix.
// Bus admittance and susceptance matrices are stored this way because a
// transmission network has only a handful of neighbours per bus.
type Sparse[T Element] struct {
	r, c   int
	rowPtr []int // len r+1
	colIdx []int // len nnz, ascending within each row
	val    []T   // len nnz
}

// Rows returns the row count.
func (s *Sparse[T]) Rows() int { return s.r }

// Cols returns the column count.
func (s *Sparse[T]) Cols() int { return s.c }

// NNZ returns the number of stored entries.
func (s *Sparse[T]) NNZ() int { return len(s.val) }

// At returns the entry at (i, j); absent entries read as zero.
// Complexity: O(log d) for d entries in row i.
func (s *Sparse[T]) At(i, j int) (T, error) {
	var zero T
	if i < 0 || i >= s.r || j < 0 || j >= s.c {
		return zero, ErrOutOfRange
	}
	lo, hi := s.rowPtr[i], s.rowPtr[i+1]
	cols := s.colIdx[lo:hi]
	p := sort.SearchInts(cols, j)
	if p < len(cols) && cols[p] == j {
		return s.val[lo+p], nil
	}

	return zero, nil
}

// Row calls fn for each stored entry of row i in ascending column order.
// Iteration stops early when fn returns false.
func (s *Sparse[T]) Row(i int, fn func(j int, v T) bool) {
	if i < 0 || i >= s.r {
		return
	}
	for p := s.rowPtr[i]; p < s.rowPtr[i+1]; p++ {
		if !fn(s.colIdx[p], s.val[p]) {
			return
		}
	}
}

// Diag returns the diagonal entries of a square matrix.
func (s *Sparse[T]) Diag() []T {
	n := s.r
	if s.c < n {
		n = s.c
	}
	d := make([]T, n)
	for i := 0; i < n; i++ {
		d[i], _ = s.At(i, i)
	}

	return d
}

// MulVec computes y = s·x.
//
// Errors:
//   - ErrDimensionMismatch when len(x) != Cols().
//
// Complexity:
//   - Time O(nnz), Space O(r).
func (s *Sparse[T]) MulVec(x []T) ([]T, error) {
	if len(x) != s.c {
		return nil, matrixErrorf(opMulVec, ErrDimensionMismatch)
	}
	y := make([]T, s.r)
	for i := 0; i < s.r; i++ {
		var sum T
		for p := s.rowPtr[i]; p < s.rowPtr[i+1]; p++ {
			sum += s.val[p] * x[s.colIdx[p]]
		}
		y[i] = sum
	}

	return y, nil
}

// Submatrix extracts the dense block selected by rows and cols, in the
// order given. Index slices may be empty; the result is then nil.
//
// Errors:
//   - ErrOutOfRange when any index is invalid.
//
// Complexity:
//   - Time O(nnz(rows) + len(rows)*len(cols)).
func Submatrix(s *Sparse[float64], rows, cols []int) (*Dense, error) {
	if len(rows) == 0 || len(cols) == 0 {
		return nil, nil
	}
	colPos := make(map[int]int, len(cols))
	for k, j := range cols {
		if j < 0 || j >= s.c {
			return nil, matrixErrorf(opSubmatrix, ErrOutOfRange)
		}
		colPos[j] = k
	}
	out, err := NewDense(len(rows), len(cols))
	if err != nil {
		return nil, matrixErrorf(opSubmatrix, err)
	}
	for r, i := range rows {
		if i < 0 || i >= s.r {
			return nil, matrixErrorf(opSubmatrix, ErrOutOfRange)
		}
		base := r * out.c
		s.Row(i, func(j int, v float64) bool {
			if k, ok := colPos[j]; ok {
				out.data[base+k] = v
			}

			return true
		})
	}

	return out, nil
}

// SPDX-License-Identifier: MIT

// Package matrix: shared interfaces and element constraints.
package matrix

// Matrix represents a two-dimensional mutable array of float64 values.
// Jacobians and decoupled susceptance blocks are handed to linear solvers
// through this interface.
//
// Complexity notes: all methods are expected O(1) except Clone (O(r*c)).
type Matrix interface {
	// Rows returns the number of rows in the matrix.
	Rows() int

	// Cols returns the number of columns in the matrix.
	Cols() int

	// At retrieves the element at position (i, j).
	// Returns ErrOutOfRange if the indices are invalid.
	At(i, j int) (float64, error)

	// Set assigns the value v at position (i, j).
	// Returns ErrOutOfRange if indices are invalid, ErrNaNInf under the
	// finite-only numeric policy.
	Set(i, j int, v float64) error

	// Clone returns a deep copy of the matrix.
	Clone() Matrix
}

// Element is the set of scalar types storable in a Sparse matrix:
// real susceptance matrices and complex admittance matrices.
type Element interface {
	~float64 | ~complex128
}

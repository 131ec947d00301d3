// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// Every kernel returns one of these sentinels (possibly wrapped with the
// operation name) and tests match them via errors.Is. User-triggered
// conditions never panic; panics are reserved for option constructors
// receiving nonsensical values.

package matrix

import (
	"errors"
	"fmt"
)

// Every message is prefixed with "matrix: ..." so that wrapped chains stay
// greppable in solver logs.
var (
	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrOutOfRange indicates that an index (row or column) is outside valid bounds.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible operand dimensions,
	// e.g. a right-hand side whose length differs from the matrix order.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNonSquare signals that a square matrix was required but the input wasn't.
	ErrNonSquare = errors.New("matrix: matrix is not square")

	// ErrNaNInf signals a NaN or ±Inf value where finite values are required.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrNilMatrix indicates that a nil Matrix (receiver or argument) was used.
	ErrNilMatrix = errors.New("matrix: nil receiver")

	// ErrSingular is returned when no acceptable pivot exists in a column
	// during LU factorization.
	ErrSingular = errors.New("matrix: singular matrix")
)

// Operation tags used when wrapping sentinels.
const (
	opFactorize = "Factorize"
	opSolve     = "LU.Solve"
	opMulVec    = "MulVec"
	opSubmatrix = "Submatrix"
	ctxAt       = "At"
	ctxSet      = "Set"
)

// matrixErrorf wraps err with the operation tag, keeping errors.Is intact.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// PivotError reports the elimination step at which factorization found no
// usable pivot. It matches ErrSingular under errors.Is.
type PivotError struct {
	Row   int     // zero-based elimination step
	Pivot float64 // largest candidate magnitude in the column
}

// Error implements error.
func (e *PivotError) Error() string {
	return fmt.Sprintf("matrix: singular matrix: no pivot at row %d (max |a|=%g)", e.Row, e.Pivot)
}

// Is matches ErrSingular.
func (e *PivotError) Is(target error) bool { return target == ErrSingular }

// SPDX-License-Identifier: MIT

package linsolve

import (
	"errors"
	"fmt"
)

var (
	// ErrSingularMatrix is matched by every *SingularMatrixError.
	ErrSingularMatrix = errors.New("linsolve: singular matrix")

	// ErrUnknownStrategy is returned by ParseStrategy.
	ErrUnknownStrategy = errors.New("linsolve: unknown strategy")
)

// SingularMatrixError reports a numerically singular system.
//
// Matrix names the system ("jacobian", "B′", ...); Row is the elimination
// step that failed, or -1 when the strategy only reports a condition
// estimate; Iteration is the solver iteration, or -1 outside a solve.
type SingularMatrixError struct {
	Matrix    string
	Row       int
	Iteration int
	Cause     error
}

// Error implements error.
func (e *SingularMatrixError) Error() string {
	name := e.Matrix
	if name == "" {
		name = "matrix"
	}
	msg := fmt.Sprintf("linsolve: singular %s", name)
	if e.Row >= 0 {
		msg += fmt.Sprintf(" at row %d", e.Row)
	}
	if e.Iteration >= 0 {
		msg += fmt.Sprintf(" (iteration %d)", e.Iteration)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}

	return msg
}

// Is matches ErrSingularMatrix.
func (e *SingularMatrixError) Is(target error) bool { return target == ErrSingularMatrix }

// Unwrap exposes the strategy-specific cause.
func (e *SingularMatrixError) Unwrap() error { return e.Cause }

// Annotate fills in the matrix name and iteration of a singular-matrix
// error. Other errors are returned unchanged.
func Annotate(err error, matrixName string, iteration int) error {
	var se *SingularMatrixError
	if !errors.As(err, &se) {
		return err
	}
	cp := *se
	cp.Matrix = matrixName
	cp.Iteration = iteration

	return &cp
}

func singular(row int, cause error) *SingularMatrixError {
	return &SingularMatrixError{Row: row, Iteration: -1, Cause: cause}
}

func linsolveErrorf(op string, err error) error {
	return fmt.Errorf("linsolve: %s: %w", op, err)
}

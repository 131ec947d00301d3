// SPDX-License-Identifier: MIT

package linsolve

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/katalvlaran/gridflow/matrix"
)

// Strategy selects a direct solve implementation.
type Strategy int

const (
	// Generic factorizes through gonum's LAPACK-backed LU and rejects
	// systems by condition number.
	Generic Strategy = iota
	// LU uses the in-house pivoting Doolittle kernel and rejects systems
	// by relative pivot size.
	LU
)

// String returns "generic" or "lu".
func (s Strategy) String() string {
	switch s {
	case Generic:
		return "generic"
	case LU:
		return "lu"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy maps "generic" (alias "mldivide") and "lu" to a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "generic", "mldivide", "":
		return Generic, nil
	case "lu":
		return LU, nil
	default:
		return Generic, fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
	}
}

// Factor is a factorized square matrix ready for repeated solves.
type Factor interface {
	// Order is the dimension of the factorized matrix.
	Order() int
	// Solve returns x with A·x = b. The result is always finite.
	Solve(b []float64) ([]float64, error)
}

// Solver solves square linear systems.
type Solver interface {
	Strategy() Strategy
	// Factorize prepares a for repeated solves.
	Factorize(a matrix.Matrix) (Factor, error)
	// Solve is Factorize followed by a single Factor.Solve.
	Solve(a matrix.Matrix, b []float64) ([]float64, error)
}

// Option configures a Solver.
type Option func(*options)

type options struct {
	pivotTol  float64
	condLimit float64
}

// DefaultConditionLimit is the reciprocal of machine epsilon; the Generic
// strategy rejects factorizations with a larger condition estimate.
const DefaultConditionLimit = 1 / 2.220446049250313e-16

// WithPivotTolerance sets the relative pivot threshold of the LU strategy.
// Panics if tol is negative or not finite.
func WithPivotTolerance(tol float64) Option {
	if tol < 0 || math.IsNaN(tol) || math.IsInf(tol, 0) {
		panic("linsolve: WithPivotTolerance requires a finite non-negative tolerance")
	}

	return func(o *options) { o.pivotTol = tol }
}

// WithConditionLimit sets the condition-number ceiling of the Generic
// strategy. Panics unless limit > 1.
func WithConditionLimit(limit float64) Option {
	if !(limit > 1) {
		panic("linsolve: WithConditionLimit requires a limit > 1")
	}

	return func(o *options) { o.condLimit = limit }
}

// New returns the solver for strategy s. Unknown strategies fall back to
// Generic; use ParseStrategy to validate user input.
func New(s Strategy, opts ...Option) Solver {
	o := options{pivotTol: matrix.DefaultPivotTolerance, condLimit: DefaultConditionLimit}
	for _, fn := range opts {
		fn(&o)
	}
	if s == LU {
		return &luSolver{pivotTol: o.pivotTol}
	}

	return &genericSolver{condLimit: o.condLimit}
}

// solveOnce is the shared Solve implementation.
func solveOnce(s Solver, a matrix.Matrix, b []float64) ([]float64, error) {
	f, err := s.Factorize(a)
	if err != nil {
		return nil, err
	}

	return f.Solve(b)
}

// validate rejects nil, non-square and non-finite input.
func validate(a matrix.Matrix) error {
	if err := matrix.ValidateSquareNonNil(a); err != nil {
		return err
	}

	return nil
}

// checkResult turns a non-finite solution into a singular-matrix error.
func checkResult(x []float64) error {
	if err := matrix.ValidateFinite(x); err != nil {
		return singular(-1, err)
	}

	return nil
}

// asSingular converts the matrix kernel's pivot failure into a
// *SingularMatrixError; other errors pass through.
func asSingular(err error) error {
	var pe *matrix.PivotError
	if errors.As(err, &pe) {
		return singular(pe.Row, err)
	}
	if errors.Is(err, matrix.ErrNaNInf) {
		return singular(-1, err)
	}

	return err
}

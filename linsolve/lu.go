// SPDX-License-Identifier: MIT

package linsolve

import "github.com/katalvlaran/gridflow/matrix"

type luSolver struct {
	pivotTol float64
}

func (s *luSolver) Strategy() Strategy { return LU }

// Factorize runs the pivoting Doolittle kernel of package matrix.
// A pivot below pivotTol·‖A‖∞ yields *SingularMatrixError with the failing
// elimination row.
func (s *luSolver) Factorize(a matrix.Matrix) (Factor, error) {
	if err := validate(a); err != nil {
		return nil, linsolveErrorf("LU.Factorize", err)
	}
	f, err := matrix.Factorize(a, matrix.WithPivotTolerance(s.pivotTol))
	if err != nil {
		return nil, linsolveErrorf("LU.Factorize", asSingular(err))
	}

	return &luFactor{f: f}, nil
}

func (s *luSolver) Solve(a matrix.Matrix, b []float64) ([]float64, error) {
	return solveOnce(s, a, b)
}

type luFactor struct {
	f *matrix.LUFactor
}

func (f *luFactor) Order() int { return f.f.Order() }

func (f *luFactor) Solve(b []float64) ([]float64, error) {
	x, err := f.f.Solve(b)
	if err != nil {
		return nil, linsolveErrorf("LU.Solve", asSingular(err))
	}

	return x, nil
}

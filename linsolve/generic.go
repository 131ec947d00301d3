// SPDX-License-Identifier: MIT

package linsolve

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/gridflow/matrix"
)

type genericSolver struct {
	condLimit float64
}

func (s *genericSolver) Strategy() Strategy { return Generic }

// Factorize copies a into a gonum dense matrix and runs LAPACK getrf.
//
// Errors:
//   - matrix.ErrNilMatrix / matrix.ErrNonSquare for malformed input.
//   - *SingularMatrixError when the condition estimate exceeds the limit
//     or the matrix holds non-finite values.
func (s *genericSolver) Factorize(a matrix.Matrix) (Factor, error) {
	if err := validate(a); err != nil {
		return nil, linsolveErrorf("Generic.Factorize", err)
	}
	n := a.Rows()
	data := make([]float64, n*n)
	if d, ok := a.(*matrix.Dense); ok {
		copy(data, d.RawRowMajor())
	} else {
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				v, err := a.At(i, j)
				if err != nil {
					return nil, linsolveErrorf("Generic.Factorize", err)
				}
				data[i*n+j] = v
			}
		}
	}
	if err := matrix.ValidateFinite(data); err != nil {
		return nil, linsolveErrorf("Generic.Factorize", singular(-1, err))
	}

	var lu mat.LU
	lu.Factorize(mat.NewDense(n, n, data))
	if c := lu.Cond(); !(c <= s.condLimit) {
		return nil, linsolveErrorf("Generic.Factorize", singular(-1, fmt.Errorf("condition number %g", c)))
	}

	return &genericFactor{n: n, lu: &lu}, nil
}

func (s *genericSolver) Solve(a matrix.Matrix, b []float64) ([]float64, error) {
	return solveOnce(s, a, b)
}

type genericFactor struct {
	n  int
	lu *mat.LU
}

func (f *genericFactor) Order() int { return f.n }

func (f *genericFactor) Solve(b []float64) ([]float64, error) {
	if err := matrix.ValidateVecLen(b, f.n); err != nil {
		return nil, linsolveErrorf("Generic.Solve", err)
	}
	rhs := mat.NewVecDense(f.n, append([]float64(nil), b...))
	var x mat.VecDense
	if err := f.lu.SolveVecTo(&x, false, rhs); err != nil {
		// mat.Condition: the factorization is too ill-conditioned to trust.
		return nil, linsolveErrorf("Generic.Solve", singular(-1, err))
	}
	out := make([]float64, f.n)
	for i := range out {
		out[i] = x.AtVec(i)
	}
	if err := checkResult(out); err != nil {
		return nil, linsolveErrorf("Generic.Solve", err)
	}

	return out, nil
}

// SPDX-License-Identifier: MIT

package matrix

import "math"

// LUFactor holds P·A = L·U for a square matrix, packed in one buffer:
// the strict lower triangle stores L (unit diagonal implied), the upper
// triangle stores U.
type LUFactor struct {
	n    int
	lu   []float64 // row-major packed factors
	perm []int     // perm[i] = original row now at position i
}

// Factorize computes the LU decomposition of m with partial pivoting.
//
// Implementation:
//   - Stage 1: validate non-nil, square, finite; copy into a packed buffer.
//   - Stage 2: Doolittle elimination column by column; at step k choose the
//     row with the largest |a_ik| (i ≥ k) and swap it into place.
//   - Stage 3: reject a pivot below pivotTol·‖A‖∞ with *PivotError.
//
// Inputs:
//   - m: square Matrix; *Dense is read through its backing buffer.
//   - opts: WithPivotTolerance.
//
// Returns:
//   - *LUFactor reusable for any number of right-hand sides.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrNaNInf (wrapped with "Factorize").
//   - *PivotError (errors.Is(err, ErrSingular)) for singular input.
//
// Complexity:
//   - Time O(n³), Space O(n²).
//
// AI-Hints:
//   - Factorize once and call Solve per right-hand side when the matrix is
//     fixed across iterations (fast-decoupled B′/B″).
func Factorize(m Matrix, opts ...LUOption) (*LUFactor, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return nil, matrixErrorf(opFactorize, err)
	}
	o := gatherLUOptions(opts...)
	n := m.Rows()

	a := make([]float64, n*n)
	if d, ok := m.(*Dense); ok {
		copy(a, d.data)
	} else {
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				v, err := m.At(i, j)
				if err != nil {
					return nil, matrixErrorf(opFactorize, err)
				}
				a[i*n+j] = v
			}
		}
	}
	if err := ValidateFinite(a); err != nil {
		return nil, matrixErrorf(opFactorize, err)
	}

	var norm float64
	for i := 0; i < n; i++ {
		var s float64
		for j := 0; j < n; j++ {
			s += math.Abs(a[i*n+j])
		}
		norm = math.Max(norm, s)
	}
	threshold := o.pivotTol * norm

	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}

	var i, j, k, p int
	var best, v, pivot, factor float64
	for k = 0; k < n; k++ {
		// Select pivot row.
		p, best = k, math.Abs(a[k*n+k])
		for i = k + 1; i < n; i++ {
			if v = math.Abs(a[i*n+k]); v > best {
				p, best = i, v
			}
		}
		if best == 0 || best <= threshold {
			return nil, matrixErrorf(opFactorize, &PivotError{Row: k, Pivot: best})
		}
		if p != k {
			for j = 0; j < n; j++ {
				a[k*n+j], a[p*n+j] = a[p*n+j], a[k*n+j]
			}
			perm[k], perm[p] = perm[p], perm[k]
		}

		// Eliminate below the pivot.
		pivot = a[k*n+k]
		for i = k + 1; i < n; i++ {
			factor = a[i*n+k] / pivot
			a[i*n+k] = factor
			if factor == 0 {
				continue
			}
			for j = k + 1; j < n; j++ {
				a[i*n+j] -= factor * a[k*n+j]
			}
		}
	}

	return &LUFactor{n: n, lu: a, perm: perm}, nil
}

// Order returns the dimension of the factorized matrix.
func (f *LUFactor) Order() int { return f.n }

// Solve returns x with A·x = b using forward and back substitution.
//
// Errors:
//   - ErrDimensionMismatch when len(b) != Order().
//   - ErrNaNInf when the solution is not finite.
//
// Complexity:
//   - Time O(n²), Space O(n).
func (f *LUFactor) Solve(b []float64) ([]float64, error) {
	if err := ValidateVecLen(b, f.n); err != nil {
		return nil, matrixErrorf(opSolve, err)
	}
	n := f.n
	x := make([]float64, n)
	for i := 0; i < n; i++ {
		x[i] = b[f.perm[i]]
	}
	// L·y = P·b
	for i := 1; i < n; i++ {
		sum := x[i]
		for k := 0; k < i; k++ {
			sum -= f.lu[i*n+k] * x[k]
		}
		x[i] = sum
	}
	// U·x = y
	for i := n - 1; i >= 0; i-- {
		sum := x[i]
		for k := i + 1; k < n; k++ {
			sum -= f.lu[i*n+k] * x[k]
		}
		x[i] = sum / f.lu[i*n+i]
	}
	if err := ValidateFinite(x); err != nil {
		return nil, matrixErrorf(opSolve, err)
	}

	return x, nil
}

// SPDX-License-Identifier: MIT

package powerflow

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/gridflow/matrix"
	"github.com/katalvlaran/gridflow/network"
)

// injections returns the complex power injected at every bus,
// S = V ∘ conj(Y·V).
func injections(y *matrix.Sparse[complex128], v []complex128) ([]complex128, error) {
	current, err := y.MulVec(v)
	if err != nil {
		return nil, err
	}
	s := make([]complex128, len(v))
	for i := range v {
		s[i] = v[i] * cmplx.Conj(current[i])
	}

	return s, nil
}

// mismatchNorm returns the largest absolute mismatch: ΔP at PV and PQ
// buses, ΔQ at PQ buses. A non-finite component yields NaN.
func mismatchNorm(st *State, calc []complex128) float64 {
	terms := make([]float64, 0, 2*len(calc))
	for i, r := range st.Role {
		if r == network.Slack {
			continue
		}
		terms = append(terms, math.Abs(real(calc[i])-st.Active[i]))
		if r == network.PQ {
			terms = append(terms, math.Abs(imag(calc[i])-st.Reactive[i]))
		}
	}
	if len(terms) == 0 {
		return 0
	}
	if floats.HasNaN(terms) {
		return math.NaN()
	}

	return floats.Max(terms)
}

// finiteState reports whether every magnitude and angle is finite and every
// magnitude stays within bound.
func finiteState(st *State, bound float64) bool {
	for i := range st.Magnitude {
		m, a := st.Magnitude[i], st.Angle[i]
		if math.IsNaN(m) || math.IsInf(m, 0) || math.IsNaN(a) || math.IsInf(a, 0) {
			return false
		}
		if math.Abs(m) > bound {
			return false
		}
	}

	return true
}

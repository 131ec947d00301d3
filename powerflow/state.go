// SPDX-License-Identifier: MIT

package powerflow

import (
	"math/cmplx"

	"github.com/katalvlaran/gridflow/network"
)

// State is the solve state passed into and returned from every Step.
// Slices are indexed by bus matrix index (ascending bus label).
type State struct {
	Magnitude    []float64
	Angle        []float64
	Role         []network.BusType // solve-time role; PV buses may become PQ
	Active       []float64         // specified net active injection
	Reactive     []float64         // specified net reactive injection (PQ buses)
	Reclassified []bool            // PV buses turned PQ at a reactive limit
	Mismatch     float64           // largest absolute power mismatch
	Iteration    int
}

// Clone returns a deep copy.
func (s State) Clone() State {
	return State{
		Magnitude:    append([]float64(nil), s.Magnitude...),
		Angle:        append([]float64(nil), s.Angle...),
		Role:         append([]network.BusType(nil), s.Role...),
		Active:       append([]float64(nil), s.Active...),
		Reactive:     append([]float64(nil), s.Reactive...),
		Reclassified: append([]bool(nil), s.Reclassified...),
		Mismatch:     s.Mismatch,
		Iteration:    s.Iteration,
	}
}

// Voltages returns the complex bus voltages.
func (s State) Voltages() []complex128 {
	v := make([]complex128, len(s.Magnitude))
	for i := range v {
		v[i] = cmplx.Rect(s.Magnitude[i], s.Angle[i])
	}

	return v
}

// ReclassifiedCount returns how many buses were reclassified PV→PQ.
func (s State) ReclassifiedCount() int {
	c := 0
	for _, r := range s.Reclassified {
		if r {
			c++
		}
	}

	return c
}

// partition splits bus indices into pv+pq (angle unknowns) and pq
// (magnitude unknowns), both ascending.
func partition(role []network.BusType) (pvpq, pq []int) {
	for i, r := range role {
		switch r {
		case network.PV:
			pvpq = append(pvpq, i)
		case network.PQ:
			pvpq = append(pvpq, i)
			pq = append(pq, i)
		}
	}

	return pvpq, pq
}

// SPDX-License-Identifier: MIT

package powerflow

import (
	"math"

	"github.com/katalvlaran/gridflow/linsolve"
	"github.com/katalvlaran/gridflow/matrix"
	"github.com/katalvlaran/gridflow/network"
)

// dcEngine solves B′θ = P − Gs − P_shift once; slack angles stay at 0.
type dcEngine struct {
	base
}

// Initial returns flat angles with the injection vector as mismatch.
func (e *dcEngine) Initial() (State, error) {
	st := e.start()
	for i := range st.Magnitude {
		st.Magnitude[i] = 1
	}
	res, err := e.residual(&st)
	if err != nil {
		return State{}, pfErrorf("DC.Initial", err)
	}
	st.Mismatch = res

	return st, nil
}

// Converged holds once the single direct solve has run.
func (e *dcEngine) Converged(s State) bool { return s.Iteration >= 1 }

// rhs returns the net active injection seen by the DC model.
func (e *dcEngine) rhs(st *State) []float64 {
	out := make([]float64, len(st.Active))
	for i := range out {
		out[i] = st.Active[i] - e.p.Shunt[i].Conductance - e.p.DC.ShiftInjection[i]
	}

	return out
}

// residual returns max |B′θ − P| over non-slack buses.
func (e *dcEngine) residual(st *State) (float64, error) {
	bt, err := e.p.DC.B.MulVec(st.Angle)
	if err != nil {
		return 0, err
	}
	p := e.rhs(st)
	var worst float64
	for i, r := range st.Role {
		if r == network.Slack {
			continue
		}
		d := math.Abs(bt[i] - p[i])
		if math.IsNaN(d) {
			return math.NaN(), nil
		}
		worst = math.Max(worst, d)
	}

	return worst, nil
}

// Step performs the direct solve.
//
// Errors:
//   - *linsolve.SingularMatrixError (matrix "B′") for a singular reduced
//     susceptance matrix.
func (e *dcEngine) Step(in State) (State, error) {
	st := in.Clone()
	st.Iteration = 1
	var free []int
	for i, r := range st.Role {
		st.Magnitude[i] = 1
		if r == network.Slack {
			st.Angle[i] = 0
			continue
		}
		free = append(free, i)
	}
	if len(free) > 0 {
		sub, err := matrix.Submatrix(e.p.DC.B, free, free)
		if err != nil {
			return State{}, pfErrorf("DC.Step", err)
		}
		p := e.rhs(&st)
		b := make([]float64, len(free))
		for k, i := range free {
			b[k] = p[i]
		}
		theta, err := e.solver.Solve(sub, b)
		if err != nil {
			return State{}, pfErrorf("DC.Step", linsolve.Annotate(err, "B′", st.Iteration))
		}
		for k, i := range free {
			st.Angle[i] = theta[k]
		}
	}
	res, err := e.residual(&st)
	if err != nil {
		return State{}, pfErrorf("DC.Step", err)
	}
	st.Mismatch = res

	return st, nil
}

// SPDX-License-Identifier: MIT

package powerflow

import (
	"math/cmplx"

	"github.com/katalvlaran/gridflow/linsolve"
	"github.com/katalvlaran/gridflow/network"
)

// gaussSeidel sweeps the buses in index order, each update seeing the
// voltages already refreshed in the same sweep.
type gaussSeidel struct {
	base
}

func (e *gaussSeidel) Initial() (State, error) { return e.initialAC() }

// Step performs one sweep:
//
//	V_i ← (1/Y_ii)·[(P_i − jQ_i)/conj(V_i) − Σ_{k≠i} Y_ik·V_k]
//
// PV buses use their computed reactive injection and are rescaled to the
// magnitude setpoint afterwards.
//
// Errors:
//   - *linsolve.SingularMatrixError (matrix "Y") when a non-slack bus has a
//     zero diagonal admittance.
func (e *gaussSeidel) Step(in State) (State, error) {
	st := in.Clone()
	st.Iteration++
	v := st.Voltages()
	y := e.p.AC.Y
	diag := y.Diag()
	for i, r := range st.Role {
		if r == network.Slack {
			continue
		}
		if diag[i] == 0 {
			return State{}, pfErrorf("GaussSeidel.Step", &linsolve.SingularMatrixError{
				Matrix: "Y", Row: i, Iteration: st.Iteration,
			})
		}
		var sum complex128
		y.Row(i, func(k int, yik complex128) bool {
			if k != i {
				sum += yik * v[k]
			}
			return true
		})
		q := st.Reactive[i]
		if r == network.PV {
			q = imag(v[i] * cmplx.Conj(sum+diag[i]*v[i]))
		}
		vi := (complex(st.Active[i], -q)/cmplx.Conj(v[i]) - sum) / diag[i]
		if r == network.PV {
			vi = cmplx.Rect(st.Magnitude[i], cmplx.Phase(vi))
		}
		v[i] = vi
	}
	for i := range v {
		st.Magnitude[i], st.Angle[i] = cmplx.Abs(v[i]), cmplx.Phase(v[i])
	}

	return e.finishAC(st)
}

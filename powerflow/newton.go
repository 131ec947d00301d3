// SPDX-License-Identifier: MIT

package powerflow

import (
	"math"

	"github.com/katalvlaran/gridflow/linsolve"
	"github.com/katalvlaran/gridflow/matrix"
	"github.com/katalvlaran/gridflow/network"
)

// newton is the polar Newton-Raphson method.
type newton struct {
	base
}

func (e *newton) Initial() (State, error) { return e.initialAC() }

// Step performs one Newton-Raphson iteration.
//
// Implementation:
//   - Stage 1: injections S = V∘conj(YV) at the current state.
//   - Stage 2: mismatch F = [ΔP(pv,pq); ΔQ(pq)] and Jacobian J.
//   - Stage 3: solve J·dx = F and update θ ← θ − dθ, V ← V − dV.
//   - Stage 4: reactive limits (optional) and the new mismatch.
//
// Errors:
//   - *linsolve.SingularMatrixError (matrix "jacobian") with the iteration.
//
// Complexity:
//   - Time O(nnz(Y) + n³) per iteration for n unknowns (dense solve).
func (e *newton) Step(in State) (State, error) {
	st := in.Clone()
	st.Iteration++
	v := st.Voltages()
	calc, err := injections(e.p.AC.Y, v)
	if err != nil {
		return State{}, pfErrorf("NewtonRaphson.Step", err)
	}
	pvpq, pq := partition(st.Role)
	nt, nv := len(pvpq), len(pq)
	if nt+nv > 0 {
		dx, err := e.correction(&st, calc, pvpq, pq)
		if err != nil {
			return State{}, err
		}
		for k, i := range pvpq {
			st.Angle[i] -= dx[k]
		}
		for k, i := range pq {
			st.Magnitude[i] -= dx[nt+k]
		}
	}

	return e.finishAC(st)
}

// correction assembles F and J and returns J⁻¹F.
func (e *newton) correction(st *State, calc []complex128, pvpq, pq []int) ([]float64, error) {
	nt, nv := len(pvpq), len(pq)
	dim := nt + nv
	colT := make(map[int]int, nt) // bus → angle column
	for k, i := range pvpq {
		colT[i] = k
	}
	colV := make(map[int]int, nv) // bus → magnitude column / ΔQ row
	for k, i := range pq {
		colV[i] = nt + k
	}

	f := make([]float64, dim)
	for k, i := range pvpq {
		f[k] = real(calc[i]) - st.Active[i]
	}
	for k, i := range pq {
		f[nt+k] = imag(calc[i]) - st.Reactive[i]
	}

	jac, err := matrix.NewDense(dim, dim)
	if err != nil {
		return nil, pfErrorf("NewtonRaphson.Step", err)
	}
	for _, i := range pvpq {
		vi, ti := st.Magnitude[i], st.Angle[i]
		pi, qi := real(calc[i]), imag(calc[i])
		rowP := colT[i]
		rowQ, hasQ := colV[i]
		e.p.AC.Y.Row(i, func(k int, y complex128) bool {
			g, b := real(y), imag(y)
			if k == i {
				_ = jac.AddAt(rowP, rowP, -qi-b*vi*vi)
				if hasQ {
					_ = jac.AddAt(rowP, rowQ, pi/vi+g*vi)
					_ = jac.AddAt(rowQ, rowP, pi-g*vi*vi)
					_ = jac.AddAt(rowQ, rowQ, qi/vi-b*vi)
				}
				return true
			}
			if st.Role[k] == network.Slack {
				return true
			}
			vk := st.Magnitude[k]
			sin, cos := math.Sincos(ti - st.Angle[k])
			colTk := colT[k]
			colVk, kIsPQ := colV[k]
			_ = jac.AddAt(rowP, colTk, vi*vk*(g*sin-b*cos))
			if kIsPQ {
				_ = jac.AddAt(rowP, colVk, vi*(g*cos+b*sin))
			}
			if hasQ {
				_ = jac.AddAt(rowQ, colTk, -vi*vk*(g*cos+b*sin))
				if kIsPQ {
					_ = jac.AddAt(rowQ, colVk, vi*(g*sin-b*cos))
				}
			}
			return true
		})
	}

	dx, err := e.solver.Solve(jac, f)
	if err != nil {
		return nil, pfErrorf("NewtonRaphson.Step", linsolve.Annotate(err, "jacobian", st.Iteration))
	}

	return dx, nil
}

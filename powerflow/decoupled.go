// SPDX-License-Identifier: MIT

package powerflow

import (
	"github.com/katalvlaran/gridflow/linsolve"
	"github.com/katalvlaran/gridflow/matrix"
)

// decoupled is the fast-decoupled method (XB or BX, chosen by the model).
// B′ and B″ are factorized on first use and reused until the set of PQ
// buses changes; only then is B″ factorized again.
type decoupled struct {
	base

	primed     bool
	keyP, keyQ string
	factorP    linsolve.Factor
	factorQ    linsolve.Factor
}

func (e *decoupled) Initial() (State, error) { return e.initialAC() }

// factors returns B′ and B″ factorizations for the given index sets.
func (e *decoupled) factors(pvpq, pq []int, iteration int) (linsolve.Factor, linsolve.Factor, error) {
	if k := indexKey(pvpq); !e.primed || k != e.keyP {
		f, err := e.factorize(e.p.Decoupled.BPrime, pvpq, "B′", iteration)
		if err != nil {
			return nil, nil, err
		}
		e.keyP, e.factorP = k, f
	}
	if k := indexKey(pq); !e.primed || k != e.keyQ {
		f, err := e.factorize(e.p.Decoupled.BDoublePrime, pq, "B″", iteration)
		if err != nil {
			return nil, nil, err
		}
		if e.primed {
			e.log.WithField("iteration", iteration).Debug("B″ refactorized after reclassification")
		}
		e.keyQ, e.factorQ = k, f
	}
	e.primed = true

	return e.factorP, e.factorQ, nil
}

func (e *decoupled) factorize(b *matrix.Sparse[float64], idx []int, name string, iteration int) (linsolve.Factor, error) {
	if len(idx) == 0 {
		return nil, nil
	}
	sub, err := matrix.Submatrix(b, idx, idx)
	if err != nil {
		return nil, pfErrorf("FastDecoupled.Step", err)
	}
	f, err := e.solver.Factorize(sub)
	if err != nil {
		return nil, pfErrorf("FastDecoupled.Step", linsolve.Annotate(err, name, iteration))
	}

	return f, nil
}

// Step performs one angle half-iteration and one magnitude half-iteration:
//
//	dθ = B′⁻¹·(ΔP/V) over PV and PQ buses
//	dV = B″⁻¹·(ΔQ/V) over PQ buses
//
// Errors:
//   - *linsolve.SingularMatrixError (matrix "B′" or "B″").
func (e *decoupled) Step(in State) (State, error) {
	st := in.Clone()
	st.Iteration++
	pvpq, pq := partition(st.Role)
	fp, fq, err := e.factors(pvpq, pq, st.Iteration)
	if err != nil {
		return State{}, err
	}

	if fp != nil {
		calc, err := injections(e.p.AC.Y, st.Voltages())
		if err != nil {
			return State{}, pfErrorf("FastDecoupled.Step", err)
		}
		rhs := make([]float64, len(pvpq))
		for k, i := range pvpq {
			rhs[k] = (real(calc[i]) - st.Active[i]) / st.Magnitude[i]
		}
		d, err := fp.Solve(rhs)
		if err != nil {
			return State{}, pfErrorf("FastDecoupled.Step", linsolve.Annotate(err, "B′", st.Iteration))
		}
		for k, i := range pvpq {
			st.Angle[i] -= d[k]
		}
	}
	if fq != nil {
		calc, err := injections(e.p.AC.Y, st.Voltages())
		if err != nil {
			return State{}, pfErrorf("FastDecoupled.Step", err)
		}
		rhs := make([]float64, len(pq))
		for k, i := range pq {
			rhs[k] = (imag(calc[i]) - st.Reactive[i]) / st.Magnitude[i]
		}
		d, err := fq.Solve(rhs)
		if err != nil {
			return State{}, pfErrorf("FastDecoupled.Step", linsolve.Annotate(err, "B″", st.Iteration))
		}
		for k, i := range pq {
			st.Magnitude[i] -= d[k]
		}
	}

	return e.finishAC(st)
}

func indexKey(idx []int) string {
	b := make([]byte, 0, 4*len(idx))
	for _, i := range idx {
		b = append(b, byte(i>>24), byte(i>>16), byte(i>>8), byte(i))
	}

	return string(b)
}

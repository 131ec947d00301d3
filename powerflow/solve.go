// SPDX-License-Identifier: MIT

package powerflow

import (
	"math"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/gridflow/network"
	"github.com/katalvlaran/gridflow/results"
)

// Solution is the outcome of one solve. AC is set for AC methods and DC for
// the DC method; both are nil when the solve did not converge.
type Solution struct {
	ID         uuid.UUID
	Method     Method
	Status     Status
	Iterations int
	State      State
	Problem    *Problem
	AC         *results.AC
	DC         *results.DC
}

// Converged reports whether Status is Converged.
func (s *Solution) Converged() bool { return s.Status == Converged }

// Solve runs a complete power flow on a snapshot of n.
//
// Implementation:
//   - Stage 1: validate options, snapshot, build or fetch admittance models.
//   - Stage 2: iterate Engine.Step until the mismatch drops below the
//     tolerance, the iteration cap is hit, or the state blows up.
//   - Stage 3: assemble results for a converged state.
//
// Returns:
//   - *Solution for every terminal status; non-convergence is a Status,
//     not an error, and carries the best state seen.
//
// Errors:
//   - *ConfigurationError, *network.TopologyError before any iteration.
//   - *linsolve.SingularMatrixError naming the iteration; no retry.
func Solve(n *network.Network, opts ...Option) (*Solution, error) {
	o, err := gatherOptions(opts...)
	if err != nil {
		return nil, err
	}
	p, err := newProblem(n, o)
	if err != nil {
		return nil, err
	}
	id := uuid.New()
	o.logger = o.logger.WithField("solve_id", id.String())
	eng, err := newEngine(p, o)
	if err != nil {
		return nil, err
	}

	return run(id, p, eng, o)
}

// Run iterates an existing engine from its initial state. It is the loop
// behind Solve, exposed for callers that build Problem and Engine
// themselves.
//
// The engine fixes method, tolerance, reactive limits, solver, slack policy
// and the initial state; Run starts from the engine's options and accepts
// only loop settings (WithMaxIterations, WithDivergenceBound, WithLogger).
//
// Errors:
//   - *ConfigurationError for an invalid loop setting or for any option the
//     engine already fixed.
func Run(p *Problem, eng Engine, opts ...Option) (*Solution, error) {
	o := defaultOptions()
	if c, ok := eng.(configured); ok {
		o = c.settings()
	}
	o.method = eng.Method()
	fixed := o
	for _, fn := range opts {
		fn(&o)
	}
	if err := o.validate(); err != nil {
		return nil, err
	}
	if field := engineSetting(fixed, o); field != "" {
		return nil, configErr(field, nil, "is fixed by NewEngine and cannot be changed by Run")
	}

	return run(uuid.New(), p, eng, o)
}

func run(id uuid.UUID, p *Problem, eng Engine, o options) (*Solution, error) {
	log := o.logger.WithFields(logrus.Fields{"solve_id": id.String(), "method": o.method.String()})
	sol := &Solution{ID: id, Method: o.method, Status: Initialized, Problem: p}

	st, err := eng.Initial()
	if err != nil {
		return nil, err
	}
	best := st
	sol.Status = Iterating
	for {
		if eng.Converged(st) {
			sol.Status = Converged
			best = st
			break
		}
		if diverged(&st, o.divergenceBound) {
			sol.Status = Diverged
			log.WithFields(logrus.Fields{"iteration": st.Iteration, "mismatch": st.Mismatch}).Warn("power flow diverged")
			break
		}
		if st.Iteration >= o.maxIterations {
			sol.Status = MaxIterationsExceeded
			break
		}
		next, err := eng.Step(st)
		if err != nil {
			log.WithField("iteration", st.Iteration+1).WithError(err).Error("power flow step failed")
			return nil, err
		}
		st = next
		log.WithFields(logrus.Fields{"iteration": st.Iteration, "mismatch": st.Mismatch}).Debug("iteration")
		if !math.IsNaN(st.Mismatch) && finiteState(&st, o.divergenceBound) &&
			(math.IsNaN(best.Mismatch) || st.Mismatch <= best.Mismatch) {
			best = st
		}
	}

	sol.Iterations = st.Iteration
	sol.State = best
	if sol.Status == Converged {
		if err := assemble(sol, p); err != nil {
			return nil, err
		}
	}
	log.WithFields(logrus.Fields{
		"status":       sol.Status.String(),
		"iteration":    sol.Iterations,
		"mismatch":     sol.State.Mismatch,
		"reclassified": sol.State.ReclassifiedCount(),
	}).Info("power flow finished")

	return sol, nil
}

func diverged(st *State, bound float64) bool {
	m := st.Mismatch
	if math.IsNaN(m) || math.IsInf(m, 0) || m > bound {
		return true
	}

	return !finiteState(st, bound)
}

func assemble(sol *Solution, p *Problem) error {
	st := sol.State
	var err error
	if sol.Method == DC {
		sol.DC, err = results.AssembleDC(p.Network, p.DC, st.Angle)
	} else {
		sol.AC, err = results.AssembleAC(p.Network, p.AC, st.Magnitude, st.Angle,
			results.WithReclassified(st.Reclassified, st.Reactive))
	}
	if err != nil {
		return pfErrorf("Solve", err)
	}

	return nil
}

// SPDX-License-Identifier: MIT

package powerflow

import (
	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/gridflow/linsolve"
	"github.com/katalvlaran/gridflow/network"
)

// Engine is one power-flow method. Engines are deterministic: the same
// State always produces the same next State.
type Engine interface {
	// Method identifies the algorithm.
	Method() Method
	// Initial returns the starting State with its mismatch evaluated.
	Initial() (State, error)
	// Step performs one iteration on a copy of s.
	Step(s State) (State, error)
	// Converged reports whether s satisfies the stopping rule.
	Converged(s State) bool
}

// NewEngine returns the Engine of method m for problem p.
//
// Errors:
//   - *ConfigurationError for invalid options, for a problem prepared for
//     another method, or for an initial state of the wrong size.
func NewEngine(p *Problem, m Method, opts ...Option) (Engine, error) {
	o, err := gatherOptions(append(opts, WithMethod(m))...)
	if err != nil {
		return nil, err
	}

	return newEngine(p, o)
}

func newEngine(p *Problem, o options) (Engine, error) {
	if p == nil {
		return nil, configErr("problem", nil, "must not be nil")
	}
	b := base{
		p:       p,
		o:       o,
		solver:  linsolve.New(o.strategy),
		log:     o.logger.WithField("method", o.method.String()),
		initial: o.initial,
	}
	if o.initial != nil {
		if err := checkInitial(o.initial, p.Size()); err != nil {
			return nil, err
		}
	}
	switch o.method {
	case NewtonRaphson:
		if p.AC == nil {
			return nil, configErr("problem", o.method, "no AC model prepared")
		}
		return &newton{base: b}, nil
	case GaussSeidel:
		if p.AC == nil {
			return nil, configErr("problem", o.method, "no AC model prepared")
		}
		return &gaussSeidel{base: b}, nil
	case FastDecoupledXB, FastDecoupledBX:
		if p.AC == nil || p.Decoupled == nil {
			return nil, configErr("problem", o.method, "no fast-decoupled model prepared")
		}
		return &decoupled{base: b}, nil
	case DC:
		if p.DC == nil {
			return nil, configErr("problem", o.method, "no DC model prepared")
		}
		return &dcEngine{base: b}, nil
	}

	return nil, configErr("method", o.method, "unknown method")
}

func checkInitial(s *State, n int) error {
	for _, l := range []int{len(s.Magnitude), len(s.Angle), len(s.Role), len(s.Active), len(s.Reactive), len(s.Reclassified)} {
		if l != n {
			return configErr("initial state", l, "length does not match the number of buses")
		}
	}

	return nil
}

// base carries what every engine shares.
type base struct {
	p       *Problem
	o       options
	solver  linsolve.Solver
	log     logrus.FieldLogger
	initial *State
}

// configured is implemented by engines built with NewEngine.
type configured interface {
	settings() options
}

func (b *base) Method() Method { return b.o.method }

func (b *base) settings() options { return b.o }

func (b *base) Converged(s State) bool { return s.Mismatch < b.o.tolerance }

// start returns the configured initial state, unevaluated.
//
// A supplied state contributes its voltages and reclassifications only.
// Roles and specified injections come from the problem, slack angles are
// reset to 0, and slack and PV magnitudes to their setpoints.
func (b *base) start() State {
	if b.initial == nil {
		return b.p.initialState(b.o.flatStart)
	}
	st := b.initial.Clone()
	st.Iteration = 0
	for i, r := range b.p.Role {
		st.Active[i] = b.p.Active[i]
		if r == network.PV && st.Reclassified[i] {
			st.Role[i] = network.PQ
			continue
		}
		st.Role[i] = r
		st.Reclassified[i] = false
		st.Reactive[i] = b.p.Reactive[i]
		if r == network.Slack {
			st.Angle[i] = 0
		}
		if r != network.PQ && b.p.Method != DC {
			st.Magnitude[i] = b.p.Setpoint[i]
		}
	}

	return st
}

// evaluateAC computes injections at st and stores the mismatch norm.
func (b *base) evaluateAC(st *State) ([]complex128, error) {
	calc, err := injections(b.p.AC.Y, st.Voltages())
	if err != nil {
		return nil, err
	}
	st.Mismatch = mismatchNorm(st, calc)

	return calc, nil
}

// initialAC is Initial for the AC engines.
func (b *base) initialAC() (State, error) {
	st := b.start()
	if _, err := b.evaluateAC(&st); err != nil {
		return State{}, pfErrorf("Initial", err)
	}

	return st, nil
}

// finishAC closes an AC iteration: reactive limits, then the new mismatch.
func (b *base) finishAC(st State) (State, error) {
	calc, err := b.evaluateAC(&st)
	if err != nil {
		return State{}, err
	}
	if b.o.reactiveLimits && b.enforceLimits(&st, calc) {
		st.Mismatch = mismatchNorm(&st, calc)
	}

	return st, nil
}

// enforceLimits clamps PV buses whose generator reactive output leaves
// [ΣMinReactive, ΣMaxReactive] and reclassifies them PQ. The change is
// one-way within a solve. Reports whether any bus changed.
func (b *base) enforceLimits(st *State, calc []complex128) bool {
	changed := false
	for i, r := range st.Role {
		if r != network.PV {
			continue
		}
		qg := imag(calc[i]) + b.p.Demand[i].Reactive
		var bound float64
		switch {
		case qg > b.p.MaxReactive[i]:
			bound = b.p.MaxReactive[i]
		case qg < b.p.MinReactive[i]:
			bound = b.p.MinReactive[i]
		default:
			continue
		}
		st.Role[i] = network.PQ
		st.Reclassified[i] = true
		st.Reactive[i] = bound - b.p.Demand[i].Reactive
		changed = true
		b.log.WithFields(logrus.Fields{
			"iteration": st.Iteration,
			"bus":       b.p.Layout.Labels[i],
			"reactive":  qg,
			"limit":     bound,
		}).Warn("reactive limit reached, bus reclassified PV to PQ")
	}

	return changed
}

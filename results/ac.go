// SPDX-License-Identifier: MIT

package results

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/katalvlaran/gridflow/admittance"
	"github.com/katalvlaran/gridflow/network"
)

// ErrStateLength is returned when a state vector does not match the model.
var ErrStateLength = errors.New("results: state length does not match the model")

// ErrStaleModel is returned when the model was built from another network
// version than the one being reported.
var ErrStaleModel = errors.New("results: model does not match the network version")

// Option tunes assembly.
type Option func(*options)

type options struct {
	reclassified []bool
	reactive     []float64
}

// WithReclassified marks buses whose PV role was dropped at a reactive
// limit; their generation reports the clamped reactive value
// reactive[i] + demand instead of the computed one.
func WithReclassified(mask []bool, reactive []float64) Option {
	return func(o *options) { o.reclassified, o.reactive = mask, reactive }
}

// AssembleAC computes bus, branch and generator results from a solved AC
// state. It is a pure function of its inputs.
//
// Implementation:
//   - Stage 1: V from magnitude/angle; injections S = V∘conj(YV).
//   - Stage 2: per branch If = Yff·Vf + Yft·Vt, It = Ytf·Vf + Ytt·Vt,
//     Sf = Vf·conj(If), St = Vt·conj(It), loss = Sf + St.
//   - Stage 3: split bus generation among in-service generators.
//
// Errors:
//   - ErrStaleModel, ErrStateLength.
func AssembleAC(n *network.Network, ac *admittance.ACModel, magnitude, angle []float64, opts ...Option) (*AC, error) {
	if !ac.Fresh(n) {
		return nil, ErrStaleModel
	}
	nb := len(ac.Labels)
	if len(magnitude) != nb || len(angle) != nb {
		return nil, fmt.Errorf("AssembleAC: %w", ErrStateLength)
	}
	var o options
	for _, fn := range opts {
		fn(&o)
	}
	if o.reclassified != nil && (len(o.reclassified) != nb || len(o.reactive) != nb) {
		return nil, fmt.Errorf("AssembleAC: reclassification: %w", ErrStateLength)
	}

	v := make([]complex128, nb)
	for i := range v {
		v[i] = cmplx.Rect(magnitude[i], angle[i])
	}
	current, err := ac.Y.MulVec(v)
	if err != nil {
		return nil, fmt.Errorf("AssembleAC: %w", err)
	}

	out := &AC{Buses: make([]Bus, nb)}
	for i, b := range n.Buses() {
		s := v[i] * cmplx.Conj(current[i])
		m2 := magnitude[i] * magnitude[i]
		gen := network.Power{Active: real(s) + b.Demand.Active, Reactive: imag(s) + b.Demand.Reactive}
		if o.reclassified != nil && o.reclassified[i] {
			gen.Reactive = o.reactive[i] + b.Demand.Reactive
		}
		out.Buses[i] = Bus{
			Label:      b.Label,
			Magnitude:  magnitude[i],
			Angle:      angle[i],
			Injection:  network.Power{Active: real(s), Reactive: imag(s)},
			Generation: gen,
			Demand:     b.Demand,
			Shunt:      network.Power{Active: m2 * b.Shunt.Conductance, Reactive: -m2 * b.Shunt.Susceptance},
			Violation:  magnitude[i] < b.Voltage.MinMagnitude || magnitude[i] > b.Voltage.MaxMagnitude,
		}
	}

	branches := n.Branches()
	out.Branches = make([]Branch, len(branches))
	for k, br := range branches {
		r := Branch{Label: br.Label, InService: ac.InService[k]}
		if r.InService {
			f, t := ac.From[k], ac.To[k]
			iF := ac.FromFrom[k]*v[f] + ac.FromTo[k]*v[t]
			iT := ac.ToFrom[k]*v[f] + ac.ToTo[k]*v[t]
			sF := v[f] * cmplx.Conj(iF)
			sT := v[t] * cmplx.Conj(iT)
			tau := br.Parameter.Tap()
			r.From = network.Power{Active: real(sF), Reactive: imag(sF)}
			r.To = network.Power{Active: real(sT), Reactive: imag(sT)}
			r.Loss = network.Power{Active: real(sF + sT), Reactive: imag(sF + sT)}
			r.Charging = ac.Charging[k] / 2 * (magnitude[f]*magnitude[f]/(tau*tau) + magnitude[t]*magnitude[t])
			r.FromCurrent = Current{Magnitude: cmplx.Abs(iF), Angle: cmplx.Phase(iF)}
			r.ToCurrent = Current{Magnitude: cmplx.Abs(iT), Angle: cmplx.Phase(iT)}
			if lim := br.Rating.LongTerm; lim > 0 {
				r.Overloaded = math.Max(cmplx.Abs(sF), cmplx.Abs(sT)) > lim
			}
			out.Loss.Active += r.Loss.Active
			out.Loss.Reactive += r.Loss.Reactive
		}
		out.Branches[k] = r
	}

	out.Generators = splitGeneration(n, ac.Index, out.Buses)

	return out, nil
}

// splitGeneration attributes bus generation to generators.
//
// Active power: every in-service generator keeps its output, except that
// the bus imbalance (slack pickup) goes to the lowest-label in-service
// generator of the bus. Reactive power: Qmin_g + (Q − ΣQmin)·range_g/Σrange
// when every limit is finite and the ranges sum to a positive value,
// otherwise an equal split. Out-of-service generators report zero.
func splitGeneration(n *network.Network, index map[int]int, buses []Bus) []Generator {
	gens := n.Generators()
	out := make([]Generator, len(gens))
	byBus := make(map[int][]int)
	for k, g := range gens {
		out[k] = Generator{Label: g.Label, Bus: g.Bus}
		if g.Status == network.InService {
			byBus[g.Bus] = append(byBus[g.Bus], k)
		}
	}
	for bus, ks := range byBus {
		total := buses[index[bus]].Generation
		var scheduled, qmin, span float64
		bounded := true
		for _, k := range ks {
			c := gens[k].Capability
			scheduled += gens[k].Output.Active
			qmin += c.MinReactive
			span += c.MaxReactive - c.MinReactive
			if math.IsInf(c.MinReactive, 0) || math.IsInf(c.MaxReactive, 0) {
				bounded = false
			}
		}
		for j, k := range ks {
			p := gens[k].Output.Active
			if j == 0 {
				p += total.Active - scheduled
			}
			var q float64
			if bounded && span > 0 {
				c := gens[k].Capability
				q = c.MinReactive + (total.Reactive-qmin)*(c.MaxReactive-c.MinReactive)/span
			} else {
				q = total.Reactive / float64(len(ks))
			}
			out[k].Output = network.Power{Active: p, Reactive: q}
		}
	}

	return out
}

// SPDX-License-Identifier: MIT

package results

import (
	"fmt"
	"math"

	"github.com/katalvlaran/gridflow/admittance"
	"github.com/katalvlaran/gridflow/network"
)

// AssembleDC computes DC bus injections, branch flows and generator outputs
// from solved angles:
//
//	P_inj = B′θ + Gs + P_shift,   Pf = b·(θf − θt − φ),   Pt = −Pf
//
// Errors:
//   - ErrStaleModel, ErrStateLength.
func AssembleDC(n *network.Network, dc *admittance.DCModel, angle []float64) (*DC, error) {
	if !dc.Fresh(n) {
		return nil, ErrStaleModel
	}
	nb := len(dc.Labels)
	if len(angle) != nb {
		return nil, fmt.Errorf("AssembleDC: %w", ErrStateLength)
	}
	bt, err := dc.B.MulVec(angle)
	if err != nil {
		return nil, fmt.Errorf("AssembleDC: %w", err)
	}

	out := &DC{Buses: make([]DCBus, nb)}
	gen := make([]Bus, nb) // generation in the shape splitGeneration expects
	for i, b := range n.Buses() {
		inj := bt[i] + b.Shunt.Conductance + dc.ShiftInjection[i]
		out.Buses[i] = DCBus{
			Label:      b.Label,
			Angle:      angle[i],
			Injection:  inj,
			Generation: inj + b.Demand.Active,
			Demand:     b.Demand.Active,
		}
		gen[i].Generation = network.Power{Active: inj + b.Demand.Active}
	}

	branches := n.Branches()
	out.Branches = make([]DCBranch, len(branches))
	for k, br := range branches {
		r := DCBranch{Label: br.Label, InService: dc.InService[k]}
		if r.InService {
			f, t := dc.From[k], dc.To[k]
			r.From = dc.Admittance[k] * (angle[f] - angle[t] - dc.Shift[k])
			r.To = -r.From
			if lim := br.Rating.LongTerm; lim > 0 {
				r.Overloaded = math.Abs(r.From) > lim
			}
		}
		out.Branches[k] = r
	}

	gens := splitGeneration(n, dc.Index, gen)
	for k := range gens {
		gens[k].Output.Reactive = 0
	}
	out.Generators = gens

	return out, nil
}

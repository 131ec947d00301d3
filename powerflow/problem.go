// SPDX-License-Identifier: MIT

package powerflow

import (
	"math"

	"github.com/katalvlaran/gridflow/admittance"
	"github.com/katalvlaran/gridflow/network"
	"github.com/katalvlaran/gridflow/topology"
)

// Problem is the immutable input of one solve: a network snapshot, the
// admittance models the chosen method needs, and per-bus specified values.
type Problem struct {
	Method    Method
	Network   *network.Network // snapshot; never mutated
	Layout    *admittance.Layout
	AC        *admittance.ACModel        // AC methods
	DC        *admittance.DCModel        // DC method
	Decoupled *admittance.DecoupledModel // fast-decoupled methods

	Role        []network.BusType
	Active      []float64 // Σ in-service generation − demand
	Reactive    []float64
	Demand      []network.Power
	Shunt       []network.Shunt
	Setpoint    []float64 // magnitude setpoint of PV and slack buses
	MinReactive []float64 // Σ in-service generator limits
	MaxReactive []float64
	Magnitude   []float64 // bus initial values
	Angle       []float64
}

// Size returns the number of buses.
func (p *Problem) Size() int { return len(p.Role) }

// NewProblem snapshots n and prepares everything method m needs.
//
// Errors:
//   - *ConfigurationError for invalid options.
//   - *network.TopologyError, network.ErrInvalidParameter from the
//     admittance builders.
func NewProblem(n *network.Network, m Method, opts ...Option) (*Problem, error) {
	o, err := gatherOptions(append(opts, WithMethod(m))...)
	if err != nil {
		return nil, err
	}

	return newProblem(n, o)
}

func newProblem(n *network.Network, o options) (*Problem, error) {
	snap := n.Snapshot()
	cache := o.cache
	if cache == nil {
		cache = admittance.NewCache(admittance.WithSlackPolicy(o.slackPolicy))
	}
	p := &Problem{Method: o.method, Network: snap}
	var err error
	switch o.method {
	case DC:
		if p.DC, err = cache.DC(snap); err != nil {
			return nil, pfErrorf("NewProblem", err)
		}
		p.Layout = &p.DC.Layout
	default:
		if p.AC, err = cache.AC(snap); err != nil {
			return nil, pfErrorf("NewProblem", err)
		}
		p.Layout = &p.AC.Layout
		switch o.method {
		case FastDecoupledXB:
			p.Decoupled, err = cache.FastDecoupled(snap, admittance.XB)
		case FastDecoupledBX:
			p.Decoupled, err = cache.FastDecoupled(snap, admittance.BX)
		}
		if err != nil {
			return nil, pfErrorf("NewProblem", err)
		}
	}
	p.fill(snap)

	return p, nil
}

// fill derives the per-bus specified values.
func (p *Problem) fill(snap *network.Network) {
	nb := len(p.Layout.Labels)
	p.Role = make([]network.BusType, nb)
	p.Active = make([]float64, nb)
	p.Reactive = make([]float64, nb)
	p.Demand = make([]network.Power, nb)
	p.Shunt = make([]network.Shunt, nb)
	p.Setpoint = make([]float64, nb)
	p.MinReactive = make([]float64, nb)
	p.MaxReactive = make([]float64, nb)
	p.Magnitude = make([]float64, nb)
	p.Angle = make([]float64, nb)

	roles := topology.Roles(snap, p.Layout.Islands)
	for i, b := range snap.Buses() {
		p.Demand[i] = b.Demand
		p.Shunt[i] = b.Shunt
		p.Active[i] = -b.Demand.Active
		p.Reactive[i] = -b.Demand.Reactive
		p.Magnitude[i] = b.Voltage.Magnitude
		p.Angle[i] = b.Voltage.Angle
		p.Setpoint[i] = b.Voltage.Magnitude
		p.Role[i] = roles[b.Label]
		if p.Role[i] == network.PV {
			// PV needs an in-service generator; set again below.
			p.Role[i] = network.PQ
		}
	}
	// Generators come label-ascending, so the first in-service generator of
	// a bus owns its setpoint.
	owned := make([]bool, nb)
	for _, g := range snap.Generators() {
		if g.Status != network.InService {
			continue
		}
		i := p.Layout.Index[g.Bus]
		p.Active[i] += g.Output.Active
		p.Reactive[i] += g.Output.Reactive
		p.MinReactive[i] += g.Capability.MinReactive
		p.MaxReactive[i] += g.Capability.MaxReactive
		if !owned[i] {
			owned[i] = true
			p.Setpoint[i] = g.Magnitude
			if roles[g.Bus] == network.PV {
				p.Role[i] = network.PV
			}
		}
	}
	for i := range owned {
		if !owned[i] {
			p.MinReactive[i], p.MaxReactive[i] = math.Inf(-1), math.Inf(1)
		}
	}
}

// initialState builds the starting State of a solve.
func (p *Problem) initialState(flat bool) State {
	nb := p.Size()
	s := State{
		Magnitude:    make([]float64, nb),
		Angle:        make([]float64, nb),
		Role:         append([]network.BusType(nil), p.Role...),
		Active:       append([]float64(nil), p.Active...),
		Reactive:     append([]float64(nil), p.Reactive...),
		Reclassified: make([]bool, nb),
	}
	for i := 0; i < nb; i++ {
		switch {
		case p.Method == DC:
			s.Magnitude[i] = 1
		case p.Role[i] != network.PQ:
			s.Magnitude[i] = p.Setpoint[i]
		case flat:
			s.Magnitude[i] = 1
		default:
			s.Magnitude[i] = p.Magnitude[i]
		}
		if !flat && p.Role[i] != network.Slack && p.Method != DC {
			s.Angle[i] = p.Angle[i]
		}
	}

	return s
}

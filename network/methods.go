// SPDX-License-Identifier: MIT

// Package network: mutating operations.
//
// Every successful mutation draws exactly one new version token.
// Failed mutations leave both the model and the token untouched.
package network

import (
	"math"
	"sort"
)

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}

	return true
}

// AddBus inserts a bus with the given label.
// Defaults: type PQ, magnitude 1.0, limits [0.9, 1.1], area 1, loss zone 1.
//
// Returns *TopologyError{DuplicateLabel} when the label exists and
// ErrInvalidParameter for non-finite demand, shunt or voltage values.
// Complexity: O(B) for B buses (ordered index maintenance).
func (n *Network) AddBus(label int, opts ...BusOption) error {
	b := &Bus{
		Label:    label,
		Type:     PQ,
		Area:     1,
		LossZone: 1,
		Voltage:  Voltage{Magnitude: 1, MinMagnitude: 0.9, MaxMagnitude: 1.1},
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.Type != PQ && b.Type != PV && b.Type != Slack {
		return networkErrorf("AddBus", ErrInvalidParameter)
	}
	if !finite(b.Demand.Active, b.Demand.Reactive, b.Shunt.Conductance, b.Shunt.Susceptance,
		b.Voltage.Magnitude, b.Voltage.Angle) {
		return networkErrorf("AddBus", ErrInvalidParameter)
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	if _, exists := n.buses[label]; exists {
		return networkErrorf("AddBus", topologyErrorf(DuplicateLabel, label, "bus"))
	}
	n.buses[label] = b
	pos := sort.SearchInts(n.busOrder, label)
	n.busOrder = append(n.busOrder, 0)
	copy(n.busOrder[pos+1:], n.busOrder[pos:])
	n.busOrder[pos] = label
	n.bump()

	return nil
}

// AddBranch inserts a branch between two existing buses.
// Defaults: in service, angle limits ±2π, turns ratio 0 (untransformed).
//
// Errors:
//   - *TopologyError: DuplicateLabel, SelfLoop, DanglingReference.
//   - ErrInvalidParameter: zero series impedance or non-finite parameters.
//
// Complexity: O(1).
func (n *Network) AddBranch(label, from, to int, opts ...BranchOption) error {
	br := &Branch{
		Label:  label,
		From:   from,
		To:     to,
		Status: InService,
		Angle:  AngleLimit{Min: -2 * math.Pi, Max: 2 * math.Pi},
	}
	for _, opt := range opts {
		opt(br)
	}
	if br.From == br.To {
		return networkErrorf("AddBranch", topologyErrorf(SelfLoop, label, "branch %d-%d", br.From, br.To))
	}
	if err := checkParameter(br.Parameter); err != nil {
		return networkErrorf("AddBranch", err)
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	if _, exists := n.branches[label]; exists {
		return networkErrorf("AddBranch", topologyErrorf(DuplicateLabel, label, "branch"))
	}
	for _, end := range []int{br.From, br.To} {
		if _, ok := n.buses[end]; !ok {
			return networkErrorf("AddBranch", topologyErrorf(DanglingReference, label, "branch references bus %d", end))
		}
	}
	n.branches[label] = br
	n.bump()

	return nil
}

func checkParameter(p Parameter) error {
	if !finite(p.Resistance, p.Reactance, p.Susceptance, p.TurnsRatio, p.ShiftAngle) {
		return ErrInvalidParameter
	}
	if p.Resistance == 0 && p.Reactance == 0 {
		return ErrInvalidParameter
	}
	if p.TurnsRatio < 0 {
		return ErrInvalidParameter
	}

	return nil
}

// AddGenerator attaches a generator to an existing bus.
// Defaults: in service, MaxActive +Inf, reactive limits ±Inf, setpoint 1.0,
// polynomial cost models. An in-service generator turns a PQ bus into PV.
//
// Errors: *TopologyError (DuplicateLabel, DanglingReference), ErrInvalidParameter.
func (n *Network) AddGenerator(label, bus int, opts ...GeneratorOption) error {
	g := &Generator{
		Label:     label,
		Bus:       bus,
		Status:    InService,
		Magnitude: 1,
		Capability: Capability{
			MaxActive:   math.Inf(1),
			MinReactive: math.Inf(-1),
			MaxReactive: math.Inf(1),
		},
		Cost: Cost{ActiveModel: Polynomial, ReactiveModel: Polynomial},
	}
	for _, opt := range opts {
		opt(g)
	}
	if !finite(g.Output.Active, g.Output.Reactive, g.Magnitude) || g.Magnitude <= 0 {
		return networkErrorf("AddGenerator", ErrInvalidParameter)
	}
	if g.Capability.MinReactive > g.Capability.MaxReactive || g.Capability.MinActive > g.Capability.MaxActive {
		return networkErrorf("AddGenerator", ErrInvalidParameter)
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	if _, exists := n.generators[label]; exists {
		return networkErrorf("AddGenerator", topologyErrorf(DuplicateLabel, label, "generator"))
	}
	if _, ok := n.buses[bus]; !ok {
		return networkErrorf("AddGenerator", topologyErrorf(DanglingReference, label, "generator references bus %d", bus))
	}
	n.generators[label] = g
	n.refreshType(bus)
	n.bump()

	return nil
}

// refreshType re-derives the PQ/PV type of a non-slack bus from its
// in-service generators. Caller holds the write lock.
func (n *Network) refreshType(label int) {
	b := n.buses[label]
	if b == nil || b.Type == Slack {
		return
	}
	b.Type = PQ
	for _, g := range n.generators {
		if g.Bus == label && g.Status == InService {
			b.Type = PV
			return
		}
	}
}

// SetSlack designates the bus as a manual slack. Other slack buses are left
// as they are; ambiguity is reported when islands are resolved.
func (n *Network) SetSlack(label int) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	b, ok := n.buses[label]
	if !ok {
		return networkErrorf("SetSlack", ErrBusNotFound)
	}
	b.Type = Slack
	n.bump()

	return nil
}

// DemoteSlack turns a slack bus back into PV or PQ depending on its
// in-service generators. No-op (no version bump) for non-slack buses.
func (n *Network) DemoteSlack(label int) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	b, ok := n.buses[label]
	if !ok {
		return networkErrorf("DemoteSlack", ErrBusNotFound)
	}
	if b.Type != Slack {
		return nil
	}
	b.Type = PQ
	n.refreshType(label)
	n.bump()

	return nil
}

// ShuntBus replaces the shunt admittance of a bus.
func (n *Network) ShuntBus(label int, conductance, susceptance float64) error {
	if !finite(conductance, susceptance) {
		return networkErrorf("ShuntBus", ErrInvalidParameter)
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	b, ok := n.buses[label]
	if !ok {
		return networkErrorf("ShuntBus", ErrBusNotFound)
	}
	b.Shunt = Shunt{Conductance: conductance, Susceptance: susceptance}
	n.bump()

	return nil
}

// SetDemand replaces the demand of a bus.
func (n *Network) SetDemand(label int, active, reactive float64) error {
	if !finite(active, reactive) {
		return networkErrorf("SetDemand", ErrInvalidParameter)
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	b, ok := n.buses[label]
	if !ok {
		return networkErrorf("SetDemand", ErrBusNotFound)
	}
	b.Demand = Power{Active: active, Reactive: reactive}
	n.bump()

	return nil
}

// StatusBranch switches a branch in or out of service.
func (n *Network) StatusBranch(label int, s Status) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	br, ok := n.branches[label]
	if !ok {
		return networkErrorf("StatusBranch", ErrBranchNotFound)
	}
	br.Status = s
	n.bump()

	return nil
}

// ParameterBranch applies opts to the branch and keeps only the resulting
// electrical parameters; labels, endpoints, status and ratings are not
// changed through this call.
func (n *Network) ParameterBranch(label int, opts ...BranchOption) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	br, ok := n.branches[label]
	if !ok {
		return networkErrorf("ParameterBranch", ErrBranchNotFound)
	}
	tmp := *br
	for _, opt := range opts {
		opt(&tmp)
	}
	if err := checkParameter(tmp.Parameter); err != nil {
		return networkErrorf("ParameterBranch", err)
	}
	br.Parameter = tmp.Parameter
	n.bump()

	return nil
}

// StatusGenerator switches a generator in or out of service and updates the
// PQ/PV type of its bus.
func (n *Network) StatusGenerator(label int, s Status) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	g, ok := n.generators[label]
	if !ok {
		return networkErrorf("StatusGenerator", ErrGeneratorNotFound)
	}
	g.Status = s
	n.refreshType(g.Bus)
	n.bump()

	return nil
}

// OutputGenerator replaces the active and reactive output of a generator.
func (n *Network) OutputGenerator(label int, active, reactive float64) error {
	if !finite(active, reactive) {
		return networkErrorf("OutputGenerator", ErrInvalidParameter)
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	g, ok := n.generators[label]
	if !ok {
		return networkErrorf("OutputGenerator", ErrGeneratorNotFound)
	}
	g.Output = Power{Active: active, Reactive: reactive}
	n.bump()

	return nil
}

// SPDX-License-Identifier: MIT

package network

import "sort"

// Bus returns a copy of the bus with the given label.
func (n *Network) Bus(label int) (Bus, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	b, ok := n.buses[label]
	if !ok {
		return Bus{}, networkErrorf("Bus", ErrBusNotFound)
	}

	return *b, nil
}

// Branch returns a copy of the branch with the given label.
func (n *Network) Branch(label int) (Branch, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	br, ok := n.branches[label]
	if !ok {
		return Branch{}, networkErrorf("Branch", ErrBranchNotFound)
	}

	return *br, nil
}

// Generator returns a copy of the generator with the given label.
func (n *Network) Generator(label int) (Generator, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	g, ok := n.generators[label]
	if !ok {
		return Generator{}, networkErrorf("Generator", ErrGeneratorNotFound)
	}

	return cloneGenerator(g), nil
}

// Buses returns copies of all buses in ascending label order.
// Complexity: O(B).
func (n *Network) Buses() []Bus {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]Bus, 0, len(n.busOrder))
	for _, label := range n.busOrder {
		out = append(out, *n.buses[label])
	}

	return out
}

// Branches returns copies of all branches in ascending label order.
// Complexity: O(L log L).
func (n *Network) Branches() []Branch {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]Branch, 0, len(n.branches))
	for _, br := range n.branches {
		out = append(out, *br)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })

	return out
}

// Generators returns copies of all generators in ascending label order.
// Complexity: O(G log G).
func (n *Network) Generators() []Generator {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]Generator, 0, len(n.generators))
	for _, g := range n.generators {
		out = append(out, cloneGenerator(g))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })

	return out
}

// GeneratorsAt returns the generators attached to a bus, label-ascending,
// regardless of status.
func (n *Network) GeneratorsAt(bus int) []Generator {
	n.mu.RLock()
	defer n.mu.RUnlock()
	var out []Generator
	for _, g := range n.generators {
		if g.Bus == bus {
			out = append(out, cloneGenerator(g))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })

	return out
}

// BusLabels returns bus labels in index order (ascending).
func (n *Network) BusLabels() []int {
	n.mu.RLock()
	defer n.mu.RUnlock()

	return append([]int(nil), n.busOrder...)
}

// BusIndex maps a bus label to its zero-based matrix index.
// Complexity: O(log B).
func (n *Network) BusIndex(label int) (int, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	i := sort.SearchInts(n.busOrder, label)
	if i < len(n.busOrder) && n.busOrder[i] == label {
		return i, true
	}

	return 0, false
}

// BasePower returns the system base power in volt-amperes.
func (n *Network) BasePower() float64 {
	n.mu.RLock()
	defer n.mu.RUnlock()

	return n.basePower
}

// Version returns the current version token.
func (n *Network) Version() uint64 {
	n.mu.RLock()
	defer n.mu.RUnlock()

	return n.version
}

// Lineage identifies a network and every snapshot taken from it. Together
// with Version it keys derived artifacts.
func (n *Network) Lineage() uint64 {
	n.mu.RLock()
	defer n.mu.RUnlock()

	return n.lineage
}

// Counts returns the number of buses, branches and generators.
func (n *Network) Counts() (buses, branches, generators int) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	return len(n.buses), len(n.branches), len(n.generators)
}

// Validate re-checks referential integrity and branch parameters, reporting
// the first defect in label order. The add operations already enforce these
// rules; Validate guards models assembled through Snapshot round-trips.
func (n *Network) Validate() error {
	for _, br := range n.Branches() {
		if br.From == br.To {
			return networkErrorf("Validate", topologyErrorf(SelfLoop, br.Label, "branch %d-%d", br.From, br.To))
		}
		for _, end := range []int{br.From, br.To} {
			if _, ok := n.BusIndex(end); !ok {
				return networkErrorf("Validate", topologyErrorf(DanglingReference, br.Label, "branch references bus %d", end))
			}
		}
		if err := checkParameter(br.Parameter); err != nil {
			return networkErrorf("Validate", err)
		}
	}
	for _, g := range n.Generators() {
		if _, ok := n.BusIndex(g.Bus); !ok {
			return networkErrorf("Validate", topologyErrorf(DanglingReference, g.Label, "generator references bus %d", g.Bus))
		}
	}

	return nil
}

// Snapshot returns an independent deep copy carrying the same version token.
// The first mutation of either copy moves it to a token no other network holds.
// Complexity: O(B + L + G).
func (n *Network) Snapshot() *Network {
	n.mu.RLock()
	defer n.mu.RUnlock()
	cp := &Network{
		basePower:  n.basePower,
		version:    n.version,
		lineage:    n.lineage,
		buses:      make(map[int]*Bus, len(n.buses)),
		branches:   make(map[int]*Branch, len(n.branches)),
		generators: make(map[int]*Generator, len(n.generators)),
		busOrder:   append([]int(nil), n.busOrder...),
	}
	for k, b := range n.buses {
		nb := *b
		cp.buses[k] = &nb
	}
	for k, br := range n.branches {
		nbr := *br
		cp.branches[k] = &nbr
	}
	for k, g := range n.generators {
		ng := cloneGenerator(g)
		cp.generators[k] = &ng
	}

	return cp
}

func cloneGenerator(g *Generator) Generator {
	out := *g
	out.Cost.Active = append([]float64(nil), g.Cost.Active...)
	out.Cost.Reactive = append([]float64(nil), g.Cost.Reactive...)

	return out
}

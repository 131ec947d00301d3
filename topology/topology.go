// SPDX-License-Identifier: MIT

package topology

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/katalvlaran/gridflow/network"
)

// ErrUnknownPolicy is returned by ParsePolicy for an unrecognized keyword.
var ErrUnknownPolicy = errors.New("topology: unknown slack policy")

// Policy decides what happens to an island without a manual slack bus.
type Policy int

const (
	// Manual requires every island to carry exactly one slack bus.
	Manual Policy = iota
	// Auto promotes the strongest PV bus of a slack-less island.
	Auto
)

// String returns "manual" or "auto".
func (p Policy) String() string {
	switch p {
	case Manual:
		return "manual"
	case Auto:
		return "auto"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy maps "manual" / "auto" (case-insensitive) to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "manual", "":
		return Manual, nil
	case "auto":
		return Auto, nil
	default:
		return Manual, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
	}
}

// Island is one connected component over in-service branches.
type Island struct {
	Buses    []int // bus labels, ascending
	Slack    int   // label of the reference bus
	Promoted bool  // Slack was chosen by the Auto policy
}

// Islands returns the connected components of the network over in-service
// branches. Each component lists bus labels in ascending order; components
// are ordered by their lowest label. A bus without in-service branches forms
// its own island.
//
// Implementation:
//   - Stage 1: build an adjacency list keyed by bus index.
//   - Stage 2: BFS from each unseen bus in label order.
//
// Complexity:
//   - Time O(B + L), Memory O(B + L).
func Islands(n *network.Network) [][]int {
	labels := n.BusLabels()
	index := make(map[int]int, len(labels))
	for i, l := range labels {
		index[l] = i
	}
	adj := make([][]int, len(labels))
	for _, br := range n.Branches() {
		if br.Status != network.InService {
			continue
		}
		f, okF := index[br.From]
		t, okT := index[br.To]
		if !okF || !okT {
			continue
		}
		adj[f] = append(adj[f], t)
		adj[t] = append(adj[t], f)
	}

	seen := make([]bool, len(labels))
	var comps [][]int
	for i0 := range labels {
		if seen[i0] {
			continue
		}
		queue := []int{i0}
		seen[i0] = true
		var comp []int
		for qi := 0; qi < len(queue); qi++ {
			u := queue[qi]
			comp = append(comp, labels[u])
			for _, v := range adj[u] {
				if !seen[v] {
					seen[v] = true
					queue = append(queue, v)
				}
			}
		}
		sort.Ints(comp)
		comps = append(comps, comp)
	}

	return comps
}

// Resolve assigns exactly one slack bus to every island.
//
// Rules:
//   - A bus of type network.Slack is a manual slack and always wins.
//   - Two manual slacks in one island: *network.TopologyError{AmbiguousSlack}.
//   - No manual slack, Manual policy: *network.TopologyError{MissingSlack}.
//   - No manual slack, Auto policy: promote the PV bus whose in-service
//     generators carry the largest summed MaxActive (+Inf counts as the
//     largest); ties go to the lowest label. Without a PV bus the island
//     reports MissingSlack.
//
// Resolve never mutates the network. Errors are reported for the island
// with the lowest bus label first.
func Resolve(n *network.Network, policy Policy) ([]Island, error) {
	types := make(map[int]network.BusType)
	for _, b := range n.Buses() {
		types[b.Label] = b.Type
	}
	capacity := make(map[int]float64)
	for _, g := range n.Generators() {
		if g.Status == network.InService {
			capacity[g.Bus] += g.Capability.MaxActive
		}
	}

	comps := Islands(n)
	out := make([]Island, 0, len(comps))
	for _, comp := range comps {
		isl := Island{Buses: comp, Slack: -1}
		found := false
		for _, l := range comp {
			if types[l] != network.Slack {
				continue
			}
			if found {
				return nil, &network.TopologyError{
					Kind:   network.AmbiguousSlack,
					Label:  l,
					Detail: fmt.Sprintf("island already has slack bus %d", isl.Slack),
				}
			}
			isl.Slack, found = l, true
		}
		if !found && policy == Auto {
			best := math.Inf(-1)
			for _, l := range comp {
				if types[l] != network.PV {
					continue
				}
				if c := capacity[l]; !found || c > best {
					isl.Slack, best, found = l, c, true
				}
			}
			isl.Promoted = found
		}
		if !found {
			return nil, &network.TopologyError{
				Kind:   network.MissingSlack,
				Label:  comp[0],
				Detail: fmt.Sprintf("island of %d bus(es) has no slack bus", len(comp)),
			}
		}
		out = append(out, isl)
	}

	return out, nil
}

// Roles returns the solve-time role of every bus label: island slacks
// become Slack, every other bus keeps its data-model type.
func Roles(n *network.Network, islands []Island) map[int]network.BusType {
	roles := make(map[int]network.BusType)
	for _, b := range n.Buses() {
		roles[b.Label] = b.Type
	}
	for _, isl := range islands {
		roles[isl.Slack] = network.Slack
	}

	return roles
}

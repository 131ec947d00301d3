// SPDX-License-Identifier: MIT

package admittance

import (
	"github.com/katalvlaran/gridflow/matrix"
	"github.com/katalvlaran/gridflow/network"
	"github.com/katalvlaran/gridflow/topology"
)

// Variant selects the fast-decoupled approximation.
type Variant int

const (
	// XB neglects resistance in B′.
	XB Variant = iota + 1
	// BX neglects resistance in B″.
	BX
)

// String returns "XB" or "BX".
func (v Variant) String() string {
	if v == BX {
		return "BX"
	}

	return "XB"
}

// Layout is the indexing shared by every model: bus labels in matrix order
// and branch labels in vector order.
type Layout struct {
	Version      uint64
	Lineage      uint64
	Labels       []int         // bus labels, ascending; position = matrix index
	Index        map[int]int   // bus label → matrix index
	BranchLabels []int         // branch labels, ascending; position = branch index
	From, To     []int         // matrix index of each branch end
	InService    []bool        // branch status at build time
	Islands      []topology.Island
}

// Fresh reports whether the model was built from the network's current
// data. Stale models must be rebuilt before a solve.
func (l *Layout) Fresh(n *network.Network) bool {
	return l.Lineage == n.Lineage() && l.Version == n.Version()
}

// ACModel is the bus admittance matrix with its per-branch two-port
// parameters. Out-of-service branches keep their slot with zero entries.
type ACModel struct {
	Layout
	Y *matrix.Sparse[complex128]

	FromFrom, FromTo []complex128 // from-end row of the branch two-port
	ToFrom, ToTo     []complex128 // to-end row of the branch two-port
	Series           []complex128 // series admittance 1/(r+jx)
	Ratio            []complex128 // complex tap τ·e^{jφ}
	Charging         []float64    // total charging susceptance
}

// DCModel is the lossless susceptance matrix B′ and its phase-shift
// injections.
type DCModel struct {
	Layout
	B *matrix.Sparse[float64]

	Admittance     []float64 // per branch 1/(x·τ)
	Shift          []float64 // per branch phase shift
	ShiftInjection []float64 // per bus injection equivalent of the phase shifters
}

// DecoupledModel holds the constant B′ and B″ matrices of a fast-decoupled
// solve.
type DecoupledModel struct {
	Layout
	Variant      Variant
	BPrime       *matrix.Sparse[float64]
	BDoublePrime *matrix.Sparse[float64]
}

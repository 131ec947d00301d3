// SPDX-License-Identifier: MIT

package admittance

import (
	"fmt"
	"math/cmplx"

	"github.com/katalvlaran/gridflow/matrix"
	"github.com/katalvlaran/gridflow/network"
	"github.com/katalvlaran/gridflow/topology"
)

// Option configures the builders and the Cache.
type Option func(*options)

type options struct {
	policy topology.Policy
}

// WithSlackPolicy selects how slack-less islands are handled.
func WithSlackPolicy(p topology.Policy) Option {
	if p != topology.Manual && p != topology.Auto {
		panic("admittance: WithSlackPolicy requires topology.Manual or topology.Auto")
	}

	return func(o *options) { o.policy = p }
}

func gatherOptions(opts ...Option) options {
	o := options{policy: topology.Manual}
	for _, fn := range opts {
		fn(&o)
	}

	return o
}

func admittanceErrorf(op string, err error) error {
	return fmt.Errorf("admittance: %s: %w", op, err)
}

// input is a consistent read of everything the builders need.
type input struct {
	layout   Layout
	buses    []network.Bus
	branches []network.Branch
}

// prepare validates the network, resolves islands and fixes the indexing.
func prepare(n *network.Network, op string, o options) (*input, error) {
	// Read under a single version so buses and branches agree.
	snap := n.Snapshot()
	if err := snap.Validate(); err != nil {
		return nil, admittanceErrorf(op, err)
	}
	islands, err := topology.Resolve(snap, o.policy)
	if err != nil {
		return nil, admittanceErrorf(op, err)
	}
	buses := snap.Buses()
	branches := snap.Branches()
	in := &input{
		buses:    buses,
		branches: branches,
		layout: Layout{
			Version:      snap.Version(),
			Lineage:      snap.Lineage(),
			Labels:       make([]int, len(buses)),
			Index:        make(map[int]int, len(buses)),
			BranchLabels: make([]int, len(branches)),
			From:         make([]int, len(branches)),
			To:           make([]int, len(branches)),
			InService:    make([]bool, len(branches)),
			Islands:      islands,
		},
	}
	if len(buses) == 0 {
		return nil, admittanceErrorf(op, matrix.ErrInvalidDimensions)
	}
	for i, b := range buses {
		in.layout.Labels[i] = b.Label
		in.layout.Index[b.Label] = i
	}
	for k, br := range branches {
		in.layout.BranchLabels[k] = br.Label
		in.layout.From[k] = in.layout.Index[br.From]
		in.layout.To[k] = in.layout.Index[br.To]
		in.layout.InService[k] = br.Status == network.InService
	}

	return in, nil
}

// twoPort holds the π-model entries of one branch.
type twoPort struct {
	ff, ft, tf, tt complex128
	series, ratio  complex128
}

// branchTwoPort computes the π-model of an in-service branch.
//
//	ys  = 1/(r + jx)
//	t   = τ·e^{jφ}  (τ = 1 when the turns ratio is 0)
//	Yff = (ys + jb/2)/|t|²,  Yft = −ys/conj(t)
//	Ytf = −ys/t,             Ytt = ys + jb/2
func branchTwoPort(p network.Parameter) twoPort {
	ys := 1 / complex(p.Resistance, p.Reactance)
	t := cmplx.Rect(p.Tap(), p.ShiftAngle)
	half := complex(0, p.Susceptance/2)
	tau2 := p.Tap() * p.Tap()

	return twoPort{
		ff:     (ys + half) / complex(tau2, 0),
		ft:     -ys / cmplx.Conj(t),
		tf:     -ys / t,
		tt:     ys + half,
		series: ys,
		ratio:  t,
	}
}

// stampY assembles the complex bus matrix. modify may rewrite a branch's
// parameters before stamping; shunts toggles bus shunt stamping.
func stampY(in *input, modify func(*network.Parameter), shunts bool) (*matrix.Sparse[complex128], []twoPort, error) {
	nb := len(in.buses)
	tr, err := matrix.NewTriplet[complex128](nb, nb)
	if err != nil {
		return nil, nil, err
	}
	ports := make([]twoPort, len(in.branches))
	for k, br := range in.branches {
		if !in.layout.InService[k] {
			continue
		}
		p := br.Parameter
		if modify != nil {
			modify(&p)
		}
		tp := branchTwoPort(p)
		ports[k] = tp
		f, t := in.layout.From[k], in.layout.To[k]
		for _, s := range [...]struct {
			i, j int
			v    complex128
		}{{f, f, tp.ff}, {f, t, tp.ft}, {t, f, tp.tf}, {t, t, tp.tt}} {
			if err := tr.Add(s.i, s.j, s.v); err != nil {
				return nil, nil, err
			}
		}
	}
	for i, b := range in.buses {
		// Keep every diagonal in the pattern, even for isolated buses.
		v := complex(0, 0)
		if shunts {
			v = complex(b.Shunt.Conductance, b.Shunt.Susceptance)
		}
		if err := tr.Add(i, i, v); err != nil {
			return nil, nil, err
		}
	}

	return tr.Compress(), ports, nil
}

// BuildAC builds the bus admittance matrix Y and the branch two-port
// parameters.
//
// Implementation:
//   - Stage 1: snapshot, validate, resolve islands and slack buses.
//   - Stage 2: stamp each in-service branch π-model into Y.
//   - Stage 3: add bus shunts g + jb on the diagonal.
//
// Errors:
//   - *network.TopologyError for dangling references, self-loops and
//     missing or ambiguous slack buses (policy from WithSlackPolicy).
//   - network.ErrInvalidParameter for zero-impedance branches.
//
// Complexity:
//   - Time O((B + L) log(B + L)), Space O(B + L).
func BuildAC(n *network.Network, opts ...Option) (*ACModel, error) {
	in, err := prepare(n, "BuildAC", gatherOptions(opts...))
	if err != nil {
		return nil, err
	}
	y, ports, err := stampY(in, nil, true)
	if err != nil {
		return nil, admittanceErrorf("BuildAC", err)
	}
	nl := len(in.branches)
	m := &ACModel{
		Layout:   in.layout,
		Y:        y,
		FromFrom: make([]complex128, nl),
		FromTo:   make([]complex128, nl),
		ToFrom:   make([]complex128, nl),
		ToTo:     make([]complex128, nl),
		Series:   make([]complex128, nl),
		Ratio:    make([]complex128, nl),
		Charging: make([]float64, nl),
	}
	for k, tp := range ports {
		m.FromFrom[k], m.FromTo[k], m.ToFrom[k], m.ToTo[k] = tp.ff, tp.ft, tp.tf, tp.tt
		m.Series[k], m.Ratio[k] = tp.series, tp.ratio
		if in.layout.InService[k] {
			m.Charging[k] = in.branches[k].Parameter.Susceptance
		}
	}

	return m, nil
}

// BuildDC builds the lossless susceptance matrix B′ with b = 1/(x·τ) per
// in-service branch and the phase-shifter injections (−φ·b at the from bus,
// +φ·b at the to bus).
//
// Errors: as BuildAC.
// Complexity: Time O((B + L) log(B + L)).
func BuildDC(n *network.Network, opts ...Option) (*DCModel, error) {
	in, err := prepare(n, "BuildDC", gatherOptions(opts...))
	if err != nil {
		return nil, err
	}
	nb, nl := len(in.buses), len(in.branches)
	tr, err := matrix.NewTriplet[float64](nb, nb)
	if err != nil {
		return nil, admittanceErrorf("BuildDC", err)
	}
	m := &DCModel{
		Layout:         in.layout,
		Admittance:     make([]float64, nl),
		Shift:          make([]float64, nl),
		ShiftInjection: make([]float64, nb),
	}
	for i := 0; i < nb; i++ {
		_ = tr.Add(i, i, 0)
	}
	for k, br := range in.branches {
		if !in.layout.InService[k] {
			continue
		}
		p := br.Parameter
		if p.Reactance == 0 {
			return nil, admittanceErrorf("BuildDC", fmt.Errorf("branch %d has zero reactance: %w", br.Label, network.ErrInvalidParameter))
		}
		b := 1 / (p.Reactance * p.Tap())
		f, t := in.layout.From[k], in.layout.To[k]
		_ = tr.Add(f, f, b)
		_ = tr.Add(t, t, b)
		_ = tr.Add(f, t, -b)
		_ = tr.Add(t, f, -b)
		m.Admittance[k] = b
		m.Shift[k] = p.ShiftAngle
		m.ShiftInjection[f] -= p.ShiftAngle * b
		m.ShiftInjection[t] += p.ShiftAngle * b
	}
	m.B = tr.Compress()

	return m, nil
}

// BuildFastDecoupled builds the constant B′ and B″ matrices.
//
// Both are −Im(Y) of a modified network:
//   - B′ drops bus shunts, line charging and off-nominal taps; XB also
//     drops resistance.
//   - B″ drops phase shift; BX also drops resistance.
//
// Errors: as BuildAC; additionally network.ErrInvalidParameter when a
// branch that loses its resistance has zero reactance.
func BuildFastDecoupled(n *network.Network, v Variant, opts ...Option) (*DecoupledModel, error) {
	if v != XB && v != BX {
		return nil, admittanceErrorf("BuildFastDecoupled", fmt.Errorf("variant %d: %w", int(v), network.ErrInvalidParameter))
	}
	in, err := prepare(n, "BuildFastDecoupled", gatherOptions(opts...))
	if err != nil {
		return nil, err
	}
	for k, br := range in.branches {
		if in.layout.InService[k] && br.Parameter.Reactance == 0 {
			return nil, admittanceErrorf("BuildFastDecoupled", fmt.Errorf("branch %d has zero reactance: %w", br.Label, network.ErrInvalidParameter))
		}
	}

	prime, _, err := stampY(in, func(p *network.Parameter) {
		p.Susceptance = 0
		p.TurnsRatio = 1
		if v == XB {
			p.Resistance = 0
		}
	}, false)
	if err != nil {
		return nil, admittanceErrorf("BuildFastDecoupled", err)
	}
	double, _, err := stampY(in, func(p *network.Parameter) {
		p.ShiftAngle = 0
		if v == BX {
			p.Resistance = 0
		}
	}, true)
	if err != nil {
		return nil, admittanceErrorf("BuildFastDecoupled", err)
	}

	return &DecoupledModel{
		Layout:       in.layout,
		Variant:      v,
		BPrime:       negImag(prime),
		BDoublePrime: negImag(double),
	}, nil
}

// negImag returns −Im(y) with the same sparsity pattern.
func negImag(y *matrix.Sparse[complex128]) *matrix.Sparse[float64] {
	tr, _ := matrix.NewTriplet[float64](y.Rows(), y.Cols())
	for i := 0; i < y.Rows(); i++ {
		y.Row(i, func(j int, v complex128) bool {
			_ = tr.Add(i, j, -imag(v))
			return true
		})
	}

	return tr.Compress()
}

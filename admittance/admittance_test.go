package admittance_test

import (
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gridflow/admittance"
	"github.com/katalvlaran/gridflow/network"
	"github.com/katalvlaran/gridflow/topology"
)

const tol = 1e-12

func requireComplex(t *testing.T, want, got complex128, msg string) {
	t.Helper()
	require.InDelta(t, real(want), real(got), tol, msg+" (real)")
	require.InDelta(t, imag(want), imag(got), tol, msg+" (imag)")
}

// threeBus: 1 (slack) -- line --> 2 -- transformer --> 3, shunt at 3,
// plus an out-of-service branch 1-3.
func threeBus(t *testing.T) *network.Network {
	t.Helper()
	n := network.New()
	require.NoError(t, n.AddBus(1, network.WithBusType(network.Slack)))
	require.NoError(t, n.AddBus(2))
	require.NoError(t, n.AddBus(3, network.WithShunt(0.01, 0.05)))
	require.NoError(t, n.AddBranch(1, 1, 2, network.WithImpedance(0.02, 0.06), network.WithCharging(0.03)))
	require.NoError(t, n.AddBranch(2, 2, 3, network.WithImpedance(0.01, 0.2), network.WithTurnsRatio(0.95), network.WithShiftAngle(0.1)))
	require.NoError(t, n.AddBranch(3, 1, 3, network.WithReactance(0.3), network.WithBranchStatus(network.OutOfService)))

	return n
}

func TestBuildACLineAndTransformer(t *testing.T) {
	n := threeBus(t)
	m, err := admittance.BuildAC(n)
	require.NoError(t, err)
	require.Equal(t, []int{1, 2, 3}, m.Labels)
	require.Equal(t, []int{1, 2, 3}, m.BranchLabels)
	require.True(t, m.Fresh(n))

	ys1 := 1 / complex(0.02, 0.06)
	ys2 := 1 / complex(0.01, 0.2)
	tap := cmplx.Rect(0.95, 0.1)

	y11, _ := m.Y.At(0, 0)
	requireComplex(t, ys1+complex(0, 0.015), y11, "Y11: line from end, out-of-service branch excluded")
	y12, _ := m.Y.At(0, 1)
	requireComplex(t, -ys1, y12, "Y12")
	y22, _ := m.Y.At(1, 1)
	requireComplex(t, ys1+complex(0, 0.015)+ys2/complex(0.95*0.95, 0), y22, "Y22")
	y23, _ := m.Y.At(1, 2)
	requireComplex(t, -ys2/cmplx.Conj(tap), y23, "Y23")
	y32, _ := m.Y.At(2, 1)
	requireComplex(t, -ys2/tap, y32, "Y32")
	y33, _ := m.Y.At(2, 2)
	requireComplex(t, ys2+complex(0.01, 0.05), y33, "Y33: to end plus shunt")
	y13, _ := m.Y.At(0, 2)
	requireComplex(t, 0, y13, "out-of-service branch contributes nothing")

	require.False(t, m.InService[2])
	requireComplex(t, 0, m.FromFrom[2], "out-of-service branch keeps a zero slot")
	requireComplex(t, tap, m.Ratio[1], "complex tap")
	require.InDelta(t, 0.03, m.Charging[0], tol)

	require.NoError(t, n.StatusBranch(3, network.InService))
	require.False(t, m.Fresh(n), "any mutation invalidates the model")
}

func TestBuildDCShiftInjection(t *testing.T) {
	n := threeBus(t)
	m, err := admittance.BuildDC(n)
	require.NoError(t, err)
	b1 := 1 / 0.06
	b2 := 1 / (0.2 * 0.95)
	require.InDelta(t, b1, m.Admittance[0], tol)
	require.InDelta(t, b2, m.Admittance[1], tol)
	require.Zero(t, m.Admittance[2])

	v, _ := m.B.At(1, 1)
	require.InDelta(t, b1+b2, v, tol)
	v, _ = m.B.At(1, 2)
	require.InDelta(t, -b2, v, tol)
	v, _ = m.B.At(0, 2)
	require.Zero(t, v)

	require.InDelta(t, 0, m.ShiftInjection[0], tol)
	require.InDelta(t, -0.1*b2, m.ShiftInjection[1], tol)
	require.InDelta(t, 0.1*b2, m.ShiftInjection[2], tol)
}

func TestBuildFastDecoupledVariants(t *testing.T) {
	n := threeBus(t)
	xb, err := admittance.BuildFastDecoupled(n, admittance.XB)
	require.NoError(t, err)
	bx, err := admittance.BuildFastDecoupled(n, admittance.BX)
	require.NoError(t, err)

	// B′ off-diagonal of the plain line: XB uses 1/x, BX uses x/(r²+x²).
	v, _ := xb.BPrime.At(0, 1)
	require.InDelta(t, -1/0.06, v, tol)
	v, _ = bx.BPrime.At(0, 1)
	require.InDelta(t, -0.06/(0.02*0.02+0.06*0.06), v, tol)

	// B′ ignores shunts, charging and taps.
	v, _ = xb.BPrime.At(2, 2)
	require.InDelta(t, 1/0.2, v, 1e-9)

	// B″ keeps charging and bus shunts; BX drops resistance.
	v, _ = bx.BDoublePrime.At(2, 2)
	require.InDelta(t, 1/0.2-0.05, v, 1e-9)
	v, _ = xb.BDoublePrime.At(0, 0)
	require.InDelta(t, -imag(1/complex(0.02, 0.06))-0.015, v, 1e-9)

	_, err = admittance.BuildFastDecoupled(n, admittance.Variant(9))
	require.ErrorIs(t, err, network.ErrInvalidParameter)
	require.Equal(t, "BX", admittance.BX.String())
}

func TestBuildReportsTopologyErrors(t *testing.T) {
	n := network.New()
	require.NoError(t, n.AddBus(1))
	require.NoError(t, n.AddBus(2))
	require.NoError(t, n.AddBranch(1, 1, 2, network.WithReactance(0.1)))
	_, err := admittance.BuildAC(n)
	require.ErrorIs(t, err, network.ErrTopology)
	_, err = admittance.BuildDC(n)
	require.ErrorIs(t, err, network.ErrTopology)

	require.NoError(t, n.AddGenerator(1, 2))
	_, err = admittance.BuildAC(n, admittance.WithSlackPolicy(topology.Auto))
	require.NoError(t, err, "auto policy promotes the PV bus")
}

func TestCacheRebuildsOnVersionChange(t *testing.T) {
	n := threeBus(t)
	c := admittance.NewCache()
	m1, err := c.AC(n)
	require.NoError(t, err)
	m2, err := c.AC(n.Snapshot())
	require.NoError(t, err)
	require.Same(t, m1, m2, "a snapshot shares lineage and version")
	require.Equal(t, 1, c.Builds())

	require.NoError(t, n.SetDemand(2, 1, 0))
	m3, err := c.AC(n)
	require.NoError(t, err)
	require.NotSame(t, m1, m3)
	require.Equal(t, 2, c.Builds())

	_, err = c.AC(threeBus(t))
	require.NoError(t, err)
	require.Equal(t, 3, c.Builds(), "another lineage never hits")

	_, err = c.DC(n)
	require.NoError(t, err)
	_, err = c.FastDecoupled(n, admittance.BX)
	require.NoError(t, err)
	_, err = c.FastDecoupled(n, admittance.BX)
	require.NoError(t, err)
	require.Equal(t, 5, c.Builds())

	c.Invalidate()
	_, err = c.DC(n)
	require.NoError(t, err)
	require.Equal(t, 6, c.Builds())
}

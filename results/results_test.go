package results_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gridflow/admittance"
	"github.com/katalvlaran/gridflow/network"
	"github.com/katalvlaran/gridflow/results"
)

const tol = 1e-10

// twoBus builds slack 1 feeding load 2 over a single line.
func twoBus(t *testing.T, r, x, b float64) *network.Network {
	t.Helper()
	n := network.New()
	require.NoError(t, n.AddBus(1, network.WithBusType(network.Slack)))
	require.NoError(t, n.AddBus(2, network.WithDemand(0.5, 0.2)))
	opts := []network.BranchOption{network.WithReactance(x), network.WithCharging(b)}
	if r != 0 {
		opts = append(opts, network.WithResistance(r))
	}
	require.NoError(t, n.AddBranch(1, 1, 2, opts...))
	require.NoError(t, n.AddGenerator(1, 1))

	return n
}

func TestAssembleACLosslessBranch(t *testing.T) {
	n := twoBus(t, 0, 0.1, 0)
	ac, err := admittance.BuildAC(n)
	require.NoError(t, err)

	res, err := results.AssembleAC(n, ac, []float64{1, 0.97}, []float64{0, -0.05})
	require.NoError(t, err)
	require.Len(t, res.Branches, 1)
	br := res.Branches[0]
	require.True(t, br.InService)
	require.InDelta(t, 0, br.Loss.Active, tol, "no resistance, no active loss")
	require.Greater(t, br.Loss.Reactive, 0.0, "series reactance absorbs reactive power")
	require.InDelta(t, 0.1*br.FromCurrent.Magnitude*br.FromCurrent.Magnitude, br.Loss.Reactive, tol)
	require.InDelta(t, br.From.Active, -br.To.Active, tol)
	require.InDelta(t, res.Loss.Reactive, br.Loss.Reactive, tol)
}

func TestAssembleACResistiveLoss(t *testing.T) {
	n := twoBus(t, 0.02, 0.1, 0)
	ac, err := admittance.BuildAC(n)
	require.NoError(t, err)

	res, err := results.AssembleAC(n, ac, []float64{1, 0.97}, []float64{0, -0.05})
	require.NoError(t, err)
	br := res.Branches[0]
	i := br.FromCurrent.Magnitude
	require.Greater(t, br.Loss.Active, 0.0)
	require.InDelta(t, 0.02*i*i, br.Loss.Active, tol)
	require.InDelta(t, br.FromCurrent.Magnitude, br.ToCurrent.Magnitude, tol, "series element carries one current")

	// Bus injections balance branch flows and losses.
	var total float64
	for _, b := range res.Buses {
		total += b.Injection.Active
	}
	require.InDelta(t, res.Loss.Active, total, tol)
}

func TestAssembleACCharging(t *testing.T) {
	n := twoBus(t, 0, 0.1, 0.04)
	ac, err := admittance.BuildAC(n)
	require.NoError(t, err)

	res, err := results.AssembleAC(n, ac, []float64{1, 0.9}, []float64{0, 0})
	require.NoError(t, err)
	require.InDelta(t, 0.02*(1+0.81), res.Branches[0].Charging, tol)
}

func TestAssembleACBusFlags(t *testing.T) {
	n := network.New()
	require.NoError(t, n.AddBus(1, network.WithBusType(network.Slack)))
	require.NoError(t, n.AddBus(2, network.WithDemand(0.5, 0.2), network.WithShunt(0.01, 0.02)))
	require.NoError(t, n.AddBranch(1, 1, 2, network.WithReactance(0.1), network.WithRating(0.1, 0, 0)))
	ac, err := admittance.BuildAC(n)
	require.NoError(t, err)

	res, err := results.AssembleAC(n, ac, []float64{1, 0.85}, []float64{0, -0.1})
	require.NoError(t, err)
	require.False(t, res.Buses[0].Violation)
	require.True(t, res.Buses[1].Violation, "0.85 is below the default 0.9 limit")
	require.True(t, res.Branches[0].Overloaded)
	require.InDelta(t, 0.85*0.85*0.01, res.Buses[1].Shunt.Active, tol)
	require.InDelta(t, -0.85*0.85*0.02, res.Buses[1].Shunt.Reactive, tol)
	require.InDelta(t, 0.5, res.Buses[1].Demand.Active, tol)
}

func TestAssembleACGeneratorSplit(t *testing.T) {
	n := twoBus(t, 0.01, 0.1, 0)
	require.NoError(t, n.AddGenerator(2, 1, network.WithOutput(0.2, 0), network.WithReactiveLimits(0, 2)))
	require.NoError(t, n.AddGenerator(3, 1, network.WithGeneratorStatus(network.OutOfService)))
	require.NoError(t, n.StatusGenerator(1, network.OutOfService))
	require.NoError(t, n.AddGenerator(4, 1, network.WithOutput(0.3, 0), network.WithReactiveLimits(-1, 1)))
	ac, err := admittance.BuildAC(n)
	require.NoError(t, err)

	res, err := results.AssembleAC(n, ac, []float64{1, 0.95}, []float64{0, -0.04})
	require.NoError(t, err)
	require.Len(t, res.Generators, 4)
	bus := res.Buses[0].Generation

	g2, g4 := res.Generators[1], res.Generators[3]
	require.Equal(t, 2, g2.Label)
	require.Equal(t, network.Power{}, res.Generators[0].Output, "out of service")
	require.Equal(t, network.Power{}, res.Generators[2].Output, "out of service")
	require.InDelta(t, bus.Active-0.3, g2.Output.Active, tol, "lowest label picks up the imbalance")
	require.InDelta(t, 0.3, g4.Output.Active, tol)

	// Σrange = 4, ΣQmin = −1.
	require.InDelta(t, 0+(bus.Reactive+1)*2/4, g2.Output.Reactive, tol)
	require.InDelta(t, -1+(bus.Reactive+1)*2/4, g4.Output.Reactive, tol)
	require.InDelta(t, bus.Reactive, g2.Output.Reactive+g4.Output.Reactive, tol)
}

func TestAssembleACReclassified(t *testing.T) {
	n := twoBus(t, 0, 0.1, 0)
	require.NoError(t, n.AddGenerator(2, 2, network.WithOutput(0.1, 0), network.WithReactiveLimits(-0.1, 0.1)))
	ac, err := admittance.BuildAC(n)
	require.NoError(t, err)

	mask := []bool{false, true}
	reactive := []float64{0, 0.1 - 0.2}
	res, err := results.AssembleAC(n, ac, []float64{1, 0.97}, []float64{0, -0.03},
		results.WithReclassified(mask, reactive))
	require.NoError(t, err)
	require.InDelta(t, 0.1, res.Buses[1].Generation.Reactive, tol, "clamped value reported")
	require.InDelta(t, 0.1, res.Generators[1].Output.Reactive, tol)

	_, err = results.AssembleAC(n, ac, []float64{1, 0.97}, []float64{0, 0},
		results.WithReclassified([]bool{true}, reactive))
	require.ErrorIs(t, err, results.ErrStateLength)
}

func TestAssembleACErrors(t *testing.T) {
	n := twoBus(t, 0, 0.1, 0)
	ac, err := admittance.BuildAC(n)
	require.NoError(t, err)

	_, err = results.AssembleAC(n, ac, []float64{1}, []float64{0, 0})
	require.ErrorIs(t, err, results.ErrStateLength)

	require.NoError(t, n.SetDemand(2, 0.6, 0.2))
	_, err = results.AssembleAC(n, ac, []float64{1, 1}, []float64{0, 0})
	require.ErrorIs(t, err, results.ErrStaleModel)
}

func TestAssembleACOutOfServiceBranch(t *testing.T) {
	n := twoBus(t, 0, 0.1, 0)
	require.NoError(t, n.AddBranch(2, 1, 2, network.WithReactance(0.2), network.WithBranchStatus(network.OutOfService)))
	ac, err := admittance.BuildAC(n)
	require.NoError(t, err)

	res, err := results.AssembleAC(n, ac, []float64{1, 0.98}, []float64{0, -0.02})
	require.NoError(t, err)
	require.False(t, res.Branches[1].InService)
	require.Equal(t, results.Branch{Label: 2}, res.Branches[1])
	require.InDelta(t, res.Buses[0].Injection.Active, res.Branches[0].From.Active, tol,
		"bus 1 injection flows entirely through branch 1")
}

func TestAssembleDC(t *testing.T) {
	n := network.New()
	require.NoError(t, n.AddBus(1, network.WithBusType(network.Slack)))
	require.NoError(t, n.AddBus(2, network.WithDemand(0.4, 0)))
	require.NoError(t, n.AddBus(3, network.WithDemand(0.3, 0)))
	require.NoError(t, n.AddBranch(1, 1, 2, network.WithReactance(0.1), network.WithRating(0.4, 0, 0)))
	require.NoError(t, n.AddBranch(2, 2, 3, network.WithReactance(0.2)))
	require.NoError(t, n.AddBranch(3, 1, 3, network.WithReactance(0.25)))
	require.NoError(t, n.AddGenerator(1, 1, network.WithOutput(0.7, 0.1)))
	dc, err := admittance.BuildDC(n)
	require.NoError(t, err)

	angle := []float64{0, -0.05, -0.08}
	res, err := results.AssembleDC(n, dc, angle)
	require.NoError(t, err)

	require.InDelta(t, 0.5, res.Branches[0].From, tol)
	require.InDelta(t, -0.5, res.Branches[0].To, tol)
	require.InDelta(t, 0.15, res.Branches[1].From, tol)
	require.InDelta(t, 0.32, res.Branches[2].From, tol)
	require.True(t, res.Branches[0].Overloaded)
	require.False(t, res.Branches[1].Overloaded, "no rating")

	var total float64
	for _, b := range res.Buses {
		total += b.Injection
	}
	require.InDelta(t, 0, total, tol, "the DC model is lossless")
	require.InDelta(t, 0.82, res.Buses[0].Injection, tol)
	require.InDelta(t, 0.82, res.Generators[0].Output.Active, tol)
	require.Zero(t, res.Generators[0].Output.Reactive)

	_, err = results.AssembleDC(n, dc, angle[:2])
	require.ErrorIs(t, err, results.ErrStateLength)
}

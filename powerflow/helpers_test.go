package powerflow_test

import (
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gridflow/network"
	"github.com/katalvlaran/gridflow/powerflow"
)

// quiet returns a discarding logger and the hook that records its entries.
func quiet() (powerflow.Option, *logtest.Hook) {
	l, hook := logtest.NewNullLogger()
	l.SetLevel(logrus.DebugLevel)

	return powerflow.WithLogger(l), hook
}

// threeBus is a meshed network: slack 1, PV 2 (0.3 p.u. at 1.02),
// PQ 3 (0.5 + j0.2 demand). r is applied to every branch.
func threeBus(t *testing.T, r float64, gen2 ...network.GeneratorOption) *network.Network {
	t.Helper()
	n := network.New()
	require.NoError(t, n.AddBus(1, network.WithBusType(network.Slack)))
	require.NoError(t, n.AddBus(2))
	require.NoError(t, n.AddBus(3, network.WithDemand(0.5, 0.2)))
	for _, br := range []struct{ label, from, to int; x float64 }{
		{1, 1, 2, 0.1}, {2, 2, 3, 0.2}, {3, 1, 3, 0.25},
	} {
		opts := []network.BranchOption{network.WithReactance(br.x)}
		if r != 0 {
			opts = append(opts, network.WithResistance(r))
		}
		require.NoError(t, n.AddBranch(br.label, br.from, br.to, opts...))
	}
	require.NoError(t, n.AddGenerator(1, 1))
	opts := append([]network.GeneratorOption{network.WithOutput(0.3, 0), network.WithSetpoint(1.02)}, gen2...)
	require.NoError(t, n.AddGenerator(2, 2, opts...))

	return n
}

// twoBus is slack 1 feeding a 0.5 + j0.2 load at bus 2.
func twoBus(t *testing.T, r float64) *network.Network {
	t.Helper()
	n := network.New()
	require.NoError(t, n.AddBus(1, network.WithBusType(network.Slack)))
	require.NoError(t, n.AddBus(2, network.WithDemand(0.5, 0.2)))
	opts := []network.BranchOption{network.WithReactance(0.1)}
	if r != 0 {
		opts = append(opts, network.WithResistance(r))
	}
	require.NoError(t, n.AddBranch(1, 1, 2, opts...))
	require.NoError(t, n.AddGenerator(1, 1))

	return n
}

// dcThreeBus is slack 1, PV 2 (0.6 p.u. output against 0.4 demand) and
// PQ 3 (0.3 demand) on reactances 0.1, 0.2 and 0.25.
func dcThreeBus(t *testing.T) *network.Network {
	t.Helper()
	n := network.New()
	require.NoError(t, n.AddBus(1, network.WithBusType(network.Slack)))
	require.NoError(t, n.AddBus(2, network.WithDemand(0.4, 0)))
	require.NoError(t, n.AddBus(3, network.WithDemand(0.3, 0)))
	require.NoError(t, n.AddBranch(1, 1, 2, network.WithReactance(0.1)))
	require.NoError(t, n.AddBranch(2, 2, 3, network.WithReactance(0.2)))
	require.NoError(t, n.AddBranch(3, 1, 3, network.WithReactance(0.25)))
	require.NoError(t, n.AddGenerator(1, 1))
	require.NoError(t, n.AddGenerator(2, 2, network.WithOutput(0.6, 0)))

	return n
}

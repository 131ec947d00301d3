package topology_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gridflow/network"
	"github.com/katalvlaran/gridflow/topology"
)

// twoIslands: 1-2 and 3-4, with 5 isolated.
func twoIslands(t *testing.T) *network.Network {
	t.Helper()
	n := network.New()
	for l := 1; l <= 5; l++ {
		require.NoError(t, n.AddBus(l))
	}
	require.NoError(t, n.AddBranch(1, 1, 2, network.WithReactance(0.1)))
	require.NoError(t, n.AddBranch(2, 4, 3, network.WithReactance(0.1)))
	require.NoError(t, n.AddBranch(3, 2, 3, network.WithReactance(0.1), network.WithBranchStatus(network.OutOfService)))

	return n
}

func TestIslandsIgnoresOutOfServiceBranches(t *testing.T) {
	n := twoIslands(t)
	require.Equal(t, [][]int{{1, 2}, {3, 4}, {5}}, topology.Islands(n))

	require.NoError(t, n.StatusBranch(3, network.InService))
	require.Equal(t, [][]int{{1, 2, 3, 4}, {5}}, topology.Islands(n))
}

func TestResolveMissingSlackWithoutBranches(t *testing.T) {
	n := network.New()
	require.NoError(t, n.AddBus(1))
	require.NoError(t, n.AddBus(2))

	_, err := topology.Resolve(n, topology.Manual)
	require.ErrorIs(t, err, network.ErrTopology)
	var te *network.TopologyError
	require.True(t, errors.As(err, &te))
	require.Equal(t, network.MissingSlack, te.Kind)
	require.Equal(t, 1, te.Label)

	_, err = topology.Resolve(n, topology.Auto)
	require.ErrorIs(t, err, network.ErrTopology, "auto policy needs a PV bus to promote")
}

func TestResolveAmbiguousSlack(t *testing.T) {
	n := twoIslands(t)
	require.NoError(t, n.SetSlack(1))
	require.NoError(t, n.SetSlack(2))
	_, err := topology.Resolve(n, topology.Auto)
	var te *network.TopologyError
	require.True(t, errors.As(err, &te))
	require.Equal(t, network.AmbiguousSlack, te.Kind)
	require.Equal(t, 2, te.Label)
}

func TestResolveManualSlackWins(t *testing.T) {
	n := twoIslands(t)
	require.NoError(t, n.SetSlack(2))
	require.NoError(t, n.AddGenerator(1, 1, network.WithActiveLimits(0, 100)))
	require.NoError(t, n.SetSlack(4))
	require.NoError(t, n.SetSlack(5))

	islands, err := topology.Resolve(n, topology.Auto)
	require.NoError(t, err)
	require.Len(t, islands, 3)
	require.Equal(t, 2, islands[0].Slack, "manual slack beats a stronger PV bus")
	require.False(t, islands[0].Promoted)
}

func TestResolveAutoPromotesLargestCapacity(t *testing.T) {
	n := network.New()
	for l := 1; l <= 4; l++ {
		require.NoError(t, n.AddBus(l))
	}
	require.NoError(t, n.AddBranch(1, 1, 2, network.WithReactance(0.1)))
	require.NoError(t, n.AddBranch(2, 2, 3, network.WithReactance(0.1)))
	require.NoError(t, n.AddBranch(3, 3, 4, network.WithReactance(0.1)))
	// Bus 2: two generators summing to 5; bus 3: one of 5; bus 4: 4.
	require.NoError(t, n.AddGenerator(1, 2, network.WithActiveLimits(0, 2)))
	require.NoError(t, n.AddGenerator(2, 2, network.WithActiveLimits(0, 3)))
	require.NoError(t, n.AddGenerator(3, 3, network.WithActiveLimits(0, 5)))
	require.NoError(t, n.AddGenerator(4, 4, network.WithActiveLimits(0, 4)))

	islands, err := topology.Resolve(n, topology.Auto)
	require.NoError(t, err)
	require.Len(t, islands, 1)
	require.Equal(t, 2, islands[0].Slack, "tie between 2 and 3 goes to the lowest label")
	require.True(t, islands[0].Promoted)

	require.NoError(t, n.StatusGenerator(2, network.OutOfService))
	islands, err = topology.Resolve(n, topology.Auto)
	require.NoError(t, err)
	require.Equal(t, 3, islands[0].Slack)

	roles := topology.Roles(n, islands)
	require.Equal(t, network.Slack, roles[3])
	require.Equal(t, network.PV, roles[4])
	require.Equal(t, network.PQ, roles[1])

	_, err = topology.Resolve(n, topology.Manual)
	require.ErrorIs(t, err, network.ErrTopology)
}

func TestParsePolicy(t *testing.T) {
	p, err := topology.ParsePolicy("AUTO")
	require.NoError(t, err)
	require.Equal(t, topology.Auto, p)
	p, err = topology.ParsePolicy("")
	require.NoError(t, err)
	require.Equal(t, topology.Manual, p)
	_, err = topology.ParsePolicy("random")
	require.ErrorIs(t, err, topology.ErrUnknownPolicy)
	require.Equal(t, "auto", topology.Auto.String())
}

// Package network_test verifies thread-safety of network.Network.
package network_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gridflow/network"
)

// TestConcurrentAddBus ensures concurrent AddBus calls all land and the
// ordered index stays sorted.
func TestConcurrentAddBus(t *testing.T) {
	n := network.New()
	v0 := n.Version()
	const num = 200
	var wg sync.WaitGroup
	wg.Add(num)
	for i := 0; i < num; i++ {
		go func(label int) {
			defer wg.Done()
			require.NoError(t, n.AddBus(label))
		}(num - i)
	}
	wg.Wait()

	labels := n.BusLabels()
	require.Len(t, labels, num)
	for i := 1; i < len(labels); i++ {
		require.Less(t, labels[i-1], labels[i])
	}
	require.Greater(t, n.Version(), v0+uint64(num-1), "every AddBus draws a token")
}

// TestConcurrentSnapshotAndMutate mixes writers and snapshot readers.
func TestConcurrentSnapshotAndMutate(t *testing.T) {
	n := network.New()
	require.NoError(t, n.AddBus(1))
	v1 := n.Version()
	const rounds = 100
	var wg sync.WaitGroup
	wg.Add(2 * rounds)
	for i := 0; i < rounds; i++ {
		go func(v float64) {
			defer wg.Done()
			_ = n.SetDemand(1, v, 0)
		}(float64(i))
		go func() {
			defer wg.Done()
			snap := n.Snapshot()
			_, err := snap.Bus(1)
			require.NoError(t, err)
		}()
	}
	wg.Wait()
	require.Greater(t, n.Version(), v1+uint64(rounds-1))
}

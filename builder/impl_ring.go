// SPDX-License-Identifier: MIT
// Package: gridflow/builder
//
// impl_ring.go — Ring(n): a radial feeder closed back to its slack bus.
//
// Contract:
//   - n ≥ 3 (else ErrTooFewBuses).
//   - Branches (i−1)→i for i=1..n−1, then (n−1)→0.

package builder

import "github.com/katalvlaran/gridflow/network"

const (
	methodRing   = "Ring"
	minRingBuses = 3
)

// Ring returns a Constructor that builds an n-bus ring.
func Ring(n int) Constructor {
	return func(net *network.Network, cfg builderConfig) error {
		if err := validateMin(methodRing, n, minRingBuses); err != nil {
			return err
		}
		labels, err := addIsland(net, cfg, methodRing, n)
		if err != nil {
			return err
		}
		ls := newLines(net, cfg, methodRing)
		for i := 1; i < n; i++ {
			if err := ls.add(labels[i-1], labels[i]); err != nil {
				return err
			}
		}

		return ls.add(labels[n-1], labels[0])
	}
}

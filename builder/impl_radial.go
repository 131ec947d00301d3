// SPDX-License-Identifier: MIT
// Package: gridflow/builder
//
// impl_radial.go — Radial(n): a feeder 1→2→…→n.
//
// Contract:
//   - n ≥ 2 (else ErrTooFewBuses).
//   - Bus 0 of the island is the slack; branches (i−1)→i in increasing order.
//
// Complexity: O(n) buses and branches.

package builder

import "github.com/katalvlaran/gridflow/network"

const (
	methodRadial   = "Radial"
	minRadialBuses = 2
)

// Radial returns a Constructor that builds a radial feeder of n buses.
func Radial(n int) Constructor {
	return func(net *network.Network, cfg builderConfig) error {
		if err := validateMin(methodRadial, n, minRadialBuses); err != nil {
			return err
		}
		labels, err := addIsland(net, cfg, methodRadial, n)
		if err != nil {
			return err
		}
		ls := newLines(net, cfg, methodRadial)
		for i := 1; i < n; i++ {
			if err := ls.add(labels[i-1], labels[i]); err != nil {
				return err
			}
		}

		return nil
	}
}

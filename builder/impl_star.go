// SPDX-License-Identifier: MIT
// Package: gridflow/builder
//
// impl_star.go — Star(n): a substation feeding n−1 buses directly.

package builder

import "github.com/katalvlaran/gridflow/network"

const (
	methodStar   = "Star"
	minStarBuses = 2
)

// Star returns a Constructor whose slack bus is the hub of n−1 spokes.
func Star(n int) Constructor {
	return func(net *network.Network, cfg builderConfig) error {
		if err := validateMin(methodStar, n, minStarBuses); err != nil {
			return err
		}
		labels, err := addIsland(net, cfg, methodStar, n)
		if err != nil {
			return err
		}
		ls := newLines(net, cfg, methodStar)
		for _, l := range labels[1:] {
			if err := ls.add(labels[0], l); err != nil {
				return err
			}
		}

		return nil
	}
}

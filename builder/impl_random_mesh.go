// SPDX-License-Identifier: MIT
// Package: gridflow/builder
//
// impl_random_mesh.go — RandomMesh(n, p): a radial backbone plus random
// chords.
//
// Contract:
//   - n ≥ 2 (else ErrTooFewBuses); 0 ≤ p ≤ 1 (else ErrInvalidProbability).
//   - cfg.rng required when 0 < p < 1 (else ErrNeedRandSource).
//   - Backbone (i−1)→i keeps the island connected; every other pair i<j
//     gets a chord with probability p, trials in (i asc, j asc) order.
//
// Complexity: O(n²) Bernoulli trials.

package builder

import "github.com/katalvlaran/gridflow/network"

const (
	methodRandomMesh   = "RandomMesh"
	minRandomMeshBuses = 2
)

// RandomMesh returns a Constructor sampling a connected meshed island.
func RandomMesh(n int, p float64) Constructor {
	return func(net *network.Network, cfg builderConfig) error {
		if err := validateMin(methodRandomMesh, n, minRandomMeshBuses); err != nil {
			return err
		}
		if err := validateProbability(methodRandomMesh, p); err != nil {
			return err
		}
		if cfg.rng == nil && p > 0 && p < 1 {
			return builderErrorf(methodRandomMesh, "rng is required: %w", ErrNeedRandSource)
		}
		labels, err := addIsland(net, cfg, methodRandomMesh, n)
		if err != nil {
			return err
		}
		ls := newLines(net, cfg, methodRandomMesh)
		for i := 1; i < n; i++ {
			if err := ls.add(labels[i-1], labels[i]); err != nil {
				return err
			}
		}
		for i := 0; i < n; i++ {
			for j := i + 2; j < n; j++ {
				keep := p == 1
				if cfg.rng != nil && p > 0 && p < 1 {
					keep = cfg.rng.Float64() < p
				}
				if !keep {
					continue
				}
				if err := ls.add(labels[i], labels[j]); err != nil {
					return err
				}
			}
		}

		return nil
	}
}

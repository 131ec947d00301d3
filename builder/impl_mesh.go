// SPDX-License-Identifier: MIT
// Package: gridflow/builder
//
// impl_mesh.go — Mesh(rows, cols): an orthogonal grid.
//
// Contract:
//   - rows ≥ 1, cols ≥ 1 and rows·cols ≥ 2 (else ErrTooFewBuses).
//   - Buses in row-major order; cell (0,0) is the slack.
//   - For each cell emit Right then Bottom where the neighbor exists.
//
// Complexity: O(rows·cols) buses and branches.

package builder

import "github.com/katalvlaran/gridflow/network"

const (
	methodMesh = "Mesh"
	minMeshDim = 1
)

// Mesh returns a Constructor that builds a rows×cols grid.
func Mesh(rows, cols int) Constructor {
	return func(net *network.Network, cfg builderConfig) error {
		if rows < minMeshDim || cols < minMeshDim || rows*cols < 2 {
			return builderErrorf(methodMesh, "rows=%d, cols=%d: %w", rows, cols, ErrTooFewBuses)
		}
		labels, err := addIsland(net, cfg, methodMesh, rows*cols)
		if err != nil {
			return err
		}
		at := func(r, c int) int { return labels[r*cols+c] }
		ls := newLines(net, cfg, methodMesh)
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				if c+1 < cols {
					if err := ls.add(at(r, c), at(r, c+1)); err != nil {
						return err
					}
				}
				if r+1 < rows {
					if err := ls.add(at(r, c), at(r+1, c)); err != nil {
						return err
					}
				}
			}
		}

		return nil
	}
}

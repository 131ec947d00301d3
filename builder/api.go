// SPDX-License-Identifier: MIT
// Package: gridflow/builder
//
// api.go — public entry point of the builder package.
//
// Contract:
//   - One orchestrator: BuildNetwork(nopts, bopts, cons...). Creates the
//     network, resolves cfg, runs cons in order.
//   - Determinism: same inputs, options, seed and constructor order give
//     identical networks.
//   - Constructors never panic; they return sentinel errors.

package builder

import (
	"fmt"

	"github.com/katalvlaran/gridflow/network"
)

// Constructor applies a deterministic network mutation using the resolved
// builderConfig. Every topology constructor adds a new island whose first
// bus is its slack; labels continue after the highest existing label.
type Constructor func(n *network.Network, cfg builderConfig) error

// BuildNetwork creates a network with options nopts, resolves the builder
// configuration from bopts and applies all constructors in order.
//
// Errors:
//   - wraps constructor errors as "BuildNetwork: %w"; branch with
//     errors.Is against ErrTooFewBuses, ErrInvalidProbability, ...
func BuildNetwork(nopts []network.NetworkOption, bopts []BuilderOption, cons ...Constructor) (*network.Network, error) {
	n := network.New(nopts...)
	cfg := newBuilderConfig(bopts...)
	for i, fn := range cons {
		if fn == nil {
			return nil, fmt.Errorf("BuildNetwork: nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		if err := fn(n, cfg); err != nil {
			return nil, fmt.Errorf("BuildNetwork: %w", err)
		}
	}

	return n, nil
}

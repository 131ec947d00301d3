// SPDX-License-Identifier: MIT

// Package builder generates deterministic synthetic networks for tests,
// benchmarks and demos.
//
// Topology constructors (each adds one island whose first bus is the slack
// bus, carrying a generator):
//
//   - Radial(n)         feeder 1→2→…→n.
//   - Ring(n)           feeder closed back to the slack bus.
//   - Mesh(rows, cols)  orthogonal grid, row-major labels.
//   - Star(n)           slack hub with n−1 spokes.
//   - RandomMesh(n, p)  radial backbone plus chords with probability p.
//
// PVGenerators(step, output, setpoint) adds voltage-controlled units to
// existing load buses.
//
// Electrical data comes from ImpedanceFn and LoadFn generators
// (ConstantImpedanceFn, UniformImpedanceFn, ConstantLoadFn, UniformLoadFn)
// and WithCharging. Stochastic generators draw from the RNG set by WithSeed
// or WithRand; the same seed and constructor order always give the same
// network.
//
//	net, err := builder.BuildNetwork(nil,
//		[]builder.BuilderOption{builder.WithSeed(7)},
//		builder.RandomMesh(30, 0.05),
//		builder.PVGenerators(5, 0.2, 1.02),
//	)
//
// Option constructors panic on meaningless values; constructors return
// errors matching ErrTooFewBuses, ErrInvalidProbability, ErrNeedRandSource
// or ErrConstructFailed.
package builder

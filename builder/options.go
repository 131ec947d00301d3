// SPDX-License-Identifier: MIT
// Package: gridflow/builder
//
// options.go — functional options for the builder package.
//
// Option constructors VALIDATE and PANIC on meaningless inputs.
// Constructors themselves never panic.

package builder

import (
	"math"
	"math/rand"
)

// BuilderOption customizes constructors by mutating a builderConfig.
type BuilderOption func(*builderConfig)

// WithFirstLabel sets the label of the first generated bus and branch.
// Panics if label < 0.
func WithFirstLabel(label int) BuilderOption {
	if label < 0 {
		panic("builder: WithFirstLabel(label<0)")
	}
	return func(c *builderConfig) { c.firstLabel = label }
}

// WithRand provides an explicit RNG for stochastic constructors.
// Panics on nil; prefer WithSeed for reproducible runs.
func WithRand(r *rand.Rand) BuilderOption {
	if r == nil {
		panic("builder: WithRand(nil)")
	}
	return func(c *builderConfig) { c.rng = r }
}

// WithSeed creates a new *rand.Rand with the given seed.
func WithSeed(seed int64) BuilderOption {
	return func(c *builderConfig) { c.rng = rand.New(rand.NewSource(seed)) }
}

// WithImpedanceFn overrides the per-branch series impedance generator.
// Panics on nil.
func WithImpedanceFn(fn ImpedanceFn) BuilderOption {
	if fn == nil {
		panic("builder: WithImpedanceFn(nil)")
	}
	return func(c *builderConfig) { c.impedanceFn = fn }
}

// WithLoadFn overrides the per-bus demand generator. Panics on nil.
func WithLoadFn(fn LoadFn) BuilderOption {
	if fn == nil {
		panic("builder: WithLoadFn(nil)")
	}
	return func(c *builderConfig) { c.loadFn = fn }
}

// WithCharging sets the total line-charging susceptance of every branch.
// Panics if b is negative or not finite.
func WithCharging(b float64) BuilderOption {
	if b < 0 || math.IsNaN(b) || math.IsInf(b, 0) {
		panic("builder: WithCharging(b<0 or non-finite)")
	}
	return func(c *builderConfig) { c.charging = b }
}

// SPDX-License-Identifier: MIT
// Package: gridflow/builder
//
// config.go — internal configuration and deterministic defaults.
//
// Deterministic defaults:
//   • firstLabel  = 1
//   • rng         = nil                         (no randomness unless seeded)
//   • impedanceFn = ConstantImpedanceFn(0.01, 0.1)
//   • loadFn      = ConstantLoadFn(0.1, 0.05)
//   • charging    = 0

package builder

import "math/rand"

// builderConfig aggregates all knobs used by constructors.
// It is passed by VALUE to constructors.
type builderConfig struct {
	firstLabel  int        // label of the first generated bus and branch
	rng         *rand.Rand // nil means "no randomness"
	impedanceFn ImpedanceFn
	loadFn      LoadFn
	charging    float64 // total line-charging susceptance per branch
}

const (
	defaultFirstLabel = 1
	defaultResistance = 0.01
	defaultReactance  = 0.1
	defaultLoadP      = 0.1
	defaultLoadQ      = 0.05
)

// newBuilderConfig applies opts over the defaults, last one wins.
func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{
		firstLabel:  defaultFirstLabel,
		impedanceFn: ConstantImpedanceFn(defaultResistance, defaultReactance),
		loadFn:      ConstantLoadFn(defaultLoadP, defaultLoadQ),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

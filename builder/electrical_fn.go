// SPDX-License-Identifier: MIT

package builder

import (
	"fmt"
	"math/rand"

	"github.com/katalvlaran/gridflow/network"
)

// ImpedanceFn produces a branch series impedance (r, x) in per-unit. It
// must be deterministic for a given RNG state; rng may be nil.
type ImpedanceFn func(rng *rand.Rand) (r, x float64)

// LoadFn produces the demand of one load bus. Same contract as ImpedanceFn.
type LoadFn func(rng *rand.Rand) network.Power

// ConstantImpedanceFn always yields (r, x).
// Panics if r < 0 or r and x are both zero.
func ConstantImpedanceFn(r, x float64) ImpedanceFn {
	if r < 0 || (r == 0 && x == 0) {
		panic(fmt.Sprintf("ConstantImpedanceFn: need r ≥ 0 and a non-zero impedance, got r=%g, x=%g", r, x))
	}

	return func(_ *rand.Rand) (float64, float64) { return r, x }
}

// UniformImpedanceFn samples x uniformly in [minX, maxX] and sets r = ratio·x.
// Panics unless 0 < minX ≤ maxX and ratio ≥ 0.
// With a nil rng it yields the midpoint.
func UniformImpedanceFn(minX, maxX, ratio float64) ImpedanceFn {
	if !(minX > 0) || maxX < minX || ratio < 0 {
		panic(fmt.Sprintf("UniformImpedanceFn: require 0 < minX ≤ maxX and ratio ≥ 0, got %g, %g, %g", minX, maxX, ratio))
	}

	return func(rng *rand.Rand) (float64, float64) {
		x := (minX + maxX) / 2
		if rng != nil {
			x = minX + rng.Float64()*(maxX-minX)
		}
		return ratio * x, x
	}
}

// ConstantLoadFn always yields demand p + jq.
func ConstantLoadFn(p, q float64) LoadFn {
	return func(_ *rand.Rand) network.Power { return network.Power{Active: p, Reactive: q} }
}

// UniformLoadFn samples active demand uniformly in [minP, maxP] with a
// fixed reactive-to-active ratio. Panics if maxP < minP.
// With a nil rng it yields the midpoint.
func UniformLoadFn(minP, maxP, ratio float64) LoadFn {
	if maxP < minP {
		panic(fmt.Sprintf("UniformLoadFn: require minP ≤ maxP, got %g, %g", minP, maxP))
	}

	return func(rng *rand.Rand) network.Power {
		p := (minP + maxP) / 2
		if rng != nil {
			p = minP + rng.Float64()*(maxP-minP)
		}
		return network.Power{Active: p, Reactive: ratio * p}
	}
}

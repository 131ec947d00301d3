// SPDX-License-Identifier: MIT

// Package matrix: numeric policy defaults and functional options for the
// LU kernel. Option constructors panic on nonsensical values (programmer
// error); kernels never panic on data.
package matrix

import "math"

// Numeric policy.
const (
	// DefaultValidateNaNInf toggles strict finite-value validation on Set.
	DefaultValidateNaNInf = true

	// DefaultPivotTolerance is the relative pivot threshold: a column whose
	// largest candidate is below tol·‖A‖∞ is treated as singular.
	DefaultPivotTolerance = 1e-13
)

// luOptions holds factorization knobs.
type luOptions struct {
	pivotTol float64
}

// LUOption configures Factorize.
type LUOption func(*luOptions)

// WithPivotTolerance sets the relative pivot threshold.
// Panics if tol is negative or not finite.
func WithPivotTolerance(tol float64) LUOption {
	if tol < 0 || math.IsNaN(tol) || math.IsInf(tol, 0) {
		panic("matrix: WithPivotTolerance requires a finite non-negative tolerance")
	}

	return func(o *luOptions) { o.pivotTol = tol }
}

func gatherLUOptions(opts ...LUOption) luOptions {
	o := luOptions{pivotTol: DefaultPivotTolerance}
	for _, fn := range opts {
		fn(&o)
	}

	return o
}

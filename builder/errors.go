// SPDX-License-Identifier: MIT
// Package: gridflow/builder
//
// errors.go — sentinel errors for the builder package.
//
// Callers branch with errors.Is. Constructors attach context with %w;
// option constructors panic on meaningless values instead.

package builder

import (
	"errors"
	"fmt"
)

// ErrTooFewBuses indicates a size parameter (n, rows, cols) below the
// minimum of the requested constructor.
var ErrTooFewBuses = errors.New("builder: parameter too small")

// ErrInvalidProbability indicates a probability outside [0,1].
var ErrInvalidProbability = errors.New("builder: probability out of range")

// ErrNeedRandSource indicates a stochastic constructor ran without
// WithSeed or WithRand.
var ErrNeedRandSource = errors.New("builder: rng is required")

// ErrConstructFailed indicates the network rejected a generated element
// or a nil constructor was passed.
var ErrConstructFailed = errors.New("builder: construction failed")

// builderErrorf prefixes err with the constructor name.
func builderErrorf(method, format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", method, fmt.Errorf(format, args...))
}

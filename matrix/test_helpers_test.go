// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers.

package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/gridflow/matrix"
)

// hide wraps any Matrix to hide its concrete type from type assertions,
// forcing kernels onto their interface fallback path.
type hide struct{ matrix.Matrix }

// MustDense builds a rows×cols Dense from row-major values or fails the test.
func MustDense(t *testing.T, rows, cols int, values ...float64) *matrix.Dense {
	t.Helper()
	if len(values) == 0 {
		values = make([]float64, rows*cols)
	}
	m, err := matrix.NewDenseFrom(rows, cols, values)
	if err != nil {
		t.Fatalf("NewDenseFrom(%d,%d): %v", rows, cols, err)
	}

	return m
}

// MustAt reads (i,j) or fails the test.
func MustAt(t *testing.T, m matrix.Matrix, i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	if err != nil {
		t.Fatalf("At(%d,%d): %v", i, j, err)
	}

	return v
}

// closeVec fails when any |a_i - b_i| exceeds tol.
func closeVec(t *testing.T, got, want []float64, tol float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d want %d", len(got), len(want))
	}
	for i := range got {
		if math.Abs(got[i]-want[i]) > tol {
			t.Fatalf("element %d: got %.12g want %.12g", i, got[i], want[i])
		}
	}
}

// SPDX-License-Identifier: MIT
// Package matrix_test contains unit tests for the CSR storage.
package matrix_test

import (
	"errors"
	"testing"

	"github.com/katalvlaran/gridflow/matrix"
)

func TestTripletCompressSumsDuplicates(t *testing.T) {
	tr, err := matrix.NewTriplet[complex128](3, 3)
	if err != nil {
		t.Fatalf("NewTriplet: %v", err)
	}
	stamps := []struct {
		i, j int
		v    complex128
	}{
		{2, 2, 1 + 1i}, {0, 1, -2i}, {0, 0, 3}, {2, 2, 1 - 2i}, {0, 0, 1i},
	}
	for _, s := range stamps {
		if err := tr.Add(s.i, s.j, s.v); err != nil {
			t.Fatalf("Add(%d,%d): %v", s.i, s.j, err)
		}
	}
	if err := tr.Add(3, 0, 1); !errors.Is(err, matrix.ErrOutOfRange) {
		t.Fatalf("Add out of range: want ErrOutOfRange, got %v", err)
	}
	s := tr.Compress()
	if s.NNZ() != 3 {
		t.Fatalf("NNZ = %d, want 3", s.NNZ())
	}
	if v, _ := s.At(0, 0); v != 3+1i {
		t.Fatalf("At(0,0) = %v", v)
	}
	if v, _ := s.At(2, 2); v != 2-1i {
		t.Fatalf("At(2,2) = %v", v)
	}
	if v, _ := s.At(1, 1); v != 0 {
		t.Fatalf("absent entry must read 0, got %v", v)
	}
	var cols []int
	s.Row(0, func(j int, _ complex128) bool { cols = append(cols, j); return true })
	if len(cols) != 2 || cols[0] != 0 || cols[1] != 1 {
		t.Fatalf("row 0 columns = %v, want [0 1]", cols)
	}
	d := s.Diag()
	if d[0] != 3+1i || d[1] != 0 || d[2] != 2-1i {
		t.Fatalf("Diag = %v", d)
	}
}

func TestSparseMulVecMatchesDense(t *testing.T) {
	tr, _ := matrix.NewTriplet[float64](2, 3)
	_ = tr.Add(0, 0, 1)
	_ = tr.Add(0, 2, 3)
	_ = tr.Add(1, 1, 4)
	_ = tr.Add(1, 2, -1)
	s := tr.Compress()
	y, err := s.MulVec([]float64{1, 1, 1})
	if err != nil {
		t.Fatalf("MulVec: %v", err)
	}
	closeVec(t, y, []float64{4, 3}, 0)
	if _, err := s.MulVec([]float64{1}); !errors.Is(err, matrix.ErrDimensionMismatch) {
		t.Fatalf("short x: want ErrDimensionMismatch, got %v", err)
	}
}

func TestSubmatrixSelectsAndReorders(t *testing.T) {
	tr, _ := matrix.NewTriplet[float64](3, 3)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			_ = tr.Add(i, j, float64(10*i+j))
		}
	}
	s := tr.Compress()
	d, err := matrix.Submatrix(s, []int{2, 0}, []int{1, 2})
	if err != nil {
		t.Fatalf("Submatrix: %v", err)
	}
	closeVec(t, d.RawRowMajor(), []float64{21, 22, 1, 2}, 0)
	if d, err := matrix.Submatrix(s, nil, []int{0}); d != nil || err != nil {
		t.Fatalf("empty selection: want (nil, nil), got (%v, %v)", d, err)
	}
	if _, err := matrix.Submatrix(s, []int{5}, []int{0}); !errors.Is(err, matrix.ErrOutOfRange) {
		t.Fatalf("bad row: want ErrOutOfRange, got %v", err)
	}
}

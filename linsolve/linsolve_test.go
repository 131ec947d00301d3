package linsolve_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/gridflow/linsolve"
	"github.com/katalvlaran/gridflow/matrix"
)

var strategies = []linsolve.Strategy{linsolve.Generic, linsolve.LU}

func dense(t *testing.T, n int, values ...float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFrom(n, n, values)
	require.NoError(t, err)

	return m
}

func TestSolveKnownSystem(t *testing.T) {
	a := dense(t, 3, 4, -2, 1, -2, 4, -2, 1, -2, 4)
	want := []float64{1, 2, 3}
	b, err := a.MulVec(want)
	require.NoError(t, err)
	for _, s := range strategies {
		t.Run(s.String(), func(t *testing.T) {
			x, err := linsolve.New(s).Solve(a, b)
			require.NoError(t, err)
			require.True(t, floats.EqualApprox(want, x, 1e-12), "x=%v", x)
		})
	}
}

func TestStrategiesAgreeOnRandomSystems(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	const n = 12
	for trial := 0; trial < 5; trial++ {
		vals := make([]float64, n*n)
		for i := range vals {
			vals[i] = rng.Float64()*2 - 1
		}
		for i := 0; i < n; i++ {
			vals[i*n+i] += n // diagonally dominant
		}
		a := dense(t, n, vals...)
		b := make([]float64, n)
		for i := range b {
			b[i] = rng.NormFloat64()
		}
		xg, err := linsolve.New(linsolve.Generic).Solve(a, b)
		require.NoError(t, err)
		xl, err := linsolve.New(linsolve.LU).Solve(a, b)
		require.NoError(t, err)
		require.True(t, floats.EqualApprox(xg, xl, 1e-10))

		r, err := a.MulVec(xl)
		require.NoError(t, err)
		floats.Sub(r, b)
		require.Less(t, floats.Norm(r, 2), 1e-10)
	}
}

func TestSingularMatrix(t *testing.T) {
	a := dense(t, 3, 1, 2, 3, 2, 4, 6, 0, 1, 1)
	for _, s := range strategies {
		t.Run(s.String(), func(t *testing.T) {
			x, err := linsolve.New(s).Solve(a, []float64{1, 2, 3})
			require.Nil(t, x)
			require.ErrorIs(t, err, linsolve.ErrSingularMatrix)

			annotated := linsolve.Annotate(err, "jacobian", 4)
			var se *linsolve.SingularMatrixError
			require.True(t, errors.As(annotated, &se))
			require.Equal(t, "jacobian", se.Matrix)
			require.Equal(t, 4, se.Iteration)
			require.Contains(t, se.Error(), "jacobian")
		})
	}
}

func TestLUReportsFailingRow(t *testing.T) {
	a := dense(t, 2, 1, 1, 2, 2)
	_, err := linsolve.New(linsolve.LU).Factorize(a)
	var se *linsolve.SingularMatrixError
	require.True(t, errors.As(err, &se))
	require.Equal(t, 1, se.Row)
	require.ErrorIs(t, err, matrix.ErrSingular, "kernel cause stays in the chain")
}

func TestFactorReuse(t *testing.T) {
	a := dense(t, 2, 2, 1, 1, 3)
	for _, s := range strategies {
		f, err := linsolve.New(s).Factorize(a)
		require.NoError(t, err)
		require.Equal(t, 2, f.Order())
		for _, b := range [][]float64{{3, 4}, {1, 0}, {0, 1}} {
			x, err := f.Solve(b)
			require.NoError(t, err)
			require.InDelta(t, b[0], 2*x[0]+x[1], 1e-12)
			require.InDelta(t, b[1], x[0]+3*x[1], 1e-12)
		}
		_, err = f.Solve([]float64{1})
		require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	}
}

func TestRejectsMalformedInput(t *testing.T) {
	rect, err := matrix.NewDense(2, 3)
	require.NoError(t, err)
	for _, s := range strategies {
		_, err := linsolve.New(s).Solve(rect, []float64{1, 2})
		require.ErrorIs(t, err, matrix.ErrNonSquare)
		_, err = linsolve.New(s).Solve(nil, nil)
		require.ErrorIs(t, err, matrix.ErrNilMatrix)
	}
}

func TestParseStrategy(t *testing.T) {
	s, err := linsolve.ParseStrategy("mldivide")
	require.NoError(t, err)
	require.Equal(t, linsolve.Generic, s)
	s, err = linsolve.ParseStrategy("LU")
	require.NoError(t, err)
	require.Equal(t, linsolve.LU, s)
	require.Equal(t, linsolve.LU, linsolve.New(s).Strategy())
	_, err = linsolve.ParseStrategy("qr")
	require.ErrorIs(t, err, linsolve.ErrUnknownStrategy)
	require.Panics(t, func() { linsolve.WithConditionLimit(0.5) })
}

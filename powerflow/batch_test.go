package powerflow_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gridflow/powerflow"
)

func TestSolveBatch(t *testing.T) {
	log, _ := quiet()
	n := threeBus(t, 0.01)
	methods := []powerflow.Method{
		powerflow.NewtonRaphson, powerflow.GaussSeidel, powerflow.FastDecoupledXB,
		powerflow.FastDecoupledBX, powerflow.DC,
	}
	jobs := make([]powerflow.Job, len(methods))
	for i, m := range methods {
		jobs[i] = powerflow.Job{Network: n, Options: []powerflow.Option{
			powerflow.WithMethod(m), powerflow.WithMaxIterations(2000), log,
		}}
	}

	sols, err := powerflow.SolveBatch(context.Background(), jobs, 2)
	require.NoError(t, err)
	require.Len(t, sols, len(jobs))
	for i, sol := range sols {
		require.Equal(t, methods[i], sol.Method, "solutions keep job order")
		require.True(t, sol.Converged(), methods[i].String())
	}
	for i := 1; i < 4; i++ {
		require.InDelta(t, sols[0].State.Angle[2], sols[i].State.Angle[2], 1e-6)
	}
}

func TestSolveBatchErrors(t *testing.T) {
	log, _ := quiet()
	n := twoBus(t, 0)
	jobs := []powerflow.Job{
		{Network: n, Options: []powerflow.Option{log}},
		{Network: n, Options: []powerflow.Option{log, powerflow.WithTolerance(0)}},
	}
	sols, err := powerflow.SolveBatch(context.Background(), jobs, 0)
	require.ErrorIs(t, err, powerflow.ErrConfiguration)
	require.Nil(t, sols)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = powerflow.SolveBatch(ctx, jobs[:1], 1)
	require.ErrorIs(t, err, context.Canceled)
}

// SPDX-License-Identifier: MIT

package powerflow

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/gridflow/network"
)

// Job is one independent solve of a batch.
type Job struct {
	Network *network.Network
	Options []Option
}

// SolveBatch solves jobs concurrently on at most workers goroutines
// (GOMAXPROCS when workers < 1). Solutions are returned in job order.
//
// Each job works on its own snapshot, so jobs may share a Network. The
// first error cancels jobs that have not started and is returned; ctx
// cancellation is reported the same way.
func SolveBatch(ctx context.Context, jobs []Job, workers int) ([]*Solution, error) {
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	out := make([]*Solution, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range jobs {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			sol, err := Solve(jobs[i].Network, jobs[i].Options...)
			if err != nil {
				return err
			}
			out[i] = sol
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

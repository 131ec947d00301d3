// SPDX-License-Identifier: MIT

// Package powerflow computes the steady-state operating point of an
// electrical network.
//
// Methods:
//
//	nr     Newton-Raphson, polar coordinates, dense Jacobian.
//	gs     Gauss-Seidel sweep on the bus admittance matrix.
//	fnrxb  fast-decoupled, XB variant.
//	fnrbx  fast-decoupled, BX variant.
//	dc     linear DC approximation, one direct solve.
//
// Solve is the one-call entry point. It snapshots the network, builds (or
// fetches from an admittance.Cache) the models the method needs, iterates
// an Engine and assembles results for a converged state:
//
//	sol, err := powerflow.Solve(net,
//		powerflow.WithMethod(powerflow.NewtonRaphson),
//		powerflow.WithReactiveLimits(true),
//	)
//	if err != nil {
//		return err // configuration, topology or singular-matrix failure
//	}
//	if !sol.Converged() {
//		// sol.Status is Diverged or MaxIterationsExceeded
//	}
//
// Non-convergence is a Status, not an error. NewProblem, NewEngine and Run
// expose the stages separately; an Engine's Step is pure and may be
// driven by hand.
//
// All quantities are per-unit on the network base power; angles are in
// radians. SolveBatch runs independent jobs on a bounded worker pool.
package powerflow

// Package gridflow computes the steady-state operating point of electrical
// transmission and distribution networks: the power flow.
//
// 🚀 What is gridflow?
//
//	A thread-safe, pure-Go power-flow toolkit that brings together:
//		• Network model: buses, branches, generators, version tokens, snapshots
//		• Topology: island detection and slack-bus resolution
//		• Admittance: AC bus admittance, DC and fast-decoupled susceptance models
//		• Solvers: Newton-Raphson, Gauss-Seidel, fast-decoupled XB/BX, DC
//		• Reactive limits: PV→PQ reclassification at generator limits
//		• Results: bus injections, branch flows and losses, generator dispatch
//		• Batches: bounded-concurrency solves of many cases
//
// ✨ Why gridflow?
//
//   - Explicit state – every iteration is a pure Step(State) → State
//   - Staleness-proof – models carry the network version they were built from
//   - Typed failures – topology, configuration and singular-matrix errors
//   - Pluggable linear algebra – gonum LU or the in-house pivoting kernel
//
// Packages:
//
//	matrix/     : dense and CSR storage, LU with partial pivoting
//	network/    : the in-memory network model
//	topology/   : islands and slack policy
//	admittance/ : AC/DC/fast-decoupled models and a version-checked cache
//	linsolve/   : linear solver strategies
//	powerflow/  : engines, Solve, SolveBatch
//	results/    : derived quantities of a solved state
//	config/     : YAML, .env and GRIDFLOW_* settings
//	builder/    : deterministic synthetic networks
//	examples/   : a runnable demo
//
// Quick start:
//
//	net := network.New()
//	_ = net.AddBus(1, network.WithBusType(network.Slack))
//	_ = net.AddBus(2, network.WithDemand(0.5, 0.2))
//	_ = net.AddBranch(1, 1, 2, network.WithImpedance(0.01, 0.1))
//	_ = net.AddGenerator(1, 1)
//	sol, err := powerflow.Solve(net)
//
// All electrical quantities are per-unit on the network base power;
// angles are in radians.
package gridflow

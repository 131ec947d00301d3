// Package admittance derives the per-unit network matrices used by the
// power-flow methods: the complex bus admittance matrix Y (BuildAC), the
// lossless susceptance matrix B′ with phase-shift injections (BuildDC) and
// the fast-decoupled pair B′/B″ (BuildFastDecoupled).
//
// Builders are pure functions of a network snapshot. Every model records
// the lineage and version token it was built from; Fresh reports whether it
// still matches the network, and Cache rebuilds on mismatch.
package admittance

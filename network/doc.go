// Package network defines the in-memory power system model: buses,
// branches (lines and transformers) and generators, together with the
// system base power.
//
// A Network is safe for concurrent use. It is guarded by a sync.RWMutex and
// every mutation draws a new version token, so admittance matrices and
// other derived artifacts can tell whether they were built from the current
// data. Solvers take a Snapshot before reading.
//
// Labels are caller-chosen integers. Matrix indices follow ascending bus
// label order (BusIndex).
//
// Errors:
//
//	*TopologyError        - duplicate labels, self-loops, dangling references,
//	                        missing or ambiguous slack (errors.Is ErrTopology).
//	ErrBusNotFound        - requested bus does not exist.
//	ErrBranchNotFound     - requested branch does not exist.
//	ErrGeneratorNotFound  - requested generator does not exist.
//	ErrInvalidParameter   - non-finite or physically meaningless values.
package network

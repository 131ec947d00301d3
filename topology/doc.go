// Package topology splits a network into islands and picks the reference
// (slack) bus of each one.
//
// Islands are found by breadth-first search over in-service branches.
// Resolve applies the slack policy: manual designations first, then, under
// the Auto policy, the PV bus with the largest active capability.
package topology

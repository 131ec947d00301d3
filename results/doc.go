// Package results turns a solved state into engineering quantities: bus
// injections and generation, shunt consumption, branch flows, currents,
// charging and losses, and per-generator outputs. Assembly never mutates
// the network and rejects models built from another network version.
package results

// SPDX-License-Identifier: MIT

package powerflow

import (
	"fmt"
	"strings"
)

// Method is the closed set of power-flow algorithms.
type Method int

const (
	NewtonRaphson Method = iota + 1
	GaussSeidel
	FastDecoupledXB
	FastDecoupledBX
	DC
)

var methodKeywords = map[Method]string{
	NewtonRaphson:   "nr",
	GaussSeidel:     "gs",
	FastDecoupledXB: "fnrxb",
	FastDecoupledBX: "fnrbx",
	DC:              "dc",
}

// String returns the method keyword: nr, gs, fnrxb, fnrbx or dc.
func (m Method) String() string {
	if k, ok := methodKeywords[m]; ok {
		return k
	}

	return fmt.Sprintf("Method(%d)", int(m))
}

// AC reports whether the method solves the full AC equations.
func (m Method) AC() bool { return m >= NewtonRaphson && m <= FastDecoupledBX }

func (m Method) valid() bool { return m >= NewtonRaphson && m <= DC }

// ParseMethod maps a keyword (nr, gs, fnrxb, fnrbx, dc) or a long name
// (newton-raphson, gauss-seidel, fast-decoupled-xb, fast-decoupled-bx)
// to a Method. Unknown input yields a *ConfigurationError.
func ParseMethod(s string) (Method, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	switch key {
	case "nr", "newton-raphson", "newtonraphson":
		return NewtonRaphson, nil
	case "gs", "gauss-seidel", "gaussseidel":
		return GaussSeidel, nil
	case "fnrxb", "fdxb", "fast-decoupled-xb":
		return FastDecoupledXB, nil
	case "fnrbx", "fdbx", "fast-decoupled-bx":
		return FastDecoupledBX, nil
	case "dc":
		return DC, nil
	default:
		return 0, configErr("method", s, "expected one of nr, gs, fnrxb, fnrbx, dc")
	}
}

// Status is the phase of a solve.
type Status int

const (
	Initialized Status = iota
	Iterating
	Converged
	Diverged
	MaxIterationsExceeded
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case Initialized:
		return "initialized"
	case Iterating:
		return "iterating"
	case Converged:
		return "converged"
	case Diverged:
		return "diverged"
	case MaxIterationsExceeded:
		return "max iterations exceeded"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Terminal reports whether s ends a solve.
func (s Status) Terminal() bool { return s >= Converged }

// SPDX-License-Identifier: MIT

package network

import (
	"errors"
	"fmt"
)

// Sentinel errors for network model operations.
var (
	// ErrTopology is matched by every *TopologyError.
	ErrTopology = errors.New("network: topology error")

	// ErrBusNotFound indicates an operation referenced a non-existent bus.
	ErrBusNotFound = errors.New("network: bus not found")

	// ErrBranchNotFound indicates an operation referenced a non-existent branch.
	ErrBranchNotFound = errors.New("network: branch not found")

	// ErrGeneratorNotFound indicates an operation referenced a non-existent generator.
	ErrGeneratorNotFound = errors.New("network: generator not found")

	// ErrInvalidParameter indicates a physically meaningless value, e.g. a
	// branch with zero series impedance or a non-finite demand.
	ErrInvalidParameter = errors.New("network: invalid parameter")
)

// TopologyKind classifies a TopologyError.
type TopologyKind int

const (
	// DanglingReference: a branch or generator names a bus that does not exist.
	DanglingReference TopologyKind = iota + 1
	// DuplicateLabel: a bus, branch or generator label is already taken.
	DuplicateLabel
	// SelfLoop: a branch connects a bus to itself.
	SelfLoop
	// MissingSlack: an island has no slack bus.
	MissingSlack
	// AmbiguousSlack: an island has more than one slack bus.
	AmbiguousSlack
)

// String returns the kind name used in error messages and logs.
func (k TopologyKind) String() string {
	switch k {
	case DanglingReference:
		return "dangling reference"
	case DuplicateLabel:
		return "duplicate label"
	case SelfLoop:
		return "self-loop"
	case MissingSlack:
		return "missing slack"
	case AmbiguousSlack:
		return "ambiguous slack"
	default:
		return fmt.Sprintf("TopologyKind(%d)", int(k))
	}
}

// TopologyError reports a structural defect of the network. Label is the
// offending bus, branch or generator label; Detail names which.
type TopologyError struct {
	Kind   TopologyKind
	Label  int
	Detail string
}

// Error implements error.
func (e *TopologyError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("network: %s (label %d)", e.Kind, e.Label)
	}

	return fmt.Sprintf("network: %s (label %d): %s", e.Kind, e.Label, e.Detail)
}

// Is matches ErrTopology.
func (e *TopologyError) Is(target error) bool { return target == ErrTopology }

// networkErrorf wraps err with the operation name.
func networkErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}

func topologyErrorf(kind TopologyKind, label int, format string, args ...interface{}) *TopologyError {
	return &TopologyError{Kind: kind, Label: label, Detail: fmt.Sprintf(format, args...)}
}

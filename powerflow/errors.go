// SPDX-License-Identifier: MIT

package powerflow

import (
	"errors"
	"fmt"
)

// ErrConfiguration is matched by every *ConfigurationError.
var ErrConfiguration = errors.New("powerflow: invalid configuration")

// ConfigurationError reports an invalid invocation parameter.
type ConfigurationError struct {
	Field  string
	Value  interface{}
	Reason string
}

// Error implements error.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("powerflow: invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

// Is matches ErrConfiguration.
func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

func configErr(field string, value interface{}, reason string) *ConfigurationError {
	return &ConfigurationError{Field: field, Value: value, Reason: reason}
}

// pfErrorf wraps err with the operation name.
func pfErrorf(op string, err error) error {
	return fmt.Errorf("powerflow: %s: %w", op, err)
}

// SPDX-License-Identifier: MIT
// Package: gridflow/builder
//
// impl_generators.go — PVGenerators: voltage-controlled units on load buses.

package builder

import "github.com/katalvlaran/gridflow/network"

const methodPVGenerators = "PVGenerators"

// PVGenerators returns a Constructor that attaches a generator with the
// given active output and voltage setpoint to every step-th non-slack bus
// (label order, starting with the step-th). Extra generator options such
// as reactive limits apply to each unit.
//
// Errors: ErrTooFewBuses when step < 1.
func PVGenerators(step int, output, setpoint float64, opts ...network.GeneratorOption) Constructor {
	return func(net *network.Network, cfg builderConfig) error {
		if err := validateMin(methodPVGenerators, step, 1); err != nil {
			return err
		}
		gopts := append([]network.GeneratorOption{
			network.WithOutput(output, 0),
			network.WithSetpoint(setpoint),
		}, opts...)
		k := 0
		for _, b := range net.Buses() {
			if b.Type == network.Slack {
				continue
			}
			k++
			if k%step != 0 {
				continue
			}
			if err := addGenerator(net, cfg, methodPVGenerators, b.Label, gopts...); err != nil {
				return err
			}
		}

		return nil
	}
}

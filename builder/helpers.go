// SPDX-License-Identifier: MIT

package builder

import (
	"fmt"

	"github.com/katalvlaran/gridflow/network"
)

func validateMin(method string, got, min int) error {
	if got < min {
		return builderErrorf(method, "n=%d < min=%d: %w", got, min, ErrTooFewBuses)
	}

	return nil
}

func validateProbability(method string, p float64) error {
	if !(p >= 0 && p <= 1) {
		return builderErrorf(method, "p=%.6f not in [0,1]: %w", p, ErrInvalidProbability)
	}

	return nil
}

// nextLabel returns the label after the highest of labels, or first.
func nextLabel(labels []int, first int) int {
	if len(labels) == 0 {
		return first
	}
	next := labels[0]
	for _, l := range labels {
		if l > next {
			next = l
		}
	}

	return next + 1
}

// addIsland appends count buses: the first is a slack bus with a generator
// at its default setpoint, the rest carry demand from cfg.loadFn.
// Returns the new labels in order.
func addIsland(n *network.Network, cfg builderConfig, method string, count int) ([]int, error) {
	first := nextLabel(n.BusLabels(), cfg.firstLabel)
	labels := make([]int, count)
	for i := range labels {
		labels[i] = first + i
		var opts []network.BusOption
		if i == 0 {
			opts = append(opts, network.WithBusType(network.Slack))
		} else {
			d := cfg.loadFn(cfg.rng)
			opts = append(opts, network.WithDemand(d.Active, d.Reactive))
		}
		if err := n.AddBus(labels[i], opts...); err != nil {
			return nil, builderErrorf(method, "AddBus(%d): %w", labels[i], err)
		}
	}
	if err := addGenerator(n, cfg, method, labels[0]); err != nil {
		return nil, err
	}

	return labels, nil
}

func addGenerator(n *network.Network, cfg builderConfig, method string, bus int, opts ...network.GeneratorOption) error {
	var used []int
	for _, g := range n.Generators() {
		used = append(used, g.Label)
	}
	label := nextLabel(used, cfg.firstLabel)
	if err := n.AddGenerator(label, bus, opts...); err != nil {
		return builderErrorf(method, "AddGenerator(%d at %d): %w", label, bus, err)
	}

	return nil
}

// lines hands out branch labels for one constructor run.
type lines struct {
	n      *network.Network
	cfg    builderConfig
	method string
	next   int
}

func newLines(n *network.Network, cfg builderConfig, method string) *lines {
	var used []int
	for _, br := range n.Branches() {
		used = append(used, br.Label)
	}

	return &lines{n: n, cfg: cfg, method: method, next: nextLabel(used, cfg.firstLabel)}
}

// add adds a branch from→to with an impedance from cfg.impedanceFn.
func (l *lines) add(from, to int) error {
	n, cfg, method := l.n, l.cfg, l.method
	label := l.next
	l.next++
	r, x := cfg.impedanceFn(cfg.rng)
	err := n.AddBranch(label, from, to, network.WithImpedance(r, x), network.WithCharging(cfg.charging))
	if err != nil {
		return fmt.Errorf("%s: AddBranch(%d: %d→%d): %w: %w", method, label, from, to, ErrConstructFailed, err)
	}

	return nil
}

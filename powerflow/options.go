// SPDX-License-Identifier: MIT

package powerflow

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/gridflow/admittance"
	"github.com/katalvlaran/gridflow/linsolve"
	"github.com/katalvlaran/gridflow/topology"
)

// Defaults.
const (
	DefaultMethod          = NewtonRaphson
	DefaultMaxIterations   = 100
	DefaultTolerance       = 1e-8
	DefaultDivergenceBound = 1e10
)

// Option configures a solve. Options only record values; Solve and
// NewEngine validate them and report *ConfigurationError.
type Option func(*options)

type options struct {
	method          Method
	maxIterations   int
	tolerance       float64
	reactiveLimits  bool
	strategy        linsolve.Strategy
	slackPolicy     topology.Policy
	flatStart       bool
	initial         *State
	divergenceBound float64
	cache           *admittance.Cache
	logger          logrus.FieldLogger
}

func defaultOptions() options {
	return options{
		method:          DefaultMethod,
		maxIterations:   DefaultMaxIterations,
		tolerance:       DefaultTolerance,
		strategy:        linsolve.Generic,
		slackPolicy:     topology.Manual,
		divergenceBound: DefaultDivergenceBound,
		logger:          logrus.StandardLogger(),
	}
}

func gatherOptions(opts ...Option) (options, error) {
	o := defaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	return o, o.validate()
}

// CheckOptions validates opts the way Solve does without solving.
func CheckOptions(opts ...Option) error {
	_, err := gatherOptions(opts...)

	return err
}

// engineSetting names the first engine-owned option that differs between
// a and b, or returns "".
func engineSetting(a, b options) string {
	switch {
	case a.method != b.method:
		return "method"
	case a.tolerance != b.tolerance:
		return "tolerance"
	case a.reactiveLimits != b.reactiveLimits:
		return "reactive limits"
	case a.strategy != b.strategy:
		return "solver"
	case a.slackPolicy != b.slackPolicy:
		return "slack policy"
	case a.flatStart != b.flatStart:
		return "flat start"
	case a.initial != b.initial:
		return "initial state"
	case a.cache != b.cache:
		return "cache"
	}

	return ""
}

func (o options) validate() error {
	switch {
	case !o.method.valid():
		return configErr("method", o.method, "unknown method")
	case o.maxIterations < 1:
		return configErr("max iterations", o.maxIterations, "must be at least 1")
	case !(o.tolerance > 0) || math.IsInf(o.tolerance, 0):
		return configErr("tolerance", o.tolerance, "must be a positive finite number")
	case o.strategy != linsolve.Generic && o.strategy != linsolve.LU:
		return configErr("solver", o.strategy, "unknown linear solver strategy")
	case o.slackPolicy != topology.Manual && o.slackPolicy != topology.Auto:
		return configErr("slack policy", o.slackPolicy, "unknown slack policy")
	case !(o.divergenceBound > 0) || math.IsInf(o.divergenceBound, 0):
		return configErr("divergence bound", o.divergenceBound, "must be a positive finite number")
	case o.reactiveLimits && !o.method.AC():
		return configErr("reactive limits", o.reactiveLimits, "only AC methods enforce reactive limits")
	case o.logger == nil:
		return configErr("logger", nil, "must not be nil")
	}

	return nil
}

// WithMethod selects the algorithm (default NewtonRaphson).
func WithMethod(m Method) Option { return func(o *options) { o.method = m } }

// WithMaxIterations sets the iteration cap (default 100).
func WithMaxIterations(n int) Option { return func(o *options) { o.maxIterations = n } }

// WithTolerance sets the stopping tolerance on the largest absolute power
// mismatch (default 1e-8).
func WithTolerance(tol float64) Option { return func(o *options) { o.tolerance = tol } }

// WithReactiveLimits enables PV→PQ reclassification at generator reactive
// limits. AC methods only.
func WithReactiveLimits(enabled bool) Option {
	return func(o *options) { o.reactiveLimits = enabled }
}

// WithSolver selects the linear solver strategy (default linsolve.Generic).
func WithSolver(s linsolve.Strategy) Option { return func(o *options) { o.strategy = s } }

// WithSlackPolicy selects how slack-less islands are handled. Ignored when
// WithCache is given; the cache carries its own policy.
func WithSlackPolicy(p topology.Policy) Option { return func(o *options) { o.slackPolicy = p } }

// WithFlatStart starts from magnitude 1.0 (setpoints for PV and slack
// buses) and angle 0 instead of the bus initial values.
func WithFlatStart() Option { return func(o *options) { o.flatStart = true } }

// WithInitialState starts from a previously returned state. Its roles and
// reclassification flags are reused.
func WithInitialState(s State) Option {
	return func(o *options) {
		cp := s.Clone()
		o.initial = &cp
	}
}

// WithDivergenceBound sets the sanity bound on mismatch and magnitudes
// (default 1e10).
func WithDivergenceBound(bound float64) Option {
	return func(o *options) { o.divergenceBound = bound }
}

// WithCache reuses admittance models across solves of one network lineage.
func WithCache(c *admittance.Cache) Option { return func(o *options) { o.cache = c } }

// WithLogger sets the structured logger (default logrus.StandardLogger()).
func WithLogger(l logrus.FieldLogger) Option { return func(o *options) { o.logger = l } }

// SPDX-License-Identifier: MIT

// Package config loads solver settings from a YAML file, optional .env
// files and GRIDFLOW_* environment variables, and turns them into
// powerflow options.
//
// Precedence, lowest first: defaults, YAML file, .env files, process
// environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/gridflow/linsolve"
	"github.com/katalvlaran/gridflow/powerflow"
	"github.com/katalvlaran/gridflow/topology"
)

// Environment variable names.
const (
	EnvMethod          = "GRIDFLOW_METHOD"
	EnvMaxIterations   = "GRIDFLOW_MAX_ITERATIONS"
	EnvTolerance       = "GRIDFLOW_TOLERANCE"
	EnvReactiveLimits  = "GRIDFLOW_REACTIVE_LIMITS"
	EnvSolver          = "GRIDFLOW_SOLVER"
	EnvSlackPolicy     = "GRIDFLOW_SLACK_POLICY"
	EnvFlatStart       = "GRIDFLOW_FLAT_START"
	EnvDivergenceBound = "GRIDFLOW_DIVERGENCE_BOUND"
	EnvLogLevel        = "GRIDFLOW_LOG_LEVEL"
)

// Settings mirrors the solve options in a serializable form.
type Settings struct {
	Method          string  `yaml:"method"`
	MaxIterations   int     `yaml:"max_iterations"`
	Tolerance       float64 `yaml:"tolerance"`
	ReactiveLimits  bool    `yaml:"reactive_limits"`
	Solver          string  `yaml:"solver"`
	SlackPolicy     string  `yaml:"slack_policy"`
	FlatStart       bool    `yaml:"flat_start"`
	DivergenceBound float64 `yaml:"divergence_bound"`
	LogLevel        string  `yaml:"log_level"`
}

// Default returns the settings matching the powerflow defaults.
func Default() Settings {
	return Settings{
		Method:          powerflow.DefaultMethod.String(),
		MaxIterations:   powerflow.DefaultMaxIterations,
		Tolerance:       powerflow.DefaultTolerance,
		Solver:          "generic",
		SlackPolicy:     topology.Manual.String(),
		DivergenceBound: powerflow.DefaultDivergenceBound,
		LogLevel:        logrus.InfoLevel.String(),
	}
}

// Load builds Settings from defaults, the YAML file at path (skipped when
// path is empty), the given .env files (missing ones are skipped) and the
// process environment.
//
// Errors:
//   - file read or YAML decode failures, wrapped with the path.
//   - *powerflow.ConfigurationError for an unparsable environment value.
func Load(path string, envFiles ...string) (Settings, error) {
	s := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Settings{}, fmt.Errorf("config: %w", err)
		}
		if err := yaml.Unmarshal(raw, &s); err != nil {
			return Settings{}, fmt.Errorf("config: %s: %w", path, err)
		}
	}

	env := make(map[string]string)
	for _, f := range envFiles {
		vals, err := godotenv.Read(f)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return Settings{}, fmt.Errorf("config: %s: %w", f, err)
		}
		for k, v := range vals {
			env[k] = v
		}
	}
	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := env[key]
		return v, ok
	}
	if err := s.apply(lookup); err != nil {
		return Settings{}, err
	}

	return s, nil
}

func (s *Settings) apply(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok {
			*dst = strings.TrimSpace(v)
		}
	}
	str(EnvMethod, &s.Method)
	str(EnvSolver, &s.Solver)
	str(EnvSlackPolicy, &s.SlackPolicy)
	str(EnvLogLevel, &s.LogLevel)

	if v, ok := lookup(EnvMaxIterations); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return envErr(EnvMaxIterations, v, err)
		}
		s.MaxIterations = n
	}
	for key, dst := range map[string]*float64{EnvTolerance: &s.Tolerance, EnvDivergenceBound: &s.DivergenceBound} {
		if v, ok := lookup(key); ok {
			f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				return envErr(key, v, err)
			}
			*dst = f
		}
	}
	for key, dst := range map[string]*bool{EnvReactiveLimits: &s.ReactiveLimits, EnvFlatStart: &s.FlatStart} {
		if v, ok := lookup(key); ok {
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				return envErr(key, v, err)
			}
			*dst = b
		}
	}

	return nil
}

func envErr(key, value string, err error) error {
	return &powerflow.ConfigurationError{Field: key, Value: value, Reason: err.Error()}
}

// Logger returns a logrus logger at the configured level.
//
// Errors: *powerflow.ConfigurationError for an unknown level.
func (s Settings) Logger() (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(s.LogLevel)
	if err != nil {
		return nil, &powerflow.ConfigurationError{Field: "log level", Value: s.LogLevel, Reason: err.Error()}
	}
	l := logrus.New()
	l.SetLevel(lvl)

	return l, nil
}

// Options converts s into powerflow options, including a logger at the
// configured level. The result is validated as Solve would validate it.
//
// Errors: *powerflow.ConfigurationError.
func (s Settings) Options() ([]powerflow.Option, error) {
	m, err := powerflow.ParseMethod(s.Method)
	if err != nil {
		return nil, err
	}
	strategy, err := linsolve.ParseStrategy(s.Solver)
	if err != nil {
		return nil, &powerflow.ConfigurationError{Field: "solver", Value: s.Solver, Reason: err.Error()}
	}
	policy, err := topology.ParsePolicy(s.SlackPolicy)
	if err != nil {
		return nil, &powerflow.ConfigurationError{Field: "slack policy", Value: s.SlackPolicy, Reason: err.Error()}
	}
	logger, err := s.Logger()
	if err != nil {
		return nil, err
	}

	opts := []powerflow.Option{
		powerflow.WithMethod(m),
		powerflow.WithMaxIterations(s.MaxIterations),
		powerflow.WithTolerance(s.Tolerance),
		powerflow.WithReactiveLimits(s.ReactiveLimits),
		powerflow.WithSolver(strategy),
		powerflow.WithSlackPolicy(policy),
		powerflow.WithDivergenceBound(s.DivergenceBound),
		powerflow.WithLogger(logger),
	}
	if s.FlatStart {
		opts = append(opts, powerflow.WithFlatStart())
	}
	if err := powerflow.CheckOptions(opts...); err != nil {
		return nil, err
	}

	return opts, nil
}

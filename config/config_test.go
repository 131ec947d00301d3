package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gridflow/config"
	"github.com/katalvlaran/gridflow/powerflow"
)

func write(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))

	return p
}

func TestDefaults(t *testing.T) {
	s, err := config.Load("")
	require.NoError(t, err)
	require.Equal(t, config.Default(), s)

	opts, err := s.Options()
	require.NoError(t, err)
	require.NotEmpty(t, opts)
}

func TestLoadPrecedence(t *testing.T) {
	yml := write(t, "gridflow.yaml", `
method: gs
max_iterations: 500
tolerance: 1.0e-6
solver: lu
log_level: debug
`)
	env := write(t, ".env", "GRIDFLOW_MAX_ITERATIONS=700\nGRIDFLOW_REACTIVE_LIMITS=true\n")
	t.Setenv(config.EnvMaxIterations, "900")
	t.Setenv(config.EnvSlackPolicy, "auto")

	s, err := config.Load(yml, env, filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	require.Equal(t, "gs", s.Method)
	require.Equal(t, 900, s.MaxIterations, "process environment wins")
	require.Equal(t, 1e-6, s.Tolerance)
	require.True(t, s.ReactiveLimits, ".env beats the file")
	require.Equal(t, "lu", s.Solver)
	require.Equal(t, "auto", s.SlackPolicy)

	l, err := s.Logger()
	require.NoError(t, err)
	require.Equal(t, logrus.DebugLevel, l.GetLevel())

	_, err = s.Options()
	require.NoError(t, err)
}

func TestLoadErrors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = config.Load(write(t, "bad.yaml", "method: [nr"))
	require.Error(t, err)

	t.Setenv(config.EnvTolerance, "tiny")
	_, err = config.Load("")
	require.ErrorIs(t, err, powerflow.ErrConfiguration)
}

func TestOptionsInvalid(t *testing.T) {
	for name, mutate := range map[string]func(*config.Settings){
		"method":     func(s *config.Settings) { s.Method = "simplex" },
		"solver":     func(s *config.Settings) { s.Solver = "qr" },
		"policy":     func(s *config.Settings) { s.SlackPolicy = "largest" },
		"log level":  func(s *config.Settings) { s.LogLevel = "loud" },
		"iterations": func(s *config.Settings) { s.MaxIterations = 0 },
		"dc limits": func(s *config.Settings) {
			s.Method = "dc"
			s.ReactiveLimits = true
		},
	} {
		s := config.Default()
		mutate(&s)
		_, err := s.Options()
		require.ErrorIs(t, err, powerflow.ErrConfiguration, name)
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadWithDefaults(t *testing.T) {
	cfg, err := LoadWithDefaults(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "ffa-mmr", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, StoreBackendJSON, cfg.Store.Backend)
	assert.InDelta(t, 39.948612168502336, cfg.Rating.Gamma, 1e-12)
	assert.InDelta(t, 21.314329431412908, cfg.Rating.Beta, 1e-12)
	assert.InDelta(t, 5675.089387551527, cfg.Rating.Rho, 1e-9)
	assert.Equal(t, 200, cfg.Rating.Solver.MaxIterations)

	require.NoError(t, Validate(cfg))
}

func TestLoadMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadExpandsEnvironmentVariables(t *testing.T) {
	t.Setenv("TEST_DB_PASSWORD", "hunter2")
	path := writeConfigFile(t, `
app:
  name: ffa-mmr
  environment: development
  log_level: debug
rating:
  gamma: 40.0
  beta: 21.0
  rho: 5000.0
  solver:
    tolerance: 1e-9
    initial_step: 1.0
    max_expansions: 64
    max_iterations: 200
store:
  backend: json
  path: data/ratings.json
database:
  password: ${TEST_DB_PASSWORD}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "hunter2", cfg.Database.Password)
	assert.Equal(t, 40.0, cfg.Rating.Gamma)
}

func TestValidateRejectsBadEnvironment(t *testing.T) {
	cfg, err := LoadWithDefaults(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	cfg.App.Environment = "sandbox"
	assert.Error(t, Validate(cfg))
}

func TestValidateRejectsBadSolverPolicy(t *testing.T) {
	cfg, err := LoadWithDefaults(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	cfg.Rating.Solver.Tolerance = 0
	assert.Error(t, Validate(cfg))
}

func TestValidateRequiresJSONStorePath(t *testing.T) {
	cfg, err := LoadWithDefaults(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	cfg.Store.Path = ""
	assert.Error(t, Validate(cfg))
}

func TestValidateRequiresPostgresConnection(t *testing.T) {
	cfg, err := LoadWithDefaults(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	cfg.Store.Backend = StoreBackendPostgres
	assert.Error(t, Validate(cfg))

	cfg.Database.Host = "localhost"
	cfg.Database.Port = 5432
	cfg.Database.Name = "ratings"
	cfg.Database.User = "ffa"
	assert.NoError(t, Validate(cfg))
}

func TestValidateRejectsInvertedCalibrationRange(t *testing.T) {
	cfg, err := LoadWithDefaults(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	cfg.Calibration.BetaMin = 30
	cfg.Calibration.BetaMax = 10
	assert.Error(t, Validate(cfg))
}

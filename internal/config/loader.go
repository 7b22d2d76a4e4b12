// Package config provides configuration management for the FFA rating
// engine.
package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Load reads and parses the configuration from file and environment variables.
// It expands environment variable placeholders in the YAML file (${VAR_NAME})
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found at %s: %w", configPath, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the configuration (${VAR} syntax)
	expanded := os.ExpandEnv(string(data))

	v := newViper()
	if err := v.ReadConfig(bytes.NewBufferString(expanded)); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

// LoadWithDefaults loads configuration with default values for optional
// fields. A missing config file is not an error; defaults and environment
// variables apply.
func LoadWithDefaults(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	v := newViper()
	setDefaults(v)

	if data, err := os.ReadFile(configPath); err == nil {
		expanded := os.ExpandEnv(string(data))
		if err := v.ReadConfig(bytes.NewBufferString(expanded)); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("FFA_MMR")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "ffa-mmr")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")

	// Constants calibrated against the default FFA dataset.
	v.SetDefault("rating.gamma", 39.948612168502336)
	v.SetDefault("rating.beta", 21.314329431412908)
	v.SetDefault("rating.rho", 5675.089387551527)
	v.SetDefault("rating.solver.tolerance", 1e-9)
	v.SetDefault("rating.solver.initial_step", 1.0)
	v.SetDefault("rating.solver.max_expansions", 64)
	v.SetDefault("rating.solver.max_iterations", 200)

	v.SetDefault("store.backend", StoreBackendJSON)
	v.SetDefault("store.path", "data/ratings.json")

	v.SetDefault("ingestion.polling_interval_seconds", 60)
	v.SetDefault("ingestion.cache_ttl_seconds", 300)
	v.SetDefault("ingestion.requests_per_second", 2.0)

	v.SetDefault("calibration.trials", 100)
	v.SetDefault("calibration.gamma_min", 1e-6)
	v.SetDefault("calibration.gamma_max", 50)
	v.SetDefault("calibration.beta_min", 1e-6)
	v.SetDefault("calibration.beta_max", 50)
	v.SetDefault("calibration.rho_min", 1e-6)
	v.SetDefault("calibration.rho_max", 10000)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.port", 9090)
	v.SetDefault("metrics.path", "/metrics")
}

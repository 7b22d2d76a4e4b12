// Package config provides configuration management for the FFA rating
// engine.
package config

import (
	"fmt"
	"time"
)

// Store backends
const (
	StoreBackendJSON     = "json"
	StoreBackendPostgres = "postgres"
)

// Config represents the complete application configuration
type Config struct {
	App         AppConfig         `mapstructure:"app" validate:"required"`
	Rating      RatingConfig      `mapstructure:"rating" validate:"required"`
	Store       StoreConfig       `mapstructure:"store" validate:"required"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Ingestion   IngestionConfig   `mapstructure:"ingestion"`
	Calibration CalibrationConfig `mapstructure:"calibration"`
	Metrics     MetricsConfig     `mapstructure:"metrics"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// RatingConfig holds the model constants and the solver termination policy.
type RatingConfig struct {
	Gamma  float64      `mapstructure:"gamma" validate:"gte=0"`
	Beta   float64      `mapstructure:"beta" validate:"gt=0"`
	Rho    float64      `mapstructure:"rho" validate:"gte=0"`
	Solver SolverConfig `mapstructure:"solver" validate:"required"`
}

// SolverConfig holds the root finder termination policy.
type SolverConfig struct {
	Tolerance     float64 `mapstructure:"tolerance" validate:"gt=0"`
	InitialStep   float64 `mapstructure:"initial_step" validate:"gt=0"`
	MaxExpansions int     `mapstructure:"max_expansions" validate:"gt=0"`
	MaxIterations int     `mapstructure:"max_iterations" validate:"gt=0"`
}

// StoreConfig selects and configures the persistence backend.
type StoreConfig struct {
	Backend string `mapstructure:"backend" validate:"required,oneof=json postgres"`
	Path    string `mapstructure:"path"`
}

// DatabaseConfig represents database connection configuration
type DatabaseConfig struct {
	Host               string `mapstructure:"host"`
	Port               int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	Name               string `mapstructure:"name"`
	User               string `mapstructure:"user"`
	Password           string `mapstructure:"password"`
	SSLMode            string `mapstructure:"ssl_mode" validate:"omitempty,oneof=disable require verify-full"`
	MaxConnections     int    `mapstructure:"max_connections" validate:"omitempty,gt=0"`
	MaxIdleConnections int    `mapstructure:"max_idle_connections" validate:"omitempty,gt=0"`
}

// IngestionConfig represents game-log ingestion configuration
type IngestionConfig struct {
	SourceURL              string  `mapstructure:"source_url" validate:"omitempty,url"`
	APIKey                 string  `mapstructure:"api_key"`
	HistoricalSyncCron     string  `mapstructure:"historical_sync_cron"`
	PollingIntervalSeconds int     `mapstructure:"polling_interval_seconds" validate:"omitempty,gt=0"`
	CacheTTLSeconds        int     `mapstructure:"cache_ttl_seconds" validate:"omitempty,gt=0"`
	RequestsPerSecond      float64 `mapstructure:"requests_per_second" validate:"omitempty,gt=0"`
}

// CalibrationConfig represents hyperparameter search configuration
type CalibrationConfig struct {
	Trials   int     `mapstructure:"trials" validate:"omitempty,gt=0"`
	Seed     int64   `mapstructure:"seed"`
	GammaMin float64 `mapstructure:"gamma_min" validate:"gte=0"`
	GammaMax float64 `mapstructure:"gamma_max" validate:"gte=0"`
	BetaMin  float64 `mapstructure:"beta_min" validate:"gte=0"`
	BetaMax  float64 `mapstructure:"beta_max" validate:"gte=0"`
	RhoMin   float64 `mapstructure:"rho_min" validate:"gte=0"`
	RhoMax   float64 `mapstructure:"rho_max" validate:"gte=0"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	Path    string `mapstructure:"path"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// CacheTTL returns the ingestion cache TTL as a duration.
func (c *IngestionConfig) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// Package main provides the entry point for the rating pass CLI tool.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/ffa-mmr/internal/config"
	"github.com/yourusername/ffa-mmr/internal/database"
	"github.com/yourusername/ffa-mmr/internal/logger"
	"github.com/yourusername/ffa-mmr/internal/rating"
	"github.com/yourusername/ffa-mmr/internal/store"
)

func main() {
	var (
		configPath = flag.String("config", "config/config.yaml", "Path to config file")
		storePath  = flag.String("store", "", "Override dataset path for the json backend")
		dryRun     = flag.Bool("dry-run", false, "Process games without committing the updated dataset")
	)
	flag.Parse()

	ctx := context.Background()

	cfg := loadConfigWithSecrets(*configPath)
	log := logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
	if *storePath != "" {
		cfg.Store.Backend = config.StoreBackendJSON
		cfg.Store.Path = *storePath
	}

	st, cleanup := buildStore(ctx, cfg, log)
	defer cleanup()

	params, opts, err := rating.FromConfig(&cfg.Rating)
	if err != nil {
		log.Fatalf("Invalid rating config: %v", err)
	}
	engine, err := rating.NewEngine(params, opts, st, log)
	if err != nil {
		log.Fatalf("Failed to create engine: %v", err)
	}

	dataset, err := st.Load(ctx)
	if err != nil {
		log.Fatalf("Failed to load dataset: %v", err)
	}

	successRate, err := engine.Run(ctx, dataset, nil, !*dryRun)
	if err != nil {
		log.Fatalf("Rating pass failed: %v", err)
	}

	log.WithFields(logrus.Fields{
		"success_rate": successRate,
		"players":      len(dataset.Players),
		"committed":    !*dryRun,
	}).Info("Rating pass finished")
}

func loadConfigWithSecrets(path string) *config.Config {
	bootLog := logrus.New()
	cfg, err := config.Load(path)
	if err != nil {
		bootLog.Fatalf("Failed to load config: %v", err)
	}
	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			bootLog.Fatalf("AWS_REGION and AWS_SECRET_NAME environment variables must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			bootLog.Fatalf("Failed to load secrets: %v", err)
		}
	}
	if err := config.Validate(cfg); err != nil {
		bootLog.Fatalf("Invalid configuration: %v", err)
	}
	return cfg
}

func buildStore(ctx context.Context, cfg *config.Config, log *logrus.Logger) (store.Store, func()) {
	switch cfg.Store.Backend {
	case config.StoreBackendPostgres:
		db, err := database.NewDB(ctx, &cfg.Database)
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		st, err := store.NewPostgresStore(db)
		if err != nil {
			log.Fatalf("Failed to create store: %v", err)
		}
		return st, db.Close
	default:
		st, err := store.NewJSONStore(cfg.Store.Path)
		if err != nil {
			log.Fatalf("Failed to create store: %v", err)
		}
		return st, func() {}
	}
}

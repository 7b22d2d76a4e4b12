// Package main provides the hyperparameter calibration CLI tool.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/ffa-mmr/internal/calibrate"
	"github.com/yourusername/ffa-mmr/internal/config"
	"github.com/yourusername/ffa-mmr/internal/database"
	"github.com/yourusername/ffa-mmr/internal/logger"
	"github.com/yourusername/ffa-mmr/internal/models"
	"github.com/yourusername/ffa-mmr/internal/rating"
	"github.com/yourusername/ffa-mmr/internal/store"
)

var (
	configFile string
	trials     int
	seed       int64
	appLogger  *logrus.Logger
	cfg        *config.Config
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.Flags().IntVar(&trials, "trials", 0, "Override number of trials")
	rootCmd.Flags().Int64Var(&seed, "seed", -1, "Override random seed")
}

var rootCmd = &cobra.Command{
	Use:   "calibrate",
	Short: "Search for the best rating model constants",
	Long: `Runs a seeded random search over the (gamma, beta, rho) space. Each trial
replays the stored game log against a clone of the dataset and scores the
candidate by its prediction success rate. The stored ratings are never
modified.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if err := config.Validate(cfg); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		appLogger = logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSearch(cmd.Context())
	},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func runSearch(ctx context.Context) error {
	searchCfg, err := calibrate.FromConfig(&cfg.Calibration)
	if err != nil {
		return fmt.Errorf("invalid calibration config: %w", err)
	}
	if trials > 0 {
		searchCfg.Trials = trials
	}
	if seed >= 0 {
		searchCfg.Seed = seed
	}

	_, opts, err := rating.FromConfig(&cfg.Rating)
	if err != nil {
		return fmt.Errorf("invalid rating config: %w", err)
	}

	dataset, err := loadDataset(ctx)
	if err != nil {
		return err
	}

	searcher, err := calibrate.NewSearcher(searchCfg, opts, appLogger)
	if err != nil {
		return err
	}
	result, err := searcher.Run(ctx, dataset)
	if err != nil {
		return err
	}

	fmt.Printf("Best of %d trials (success rate %.4f):\n", len(result.Trials), result.Best.Objective)
	fmt.Printf("  gamma: %.12g\n", result.Best.Params.Gamma)
	fmt.Printf("  beta:  %.12g\n", result.Best.Params.Beta)
	fmt.Printf("  rho:   %.12g\n", result.Best.Params.Rho)

	return nil
}

func loadDataset(ctx context.Context) (*models.Dataset, error) {
	switch cfg.Store.Backend {
	case config.StoreBackendPostgres:
		db, err := database.NewDB(ctx, &cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		defer db.Close()
		st, err := store.NewPostgresStore(db)
		if err != nil {
			return nil, err
		}
		return st.Load(ctx)
	default:
		st, err := store.NewJSONStore(cfg.Store.Path)
		if err != nil {
			return nil, err
		}
		return st.Load(ctx)
	}
}

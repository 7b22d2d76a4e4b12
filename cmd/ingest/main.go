// Package main provides the entry point for the game-log ingestion service.
// It polls the remote game log on a schedule, folds new games into the
// dataset, and runs a committing rating pass whenever games arrive.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/ffa-mmr/internal/config"
	"github.com/yourusername/ffa-mmr/internal/database"
	"github.com/yourusername/ffa-mmr/internal/datasource"
	"github.com/yourusername/ffa-mmr/internal/logger"
	"github.com/yourusername/ffa-mmr/internal/metrics"
	"github.com/yourusername/ffa-mmr/internal/models"
	"github.com/yourusername/ffa-mmr/internal/rating"
	"github.com/yourusername/ffa-mmr/internal/scheduler"
	"github.com/yourusername/ffa-mmr/internal/store"
)

const historicalWindow = 7 * 24 * time.Hour

type service struct {
	mu      sync.Mutex
	dataset *models.Dataset
	client  *datasource.GameLogClient
	engine  *rating.Engine
}

// sync is the shared job body for both scheduled jobs. The mutex serializes
// overlapping runs so the dataset only ever sees one writer.
func (s *service) sync(ctx context.Context, since, until time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	added, err := s.client.Sync(ctx, s.dataset, since, until)
	if err != nil {
		return 0, err
	}
	if added == 0 {
		return 0, nil
	}

	if _, err := s.engine.Run(ctx, s.dataset, nil, true); err != nil {
		return added, fmt.Errorf("rating pass after ingestion failed: %w", err)
	}
	return added, nil
}

func main() {
	configPath := flag.String("config", "config/config.yaml", "Path to config file")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := loadConfigWithSecrets(*configPath)
	appLog := logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
	stdLog := log.New(appLog.Writer(), "", 0)

	st, cleanup := buildStore(ctx, cfg, appLog)
	defer cleanup()

	dataset, err := st.Load(ctx)
	if err != nil {
		appLog.Fatalf("Failed to load dataset: %v", err)
	}

	params, opts, err := rating.FromConfig(&cfg.Rating)
	if err != nil {
		appLog.Fatalf("Invalid rating config: %v", err)
	}
	engine, err := rating.NewEngine(params, opts, st, appLog)
	if err != nil {
		appLog.Fatalf("Failed to create engine: %v", err)
	}

	httpCfg := datasource.DefaultHTTPClientConfig()
	if cfg.Ingestion.RequestsPerSecond > 0 {
		httpCfg.RateLimit = cfg.Ingestion.RequestsPerSecond
	}
	httpClient := datasource.NewRateLimitedHTTPClient(httpCfg, stdLog)
	defer httpClient.Close()

	svc := &service{
		dataset: dataset,
		client:  datasource.NewGameLogClient(httpClient, cfg.Ingestion.SourceURL, cfg.Ingestion.APIKey, cfg.Ingestion.CacheTTL(), stdLog),
		engine:  engine,
	}

	sched := scheduler.NewScheduler(stdLog)
	if cfg.Ingestion.HistoricalSyncCron != "" {
		if err := sched.ScheduleHistoricalSync(cfg.Ingestion.HistoricalSyncCron, historicalWindow, svc.sync); err != nil {
			appLog.Fatalf("Failed to schedule historical sync: %v", err)
		}
	}
	if cfg.Ingestion.PollingIntervalSeconds > 0 {
		if err := sched.SchedulePolling(cfg.Ingestion.PollingIntervalSeconds, svc.sync); err != nil {
			appLog.Fatalf("Failed to schedule polling: %v", err)
		}
	}
	if err := sched.Start(); err != nil {
		appLog.Fatalf("Failed to start scheduler: %v", err)
	}

	metricsServer := startMetricsServer(cfg, appLog)

	appLog.WithFields(logrus.Fields{
		"source":   cfg.Ingestion.SourceURL,
		"next_run": sched.NextRun(),
	}).Info("Ingestion service started")

	<-ctx.Done()

	appLog.Info("Shutting down")
	if err := sched.Stop(); err != nil {
		appLog.Errorf("Failed to stop scheduler: %v", err)
	}
	if metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			appLog.Errorf("Failed to stop metrics server: %v", err)
		}
	}
}

func loadConfigWithSecrets(path string) *config.Config {
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			log.Fatalf("AWS_REGION and AWS_SECRET_NAME environment variables must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			log.Fatalf("Failed to load secrets: %v", err)
		}
	}
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	return cfg
}

func buildStore(ctx context.Context, cfg *config.Config, appLog *logrus.Logger) (store.Store, func()) {
	switch cfg.Store.Backend {
	case config.StoreBackendPostgres:
		db, err := database.NewDB(ctx, &cfg.Database)
		if err != nil {
			appLog.Fatalf("Failed to initialize database: %v", err)
		}
		st, err := store.NewPostgresStore(db)
		if err != nil {
			appLog.Fatalf("Failed to create store: %v", err)
		}
		return st, db.Close
	default:
		st, err := store.NewJSONStore(cfg.Store.Path)
		if err != nil {
			appLog.Fatalf("Failed to create store: %v", err)
		}
		return st, func() {}
	}
}

func startMetricsServer(cfg *config.Config, appLog *logrus.Logger) *http.Server {
	if !cfg.Metrics.Enabled {
		return nil
	}

	metrics.InitRegistry()
	mux := http.NewServeMux()
	path := cfg.Metrics.Path
	if path == "" {
		path = "/metrics"
	}
	mux.Handle(path, metrics.Handler())

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Metrics.Port),
		Handler: mux,
	}
	go func() {
		appLog.WithField("addr", server.Addr).Info("Metrics server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.Errorf("Metrics server error: %v", err)
		}
	}()

	return server
}

// Package metrics provides the centralized Prometheus metrics registry for
// the rating engine.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	GamesProcessedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "ffa_mmr",
		Name:      "games_processed_total",
		Help:      "Total number of games applied to the ratings",
	})
	GamesIngestedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "ffa_mmr",
		Name:      "games_ingested_total",
		Help:      "Total number of games ingested from the game-log source",
	})
	IngestionFetchesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "ffa_mmr",
		Name:      "ingestion_fetches_total",
		Help:      "Total number of game-log fetch requests",
	})
	CalibrationTrialsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "ffa_mmr",
		Name:      "calibration_trials_total",
		Help:      "Total number of calibration trials executed",
	})
)

// Gauge metrics
var (
	PredictionSuccessRate = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "ffa_mmr",
		Name:      "prediction_success_rate",
		Help:      "Top-3 prediction success rate of the most recent rating pass",
	})
	CalibrationBestRate = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "ffa_mmr",
		Name:      "calibration_best_success_rate",
		Help:      "Best objective value found by the calibration search",
	})
	TrackedPlayers = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "ffa_mmr",
		Name:      "tracked_players",
		Help:      "Number of players in the dataset",
	})
)

// Histogram metrics
var (
	RatingPassDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "ffa_mmr",
		Name:      "rating_pass_duration_seconds",
		Help:      "Duration of full rating passes over the game log in seconds",
		Buckets:   []float64{0.01, 0.1, 0.5, 1, 5, 10, 30, 60, 300},
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(GamesProcessedTotal)
		registry.MustRegister(GamesIngestedTotal)
		registry.MustRegister(IngestionFetchesTotal)
		registry.MustRegister(CalibrationTrialsTotal)

		registry.MustRegister(PredictionSuccessRate)
		registry.MustRegister(CalibrationBestRate)
		registry.MustRegister(TrackedPlayers)

		registry.MustRegister(RatingPassDuration)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

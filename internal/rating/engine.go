package rating

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/ffa-mmr/internal/logger"
	"github.com/yourusername/ffa-mmr/internal/metrics"
	"github.com/yourusername/ffa-mmr/internal/models"
	"github.com/yourusername/ffa-mmr/internal/solver"
	"github.com/yourusername/ffa-mmr/internal/store"
)

// Engine is the batch driver: it walks an ordered game log, applies every
// unprocessed game to the ratings, and reports the aggregate prediction
// success rate. The engine owns the dataset for the duration of a Run; no
// partially-updated state is visible to other callers until Run returns.
type Engine struct {
	params Params
	opts   solver.Options
	store  store.Store
	logger *logrus.Logger
	events *logger.RatingLogger
}

// NewEngine creates a batch driver. The store may be nil when results are
// never committed (calibration trials).
func NewEngine(params Params, opts solver.Options, st store.Store, log *logrus.Logger) (*Engine, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid params: %w", err)
	}
	if log == nil {
		log = logrus.New()
	}
	return &Engine{
		params: params,
		opts:   opts,
		store:  st,
		logger: log,
		events: logger.NewRatingLogger(log),
	}, nil
}

// Params returns the model constants the engine runs with.
func (e *Engine) Params() Params {
	return e.params
}

// Run processes every unprocessed game in the given order and returns the
// prediction success rate over the games processed in this pass (0 when
// none). Pass nil orderedIDs to derive the chronological order from the
// dataset. When commit is true the updated dataset is persisted as a single
// durable write after the pass completes.
func (e *Engine) Run(ctx context.Context, dataset *models.Dataset, orderedIDs []uuid.UUID, commit bool) (float64, error) {
	if dataset == nil {
		return 0, fmt.Errorf("dataset is required")
	}
	if commit && e.store == nil {
		return 0, fmt.Errorf("commit requested without a store")
	}
	if orderedIDs == nil {
		orderedIDs = dataset.OrderedGameIDs()
	}

	e.logger.WithField("games", len(orderedIDs)).Info("Processing game log")

	start := time.Now()
	totalProcessed := 0
	predicted := 0.0
	for _, gameID := range orderedIDs {
		if err := ctx.Err(); err != nil {
			return 0, fmt.Errorf("run cancelled: %w", err)
		}
		game, ok := dataset.Games[gameID]
		if !ok {
			return 0, fmt.Errorf("%w: %s", models.ErrGameNotFound, gameID)
		}
		if game.Processed {
			continue
		}

		contribution, err := ProcessGame(dataset.Players, game, e.params, e.opts)
		if err != nil {
			return 0, err
		}
		predicted += contribution
		totalProcessed++
		metrics.GamesProcessedTotal.Inc()
		e.events.LogGameProcessed(game.ID.String(), len(game.Ranking), contribution)
	}

	successRate := 0.0
	if totalProcessed != 0 {
		successRate = predicted / float64(totalProcessed)
	}
	metrics.PredictionSuccessRate.Set(successRate)
	metrics.TrackedPlayers.Set(float64(len(dataset.Players)))
	metrics.RatingPassDuration.Observe(time.Since(start).Seconds())

	if commit {
		if err := e.store.Save(ctx, dataset); err != nil {
			return 0, fmt.Errorf("failed to commit dataset: %w", err)
		}
	}

	e.events.LogRatingPass(totalProcessed, successRate, time.Since(start), commit)

	return successRate, nil
}

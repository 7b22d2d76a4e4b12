// Package calibrate searches the (gamma, beta, rho) space for the constants
// that maximize the engine's prediction success rate. The searcher owns the
// authoritative dataset: every trial runs the batch driver against a fresh
// clone and hands back only the scalar objective, so trials cannot leak
// state into each other or into the source data.
package calibrate

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/ffa-mmr/internal/config"
	"github.com/yourusername/ffa-mmr/internal/logger"
	"github.com/yourusername/ffa-mmr/internal/metrics"
	"github.com/yourusername/ffa-mmr/internal/models"
	"github.com/yourusername/ffa-mmr/internal/rating"
	"github.com/yourusername/ffa-mmr/internal/solver"
)

// Range bounds one sampled constant.
type Range struct {
	Min float64
	Max float64
}

func (r Range) sample(rng *rand.Rand) float64 {
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// Config controls the search.
type Config struct {
	Trials int
	Seed   int64
	Gamma  Range
	Beta   Range
	Rho    Range
}

// FromConfig converts app config into a search config.
func FromConfig(cfg *config.CalibrationConfig) (Config, error) {
	if cfg == nil {
		return Config{}, fmt.Errorf("calibration config is required")
	}
	sc := Config{
		Trials: cfg.Trials,
		Seed:   cfg.Seed,
		Gamma:  Range{Min: cfg.GammaMin, Max: cfg.GammaMax},
		Beta:   Range{Min: cfg.BetaMin, Max: cfg.BetaMax},
		Rho:    Range{Min: cfg.RhoMin, Max: cfg.RhoMax},
	}
	return sc, sc.Validate()
}

// Validate checks the search config.
func (c Config) Validate() error {
	if c.Trials <= 0 {
		return fmt.Errorf("trials must be positive")
	}
	for _, r := range []Range{c.Gamma, c.Beta, c.Rho} {
		if r.Min < 0 || r.Max < r.Min {
			return fmt.Errorf("invalid search range [%v, %v]", r.Min, r.Max)
		}
	}
	return nil
}

// Trial is one evaluated candidate.
type Trial struct {
	Params    rating.Params
	Objective float64
}

// Result holds the completed search.
type Result struct {
	Best   Trial
	Trials []Trial
}

// Searcher runs seeded random-search calibration.
type Searcher struct {
	cfg    Config
	opts   solver.Options
	logger *logrus.Logger
	events *logger.RatingLogger
}

// NewSearcher creates a calibration searcher.
func NewSearcher(cfg Config, opts solver.Options, log *logrus.Logger) (*Searcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid search config: %w", err)
	}
	if log == nil {
		log = logrus.New()
	}
	return &Searcher{
		cfg:    cfg,
		opts:   opts,
		logger: log,
		events: logger.NewRatingLogger(log),
	}, nil
}

// Run evaluates Trials candidates against clones of the dataset and returns
// the best one. The chronological game order is derived once from the source
// dataset and reused for every trial.
func (s *Searcher) Run(ctx context.Context, dataset *models.Dataset) (Result, error) {
	if dataset == nil {
		return Result{}, fmt.Errorf("dataset is required")
	}

	rng := rand.New(rand.NewSource(s.cfg.Seed))
	orderedIDs := dataset.OrderedGameIDs()

	result := Result{Best: Trial{Objective: -1}}
	for trial := 0; trial < s.cfg.Trials; trial++ {
		if err := ctx.Err(); err != nil {
			return Result{}, fmt.Errorf("search cancelled: %w", err)
		}

		params := rating.Params{
			Gamma: s.cfg.Gamma.sample(rng),
			Beta:  s.cfg.Beta.sample(rng),
			Rho:   s.cfg.Rho.sample(rng),
		}

		engine, err := rating.NewEngine(params, s.opts, nil, s.logger)
		if err != nil {
			return Result{}, fmt.Errorf("trial %d: %w", trial, err)
		}

		objective, err := engine.Run(ctx, dataset.Clone(), orderedIDs, false)
		if err != nil {
			// A candidate whose estimates fail to converge is a bad
			// candidate, not a failed search.
			s.logger.WithError(err).WithField("trial", trial).Warn("Trial discarded")
			continue
		}

		metrics.CalibrationTrialsTotal.Inc()
		s.events.LogCalibrationTrial(trial, params.Gamma, params.Beta, params.Rho, objective)

		evaluated := Trial{Params: params, Objective: objective}
		result.Trials = append(result.Trials, evaluated)
		if objective > result.Best.Objective {
			result.Best = evaluated
			metrics.CalibrationBestRate.Set(objective)
		}
	}

	if len(result.Trials) == 0 {
		return Result{}, fmt.Errorf("no calibration trial completed")
	}

	s.logger.WithFields(logrus.Fields{
		"trials":    len(result.Trials),
		"objective": result.Best.Objective,
		"gamma":     result.Best.Params.Gamma,
		"beta":      result.Best.Params.Beta,
		"rho":       result.Best.Params.Rho,
	}).Info("Calibration search completed")

	return result, nil
}

package rating

import (
	"fmt"

	"github.com/yourusername/ffa-mmr/internal/config"
	"github.com/yourusername/ffa-mmr/internal/solver"
)

// FromConfig converts app config into model params and a solver policy.
func FromConfig(cfg *config.RatingConfig) (Params, solver.Options, error) {
	if cfg == nil {
		return Params{}, solver.Options{}, fmt.Errorf("rating config is required")
	}

	params := Params{
		Gamma: cfg.Gamma,
		Beta:  cfg.Beta,
		Rho:   cfg.Rho,
	}
	if err := params.Validate(); err != nil {
		return Params{}, solver.Options{}, err
	}

	opts := solver.Options{
		Tolerance:     cfg.Solver.Tolerance,
		InitialStep:   cfg.Solver.InitialStep,
		MaxExpansions: cfg.Solver.MaxExpansions,
		MaxIterations: cfg.Solver.MaxIterations,
	}

	return params, opts, nil
}

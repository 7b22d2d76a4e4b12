// Package rating implements a Bayesian skill model for free-for-all games:
// temporal diffusion of stale ratings, maximum-likelihood performance and
// skill estimation, and order-independent batch updates over a game log.
package rating

import (
	"fmt"
)

// Params holds the three tunable constants of the model.
type Params struct {
	// Gamma is the temporal diffusion rate: how fast confidence in a
	// rating decays between observations.
	Gamma float64
	// Beta is the performance deviation: the noise of a single game
	// relative to long-run skill.
	Beta float64
	// Rho is the inverse momentum: 1/Rho controls rating volatility when
	// a player's level changes suddenly.
	Rho float64
}

// DefaultParams returns the calibrated constants for the default FFA dataset.
func DefaultParams() Params {
	return Params{
		Gamma: 39.948612168502336,
		Beta:  21.314329431412908,
		Rho:   5675.089387551527,
	}
}

// Validate checks the constants are within the model domain.
func (p Params) Validate() error {
	if p.Gamma < 0 {
		return fmt.Errorf("gamma must be non-negative, got %v", p.Gamma)
	}
	if p.Beta <= 0 {
		return fmt.Errorf("beta must be positive, got %v", p.Beta)
	}
	if p.Rho < 0 {
		return fmt.Errorf("rho must be non-negative, got %v", p.Rho)
	}
	return nil
}

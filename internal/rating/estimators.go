package rating

import (
	"fmt"
	"math"

	"github.com/yourusername/ffa-mmr/internal/models"
	"github.com/yourusername/ffa-mmr/internal/solver"
)

// Scale between a logistic distribution's standard deviation and its growth
// rate; tanh((x-mu)/(2*s*sigma)) with s = sqrt(3)/pi approximates the scaled
// CDF of a normal with deviation sigma.
var logisticScale = math.Sqrt(3) / math.Pi

// PerformanceEstimate solves for the maximum-likelihood latent performance of
// the player at index in the given ranking (winner first). Every opponent
// finishing at or above the target pulls the estimate down, everyone at or
// below pulls it up; the balance point is the root of a monotonic
// non-decreasing sum of tanh terms. The ranking must be a consistent
// snapshot: all entries read, none written.
func PerformanceEstimate(ranking []*models.Player, index int, opts solver.Options) (float64, error) {
	if index < 0 || index >= len(ranking) {
		return 0, fmt.Errorf("ranking index %d out of range [0,%d)", index, len(ranking))
	}

	f := func(x float64) float64 {
		val := 0.0
		for _, opponent := range ranking[:index+1] {
			sigma := opponent.SkillDeviation
			val += 1 / sigma * (math.Tanh((x-opponent.Skill)/(2*logisticScale*sigma)) - 1)
		}
		for _, opponent := range ranking[index:] {
			sigma := opponent.SkillDeviation
			val += 1 / sigma * (math.Tanh((x-opponent.Skill)/(2*logisticScale*sigma)) + 1)
		}
		return val
	}

	perf, err := solver.FindZero(f, opts)
	if err != nil {
		return 0, fmt.Errorf("performance estimate for %q: %w", ranking[index].ID, err)
	}
	return perf, nil
}

// SkillEstimate solves for the posterior-mode long-run skill of a player
// from their weighted performance history. The baseline slot contributes a
// linear pull, each per-game sample a bounded tanh pull.
func SkillEstimate(player *models.Player, beta float64, opts solver.Options) (float64, error) {
	if len(player.PerfHistory) == 0 || len(player.PerfHistory) != len(player.PerfWeight) {
		return 0, fmt.Errorf("skill estimate for %q: inconsistent history (%d samples, %d weights)",
			player.ID, len(player.PerfHistory), len(player.PerfWeight))
	}

	f := func(x float64) float64 {
		val := player.PerfWeight[0] * (x - player.PerfHistory[0])
		for i, weight := range player.PerfWeight {
			val += weight * beta / logisticScale * math.Tanh((x-player.PerfHistory[i])/(2*logisticScale*beta))
		}
		return val
	}

	skill, err := solver.FindZero(f, opts)
	if err != nil {
		return 0, fmt.Errorf("skill estimate for %q: %w", player.ID, err)
	}
	return skill, nil
}

package rating

import (
	"fmt"
	"sort"

	"github.com/yourusername/ffa-mmr/internal/models"
	"github.com/yourusername/ffa-mmr/internal/solver"
)

// topSlots is how many leading finishing positions the prediction-accuracy
// signal compares against the conservative pre-game ordering.
const topSlots = 3

// ProcessGame applies one game to all its participants and returns the
// game's prediction-accuracy contribution. The update is atomic: the ranking
// is validated first, all estimates are solved against a frozen snapshot of
// the diffused participants, and the live records are only replaced once
// every solve has succeeded. Already-processed games are a no-op.
func ProcessGame(players map[string]*models.Player, game *models.Game, params Params, opts solver.Options) (float64, error) {
	if game.Processed {
		return 0, nil
	}
	if err := validateRanking(players, game.Ranking); err != nil {
		return 0, err
	}

	predicted := predictionAccuracy(players, game.Ranking)

	for _, playerID := range game.Ranking {
		Diffuse(players[playerID], params.Gamma, params.Rho)
		InflateDeviation(players[playerID], params.Beta)
	}

	// Frozen post-diffusion snapshot: every performance estimate reads the
	// same ranking-wide state, so the update does not depend on the order
	// the participants are walked below.
	snapshot := make([]*models.Player, len(game.Ranking))
	for i, playerID := range game.Ranking {
		snapshot[i] = players[playerID].Clone()
	}

	updated := make([]*models.Player, len(game.Ranking))
	for i, playerID := range game.Ranking {
		perf, err := PerformanceEstimate(snapshot, i, opts)
		if err != nil {
			return 0, fmt.Errorf("game %s: %w", game.ID, err)
		}

		next := players[playerID].Clone()
		next.PerfHistory = append(next.PerfHistory, perf)
		next.PerfWeight = append(next.PerfWeight, 1/(params.Beta*params.Beta))

		skill, err := SkillEstimate(next, params.Beta, opts)
		if err != nil {
			return 0, fmt.Errorf("game %s: %w", game.ID, err)
		}
		next.Skill = skill
		updated[i] = next
	}

	for i, playerID := range game.Ranking {
		players[playerID] = updated[i]
	}
	game.Processed = true

	return predicted, nil
}

// predictionAccuracy compares the conservative pre-game ordering against the
// actual finishing order and returns the fraction of matching leading slots.
func predictionAccuracy(players map[string]*models.Player, ranking []string) float64 {
	conservative := make([]float64, len(ranking))
	for i, playerID := range ranking {
		conservative[i] = players[playerID].ConservativeSkill()
	}

	sorted := append([]float64(nil), conservative...)
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))

	slots := topSlots
	if len(ranking) < slots {
		slots = len(ranking)
	}
	matched := 0
	for i := 0; i < slots; i++ {
		if conservative[i] == sorted[i] {
			matched++
		}
	}
	return float64(matched) / float64(slots)
}

func validateRanking(players map[string]*models.Player, ranking []string) error {
	if len(ranking) == 0 {
		return models.ErrEmptyRanking
	}
	seen := make(map[string]struct{}, len(ranking))
	for _, playerID := range ranking {
		if _, dup := seen[playerID]; dup {
			return fmt.Errorf("%w: %s", models.ErrDuplicatePlayer, playerID)
		}
		seen[playerID] = struct{}{}
		if _, ok := players[playerID]; !ok {
			return fmt.Errorf("%w: %s", models.ErrUnknownPlayer, playerID)
		}
	}
	return nil
}

package rating

import (
	"math"

	"github.com/yourusername/ffa-mmr/internal/models"
)

// Diffuse decays confidence in a player's rating ahead of a new observation.
// Distant evidence is folded into the baseline slot, every historical weight
// is scaled down, and the skill deviation shrinks by the same factor. Called
// once per game per participant, before deviation inflation and estimation.
func Diffuse(player *models.Player, gamma, rho float64) {
	ensureBaseline(player)

	kappa := 1 / (1 + math.Pow(gamma/player.SkillDeviation, 2))
	kappaRho := math.Pow(kappa, rho)

	wg := kappaRho * player.PerfWeight[0]
	wl := (1 - kappaRho) * sum(player.PerfWeight)

	w := wg + wl
	if w != 0 {
		player.PerfHistory[0] = (wg*player.PerfHistory[0] + wl*player.Skill) / w
		player.PerfWeight[0] = kappa * w
	} else {
		// Weightless baseline: fold the current skill in additively.
		player.PerfHistory[0] += player.Skill
		player.PerfWeight[0] = 0
	}

	decay := math.Pow(kappa, 1+rho)
	for i := range player.PerfWeight {
		player.PerfWeight[i] *= decay
	}
	player.SkillDeviation *= math.Sqrt(kappa)
}

// InflateDeviation adds the per-game measurement noise to the player's
// uncertainty. Applied after diffusion, before estimation.
func InflateDeviation(player *models.Player, beta float64) {
	player.SkillDeviation = math.Sqrt(player.SkillDeviation*player.SkillDeviation + beta*beta)
}

// ensureBaseline seeds the rolled-up history slot for players that have
// never been diffused. The slot starts at zero with zero weight; the first
// diffusion then lands in the weightless branch and folds the starting skill
// into it.
func ensureBaseline(player *models.Player) {
	if len(player.PerfHistory) == 0 {
		player.PerfHistory = append(player.PerfHistory, 0)
		player.PerfWeight = append(player.PerfWeight, 0)
	}
}

func sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}

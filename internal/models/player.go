package models

import (
	"github.com/google/uuid"
)

// Default rating for a player with no recorded games.
const (
	StartSkill     = 1500.0
	StartDeviation = 350.0
)

// Player represents one skill-rating record. PerfHistory and PerfWeight are
// parallel slices: slot 0 is the rolled-up baseline of old evidence, later
// slots hold one performance sample per processed game. Both grow only by
// appending; slot 0 is rewritten in place during diffusion.
type Player struct {
	ID             string      `db:"id" json:"id" validate:"required"`
	Skill          float64     `db:"skill" json:"skill"`
	SkillDeviation float64     `db:"skill_deviation" json:"skill_deviation" validate:"gt=0"`
	PerfHistory    []float64   `db:"perf_history" json:"perf_history"`
	PerfWeight     []float64   `db:"perf_weight" json:"perf_weight"`
	Games          []uuid.UUID `db:"games" json:"games"`
}

// NewPlayer creates a player at the standard starting rating with no history.
func NewPlayer(id string) *Player {
	return &Player{
		ID:             id,
		Skill:          StartSkill,
		SkillDeviation: StartDeviation,
		PerfHistory:    []float64{},
		PerfWeight:     []float64{},
		Games:          []uuid.UUID{},
	}
}

// ConservativeSkill returns the pessimistic skill estimate used for outcome
// prediction: the point estimate minus three deviations.
func (p *Player) ConservativeSkill() float64 {
	return p.Skill - 3*p.SkillDeviation
}

// Clone returns a deep copy of the player record.
func (p *Player) Clone() *Player {
	cp := &Player{
		ID:             p.ID,
		Skill:          p.Skill,
		SkillDeviation: p.SkillDeviation,
		PerfHistory:    make([]float64, len(p.PerfHistory)),
		PerfWeight:     make([]float64, len(p.PerfWeight)),
		Games:          make([]uuid.UUID, len(p.Games)),
	}
	copy(cp.PerfHistory, p.PerfHistory)
	copy(cp.PerfWeight, p.PerfWeight)
	copy(cp.Games, p.Games)
	return cp
}

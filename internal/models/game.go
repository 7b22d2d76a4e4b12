package models

import (
	"time"

	"github.com/google/uuid"
)

// Game represents one free-for-all match. Ranking is the strict finishing
// order, winner first. Processed guards against applying the same game to
// the ratings twice.
type Game struct {
	ID        uuid.UUID `db:"id" json:"id" validate:"required"`
	Date      time.Time `db:"date" json:"date" validate:"required"`
	Ranking   []string  `db:"ranking" json:"ranking" validate:"required,min=1"`
	Processed bool      `db:"processed" json:"processed"`
}

// Clone returns a deep copy of the game record.
func (g *Game) Clone() *Game {
	cp := &Game{
		ID:        g.ID,
		Date:      g.Date,
		Ranking:   make([]string, len(g.Ranking)),
		Processed: g.Processed,
	}
	copy(cp.Ranking, g.Ranking)
	return cp
}

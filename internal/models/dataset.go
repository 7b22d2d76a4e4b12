package models

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Dataset holds the full player and game collections the rating engine
// operates on. It is a plain value store: chronological ordering of games is
// derived on demand, and calibration callers work on Clone()d copies so the
// authoritative dataset is never mutated by a trial run.
type Dataset struct {
	Players map[string]*Player  `json:"players"`
	Games   map[uuid.UUID]*Game `json:"games"`
}

// NewDataset creates an empty dataset.
func NewDataset() *Dataset {
	return &Dataset{
		Players: make(map[string]*Player),
		Games:   make(map[uuid.UUID]*Game),
	}
}

// AddGame records a new, unprocessed game. Players appearing for the first
// time are created at the starting rating; every participant gets the game id
// appended to their game list.
func (d *Dataset) AddGame(id uuid.UUID, date time.Time, ranking []string) (*Game, error) {
	if len(ranking) == 0 {
		return nil, ErrEmptyRanking
	}
	if _, exists := d.Games[id]; exists {
		return nil, ErrDuplicateGame
	}
	seen := make(map[string]struct{}, len(ranking))
	for _, playerID := range ranking {
		if _, dup := seen[playerID]; dup {
			return nil, ErrDuplicatePlayer
		}
		seen[playerID] = struct{}{}
	}

	game := &Game{
		ID:      id,
		Date:    date,
		Ranking: append([]string(nil), ranking...),
	}
	d.Games[id] = game

	for _, playerID := range ranking {
		player, ok := d.Players[playerID]
		if !ok {
			player = NewPlayer(playerID)
			d.Players[playerID] = player
		}
		player.Games = append(player.Games, id)
	}

	return game, nil
}

// OrderedGameIDs returns all game ids sorted by date, ties broken by id so
// the order is a stable total order over the stored games.
func (d *Dataset) OrderedGameIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(d.Games))
	for id := range d.Games {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		gi, gj := d.Games[ids[i]], d.Games[ids[j]]
		if !gi.Date.Equal(gj.Date) {
			return gi.Date.Before(gj.Date)
		}
		return gi.ID.String() < gj.ID.String()
	})
	return ids
}

// Clone returns a deep copy of the dataset. Calibration trials run against
// clones and hand back only the scalar objective.
func (d *Dataset) Clone() *Dataset {
	cp := NewDataset()
	for id, player := range d.Players {
		cp.Players[id] = player.Clone()
	}
	for id, game := range d.Games {
		cp.Games[id] = game.Clone()
	}
	return cp
}

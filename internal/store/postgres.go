package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yourusername/ffa-mmr/internal/database"
	"github.com/yourusername/ffa-mmr/internal/models"
)

// PostgresStore persists the dataset in PostgreSQL. Save replaces the stored
// collections inside a single transaction, so readers observe either the
// previous pass or the completed one, never a partial update.
type PostgresStore struct {
	db *database.DB
}

// NewPostgresStore creates a PostgreSQL-backed store.
func NewPostgresStore(db *database.DB) (*PostgresStore, error) {
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}
	return &PostgresStore{db: db}, nil
}

// Load reads the full player and game collections.
func (s *PostgresStore) Load(ctx context.Context) (*models.Dataset, error) {
	dataset := models.NewDataset()

	rows, err := s.db.GetPool().Query(ctx,
		`SELECT id, skill, skill_deviation, perf_history, perf_weight, games FROM players`)
	if err != nil {
		return nil, fmt.Errorf("failed to query players: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		player := &models.Player{}
		var history, weight, games []byte
		if err := rows.Scan(&player.ID, &player.Skill, &player.SkillDeviation, &history, &weight, &games); err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		if err := json.Unmarshal(history, &player.PerfHistory); err != nil {
			return nil, fmt.Errorf("failed to decode perf history: %w", err)
		}
		if err := json.Unmarshal(weight, &player.PerfWeight); err != nil {
			return nil, fmt.Errorf("failed to decode perf weights: %w", err)
		}
		if err := json.Unmarshal(games, &player.Games); err != nil {
			return nil, fmt.Errorf("failed to decode player games: %w", err)
		}
		dataset.Players[player.ID] = player
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read players: %w", err)
	}

	gameRows, err := s.db.GetPool().Query(ctx,
		`SELECT id, date, ranking, processed FROM games`)
	if err != nil {
		return nil, fmt.Errorf("failed to query games: %w", err)
	}
	defer gameRows.Close()

	for gameRows.Next() {
		game := &models.Game{}
		var id string
		var date time.Time
		var ranking []byte
		if err := gameRows.Scan(&id, &date, &ranking, &game.Processed); err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		gameID, err := uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("invalid game id %q: %w", id, err)
		}
		if err := json.Unmarshal(ranking, &game.Ranking); err != nil {
			return nil, fmt.Errorf("failed to decode ranking: %w", err)
		}
		game.ID = gameID
		game.Date = date
		dataset.Games[gameID] = game
	}
	if err := gameRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read games: %w", err)
	}

	return dataset, nil
}

// Save replaces the stored dataset in one transaction.
func (s *PostgresStore) Save(ctx context.Context, dataset *models.Dataset) error {
	return s.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `TRUNCATE players, games`); err != nil {
			return fmt.Errorf("failed to clear dataset tables: %w", err)
		}

		for _, player := range dataset.Players {
			history, err := json.Marshal(player.PerfHistory)
			if err != nil {
				return fmt.Errorf("failed to encode perf history: %w", err)
			}
			weight, err := json.Marshal(player.PerfWeight)
			if err != nil {
				return fmt.Errorf("failed to encode perf weights: %w", err)
			}
			games, err := json.Marshal(player.Games)
			if err != nil {
				return fmt.Errorf("failed to encode player games: %w", err)
			}
			if _, err := tx.Exec(ctx,
				`INSERT INTO players (id, skill, skill_deviation, perf_history, perf_weight, games)
				 VALUES ($1, $2, $3, $4, $5, $6)`,
				player.ID, player.Skill, player.SkillDeviation, history, weight, games,
			); err != nil {
				return fmt.Errorf("failed to insert player %s: %w", player.ID, err)
			}
		}

		for _, game := range dataset.Games {
			ranking, err := json.Marshal(game.Ranking)
			if err != nil {
				return fmt.Errorf("failed to encode ranking: %w", err)
			}
			if _, err := tx.Exec(ctx,
				`INSERT INTO games (id, date, ranking, processed)
				 VALUES ($1, $2, $3, $4)`,
				game.ID.String(), game.Date, ranking, game.Processed,
			); err != nil {
				return fmt.Errorf("failed to insert game %s: %w", game.ID, err)
			}
		}

		return nil
	})
}

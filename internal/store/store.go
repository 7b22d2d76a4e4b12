// Package store persists the full rating dataset. The engine requires only
// whole-dataset loads and single durable writes; no incremental persistence.
package store

import (
	"context"

	"github.com/yourusername/ffa-mmr/internal/models"
)

// Store defines the persistence sink for the player and game collections.
type Store interface {
	Load(ctx context.Context) (*models.Dataset, error)
	Save(ctx context.Context, dataset *models.Dataset) error
}

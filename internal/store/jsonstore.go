package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yourusername/ffa-mmr/internal/models"
)

// JSONStore persists the dataset as a single JSON document on disk.
type JSONStore struct {
	path string
}

// NewJSONStore creates a file-backed store at the given path.
func NewJSONStore(path string) (*JSONStore, error) {
	if path == "" {
		return nil, fmt.Errorf("store path is required")
	}
	return &JSONStore{path: path}, nil
}

// Load reads the dataset from disk. A missing file yields an empty dataset.
func (s *JSONStore) Load(ctx context.Context) (*models.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return models.NewDataset(), nil
		}
		return nil, fmt.Errorf("failed to read dataset file: %w", err)
	}

	dataset := models.NewDataset()
	if err := json.Unmarshal(data, dataset); err != nil {
		return nil, fmt.Errorf("failed to parse dataset file: %w", err)
	}
	return dataset, nil
}

// Save writes the full dataset in one durable step: marshal to a temp file
// in the same directory, then rename over the target.
func (s *JSONStore) Save(ctx context.Context, dataset *models.Dataset) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(dataset, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal dataset: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create dataset directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write dataset: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace dataset file: %w", err)
	}

	return nil
}

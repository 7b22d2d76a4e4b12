package rating

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/ffa-mmr/internal/models"
	"github.com/yourusername/ffa-mmr/internal/solver"
	"github.com/yourusername/ffa-mmr/internal/store"
)

func seededDataset(t *testing.T, skills map[string]float64) *models.Dataset {
	t.Helper()
	dataset := models.NewDataset()
	for id, skill := range skills {
		player := models.NewPlayer(id)
		player.Skill = skill
		dataset.Players[id] = player
	}
	return dataset
}

func mustAddGame(t *testing.T, dataset *models.Dataset, date time.Time, ranking ...string) uuid.UUID {
	t.Helper()
	id := uuid.New()
	if _, err := dataset.AddGame(id, date, ranking); err != nil {
		t.Fatalf("AddGame failed: %v", err)
	}
	return id
}

func TestEngineRunFullyPredicted(t *testing.T) {
	dataset := seededDataset(t, map[string]float64{
		"high": 2000, "mid": 1500, "low": 1000,
		"top": 1900, "mean": 1400, "tail": 900,
	})
	date := time.Date(2025, 3, 1, 18, 0, 0, 0, time.UTC)
	mustAddGame(t, dataset, date, "high", "mid", "low")
	mustAddGame(t, dataset, date.Add(time.Hour), "top", "mean", "tail")

	engine, err := NewEngine(DefaultParams(), solver.DefaultOptions(), nil, nil)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	rate, err := engine.Run(context.Background(), dataset, nil, false)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if rate != 1.0 {
		t.Fatalf("expected success rate 1.0, got %v", rate)
	}
}

func TestEngineRunFullyMissed(t *testing.T) {
	dataset := seededDataset(t, map[string]float64{
		"high": 2000, "mid": 1500, "low": 1000,
		"top": 1900, "mean": 1400, "tail": 900,
	})
	date := time.Date(2025, 3, 1, 18, 0, 0, 0, time.UTC)
	mustAddGame(t, dataset, date, "mid", "low", "high")
	mustAddGame(t, dataset, date.Add(time.Hour), "mean", "tail", "top")

	engine, err := NewEngine(DefaultParams(), solver.DefaultOptions(), nil, nil)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	rate, err := engine.Run(context.Background(), dataset, nil, false)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if rate != 0.0 {
		t.Fatalf("expected success rate 0.0, got %v", rate)
	}
}

func TestEngineRunSkipsProcessedGames(t *testing.T) {
	dataset := models.NewDataset()
	date := time.Date(2025, 3, 1, 18, 0, 0, 0, time.UTC)
	id := mustAddGame(t, dataset, date, "a", "b")
	dataset.Games[id].Processed = true
	before := dataset.Players["a"].Skill

	engine, err := NewEngine(DefaultParams(), solver.DefaultOptions(), nil, nil)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	rate, err := engine.Run(context.Background(), dataset, nil, false)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if rate != 0 {
		t.Fatalf("pass with no unprocessed games must report 0, got %v", rate)
	}
	if dataset.Players["a"].Skill != before {
		t.Fatal("processed game must not move ratings")
	}
}

func TestEngineRunCommitPersistsDataset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ratings.json")
	st, err := store.NewJSONStore(path)
	if err != nil {
		t.Fatalf("NewJSONStore failed: %v", err)
	}

	dataset := models.NewDataset()
	date := time.Date(2025, 3, 1, 18, 0, 0, 0, time.UTC)
	id := mustAddGame(t, dataset, date, "a", "b", "c")

	engine, err := NewEngine(DefaultParams(), solver.DefaultOptions(), st, nil)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	if _, err := engine.Run(context.Background(), dataset, nil, true); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	reloaded, err := st.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reloaded.Games[id].Processed {
		t.Fatal("committed game must be persisted as processed")
	}
	if reloaded.Players["a"].Skill == models.StartSkill {
		t.Fatal("committed winner rating must reflect the update")
	}
}

func TestEngineRunRejectsBadInput(t *testing.T) {
	engine, err := NewEngine(DefaultParams(), solver.DefaultOptions(), nil, nil)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	if _, err := engine.Run(context.Background(), nil, nil, false); err == nil {
		t.Fatal("expected error for nil dataset")
	}
	if _, err := engine.Run(context.Background(), models.NewDataset(), nil, true); err == nil {
		t.Fatal("expected error for commit without a store")
	}
}

package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/ffa-mmr/internal/models"
)

func TestJSONStoreRequiresPath(t *testing.T) {
	if _, err := NewJSONStore(""); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestJSONStoreMissingFileYieldsEmptyDataset(t *testing.T) {
	st, err := NewJSONStore(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("NewJSONStore failed: %v", err)
	}

	dataset, err := st.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(dataset.Players) != 0 || len(dataset.Games) != 0 {
		t.Fatal("expected empty dataset for a missing file")
	}
}

func TestJSONStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "ratings.json")
	st, err := NewJSONStore(path)
	if err != nil {
		t.Fatalf("NewJSONStore failed: %v", err)
	}

	dataset := models.NewDataset()
	gameID := uuid.New()
	date := time.Date(2025, 4, 2, 19, 30, 0, 0, time.UTC)
	if _, err := dataset.AddGame(gameID, date, []string{"alice", "bob", "carol"}); err != nil {
		t.Fatalf("AddGame failed: %v", err)
	}
	dataset.Players["alice"].Skill = 1712.5
	dataset.Players["alice"].PerfHistory = []float64{1500, 1690}
	dataset.Players["alice"].PerfWeight = []float64{0.1, 0.0022}
	dataset.Games[gameID].Processed = true

	if err := st.Save(context.Background(), dataset); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	reloaded, err := st.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	alice := reloaded.Players["alice"]
	if alice == nil || alice.Skill != 1712.5 {
		t.Fatalf("player state not preserved: %+v", alice)
	}
	if len(alice.PerfHistory) != 2 || alice.PerfHistory[1] != 1690 {
		t.Fatalf("history not preserved: %v", alice.PerfHistory)
	}
	game := reloaded.Games[gameID]
	if game == nil || !game.Processed || !game.Date.Equal(date) {
		t.Fatalf("game state not preserved: %+v", game)
	}
	if len(game.Ranking) != 3 || game.Ranking[0] != "alice" {
		t.Fatalf("ranking not preserved: %v", game.Ranking)
	}
}

func TestJSONStoreSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	st, err := NewJSONStore(filepath.Join(dir, "ratings.json"))
	if err != nil {
		t.Fatalf("NewJSONStore failed: %v", err)
	}

	if err := st.Save(context.Background(), models.NewDataset()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "ratings.json" {
		t.Fatalf("expected only the dataset file, got %v", entries)
	}
}

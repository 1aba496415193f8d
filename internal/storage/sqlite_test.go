package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func save(t *testing.T, s *Store, mode string, level, score int, outcome Outcome) {
	t.Helper()
	if _, err := s.SaveResult(ScoreEntry{Mode: mode, Level: level, Score: score, Outcome: outcome}); err != nil {
		t.Fatalf("SaveResult() failed: %v", err)
	}
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}

	if err := store.Close(); err != nil {
		t.Errorf("Close() failed: %v", err)
	}

	// Reopening must not fail on the existing schema
	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("Open() on existing database failed: %v", err)
	}
	store.Close()
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveResult(ScoreEntry{Mode: ModeCampaign, Level: 3, Score: 1200, Outcome: OutcomeGameOver, Duration: 45000})
	if err != nil {
		t.Fatalf("SaveResult() failed: %v", err)
	}
	if id <= 0 {
		t.Errorf("SaveResult() id = %d, expected positive", id)
	}
	save(t, store, ModeCampaign, 6, 4100, OutcomeVictory)
	save(t, store, ModeFreePlay, 0, 300, "")

	scores, err := store.TopScores(ModeCampaign, 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 2 {
		t.Fatalf("TopScores() returned %d entries, expected 2", len(scores))
	}
	if scores[0].Score != 4100 || scores[0].Outcome != OutcomeVictory || scores[0].Level != 6 {
		t.Errorf("TopScores()[0] = %+v, expected victory at level 6 with 4100", scores[0])
	}
	if scores[1].Duration != 45000 {
		t.Errorf("TopScores()[1].Duration = %d, expected 45000", scores[1].Duration)
	}
	if scores[1].CreatedAt.IsZero() {
		t.Error("CreatedAt was not populated")
	}

	free, err := store.TopScores(ModeFreePlay, 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(free) != 1 || free[0].Outcome != OutcomeGameOver {
		t.Errorf("free play scores = %+v, expected one game_over entry", free)
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		save(t, store, ModeFreePlay, 0, (i+1)*100, OutcomeGameOver)
	}

	scores, err := store.TopScores(ModeFreePlay, 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreTopScoresTieOrder(t *testing.T) {
	store := openTestStore(t)

	save(t, store, ModeFreePlay, 0, 200, OutcomeGameOver)
	save(t, store, ModeFreePlay, 0, 200, OutcomeQuit)

	scores, _ := store.TopScores(ModeFreePlay, 0)
	if len(scores) != 2 || scores[0].ID > scores[1].ID {
		t.Errorf("equal scores should list the earlier entry first: %+v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore(ModeCampaign)
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("HighScore() = %d, expected 0 for empty mode", high)
	}

	save(t, store, ModeCampaign, 1, 100, OutcomeGameOver)
	save(t, store, ModeCampaign, 2, 300, OutcomeGameOver)
	save(t, store, ModeCampaign, 1, 200, OutcomeQuit)

	high, err = store.HighScore(ModeCampaign)
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("HighScore() = %d, expected 300", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	save(t, store, ModeCampaign, 1, 100, OutcomeGameOver)
	save(t, store, ModeCampaign, 1, 200, OutcomeGameOver)
	save(t, store, ModeFreePlay, 0, 300, OutcomeGameOver)

	if err := store.ClearScores(ModeCampaign); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	campaign, _ := store.TopScores(ModeCampaign, 10)
	if len(campaign) != 0 {
		t.Errorf("Expected 0 campaign scores after clear, got %d", len(campaign))
	}

	free, _ := store.TopScores(ModeFreePlay, 10)
	if len(free) != 1 {
		t.Errorf("Free play scores should not be affected by clearing campaign")
	}
}

func TestStoreAllScores(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 20; i++ {
		save(t, store, ModeFreePlay, 0, i*10, OutcomeGameOver)
	}

	scores, err := store.AllScores(ModeFreePlay)
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(scores) != 20 {
		t.Errorf("Expected 20 scores, got %d", len(scores))
	}
}

func TestStoreModeStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetModeStats(ModeCampaign)
	if err != nil {
		t.Fatalf("GetModeStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("GetModeStats() on empty mode = %+v", empty)
	}

	save(t, store, ModeCampaign, 2, 100, OutcomeGameOver)
	save(t, store, ModeCampaign, 6, 500, OutcomeVictory)
	save(t, store, ModeFreePlay, 0, 50, OutcomeQuit)

	stats, err := store.GetModeStats(ModeCampaign)
	if err != nil {
		t.Fatalf("GetModeStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 500 || stats.BestLevel != 6 || stats.Victories != 1 {
		t.Errorf("GetModeStats() = %+v", stats)
	}
	if stats.AvgScore != 300 {
		t.Errorf("AvgScore = %v, expected 300", stats.AvgScore)
	}

	all, err := store.GetAllModeStats()
	if err != nil {
		t.Fatalf("GetAllModeStats() failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("GetAllModeStats() returned %d modes, expected 2", len(all))
	}
	if all[ModeFreePlay] == nil || all[ModeFreePlay].GamesCount != 1 {
		t.Errorf("free play stats = %+v", all[ModeFreePlay])
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

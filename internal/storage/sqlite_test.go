package storage

import (
	"errors"
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

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveScore("blockfall", 1200, 3, 25); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	store.Close()

	// Migrations must be idempotent.
	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	high, err := store.HighScore("blockfall")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 1200 {
		t.Errorf("HighScore() = %d, expected 1200", high)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, s := range []struct{ score, level, lines int }{
		{100, 1, 4},
		{50, 1, 2},
		{200, 2, 12},
	} {
		if _, err := store.SaveScore("blockfall", s.score, s.level, s.lines); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("blockfall_classic", 500, 4, 31); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("blockfall", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	want := []int{200, 100, 50}
	for i, w := range want {
		if scores[i].Score != w {
			t.Errorf("scores[%d].Score = %d, expected %d", i, scores[i].Score, w)
		}
	}
	if scores[0].Level != 2 || scores[0].Lines != 12 {
		t.Errorf("scores[0] = %+v, expected level 2 and 12 lines", scores[0])
	}
	if scores[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}

	classic, err := store.TopScores("blockfall_classic", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(classic) != 1 || classic[0].Score != 500 {
		t.Errorf("classic scores = %+v, expected one entry of 500", classic)
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := range 15 {
		if _, err := store.SaveScore("blockfall", i*10, 1, i); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"explicit limit", 5, 5},
		{"default limit", 0, 10},
		{"negative limit", -1, 10},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			scores, err := store.TopScores("blockfall", tc.limit)
			if err != nil {
				t.Fatalf("TopScores() failed: %v", err)
			}
			if len(scores) != tc.want {
				t.Errorf("TopScores(%d) returned %d entries, expected %d", tc.limit, len(scores), tc.want)
			}
			if scores[0].Score != 140 {
				t.Errorf("top score = %d, expected 140", scores[0].Score)
			}
		})
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("blockfall")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("HighScore() with no scores = %d, expected 0", high)
	}

	store.SaveScore("blockfall", 300, 1, 3)
	store.SaveScore("blockfall", 900, 2, 11)
	store.SaveScore("blockfall", 600, 1, 7)

	high, err = store.HighScore("blockfall")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 900 {
		t.Errorf("HighScore() = %d, expected 900", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("blockfall", 100, 1, 1)
	store.SaveScore("blockfall_classic", 200, 1, 2)

	if err := store.ClearScores("blockfall"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	scores, _ := store.TopScores("blockfall", 10)
	if len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}
	classic, _ := store.TopScores("blockfall_classic", 10)
	if len(classic) != 1 {
		t.Errorf("ClearScores should not touch other games, got %d entries", len(classic))
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetGameStats("blockfall")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || empty.HighScore != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}

	store.SaveScore("blockfall", 100, 1, 4)
	store.SaveScore("blockfall", 300, 3, 22)
	store.SaveScore("blockfall_classic", 50, 1, 1)

	stats, err := store.GetGameStats("blockfall")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 {
		t.Errorf("GamesCount = %d, expected 2", stats.GamesCount)
	}
	if stats.HighScore != 300 {
		t.Errorf("HighScore = %d, expected 300", stats.HighScore)
	}
	if stats.AvgScore != 200 {
		t.Errorf("AvgScore = %v, expected 200", stats.AvgScore)
	}
	if stats.TotalLines != 26 {
		t.Errorf("TotalLines = %d, expected 26", stats.TotalLines)
	}
	if stats.BestLevel != 3 {
		t.Errorf("BestLevel = %d, expected 3", stats.BestLevel)
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("GetAllGamesStats() returned %d games, expected 2", len(all))
	}
	if all["blockfall_classic"].GamesCount != 1 {
		t.Errorf("classic GamesCount = %d, expected 1", all["blockfall_classic"].GamesCount)
	}
}

func TestStoreSavedGames(t *testing.T) {
	store := openTestStore(t)

	_, err := store.LoadGame(DefaultSlot)
	if !errors.Is(err, ErrNoSavedGame) {
		t.Fatalf("LoadGame() on empty slot error = %v, expected ErrNoSavedGame", err)
	}

	if err := store.SaveGame(DefaultSlot, "blockfall", 400, []byte(`{"version":1}`)); err != nil {
		t.Fatalf("SaveGame() failed: %v", err)
	}
	if err := store.SaveGame(DefaultSlot, "blockfall_classic", 900, []byte(`{"version":1,"tick":5}`)); err != nil {
		t.Fatalf("SaveGame() overwrite failed: %v", err)
	}

	sg, err := store.LoadGame(DefaultSlot)
	if err != nil {
		t.Fatalf("LoadGame() failed: %v", err)
	}
	if sg.GameID != "blockfall_classic" || sg.Score != 900 {
		t.Errorf("LoadGame() = %+v, expected the second save", sg)
	}
	if string(sg.State) != `{"version":1,"tick":5}` {
		t.Errorf("State = %s", sg.State)
	}
	if sg.UpdatedAt.IsZero() {
		t.Error("UpdatedAt should be set")
	}

	if err := store.DeleteGame(DefaultSlot); err != nil {
		t.Fatalf("DeleteGame() failed: %v", err)
	}
	if _, err := store.LoadGame(DefaultSlot); !errors.Is(err, ErrNoSavedGame) {
		t.Errorf("LoadGame() after delete error = %v, expected ErrNoSavedGame", err)
	}
	if err := store.DeleteGame(DefaultSlot); err != nil {
		t.Errorf("DeleteGame() on empty slot failed: %v", err)
	}
}

func TestStoreHomeExpansion(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.blockfall/scores.db")
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".blockfall", "scores.db")); err != nil {
		t.Errorf("database not created under home: %v", err)
	}
}

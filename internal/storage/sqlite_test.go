package storage

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"
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

func mustSave(t *testing.T, s *Store, r Result) {
	t.Helper()
	if _, err := s.SaveScore(r); err != nil {
		t.Fatalf("SaveScore(%+v) failed: %v", r, err)
	}
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, Result{GameID: "numberup", Player: "ann", Score: 100, MaxTile: 4})
	mustSave(t, store, Result{GameID: "numberup", Player: "bob", Score: 50, MaxTile: 3})
	mustSave(t, store, Result{GameID: "numberup", Player: "ann", Score: 1200, MaxTile: 9})
	mustSave(t, store, Result{GameID: "numberup_large", Score: 500, MaxTile: 6})

	scores, err := store.TopScores("numberup", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	expected := []struct {
		score, tile int
		player      string
	}{
		{1200, 9, "ann"},
		{100, 4, "ann"},
		{50, 3, "bob"},
	}
	for i, want := range expected {
		got := scores[i]
		if got.Score != want.score || got.MaxTile != want.tile || got.Player != want.player {
			t.Errorf("scores[%d] = %+v, want score=%d tile=%d player=%s", i, got, want.score, want.tile, want.player)
		}
		if got.GameID != "numberup" {
			t.Errorf("scores[%d].GameID = %q", i, got.GameID)
		}
		if got.CreatedAt.IsZero() {
			t.Errorf("scores[%d].CreatedAt not parsed", i)
		}
	}

	large, err := store.TopScores("numberup_large", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(large) != 1 || large[0].Score != 500 {
		t.Errorf("numberup_large scores = %+v", large)
	}
}

func TestStoreTopScoresTieBreak(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, Result{GameID: "g", Score: 300, MaxTile: 4})
	mustSave(t, store, Result{GameID: "g", Score: 300, MaxTile: 6})
	mustSave(t, store, Result{GameID: "g", Score: 300, MaxTile: 6})

	scores, err := store.TopScores("g", 10)
	if err != nil {
		t.Fatal(err)
	}
	if scores[0].MaxTile != 6 || scores[1].MaxTile != 6 || scores[2].MaxTile != 4 {
		t.Errorf("tiles in order = %d,%d,%d, want 6,6,4", scores[0].MaxTile, scores[1].MaxTile, scores[2].MaxTile)
	}
	if scores[0].ID > scores[1].ID {
		t.Error("equal score and tile should list the earlier game first")
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 20; i++ {
		mustSave(t, store, Result{GameID: "g", Score: i * 10, MaxTile: 2})
	}

	tests := []struct {
		limit, want int
	}{
		{5, 5},
		{0, 10},
		{50, 20},
	}
	for _, tc := range tests {
		scores, err := store.TopScores("g", tc.limit)
		if err != nil {
			t.Fatalf("TopScores(%d) failed: %v", tc.limit, err)
		}
		if len(scores) != tc.want {
			t.Errorf("TopScores(%d) returned %d rows, want %d", tc.limit, len(scores), tc.want)
		}
	}

	all, err := store.AllScores("g")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(all) != 20 || all[0].Score != 190 {
		t.Errorf("AllScores returned %d rows, first %d", len(all), all[0].Score)
	}
}

func TestStoreHighScoreAndBestTile(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("numberup")
	if err != nil || high != 0 {
		t.Errorf("HighScore on empty = %d, %v; want 0, nil", high, err)
	}
	tile, err := store.BestTile("numberup")
	if err != nil || tile != 0 {
		t.Errorf("BestTile on empty = %d, %v; want 0, nil", tile, err)
	}

	mustSave(t, store, Result{GameID: "numberup", Score: 400, MaxTile: 5})
	mustSave(t, store, Result{GameID: "numberup", Score: 900, MaxTile: 4})

	if high, _ = store.HighScore("numberup"); high != 900 {
		t.Errorf("HighScore = %d, want 900", high)
	}
	if tile, _ = store.BestTile("numberup"); tile != 5 {
		t.Errorf("BestTile = %d, want 5", tile)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, Result{GameID: "a", Score: 1})
	mustSave(t, store, Result{GameID: "b", Score: 2})

	if err := store.ClearScores("a"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	if scores, _ := store.TopScores("a", 10); len(scores) != 0 {
		t.Errorf("expected no scores for a, got %d", len(scores))
	}
	if scores, _ := store.TopScores("b", 10); len(scores) != 1 {
		t.Errorf("scores for b should survive, got %d", len(scores))
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetGameStats("numberup")
	if err != nil {
		t.Fatalf("GetGameStats() on empty failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}

	mustSave(t, store, Result{GameID: "numberup", Score: 100, MaxTile: 3})
	mustSave(t, store, Result{GameID: "numberup", Score: 300, MaxTile: 7})
	mustSave(t, store, Result{GameID: "numberup_large", Score: 50, MaxTile: 2})

	stats, err := store.GetGameStats("numberup")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 300 || stats.BestTile != 7 || stats.TotalScore != 400 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.AvgScore != 200 {
		t.Errorf("AvgScore = %f, want 200", stats.AvgScore)
	}
	if time.Since(stats.LastPlayed) > 24*time.Hour {
		t.Errorf("LastPlayed = %v, expected recent", stats.LastPlayed)
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 2 || all["numberup_large"].BestTile != 2 {
		t.Errorf("all stats = %+v", all)
	}
}

func TestStoreMigratesOldSchema(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "old.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatal(err)
	}
	_, err = db.Exec(`
		CREATE TABLE scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			score INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		INSERT INTO scores (game_id, score) VALUES ('numberup', 77);
	`)
	db.Close()
	if err != nil {
		t.Fatal(err)
	}

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() on old schema failed: %v", err)
	}
	defer store.Close()

	scores, err := store.TopScores("numberup", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 1 || scores[0].Score != 77 || scores[0].MaxTile != 0 {
		t.Errorf("migrated scores = %+v", scores)
	}

	mustSave(t, store, Result{GameID: "numberup", Score: 10, MaxTile: 3, Player: "x"})
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

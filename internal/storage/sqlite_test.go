package storage

import (
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

// saveScore stores a round that carries only a score.
func saveScore(t *testing.T, store *Store, difficulty string, score int) {
	t.Helper()
	if _, err := store.SaveRound(RoundRecord{Difficulty: difficulty, Score: score}); err != nil {
		t.Fatalf("SaveRound() failed: %v", err)
	}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

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

	for _, score := range []int{1400, 500, 2900} {
		saveScore(t, store, "normal", score)
	}
	saveScore(t, store, "hard", 9000)

	scores, err := store.TopScores("normal", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}
	if scores[0].Score != 2900 || scores[1].Score != 1400 || scores[2].Score != 500 {
		t.Errorf("Scores not in descending order: %v", scores)
	}
	if scores[0].Outcome != OutcomeQuit {
		t.Errorf("Expected default outcome quit, got %q", scores[0].Outcome)
	}

	// Empty difficulty ranks every round.
	all, err := store.TopScores("", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(all) != 4 || all[0].Difficulty != "hard" {
		t.Errorf("Expected hard round first across difficulties, got %v", all)
	}
}

func TestStoreSaveRound(t *testing.T) {
	store := openTestStore(t)

	rec := RoundRecord{
		Difficulty: "easy",
		Player:     "ada",
		Score:      8100,
		Outcome:    OutcomeWon,
		Shots:      42,
		Pops:       9,
		Orphans:    5,
		Questions:  11,
		Correct:    9,
		Duration:   3*time.Minute + 20*time.Second,
	}
	id, err := store.SaveRound(rec)
	if err != nil {
		t.Fatalf("SaveRound() failed: %v", err)
	}
	if id == 0 {
		t.Error("Expected non-zero id")
	}

	rounds, err := store.RecentRounds("ada", 5)
	if err != nil {
		t.Fatalf("RecentRounds() failed: %v", err)
	}
	if len(rounds) != 1 {
		t.Fatalf("Expected 1 round, got %d", len(rounds))
	}
	got := rounds[0]
	if got.Player != "ada" || got.Outcome != OutcomeWon || got.Shots != 42 ||
		got.Pops != 9 || got.Orphans != 5 || got.Questions != 11 || got.Correct != 9 {
		t.Errorf("Round fields not preserved: %+v", got)
	}
	if got.Duration != 200 {
		t.Errorf("Expected 200 seconds, got %d", got.Duration)
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		saveScore(t, store, "endless", (i+1)*100)
	}

	scores, err := store.TopScores("endless", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Errorf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("normal")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty difficulty, got %d", high)
	}

	saveScore(t, store, "normal", 100)
	saveScore(t, store, "normal", 300)
	saveScore(t, store, "normal", 200)

	high, err = store.HighScore("normal")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreTotals(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.Totals("hard")
	if err != nil {
		t.Fatalf("Totals() failed: %v", err)
	}
	if empty != (Totals{}) {
		t.Errorf("Expected zero totals, got %+v", empty)
	}

	store.SaveRound(RoundRecord{Difficulty: "hard", Score: 25000, Outcome: OutcomeWon, Pops: 20, Questions: 22, Correct: 20})
	store.SaveRound(RoundRecord{Difficulty: "hard", Score: 4000, Outcome: OutcomeLost, Pops: 4, Questions: 6, Correct: 4})
	store.SaveRound(RoundRecord{Difficulty: "easy", Score: 100, Outcome: OutcomeWon})

	got, err := store.Totals("hard")
	if err != nil {
		t.Fatalf("Totals() failed: %v", err)
	}
	want := Totals{Rounds: 2, Wins: 1, Best: 25000, Pops: 24, Questions: 28, Correct: 24}
	if got != want {
		t.Errorf("Totals = %+v, want %+v", got, want)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	saveScore(t, store, "normal", 100)
	saveScore(t, store, "normal", 200)
	saveScore(t, store, "hard", 300)

	if err := store.ClearScores("normal"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	normal, _ := store.TopScores("normal", 10)
	if len(normal) != 0 {
		t.Errorf("Expected 0 normal scores after clear, got %d", len(normal))
	}

	hard, _ := store.TopScores("hard", 10)
	if len(hard) != 1 {
		t.Errorf("Hard scores should not be affected by clearing normal")
	}
}

func TestStoreAllScores(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 20; i++ {
		saveScore(t, store, "easy", i*10)
	}

	scores, err := store.AllScores("easy")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(scores) != 20 {
		t.Errorf("Expected 20 scores, got %d", len(scores))
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

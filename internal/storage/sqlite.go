// Package storage provides SQLite-based persistence for round results.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for the leaderboard.
type Store struct {
	db *sql.DB
}

// Outcome is how a round ended.
type Outcome string

const (
	OutcomeWon  Outcome = "won"
	OutcomeLost Outcome = "lost"
	OutcomeQuit Outcome = "quit"
)

// RoundRecord is a finished round to be stored.
type RoundRecord struct {
	Difficulty string
	Player     string
	Score      int
	Outcome    Outcome
	Shots      int
	Pops       int
	Orphans    int
	Questions  int
	Correct    int
	Duration   time.Duration
}

// ScoreEntry represents a single leaderboard row.
type ScoreEntry struct {
	ID         int64     `json:"id"`
	Difficulty string    `json:"difficulty"`
	Player     string    `json:"player"`
	Score      int       `json:"score"`
	Outcome    Outcome   `json:"outcome"`
	Shots      int       `json:"shots"`
	Pops       int       `json:"pops"`
	Orphans    int       `json:"orphans"`
	Questions  int       `json:"questions"`
	Correct    int       `json:"correct"`
	Duration   int       `json:"duration_secs"`
	CreatedAt  time.Time `json:"created_at"`
}

// Totals aggregates every stored round of a difficulty.
type Totals struct {
	Rounds    int `json:"rounds"`
	Wins      int `json:"wins"`
	Best      int `json:"best"`
	Pops      int `json:"pops"`
	Questions int `json:"questions"`
	Correct   int `json:"correct"`
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS rounds (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			difficulty TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT '',
			score INTEGER NOT NULL,
			outcome TEXT NOT NULL,
			shots INTEGER NOT NULL DEFAULT 0,
			pops INTEGER NOT NULL DEFAULT 0,
			orphans INTEGER NOT NULL DEFAULT 0,
			questions INTEGER NOT NULL DEFAULT 0,
			correct INTEGER NOT NULL DEFAULT 0,
			duration_secs INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_rounds_difficulty ON rounds(difficulty);
		CREATE INDEX IF NOT EXISTS idx_rounds_top ON rounds(difficulty, score DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRound records a finished round.
// Returns the ID of the inserted record.
func (s *Store) SaveRound(r RoundRecord) (int64, error) {
	if r.Outcome == "" {
		r.Outcome = OutcomeQuit
	}
	result, err := s.db.Exec(
		`INSERT INTO rounds
		 (difficulty, player, score, outcome, shots, pops, orphans, questions, correct, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Difficulty, r.Player, r.Score, string(r.Outcome),
		r.Shots, r.Pops, r.Orphans, r.Questions, r.Correct,
		int(r.Duration/time.Second),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save round: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const selectEntries = `SELECT id, difficulty, player, score, outcome, shots, pops,
		orphans, questions, correct, duration_secs, created_at
	FROM rounds`

// TopScores retrieves the top N scores for a difficulty; an empty difficulty
// ranks every round. Results are ordered by score descending.
func (s *Store) TopScores(difficulty string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	if difficulty == "" {
		return s.queryEntries(selectEntries+` ORDER BY score DESC, id ASC LIMIT ?`, limit)
	}
	return s.queryEntries(
		selectEntries+` WHERE difficulty = ? ORDER BY score DESC, id ASC LIMIT ?`,
		difficulty, limit,
	)
}

// AllScores retrieves all scores for a difficulty (no limit).
func (s *Store) AllScores(difficulty string) ([]ScoreEntry, error) {
	return s.queryEntries(
		selectEntries+` WHERE difficulty = ? ORDER BY score DESC, id ASC`,
		difficulty,
	)
}

// RecentRounds returns the most recently stored rounds of a player.
func (s *Store) RecentRounds(player string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryEntries(
		selectEntries+` WHERE player = ? ORDER BY id DESC LIMIT ?`,
		player, limit,
	)
}

func (s *Store) queryEntries(query string, args ...any) ([]ScoreEntry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var outcome string
		var createdAt any
		if err := rows.Scan(
			&e.ID, &e.Difficulty, &e.Player, &e.Score, &outcome,
			&e.Shots, &e.Pops, &e.Orphans, &e.Questions, &e.Correct,
			&e.Duration, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Outcome = Outcome(outcome)
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// parseTime handles both time.Time and string datetime columns.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// HighScore returns the highest score for a difficulty.
// Returns 0 if no scores exist.
func (s *Store) HighScore(difficulty string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM rounds WHERE difficulty = ?",
		difficulty,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// Totals aggregates the stored rounds of a difficulty.
func (s *Store) Totals(difficulty string) (Totals, error) {
	var t Totals
	var best sql.NullInt64
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END), 0),
		        MAX(score),
		        COALESCE(SUM(pops), 0),
		        COALESCE(SUM(questions), 0),
		        COALESCE(SUM(correct), 0)
		 FROM rounds WHERE difficulty = ?`,
		string(OutcomeWon), difficulty,
	).Scan(&t.Rounds, &t.Wins, &best, &t.Pops, &t.Questions, &t.Correct)
	if err != nil {
		return Totals{}, fmt.Errorf("storage: cannot query totals: %w", err)
	}
	if best.Valid {
		t.Best = int(best.Int64)
	}
	return t, nil
}

// ClearScores deletes all rounds for a difficulty.
func (s *Store) ClearScores(difficulty string) error {
	_, err := s.db.Exec("DELETE FROM rounds WHERE difficulty = ?", difficulty)
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

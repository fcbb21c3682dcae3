package engine

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/popquiz/internal/config"
)

// Spawner inserts new top rows on a timer measured on the engine clock.
type Spawner struct {
	board     *Board
	profile   config.Profile
	rng       *rand.Rand
	lastSpawn time.Duration
}

// NewSpawner creates a spawner for a board and difficulty profile.
func NewSpawner(board *Board, profile config.Profile, rng *rand.Rand) *Spawner {
	return &Spawner{
		board:   board,
		profile: profile,
		rng:     rng,
	}
}

// Due reports whether the spawn interval has elapsed since the last reset.
func (s *Spawner) Due(now time.Duration) bool {
	return now-s.lastSpawn >= s.profile.SpawnInterval
}

// Reset restarts the spawn timer at now.
func (s *Spawner) Reset(now time.Duration) {
	s.lastSpawn = now
}

// Remaining returns the time left until the next row.
func (s *Spawner) Remaining(now time.Duration) time.Duration {
	left := s.profile.SpawnInterval - (now - s.lastSpawn)
	if left < 0 {
		return 0
	}
	return left
}

// PushRow shifts the board down, fills the new top row and resets the timer.
// Returns the number of spheres placed.
func (s *Spawner) PushRow(now time.Duration) int {
	s.board.ShiftDown()
	n := s.populateRow(0, s.board.ActiveColors())
	s.lastSpawn = now
	return n
}

// Seed fills rows [0, rows) of an empty board. Colors are drawn as if the
// board were empty, so the first rows do not narrow the palette.
func (s *Spawner) Seed(rows int) int {
	total := 0
	for row := 0; row < rows; row++ {
		total += s.populateRow(row, 0)
	}
	return total
}

// populateRow runs a Bernoulli trial per cell at the profile density. Each
// new sphere avoids the color of the sphere placed just before it in the row.
func (s *Spawner) populateRow(row int, active ColorSet) int {
	placed := 0
	var prev ColorSet
	for col := 0; col < s.board.Layout().Cols; col++ {
		if s.rng.Float64() >= s.profile.Density {
			prev = 0
			continue
		}
		c := Cell{Row: row, Col: col}
		if s.board.Occupied(c) {
			prev = 0
			continue
		}
		color := NextColor(s.rng, active, prev, s.profile)
		s.board.Insert(c, color)
		prev = SetOf(color)
		placed++
	}
	return placed
}

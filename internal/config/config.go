// Package config provides YAML-based game configuration loading and
// difficulty profile selection for PopQuiz.
package config

import "time"

// PopQuizConfig contains all configuration for the PopQuiz game.
type PopQuizConfig struct {
	Board        BoardConfig                 `yaml:"board"`
	Physics      PhysicsConfig               `yaml:"physics"`
	Scoring      ScoringConfig               `yaml:"scoring"`
	Difficulties map[DifficultyPreset]Profile `yaml:"difficulties"`
	Trivia       TriviaConfig                `yaml:"trivia"`
}

// BoardConfig defines the play area in virtual pixels.
type BoardConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	Radius       float64 `yaml:"radius"`        // Sphere radius; a cell is two radii wide
	TopMargin    float64 `yaml:"top_margin"`    // Y of the ceiling line
	AnchorOffset float64 `yaml:"anchor_offset"` // Distance of the launch anchor above the bottom edge
	LossDistance float64 `yaml:"loss_distance"` // Round is lost when a sphere gets this close to the anchor
}

// PhysicsConfig defines projectile and animation parameters.
// Velocities are expressed in pixels per frame.
type PhysicsConfig struct {
	Gravity         float64       `yaml:"gravity"`
	Friction        float64       `yaml:"friction"` // Velocity multiplier applied once per frame
	MinPull         float64       `yaml:"min_pull"` // Shorter pulls are ignored on release
	MaxPull         float64       `yaml:"max_pull"`
	MinPower        float64       `yaml:"min_power"`
	MaxPower        float64       `yaml:"max_power"`
	CollisionFactor float64       `yaml:"collision_factor"` // Contact distance in radii
	MaxFlight       time.Duration `yaml:"max_flight"`
	FadeDuration    time.Duration `yaml:"fade_duration"`
	FloatSpeed      float64       `yaml:"float_speed"` // Upper bound of the random kick given to orphans
}

// ScoringConfig defines match and bonus rules.
type ScoringConfig struct {
	MinCluster       int `yaml:"min_cluster"`
	FlatBonus        int `yaml:"flat_bonus"`
	OrphanMultiplier int `yaml:"orphan_multiplier"`
}

// Profile holds the per-difficulty constants of a round.
type Profile struct {
	SpawnInterval time.Duration `yaml:"spawn_interval"`
	InitialRows   int           `yaml:"initial_rows"`
	Density       float64       `yaml:"density"`        // Probability a spawned cell is populated
	WinScore      int           `yaml:"win_score"`      // 0 means the round cannot be won
	Colors        int           `yaml:"colors"`         // Number of palette colors in play
	VarietyChance float64       `yaml:"variety_chance"` // Chance to ignore the on-board color restriction
}

// Endless reports whether the profile has no reachable win threshold.
func (p Profile) Endless() bool {
	return p.WinScore <= 0
}

// TriviaConfig defines where trivia questions come from.
type TriviaConfig struct {
	SourceURL string        `yaml:"source_url"` // Empty uses the embedded bank only
	Timeout   time.Duration `yaml:"timeout"`
}

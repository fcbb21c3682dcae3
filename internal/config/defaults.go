package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/popquiz.yaml
var defaultPopQuizYAML []byte

// DefaultPopQuizConfig returns the default PopQuiz configuration.
func DefaultPopQuizConfig() PopQuizConfig {
	return PopQuizConfig{
		Board: BoardConfig{
			Width:        480,
			Height:       640,
			Radius:       16,
			TopMargin:    0,
			AnchorOffset: 48,
			LossDistance: 64,
		},
		Physics: PhysicsConfig{
			Gravity:         0.12,
			Friction:        0.995,
			MinPull:         12,
			MaxPull:         140,
			MinPower:        0.10,
			MaxPower:        0.24,
			CollisionFactor: 1.8,
			MaxFlight:       6 * time.Second,
			FadeDuration:    350 * time.Millisecond,
			FloatSpeed:      2.5,
		},
		Scoring: ScoringConfig{
			MinCluster:       3,
			FlatBonus:        500,
			OrphanMultiplier: 2,
		},
		Difficulties: map[DifficultyPreset]Profile{
			DifficultyEasy: {
				SpawnInterval: 20 * time.Second,
				InitialRows:   5,
				Density:       0.55,
				WinScore:      8000,
				Colors:        4,
				VarietyChance: 0.05,
			},
			DifficultyNormal: {
				SpawnInterval: 15 * time.Second,
				InitialRows:   6,
				Density:       0.65,
				WinScore:      15000,
				Colors:        5,
				VarietyChance: 0.10,
			},
			DifficultyHard: {
				SpawnInterval: 10 * time.Second,
				InitialRows:   7,
				Density:       0.75,
				WinScore:      25000,
				Colors:        6,
				VarietyChance: 0.20,
			},
			DifficultyEndless: {
				SpawnInterval: 12 * time.Second,
				InitialRows:   6,
				Density:       0.70,
				WinScore:      0,
				Colors:        6,
				VarietyChance: 0.25,
			},
		},
		Trivia: TriviaConfig{
			SourceURL: "",
			Timeout:   4 * time.Second,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultPopQuizYAML
}

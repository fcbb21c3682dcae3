package config

import (
	"fmt"
	"strings"
)

// DifficultyPreset represents a named difficulty profile.
type DifficultyPreset string

const (
	DifficultyEasy    DifficultyPreset = "easy"
	DifficultyNormal  DifficultyPreset = "normal"
	DifficultyHard    DifficultyPreset = "hard"
	DifficultyEndless DifficultyPreset = "endless"
)

// Presets returns all built-in presets in display order.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyEndless}
}

// ParsePreset converts a CLI string to a preset.
// An empty string selects normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return DifficultyNormal, nil
	case "easy":
		return DifficultyEasy, nil
	case "normal":
		return DifficultyNormal, nil
	case "hard":
		return DifficultyHard, nil
	case "endless":
		return DifficultyEndless, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q", s)
	}
}

// Profile returns the profile configured for a preset.
func (c PopQuizConfig) Profile(preset DifficultyPreset) (Profile, error) {
	p, ok := c.Difficulties[preset]
	if !ok {
		return Profile{}, fmt.Errorf("config: no profile for difficulty %q", preset)
	}
	return p, nil
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFile = "popquiz.yaml"

// LoadPopQuiz loads the PopQuiz configuration.
// Search order: customPath -> ~/.popquiz/configs/popquiz.yaml -> ./configs/popquiz.yaml -> embedded default
// Files are decoded on top of the defaults, so partial files are fine.
func LoadPopQuiz(customPath string) (PopQuizConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return PopQuizConfig{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return PopQuizConfig{}, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(configFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", configFile)); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultPopQuizYAML)
	if err != nil {
		return DefaultPopQuizConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML on top of DefaultPopQuizConfig and validates the result.
func Parse(data []byte) (PopQuizConfig, error) {
	cfg := DefaultPopQuizConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return PopQuizConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return PopQuizConfig{}, err
	}
	return cfg, nil
}

// Validate checks values the engine cannot run with.
func (c PopQuizConfig) Validate() error {
	var errs []error

	if c.Board.Radius <= 0 {
		errs = append(errs, errors.New("board.radius must be positive"))
	}
	if c.Board.Width < 3*2*c.Board.Radius {
		errs = append(errs, errors.New("board.width must fit at least three columns"))
	}
	if c.Board.Height <= c.Board.AnchorOffset+c.Board.LossDistance {
		errs = append(errs, errors.New("board.height too small for anchor and loss distance"))
	}
	if c.Physics.MaxPull <= c.Physics.MinPull {
		errs = append(errs, errors.New("physics.max_pull must exceed min_pull"))
	}
	if c.Physics.MaxPower < c.Physics.MinPower {
		errs = append(errs, errors.New("physics.max_power must not be below min_power"))
	}
	if c.Physics.Friction <= 0 || c.Physics.Friction > 1 {
		errs = append(errs, errors.New("physics.friction must be in (0, 1]"))
	}
	if c.Physics.MaxFlight <= 0 {
		errs = append(errs, errors.New("physics.max_flight must be positive"))
	}
	if c.Scoring.MinCluster < 2 {
		errs = append(errs, errors.New("scoring.min_cluster must be at least 2"))
	}

	for preset, p := range c.Difficulties {
		if p.SpawnInterval <= 0 {
			errs = append(errs, fmt.Errorf("difficulties.%s.spawn_interval must be positive", preset))
		}
		if p.Density < 0 || p.Density > 1 {
			errs = append(errs, fmt.Errorf("difficulties.%s.density must be in [0, 1]", preset))
		}
		if p.VarietyChance < 0 || p.VarietyChance > 1 {
			errs = append(errs, fmt.Errorf("difficulties.%s.variety_chance must be in [0, 1]", preset))
		}
		if p.Colors < 2 {
			errs = append(errs, fmt.Errorf("difficulties.%s.colors must be at least 2", preset))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".popquiz", "configs", filename)
}

// Package config loads NumberUp settings from YAML.
package config

import (
	"errors"
	"fmt"
)

// NumberUpConfig holds the tunable rules and presentation pacing.
type NumberUpConfig struct {
	Grid       GridConfig       `yaml:"grid"`
	Generation GenerationConfig `yaml:"generation"`
	Special    SpecialConfig    `yaml:"special"`
	Animation  AnimationConfig  `yaml:"animation"`
}

// GridConfig defines board geometry and the match threshold.
type GridConfig struct {
	Size     int `yaml:"size"`
	MinMatch int `yaml:"min_match"`
}

// GenerationConfig defines how new tiles are drawn.
type GenerationConfig struct {
	// WeightExponent is e in weight(v) = v^-e.
	WeightExponent float64 `yaml:"weight_exponent"`
}

// SpecialConfig defines the clear-the-board rule.
type SpecialConfig struct {
	ClearValue int `yaml:"clear_value"`
	ClearBonus int `yaml:"clear_bonus"`
}

// AnimationConfig is measured in ticks.
type AnimationConfig struct {
	DropTicks  int `yaml:"drop_ticks"`
	MergeTicks int `yaml:"merge_ticks"`
	ClearTicks int `yaml:"clear_ticks"`
}

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// Validate checks that the rules describe a playable game.
func (c NumberUpConfig) Validate() error {
	switch {
	case c.Grid.Size < 3:
		return fmt.Errorf("%w: grid.size must be at least 3, got %d", ErrInvalidConfig, c.Grid.Size)
	case c.Grid.MinMatch < 2:
		return fmt.Errorf("%w: grid.min_match must be at least 2, got %d", ErrInvalidConfig, c.Grid.MinMatch)
	case c.Generation.WeightExponent <= 0:
		return fmt.Errorf("%w: generation.weight_exponent must be positive, got %g", ErrInvalidConfig, c.Generation.WeightExponent)
	case c.Special.ClearValue < 2:
		return fmt.Errorf("%w: special.clear_value must be at least 2, got %d", ErrInvalidConfig, c.Special.ClearValue)
	case c.Special.ClearBonus < 0:
		return fmt.Errorf("%w: special.clear_bonus must not be negative, got %d", ErrInvalidConfig, c.Special.ClearBonus)
	case c.Animation.DropTicks < 0 || c.Animation.MergeTicks < 0 || c.Animation.ClearTicks < 0:
		return fmt.Errorf("%w: animation ticks must not be negative", ErrInvalidConfig)
	}
	return nil
}

// WithGridSize returns a copy using a different board size.
func (c NumberUpConfig) WithGridSize(n int) NumberUpConfig {
	c.Grid.Size = n
	return c
}

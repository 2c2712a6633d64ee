package config

import (
	_ "embed"
)

//go:embed defaults/numberup.yaml
var defaultNumberUpYAML []byte

// DefaultNumberUpConfig returns the built-in rules: a 5x5 grid, triples merge,
// tiles weighted by v^-1.8 and a 1000 point bonus for merging nines.
func DefaultNumberUpConfig() NumberUpConfig {
	return NumberUpConfig{
		Grid: GridConfig{
			Size:     5,
			MinMatch: 3,
		},
		Generation: GenerationConfig{
			WeightExponent: 1.8,
		},
		Special: SpecialConfig{
			ClearValue: 9,
			ClearBonus: 1000,
		},
		Animation: AnimationConfig{
			DropTicks:  6,
			MergeTicks: 9,
			ClearTicks: 30,
		},
	}
}

package config

import (
	_ "embed"
)

//go:embed defaults/entropy.yaml
var defaultEntropyYAML []byte

// DefaultEntropyConfig returns the default Entropy Reduction configuration.
func DefaultEntropyConfig() EntropyConfig {
	return EntropyConfig{
		Board: BoardConfig{
			GridSize:       6,
			ShuffleRetries: 32,
		},
		Rewards: RewardsConfig{
			Baseline:           10,
			ComboMultiplier:    1.5,
			CriticalChance:     0.10,
			CriticalMultiplier: 3.5,
		},
		Timing: TimingConfig{
			ComboWindowMs: 3000,
			StepMs:        150,
		},
		Levels: LevelsConfig{
			Root: "",
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 3000,
			},
			Scaling: ScalingConfig{
				ComboWindowReduction:    1500,
				CriticalChanceReduction: 0.05,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "entropy", "entropy_zen":
		return defaultEntropyYAML
	default:
		return nil
	}
}

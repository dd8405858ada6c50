// Package config provides YAML-based game configuration loading and
// difficulty management for the entropy platform.
package config

// EntropyConfig contains all configuration for the Entropy Reduction game.
type EntropyConfig struct {
	Board      BoardConfig      `yaml:"board"`
	Rewards    RewardsConfig    `yaml:"rewards"`
	Timing     TimingConfig     `yaml:"timing"`
	Levels     LevelsConfig     `yaml:"levels"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// BoardConfig defines board parameters.
type BoardConfig struct {
	GridSize       int `yaml:"grid_size"`
	ShuffleRetries int `yaml:"shuffle_retries"`
}

// RewardsConfig defines reward calculator parameters.
type RewardsConfig struct {
	Baseline           int     `yaml:"baseline"`
	ComboMultiplier    float64 `yaml:"combo_multiplier"`
	CriticalChance     float64 `yaml:"critical_chance"`
	CriticalMultiplier float64 `yaml:"critical_multiplier"`
}

// TimingConfig defines the pacing parameters.
type TimingConfig struct {
	ComboWindowMs int `yaml:"combo_window_ms"` // Rolling combo window
	StepMs        int `yaml:"step_ms"`         // Duration of each resolution phase
}

// LevelsConfig points at the level catalog.
type LevelsConfig struct {
	Root string `yaml:"root"` // Custom level directory; empty means embedded
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	ComboWindowReduction    int     `yaml:"combo_window_reduction"`    // Ms shaved off the combo window at max difficulty
	CriticalChanceReduction float64 `yaml:"critical_chance_reduction"` // Critical chance removed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

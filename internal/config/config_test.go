package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEntropyCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	data := []byte("board:\n  grid_size: 8\n  shuffle_retries: 10\nrewards:\n  baseline: 25\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadEntropy(path)
	if err != nil {
		t.Fatalf("LoadEntropy: %v", err)
	}
	if cfg.Board.GridSize != 8 {
		t.Errorf("GridSize = %d, want 8", cfg.Board.GridSize)
	}
	if cfg.Rewards.Baseline != 25 {
		t.Errorf("Baseline = %d, want 25", cfg.Rewards.Baseline)
	}
}

func TestLoadEntropyMissingCustomPath(t *testing.T) {
	if _, err := LoadEntropy("/nonexistent/entropy.yaml"); err == nil {
		t.Error("expected error for missing custom path")
	}
}

func TestLoadEntropyEmbeddedDefault(t *testing.T) {
	cfg, err := LoadEntropy("")
	if err != nil {
		t.Fatalf("LoadEntropy: %v", err)
	}
	if cfg.Board.GridSize < 4 {
		t.Errorf("GridSize = %d, want >= 4", cfg.Board.GridSize)
	}
	if cfg.Rewards.Baseline <= 0 {
		t.Errorf("Baseline = %d, want > 0", cfg.Rewards.Baseline)
	}
	if cfg.Timing.ComboWindowMs <= 0 {
		t.Errorf("ComboWindowMs = %d, want > 0", cfg.Timing.ComboWindowMs)
	}
}

func TestDefaultEntropyConfigMatchesEmbedded(t *testing.T) {
	cfg, err := LoadEntropy("")
	if err != nil {
		t.Fatalf("LoadEntropy: %v", err)
	}
	def := DefaultEntropyConfig()
	if cfg.Board != def.Board {
		t.Errorf("Board = %+v, want %+v", cfg.Board, def.Board)
	}
	if cfg.Rewards != def.Rewards {
		t.Errorf("Rewards = %+v, want %+v", cfg.Rewards, def.Rewards)
	}
	if cfg.Timing != def.Timing {
		t.Errorf("Timing = %+v, want %+v", cfg.Timing, def.Timing)
	}
}

func TestGetDefaultYAML(t *testing.T) {
	if data := GetDefaultYAML("entropy"); len(data) == 0 {
		t.Error("expected embedded YAML for entropy")
	}
	if data := GetDefaultYAML("entropy_zen"); len(data) == 0 {
		t.Error("expected embedded YAML for entropy_zen")
	}
	if data := GetDefaultYAML("unknown"); data != nil {
		t.Error("expected nil for unknown game")
	}
}

func TestApplyEntropyPreset(t *testing.T) {
	cfg := DefaultEntropyConfig()

	ApplyEntropyPreset(&cfg, DifficultyHard)
	if !cfg.Difficulty.Enabled {
		t.Error("hard preset should enable progression")
	}
	if cfg.Difficulty.InitialLevel != 0.7 {
		t.Errorf("InitialLevel = %v, want 0.7", cfg.Difficulty.InitialLevel)
	}

	ApplyEntropyPreset(&cfg, DifficultyFixed)
	if cfg.Difficulty.Enabled {
		t.Error("fixed preset should disable progression")
	}
}

func TestDifficultyLevelProgression(t *testing.T) {
	mgr := NewDifficultyManager(DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.0,
		Progression:  ProgressionConfig{Type: "score", MaxAt: 1000},
	})

	if got := mgr.Level(0, 0); got != 0.0 {
		t.Errorf("Level(0) = %v, want 0", got)
	}
	if got := mgr.Level(500, 0); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("Level(500) = %v, want 0.5", got)
	}
	if got := mgr.Level(5000, 0); got != 1.0 {
		t.Errorf("Level(5000) = %v, want 1.0", got)
	}
}

func TestDifficultyDisabledHoldsInitial(t *testing.T) {
	mgr := NewDifficultyManager(DifficultyConfig{
		Enabled:      false,
		InitialLevel: 0.3,
		Progression:  ProgressionConfig{Type: "score", MaxAt: 1000},
	})
	if got := mgr.Level(9999, 0); got != 0.3 {
		t.Errorf("Level = %v, want 0.3", got)
	}
}

func TestDifficultyComboWindow(t *testing.T) {
	mgr := NewDifficultyManager(DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.0,
		Progression:  ProgressionConfig{Type: "score", MaxAt: 1000},
		Scaling:      ScalingConfig{ComboWindowReduction: 1500},
	})

	if got := mgr.ComboWindow(3000, 0, 0); got != 3000 {
		t.Errorf("ComboWindow at level 0 = %d, want 3000", got)
	}
	if got := mgr.ComboWindow(3000, 1000, 0); got != 1500 {
		t.Errorf("ComboWindow at level 1 = %d, want 1500", got)
	}
	// Floor
	if got := mgr.ComboWindow(600, 1000, 0); got != 500 {
		t.Errorf("ComboWindow floor = %d, want 500", got)
	}
}

func TestDifficultyCriticalChance(t *testing.T) {
	mgr := NewDifficultyManager(DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.0,
		Progression:  ProgressionConfig{Type: "time", MaxAt: 600},
		Scaling:      ScalingConfig{CriticalChanceReduction: 0.05},
	})

	if got := mgr.CriticalChance(0.10, 0, 0); math.Abs(got-0.10) > 1e-9 {
		t.Errorf("CriticalChance at level 0 = %v, want 0.10", got)
	}
	if got := mgr.CriticalChance(0.10, 0, 600); math.Abs(got-0.05) > 1e-9 {
		t.Errorf("CriticalChance at level 1 = %v, want 0.05", got)
	}
	if got := mgr.CriticalChance(0.02, 0, 600); got != 0.0 {
		t.Errorf("CriticalChance clamp = %v, want 0", got)
	}
}

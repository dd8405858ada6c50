package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/entropy-reduction/internal/config"
	"github.com/vovakirdan/entropy-reduction/internal/core"
	"github.com/vovakirdan/entropy-reduction/internal/games/entropy"
	entropycore "github.com/vovakirdan/entropy-reduction/internal/games/entropy/core"
	"github.com/vovakirdan/entropy-reduction/internal/platform/tui"
	"github.com/vovakirdan/entropy-reduction/internal/registry"
	"github.com/vovakirdan/entropy-reduction/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagLevels     string
	flagStartLevel int
)

var playCmd = &cobra.Command{
	Use:   "play <mode>",
	Short: "Play a mode",
	Long: `Start playing the specified mode.

Controls:
  Arrows/WASD - Move cursor
  Space       - Select/swap (campaign) or clear run (zen)
  H           - Hint
  P           - Pause
  R           - Restart (after game over)
  Q/Ctrl+C    - Quit

Difficulty options:
  easy   - Full combo window, standard critical chance
  normal - Slightly tighter combo window
  hard   - Tight combo window, rarer criticals
  fixed  - No progression, stays at config's initial level

Examples:
  entropy play entropy
  entropy play entropy_zen
  entropy play entropy --difficulty hard
  entropy play entropy --level 3
  entropy play entropy --levels ./my-levels
  entropy play entropy --config ./my-entropy.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagLevels, "levels", "", "Path to a custom level directory")
	playCmd.Flags().IntVar(&flagStartLevel, "level", 0, "Campaign level to start from (1-based)")
}

// applyGameConfig loads the YAML config, applies the difficulty preset
// and pushes the result into the game's tuning.
func applyGameConfig() error {
	cfg, err := config.LoadEntropy(flagConfig)
	if err != nil {
		return err
	}

	if flagDifficulty != "" {
		config.ApplyEntropyPreset(&cfg, config.DifficultyPreset(flagDifficulty))
	}

	// The preset's initial level shifts the pacing parameters
	mgr := config.NewDifficultyManager(cfg.Difficulty)
	comboWindow := mgr.ComboWindow(cfg.Timing.ComboWindowMs, 0, 0)
	critChance := mgr.CriticalChance(cfg.Rewards.CriticalChance, 0, 0)

	entropy.SetTuning(entropy.Tuning{
		GridSize: cfg.Board.GridSize,
		Rewards: entropycore.RewardConfig{
			Baseline:           cfg.Rewards.Baseline,
			ComboMultiplier:    cfg.Rewards.ComboMultiplier,
			CriticalChance:     critChance,
			CriticalMultiplier: cfg.Rewards.CriticalMultiplier,
		},
		ComboWindowMs: comboWindow,
		StepMs:        cfg.Timing.StepMs,
	})

	levelsRoot := flagLevels
	if levelsRoot == "" {
		levelsRoot = cfg.Levels.Root
	}
	entropy.SetLevelsRoot(levelsRoot)

	return nil
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := args[0]

	// Check if mode exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'entropy list' to see available modes.")
		os.Exit(1)
	}

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// Create runtime config
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	// Load YAML config and difficulty before creating the game
	if err := applyGameConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	if flagStartLevel > 0 {
		entropy.SetStartLevel(flagStartLevel)
	} else if gameID == "entropy" {
		// Show campaign level selector
		selection, updatedCfg, selErr := tui.RunLevelSelector(store, cfg)
		if selErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", selErr)
			os.Exit(1)
		}
		cfg = updatedCfg

		// User pressed back or quit
		if selection == nil {
			if store != nil {
				store.Close()
			}
			return
		}

		if selection.Level > 0 {
			entropy.SetStartLevel(selection.Level)
		}
	}

	// Create game instance
	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// Run the game
	runErr := tui.Run(game, store, cfg)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

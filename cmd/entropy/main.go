// entropy is a terminal match-3 puzzle about reducing board disorder.
//
// Usage:
//
//	entropy list              - List available modes
//	entropy play <mode>       - Play a mode
//	entropy menu              - Start menu to pick modes interactively
//	entropy serve             - Start SSH server for remote play
//	entropy scores <mode>     - Show high scores for a mode
//	entropy progress          - Show campaign level progress
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.entropy/scores.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import game modes to register them
	_ "github.com/vovakirdan/entropy-reduction/internal/games/entropy"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "entropy",
	Short: "Entropy Reduction - A match-3 puzzle in your terminal",
	Long: `Entropy Reduction is a terminal match-3 puzzle. Swap adjacent tiles
to form groups, trigger cascades, and work through the campaign - or
unwind in zen mode, clearing runs from a depleting board.

Available commands:
  list     - Show all available modes
  play     - Play a specific mode directly
  menu     - Interactive mode picker menu
  serve    - Start SSH server for remote play
  scores   - View high scores
  progress - View campaign level progress

Examples:
  entropy list
  entropy play entropy
  entropy menu
  entropy serve --ssh :2222
  entropy scores entropy`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.entropy/scores.db", "Path to scores database")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(progressCmd)
}

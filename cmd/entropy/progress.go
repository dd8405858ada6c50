package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/entropy-reduction/internal/config"
	"github.com/vovakirdan/entropy-reduction/internal/games/entropy/levels"
	"github.com/vovakirdan/entropy-reduction/internal/storage"
)

var flagProgressLevels string

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show campaign level progress",
	Long: `Display stars and best scores for every campaign level.

Examples:
  entropy progress
  entropy progress --levels ./my-levels`,
	Run: runProgress,
}

func init() {
	progressCmd.Flags().StringVar(&flagProgressLevels, "levels", "", "Path to a custom level directory")
}

func runProgress(cmd *cobra.Command, args []string) {
	// Resolve the level catalog
	root := flagProgressLevels
	if root == "" {
		if cfg, err := config.LoadEntropy(""); err == nil {
			root = cfg.Levels.Root
		}
	}

	catalog, err := levels.Catalog(root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading levels: %v\n", err)
		os.Exit(1)
	}

	// Open progress storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	results, err := store.AllLevelProgress()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving progress: %v\n", err)
		os.Exit(1)
	}

	byID := make(map[string]storage.LevelResult, len(results))
	for _, r := range results {
		byID[r.LevelID] = r
	}

	fmt.Println("Campaign progress:")
	fmt.Println()

	// Column widths
	maxNameLen := 4 // "Name" header
	for _, lvl := range catalog {
		if len(lvl.Name) > maxNameLen {
			maxNameLen = len(lvl.Name)
		}
	}

	fmt.Printf("  %-10s  %-*s  %-5s  %s\n", "Level", maxNameLen, "Name", "Stars", "Best")
	fmt.Printf("  %-10s  %-*s  %-5s  %s\n", "-----", maxNameLen, "----", "-----", "----")

	totalStars := 0
	completed := 0
	for _, lvl := range catalog {
		stars := "---"
		best := "-"
		if r, ok := byID[lvl.ID]; ok {
			completed++
			totalStars += r.Stars
			stars = ""
			for i := 0; i < 3; i++ {
				if i < r.Stars {
					stars += "★"
				} else {
					stars += "☆"
				}
			}
			best = fmt.Sprintf("%d", r.BestScore)
		}
		fmt.Printf("  %-10s  %-*s  %-5s  %s\n", lvl.ID, maxNameLen, lvl.Name, stars, best)
	}

	fmt.Println()
	fmt.Printf("Completed %d/%d levels, %d stars earned\n", completed, len(catalog), totalStars)
}

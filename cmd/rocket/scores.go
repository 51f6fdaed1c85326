package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-rocket/internal/games/rocket"
	"github.com/vovakirdan/tui-rocket/internal/storage"
)

var (
	flagLimit int
	flagClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the best runs",
	Long: `Display the best runs, ranked by how many levels were landed in a row.

Examples:
  rocket scores
  rocket scores --limit 25
  rocket scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all scores and the flight log")
}

func runScores(_ *cobra.Command, _ []string) {
	store, err := storage.Open(opts.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearScores(rocket.ID); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		if err := store.ClearFlights(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		fmt.Println("Scores and flight log cleared.")
		return
	}

	scores, err := store.TopScores(rocket.ID, flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	fmt.Println("Best runs - Rocket Boost")
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'rocket play' and land on a pad to set the first score!")
		return
	}

	fmt.Printf("  %-4s  %-8s  %s\n", "Rank", "Landings", "When")
	fmt.Printf("  %-4s  %-8s  %s\n", "----", "--------", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-8d  %s\n", i+1, entry.Score, humanize.Time(entry.CreatedAt))
	}

	fmt.Println()
	if stats, err := store.GetGameStats(rocket.ID); err == nil {
		fmt.Printf("Best: %d  |  Runs: %s  |  Average: %.1f  |  Total landings: %s\n",
			stats.HighScore, humanize.Comma(int64(stats.GamesCount)), stats.AvgScore, humanize.Comma(stats.TotalScore))
	}
}

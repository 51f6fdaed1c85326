package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-rocket/internal/config"
	"github.com/vovakirdan/tui-rocket/internal/core"
	"github.com/vovakirdan/tui-rocket/internal/level"
	"github.com/vovakirdan/tui-rocket/internal/storage"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List levels with flight statistics",
	Long: `Shows every level in play order with how often it was flown and landed.

Examples:
  rocket levels
  rocket levels --levels ./my-levels`,
	Args: cobra.NoArgs,
	Run:  runLevels,
}

func runLevels(_ *cobra.Command, _ []string) {
	levels, err := loadLevels()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading levels: %v\n", err)
		os.Exit(1)
	}

	var stats map[string]storage.LevelStats
	if store := openStore(); store != nil {
		stats, err = store.AllLevelStats()
		store.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not read flight log: %v\n", err)
		}
	}

	tick := runtimeConfig().TickDuration()

	fmt.Println("Levels:")
	fmt.Println()
	fmt.Printf("  %-3s  %-12s  %-18s  %-8s  %-8s  %-6s  %s\n", "#", "ID", "Name", "Flights", "Landed", "Best", "Last flown")
	fmt.Printf("  %-3s  %-12s  %-18s  %-8s  %-8s  %-6s  %s\n", "-", "--", "----", "-------", "------", "----", "----------")
	for i, lvl := range levels {
		st := stats[lvl.ID]
		best, last := "-", "never"
		if st.BestTicks > 0 {
			best = fmt.Sprintf("%.1fs", float64(st.BestTicks)*tick)
		}
		if !st.LastFlown.IsZero() {
			last = humanize.Time(st.LastFlown)
		}
		fmt.Printf("  %-3d  %-12s  %-18s  %-8d  %-8d  %-6s  %s\n",
			i+1, lvl.ID, lvl.Name, st.Attempts, st.Landings, best, last)
	}

	fmt.Println()
	fmt.Println("Run 'rocket play <#|id>' to start at a level.")
}

// loadLevels returns the levels from --levels, or the built-in set.
func loadLevels() ([]level.Level, error) {
	if opts.Levels == "" {
		return level.LoadEmbedded()
	}
	return level.Load(opts.Levels)
}

// resolveLevel turns a 1-based level number or a level ID into a scene index.
func resolveLevel(levels []level.Level, arg string) (int, error) {
	if n, err := strconv.Atoi(arg); err == nil {
		if n < 1 || n > len(levels) {
			return 0, fmt.Errorf("level %d out of range 1-%d: %w", n, len(levels), level.ErrLevelIndex)
		}
		return n - 1, nil
	}
	for i, lvl := range levels {
		if lvl.ID == arg {
			return i, nil
		}
	}
	return 0, fmt.Errorf("no level with id %q: %w", arg, level.ErrLevelIndex)
}

// runtimeConfig builds the game config from the terminal size and settings.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: opts.FPS,
		Seed:     opts.Seed,
		Debug:    opts.Debug,
	}
}

// openStore opens the scores database. The game works without one, so a
// failure is only a warning.
func openStore() *storage.Store {
	store, err := storage.Open(opts.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}

// inputHold reads the key hold window from the game config.
func inputHold() time.Duration {
	cfg, err := config.LoadRocket(opts.Config)
	if err != nil {
		logger.Warn("using default input hold", "err", err)
	}
	return cfg.Input.Hold
}

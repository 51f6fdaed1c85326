package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-rocket/internal/games/rocket"
	"github.com/vovakirdan/tui-rocket/internal/platform/tui"
	"github.com/vovakirdan/tui-rocket/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a level interactively",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to pick a level and Enter to launch. Leaving a
paused game (Esc) returns to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Launch from the level
  Tab          - Scoreboard
  Q            - Quit

Examples:
  rocket menu
  rocket menu --fps 60
  rocket menu --db ./scores.db`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	levels, err := loadLevels()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading levels: %v\n", err)
		os.Exit(1)
	}

	store := openStore()
	cfg := runtimeConfig()
	hold := inputHold()

	for {
		result, err := tui.RunLevelMenu(levels, store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}
		cfg = result.Config

		if result.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(rocket.ID, levels, store, cfg)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue
			}
			break
		}
		if result.Quit || !result.Chosen {
			break
		}

		game, err := registry.Create(rocket.ID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			break
		}
		if ls, ok := game.(registry.LevelStarter); ok {
			ls.StartAt(result.Level)
		}

		runCfg := cfg
		if runCfg.Seed == 0 {
			runCfg.Seed = time.Now().UnixNano()
		}
		if err := tui.Run(game, store, runCfg, tui.WithHold(hold), tui.WithLogger(logger)); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
	}

	if store != nil {
		store.Close()
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-rocket/internal/games/rocket"
	"github.com/vovakirdan/tui-rocket/internal/platform/tui"
	"github.com/vovakirdan/tui-rocket/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Fly the rocket",
	Long: `Start a run. Without an argument the run starts at the first level;
pass a level number (as shown by 'rocket levels') or a level ID to start there.

Controls:
  Space/W/Up   - Main engine
  A/Left       - Rotate left
  D/Right      - Rotate right
  P            - Pause
  Esc/B        - Leave (while paused)
  Ctrl+S       - Screenshot
  Q/Ctrl+C     - Quit

Debug keys (with --debug):
  L            - Skip to the next level
  C            - Toggle collisions

Difficulty options:
  easy   - Light gravity, slow platforms that speed up as you land
  normal - The standard tuning
  hard   - Heavy gravity and fast platforms
  fixed  - No progression, stays at the config's initial level

Examples:
  rocket play
  rocket play 2
  rocket play chimney --difficulty hard
  rocket play --config ./my-rocket.yaml --audio=false`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	if len(args) == 1 {
		levels, err := loadLevels()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading levels: %v\n", err)
			os.Exit(1)
		}
		start, err := resolveLevel(levels, args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			fmt.Fprintln(os.Stderr, "Run 'rocket levels' to see available levels.")
			os.Exit(1)
		}
		rocket.SetStartLevel(start)
	}

	game, err := registry.Create(rocket.ID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store := openStore()
	runErr := tui.Run(game, store, runtimeConfig(), tui.WithHold(inputHold()), tui.WithLogger(logger))

	if store != nil {
		store.Close()
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

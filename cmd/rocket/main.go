// rocket is a terminal rocket-landing game: lift off, steer around the
// rocks and touch down on the landing pad of every level.
//
// Usage:
//
//	rocket play [level]      - Fly, optionally starting at a level number or ID
//	rocket menu              - Pick a level interactively
//	rocket levels            - List levels with flight statistics
//	rocket scores            - Show the best runs
//	rocket serve             - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 30)
//	--seed <value>        - Set RNG seed for reproducible effects
//	--db <path>           - Set database path (default: ~/.rocket/scores.db)
//	--debug               - Enable the L (skip level) and C (collisions) keys
//	--log-file <path>     - Write a debug log
//	--levels <dir>        - Load levels from a directory instead of the built-in set
//
// Every flag can also be set as ROCKET_<FLAG> or in ~/.rocket/settings.yaml.
// NO_COLOR switches to a monochrome theme.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-rocket/internal/config"
	"github.com/vovakirdan/tui-rocket/internal/games/rocket"
	"github.com/vovakirdan/tui-rocket/internal/platform/tui"
	"github.com/vovakirdan/tui-rocket/internal/settings"
)

var (
	v       = settings.New()
	opts    settings.Settings
	logger  = log.New(io.Discard)
	logFile *os.File
)

func main() {
	err := rootCmd.Execute()
	closeLog()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "rocket",
	Short: "Rocket Boost - land a rocket in your terminal",
	Long: `Rocket Boost is a terminal game about flying a small rocket from its
launch pad to the landing pad of each level without touching anything else.

Available commands:
  play     - Fly, starting at the first (or a chosen) level
  menu     - Pick a level interactively
  levels   - List levels with flight statistics
  scores   - View the best runs
  serve    - Start SSH server for remote play

Examples:
  rocket play
  rocket play 3 --difficulty hard
  rocket menu --debug
  rocket serve --port 2222
  ROCKET_FPS=60 rocket play`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.Int("fps", 30, "Tick rate (frames per second)")
	flags.Int64("seed", 0, "RNG seed (0 = random based on time)")
	flags.String("db", "~/.rocket/scores.db", "Path to scores database")
	flags.Bool("debug", false, "Enable debug keys: L skips a level, C toggles collisions")
	flags.String("log-file", "", "Write a log to this file")
	flags.String("levels", "", "Directory of level YAML files (default: built-in levels)")
	flags.String("config", "", "Path to custom game config YAML")
	flags.String("difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	flags.Bool("audio", true, "Play sound through the speaker")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}

// setup resolves settings, opens the log and configures the game defaults.
func setup(cmd *cobra.Command, _ []string) error {
	if err := settings.BindFlags(v, cmd.Flags()); err != nil {
		return err
	}
	if home, err := os.UserHomeDir(); err == nil {
		if err := settings.ReadFile(v, filepath.Join(home, config.AppDir)); err != nil {
			return err
		}
	}

	var err error
	opts, err = settings.Decode(v)
	if err != nil {
		return err
	}
	if _, ok := config.ParsePreset(opts.Difficulty); opts.Difficulty != "" && !ok {
		return fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", opts.Difficulty)
	}

	if err := openLog(opts.LogFile, opts.Debug); err != nil {
		return err
	}

	if os.Getenv("NO_COLOR") != "" {
		tui.SetTheme(tui.MonochromeTheme())
	}

	rocket.SetConfigPath(opts.Config)
	rocket.SetDifficultyPreset(opts.Difficulty)
	rocket.SetLevelsDir(opts.Levels)
	rocket.SetAudio(opts.Audio)
	rocket.SetLogger(logger)
	return nil
}

func openLog(path string, debug bool) error {
	if path == "" {
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("cannot open log file: %w", err)
	}
	logFile = f

	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}
	logger = log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "rocket",
	})
	return nil
}

func closeLog() {
	if logFile != nil {
		logFile.Close()
	}
}

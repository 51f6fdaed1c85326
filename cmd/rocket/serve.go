package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-rocket/internal/games/rocket"
	"github.com/vovakirdan/tui-rocket/internal/platform/tui"
)

var flagIdleTimeout time.Duration

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Rocket Boost SSH server",
	Long: `Start an SSH server that allows users to connect and fly.

Each SSH connection gets its own session with the level menu. Scores and
the flight log are shared by all users of the server. Sound is never
played on the server.

Host key handling:
  - --host-key names the key file, relative paths live under ~/.rocket
  - The key is generated on first start

Examples:
  rocket serve                         # Listen on 0.0.0.0:2222
  rocket serve --port 23234            # Listen on another port
  rocket serve --host-key /etc/rocket/host_key
  ROCKET_DB=/var/lib/rocket/scores.db rocket serve

Users can connect with:
  ssh localhost -p 2222`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().String("host", "0.0.0.0", "Address to listen on")
	serveCmd.Flags().Int("port", 2222, "Port to listen on")
	serveCmd.Flags().String("host-key", ".ssh/rocket_ed25519", "Path to host key file")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 30*time.Minute, "Disconnect idle sessions after this long")
}

func runServe(_ *cobra.Command, _ []string) {
	levels, err := loadLevels()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading levels: %v\n", err)
		os.Exit(1)
	}

	// Sessions share one process, so nothing may reach the local speaker.
	rocket.SetAudio(false)

	cfg := tui.DefaultSSHServerConfig()
	cfg.Host = opts.Host
	cfg.Port = opts.Port
	cfg.HostKeyPath = opts.HostKey
	cfg.IdleTimeout = flagIdleTimeout
	cfg.GameID = rocket.ID
	cfg.Levels = levels
	cfg.TickRate = opts.FPS
	cfg.Hold = inputHold()
	cfg.Debug = opts.Debug

	serverLog := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "rocket-ssh",
	})
	if opts.Debug {
		serverLog.SetLevel(log.DebugLevel)
	}

	store := openStore()
	server, err := tui.NewSSHServer(cfg, store, serverLog)
	if err != nil {
		if store != nil {
			store.Close()
		}
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting Rocket Boost SSH server on %s\n", server.Addr())
	fmt.Printf("Connect with: ssh localhost -p %d\n", cfg.Port)
	fmt.Println("Press Ctrl+C to stop")

	err = server.ListenAndServe()
	if store != nil {
		store.Close()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

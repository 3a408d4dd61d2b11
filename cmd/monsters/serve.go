package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-monsters/internal/platform/tui"
)

var (
	flagSSHAddr      string
	flagHostKey      string
	flagIdleTimeout  int
	flagServeStarter int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the monsters SSH server",
	Long: `Start an SSH server that allows users to connect and battle.

Each SSH connection gets its own team and walks into a wild battle. After a
battle, R walks to the next encounter. Every battle is recorded in the
shared database.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.monsters/host_key

Examples:
  monsters serve                           # Listen on :23234 with auto-generated key
  monsters serve --ssh :2222               # Listen on port 2222
  monsters serve --host-key ./my_host_key  # Use specific host key
  monsters serve --starter 0 --level 10    # Random starter at level 10

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().IntVar(&flagServeStarter, "starter", 0, "Starter species id (0 = random per player)")
	serveCmd.Flags().IntVar(&flagLevel, "level", 0, "Starter level (0 = config default)")
	serveCmd.Flags().StringVar(&flagZone, "zone", "", "Encounter zone (default from config)")
}

func runServe(_ *cobra.Command, _ []string) {
	e := loadEnv()

	cfg := tui.SSHServerConfig{
		Address:        flagSSHAddr,
		HostKeyPath:    flagHostKey,
		DBPath:         flagDBPath,
		IdleTimeout:    time.Duration(flagIdleTimeout) * time.Minute,
		Dex:            e.dex,
		Engine:         e.cfg,
		StarterSpecies: flagServeStarter,
		StarterLevel:   flagLevel,
		Zone:           flagZone,
		Logger:         e.logger,
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fatalf("Error creating server: %v", err)
	}

	fmt.Printf("Starting monsters SSH server on %s\n", cfg.Address)
	fmt.Println("Connect with: ssh localhost -p 23234")
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fatalf("Server error: %v", err)
	}
}

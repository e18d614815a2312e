package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sokoban/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the sokoban SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with its own level cursor and best
scores, keyed by the SSH username. Completed runs share one history database.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.sokoban/host_key

Examples:
  sokoban serve                          # Listen on :23235 with auto-generated key
  sokoban serve --ssh :2222              # Listen on port 2222
  sokoban serve --host-key ./my_host_key # Use specific host key

Users can connect with:
  ssh localhost -p 23235`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	srvCfg := tui.DefaultSSHServerConfig()
	srvCfg.LevelsArchive = cfg.Paths.LevelsArchive
	srvCfg.HistoryDB = cfg.Paths.HistoryDB
	if cfg.SSH.Address != "" {
		srvCfg.Address = cfg.SSH.Address
	}
	if cfg.SSH.HostKeyPath != "" {
		srvCfg.HostKeyPath = cfg.SSH.HostKeyPath
	}
	if cfg.SSH.IdleMinutes > 0 {
		srvCfg.IdleTimeout = time.Duration(cfg.SSH.IdleMinutes) * time.Minute
	}
	if flagSSHAddr != "" {
		srvCfg.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		srvCfg.HostKeyPath = flagHostKey
	}
	if flagIdleTimeout > 0 {
		srvCfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	}

	server, err := tui.NewSSHServer(srvCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting sokoban SSH server on %s\n", server.Addr())
	fmt.Println("Connect with: ssh localhost -p 23235")
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

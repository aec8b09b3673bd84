package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/smolgame/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the smolgame SSH server",
	Long: `Start an SSH server that allows users to connect and play in their terminal.

Each SSH connection gets its own session with a game picker menu and its own
level. Finished sessions are recorded in the server's history database.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.smolgame/host_key

Examples:
  smolgame serve                           # Listen on :23234 with auto-generated key
  smolgame serve --ssh :2222               # Listen on port 2222
  smolgame serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	defaults := tui.DefaultSSHServerConfig()
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", defaults.Address, "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", int(defaults.IdleTimeout/time.Minute), "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		Runtime:     runtimeConfig(),
	}

	server, err := tui.NewSSHServer(cfg, logger.WithPrefix("smolgame-ssh"))
	if err != nil {
		fatal("could not create server", err)
	}

	logger.Info("connect with: ssh localhost -p <port>", "address", server.Addr())

	if err := server.ListenAndServe(); err != nil {
		fatal("server error", err)
	}
}

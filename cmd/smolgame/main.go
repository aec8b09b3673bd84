// smolgame is a tiny tile-walking game: a player wanders a grid of randomly
// scattered walls, in a desktop window, a terminal, or over SSH.
//
// Usage:
//
//	smolgame                  - Play the default level in a window
//	smolgame list             - List available games
//	smolgame play <game>      - Play a game in a window
//	smolgame term <game>      - Play a game in the terminal
//	smolgame menu             - Pick games interactively in the terminal
//	smolgame serve            - Start SSH server for remote play
//	smolgame stats [game]     - Show recorded sessions
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: the game's configured rate)
//	--seed <value>       - Set RNG seed for reproducible levels
//	--db <path>          - Set database path (default: ~/.smolgame/history.db)
//	--config <path>      - Load a custom game config YAML
//	--assets <dir>       - Directory holding player.png, wall.png and floor.png
//	--log-level <level>  - debug, info, warn or error
//
// SMOLGAME_DB, SMOLGAME_LOG_LEVEL and SMOLGAME_ASSETS (also read from a .env
// file) replace the defaults of --db, --log-level and --assets.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/smolgame/internal/assets"
	"github.com/vovakirdan/smolgame/internal/config"
	"github.com/vovakirdan/smolgame/internal/core"
	"github.com/vovakirdan/smolgame/internal/games/smol"
	"github.com/vovakirdan/smolgame/internal/registry"
	"github.com/vovakirdan/smolgame/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagAssets   string
	flagLogLevel string
)

// logger is configured from --log-level before any command runs.
var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "smolgame",
})

// Environment variables overriding flag defaults.
var envOverrides = []struct {
	flag string
	env  string
	dst  *string
}{
	{"db", "SMOLGAME_DB", &flagDBPath},
	{"log-level", "SMOLGAME_LOG_LEVEL", &flagLogLevel},
	{"assets", "SMOLGAME_ASSETS", &flagAssets},
}

func main() {
	// A missing .env file is fine
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "smolgame",
	Short: "smolgame - walk a tiny tile world",
	Long: `smolgame is a minimal tile-based game. Walk the player around a level
of randomly placed walls; the camera follows you in the larger level.

Without a command the default level opens in a window.

Available commands:
  list     - Show all available games
  play     - Play a game in a window
  term     - Play a game in the terminal
  menu     - Interactive game picker in the terminal
  serve    - Start SSH server for remote play
  stats    - View recorded sessions

Examples:
  smolgame
  smolgame play smolgame_mini
  smolgame term smolgame --seed 42
  smolgame serve --ssh :2222
  smolgame stats smolgame`,
	Args:              cobra.NoArgs,
	PersistentPreRunE: setup,
	Run:               runPlay,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (0 = the game's configured rate)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to session history database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagAssets, "assets", "", "Texture directory (default: the config's assets dir)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(termCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statsCmd)
}

// setup applies environment overrides and configures logging and games.
func setup(cmd *cobra.Command, _ []string) error {
	for _, o := range envOverrides {
		if cmd.Flags().Changed(o.flag) {
			continue
		}
		if v := os.Getenv(o.env); v != "" {
			*o.dst = v
		}
	}

	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", flagLogLevel, err)
	}
	logger.SetLevel(level)

	smol.SetLogger(logger)
	smol.SetConfigPath(flagConfig)
	return nil
}

// runtimeConfig builds the runtime config from the global flags.
func runtimeConfig() core.RuntimeConfig {
	return core.RuntimeConfig{
		TickRate:  flagFPS,
		Seed:      flagSeed,
		AssetsDir: flagAssets,
	}
}

// createGame creates a registered game or exits with a hint.
func createGame(gameID string) registry.Game {
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'smolgame list' to see available games.")
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	return game
}

// openStore opens the history database. Games still run without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open history database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

func closeStore(store *storage.Store) {
	if store == nil {
		return
	}
	if err := store.Close(); err != nil {
		logger.Warn("could not close history database", "error", err)
	}
}

// fatal logs err and exits with status 1.
func fatal(msg string, err error) {
	if errors.Is(err, assets.ErrUnsupportedTextureSize) {
		logger.Fatal("texture size must be 8 or 16", "error", err)
	}
	logger.Fatal(msg, "error", err)
}

// gameArg returns the game named on the command line, or the default level.
func gameArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return config.VariantSmol
}

package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/smolgame/internal/platform/desktop"
	"github.com/vovakirdan/smolgame/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game in a window",
	Long: `Open a window and play the specified game (default: smolgame).

Controls:
  Arrows/WASD  - Move
  Space        - Play the level sound
  F3           - Toggle debug overlay
  Q            - Quit

Examples:
  smolgame play
  smolgame play smolgame_mini
  smolgame play smolgame --seed 7 --assets ./art`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

var termCmd = &cobra.Command{
	Use:   "term [game]",
	Short: "Play a game in the terminal",
	Long: `Play the specified game (default: smolgame) in the terminal. Tiles are
drawn as two-character glyphs and sounds are shown as text.

Controls:
  Arrows/WASD/hjkl  - Move
  Space             - Play the level sound
  C                 - Copy the map to the clipboard
  Ctrl+S            - Save the map to ~/.smolgame/screenshots
  Q/Ctrl+C          - Quit

Examples:
  smolgame term
  smolgame term smolgame_mini --fps 10`,
	Args: cobra.MaximumNArgs(1),
	Run:  runTerm,
}

func runPlay(_ *cobra.Command, args []string) {
	game := createGame(gameArg(args))
	store := openStore()

	runtime := runtimeConfig()
	if runtime.Seed == 0 {
		runtime.Seed = time.Now().UnixNano()
	}

	if err := game.Reset(runtime); err != nil {
		closeStore(store)
		fatal("could not start game", err)
	}

	logger.Debug("opening window", "game", game.ID(), "seed", runtime.Seed, "tps", game.TickRate())
	runErr := desktop.Run(game, store, runtime, logger)

	closeStore(store)
	if runErr != nil {
		fatal("error running game", runErr)
	}
}

func runTerm(_ *cobra.Command, args []string) {
	game := createGame(gameArg(args))
	store := openStore()

	runErr := tui.Run(game, store, runtimeConfig())

	closeStore(store)
	if runErr != nil {
		fatal("error running game", runErr)
	}
}

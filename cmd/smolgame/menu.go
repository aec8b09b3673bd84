package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/smolgame/internal/platform/tui"
	"github.com/vovakirdan/smolgame/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick games interactively in the terminal",
	Long: `Start a game picker in the terminal.

Use arrow keys or j/k to navigate, Enter to select a game.
After a game ends, you return to the menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select game
  Tab          - Session history
  Q            - Quit`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

// terminalSize returns the size of stdout, or 80x24 when it is not a terminal.
func terminalSize() (int, int) {
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return w, h
	}
	return 80, 24
}

func runMenu(_ *cobra.Command, _ []string) {
	store := openStore()
	defer closeStore(store)

	status := ""
	for {
		width, height := terminalSize()

		result, err := tui.RunMenu(width, height, status)
		if err != nil {
			logger.Error("menu failed", "error", err)
			return
		}
		status = ""

		if result.Quit {
			return
		}

		if result.WantsHistory {
			goBack, err := tui.RunHistory(store, width, height)
			if err != nil {
				logger.Error("history failed", "error", err)
			}
			if goBack {
				continue
			}
			return
		}

		if result.GameID == "" {
			return
		}

		game, err := registry.Create(result.GameID)
		if err != nil {
			status = err.Error()
			continue
		}

		// Fresh level for every game unless a seed was given
		runtime := runtimeConfig()
		if runtime.Seed == 0 {
			runtime.Seed = time.Now().UnixNano()
		}

		if err := tui.Run(game, store, runtime); err != nil {
			logger.Warn("game failed", "game", result.GameID, "error", err)
			status = "Could not start " + result.GameID + ": " + err.Error()
		}
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/smolgame/internal/platform/tui"
	"github.com/vovakirdan/smolgame/internal/registry"
	"github.com/vovakirdan/smolgame/internal/storage"
)

var (
	flagStatsLimit       int
	flagStatsInteractive bool
	flagStatsClear       bool
)

var statsCmd = &cobra.Command{
	Use:   "stats [game]",
	Short: "Show recorded sessions",
	Long: `Display recent sessions and totals for one game, or for every game.

Examples:
  smolgame stats
  smolgame stats smolgame --limit 20
  smolgame stats --interactive
  smolgame stats smolgame_mini --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runStats,
}

func init() {
	statsCmd.Flags().IntVar(&flagStatsLimit, "limit", 10, "Number of recent sessions to show")
	statsCmd.Flags().BoolVarP(&flagStatsInteractive, "interactive", "i", false, "Browse the history in a table")
	statsCmd.Flags().BoolVar(&flagStatsClear, "clear", false, "Delete the recorded sessions of the game")
}

func runStats(_ *cobra.Command, args []string) {
	var gameIDs []string
	if len(args) > 0 {
		if !registry.Exists(args[0]) {
			fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", args[0])
			fmt.Fprintln(os.Stderr, "Run 'smolgame list' to see available games.")
			os.Exit(1)
		}
		gameIDs = []string{args[0]}
	} else {
		for _, g := range registry.List() {
			gameIDs = append(gameIDs, g.ID)
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fatal("could not open history database", err)
	}
	defer closeStore(store)

	if flagStatsInteractive {
		width, height := terminalSize()
		if _, err := tui.RunHistory(store, width, height); err != nil {
			logger.Error("history failed", "error", err)
		}
		return
	}

	for i, id := range gameIDs {
		if i > 0 {
			fmt.Println()
		}
		if flagStatsClear {
			if err := store.ClearSessions(id); err != nil {
				logger.Error("could not clear sessions", "game", id, "error", err)
				continue
			}
			fmt.Printf("Cleared sessions of %s\n", id)
			continue
		}
		if err := printStats(store, id); err != nil {
			logger.Error("could not read sessions", "game", id, "error", err)
		}
	}
}

// printStats prints the recent sessions and totals of one game.
func printStats(store *storage.Store, gameID string) error {
	sessions, err := store.RecentSessions(gameID, flagStatsLimit)
	if err != nil {
		return err
	}

	fmt.Printf("Sessions - %s\n", gameID)
	fmt.Println()

	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet.")
		fmt.Printf("Play 'smolgame play %s' to record one.\n", gameID)
		return nil
	}

	t := tui.NewSessionTable(sessions, len(sessions)+1, false)
	fmt.Println(t.View())

	totals, err := store.Totals(gameID)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("Total: %d sessions, %d ticks, %d moves, %d bumps\n",
		totals.Sessions, totals.Ticks, totals.Moves, totals.Bumps)
	return nil
}

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/chain-reaction/internal/storage"
)

var (
	flagLimit int
	flagClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent matches",
	Long: `Display the most recent matches and how many each seat has won.

The first column is the match ID; any unique prefix of it can be passed to
'chainreaction replay'.

Examples:
  chainreaction history
  chainreaction history --limit 50
  chainreaction history --clear`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of matches to show")
	historyCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all stored matches")
}

func runHistory(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening match database: %w", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearMatches(); err != nil {
			return err
		}
		fmt.Println("Match history cleared.")
		return nil
	}

	matches, err := store.RecentMatches(flagLimit)
	if err != nil {
		return err
	}

	fmt.Println("Recent Matches - Chain Reaction")
	fmt.Println()

	if len(matches) == 0 {
		fmt.Println("No matches recorded yet.")
		fmt.Println()
		fmt.Println("Play 'chainreaction play' to record the first one!")
		return nil
	}

	// Print header
	fmt.Printf("  %-8s  %-16s  %-5s  %-6s  %-6s  %-5s  %s\n", "Match", "Date", "Seats", "Board", "Winner", "Moves", "Time")
	fmt.Printf("  %-8s  %-16s  %-5s  %-6s  %-6s  %-5s  %s\n", "-----", "----", "-----", "-----", "------", "-----", "----")

	for _, m := range matches {
		fmt.Printf("  %-8s  %-16s  %-5d  %-6s  %-6s  %-5d  %s\n",
			m.ID[:min(8, len(m.ID))],
			m.CreatedAt.Local().Format("2006-01-02 15:04"),
			m.Players,
			fmt.Sprintf("%dx%d", m.Width, m.Height),
			fmt.Sprintf("P%d", m.Winner+1),
			m.Placements,
			m.Duration.Round(time.Second),
		)
	}

	wins, err := store.WinsBySeat()
	if err != nil {
		return err
	}
	sum, err := store.Summarize()
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("Wins by seat (%d matches):\n", sum.Matches)
	for _, w := range wins {
		fmt.Printf("  P%-2d %d\n", w.Seat+1, w.Wins)
	}
	fmt.Printf("Average length: %.1f moves, longest: %d\n", sum.AvgPlacements, sum.MostPlacements)
	return nil
}

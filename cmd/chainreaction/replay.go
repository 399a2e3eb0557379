package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/chain-reaction/internal/games/chainreaction/engine"
	"github.com/vovakirdan/chain-reaction/internal/storage"
)

var flagEvents bool

var replayCmd = &cobra.Command{
	Use:   "replay <match-id>",
	Short: "Re-simulate a stored match",
	Long: `Replay the placements of a stored match on a fresh board and print
the final position. The replayed winner must match the recorded one.

Any unique prefix of a match ID works.

Examples:
  chainreaction replay 1f3a9c2e
  chainreaction replay 1f3a9c2e --events`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagEvents, "events", false, "Print every event of the match")
}

func runReplay(_ *cobra.Command, args []string) error {
	logger, cleanup, err := newLogger(false)
	if err != nil {
		return err
	}
	defer cleanup()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening match database: %w", err)
	}
	defer store.Close()

	match, err := store.MatchByID(args[0])
	if err != nil {
		return err
	}

	sim, err := replayMatch(match)
	if err != nil {
		return fmt.Errorf("replaying %s: %w", match.ID, err)
	}

	fmt.Printf("Match %s: %d players on %dx%d, %d placements\n",
		match.ID, match.Players, match.Width, match.Height, match.Placements)

	if flagEvents {
		fmt.Println()
		printEvents(os.Stdout, sim.Events())
	}

	fmt.Println()
	printBoard(os.Stdout, sim)
	fmt.Println()

	winner, ok := sim.Winner()
	if !ok || int(winner) != match.Winner {
		logger.Error("replay diverged", "recorded", match.Winner, "replayed", winner, "decided", ok)
		return fmt.Errorf("replay does not reproduce the recorded winner P%d", match.Winner+1)
	}
	fmt.Printf("Winner: %v (matches the record)\n", winner)
	return nil
}

// replayMatch runs the stored placements on a fresh simulation.
func replayMatch(m *storage.Match) (*engine.Simulation, error) {
	moves := make([]engine.Move, len(m.Moves))
	for i, mv := range m.Moves {
		moves[i] = engine.Move{Player: engine.PlayerID(mv.Player), Row: mv.Row, Col: mv.Col}
	}
	return engine.Replay(engine.Config{Players: m.Players, Width: m.Width, Height: m.Height}, moves)
}

// printEvents writes one event per line, numbering placements.
func printEvents(w io.Writer, events []engine.Event) {
	turn := 0
	for _, e := range events {
		if _, ok := e.(engine.Placed); ok {
			turn++
			fmt.Fprintf(w, "%4d  %v\n", turn, e)
			continue
		}
		fmt.Fprintf(w, "      %v\n", e)
	}
}

// printBoard writes the board with each cell as seat and orb count,
// e.g. "P2x3", and "." for empty cells.
func printBoard(w io.Writer, sim *engine.Simulation) {
	for row := range sim.Height() {
		cells := make([]string, sim.Width())
		for col := range cells {
			c, _ := sim.CellAt(row, col)
			if c.Empty() {
				cells[col] = fmt.Sprintf("%-4s", ".")
				continue
			}
			cells[col] = fmt.Sprintf("P%dx%d", int(c.Owner())+1, c.Orbs())
		}
		fmt.Fprintln(w, strings.Join(cells, " "))
	}
}

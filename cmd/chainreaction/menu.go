package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/chain-reaction/internal/config"
	"github.com/vovakirdan/chain-reaction/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with the setup menu",
	Long: `Start in interactive menu mode.

Pick the number of players, the board and the cascade pace, then play.
After a game you return to the menu to play again. Tab opens the match
history.

Controls:
  Up/Down/j/k     - Navigate menu
  Left/Right/h/l  - Change value
  Enter/Space     - Select
  Tab             - Match history
  Q               - Quit

Examples:
  chainreaction menu
  chainreaction menu --fps 60
  chainreaction menu --db ./matches.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	logger, cleanup, err := newLogger(true)
	if err != nil {
		return err
	}
	defer cleanup()

	gc, err := loadConfig()
	if err != nil {
		return err
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	width, height := terminalSize()
	rc := gc.Runtime(config.Session{Players: gc.Players.Default}, width, height, flagFPS)

	return tui.RunSession(store, logger, gc, rc)
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/chain-reaction/internal/config"
	"github.com/vovakirdan/chain-reaction/internal/games/chainreaction"
	"github.com/vovakirdan/chain-reaction/internal/games/chainreaction/engine"
	"github.com/vovakirdan/chain-reaction/internal/platform/tui"
	"github.com/vovakirdan/chain-reaction/internal/registry"
)

var (
	flagPlayers int
	flagPreset  string
	flagWidth   int
	flagHeight  int
	flagPace    string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start a hot-seat game in the terminal.

Without --players the setup screen is shown first.

Controls:
  Arrows/WASD/hjkl  - Move cursor
  Space/Enter       - Place an orb
  Mouse click       - Place an orb on the clicked cell
  P                 - Pause
  R                 - Restart (after game over)
  B/Esc             - Leave (when paused or over)
  Ctrl+S            - Save a text screenshot
  Q/Ctrl+C          - Quit

Board presets:
  auto      - Largest preset that fits the terminal (default)
  compact   - 8x10
  standard  - 10x12
  large     - 12x14

Pace options:
  slow, normal, fast, instant

Examples:
  chainreaction play
  chainreaction play --players 2
  chainreaction play --players 5 --preset large --pace fast
  chainreaction play --players 3 --width 6 --height 6`,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagPlayers, "players", 2, "Number of players (2-9)")
	playCmd.Flags().StringVar(&flagPreset, "preset", "", "Board preset: auto, compact, standard, large")
	playCmd.Flags().IntVar(&flagWidth, "width", 0, "Custom board width (overrides --preset)")
	playCmd.Flags().IntVar(&flagHeight, "height", 0, "Custom board height (overrides --preset)")
	playCmd.Flags().StringVar(&flagPace, "pace", "", "Cascade pace: slow, normal, fast, instant")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	logger, cleanup, err := newLogger(true)
	if err != nil {
		return err
	}
	defer cleanup()

	gc, err := loadConfig()
	if err != nil {
		return err
	}

	pace, ok := config.ParsePace(flagPace)
	if !ok {
		return fmt.Errorf("unknown pace %q", flagPace)
	}
	config.ApplyPacePreset(&gc, pace)

	width, height := terminalSize()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	// No seat count: let the players set the game up
	if !cmd.Flags().Changed("players") {
		rc := gc.Runtime(config.Session{Players: gc.Players.Default}, width, height, flagFPS)
		if err := tui.RunSession(store, logger, gc, rc); err != nil {
			return fmt.Errorf("running game: %w", err)
		}
		return nil
	}

	if flagPlayers < gc.Players.Min || flagPlayers > gc.Players.Max {
		return fmt.Errorf("--players must be between %d and %d", gc.Players.Min, gc.Players.Max)
	}

	rc, err := tui.SessionConfig(gc, flagPlayers, flagPreset, width, height, flagFPS)
	if err != nil {
		return err
	}
	if flagWidth > 0 || flagHeight > 0 {
		rc.GridW, rc.GridH = flagWidth, flagHeight
		// Report impossible boards before taking over the terminal
		if err := (engine.Config{Players: flagPlayers, Width: flagWidth, Height: flagHeight}).Validate(); err != nil {
			return err
		}
	}

	game, err := registry.Create(chainreaction.ID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	if err := tui.Run(game, store, logger, rc); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

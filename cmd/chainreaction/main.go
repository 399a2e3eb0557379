// chainreaction is a hot-seat Chain Reaction game for the terminal.
//
// Usage:
//
//	chainreaction play           - Play a game
//	chainreaction menu           - Setup menu, game and match history
//	chainreaction history        - List recent matches and wins per seat
//	chainreaction replay <id>    - Re-simulate a stored match
//	chainreaction serve          - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 30)
//	--config <path>      - Game config YAML
//	--db <path>          - Set database path (default: ~/.chainreaction/matches.db)
//	--log-file <path>    - Log file for interactive commands
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/chain-reaction/internal/config"
	"github.com/vovakirdan/chain-reaction/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagConfigPath string
	flagDBPath     string
	flagLogFile    string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "chainreaction",
	Short: "Chain Reaction - hot-seat orb strategy in your terminal",
	Long: `Chain Reaction is a turn-based strategy game for 2 to 9 players
sharing one keyboard. Players take turns placing orbs; a cell that reaches
its critical mass explodes into its neighbours and captures them. The last
player with orbs on the board wins.

Available commands:
  play     - Play a game directly
  menu     - Setup menu with match history
  history  - Show recent matches
  replay   - Re-simulate a stored match
  serve    - Start SSH server for remote play

Examples:
  chainreaction play --players 3
  chainreaction play --players 4 --preset large --pace fast
  chainreaction menu
  chainreaction history --limit 5
  chainreaction replay 1f3a9c2e --events
  chainreaction serve --ssh :2222`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	defaultDir := config.DataDir()

	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", filepath.Join(defaultDir, "matches.db"), "Path to match history database")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", filepath.Join(defaultDir, "chainreaction.log"), "Log file for interactive commands")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(serveCmd)
}

// newLogger builds the logger for a command. Interactive commands own the
// terminal, so they log to the log file; the rest log to stderr.
// The returned cleanup must be called when the command is done.
func newLogger(interactive bool) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	var w io.Writer = os.Stderr
	cleanup := func() {}
	if interactive {
		if err := os.MkdirAll(filepath.Dir(flagLogFile), 0o755); err != nil {
			return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		//nolint:errcheck // Best-effort close on exit
		cleanup = func() { f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "chainreaction",
		Level:           level,
	})
	return logger, cleanup, nil
}

// loadConfig loads the game configuration from --config or the default
// search path.
func loadConfig() (config.ChainReactionConfig, error) {
	cfg, err := config.LoadChainReaction(flagConfigPath)
	if err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// openStore opens the match database. Play continues without history
// when it cannot be opened.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open match database, history disabled", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

// terminalSize returns the size of the controlling terminal, or 80x24.
func terminalSize() (int, int) {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return width, height
}

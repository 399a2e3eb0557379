package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/chain-reaction/internal/config"
	"github.com/vovakirdan/chain-reaction/internal/core"
	"github.com/vovakirdan/chain-reaction/internal/registry"
	"github.com/vovakirdan/chain-reaction/internal/storage"
)

// GameModel runs one game: it feeds ticks and input to the game, saves the
// finished match once and reports when the player wants the menu back.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	quitting   bool
	backToMenu bool
	saved      bool
	standalone bool   // Back quits the program instead of returning to a menu
	lastMatch  string // ID of the last saved match
	tickGen    uint64
}

// NewGameModel creates a game model. store and logger may be nil.
func NewGameModel(game registry.Game, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) GameModel {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		logger:     logger,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		gameState:  core.GameState{Winner: -1},
		keyMapper:  NewKeyMapper(),
		tickGen:    nextTickGen(),
	}
}

// Init starts the game and the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.logMatchStart()
	return tickCmd(m.config.TickRate, m.tickGen)
}

func (m GameModel) logMatchStart() {
	m.logger.Info("match started",
		"game", m.game.ID(),
		"players", m.config.Players,
		"grid", fmt.Sprintf("%dx%d", m.config.GridW, m.config.GridH),
	)
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.keyMapper.MapMouseToFrame(msg, &m.inputFrame)
		return m, nil
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case TickMsg:
		if msg.gen != m.tickGen {
			return m, nil
		}
		return m.handleTick()
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	// Back to menu only from a finished or paused game
	if m.inputFrame.Has(core.ActionBack) && (m.gameState.GameOver || m.gameState.Paused) {
		m.backToMenu = true
		if m.standalone {
			m.quitting = true
			return m, tea.Quit
		}
	}
	return m, nil
}

// handleResize relays out the game for the new window. Games that cannot
// relayout are restarted unless they are over.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(msg.Width, msg.Height)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}
	return m, nil
}

// handleTick advances the game by one tick.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu {
		return m, nil
	}

	wasOver := m.gameState.GameOver
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	switch {
	case m.gameState.GameOver && !m.saved:
		m.saveMatch()
		m.saved = true
	case wasOver && !m.gameState.GameOver:
		// Restarted
		m.saved = false
		m.logMatchStart()
	}

	return m, tickCmd(m.config.TickRate, m.tickGen)
}

// saveMatch persists the finished match. Failures are logged and never
// interrupt play.
func (m *GameModel) saveMatch() {
	rec, ok := m.recordOf()
	if !ok {
		return
	}

	m.logger.Info("match finished",
		"winner", fmt.Sprintf("P%d", rec.Winner+1),
		"placements", rec.Placements(),
		"duration", rec.Duration.Round(time.Second),
	)

	if m.store == nil {
		return
	}
	id, err := m.store.SaveMatch(rec)
	if err != nil {
		m.logger.Warn("could not save match", "error", err)
		return
	}
	m.lastMatch = id
	m.logger.Debug("match saved", "id", id)
}

func (m GameModel) recordOf() (core.MatchRecord, bool) {
	r, ok := m.game.(registry.Recorder)
	if !ok {
		return core.MatchRecord{}, false
	}
	return r.Record()
}

// saveScreenshot saves the current screen to a text file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(config.DataDir(), "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot directory", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the game.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// LastMatch returns the ID of the last match saved by this model, if any.
func (m GameModel) LastMatch() string {
	return m.lastMatch
}

// Run plays a single game until the player quits or backs out.
func Run(game registry.Game, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) error {
	model := NewGameModel(game, store, logger, cfg)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Click to place
	)

	finalModel, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := finalModel.(GameModel); ok && m.lastMatch != "" {
		fmt.Printf("Match saved as %s\n", m.lastMatch)
	}
	return nil
}

package tui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/chain-reaction/internal/config"
	"github.com/vovakirdan/chain-reaction/internal/core"
	"github.com/vovakirdan/chain-reaction/internal/games/chainreaction"
	"github.com/vovakirdan/chain-reaction/internal/registry"
	"github.com/vovakirdan/chain-reaction/internal/storage"
)

type screen int

const (
	screenMenu screen = iota
	screenGame
	screenHistory
)

// SessionModel manages the full session flow: setup -> game -> setup, with
// the history browser reachable from setup. Each SessionModel owns its own
// game, so concurrent sessions never share state.
type SessionModel struct {
	store     *storage.Store
	logger    *log.Logger
	gameCfg   config.ChainReactionConfig
	config    core.RuntimeConfig
	current   screen
	menu      MenuModel
	history   HistoryModel
	gameModel GameModel
	quitting  bool
}

// NewSessionModel creates a new session model. store and logger may be nil.
func NewSessionModel(store *storage.Store, logger *log.Logger, gc config.ChainReactionConfig, cfg core.RuntimeConfig) SessionModel {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return SessionModel{
		store:   store,
		logger:  logger,
		gameCfg: gc,
		config:  cfg,
		menu:    NewMenuModel(gc, cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.current {
	case screenGame:
		return m.updateGame(msg)
	case screenHistory:
		return m.updateHistory(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates on the setup screen.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Ticks left over from a finished game
	if _, ok := msg.(TickMsg); ok {
		return m, nil
	}

	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	res := m.menu.Result()
	switch {
	case res.Start:
		game, err := registry.Create(chainreaction.ID)
		if err != nil {
			// Registered in init, cannot fail
			m.logger.Error("cannot create game", "error", err)
			m.quitting = true
			return m, tea.Quit
		}
		m.gameModel = NewGameModel(game, m.store, m.logger, res.Config)
		m.current = screenGame
		return m, m.gameModel.Init()

	case res.WantsHistory:
		m.history = NewHistoryModel(m.store, m.config.ScreenW, m.config.ScreenH)
		m.current = screenHistory
		return m, m.history.Init()

	case m.menu.quitting:
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// updateGame handles updates while a game is running.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.gameModel.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.gameModel = gameModel
	}

	if m.gameModel.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.gameModel.BackToMenu() {
		return m.backToMenu()
	}

	return m, cmd
}

// updateHistory handles updates on the history screen.
func (m SessionModel) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.history.Update(msg)
	if historyModel, ok := newModel.(HistoryModel); ok {
		m.history = historyModel
	}

	if m.history.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.history.IsGoingBack() {
		return m.backToMenu()
	}

	return m, cmd
}

// backToMenu shows a fresh setup screen that keeps the last choices.
func (m SessionModel) backToMenu() (tea.Model, tea.Cmd) {
	menu := NewMenuModel(m.gameCfg, m.config)
	menu.players, menu.board, menu.pace = m.menu.players, m.menu.board, m.menu.pace
	m.menu = menu
	m.current = screenMenu
	return m, m.menu.Init()
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.current {
	case screenGame:
		return m.gameModel.View()
	case screenHistory:
		return m.history.View()
	default:
		return m.menu.View()
	}
}

// RunSession runs the interactive setup, game and history flow in the
// local terminal.
func RunSession(store *storage.Store, logger *log.Logger, gc config.ChainReactionConfig, cfg core.RuntimeConfig) error {
	model := NewSessionModel(store, logger, gc, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}

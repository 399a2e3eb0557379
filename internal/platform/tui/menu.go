package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/chain-reaction/internal/config"
	"github.com/vovakirdan/chain-reaction/internal/core"
	"github.com/vovakirdan/chain-reaction/internal/games/chainreaction"
)

// Setup menu rows
const (
	rowPlayers = iota
	rowBoard
	rowPace
	rowStart
	rowHistory
	rowQuit
	rowCount
)

var paces = []config.PacePreset{config.PaceSlow, config.PaceNormal, config.PaceFast, config.PaceInstant}

// SessionConfig builds the runtime config for a game with the given
// number of players on the named grid preset. An empty preset uses the
// configured one; "auto" picks the largest preset that fits the screen and
// falls back to a board fitted to the screen.
func SessionConfig(gc config.ChainReactionConfig, players int, preset string, screenW, screenH, tickRate int) (core.RuntimeConfig, error) {
	if preset == "" {
		preset = gc.Grid.Preset
	}

	s := config.Session{Players: players}
	if preset == config.PresetAuto {
		if gp, ok := gc.PresetFor(screenW, screenH, chainreaction.ChromeHeight); ok {
			s.Width, s.Height = gp.Width, gp.Height
		}
	} else {
		gp, err := gc.Preset(preset)
		if err != nil {
			return core.RuntimeConfig{}, err
		}
		s.Width, s.Height = gp.Width, gp.Height
	}
	return gc.Runtime(s, screenW, screenH, tickRate), nil
}

// MenuModel is the Bubble Tea model for the game setup screen: number of
// players, board preset and cascade pace.
type MenuModel struct {
	gameCfg   config.ChainReactionConfig
	tickRate  int
	cursor    int
	players   int
	board     int // 0 is auto, otherwise 1 + preset index
	pace      int
	width     int
	height    int
	keyMapper *KeyMapper
	quitting  bool
	start     bool
	history   bool
}

// NewMenuModel creates a new setup menu.
func NewMenuModel(gc config.ChainReactionConfig, cfg core.RuntimeConfig) MenuModel {
	m := MenuModel{
		gameCfg:   gc,
		tickRate:  cfg.TickRate,
		cursor:    rowStart,
		players:   gc.Players.Default,
		pace:      1,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		keyMapper: NewKeyMapper(),
	}
	for i, gp := range gc.Grid.Presets {
		if gp.Name == gc.Grid.Preset {
			m.board = i + 1
		}
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		m.cursor = (m.cursor + rowCount - 1) % rowCount

	case MenuActionDown:
		m.cursor = (m.cursor + 1) % rowCount

	case MenuActionLeft:
		m.adjust(-1)

	case MenuActionRight:
		m.adjust(1)

	case MenuActionHistory:
		m.history = true
		return m, tea.Quit

	case MenuActionSelect:
		switch m.cursor {
		case rowStart:
			m.start = true
			return m, tea.Quit
		case rowHistory:
			m.history = true
			return m, tea.Quit
		case rowQuit:
			m.quitting = true
			return m, tea.Quit
		default:
			m.adjust(1)
		}
	}

	return m, nil
}

// adjust changes the value on the current row, wrapping around.
func (m *MenuModel) adjust(delta int) {
	switch m.cursor {
	case rowPlayers:
		lo, hi := m.gameCfg.Players.Min, m.gameCfg.Players.Max
		m.players = lo + (m.players-lo+delta+(hi-lo+1))%(hi-lo+1)
	case rowBoard:
		n := len(m.gameCfg.Grid.Presets) + 1
		m.board = (m.board + delta + n) % n
	case rowPace:
		m.pace = (m.pace + delta + len(paces)) % len(paces)
	}
}

func (m MenuModel) presetName() string {
	if m.board == 0 {
		return config.PresetAuto
	}
	return m.gameCfg.Grid.Presets[m.board-1].Name
}

// Session returns the runtime config for the selected setup.
func (m MenuModel) Session() core.RuntimeConfig {
	gc := m.gameCfg
	config.ApplyPacePreset(&gc, paces[m.pace])
	rc, err := SessionConfig(gc, m.players, m.presetName(), m.width, m.height, m.tickRate)
	if err != nil {
		// Presets come from the menu itself
		rc = gc.Runtime(config.Session{Players: m.players}, m.width, m.height, m.tickRate)
	}
	return rc
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	activeStyle := lipgloss.NewStyle().Bold(true)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerStyled(titleStyle.Render("C H A I N   R E A C T I O N"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Hot-seat for 2 to 9 players", m.width))
	b.WriteString("\n\n")

	rows := []string{
		fmt.Sprintf("Players  ◀ %d ▶  %s", m.players, m.swatches()),
		fmt.Sprintf("Board    ◀ %s ▶", m.boardLabel()),
		fmt.Sprintf("Pace     ◀ %s ▶", paces[m.pace]),
		"Start game",
		"Match history",
		"Quit",
	}
	for i, row := range rows {
		line := "  " + row
		if i == m.cursor {
			line = activeStyle.Render("> " + row)
		}
		b.WriteString(centerStyled(line, m.width))
		b.WriteString("\n")
		if i == rowPace {
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Left/Right: Change  |  Enter: Select  |  Tab: History  |  Q: Quit"
	b.WriteString(centerStyled(dimStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// swatches renders one colored orb per seat.
func (m MenuModel) swatches() string {
	parts := make([]string, m.players)
	for i := range parts {
		parts[i] = playerStyle(i).Render(string(chainreaction.OrbChar))
	}
	return strings.Join(parts, " ")
}

func (m MenuModel) boardLabel() string {
	if m.board > 0 {
		gp := m.gameCfg.Grid.Presets[m.board-1]
		return fmt.Sprintf("%s %dx%d", gp.Name, gp.Width, gp.Height)
	}
	if gp, ok := m.gameCfg.PresetFor(m.width, m.height, chainreaction.ChromeHeight); ok {
		return fmt.Sprintf("auto (%s)", gp.Name)
	}
	return "auto (fit window)"
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	n := len([]rune(text))
	if n >= width {
		return text
	}
	padding := (width - n) / 2
	return strings.Repeat(" ", padding) + text
}

// centerStyled centers text that may contain ANSI styling.
func centerStyled(text string, width int) string {
	n := lipgloss.Width(text)
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Config       core.RuntimeConfig
	Start        bool
	WantsHistory bool
	Quit         bool
}

// Result reports what the player chose.
func (m MenuModel) Result() MenuResult {
	switch {
	case m.start:
		return MenuResult{Config: m.Session(), Start: true}
	case m.history:
		return MenuResult{WantsHistory: true}
	default:
		return MenuResult{Quit: true}
	}
}

// Package tui provides the Bubble Tea integration for Chain Reaction.
// It handles the terminal UI loop, input mapping, match persistence and
// the SSH server.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game tick. Each game model runs its own
// tick loop; gen tells a model its ticks from those of a previous game.
type TickMsg struct {
	Time time.Time
	gen  uint64
}

var tickGen atomic.Uint64

// nextTickGen returns a fresh tick loop generation.
func nextTickGen() uint64 {
	return tickGen.Add(1)
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int, gen uint64) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 30
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, gen: gen}
	})
}

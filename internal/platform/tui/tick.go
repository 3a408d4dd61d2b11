// Package tui provides the Bubble Tea front end for monster battles and the
// Wish SSH server that serves it.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// hpTickRate is how many HP animation frames run per second.
const hpTickRate = 30

// TickMsg is sent to advance the HP bar animation.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type tickMsg struct {
	at time.Time
}

func frameTick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg{at: t}
	})
}

// ensureTicking schedules the next frame while any visualizer has work on
// the scheduler. Frames stop as soon as the scene is still.
func (m *Model) ensureTicking() tea.Cmd {
	if m.animating || !m.sched.Active() {
		return nil
	}
	m.animating = true
	if m.tickCmd == nil {
		return nil
	}
	return m.tickCmd(m.frame)
}

func (m *Model) handleTickMsg(msg tea.Msg) tea.Cmd {
	tick, ok := msg.(tickMsg)
	if !ok {
		return nil
	}
	m.animating = false
	m.sched.Tick(tick.at)
	if t := m.currentTab(); t != nil {
		if count := len(m.focusable()); count > 0 {
			t.ClampFocus(count)
		}
	}
	return nil
}

// Animating reports whether frames are being requested.
func (m *Model) Animating() bool {
	return m.animating
}

package ui

import (
	"fmt"
	"time"

	"github.com/atomicstack/orgverse/internal/logging/events"
	"github.com/atomicstack/orgverse/internal/ui/command"
	tea "github.com/charmbracelet/bubbletea"
)

const infoTTL = 5 * time.Second

type copyResultMsg struct {
	kind  string
	lines int
	err   error
}

func (m *Model) copyCmd() tea.Cmd {
	c := m.currentCollection()
	if c == nil {
		return nil
	}
	surface := c.Surface()
	if surface.Empty() {
		m.setInfo("Nothing to copy.")
		return nil
	}
	if m.clipboard == nil {
		m.errMsg = "Clipboard unavailable."
		return nil
	}
	text := surface.Text()
	lines := len(surface.Lines())
	kind := c.ID()
	write := m.clipboard
	return m.bus.Execute(command.Request{
		ID:    "copy",
		Label: kind,
		Run: func() tea.Msg {
			return copyResultMsg{kind: kind, lines: lines, err: write(text)}
		},
	})
}

func (m *Model) handleCopyResultMsg(msg tea.Msg) tea.Cmd {
	res, ok := msg.(copyResultMsg)
	if !ok {
		return nil
	}
	if res.err != nil {
		m.errMsg = fmt.Sprintf("copy failed: %v", res.err)
		events.Action.Error(res.err)
		return nil
	}
	events.Selection.Copy(res.kind, res.lines)
	m.setInfo("Copied detail to clipboard.")
	return nil
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(infoTTL)
}

func (m *Model) clearInfo() {
	if m.infoMsg == "" {
		return
	}
	if !m.infoExpire.IsZero() && time.Now().Before(m.infoExpire) {
		return
	}
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}

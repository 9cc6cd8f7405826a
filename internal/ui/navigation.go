package ui

import (
	"errors"
	"fmt"

	"github.com/atomicstack/orgverse/internal/logging/events"
	"github.com/atomicstack/orgverse/internal/visualizer"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	msgLastPage  = "No more pages."
	msgFirstPage = "Already on the first page."
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch m.screen {
	case ScreenLoad:
		return m.handleLoadKey(keyMsg)
	case ScreenScene:
		return m.handleSceneKey(keyMsg)
	}
	if keyMsg.String() == "ctrl+c" || keyMsg.String() == "q" {
		return tea.Quit
	}
	return nil
}

func (m *Model) handleLoadKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return tea.Quit
	case "enter":
		m.errMsg = ""
		m.setScreen(ScreenScene)
	case "n", "c":
		m.errMsg = ""
		m.startCreateForm()
	}
	return nil
}

func (m *Model) handleSceneKey(msg tea.KeyMsg) tea.Cmd {
	m.clearInfo()
	if t := m.currentTab(); t != nil && t.Filtering {
		if handled, cmd := m.handleFilterKey(msg); handled {
			return cmd
		}
	}
	switch msg.String() {
	case "ctrl+c", "q":
		return tea.Quit
	case "tab":
		m.switchTab(1)
	case "shift+tab":
		m.switchTab(-1)
	case "n", "right", "pgdown", "l":
		m.nextPage()
	case "p", "left", "pgup", "h":
		m.previousPage()
	case "j", "down":
		m.moveFocus(1)
	case "k", "up":
		m.moveFocus(-1)
	case "g", "home":
		m.focusHome()
	case "G", "end":
		m.focusEnd()
	case "enter", " ":
		m.selectFocused()
	case "c":
		m.clearDisplay()
	case "/":
		m.startFilter()
	case "esc":
		m.clearFilter()
	case "y":
		return m.copyCmd()
	case "r":
		return m.reloadCmd()
	}
	return nil
}

func (m *Model) switchTab(delta int) {
	n := len(m.collections)
	if n == 0 {
		return
	}
	from := m.currentTab()
	m.active = ((m.active+delta)%n + n) % n
	to := m.currentTab()
	to.ClampFocus(len(m.focusable()))
	m.errMsg = ""
	m.forceClearInfo()
	events.UI.TabSwitch(from.ID, to.ID)
}

func (m *Model) nextPage() {
	c := m.currentCollection()
	if c == nil {
		return
	}
	if !c.Controller().NextPage() {
		m.setInfo(msgLastPage)
		return
	}
	m.forceClearInfo()
	m.currentTab().ClampFocus(0)
}

func (m *Model) previousPage() {
	c := m.currentCollection()
	if c == nil {
		return
	}
	if !c.Controller().PreviousPage() {
		m.setInfo(msgFirstPage)
		return
	}
	m.forceClearInfo()
	m.currentTab().ClampFocus(0)
}

func (m *Model) moveFocus(delta int) {
	t := m.currentTab()
	if t == nil {
		return
	}
	if t.MoveFocusBy(delta, len(m.focusable())) {
		events.UI.Focus(t.ID, t.Focus)
	}
}

func (m *Model) focusHome() {
	if t := m.currentTab(); t != nil && t.MoveFocusHome(len(m.focusable())) {
		events.UI.Focus(t.ID, t.Focus)
	}
}

func (m *Model) focusEnd() {
	if t := m.currentTab(); t != nil && t.MoveFocusEnd(len(m.focusable())) {
		events.UI.Focus(t.ID, t.Focus)
	}
}

func (m *Model) selectFocused() {
	t := m.currentTab()
	views := m.focusable()
	if t == nil || t.Focus < 0 || t.Focus >= len(views) {
		return
	}
	m.selectHandle(views[t.Focus])
}

func (m *Model) selectHandle(view visualizer.ProxyView) {
	c := m.currentCollection()
	if c == nil {
		return
	}
	if err := c.Controller().SelectHandle(view.Handle); err != nil {
		if errors.Is(err, visualizer.ErrUnknownProxy) {
			m.errMsg = "That record is no longer on screen."
		} else {
			m.errMsg = err.Error()
		}
		return
	}
	m.errMsg = ""
	if m.verbose {
		m.setInfo(fmt.Sprintf("Showing %s", view.Label))
	}
}

func (m *Model) clearDisplay() {
	if c := m.currentCollection(); c != nil {
		c.Controller().ClearDisplay()
	}
	m.errMsg = ""
	m.forceClearInfo()
}

// handleMouseMsg selects the proxy under a left click; the wheel pages.
func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	ev, ok := msg.(tea.MouseMsg)
	if !ok || m.screen != ScreenScene {
		return nil
	}
	switch ev.Button {
	case tea.MouseButtonWheelDown:
		if ev.Action == tea.MouseActionPress {
			m.nextPage()
		}
		return nil
	case tea.MouseButtonWheelUp:
		if ev.Action == tea.MouseActionPress {
			m.previousPage()
		}
		return nil
	case tea.MouseButtonLeft:
	default:
		return nil
	}
	if ev.Action != tea.MouseActionPress {
		return nil
	}
	frame := m.geometry()
	col, row := ev.X-frame.canvasLeft, ev.Y-frame.canvasTop
	if col < 0 || row < 0 || col >= frame.canvasWidth || row >= frame.canvasHeight {
		return nil
	}
	_, items := m.projectScene(frame.canvasWidth, frame.canvasHeight)
	view, hit := hitTest(items, col, row)
	handle := ""
	if hit {
		handle = view.Handle.String()
	}
	events.UI.Click(m.currentTab().ID, ev.X, ev.Y, handle)
	if !hit {
		return nil
	}
	for i, v := range m.focusable() {
		if v.Handle == view.Handle {
			m.currentTab().Focus = i
		}
	}
	m.selectHandle(view)
	return nil
}

package ui

import (
	"errors"
	"fmt"

	"github.com/atomicstack/orgverse/internal/backend"
	"github.com/atomicstack/orgverse/internal/logging"
	"github.com/atomicstack/orgverse/internal/stats"
	tea "github.com/charmbracelet/bubbletea"
)

func waitForBackendEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

type backendEventMsg struct {
	event  backend.Event
	manual bool
}

type backendDoneMsg struct{}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	m.applyBackendEvent(eventMsg.event)
	if m.backend != nil && !eventMsg.manual {
		return waitForBackendEvent(m.backend)
	}
	return nil
}

func (m *Model) handleBackendDoneMsg(msg tea.Msg) tea.Cmd {
	m.backend = nil
	return nil
}

// applyBackendEvent loads the document into every collection and decides
// which screen the first read lands on.
func (m *Model) applyBackendEvent(evt backend.Event) {
	res := m.dispatcher.Handle(evt)
	m.doc = res.Document
	for i, c := range m.collections {
		t := m.tabs[i]
		t.SetLabels(c.Labels())
		if t.Filtered() {
			c.Restrict(t.Matches)
		}
		t.ClampFocus(0)
	}
	if res.Err != nil {
		if !errors.Is(res.Err, stats.ErrDataUnavailable) || m.screen == ScreenScene {
			m.errMsg = res.Err.Error()
		}
		logging.Error(fmt.Errorf("load %s: %w", evt.Path, res.Err))
	} else if m.screen == ScreenScene {
		m.errMsg = ""
		if m.verbose {
			m.setInfo("Stats reloaded.")
		}
	}
	if m.screen == ScreenStartup {
		if res.Ready() {
			m.setScreen(ScreenLoad)
		} else {
			m.startCreateForm()
		}
	}
}

// reloadCmd reads the stats document once.
func (m *Model) reloadCmd() tea.Cmd {
	path := m.statsPath
	return func() tea.Msg {
		return backendEventMsg{event: backend.Load(path), manual: true}
	}
}

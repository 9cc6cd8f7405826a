package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
)

// maxSettleFrames bounds Settle so a stuck tween cannot hang a test.
const maxSettleFrames = 10000

// Harness drives the UI model programmatically for integration tests. Frame
// ticks never reach the real clock; Tick and Settle advance a synthetic one.
// Cursors are static so no blink timers run.
type Harness struct {
	model *Model
	now   time.Time
}

// NewHarness creates a harness for the provided model.
func NewHarness(model *Model) *Harness {
	if model != nil {
		model.tickCmd = nil
		model.cursorMode = cursor.CursorStatic
		model.filterCursor.SetMode(cursor.CursorStatic)
	}
	return &Harness{model: model, now: time.Unix(0, 0)}
}

// Send routes a message through the model and executes any returned commands.
func (h *Harness) Send(msg tea.Msg) {
	if h.model == nil {
		return
	}
	h.update(msg)
}

func (h *Harness) update(msg tea.Msg) {
	mdl, cmd := h.model.Update(msg)
	if updated, ok := mdl.(*Model); ok {
		h.model = updated
	}
	h.processCmd(cmd)
}

func (h *Harness) processCmd(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	msg := cmd()
	switch msg := msg.(type) {
	case nil:
		return
	case tea.BatchMsg:
		for _, c := range msg {
			h.processCmd(c)
		}
	case tea.QuitMsg:
		return
	default:
		h.update(msg)
	}
}

// Tick advances the synthetic clock by d and delivers one frame.
func (h *Harness) Tick(d time.Duration) {
	if h.model == nil {
		return
	}
	h.now = h.now.Add(d)
	h.update(tickMsg{at: h.now})
}

// Settle delivers frames until every animation has finished and reports
// how many it took.
func (h *Harness) Settle() int {
	if h.model == nil {
		return 0
	}
	frames := 0
	for h.model.sched.Active() && frames < maxSettleFrames {
		h.Tick(h.model.frame)
		frames++
	}
	return frames
}

// View returns the current view string.
func (h *Harness) View() string {
	if h.model == nil {
		return ""
	}
	return h.model.View()
}

// Model exposes the underlying model.
func (h *Harness) Model() *Model {
	return h.model
}

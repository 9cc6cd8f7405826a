package command

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

type doneMsg struct{ value int }

func TestExecuteRunsAction(t *testing.T) {
	cmd := New().Execute(Request{ID: "reload", Label: "stats", Run: func() tea.Msg { return doneMsg{value: 7} }})
	if cmd == nil {
		t.Fatalf("expected a command")
	}
	msg, ok := cmd().(doneMsg)
	if !ok || msg.value != 7 {
		t.Fatalf("expected doneMsg{7}, got %#v", msg)
	}
}

func TestExecuteWithoutActionYieldsNil(t *testing.T) {
	if msg := New().Execute(Request{ID: "noop"})(); msg != nil {
		t.Fatalf("expected nil msg, got %#v", msg)
	}
}

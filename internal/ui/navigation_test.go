package ui

import (
	"errors"
	"strings"
	"testing"

	"github.com/atomicstack/orgverse/internal/testutil"
	"github.com/atomicstack/orgverse/internal/visualizer"
	tea "github.com/charmbracelet/bubbletea"
)

func TestPagingReportsBoundaries(t *testing.T) {
	h := sceneHarness(t, 12, Params{})
	m := h.Model()
	ctrl := m.currentCollection().Controller()

	h.Send(keyRunes("p"))
	if m.currentInfo() != msgFirstPage {
		t.Fatalf("expected first page notice, got %q", m.currentInfo())
	}
	h.Send(keyRunes("n"))
	h.Settle()
	h.Send(tea.KeyMsg{Type: tea.KeyRight})
	h.Settle()
	if page := ctrl.Snapshot().Page; page != 2 {
		t.Fatalf("expected page 2, got %d", page)
	}
	if got := len(m.focusable()); got != 2 {
		t.Fatalf("expected two records on the last page, got %d", got)
	}
	h.Send(tea.KeyMsg{Type: tea.KeyPgDown})
	if m.currentInfo() != msgLastPage {
		t.Fatalf("expected last page notice, got %q", m.currentInfo())
	}
	if page := ctrl.Snapshot().Page; page != 2 {
		t.Fatalf("expected page to stay at 2, got %d", page)
	}
	h.Send(tea.KeyMsg{Type: tea.KeyLeft})
	if m.currentInfo() != "" {
		t.Fatalf("expected notice cleared by a successful page change, got %q", m.currentInfo())
	}
	h.Settle()
	if page := ctrl.Snapshot().Page; page != 1 {
		t.Fatalf("expected page 1, got %d", page)
	}
}

func TestRapidPagingCoalesces(t *testing.T) {
	h := sceneHarness(t, 20, Params{})
	m := h.Model()
	ctrl := m.currentCollection().Controller()
	h.Send(keyRunes("n"))
	h.Send(keyRunes("n"))
	h.Send(keyRunes("n"))
	h.Settle()
	snap := ctrl.Snapshot()
	if snap.Page != 3 || snap.Window.Start != 15 {
		t.Fatalf("expected scene to land on page 3, got page %d window %+v", snap.Page, snap.Window)
	}
	views := m.focusable()
	if len(views) != 5 || views[0].Label != "dev15" {
		t.Fatalf("expected dev15.. on screen, got %+v", views)
	}
}

func TestFocusMovesAcrossPageProxies(t *testing.T) {
	h := sceneHarness(t, 4, Params{})
	tb := h.Model().currentTab()
	h.Send(tea.KeyMsg{Type: tea.KeyDown})
	if tb.Focus != 0 {
		t.Fatalf("expected first proxy focused, got %d", tb.Focus)
	}
	h.Send(keyRunes("j"))
	h.Send(keyRunes("j"))
	if tb.Focus != 2 {
		t.Fatalf("expected focus 2, got %d", tb.Focus)
	}
	h.Send(keyRunes("G"))
	if tb.Focus != 3 {
		t.Fatalf("expected last proxy focused, got %d", tb.Focus)
	}
	h.Send(tea.KeyMsg{Type: tea.KeyDown})
	if tb.Focus != 3 {
		t.Fatalf("expected focus clamped at the last proxy, got %d", tb.Focus)
	}
	h.Send(keyRunes("g"))
	h.Send(tea.KeyMsg{Type: tea.KeyUp})
	if tb.Focus != 0 {
		t.Fatalf("expected focus clamped at the first proxy, got %d", tb.Focus)
	}
}

func TestSelectFocusedShowsDetail(t *testing.T) {
	h := sceneHarness(t, 3, Params{})
	m := h.Model()
	surface := m.currentCollection().Surface()

	h.Send(tea.KeyMsg{Type: tea.KeyEnter})
	if !surface.Empty() {
		t.Fatalf("expected nothing shown without focus")
	}
	h.Send(keyRunes("j"))
	h.Send(keyRunes("j"))
	h.Send(tea.KeyMsg{Type: tea.KeyEnter})
	lines := surface.Lines()
	if len(lines) != 4 || lines[0] != "dev01" || lines[1] != "Total Commits: 2" {
		t.Fatalf("unexpected detail %v", lines)
	}
	view := h.View()
	if !strings.Contains(view, "Detail: Members") || !strings.Contains(view, "Total Commits:") {
		t.Fatalf("expected detail panel, got:\n%s", view)
	}

	h.Send(keyRunes("c"))
	if !surface.Empty() {
		t.Fatalf("expected detail cleared")
	}
	if !strings.Contains(h.View(), "None selected") {
		t.Fatalf("expected empty detail placeholder")
	}
}

func TestSelectDuringTransitionUsesPayload(t *testing.T) {
	h := sceneHarness(t, 10, Params{})
	m := h.Model()
	h.Send(keyRunes("n"))
	// Exits run first, so the new page only appears a few frames later.
	for i := 0; i < 100 && len(m.focusable()) == 0; i++ {
		h.Tick(m.frame)
	}
	views := m.focusable()
	if len(views) == 0 || views[0].Phase == visualizer.PhaseSettled {
		t.Fatalf("expected entering proxies mid transition, got %+v", views)
	}
	h.Send(keyRunes("j"))
	h.Send(tea.KeyMsg{Type: tea.KeySpace})
	if lines := m.currentCollection().Surface().Lines(); len(lines) == 0 || lines[0] != "dev05" {
		t.Fatalf("expected entering proxy selectable, got %v", lines)
	}
}

func TestTabSwitchWraps(t *testing.T) {
	h := sceneHarness(t, 2, Params{})
	m := h.Model()
	h.Send(tea.KeyMsg{Type: tea.KeyTab})
	if m.currentCollection().ID() != "org-members" {
		t.Fatalf("expected org members tab, got %s", m.currentCollection().ID())
	}
	if !strings.Contains(h.View(), "Detail: Org Members") {
		t.Fatalf("expected org members detail panel")
	}
	h.Send(tea.KeyMsg{Type: tea.KeyShiftTab})
	h.Send(tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.currentCollection().ID() != "pull-requests" {
		t.Fatalf("expected wrap to pull requests, got %s", m.currentCollection().ID())
	}
}

func TestLoadScreenKeys(t *testing.T) {
	doc := testutil.Document(2)
	h := startHarness(t, &doc, Params{})
	h.Send(keyRunes("n"))
	m := h.Model()
	if m.Screen() != ScreenCreate || m.createForm == nil || !m.createForm.canCancel {
		t.Fatalf("expected cancellable create form, got %v", m.Screen())
	}
	h.Send(tea.KeyMsg{Type: tea.KeyEsc})
	if m.Screen() != ScreenLoad {
		t.Fatalf("expected esc to return to the load screen, got %v", m.Screen())
	}
	h.Send(tea.KeyMsg{Type: tea.KeyEnter})
	if m.Screen() != ScreenScene {
		t.Fatalf("expected enter to open the scene, got %v", m.Screen())
	}
}

func TestMouseClickSelectsProxy(t *testing.T) {
	h := sceneHarness(t, 5, Params{})
	m := h.Model()
	g := m.geometry()
	_, items := m.projectScene(g.canvasWidth, g.canvasHeight)
	if len(items) != 5 {
		t.Fatalf("expected five proxies on the canvas, got %d", len(items))
	}
	target := items[3]
	h.Send(tea.MouseMsg{
		X:      g.canvasLeft + target.col + 2,
		Y:      g.canvasTop + target.row,
		Button: tea.MouseButtonLeft,
		Action: tea.MouseActionPress,
	})
	if lines := m.currentCollection().Surface().Lines(); len(lines) == 0 || lines[0] != target.view.Label {
		t.Fatalf("expected %s shown, got %v", target.view.Label, lines)
	}
	if m.currentTab().Focus != 3 {
		t.Fatalf("expected clicked proxy focused, got %d", m.currentTab().Focus)
	}

	m.currentCollection().Controller().ClearDisplay()
	h.Send(tea.MouseMsg{X: g.canvasLeft, Y: g.canvasTop, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	if !m.currentCollection().Surface().Empty() {
		t.Fatalf("expected click on empty canvas to select nothing")
	}
}

func TestMouseWheelPages(t *testing.T) {
	h := sceneHarness(t, 8, Params{})
	m := h.Model()
	h.Send(tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	if page := m.currentCollection().Controller().Snapshot().Page; page != 1 {
		t.Fatalf("expected wheel down to page forward, got %d", page)
	}
	h.Send(tea.MouseMsg{Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})
	if page := m.currentCollection().Controller().Snapshot().Page; page != 0 {
		t.Fatalf("expected wheel up to page back, got %d", page)
	}
}

func TestCopyWritesDetailToClipboard(t *testing.T) {
	var copied []string
	h := sceneHarness(t, 2, Params{Clipboard: func(s string) error {
		copied = append(copied, s)
		return nil
	}})
	m := h.Model()
	h.Send(keyRunes("y"))
	if len(copied) != 0 || m.currentInfo() != "Nothing to copy." {
		t.Fatalf("expected nothing copied without a selection, got %v / %q", copied, m.currentInfo())
	}
	h.Send(keyRunes("j"))
	h.Send(tea.KeyMsg{Type: tea.KeyEnter})
	h.Send(keyRunes("y"))
	if len(copied) != 1 || !strings.HasPrefix(copied[0], "dev00\nTotal Commits: 1") {
		t.Fatalf("unexpected clipboard contents %q", copied)
	}
	if m.currentInfo() != "Copied detail to clipboard." {
		t.Fatalf("expected copy notice, got %q", m.currentInfo())
	}
}

func TestCopyReportsClipboardErrors(t *testing.T) {
	h := sceneHarness(t, 2, Params{Clipboard: func(string) error { return errors.New("no display") }})
	h.Send(keyRunes("j"))
	h.Send(tea.KeyMsg{Type: tea.KeyEnter})
	h.Send(keyRunes("y"))
	if got := h.Model().errMsg; got != "copy failed: no display" {
		t.Fatalf("expected clipboard error, got %q", got)
	}
}

func TestSelectStaleHandleReportsError(t *testing.T) {
	h := sceneHarness(t, 2, Params{})
	m := h.Model()
	m.selectHandle(visualizer.ProxyView{Handle: 0})
	if m.errMsg != "That record is no longer on screen." {
		t.Fatalf("expected stale selection error, got %q", m.errMsg)
	}
}

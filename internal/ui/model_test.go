package ui

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/atomicstack/orgverse/internal/anim"
	"github.com/atomicstack/orgverse/internal/backend"
	"github.com/atomicstack/orgverse/internal/logging"
	"github.com/atomicstack/orgverse/internal/stats"
	"github.com/atomicstack/orgverse/internal/testutil"
	tea "github.com/charmbracelet/bubbletea"
)

type fakeCollector struct {
	doc   stats.Document
	err   error
	calls []string
}

func (f *fakeCollector) Collect(ctx context.Context, org, repo string) (stats.Document, error) {
	f.calls = append(f.calls, org+"/"+repo)
	return f.doc, f.err
}

func quietLogs(t *testing.T) {
	t.Helper()
	logging.Configure(filepath.Join(t.TempDir(), "ui.log"))
	t.Cleanup(func() { logging.Configure("") })
}

// startHarness boots a model over doc (nil means no stats file) and runs
// Init the way the program would.
func startHarness(t *testing.T, doc *stats.Document, p Params) *Harness {
	t.Helper()
	quietLogs(t)
	if doc != nil {
		p.StatsPath = testutil.WriteStats(t, *doc)
	} else if p.StatsPath == "" {
		p.StatsPath = filepath.Join(t.TempDir(), "missing.json")
	}
	if p.Width == 0 {
		p.Width = 100
	}
	if p.Height == 0 {
		p.Height = 30
	}
	h := NewHarness(NewModel(p))
	h.processCmd(h.Model().Init())
	return h
}

// sceneHarness boots straight into the scene with every animation settled.
func sceneHarness(t *testing.T, members int, p Params) *Harness {
	t.Helper()
	doc := testutil.Document(members)
	h := startHarness(t, &doc, p)
	h.Send(tea.KeyMsg{Type: tea.KeyEnter})
	if h.Model().Screen() != ScreenScene {
		t.Fatalf("expected scene screen, got %v", h.Model().Screen())
	}
	h.Settle()
	return h
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewModelBuildsOneTabPerCollection(t *testing.T) {
	quietLogs(t)
	m := NewModel(Params{})
	if len(m.tabs) != len(m.collections) || len(m.tabs) != 5 {
		t.Fatalf("expected five tabs, got %d tabs for %d collections", len(m.tabs), len(m.collections))
	}
	if m.Screen() != ScreenStartup {
		t.Fatalf("expected startup screen, got %v", m.Screen())
	}
	if m.statsPath != stats.DefaultPath {
		t.Fatalf("expected default stats path, got %q", m.statsPath)
	}
	if m.frame != time.Second/defaultFPS {
		t.Fatalf("expected default frame interval, got %v", m.frame)
	}
	for _, tb := range m.tabs {
		if tb.Focus != -1 {
			t.Fatalf("expected no focus on %s, got %d", tb.ID, tb.Focus)
		}
	}
}

func TestStartupWithStoredStatsShowsLoadScreen(t *testing.T) {
	doc := testutil.Document(3)
	h := startHarness(t, &doc, Params{})
	if h.Model().Screen() != ScreenLoad {
		t.Fatalf("expected load screen, got %v", h.Model().Screen())
	}
	view := h.View()
	if !strings.Contains(view, "Organization: acme") || !strings.Contains(view, "Repository: rocket") {
		t.Fatalf("expected stored organization and repository, got:\n%s", view)
	}
}

func TestStartupWithoutStatsOpensCreateForm(t *testing.T) {
	h := startHarness(t, nil, Params{})
	m := h.Model()
	if m.Screen() != ScreenCreate {
		t.Fatalf("expected create screen, got %v", m.Screen())
	}
	if m.errMsg != "" {
		t.Fatalf("expected missing stats to stay quiet at startup, got %q", m.errMsg)
	}
	if m.createForm == nil || m.createForm.canCancel {
		t.Fatalf("expected a form that cannot be cancelled without stored stats")
	}
	if !strings.Contains(h.View(), "Fetch organization stats") {
		t.Fatalf("expected create screen view, got:\n%s", h.View())
	}
}

func TestIncompleteStatsOpensCreateForm(t *testing.T) {
	doc := testutil.Document(2)
	doc.OrganizationRepos[1].Selected = false
	h := startHarness(t, &doc, Params{})
	if h.Model().Screen() != ScreenCreate {
		t.Fatalf("expected create screen without a selected repo, got %v", h.Model().Screen())
	}
}

func TestCreateFormFetchesAndOpensScene(t *testing.T) {
	collector := &fakeCollector{doc: testutil.Document(4)}
	var tokens []string
	h := startHarness(t, nil, Params{Collector: func(token string) (backend.Collector, error) {
		tokens = append(tokens, token)
		return collector, nil
	}})
	h.Send(keyRunes("acme"))
	h.Send(tea.KeyMsg{Type: tea.KeyTab})
	h.Send(keyRunes("rocket"))
	h.Send(tea.KeyMsg{Type: tea.KeyEnter})

	m := h.Model()
	if len(collector.calls) != 1 || collector.calls[0] != "acme/rocket" {
		t.Fatalf("expected one fetch of acme/rocket, got %v", collector.calls)
	}
	if len(tokens) != 1 || tokens[0] != "" {
		t.Fatalf("expected collector built without a token, got %v", tokens)
	}
	if m.Screen() != ScreenScene {
		t.Fatalf("expected scene after fetch, got %v (err %q)", m.Screen(), m.errMsg)
	}
	if m.loading {
		t.Fatalf("expected loading cleared")
	}
	saved, err := stats.Load(m.statsPath)
	if err != nil || len(saved.RepositoryMembers) != 4 {
		t.Fatalf("expected fetched stats saved, got %v (%d members)", err, len(saved.RepositoryMembers))
	}
	if got := m.currentCollection().Len(); got != 4 {
		t.Fatalf("expected four members loaded, got %d", got)
	}
}

func TestCreateFormRequiresOrgAndRepo(t *testing.T) {
	collector := &fakeCollector{}
	h := startHarness(t, nil, Params{Collector: func(string) (backend.Collector, error) { return collector, nil }})
	h.Send(tea.KeyMsg{Type: tea.KeyTab})
	h.Send(tea.KeyMsg{Type: tea.KeyTab})
	h.Send(tea.KeyMsg{Type: tea.KeyEnter})
	m := h.Model()
	if len(collector.calls) != 0 {
		t.Fatalf("expected no fetch without names, got %v", collector.calls)
	}
	if m.createForm.Error() != "Organization and repository are required." {
		t.Fatalf("unexpected form error %q", m.createForm.Error())
	}
	if !strings.Contains(h.View(), "Organization and repository are required.") {
		t.Fatalf("expected form error in view")
	}
}

func TestCreateFormShowsFetchErrors(t *testing.T) {
	collector := &fakeCollector{err: errors.New("rate limited")}
	h := startHarness(t, nil, Params{Collector: func(string) (backend.Collector, error) { return collector, nil }})
	h.Send(keyRunes("acme"))
	h.Send(tea.KeyMsg{Type: tea.KeyTab})
	h.Send(keyRunes("rocket"))
	h.Send(tea.KeyMsg{Type: tea.KeyEnter})
	m := h.Model()
	if m.Screen() != ScreenCreate {
		t.Fatalf("expected to stay on create screen, got %v", m.Screen())
	}
	if m.errMsg != "rate limited" {
		t.Fatalf("expected fetch error, got %q", m.errMsg)
	}
}

func TestCreateFormWithoutCollectorReportsError(t *testing.T) {
	h := startHarness(t, nil, Params{})
	h.Send(keyRunes("acme"))
	h.Send(tea.KeyMsg{Type: tea.KeyTab})
	h.Send(keyRunes("rocket"))
	h.Send(tea.KeyMsg{Type: tea.KeyEnter})
	if h.Model().errMsg != "No stats collector configured." {
		t.Fatalf("expected missing collector error, got %q", h.Model().errMsg)
	}
}

func TestBackendErrorInSceneClearsCollections(t *testing.T) {
	h := sceneHarness(t, 3, Params{})
	h.Send(backendEventMsg{event: backend.Event{Kind: backend.KindStats, Path: "stats.json", Err: errors.New("boom")}, manual: true})
	m := h.Model()
	if m.errMsg != "boom" {
		t.Fatalf("expected error surfaced, got %q", m.errMsg)
	}
	if m.currentCollection().Len() != 0 {
		t.Fatalf("expected collections cleared on read error")
	}
	h.Settle()
	view := h.View()
	if !strings.Contains(view, "Error: boom") || !strings.Contains(view, "No records.") {
		t.Fatalf("expected error and empty scene, got:\n%s", view)
	}
}

func TestReloadKeyRereadsStats(t *testing.T) {
	h := sceneHarness(t, 3, Params{})
	m := h.Model()
	if err := stats.Save(m.statsPath, testutil.Document(7)); err != nil {
		t.Fatalf("save: %v", err)
	}
	h.Send(keyRunes("r"))
	if got := m.currentCollection().Len(); got != 7 {
		t.Fatalf("expected reload to pick up seven members, got %d", got)
	}
	if m.Screen() != ScreenScene {
		t.Fatalf("expected to stay in scene, got %v", m.Screen())
	}
}

func TestEnsureTickingRequestsFramesOnlyWhileActive(t *testing.T) {
	quietLogs(t)
	m := NewModel(Params{})
	calls := 0
	m.tickCmd = func(d time.Duration) tea.Cmd {
		calls++
		if d != m.frame {
			t.Fatalf("expected frame interval %v, got %v", m.frame, d)
		}
		return func() tea.Msg { return nil }
	}
	if cmd := m.ensureTicking(); cmd != nil || calls != 0 {
		t.Fatalf("expected no frame for an idle scheduler")
	}
	m.sched.Add(anim.TaskFunc(func(time.Time) bool { return true }))
	if cmd := m.ensureTicking(); cmd == nil || calls != 1 {
		t.Fatalf("expected a frame once work is queued")
	}
	if cmd := m.ensureTicking(); cmd != nil || calls != 1 {
		t.Fatalf("expected one outstanding frame at a time")
	}
	m.handleTickMsg(tickMsg{at: time.Unix(1, 0)})
	if m.Animating() {
		t.Fatalf("expected animating cleared by tick")
	}
	if cmd := m.ensureTicking(); cmd != nil || calls != 1 {
		t.Fatalf("expected frames to stop once the scheduler drains")
	}
}

func TestSceneSettlesAndStopsTicking(t *testing.T) {
	doc := testutil.Document(8)
	h := startHarness(t, &doc, Params{})
	h.Send(tea.KeyMsg{Type: tea.KeyEnter})
	m := h.Model()
	if !m.sched.Active() {
		t.Fatalf("expected entry animation queued after load")
	}
	if frames := h.Settle(); frames == 0 {
		t.Fatalf("expected frames to settle the scene")
	}
	if m.Animating() || m.sched.Active() {
		t.Fatalf("expected idle scene after settling")
	}
	h.Send(keyRunes("n"))
	if !m.Animating() {
		t.Fatalf("expected paging to request frames")
	}
	h.Settle()
	if m.Animating() {
		t.Fatalf("expected frames to stop after the page transition")
	}
}

func TestQuitKeys(t *testing.T) {
	h := sceneHarness(t, 1, Params{})
	for _, key := range []tea.KeyMsg{keyRunes("q"), {Type: tea.KeyCtrlC}} {
		_, cmd := h.Model().Update(key)
		if !quits(cmd) {
			t.Fatalf("expected %q to quit", key.String())
		}
	}
}

func quits(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	switch msg := cmd().(type) {
	case tea.QuitMsg:
		return true
	case tea.BatchMsg:
		for _, c := range msg {
			if quits(c) {
				return true
			}
		}
	}
	return false
}

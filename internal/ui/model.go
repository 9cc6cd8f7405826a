package ui

import (
	"reflect"
	"time"

	"github.com/atomicstack/orgverse/internal/anim"
	"github.com/atomicstack/orgverse/internal/backend"
	"github.com/atomicstack/orgverse/internal/collection"
	"github.com/atomicstack/orgverse/internal/data/dispatcher"
	"github.com/atomicstack/orgverse/internal/logging/events"
	"github.com/atomicstack/orgverse/internal/stats"
	"github.com/atomicstack/orgverse/internal/theme"
	"github.com/atomicstack/orgverse/internal/ui/command"
	uistate "github.com/atomicstack/orgverse/internal/ui/state"
	"github.com/atomicstack/orgverse/internal/visualizer"
	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
)

type tab = uistate.Tab

// Screen is the top-level view the model shows.
type Screen int

const (
	// ScreenStartup waits for the first stats read.
	ScreenStartup Screen = iota
	// ScreenLoad offers the stored organization and repository.
	ScreenLoad
	// ScreenCreate collects an organization, repository and token to fetch.
	ScreenCreate
	// ScreenScene shows the visualizers.
	ScreenScene
)

func (s Screen) String() string {
	switch s {
	case ScreenLoad:
		return "load"
	case ScreenCreate:
		return "create"
	case ScreenScene:
		return "scene"
	}
	return "startup"
}

const defaultFPS = 30

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// CollectorFactory builds a stats collector for a token, which may be empty.
type CollectorFactory func(token string) (backend.Collector, error)

// Params configures NewModel.
type Params struct {
	StatsPath  string
	Width      int
	Height     int
	ShowFooter bool
	Verbose    bool
	FPS        int
	Layouts    map[string]visualizer.Options
	Watcher    *backend.Watcher
	Collector  CollectorFactory
	Clipboard  func(string) error
}

// Model implements the Bubble Tea model for the organization scene.
type Model struct {
	screen       Screen
	collections  []*collection.Collection
	tabs         []*tab
	active       int
	sched        *anim.Scheduler
	dispatcher   *dispatcher.Dispatcher
	backend      *backend.Watcher
	statsPath    string
	doc          stats.Document
	newCollector CollectorFactory
	clipboard    func(string) error
	createForm   *createForm
	loading      bool
	pendingLabel string
	errMsg       string
	infoMsg      string
	infoExpire   time.Time
	width        int
	height       int
	fixedWidth   bool
	fixedHeight  bool
	showFooter   bool
	verbose      bool

	frame     time.Duration
	animating bool
	tickCmd   func(time.Duration) tea.Cmd

	filterCursor      cursor.Model
	filterCursorDirty bool
	cursorMode        cursor.Mode

	handlers map[reflect.Type]msgHandler
	bus      *command.Bus
}

// NewModel builds every collection and starts on the startup screen.
func NewModel(p Params) *Model {
	sched := anim.NewScheduler()
	cols := collection.All(sched, p.Layouts)
	loaders := make([]dispatcher.Loader, len(cols))
	tabs := make([]*tab, len(cols))
	for i, c := range cols {
		loaders[i] = c
		tabs[i] = uistate.NewTab(c.ID(), c.Title(), nil)
	}
	fps := p.FPS
	if fps <= 0 {
		fps = defaultFPS
	}
	statsPath := p.StatsPath
	if statsPath == "" {
		statsPath = stats.DefaultPath
	}
	m := &Model{
		screen:       ScreenStartup,
		collections:  cols,
		tabs:         tabs,
		sched:        sched,
		dispatcher:   dispatcher.New(loaders...),
		backend:      p.Watcher,
		statsPath:    statsPath,
		newCollector: p.Collector,
		clipboard:    p.Clipboard,
		showFooter:   p.ShowFooter,
		verbose:      p.Verbose,
		frame:        time.Second / time.Duration(fps),
		tickCmd:      frameTick,
		bus:          command.New(),
	}
	if p.Width > 0 {
		m.width = p.Width
		m.fixedWidth = true
	}
	if p.Height > 0 {
		m.height = p.Height
		m.fixedHeight = true
	}
	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		c.TextStyle = styles.Filter.Copy()
	}
	c.SetChar(" ")
	m.filterCursor = c
	m.cursorMode = cursor.CursorBlink
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if m.backend != nil {
		cmds = append(cmds, waitForBackendEvent(m.backend))
	} else {
		cmds = append(cmds, m.reloadCmd())
	}
	if cmd := m.filterCursor.Focus(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if cmd := m.updateFilterCursorModel(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	handled, cmd := m.handleActiveForm(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	if handled {
		return m, m.finishUpdate(cmds)
	}
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) handleActiveForm(msg tea.Msg) (bool, tea.Cmd) {
	if m.screen != ScreenCreate || m.createForm == nil {
		return false, nil
	}
	return m.handleCreateForm(msg)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):      m.handleMouseMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(tickMsg{}):           m.handleTickMsg,
		reflect.TypeOf(backendEventMsg{}):   m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):    m.handleBackendDoneMsg,
		reflect.TypeOf(fetchDoneMsg{}):      m.handleFetchDoneMsg,
		reflect.TypeOf(copyResultMsg{}):     m.handleCopyResultMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if m.filterCursorDirty {
		m.filterCursorDirty = false
		m.filterCursor.Blink = false
		if cmd := m.filterCursor.BlinkCmd(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if cmd := m.ensureTicking(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) setScreen(s Screen) {
	if m.screen == s {
		return
	}
	m.screen = s
	events.UI.Screen(s.String())
}

// Screen reports the active top-level view.
func (m *Model) Screen() Screen {
	return m.screen
}

func (m *Model) currentCollection() *collection.Collection {
	if m.active < 0 || m.active >= len(m.collections) {
		return nil
	}
	return m.collections[m.active]
}

func (m *Model) currentTab() *tab {
	if m.active < 0 || m.active >= len(m.tabs) {
		return nil
	}
	return m.tabs[m.active]
}

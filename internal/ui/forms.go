package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atomicstack/orgverse/internal/backend"
	"github.com/atomicstack/orgverse/internal/logging"
	"github.com/atomicstack/orgverse/internal/logging/events"
	"github.com/atomicstack/orgverse/internal/ui/command"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const fetchTimeout = 5 * time.Minute

const (
	fieldOrg = iota
	fieldRepo
	fieldToken
)

// createForm collects what a fresh stats fetch needs.
type createForm struct {
	inputs    []textinput.Model
	focus     int
	err       string
	canCancel bool
}

func newCreateForm(canCancel bool, mode cursor.Mode) *createForm {
	org := textinput.New()
	org.Placeholder = "organization"
	org.CharLimit = 100
	repo := textinput.New()
	repo.Placeholder = "repository"
	repo.CharLimit = 100
	token := textinput.New()
	token.Placeholder = "token (optional)"
	token.EchoMode = textinput.EchoPassword
	token.EchoCharacter = '•'
	inputs := []textinput.Model{org, repo, token}
	for i := range inputs {
		inputs[i].Cursor.SetMode(mode)
	}
	f := &createForm{
		inputs:    inputs,
		canCancel: canCancel,
	}
	f.setFocus(fieldOrg)
	return f
}

func (f *createForm) Org() string   { return strings.TrimSpace(f.inputs[fieldOrg].Value()) }
func (f *createForm) Repo() string  { return strings.TrimSpace(f.inputs[fieldRepo].Value()) }
func (f *createForm) Token() string { return strings.TrimSpace(f.inputs[fieldToken].Value()) }
func (f *createForm) Error() string { return f.err }

func (f *createForm) setFocus(i int) {
	if i < 0 {
		i = len(f.inputs) - 1
	}
	if i >= len(f.inputs) {
		i = 0
	}
	f.focus = i
	for idx := range f.inputs {
		if idx == i {
			f.inputs[idx].Focus()
		} else {
			f.inputs[idx].Blur()
		}
	}
}

// Update returns a command, whether the form was submitted and whether it
// was cancelled.
func (f *createForm) Update(msg tea.Msg) (tea.Cmd, bool, bool) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			if f.canCancel {
				return nil, false, true
			}
			return nil, false, false
		case "tab", "down":
			f.setFocus(f.focus + 1)
			return nil, false, false
		case "shift+tab", "up":
			f.setFocus(f.focus - 1)
			return nil, false, false
		case "enter":
			if f.focus < fieldToken && (f.Org() == "" || f.Repo() == "") {
				f.setFocus(f.focus + 1)
				return nil, false, false
			}
			if f.Org() == "" || f.Repo() == "" {
				f.err = "Organization and repository are required."
				return nil, false, false
			}
			f.err = ""
			return nil, true, false
		}
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd, false, false
}

func (f *createForm) View() string {
	labels := []string{"Organization", "Repository", "Token"}
	lines := make([]string, 0, len(f.inputs)*2)
	for i, in := range f.inputs {
		label := labels[i]
		style := styles.FormLabel
		if i == f.focus {
			style = styles.FormFocused
		}
		if style != nil {
			label = style.Render(label)
		}
		lines = append(lines, label, in.View())
	}
	return strings.Join(lines, "\n")
}

func (m *Model) startCreateForm() {
	m.createForm = newCreateForm(m.doc.Ready(), m.cursorMode)
	m.setScreen(ScreenCreate)
}

func (m *Model) handleCreateForm(msg tea.Msg) (bool, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "ctrl+c" {
		return true, tea.Quit
	}
	if _, ok := msg.(tea.KeyMsg); !ok {
		cmd, _, _ := m.createForm.Update(msg)
		return false, cmd
	}
	if m.loading {
		return true, nil
	}
	cmd, done, cancel := m.createForm.Update(msg)
	if cancel {
		m.createForm = nil
		m.setScreen(ScreenLoad)
		return true, cmd
	}
	if done {
		return true, m.fetchCmd(m.createForm.Org(), m.createForm.Repo(), m.createForm.Token())
	}
	return true, cmd
}

type fetchDoneMsg struct {
	event backend.Event
}

// fetchCmd runs the collector in the background and writes the stats
// document.
func (m *Model) fetchCmd(org, repo, token string) tea.Cmd {
	if m.newCollector == nil {
		m.errMsg = "No stats collector configured."
		return nil
	}
	if token == "" {
		logging.Warnf("no GitHub token supplied; stats for %s/%s may be limited", org, repo)
	}
	collector, err := m.newCollector(token)
	if err != nil {
		m.errMsg = err.Error()
		events.Action.Error(err)
		return nil
	}
	m.loading = true
	m.pendingLabel = fmt.Sprintf("%s/%s", org, repo)
	m.errMsg = ""
	m.forceClearInfo()
	path := m.statsPath
	return m.bus.Execute(command.Request{
		ID:    "fetch",
		Label: m.pendingLabel,
		Run: func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
			defer cancel()
			return fetchDoneMsg{event: backend.Fetch(ctx, collector, org, repo, path)}
		},
	})
}

func (m *Model) handleFetchDoneMsg(msg tea.Msg) tea.Cmd {
	done, ok := msg.(fetchDoneMsg)
	if !ok {
		return nil
	}
	m.loading = false
	m.pendingLabel = ""
	if done.event.Err != nil {
		m.errMsg = done.event.Err.Error()
		events.Action.Error(done.event.Err)
		logging.Error(done.event.Err)
		return nil
	}
	m.applyBackendEvent(done.event)
	m.createForm = nil
	m.setScreen(ScreenScene)
	events.Action.Success(fmt.Sprintf("fetched %s", done.event.Path))
	if m.verbose {
		m.setInfo(fmt.Sprintf("Stats written to %s.", done.event.Path))
	}
	return nil
}

func (m *Model) viewLoadScreen() string {
	org, repo := "None", "None"
	if m.doc.OrganizationProfile != nil && m.doc.OrganizationProfile.Login != "" {
		org = m.doc.OrganizationProfile.Login
	}
	if r, ok := m.doc.SelectedRepo(); ok && r.Name != "" {
		repo = r.Name
	}
	lines := []string{
		styles.Header.Render("Stored stats"),
		"",
		fmt.Sprintf("Organization: %s", org),
		fmt.Sprintf("Repository: %s", repo),
		"",
		styles.Footer.Render("enter load  n new fetch  q quit"),
	}
	if m.errMsg != "" {
		lines = append(lines, "", styles.Error.Render(fmt.Sprintf("Error: %s", m.errMsg)))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) viewCreateScreen() string {
	lines := []string{styles.Header.Render("Fetch organization stats"), ""}
	if m.createForm != nil {
		lines = append(lines, m.createForm.View())
	}
	lines = append(lines, "")
	if m.loading {
		lines = append(lines, styles.Loading.Render(fmt.Sprintf("Fetching %s…", m.pendingLabel)))
	} else if m.createForm != nil && m.createForm.Error() != "" {
		lines = append(lines, styles.Error.Render(m.createForm.Error()))
	} else if m.errMsg != "" {
		lines = append(lines, styles.Error.Render(fmt.Sprintf("Error: %s", m.errMsg)))
	}
	help := "tab next field  enter fetch  ctrl+c quit"
	if m.createForm != nil && m.createForm.canCancel {
		help = "tab next field  enter fetch  esc back  ctrl+c quit"
	}
	lines = append(lines, "", styles.Footer.Render(help))
	return strings.Join(lines, "\n")
}

package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/atomicstack/orgverse/internal/backend"
	"github.com/atomicstack/orgverse/internal/format/table"
	"github.com/atomicstack/orgverse/internal/github"
	"github.com/atomicstack/orgverse/internal/insights"
	"github.com/atomicstack/orgverse/internal/logging/events"
	"github.com/atomicstack/orgverse/internal/stats"
	"github.com/atomicstack/orgverse/internal/ui"
	"github.com/atomicstack/orgverse/internal/visualizer"
	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

const watchInterval = 1500 * time.Millisecond

// Config describes user-provided application options.
type Config struct {
	StatsPath  string
	Width      int
	Height     int
	ShowFooter bool
	Verbose    bool
	Watch      bool
	FPS        int
	Layouts    map[string]visualizer.Options
	APIURL     string
}

// FetchConfig describes a one-shot stats collection.
type FetchConfig struct {
	Org       string
	Repo      string
	Token     string
	APIURL    string
	StatsPath string
}

// summaryKeys orders the collection counts RunFetch prints.
var summaryKeys = []string{
	stats.KeyRepositoryMembers,
	stats.KeyOrganizationMembers,
	stats.KeyBranches,
	stats.KeyIssues,
	stats.KeyPullRequests,
	stats.KeyCommits,
	stats.KeyWorkflows,
	stats.KeyDiscussions,
	stats.KeyProjects,
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	var watcher *backend.Watcher
	if cfg.Watch {
		watcher = backend.NewWatcher(cfg.StatsPath, watchInterval)
		defer watcher.Stop()
	}
	model := ui.NewModel(modelParams(cfg, watcher))
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

func modelParams(cfg Config, watcher *backend.Watcher) ui.Params {
	return ui.Params{
		StatsPath:  cfg.StatsPath,
		Width:      cfg.Width,
		Height:     cfg.Height,
		ShowFooter: cfg.ShowFooter,
		Verbose:    cfg.Verbose,
		FPS:        cfg.FPS,
		Layouts:    cfg.Layouts,
		Watcher:    watcher,
		Collector:  collectorFactory(cfg.APIURL),
		Clipboard:  clipboard.WriteAll,
	}
}

func collectorFactory(apiURL string) ui.CollectorFactory {
	return func(token string) (backend.Collector, error) {
		client, err := github.NewClient(github.Config{BaseURL: apiURL, Token: token})
		if err != nil {
			return nil, err
		}
		return client, nil
	}
}

// RunFetch collects a stats document, saves it and prints a summary to out.
func RunFetch(ctx context.Context, cfg FetchConfig, out io.Writer) error {
	client, err := github.NewClient(github.Config{BaseURL: cfg.APIURL, Token: cfg.Token})
	if err != nil {
		return err
	}
	evt := backend.Fetch(ctx, client, cfg.Org, cfg.Repo, cfg.StatsPath)
	if evt.Err != nil {
		return fmt.Errorf("fetch %s/%s: %w", cfg.Org, cfg.Repo, evt.Err)
	}
	doc, _ := evt.Document()
	counts := doc.Counts()
	rows := make([][]string, 0, len(summaryKeys))
	for _, key := range summaryKeys {
		rows = append(rows, []string{key, strconv.Itoa(counts[key])})
	}
	fmt.Fprintf(out, "Fetched %s/%s into %s\n", cfg.Org, cfg.Repo, evt.Path)
	for _, line := range table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignRight}) {
		fmt.Fprintf(out, "  %s\n", line)
	}
	return nil
}

// RunInsights loads the document at statsPath and prints its summary.
func RunInsights(statsPath string, out io.Writer) error {
	doc, err := stats.Load(statsPath)
	if err != nil {
		return err
	}
	events.Data.Read(statsPath, doc.Counts())
	for _, line := range insights.Compute(doc).Lines() {
		fmt.Fprintln(out, line)
	}
	return nil
}

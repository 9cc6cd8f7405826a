package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/atomicstack/orgverse/internal/stats"
)

func newOrgServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/orgs/acme":
			_ = json.NewEncoder(w).Encode(map[string]interface{}{"login": "acme"})
		case "/orgs/acme/repos":
			_ = json.NewEncoder(w).Encode([]map[string]interface{}{{"name": "rocket"}})
		case "/repos/acme/rocket/branches":
			_ = json.NewEncoder(w).Encode([]map[string]string{})
		case "/repos/acme/rocket/issues":
			_ = json.NewEncoder(w).Encode([]map[string]interface{}{
				{"title": "Crash", "state": "open", "user": map[string]string{"login": "road"}},
			})
		case "/repos/acme/rocket/commits":
			_ = json.NewEncoder(w).Encode([]map[string]interface{}{
				{"commit": map[string]interface{}{"author": map[string]string{"name": "Road"}, "message": "init"}},
			})
		default:
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "Not Found"})
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRunFetchWritesStatsAndSummary(t *testing.T) {
	srv := newOrgServer(t)
	path := filepath.Join(t.TempDir(), "stats.json")
	var out bytes.Buffer
	err := RunFetch(context.Background(), FetchConfig{Org: "acme", Repo: "rocket", APIURL: srv.URL, StatsPath: path}, &out)
	if err != nil {
		t.Fatalf("expected fetch to succeed, got %v", err)
	}
	doc, err := stats.Load(path)
	if err != nil {
		t.Fatalf("expected stats file, got %v", err)
	}
	if !doc.Ready() || len(doc.Issues) != 1 {
		t.Fatalf("unexpected document %+v", doc)
	}
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 1+len(summaryKeys) {
		t.Fatalf("expected header plus %d counts, got %q", len(summaryKeys), out.String())
	}
	if !strings.HasPrefix(lines[0], "Fetched acme/rocket into ") {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if !strings.Contains(out.String(), "issues") || !strings.HasSuffix(lines[4], "1") {
		t.Fatalf("expected issue count in summary, got %q", out.String())
	}
	if !strings.Contains(lines[6], "commits") || !strings.HasSuffix(lines[6], "1") {
		t.Fatalf("expected commit count in summary, got %q", lines[6])
	}
	if len(doc.Commits) != 1 || doc.Commits[0].Author != "Road" {
		t.Fatalf("expected saved commits, got %+v", doc.Commits)
	}
}

func TestRunInsightsPrintsSummary(t *testing.T) {
	doc := stats.Document{
		OrganizationProfile: &stats.OrgProfile{Login: "acme"},
		OrganizationRepos:   []stats.Repo{{Name: "rocket", Selected: true}},
		Branches:            []stats.Branch{{Name: "main", CurrentStatus: "Active"}},
		Issues:              []stats.Issue{{Title: "Crash", Labels: []string{"bug"}}},
		RepositoryMembers:   []stats.Member{{Login: "wile", TotalCommits: 4}},
	}
	path := filepath.Join(t.TempDir(), "stats.json")
	if err := stats.Save(path, doc); err != nil {
		t.Fatalf("save: %v", err)
	}
	var out bytes.Buffer
	if err := RunInsights(path, &out); err != nil {
		t.Fatalf("expected insights to succeed, got %v", err)
	}
	for _, want := range []string{"Insights for acme/rocket", "wile", "bug", "Active"} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("expected %q in insights, got %q", want, out.String())
		}
	}
}

func TestRunInsightsMissingDocument(t *testing.T) {
	err := RunInsights(filepath.Join(t.TempDir(), "missing.json"), &bytes.Buffer{})
	if !errors.Is(err, stats.ErrDataUnavailable) {
		t.Fatalf("expected ErrDataUnavailable, got %v", err)
	}
}

func TestRunFetchReportsAPIErrors(t *testing.T) {
	srv := newOrgServer(t)
	path := filepath.Join(t.TempDir(), "stats.json")
	err := RunFetch(context.Background(), FetchConfig{Org: "acme", Repo: "missing", APIURL: srv.URL, StatsPath: path}, &bytes.Buffer{})
	if err == nil || !strings.Contains(err.Error(), "acme/missing") {
		t.Fatalf("expected wrapped fetch error, got %v", err)
	}
	if _, err := stats.Load(path); err == nil {
		t.Fatalf("expected no stats file after a failed fetch")
	}
}

func TestCollectorFactoryRejectsBadURL(t *testing.T) {
	if _, err := collectorFactory("::not a url")(""); err == nil {
		t.Fatalf("expected invalid API url to fail")
	}
	c, err := collectorFactory("https://example.test")("token")
	if err != nil || c == nil {
		t.Fatalf("expected collector, got %v, %v", c, err)
	}
}

func TestModelParamsCarriesConfig(t *testing.T) {
	p := modelParams(Config{StatsPath: "s.json", Width: 90, FPS: 12, ShowFooter: true}, nil)
	if p.StatsPath != "s.json" || p.Width != 90 || p.FPS != 12 || !p.ShowFooter {
		t.Fatalf("unexpected params %+v", p)
	}
	if p.Collector == nil || p.Clipboard == nil {
		t.Fatalf("expected collector and clipboard wired")
	}
}

package github

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/atomicstack/orgverse/internal/logging"
)

var fixedNow = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func newTestServer(t *testing.T, token string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	logging.Configure(filepath.Join(t.TempDir(), "github.log"))
	t.Cleanup(func() { logging.Configure("") })

	statsCalls := &atomic.Int32{}
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token != "" && r.Header.Get("Authorization") != "Bearer "+token {
			w.WriteHeader(http.StatusUnauthorized)
			writeJSON(w, map[string]string{"message": "Bad credentials"})
			return
		}
		switch r.URL.Path {
		case "/orgs/acme":
			writeJSON(w, map[string]interface{}{"login": "acme", "name": "Acme Corp", "public_repos": 2})
		case "/orgs/acme/members":
			writeJSON(w, []map[string]interface{}{{"login": "wile", "id": 1, "avatar_url": "a"}})
		case "/orgs/acme/repos":
			writeJSON(w, []map[string]interface{}{
				{"name": "tools", "license": nil},
				{"name": "Rocket", "license": map[string]string{"name": "MIT"}, "topics": []string{"space"}},
			})
		case "/repos/acme/rocket/branches":
			writeJSON(w, []map[string]string{{"name": "main"}, {"name": "HEAD"}, {"name": "old"}})
		case "/repos/acme/rocket/branches/main":
			writeJSON(w, branchPayload("main", "Wile", "2024-05-20T08:30:00Z", "thrust"))
		case "/repos/acme/rocket/branches/old":
			writeJSON(w, branchPayload("old", "Road", "2023-01-01T00:00:00Z", "legacy"))
		case "/repos/acme/rocket/issues":
			if r.URL.Query().Get("state") != "all" {
				t.Errorf("expected state=all, got %q", r.URL.RawQuery)
			}
			if r.URL.Query().Get("page") == "2" {
				writeJSON(w, []map[string]interface{}{
					{"title": "Fix bug", "state": "closed", "user": map[string]string{"login": "road"},
						"assignees": []map[string]string{{"login": "wile"}, {"login": "coyote"}},
						"milestone": map[string]string{"title": "v1"},
						"created_at": "2024-05-01T00:00:00Z", "closed_at": "2024-05-04T12:00:00Z"},
				})
				return
			}
			w.Header().Set("Link", `<`+srv.URL+`/repos/acme/rocket/issues?state=all&per_page=100&page=2>; rel="next", <`+srv.URL+`/repos/acme/rocket/issues?page=2>; rel="last"`)
			writeJSON(w, []map[string]interface{}{
				{"title": "Crash", "state": "open", "user": map[string]string{"login": "road"},
					"labels": []map[string]string{{"name": "bug"}}},
				{"title": "A pull", "state": "open", "user": map[string]string{"login": "road"},
					"pull_request": map[string]string{"url": "x"}},
			})
		case "/repos/acme/rocket/pulls":
			writeJSON(w, []map[string]interface{}{
				{"title": "Add thrust", "state": "open", "user": map[string]string{"login": "wile"},
					"requested_reviewers": []map[string]string{{"login": "road"}},
					"created_at": "2024-05-01T00:00:00Z"},
				{"title": "Bigger fins", "state": "closed", "user": map[string]string{"login": "road"},
					"created_at": "2024-04-01T00:00:00Z", "closed_at": "2024-04-03T00:00:00Z",
					"merged_at": "2024-04-03T00:00:00Z"},
			})
		case "/repos/acme/rocket/commits":
			writeJSON(w, []map[string]interface{}{
				{"commit": map[string]interface{}{
					"author":  map[string]string{"name": "Wile", "date": "2024-05-20T08:30:00Z"},
					"message": "thrust",
				}},
				{"commit": map[string]interface{}{"author": nil, "message": "orphan"}},
			})
		case "/repos/acme/rocket/actions/workflows":
			writeJSON(w, map[string]interface{}{
				"total_count": 1,
				"workflows": []map[string]interface{}{
					{"id": 7, "name": "CI", "state": "active", "html_url": "https://github.com/acme/rocket/actions/ci"},
				},
			})
		case "/repos/acme/rocket/discussions":
			if !strings.Contains(r.Header.Get("Accept"), "echo-preview") {
				t.Errorf("expected discussions preview media type, got %q", r.Header.Get("Accept"))
			}
			writeJSON(w, []map[string]interface{}{
				{"number": 3, "title": "Launch window?", "state": "open", "user": map[string]string{"login": "road"}, "comments": 4},
			})
		case "/orgs/acme/projects":
			if !strings.Contains(r.Header.Get("Accept"), "inertia-preview") {
				t.Errorf("expected projects preview media type, got %q", r.Header.Get("Accept"))
			}
			w.WriteHeader(http.StatusGone)
			writeJSON(w, map[string]string{"message": "Projects (classic) has been deprecated"})
		case "/repos/acme/rocket/stats/contributors":
			if statsCalls.Add(1) == 1 {
				w.WriteHeader(http.StatusAccepted)
				return
			}
			writeJSON(w, []map[string]interface{}{
				{"author": map[string]string{"login": "wile"}, "total": 9,
					"weeks": []map[string]int{{"a": 10, "d": 2}, {"a": 5, "d": 1}}},
			})
		default:
			w.WriteHeader(http.StatusNotFound)
			writeJSON(w, map[string]string{"message": "Not Found"})
		}
	}))
	t.Cleanup(srv.Close)
	return srv, statsCalls
}

func branchPayload(name, author, date, message string) map[string]interface{} {
	return map[string]interface{}{
		"name": name,
		"commit": map[string]interface{}{
			"commit": map[string]interface{}{
				"author":  map[string]string{"name": author, "date": date},
				"message": message,
			},
		},
	}
}

func newTestClient(t *testing.T, srv *httptest.Server, token string) *Client {
	t.Helper()
	c, err := NewClient(Config{BaseURL: srv.URL, Token: token, Now: func() time.Time { return fixedNow }, StatsWait: time.Millisecond})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return c
}

func TestCollectWithToken(t *testing.T) {
	srv, statsCalls := newTestServer(t, "secret")
	doc, err := newTestClient(t, srv, "secret").Collect(context.Background(), "acme", "rocket")
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if doc.OrganizationProfile == nil || doc.OrganizationProfile.Login != "acme" {
		t.Fatalf("expected acme profile, got %+v", doc.OrganizationProfile)
	}
	repo, ok := doc.SelectedRepo()
	if !ok || repo.Name != "Rocket" || repo.License != "MIT" {
		t.Fatalf("expected Rocket selected with MIT license, got %+v", repo)
	}
	if len(doc.Branches) != 2 {
		t.Fatalf("expected HEAD to be skipped, got %+v", doc.Branches)
	}
	if doc.Branches[0].Name != "main" || doc.Branches[0].CurrentStatus != StatusActive || doc.Branches[0].CommitDate != "2024-05-20 08:30:00" {
		t.Fatalf("unexpected main branch %+v", doc.Branches[0])
	}
	if doc.Branches[1].CurrentStatus != StatusInactive {
		t.Fatalf("expected old branch inactive, got %+v", doc.Branches[1])
	}
	if len(doc.Issues) != 2 {
		t.Fatalf("expected two issues across pages without the pull request, got %+v", doc.Issues)
	}
	if got := doc.Issues[0].Assignees; len(got) != 1 || got[0] != "road" {
		t.Fatalf("expected author fallback for unassigned issue, got %v", got)
	}
	if doc.Issues[1].Milestone != "v1" || strings.Join(doc.Issues[1].Assignees, ",") != "wile,coyote" {
		t.Fatalf("unexpected second issue %+v", doc.Issues[1])
	}
	if len(doc.PullRequests) != 2 || doc.PullRequests[0].Reviewers[0] != "road" {
		t.Fatalf("unexpected pull requests %+v", doc.PullRequests)
	}
	if doc.PullRequests[0].Merged() || !doc.PullRequests[1].Merged() {
		t.Fatalf("expected only the second pull request merged, got %+v", doc.PullRequests)
	}
	if doc.Issues[1].ClosedAt != "2024-05-04T12:00:00Z" || doc.Issues[1].CreatedAt != "2024-05-01T00:00:00Z" {
		t.Fatalf("expected issue timestamps, got %+v", doc.Issues[1])
	}
	if len(doc.RepositoryMembers) != 1 {
		t.Fatalf("expected one contributor, got %+v", doc.RepositoryMembers)
	}
	m := doc.RepositoryMembers[0]
	if m.TotalCommits != 9 || m.LinesWritten != 15 || m.LinesDeleted != 3 {
		t.Fatalf("unexpected contributor totals %+v", m)
	}
	if statsCalls.Load() != 2 {
		t.Fatalf("expected contributor stats retried once, got %d calls", statsCalls.Load())
	}
	if len(doc.OrganizationMembers) != 1 {
		t.Fatalf("expected org members with token, got %+v", doc.OrganizationMembers)
	}
	if len(doc.Workflows) != 1 || doc.Workflows[0].Name != "CI" || doc.Workflows[0].ID != 7 {
		t.Fatalf("expected CI workflow from the envelope, got %+v", doc.Workflows)
	}
	if len(doc.Discussions) != 1 || doc.Discussions[0].User != "road" || doc.Discussions[0].Comments != 4 {
		t.Fatalf("unexpected discussions %+v", doc.Discussions)
	}
	if doc.Projects == nil || len(doc.Projects) != 0 {
		t.Fatalf("expected retired projects endpoint to leave an empty list, got %+v", doc.Projects)
	}
}

func TestCollectCommitsWithoutToken(t *testing.T) {
	srv, _ := newTestServer(t, "")
	doc, err := newTestClient(t, srv, "").Collect(context.Background(), "acme", "rocket")
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if len(doc.Commits) != 2 {
		t.Fatalf("expected two commits, got %+v", doc.Commits)
	}
	if doc.Commits[0].Author != "Wile" || doc.Commits[0].Date != "2024-05-20T08:30:00Z" {
		t.Fatalf("unexpected first commit %+v", doc.Commits[0])
	}
	if doc.Commits[1].Author != "" || doc.Commits[1].Message != "orphan" {
		t.Fatalf("expected commit without author to keep its message, got %+v", doc.Commits[1])
	}
	if doc.Workflows == nil || doc.Discussions == nil || doc.Projects == nil {
		t.Fatalf("expected empty token-only lists rather than null, got %+v", doc)
	}
	if len(doc.Workflows)+len(doc.Discussions)+len(doc.Projects) != 0 {
		t.Fatalf("expected no token-only collections, got %+v", doc)
	}
}

func TestUnavailable(t *testing.T) {
	if !Unavailable(&APIError{StatusCode: http.StatusGone}) || !Unavailable(&APIError{StatusCode: http.StatusNotFound}) {
		t.Fatalf("expected 404 and 410 to be unavailable")
	}
	if Unavailable(&APIError{StatusCode: http.StatusForbidden}) || Unavailable(errors.New("boom")) {
		t.Fatalf("expected other errors to stay fatal")
	}
}

func TestCollectWithoutTokenSkipsAuthenticatedCollections(t *testing.T) {
	srv, statsCalls := newTestServer(t, "")
	doc, err := newTestClient(t, srv, "").Collect(context.Background(), "acme", "rocket")
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if len(doc.OrganizationMembers) != 0 || len(doc.PullRequests) != 0 || len(doc.RepositoryMembers) != 0 {
		t.Fatalf("expected token-only collections empty, got %+v", doc)
	}
	if doc.PullRequests == nil {
		t.Fatalf("expected empty list rather than null for pull requests")
	}
	if statsCalls.Load() != 0 {
		t.Fatalf("expected no contributor stats request without a token")
	}
	if len(doc.Issues) != 2 {
		t.Fatalf("expected public issues, got %d", len(doc.Issues))
	}
}

func TestCollectReportsAPIErrors(t *testing.T) {
	srv, _ := newTestServer(t, "")
	_, err := newTestClient(t, srv, "").Collect(context.Background(), "acme", "missing")
	if !IsNotFound(err) {
		t.Fatalf("expected not found error, got %v", err)
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Message != "Not Found" {
		t.Fatalf("expected API error message, got %v", err)
	}
}

func TestCollectRequiresNames(t *testing.T) {
	c, err := NewClient(Config{})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if _, err := c.Collect(context.Background(), " ", "rocket"); err == nil {
		t.Fatalf("expected error for empty organization")
	}
}

func TestParseLinkNext(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"", ""},
		{`<https://api.github.com/x?page=2>; rel="next", <https://api.github.com/x?page=5>; rel="last"`, "https://api.github.com/x?page=2"},
		{`<https://api.github.com/x?page=1>; rel="prev"`, ""},
		{`garbage`, ""},
	}
	for _, tt := range tests {
		if got := parseLinkNext(tt.header); got != tt.want {
			t.Fatalf("parseLinkNext(%q) = %q, want %q", tt.header, got, tt.want)
		}
	}
}

func TestIsRateLimited(t *testing.T) {
	if !IsRateLimited(&APIError{StatusCode: 429}) {
		t.Fatalf("expected 429 to be rate limited")
	}
	if !IsRateLimited(&APIError{StatusCode: 403, Message: "API rate limit exceeded"}) {
		t.Fatalf("expected 403 rate limit message to be rate limited")
	}
	if IsRateLimited(&APIError{StatusCode: 403, Message: "Resource not accessible"}) {
		t.Fatalf("expected permission error not to be rate limited")
	}
}

func TestNewClientRejectsBadURL(t *testing.T) {
	if _, err := NewClient(Config{BaseURL: "not a url"}); err == nil {
		t.Fatalf("expected invalid url error")
	}
}

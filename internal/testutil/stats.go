package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/atomicstack/orgverse/internal/stats"
)

// Document returns a ready stats document for acme/rocket with the given
// number of repository members, named dev00, dev01 and so on.
func Document(members int) stats.Document {
	doc := stats.Document{
		OrganizationProfile: &stats.OrgProfile{Login: "acme", Name: "Acme Corp"},
		OrganizationMembers: []stats.OrgMember{{Login: "wile", ID: 1}, {Login: "road", ID: 2}},
		OrganizationRepos: []stats.Repo{
			{Name: "tools"},
			{Name: "rocket", Selected: true},
		},
		Branches: []stats.Branch{
			{Name: "main", Author: "Wile", CurrentStatus: "Active", CommitDate: "2024-05-20 08:30:00", CommitMessage: "thrust"},
		},
		Issues: []stats.Issue{
			{Title: "Crash", Assignees: []string{"road"}, Labels: []string{"bug"}, Status: "open"},
		},
		PullRequests: []stats.PullRequest{},
	}
	for i := 0; i < members; i++ {
		doc.RepositoryMembers = append(doc.RepositoryMembers, stats.Member{
			Login:        fmt.Sprintf("dev%02d", i),
			TotalCommits: stats.Count(i + 1),
			LinesWritten: stats.Count(10 * (i + 1)),
			LinesDeleted: stats.Count(i),
		})
	}
	return doc
}

// WriteStats saves doc under a fresh temp dir and returns its path.
func WriteStats(t testing.TB, doc stats.Document) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stats.json")
	if err := stats.Save(path, doc); err != nil {
		t.Fatalf("failed to write stats: %v", err)
	}
	return path
}

// GitHubServer serves the public endpoints an unauthenticated fetch of
// acme/rocket reads. Everything else is a 404.
func GitHubServer(t testing.TB) *httptest.Server {
	t.Helper()
	write := func(w http.ResponseWriter, v interface{}) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(v)
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/orgs/acme":
			write(w, map[string]interface{}{"login": "acme", "name": "Acme Corp"})
		case "/orgs/acme/repos":
			write(w, []map[string]interface{}{{"name": "tools"}, {"name": "rocket"}})
		case "/repos/acme/rocket/branches":
			write(w, []map[string]string{})
		case "/repos/acme/rocket/issues":
			write(w, []map[string]interface{}{
				{"title": "Crash", "state": "open", "user": map[string]string{"login": "road"}},
				{"title": "Slow", "state": "closed", "user": map[string]string{"login": "wile"}},
			})
		case "/repos/acme/rocket/commits":
			write(w, []map[string]interface{}{
				{"commit": map[string]interface{}{
					"author":  map[string]string{"name": "Wile", "date": "2024-05-20T08:30:00Z"},
					"message": "thrust",
				}},
			})
		default:
			w.WriteHeader(http.StatusNotFound)
			write(w, map[string]string{"message": "Not Found"})
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

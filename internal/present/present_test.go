package present

import (
	"reflect"
	"testing"

	"github.com/atomicstack/orgverse/internal/stats"
)

func TestIssueFieldsUseNoneForAbsentValues(t *testing.T) {
	got := IssueFields(stats.Issue{Title: "Fix bug", Status: "open"})
	want := []string{"Title: Fix bug", "Status: open", "Assignees: None", "Milestone: None"}
	s := NewSurface()
	s.Set(got)
	if !reflect.DeepEqual(s.Lines(), want) {
		t.Fatalf("expected %v, got %v", want, s.Lines())
	}
}

func TestPullRequestFieldsJoinLists(t *testing.T) {
	s := NewSurface()
	p := New(s, PullRequestFields)
	p.Show(stats.PullRequest{Title: "Add thrust", Assignees: []string{"road", "wile"}, Reviewers: []string{}, Status: "closed"})
	want := []string{"Add thrust", "Assignees: road, wile", "Reviewers: None", "Status: closed"}
	if !reflect.DeepEqual(s.Lines(), want) {
		t.Fatalf("expected %v, got %v", want, s.Lines())
	}
}

func TestMemberAndBranchFields(t *testing.T) {
	s := NewSurface()
	New(s, MemberFields).Show(stats.Member{Login: "wile", TotalCommits: 12, LinesWritten: 340, LinesDeleted: 5})
	want := "wile\nTotal Commits: 12\nLines Additions: 340\nLines Deletions: 5"
	if s.Text() != want {
		t.Fatalf("expected %q, got %q", want, s.Text())
	}
	New(s, BranchFields).Show(stats.Branch{Name: "main", Author: "Wile", CurrentStatus: "Active", CommitDate: "2024-05-01 10:00:00"})
	if s.Lines()[3] != "Last Commit Date: 2024-05-01 10:00:00" {
		t.Fatalf("unexpected branch line %q", s.Lines()[3])
	}
}

func TestClearIsIdempotent(t *testing.T) {
	s := NewSurface()
	p := New(s, OrgMemberFields)
	p.Show(stats.OrgMember{Login: "wile"})
	if s.Empty() {
		t.Fatalf("expected surface to hold fields")
	}
	p.Clear()
	p.Clear()
	if !s.Empty() || s.Text() != "" {
		t.Fatalf("expected empty surface, got %q", s.Text())
	}
}

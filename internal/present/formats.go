package present

import (
	"strings"

	"github.com/atomicstack/orgverse/internal/stats"
)

func MemberFields(m stats.Member) []Field {
	return []Field{
		{Value: m.Login},
		{Label: "Total Commits", Value: m.TotalCommits.String()},
		{Label: "Lines Additions", Value: m.LinesWritten.String()},
		{Label: "Lines Deletions", Value: m.LinesDeleted.String()},
	}
}

func OrgMemberFields(m stats.OrgMember) []Field {
	return []Field{
		{Value: m.Login},
		{Label: "Avatar", Value: orNone(m.AvatarURL)},
	}
}

func BranchFields(b stats.Branch) []Field {
	return []Field{
		{Label: "Name", Value: b.Name},
		{Label: "Author", Value: b.Author},
		{Label: "Status", Value: b.CurrentStatus},
		{Label: "Last Commit Date", Value: b.CommitDate},
	}
}

func IssueFields(i stats.Issue) []Field {
	return []Field{
		{Label: "Title", Value: i.Title},
		{Label: "Status", Value: i.Status},
		{Label: "Assignees", Value: joinOrNone(i.Assignees)},
		{Label: "Milestone", Value: orNone(i.Milestone)},
	}
}

func PullRequestFields(pr stats.PullRequest) []Field {
	return []Field{
		{Value: pr.Title},
		{Label: "Assignees", Value: joinOrNone(pr.Assignees)},
		{Label: "Reviewers", Value: joinOrNone(pr.Reviewers)},
		{Label: "Status", Value: pr.Status},
	}
}

func MemberLabel(m stats.Member) string {
	return m.Login
}

func OrgMemberLabel(m stats.OrgMember) string {
	return m.Login
}

func BranchLabel(b stats.Branch) string {
	return b.Name
}

func IssueLabel(i stats.Issue) string {
	return i.Title
}

func PullRequestLabel(pr stats.PullRequest) string {
	return pr.Title
}

func joinOrNone(values []string) string {
	kept := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			kept = append(kept, v)
		}
	}
	if len(kept) == 0 {
		return None
	}
	return strings.Join(kept, ", ")
}

func orNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return None
	}
	return s
}

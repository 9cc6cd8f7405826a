package stats

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Count is an integer that decodes from a JSON number or a numeric string.
// Older stats files wrote contributor totals as strings.
type Count int64

func (c *Count) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*c = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*c = 0
			return nil
		}
		data = []byte(s)
	}
	n, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("count %s: %w", data, err)
	}
	*c = Count(n)
	return nil
}

func (c Count) String() string {
	return strconv.FormatInt(int64(c), 10)
}

// Member is one repository contributor.
type Member struct {
	Login        string `json:"login"`
	TotalCommits Count  `json:"total_commits"`
	LinesWritten Count  `json:"lines_written"`
	LinesDeleted Count  `json:"lines_deleted"`
}

// OrgMember is one organization member.
type OrgMember struct {
	Login     string `json:"login"`
	ID        int64  `json:"id"`
	AvatarURL string `json:"avatar_url"`
}

type Branch struct {
	Name          string `json:"name"`
	Author        string `json:"author"`
	CurrentStatus string `json:"current_status"`
	CommitDate    string `json:"commit_date"`
	CommitMessage string `json:"commit_message"`
}

type Issue struct {
	Title     string   `json:"title"`
	Assignees []string `json:"assignees"`
	Labels    []string `json:"labels"`
	Milestone string   `json:"milestone"`
	Status    string   `json:"status"`
	CreatedAt string   `json:"created_at"`
	ClosedAt  string   `json:"closed_at"`
}

type PullRequest struct {
	Title     string   `json:"title"`
	Assignees []string `json:"assignees"`
	Reviewers []string `json:"reviewers"`
	Status    string   `json:"status"`
	CreatedAt string   `json:"created_at"`
	ClosedAt  string   `json:"closed_at"`
	MergedAt  string   `json:"merged_at"`
}

// Merged reports whether the pull request was closed by a merge.
func (p PullRequest) Merged() bool {
	return strings.TrimSpace(p.MergedAt) != ""
}

// Commit is one commit of the selected repository's default branch.
type Commit struct {
	Author  string `json:"author"`
	Date    string `json:"date"`
	Message string `json:"message"`
}

type Workflow struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	State     string `json:"state"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
	HTMLURL   string `json:"html_url"`
}

type Discussion struct {
	Number    int    `json:"number"`
	Title     string `json:"title"`
	State     string `json:"state"`
	CreatedAt string `json:"created_at"`
	User      string `json:"user"`
	Comments  int    `json:"comments"`
}

// Project is one classic organization project board.
type Project struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Body      string `json:"body"`
	State     string `json:"state"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type OrgProfile struct {
	Login         string `json:"login"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Blog          string `json:"blog"`
	Location      string `json:"location"`
	Email         string `json:"email"`
	AvatarURL     string `json:"avatar_url"`
	HTMLURL       string `json:"html_url"`
	PublicRepos   int    `json:"public_repos"`
	PublicMembers string `json:"public_members"`
}

type Repo struct {
	Name          string   `json:"name"`
	FullName      string   `json:"full_name"`
	Private       bool     `json:"private"`
	Description   string   `json:"description"`
	HTMLURL       string   `json:"html_url"`
	Language      string   `json:"language"`
	CreatedAt     string   `json:"created_at"`
	UpdatedAt     string   `json:"updated_at"`
	PushedAt      string   `json:"pushed_at"`
	Size          int      `json:"size"`
	Stargazers    int      `json:"stargazers_count"`
	Watchers      int      `json:"watchers_count"`
	Forks         int      `json:"forks_count"`
	OpenIssues    int      `json:"open_issues_count"`
	License       string   `json:"license"`
	DefaultBranch string   `json:"default_branch"`
	Topics        []string `json:"topics"`
	Selected      bool     `json:"selected"`
}

// Collection keys inside a stats document.
const (
	KeyOrganizationProfile = "organization_profile"
	KeyOrganizationMembers = "organization_members"
	KeyOrganizationRepos   = "organization_repos"
	KeyRepositoryMembers   = "repository_members"
	KeyBranches            = "branches"
	KeyIssues              = "issues"
	KeyPullRequests        = "pull_requests"
	KeyCommits             = "commits"
	KeyWorkflows           = "workflows"
	KeyDiscussions         = "discussions"
	KeyProjects            = "projects"
)

// Document aggregates every collection of one stats.json file.
type Document struct {
	OrganizationProfile *OrgProfile   `json:"organization_profile,omitempty"`
	OrganizationMembers []OrgMember   `json:"organization_members"`
	OrganizationRepos   []Repo        `json:"organization_repos"`
	Branches            []Branch      `json:"branches"`
	Issues              []Issue       `json:"issues"`
	PullRequests        []PullRequest `json:"pull_requests"`
	RepositoryMembers   []Member      `json:"repository_members"`
	Commits             []Commit      `json:"commits"`
	Workflows           []Workflow    `json:"workflows"`
	Discussions         []Discussion  `json:"discussions"`
	Projects            []Project     `json:"projects"`
}

// SelectedRepo returns the repository the document was collected for.
func (d Document) SelectedRepo() (Repo, bool) {
	for _, r := range d.OrganizationRepos {
		if r.Selected {
			return r, true
		}
	}
	return Repo{}, false
}

// Ready reports whether the document names an organization and a selected
// repository, which is what the load screen needs.
func (d Document) Ready() bool {
	if d.OrganizationProfile == nil || len(d.OrganizationRepos) == 0 {
		return false
	}
	_, ok := d.SelectedRepo()
	return ok
}

// Counts returns the size of each list collection, visualized or not.
func (d Document) Counts() map[string]int {
	return map[string]int{
		KeyRepositoryMembers:   len(d.RepositoryMembers),
		KeyOrganizationMembers: len(d.OrganizationMembers),
		KeyBranches:            len(d.Branches),
		KeyIssues:              len(d.Issues),
		KeyPullRequests:        len(d.PullRequests),
		KeyCommits:             len(d.Commits),
		KeyWorkflows:           len(d.Workflows),
		KeyDiscussions:         len(d.Discussions),
		KeyProjects:            len(d.Projects),
	}
}

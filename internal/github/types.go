package github

import "encoding/json"

type apiUser struct {
	Login     string `json:"login"`
	ID        int64  `json:"id"`
	AvatarURL string `json:"avatar_url"`
}

type apiOrg struct {
	Login            string `json:"login"`
	Name             string `json:"name"`
	Description      string `json:"description"`
	Blog             string `json:"blog"`
	Location         string `json:"location"`
	Email            string `json:"email"`
	AvatarURL        string `json:"avatar_url"`
	HTMLURL          string `json:"html_url"`
	PublicRepos      int    `json:"public_repos"`
	PublicMembersURL string `json:"public_members_url"`
}

type apiRepo struct {
	Name            string `json:"name"`
	FullName        string `json:"full_name"`
	Private         bool   `json:"private"`
	Description     string `json:"description"`
	HTMLURL         string `json:"html_url"`
	Language        string `json:"language"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
	PushedAt        string `json:"pushed_at"`
	Size            int    `json:"size"`
	StargazersCount int    `json:"stargazers_count"`
	WatchersCount   int    `json:"watchers_count"`
	ForksCount      int    `json:"forks_count"`
	OpenIssuesCount int    `json:"open_issues_count"`
	License         *struct {
		Name string `json:"name"`
	} `json:"license"`
	DefaultBranch string   `json:"default_branch"`
	Topics        []string `json:"topics"`
}

type apiBranchRef struct {
	Name string `json:"name"`
}

type apiBranch struct {
	Name   string `json:"name"`
	Commit struct {
		Commit struct {
			Author struct {
				Name string `json:"name"`
				Date string `json:"date"`
			} `json:"author"`
			Message string `json:"message"`
		} `json:"commit"`
	} `json:"commit"`
}

type apiLabel struct {
	Name string `json:"name"`
}

type apiIssue struct {
	Title     string     `json:"title"`
	State     string     `json:"state"`
	User      apiUser    `json:"user"`
	Assignees []apiUser  `json:"assignees"`
	Labels    []apiLabel `json:"labels"`
	Milestone *struct {
		Title string `json:"title"`
	} `json:"milestone"`
	PullRequest json.RawMessage `json:"pull_request"`
	CreatedAt   string          `json:"created_at"`
	ClosedAt    string          `json:"closed_at"`
}

type apiPull struct {
	Title              string    `json:"title"`
	State              string    `json:"state"`
	User               apiUser   `json:"user"`
	Assignees          []apiUser `json:"assignees"`
	RequestedReviewers []apiUser `json:"requested_reviewers"`
	CreatedAt          string    `json:"created_at"`
	ClosedAt           string    `json:"closed_at"`
	MergedAt           string    `json:"merged_at"`
}

type apiCommit struct {
	Commit struct {
		Author *struct {
			Name string `json:"name"`
			Date string `json:"date"`
		} `json:"author"`
		Message string `json:"message"`
	} `json:"commit"`
}

type apiWorkflow struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	State     string `json:"state"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
	HTMLURL   string `json:"html_url"`
}

type apiDiscussion struct {
	Number    int     `json:"number"`
	Title     string  `json:"title"`
	State     string  `json:"state"`
	CreatedAt string  `json:"created_at"`
	User      apiUser `json:"user"`
	Comments  int     `json:"comments"`
}

type apiProject struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Body      string `json:"body"`
	State     string `json:"state"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type apiContributor struct {
	Author *apiUser `json:"author"`
	Total  int64    `json:"total"`
	Weeks  []struct {
		Additions int64 `json:"a"`
		Deletions int64 `json:"d"`
	} `json:"weeks"`
}

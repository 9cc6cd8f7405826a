package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/atomicstack/orgverse/internal/logging"
	"github.com/atomicstack/orgverse/internal/logging/events"
	"github.com/atomicstack/orgverse/internal/stats"
	"golang.org/x/sync/errgroup"
)

// ActiveWindow is how recent a branch's last commit must be for the branch
// to count as Active.
const ActiveWindow = 90 * 24 * time.Hour

const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

const branchDetailLimit = 8

// Collect fetches a full stats document for org and repo. Organization
// members, pull requests, contributor totals, workflows, discussions and
// projects need a token and are left empty without one. Discussions and
// projects come from preview endpoints; when GitHub no longer serves them
// they are recorded empty instead of failing the fetch.
func (c *Client) Collect(ctx context.Context, org, repo string) (stats.Document, error) {
	org = strings.TrimSpace(org)
	repo = strings.TrimSpace(repo)
	if org == "" || repo == "" {
		return stats.Document{}, fmt.Errorf("github: organization and repository are required")
	}
	events.Fetch.Start(org, repo, c.Authenticated())
	if !c.Authenticated() {
		logging.Warnf("no GitHub token configured; organization members, pull requests, contributor stats, workflows, discussions and projects will be empty")
	}

	doc := stats.Document{
		OrganizationMembers: []stats.OrgMember{},
		PullRequests:        []stats.PullRequest{},
		RepositoryMembers:   []stats.Member{},
		Workflows:           []stats.Workflow{},
		Discussions:         []stats.Discussion{},
		Projects:            []stats.Project{},
	}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		profile, err := c.OrgProfile(ctx, org)
		if err != nil {
			return fmt.Errorf("organization profile: %w", err)
		}
		doc.OrganizationProfile = &profile
		return nil
	})
	g.Go(func() error {
		repos, err := c.OrgRepos(ctx, org, repo)
		if err != nil {
			return fmt.Errorf("organization repos: %w", err)
		}
		doc.OrganizationRepos = repos
		return nil
	})
	g.Go(func() error {
		branches, err := c.Branches(ctx, org, repo)
		if err != nil {
			return fmt.Errorf("branches: %w", err)
		}
		doc.Branches = branches
		return nil
	})
	g.Go(func() error {
		issues, err := c.Issues(ctx, org, repo)
		if err != nil {
			return fmt.Errorf("issues: %w", err)
		}
		doc.Issues = issues
		return nil
	})
	g.Go(func() error {
		commits, err := c.Commits(ctx, org, repo)
		if err != nil {
			return fmt.Errorf("commits: %w", err)
		}
		doc.Commits = commits
		return nil
	})
	if c.Authenticated() {
		g.Go(func() error {
			members, err := c.OrgMembers(ctx, org)
			if err != nil {
				return fmt.Errorf("organization members: %w", err)
			}
			doc.OrganizationMembers = members
			return nil
		})
		g.Go(func() error {
			pulls, err := c.PullRequests(ctx, org, repo)
			if err != nil {
				return fmt.Errorf("pull requests: %w", err)
			}
			doc.PullRequests = pulls
			return nil
		})
		g.Go(func() error {
			members, err := c.Contributors(ctx, org, repo)
			if err != nil {
				return fmt.Errorf("contributor stats: %w", err)
			}
			doc.RepositoryMembers = members
			return nil
		})
		g.Go(func() error {
			workflows, err := c.Workflows(ctx, org, repo)
			if err != nil {
				return fmt.Errorf("workflows: %w", err)
			}
			doc.Workflows = workflows
			return nil
		})
		g.Go(func() error {
			discussions, err := c.Discussions(ctx, org, repo)
			if Unavailable(err) {
				logging.Warnf("discussions unavailable for %s/%s: %v", org, repo, err)
				events.Fetch.Skip(stats.KeyDiscussions, "unavailable")
				return nil
			}
			if err != nil {
				return fmt.Errorf("discussions: %w", err)
			}
			doc.Discussions = discussions
			return nil
		})
		g.Go(func() error {
			projects, err := c.Projects(ctx, org)
			if Unavailable(err) {
				logging.Warnf("projects unavailable for %s: %v", org, err)
				events.Fetch.Skip(stats.KeyProjects, "unavailable")
				return nil
			}
			if err != nil {
				return fmt.Errorf("projects: %w", err)
			}
			doc.Projects = projects
			return nil
		})
	} else {
		for _, key := range []string{
			stats.KeyOrganizationMembers, stats.KeyPullRequests, stats.KeyRepositoryMembers,
			stats.KeyWorkflows, stats.KeyDiscussions, stats.KeyProjects,
		} {
			events.Fetch.Skip(key, "no token")
		}
	}
	if err := g.Wait(); err != nil {
		events.Fetch.Error(err)
		return stats.Document{}, err
	}
	return doc, nil
}

func (c *Client) OrgProfile(ctx context.Context, org string) (stats.OrgProfile, error) {
	var o apiOrg
	if err := c.getJSON(ctx, "/orgs/"+url.PathEscape(org), &o); err != nil {
		return stats.OrgProfile{}, err
	}
	return stats.OrgProfile{
		Login:         o.Login,
		Name:          o.Name,
		Description:   o.Description,
		Blog:          o.Blog,
		Location:      o.Location,
		Email:         o.Email,
		AvatarURL:     o.AvatarURL,
		HTMLURL:       o.HTMLURL,
		PublicRepos:   o.PublicRepos,
		PublicMembers: o.PublicMembersURL,
	}, nil
}

func (c *Client) OrgMembers(ctx context.Context, org string) ([]stats.OrgMember, error) {
	users, err := newPageIterator[apiUser](c, c.listURL("/orgs/"+url.PathEscape(org)+"/members", nil)).collect(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]stats.OrgMember, 0, len(users))
	for _, u := range users {
		out = append(out, stats.OrgMember{Login: u.Login, ID: u.ID, AvatarURL: u.AvatarURL})
	}
	return out, nil
}

// OrgRepos lists the organization's repositories and marks selected as the
// one the document is collected for.
func (c *Client) OrgRepos(ctx context.Context, org, selected string) ([]stats.Repo, error) {
	repos, err := newPageIterator[apiRepo](c, c.listURL("/orgs/"+url.PathEscape(org)+"/repos", nil)).collect(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]stats.Repo, 0, len(repos))
	for _, r := range repos {
		license := ""
		if r.License != nil {
			license = r.License.Name
		}
		topics := r.Topics
		if topics == nil {
			topics = []string{}
		}
		out = append(out, stats.Repo{
			Name:          r.Name,
			FullName:      r.FullName,
			Private:       r.Private,
			Description:   r.Description,
			HTMLURL:       r.HTMLURL,
			Language:      r.Language,
			CreatedAt:     r.CreatedAt,
			UpdatedAt:     r.UpdatedAt,
			PushedAt:      r.PushedAt,
			Size:          r.Size,
			Stargazers:    r.StargazersCount,
			Watchers:      r.WatchersCount,
			Forks:         r.ForksCount,
			OpenIssues:    r.OpenIssuesCount,
			License:       license,
			DefaultBranch: r.DefaultBranch,
			Topics:        topics,
			Selected:      strings.EqualFold(r.Name, selected),
		})
	}
	return out, nil
}

// Branches lists the repository's branches with their last commit. Branch
// details are fetched concurrently but returned in listing order.
func (c *Client) Branches(ctx context.Context, owner, repo string) ([]stats.Branch, error) {
	refs, err := newPageIterator[apiBranchRef](c, c.listURL(repoPath(owner, repo)+"/branches", nil)).collect(ctx)
	if err != nil {
		return nil, err
	}
	kept := refs[:0]
	for _, ref := range refs {
		if ref.Name != "HEAD" {
			kept = append(kept, ref)
		}
	}
	out := make([]stats.Branch, len(kept))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(branchDetailLimit)
	for i, ref := range kept {
		g.Go(func() error {
			var b apiBranch
			if err := c.getJSON(ctx, repoPath(owner, repo)+"/branches/"+url.PathEscape(ref.Name), &b); err != nil {
				return fmt.Errorf("branch %s: %w", ref.Name, err)
			}
			out[i] = c.branchRecord(b)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) branchRecord(b apiBranch) stats.Branch {
	author := b.Commit.Commit.Author
	rec := stats.Branch{
		Name:          b.Name,
		Author:        author.Name,
		CurrentStatus: StatusInactive,
		CommitDate:    author.Date,
		CommitMessage: b.Commit.Commit.Message,
	}
	if when, err := time.Parse(time.RFC3339, author.Date); err == nil {
		rec.CommitDate = when.UTC().Format(time.DateTime)
		if c.now().Sub(when) <= ActiveWindow {
			rec.CurrentStatus = StatusActive
		}
	}
	return rec
}

// Issues lists every issue, open or closed, leaving out pull requests.
// Unassigned issues are attributed to their author.
func (c *Client) Issues(ctx context.Context, owner, repo string) ([]stats.Issue, error) {
	issues, err := newPageIterator[apiIssue](c, c.listURL(repoPath(owner, repo)+"/issues", url.Values{"state": {"all"}})).collect(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]stats.Issue, 0, len(issues))
	for _, is := range issues {
		if isPresent(is.PullRequest) {
			continue
		}
		labels := make([]string, 0, len(is.Labels))
		for _, l := range is.Labels {
			labels = append(labels, l.Name)
		}
		milestone := ""
		if is.Milestone != nil {
			milestone = is.Milestone.Title
		}
		out = append(out, stats.Issue{
			Title:     is.Title,
			Assignees: loginsOr(is.Assignees, is.User),
			Labels:    labels,
			Milestone: milestone,
			Status:    is.State,
			CreatedAt: is.CreatedAt,
			ClosedAt:  is.ClosedAt,
		})
	}
	return out, nil
}

func (c *Client) PullRequests(ctx context.Context, owner, repo string) ([]stats.PullRequest, error) {
	pulls, err := newPageIterator[apiPull](c, c.listURL(repoPath(owner, repo)+"/pulls", url.Values{"state": {"all"}})).collect(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]stats.PullRequest, 0, len(pulls))
	for _, pr := range pulls {
		out = append(out, stats.PullRequest{
			Title:     pr.Title,
			Assignees: loginsOr(pr.Assignees, pr.User),
			Reviewers: logins(pr.RequestedReviewers),
			Status:    pr.State,
			CreatedAt: pr.CreatedAt,
			ClosedAt:  pr.ClosedAt,
			MergedAt:  pr.MergedAt,
		})
	}
	return out, nil
}

// Commits lists the default branch history. Commits whose author has no
// git identity keep empty author and date fields.
func (c *Client) Commits(ctx context.Context, owner, repo string) ([]stats.Commit, error) {
	commits, err := newPageIterator[apiCommit](c, c.listURL(repoPath(owner, repo)+"/commits", nil)).collect(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]stats.Commit, 0, len(commits))
	for _, cm := range commits {
		rec := stats.Commit{Message: cm.Commit.Message}
		if a := cm.Commit.Author; a != nil {
			rec.Author = a.Name
			rec.Date = a.Date
		}
		out = append(out, rec)
	}
	return out, nil
}

func (c *Client) Workflows(ctx context.Context, owner, repo string) ([]stats.Workflow, error) {
	workflows, err := newPageIterator[apiWorkflow](c, c.listURL(repoPath(owner, repo)+"/actions/workflows", nil)).
		within("workflows").
		collect(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]stats.Workflow, 0, len(workflows))
	for _, w := range workflows {
		out = append(out, stats.Workflow(w))
	}
	return out, nil
}

func (c *Client) Discussions(ctx context.Context, owner, repo string) ([]stats.Discussion, error) {
	discussions, err := newPageIterator[apiDiscussion](c, c.listURL(repoPath(owner, repo)+"/discussions", nil)).
		withAccept(acceptDiscussions).
		collect(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]stats.Discussion, 0, len(discussions))
	for _, d := range discussions {
		out = append(out, stats.Discussion{
			Number:    d.Number,
			Title:     d.Title,
			State:     d.State,
			CreatedAt: d.CreatedAt,
			User:      d.User.Login,
			Comments:  d.Comments,
		})
	}
	return out, nil
}

// Projects lists the organization's classic project boards.
func (c *Client) Projects(ctx context.Context, org string) ([]stats.Project, error) {
	projects, err := newPageIterator[apiProject](c, c.listURL("/orgs/"+url.PathEscape(org)+"/projects", nil)).
		withAccept(acceptProjects).
		collect(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]stats.Project, 0, len(projects))
	for _, p := range projects {
		out = append(out, stats.Project(p))
	}
	return out, nil
}

// Contributors sums each contributor's weekly additions and deletions.
// GitHub answers 202 while it computes the statistics; the request is
// retried a few times before giving up.
func (c *Client) Contributors(ctx context.Context, owner, repo string) ([]stats.Member, error) {
	target := c.listURL(repoPath(owner, repo)+"/stats/contributors", nil)
	for attempt := 0; ; attempt++ {
		resp, err := c.doRaw(ctx, target)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode == http.StatusAccepted {
			resp.Body.Close()
			if attempt+1 >= statsRetries {
				return nil, fmt.Errorf("github: contributor stats still being generated after %d attempts", statsRetries)
			}
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.statsWait):
			}
			continue
		}
		if resp.StatusCode == http.StatusNoContent {
			resp.Body.Close()
			return []stats.Member{}, nil
		}
		if resp.StatusCode != http.StatusOK {
			err := parseAPIError(resp)
			resp.Body.Close()
			return nil, err
		}
		var contributors []apiContributor
		err = json.NewDecoder(resp.Body).Decode(&contributors)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("github: decode contributor stats: %w", err)
		}
		out := make([]stats.Member, 0, len(contributors))
		for _, ct := range contributors {
			if ct.Author == nil {
				continue
			}
			var added, deleted int64
			for _, w := range ct.Weeks {
				added += w.Additions
				deleted += w.Deletions
			}
			out = append(out, stats.Member{
				Login:        ct.Author.Login,
				TotalCommits: stats.Count(ct.Total),
				LinesWritten: stats.Count(added),
				LinesDeleted: stats.Count(deleted),
			})
		}
		return out, nil
	}
}

func (c *Client) listURL(path string, query url.Values) string {
	if query == nil {
		query = url.Values{}
	}
	query.Set("per_page", fmt.Sprint(defaultPerPage))
	return c.endpoint(path, query)
}

func logins(users []apiUser) []string {
	out := make([]string, 0, len(users))
	for _, u := range users {
		out = append(out, u.Login)
	}
	return out
}

func loginsOr(users []apiUser, fallback apiUser) []string {
	out := logins(users)
	if len(out) == 0 && fallback.Login != "" {
		out = append(out, fallback.Login)
	}
	return out
}

func isPresent(raw json.RawMessage) bool {
	trimmed := strings.TrimSpace(string(raw))
	return trimmed != "" && trimmed != "null"
}

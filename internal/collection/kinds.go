package collection

import (
	"github.com/atomicstack/orgverse/internal/anim"
	"github.com/atomicstack/orgverse/internal/present"
	"github.com/atomicstack/orgverse/internal/scene"
	"github.com/atomicstack/orgverse/internal/stats"
	"github.com/atomicstack/orgverse/internal/visualizer"
)

const (
	Members      = "members"
	OrgMembers   = "org-members"
	Branches     = "branches"
	Issues       = "issues"
	PullRequests = "pull-requests"
)

// IDs lists every kind in tab order.
var IDs = []string{Members, OrgMembers, Branches, Issues, PullRequests}

// DefaultOptions returns the stock layout for a kind: members along X,
// branches and pull requests along Z, issues centred on X two units apart.
func DefaultOptions(id string) visualizer.Options {
	opts := visualizer.DefaultOptions()
	switch id {
	case Branches, PullRequests:
		opts.Axis = scene.AxisZ
	case Issues:
		opts.Spacing = 2
		opts.Centered = true
	}
	return opts
}

// Defaults returns DefaultOptions for every kind.
func Defaults() map[string]visualizer.Options {
	out := make(map[string]visualizer.Options, len(IDs))
	for _, id := range IDs {
		out[id] = DefaultOptions(id)
	}
	return out
}

// All builds one collection per kind. Missing entries in opts fall back to
// DefaultOptions.
func All(sched *anim.Scheduler, opts map[string]visualizer.Options) []*Collection {
	pick := func(id string) visualizer.Options {
		if o, ok := opts[id]; ok {
			return o
		}
		return DefaultOptions(id)
	}
	return []*Collection{
		New(Spec[stats.Member]{
			ID: Members, Title: "Members", Key: stats.KeyRepositoryMembers,
			Options: pick(Members), Scheduler: sched,
			Records: func(d stats.Document) []stats.Member { return d.RepositoryMembers },
			Fields:  present.MemberFields, Label: present.MemberLabel,
		}),
		New(Spec[stats.OrgMember]{
			ID: OrgMembers, Title: "Org Members", Key: stats.KeyOrganizationMembers,
			Options: pick(OrgMembers), Scheduler: sched,
			Records: func(d stats.Document) []stats.OrgMember { return d.OrganizationMembers },
			Fields:  present.OrgMemberFields, Label: present.OrgMemberLabel,
		}),
		New(Spec[stats.Branch]{
			ID: Branches, Title: "Branches", Key: stats.KeyBranches,
			Options: pick(Branches), Scheduler: sched,
			Records: func(d stats.Document) []stats.Branch { return d.Branches },
			Fields:  present.BranchFields, Label: present.BranchLabel,
		}),
		New(Spec[stats.Issue]{
			ID: Issues, Title: "Issues", Key: stats.KeyIssues,
			Options: pick(Issues), Scheduler: sched,
			Records: func(d stats.Document) []stats.Issue { return d.Issues },
			Fields:  present.IssueFields, Label: present.IssueLabel,
		}),
		New(Spec[stats.PullRequest]{
			ID: PullRequests, Title: "Pull Requests", Key: stats.KeyPullRequests,
			Options: pick(PullRequests), Scheduler: sched,
			Records: func(d stats.Document) []stats.PullRequest { return d.PullRequests },
			Fields:  present.PullRequestFields, Label: present.PullRequestLabel,
		}),
	}
}

// Package insights summarizes a stats document: who contributes, what the
// issue tracker is busy with, and how branches and pull requests fare.
package insights

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/orgverse/internal/format/table"
	"github.com/atomicstack/orgverse/internal/stats"
	"gonum.org/v1/gonum/stat"
)

const (
	topContributors = 5
	topLabels       = 10

	statusActive = "Active"
)

type Contributor struct {
	Login   string
	Commits int64
	Written int64
	Deleted int64
}

type LabelCount struct {
	Label string
	Count int
}

// Durations summarizes elapsed days between two timestamps of a set of
// records. Records missing either timestamp are left out of Count.
type Durations struct {
	Count      int
	MeanDays   float64
	MedianDays float64
}

// Share splits branches by their current status.
type Share struct {
	Active   int
	Inactive int
}

func (s Share) Total() int { return s.Active + s.Inactive }

// ActivePercent is the Active share of all branches, 0 when there are none.
func (s Share) ActivePercent() float64 {
	if s.Total() == 0 {
		return 0
	}
	return 100 * float64(s.Active) / float64(s.Total())
}

// Report is the computed summary of one document.
type Report struct {
	Org  string
	Repo string
	// Members holds every repository member ordered by commits, most first.
	Members         []Contributor
	TopContributors []Contributor
	Labels          []LabelCount
	IssueResolution Durations
	PullMerge       Durations
	Merged          int
	ClosedUnmerged  int
	OpenPulls       int
	Branches        Share
}

// Compute builds the report. Totals are ordered by count with ties broken
// by name so the output is stable.
func Compute(doc stats.Document) Report {
	var r Report
	if doc.OrganizationProfile != nil {
		r.Org = doc.OrganizationProfile.Login
	}
	if repo, ok := doc.SelectedRepo(); ok {
		r.Repo = repo.Name
	}

	r.Members = make([]Contributor, 0, len(doc.RepositoryMembers))
	for _, m := range doc.RepositoryMembers {
		r.Members = append(r.Members, Contributor{
			Login:   m.Login,
			Commits: int64(m.TotalCommits),
			Written: int64(m.LinesWritten),
			Deleted: int64(m.LinesDeleted),
		})
	}
	sort.SliceStable(r.Members, func(i, j int) bool {
		if r.Members[i].Commits != r.Members[j].Commits {
			return r.Members[i].Commits > r.Members[j].Commits
		}
		return r.Members[i].Login < r.Members[j].Login
	})
	r.TopContributors = r.Members[:min(topContributors, len(r.Members))]

	counts := map[string]int{}
	var resolution []float64
	for _, is := range doc.Issues {
		for _, l := range is.Labels {
			if l = strings.TrimSpace(l); l != "" {
				counts[l]++
			}
		}
		if days, ok := elapsedDays(is.CreatedAt, is.ClosedAt); ok {
			resolution = append(resolution, days)
		}
	}
	r.Labels = rankLabels(counts)
	r.IssueResolution = summarize(resolution)

	var merge []float64
	for _, pr := range doc.PullRequests {
		switch {
		case pr.Merged():
			r.Merged++
			if days, ok := elapsedDays(pr.CreatedAt, pr.MergedAt); ok {
				merge = append(merge, days)
			}
		case strings.EqualFold(pr.Status, "closed"):
			r.ClosedUnmerged++
		default:
			r.OpenPulls++
		}
	}
	r.PullMerge = summarize(merge)

	for _, b := range doc.Branches {
		if b.CurrentStatus == statusActive {
			r.Branches.Active++
		} else {
			r.Branches.Inactive++
		}
	}
	return r
}

func rankLabels(counts map[string]int) []LabelCount {
	out := make([]LabelCount, 0, len(counts))
	for label, n := range counts {
		out = append(out, LabelCount{Label: label, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	return out[:min(topLabels, len(out))]
}

func summarize(days []float64) Durations {
	if len(days) == 0 {
		return Durations{}
	}
	sort.Float64s(days)
	return Durations{
		Count:      len(days),
		MeanDays:   stat.Mean(days, nil),
		MedianDays: stat.Quantile(0.5, stat.Empirical, days, nil),
	}
}

// elapsedDays parses GitHub RFC 3339 timestamps, falling back to the
// "YYYY-MM-DD HH:MM:SS" form branch dates are stored in.
func elapsedDays(from, to string) (float64, bool) {
	start, ok := parseTime(from)
	if !ok {
		return 0, false
	}
	end, ok := parseTime(to)
	if !ok || end.Before(start) {
		return 0, false
	}
	return end.Sub(start).Hours() / 24, true
}

func parseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339, time.DateTime} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Lines renders the report as titled sections of aligned rows.
func (r Report) Lines() []string {
	var out []string
	title := "Insights"
	if r.Org != "" && r.Repo != "" {
		title = fmt.Sprintf("Insights for %s/%s", r.Org, r.Repo)
	}
	out = append(out, title)

	section := func(name string, rows [][]string, aligns ...table.Alignment) {
		out = append(out, "", name)
		if len(rows) == 0 {
			out = append(out, "  none")
			return
		}
		for _, line := range table.Format(rows, aligns) {
			out = append(out, "  "+line)
		}
	}
	right := table.AlignRight
	left := table.AlignLeft

	section("Top contributors", contributorRows(r.TopContributors), left, right, right, right)

	labels := make([][]string, 0, len(r.Labels))
	for _, l := range r.Labels {
		labels = append(labels, []string{l.Label, strconv.Itoa(l.Count)})
	}
	section("Labels", labels, left, right)

	var branches [][]string
	if total := r.Branches.Total(); total > 0 {
		branches = [][]string{
			{statusActive, strconv.Itoa(r.Branches.Active), percent(r.Branches.ActivePercent())},
			{"Inactive", strconv.Itoa(r.Branches.Inactive), percent(100 - r.Branches.ActivePercent())},
		}
	}
	section("Branches", branches, left, right, right)

	var pulls [][]string
	if r.Merged+r.ClosedUnmerged+r.OpenPulls > 0 {
		pulls = [][]string{
			{"merged", strconv.Itoa(r.Merged)},
			{"closed without merge", strconv.Itoa(r.ClosedUnmerged)},
			{"open", strconv.Itoa(r.OpenPulls)},
		}
		if r.PullMerge.Count > 0 {
			pulls = append(pulls, []string{"days to merge", durationCell(r.PullMerge)})
		}
	}
	section("Pull requests", pulls, left, right)

	var issues [][]string
	if r.IssueResolution.Count > 0 {
		issues = [][]string{
			{"resolved", strconv.Itoa(r.IssueResolution.Count)},
			{"days to close", durationCell(r.IssueResolution)},
		}
	}
	section("Issues", issues, left, right)

	section("Member activity", contributorRows(r.Members), left, right, right, right)
	return out
}

func contributorRows(cs []Contributor) [][]string {
	if len(cs) == 0 {
		return nil
	}
	rows := [][]string{{"login", "commits", "+lines", "-lines"}}
	for _, c := range cs {
		rows = append(rows, []string{
			c.Login,
			strconv.FormatInt(c.Commits, 10),
			strconv.FormatInt(c.Written, 10),
			strconv.FormatInt(c.Deleted, 10),
		})
	}
	return rows
}

func durationCell(d Durations) string {
	return fmt.Sprintf("mean %.1f, median %.1f", d.MeanDays, d.MedianDays)
}

func percent(v float64) string {
	return fmt.Sprintf("%.0f%%", v)
}

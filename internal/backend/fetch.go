package backend

import (
	"context"

	"github.com/atomicstack/orgverse/internal/logging/events"
	"github.com/atomicstack/orgverse/internal/stats"
)

// Collector produces a stats document for an organization and repository.
type Collector interface {
	Collect(ctx context.Context, org, repo string) (stats.Document, error)
}

// Fetch collects a document and saves it to path. The returned event
// carries the document so callers need not re-read the file.
func Fetch(ctx context.Context, c Collector, org, repo, path string) Event {
	doc, err := c.Collect(ctx, org, repo)
	if err != nil {
		events.Fetch.Error(err)
		return Event{Kind: KindFetch, Path: path, Err: err}
	}
	if err := stats.Save(path, doc); err != nil {
		events.Fetch.Error(err)
		return Event{Kind: KindFetch, Path: path, Err: err}
	}
	events.Fetch.Done(path, doc.Counts())
	return Event{Kind: KindFetch, Path: path, Data: doc}
}

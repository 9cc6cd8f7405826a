package dispatcher

import (
	"errors"
	"testing"

	"github.com/atomicstack/orgverse/internal/backend"
	"github.com/atomicstack/orgverse/internal/stats"
)

type recordingLoader struct {
	id   string
	docs []stats.Document
}

func (r *recordingLoader) ID() string { return r.id }

func (r *recordingLoader) Load(doc stats.Document) { r.docs = append(r.docs, doc) }

func TestHandleAppliesDocumentToEveryLoader(t *testing.T) {
	a := &recordingLoader{id: "a"}
	b := &recordingLoader{id: "b"}
	d := New(a, b)
	doc := stats.Document{
		OrganizationProfile: &stats.OrgProfile{Login: "acme"},
		OrganizationRepos:   []stats.Repo{{Name: "rocket", Selected: true}},
		Issues:              []stats.Issue{{Title: "bug"}},
	}
	res := d.Handle(backend.Event{Kind: backend.KindStats, Data: doc})
	if res.Err != nil {
		t.Fatalf("unexpected error %v", res.Err)
	}
	if len(res.Loaded) != 2 || res.Loaded[0] != "a" || res.Loaded[1] != "b" {
		t.Fatalf("expected both loaders applied, got %v", res.Loaded)
	}
	if len(a.docs) != 1 || len(a.docs[0].Issues) != 1 {
		t.Fatalf("expected loader a to receive the document, got %+v", a.docs)
	}
	if !res.Ready() {
		t.Fatalf("expected document with profile and selected repo to be ready")
	}
}

func TestHandleErrorClearsLoaders(t *testing.T) {
	l := &recordingLoader{id: "issues"}
	d := New(l)
	res := d.Handle(backend.Event{Kind: backend.KindStats, Err: stats.ErrDataUnavailable})
	if !errors.Is(res.Err, stats.ErrDataUnavailable) {
		t.Fatalf("expected unavailable error, got %v", res.Err)
	}
	if len(l.docs) != 1 || len(l.docs[0].Issues) != 0 {
		t.Fatalf("expected an empty document to be applied, got %+v", l.docs)
	}
	if res.Ready() {
		t.Fatalf("expected failed result not to be ready")
	}
}

func TestHandleIgnoresForeignPayload(t *testing.T) {
	l := &recordingLoader{id: "issues"}
	res := New(l).Handle(backend.Event{Kind: backend.KindStats, Data: "nope"})
	if len(res.Loaded) != 0 || len(l.docs) != 0 {
		t.Fatalf("expected no loads for a foreign payload, got %v", res.Loaded)
	}
}

package dispatcher

import (
	"github.com/atomicstack/orgverse/internal/backend"
	"github.com/atomicstack/orgverse/internal/logging/events"
	"github.com/atomicstack/orgverse/internal/stats"
)

// Loader receives every document the backend produces.
type Loader interface {
	ID() string
	Load(doc stats.Document)
}

// Result reports what a Handle call applied.
type Result struct {
	Document stats.Document
	Err      error
	Loaded   []string
}

// Ready reports whether the applied document can drive the load screen.
func (r Result) Ready() bool {
	return r.Err == nil && r.Document.Ready()
}

type Dispatcher struct {
	loaders []Loader
}

func New(loaders ...Loader) *Dispatcher {
	return &Dispatcher{loaders: append([]Loader(nil), loaders...)}
}

// Handle fans a backend event out to every loader. A failed read clears the
// loaders with an empty document so stale records do not linger.
func (d *Dispatcher) Handle(evt backend.Event) Result {
	res := Result{Err: evt.Err}
	if evt.Err == nil {
		doc, ok := evt.Document()
		if !ok {
			return res
		}
		res.Document = doc
	}
	for _, l := range d.loaders {
		l.Load(res.Document)
		res.Loaded = append(res.Loaded, l.ID())
	}
	events.Data.Read(evt.Path, res.Document.Counts())
	return res
}

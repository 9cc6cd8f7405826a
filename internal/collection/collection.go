// Package collection binds each record kind of a stats document to its
// visualizer and detail surface behind one non-generic type.
package collection

import (
	"github.com/atomicstack/orgverse/internal/anim"
	"github.com/atomicstack/orgverse/internal/present"
	"github.com/atomicstack/orgverse/internal/stats"
	"github.com/atomicstack/orgverse/internal/visualizer"
)

// Collection is one record kind on screen.
type Collection struct {
	id      string
	title   string
	key     string
	ctrl    visualizer.Controller
	surface *present.Surface

	load     func(stats.Document)
	labels   func() []string
	restrict func(indices []int)
	count    func() int
}

// Spec describes how to pull one record kind out of a document and show it.
type Spec[T any] struct {
	ID        string
	Title     string
	Key       string
	Options   visualizer.Options
	Scheduler *anim.Scheduler
	Records   func(stats.Document) []T
	Fields    func(T) []present.Field
	Label     func(T) string
}

// New wires a visualizer for T. The collection keeps the full record list
// so a filter can narrow the visualizer and later restore it.
func New[T any](s Spec[T]) *Collection {
	surface := present.NewSurface()
	vis := visualizer.New(visualizer.Params[T]{
		Kind:      s.ID,
		Options:   s.Options,
		Scheduler: s.Scheduler,
		Presenter: present.New(surface, s.Fields),
		Label:     s.Label,
	})
	var full []T
	c := &Collection{
		id:      s.ID,
		title:   s.Title,
		key:     s.Key,
		ctrl:    vis,
		surface: surface,
	}
	c.load = func(doc stats.Document) {
		full = append([]T(nil), s.Records(doc)...)
		vis.LoadData(full)
	}
	c.labels = func() []string {
		out := make([]string, len(full))
		for i, rec := range full {
			out[i] = s.Label(rec)
		}
		return out
	}
	c.restrict = func(indices []int) {
		if indices == nil {
			vis.LoadData(full)
			return
		}
		subset := make([]T, 0, len(indices))
		for _, i := range indices {
			if i >= 0 && i < len(full) {
				subset = append(subset, full[i])
			}
		}
		vis.LoadData(subset)
	}
	c.count = func() int { return len(full) }
	return c
}

func (c *Collection) ID() string {
	return c.id
}

func (c *Collection) Title() string {
	return c.title
}

// Key is the document key the records come from.
func (c *Collection) Key() string {
	return c.key
}

func (c *Collection) Controller() visualizer.Controller {
	return c.ctrl
}

func (c *Collection) Surface() *present.Surface {
	return c.surface
}

// Load replaces the records from doc and resets any filter.
func (c *Collection) Load(doc stats.Document) {
	c.load(doc)
}

// Labels returns one label per record of the unfiltered collection.
func (c *Collection) Labels() []string {
	return c.labels()
}

// Restrict shows only the records at indices of the full collection. A nil
// slice restores every record.
func (c *Collection) Restrict(indices []int) {
	c.restrict(indices)
}

// Len returns the size of the unfiltered collection.
func (c *Collection) Len() int {
	return c.count()
}

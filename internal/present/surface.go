// Package present formats records onto a detail surface, the text panel the
// scene host shows next to the visualizer.
package present

import "strings"

// None stands in for an absent assignee list, reviewer list or milestone.
const None = "None"

// Field is one labelled line of a detail surface. An empty Label renders the
// value alone.
type Field struct {
	Label string
	Value string
}

func (f Field) String() string {
	if f.Label == "" {
		return f.Value
	}
	return f.Label + ": " + f.Value
}

// Surface holds the fields currently on display.
type Surface struct {
	fields []Field
}

func NewSurface() *Surface {
	return &Surface{}
}

func (s *Surface) Set(fields []Field) {
	s.fields = append([]Field(nil), fields...)
}

func (s *Surface) Clear() {
	s.fields = nil
}

func (s *Surface) Empty() bool {
	return len(s.fields) == 0
}

func (s *Surface) Fields() []Field {
	return append([]Field(nil), s.fields...)
}

// Lines renders one string per field.
func (s *Surface) Lines() []string {
	lines := make([]string, len(s.fields))
	for i, f := range s.fields {
		lines[i] = f.String()
	}
	return lines
}

// Text joins the rendered lines, suitable for the clipboard.
func (s *Surface) Text() string {
	return strings.Join(s.Lines(), "\n")
}

// Presenter writes one record kind onto a Surface.
type Presenter[T any] struct {
	surface *Surface
	format  func(T) []Field
}

func New[T any](surface *Surface, format func(T) []Field) *Presenter[T] {
	return &Presenter[T]{surface: surface, format: format}
}

func (p *Presenter[T]) Show(record T) {
	p.surface.Set(p.format(record))
}

func (p *Presenter[T]) Clear() {
	p.surface.Clear()
}

func (p *Presenter[T]) Surface() *Surface {
	return p.surface
}

// Package anim runs timed tasks cooperatively. The host calls Tick once per
// frame with the frame timestamp; nothing here blocks or spawns goroutines.
package anim

import "time"

// Task is one cooperative unit of work. Step reports true once the task has
// finished and should be dropped.
type Task interface {
	Step(now time.Time) bool
}

// TaskFunc adapts a function to Task.
type TaskFunc func(now time.Time) bool

func (f TaskFunc) Step(now time.Time) bool {
	return f(now)
}

// Scheduler advances its tasks once per Tick. Tasks added while a Tick is
// running first step on the following Tick.
type Scheduler struct {
	tasks   []Task
	pending []Task
	ticking bool
	last    time.Time
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Add queues t for the next Tick.
func (s *Scheduler) Add(t Task) {
	if t == nil {
		return
	}
	if s.ticking {
		s.pending = append(s.pending, t)
		return
	}
	s.tasks = append(s.tasks, t)
}

// Tick steps every queued task with now.
func (s *Scheduler) Tick(now time.Time) {
	s.ticking = true
	s.last = now
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if !t.Step(now) {
			kept = append(kept, t)
		}
	}
	for i := len(kept); i < len(s.tasks); i++ {
		s.tasks[i] = nil
	}
	s.tasks = append(kept, s.pending...)
	s.pending = nil
	s.ticking = false
}

// Active reports whether any task is waiting to run.
func (s *Scheduler) Active() bool {
	return len(s.tasks) > 0 || len(s.pending) > 0
}

// Len returns the number of queued tasks.
func (s *Scheduler) Len() int {
	return len(s.tasks) + len(s.pending)
}

// LastTick returns the timestamp passed to the most recent Tick.
func (s *Scheduler) LastTick() time.Time {
	return s.last
}

// FrameTime returns the timestamp of the Tick in progress, or the zero time
// when called between ticks.
func (s *Scheduler) FrameTime() time.Time {
	if !s.ticking {
		return time.Time{}
	}
	return s.last
}

package anim

import (
	"time"

	"github.com/atomicstack/orgverse/internal/scene"
	"gonum.org/v1/gonum/spatial/r3"
)

// Tween moves a position linearly from From to To over Duration. Progress is
// elapsed/Duration, so the result does not depend on the tick rate. The final
// Step applies To exactly.
//
// The clock starts at Start when it is set and otherwise on the first Step.
// A tween queued between frames therefore waits for the next frame, while one
// queued from inside a Tick can pass Scheduler.FrameTime to begin on that
// frame instead of one frame late.
type Tween struct {
	From     r3.Vec
	To       r3.Vec
	Duration time.Duration
	Start    time.Time
	Apply    func(r3.Vec)
	OnDone   func()

	start   time.Time
	started bool
	done    bool
}

func (tw *Tween) Step(now time.Time) bool {
	if tw.done {
		return true
	}
	if !tw.started {
		tw.start = now
		if !tw.Start.IsZero() {
			tw.start = tw.Start
		}
		tw.started = true
	}
	f := 1.0
	if tw.Duration > 0 {
		f = float64(now.Sub(tw.start)) / float64(tw.Duration)
	}
	if f < 1 {
		tw.apply(scene.Lerp(tw.From, tw.To, f))
		return false
	}
	tw.apply(tw.To)
	tw.done = true
	if tw.OnDone != nil {
		tw.OnDone()
	}
	return true
}

// Done reports whether the tween has reached its target.
func (tw *Tween) Done() bool {
	return tw.done
}

func (tw *Tween) apply(v r3.Vec) {
	if tw.Apply != nil {
		tw.Apply(v)
	}
}

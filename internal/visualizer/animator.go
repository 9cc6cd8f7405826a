package visualizer

import (
	"time"

	"github.com/atomicstack/orgverse/internal/anim"
	"github.com/atomicstack/orgverse/internal/scene"
	"gonum.org/v1/gonum/spatial/r3"
)

type transitionState int

const (
	stateIdle transitionState = iota
	stateExiting
	stateEntering
)

func (s transitionState) String() string {
	switch s {
	case stateExiting:
		return "exiting"
	case stateEntering:
		return "entering"
	}
	return "idle"
}

// animator replaces the pool's proxies with a new page: every live proxy
// slides off by exitOffset and is destroyed, then the pool spawns the new
// page at its staged position and each proxy slides to its placement.
type animator[T any] struct {
	sched      *anim.Scheduler
	pool       *pool[T]
	duration   time.Duration
	exitOffset r3.Vec

	state   transitionState
	exiting []*Proxy[T]
	pending int
	done    func()

	// observer hooks, used for tracing
	onExit  func(count int)
	onEnter func(count int)
}

func (a *animator[T]) busy() bool {
	return a.state != stateIdle
}

// planner lays out the page that should enter. It is called once the exits
// finish, so it sees whatever the store holds at that moment.
type planner[T any] func() ([]T, []scene.Placement)

// run starts a transition to the page plan returns. done is called once the
// last entry tween settles.
func (a *animator[T]) run(plan planner[T], done func()) {
	a.done = done
	old := a.pool.release()
	if len(old) == 0 {
		a.enter(plan)
		return
	}
	a.state = stateExiting
	a.exiting = old
	a.pending = len(old)
	if a.onExit != nil {
		a.onExit(len(old))
	}
	for _, px := range old {
		px.phase = PhaseExiting
		a.sched.Add(a.slide(px, scene.Offset(px.position, a.exitOffset), func(px *Proxy[T]) {
			a.pool.destroy(px)
			a.pending--
			if a.pending == 0 {
				a.exiting = nil
				a.enter(plan)
			}
		}))
	}
}

func (a *animator[T]) enter(plan planner[T]) {
	records, placements := plan()
	if len(records) != len(placements) {
		panic(contractf("transition got %d records for %d placements", len(records), len(placements)))
	}
	fresh := a.pool.sync(records, placements)
	if len(fresh) == 0 {
		a.finish()
		return
	}
	a.state = stateEntering
	a.pending = len(fresh)
	if a.onEnter != nil {
		a.onEnter(len(fresh))
	}
	for _, px := range fresh {
		px.phase = PhaseEntering
		a.sched.Add(a.slide(px, px.target, func(px *Proxy[T]) {
			px.phase = PhaseSettled
			a.pending--
			if a.pending == 0 {
				a.finish()
			}
		}))
	}
}

func (a *animator[T]) finish() {
	a.state = stateIdle
	a.pending = 0
	done := a.done
	a.done = nil
	if done != nil {
		done()
	}
}

func (a *animator[T]) slide(px *Proxy[T], to r3.Vec, settled func(*Proxy[T])) *anim.Tween {
	return &anim.Tween{
		From:     px.position,
		To:       to,
		Duration: a.duration,
		Start:    a.sched.FrameTime(),
		Apply:    func(v r3.Vec) { px.position = v },
		OnDone:   func() { settled(px) },
	}
}

func (a *animator[T]) outgoing() []*Proxy[T] {
	return append([]*Proxy[T](nil), a.exiting...)
}

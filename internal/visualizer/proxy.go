package visualizer

import (
	"fmt"
	"sync/atomic"

	"gonum.org/v1/gonum/spatial/r3"
)

// Handle identifies one proxy. Handles are never reused within a process.
type Handle uint64

func (h Handle) String() string {
	return fmt.Sprintf("proxy-%d", uint64(h))
}

var handleSeq atomic.Uint64

func nextHandle() Handle {
	return Handle(handleSeq.Add(1))
}

// Phase is where a proxy is in its lifecycle.
type Phase int

const (
	PhaseStaged Phase = iota
	PhaseEntering
	PhaseSettled
	PhaseExiting
	PhaseDestroyed
)

func (p Phase) String() string {
	switch p {
	case PhaseStaged:
		return "staged"
	case PhaseEntering:
		return "entering"
	case PhaseSettled:
		return "settled"
	case PhaseExiting:
		return "exiting"
	case PhaseDestroyed:
		return "destroyed"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// Proxy is the scene object standing for one record.
type Proxy[T any] struct {
	handle      Handle
	record      T
	owner       *Visualizer[T]
	index       int
	position    r3.Vec
	target      r3.Vec
	orientation r3.Rotation
	phase       Phase
}

func (p *Proxy[T]) Handle() Handle {
	return p.handle
}

func (p *Proxy[T]) Record() T {
	return p.record
}

func (p *Proxy[T]) Owner() *Visualizer[T] {
	return p.owner
}

func (p *Proxy[T]) Index() int {
	return p.index
}

func (p *Proxy[T]) Position() r3.Vec {
	return p.position
}

func (p *Proxy[T]) Target() r3.Vec {
	return p.target
}

func (p *Proxy[T]) Orientation() r3.Rotation {
	return p.orientation
}

func (p *Proxy[T]) Phase() Phase {
	return p.phase
}

func (p *Proxy[T]) Destroyed() bool {
	return p.phase == PhaseDestroyed
}

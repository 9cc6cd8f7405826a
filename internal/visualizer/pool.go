package visualizer

import (
	"github.com/atomicstack/orgverse/internal/scene"
	"gonum.org/v1/gonum/spatial/r3"
)

// pool owns the proxies of the page currently on screen. Proxies handed to
// the animator by release stay addressable until destroy.
type pool[T any] struct {
	owner       *Visualizer[T]
	entryOffset r3.Vec
	live        []*Proxy[T]
	known       map[Handle]*Proxy[T]
}

func newPool[T any](owner *Visualizer[T], entryOffset r3.Vec) *pool[T] {
	return &pool[T]{
		owner:       owner,
		entryOffset: entryOffset,
		known:       make(map[Handle]*Proxy[T]),
	}
}

// sync destroys the proxies from the previous call and spawns one staged
// proxy per record/placement pair.
func (p *pool[T]) sync(records []T, placements []scene.Placement) []*Proxy[T] {
	if len(records) != len(placements) {
		panic(contractf("pool sync got %d records for %d placements", len(records), len(placements)))
	}
	for _, px := range p.live {
		p.destroy(px)
	}
	p.live = nil
	if len(records) == 0 {
		return nil
	}
	fresh := make([]*Proxy[T], len(records))
	for i, rec := range records {
		pl := placements[i]
		px := &Proxy[T]{
			handle:      nextHandle(),
			record:      rec,
			owner:       p.owner,
			index:       pl.Index,
			position:    scene.Offset(pl.Position, p.entryOffset),
			target:      pl.Position,
			orientation: pl.Orientation,
			phase:       PhaseStaged,
		}
		p.known[px.handle] = px
		fresh[i] = px
	}
	p.live = fresh
	return append([]*Proxy[T](nil), fresh...)
}

// release gives up ownership of the live proxies without destroying them.
func (p *pool[T]) release() []*Proxy[T] {
	out := p.live
	p.live = nil
	return out
}

func (p *pool[T]) destroy(px *Proxy[T]) {
	px.phase = PhaseDestroyed
	delete(p.known, px.handle)
}

func (p *pool[T]) lookup(h Handle) (*Proxy[T], bool) {
	px, ok := p.known[h]
	return px, ok
}

func (p *pool[T]) current() []*Proxy[T] {
	return append([]*Proxy[T](nil), p.live...)
}

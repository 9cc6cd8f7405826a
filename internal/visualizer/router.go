package visualizer

import "fmt"

// router forwards a selected proxy's record to the presenter. Proxies that
// are still entering or already exiting are accepted; only the payload
// matters, not where the proxy currently is.
type router[T any] struct {
	owner     *Visualizer[T]
	pool      *pool[T]
	presenter DetailPresenter[T]
}

func (r *router[T]) route(px *Proxy[T]) error {
	if px == nil {
		return fmt.Errorf("%w: nil proxy", ErrUnknownProxy)
	}
	if px.owner != r.owner {
		return fmt.Errorf("%w: %s belongs to another visualizer", ErrUnknownProxy, px.handle)
	}
	known, ok := r.pool.lookup(px.handle)
	if !ok || known != px {
		return fmt.Errorf("%w: %s is %s", ErrUnknownProxy, px.handle, px.phase)
	}
	r.presenter.Show(px.record)
	return nil
}

func (r *router[T]) routeHandle(h Handle) (*Proxy[T], error) {
	px, ok := r.pool.lookup(h)
	if !ok {
		return nil, fmt.Errorf("%w: no proxy with handle %s", ErrUnknownProxy, h)
	}
	return px, r.route(px)
}

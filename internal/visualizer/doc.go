// Package visualizer pages a record collection through a scene.
//
// A Visualizer[T] owns one collection. Each page change plans placements for
// the new window, slides the current proxies off along the exit offset and,
// once every exit has finished, spawns the next page's proxies at their staged
// position and slides them in. All motion is driven by an anim.Scheduler the
// host ticks once per frame, so NextPage and PreviousPage return immediately.
//
// Page requests that arrive mid-transition move the logical page right away;
// when the running transition settles, a single follow-up transition brings
// the scene to the latest page. Only one transition is ever in flight.
//
// Selection arrives as an opaque Handle (or the proxy itself) and is routed to
// the DetailPresenter. Input components hold the Paginator or Controller
// capability rather than a concrete Visualizer[T].
package visualizer

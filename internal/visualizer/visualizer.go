package visualizer

import (
	"fmt"

	"github.com/atomicstack/orgverse/internal/anim"
	"github.com/atomicstack/orgverse/internal/layout"
	"github.com/atomicstack/orgverse/internal/logging"
	"github.com/atomicstack/orgverse/internal/logging/events"
	"github.com/atomicstack/orgverse/internal/pager"
	"github.com/atomicstack/orgverse/internal/scene"
	"github.com/atomicstack/orgverse/internal/state"
	"gonum.org/v1/gonum/spatial/r3"
)

// Paginator is the capability page controls hold.
type Paginator interface {
	NextPage() bool
	PreviousPage() bool
	ClearDisplay()
}

// Pagination is the full façade for one record kind.
type Pagination[T any] interface {
	Paginator
	LoadData(records []T)
}

// Controller is what a scene host needs to drive any visualizer without
// knowing its record type.
type Controller interface {
	Paginator
	Kind() string
	Options() Options
	SelectHandle(h Handle) error
	Snapshot() Snapshot
	Busy() bool
}

// ProxyView is a read-only copy of one proxy for rendering.
type ProxyView struct {
	Handle      Handle
	Label       string
	Index       int
	Position    r3.Vec
	Orientation r3.Rotation
	Phase       Phase
}

// Snapshot describes what a visualizer currently shows.
type Snapshot struct {
	Kind    string
	Page    int
	Pages   int
	Total   int
	Window  pager.Window
	Busy    bool
	Anchor  r3.Vec
	Proxies []ProxyView
}

// Params wires a Visualizer.
type Params[T any] struct {
	Kind      string
	Options   Options
	Scheduler *anim.Scheduler
	Presenter DetailPresenter[T]
	Label     func(T) string
}

// Visualizer pages one record collection through the scene.
type Visualizer[T any] struct {
	kind   string
	opts   Options
	store  state.RecordStore[T]
	policy layout.Policy
	label  func(T) string

	pool   *pool[T]
	anim   *animator[T]
	router *router[T]

	shownPage int
	shownGen  uint64
}

var (
	_ Controller           = (*Visualizer[struct{}])(nil)
	_ Pagination[struct{}] = (*Visualizer[struct{}])(nil)
)

// New builds an empty visualizer. A nil Scheduler gets a private one, a nil
// Presenter discards output and a nil Label formats records with %v.
func New[T any](p Params[T]) *Visualizer[T] {
	sched := p.Scheduler
	if sched == nil {
		sched = anim.NewScheduler()
	}
	presenter := p.Presenter
	if presenter == nil {
		presenter = nopPresenter[T]{}
	}
	label := p.Label
	if label == nil {
		label = func(rec T) string { return fmt.Sprint(rec) }
	}
	v := &Visualizer[T]{
		kind:   p.Kind,
		opts:   p.Options,
		store:  state.NewRecordStore[T](),
		policy: p.Options.policy(),
		label:  label,
	}
	v.pool = newPool(v, p.Options.EntryOffset())
	v.anim = &animator[T]{
		sched:      sched,
		pool:       v.pool,
		duration:   p.Options.SlideDuration,
		exitOffset: p.Options.ExitOffset(),
		onExit:     func(n int) { events.Transition.Exit(v.kind, v.shownPage, n) },
		onEnter:    func(n int) { events.Transition.Enter(v.kind, v.shownPage, n) },
	}
	v.router = &router[T]{owner: v, pool: v.pool, presenter: presenter}
	return v
}

func (v *Visualizer[T]) Kind() string {
	return v.kind
}

func (v *Visualizer[T]) Options() Options {
	return v.opts
}

// LoadData replaces the collection, rewinds to page 0, respawns and clears
// the detail display.
func (v *Visualizer[T]) LoadData(records []T) {
	v.store.Replace(records)
	events.Data.Load(v.kind, len(records))
	v.render()
	v.ClearDisplay()
}

// NextPage advances one page. At the last page it reports false and leaves
// state untouched.
func (v *Visualizer[T]) NextPage() bool {
	page := v.store.Page()
	if !pager.CanAdvance(v.store.Len(), v.opts.PageSize, page) {
		events.Page.Boundary(v.kind, page, events.PageReasonLastPage)
		return false
	}
	v.store.SetPage(page + 1)
	events.Page.Change(v.kind, page, page+1)
	v.render()
	return true
}

// PreviousPage steps back one page. On the first page it reports false.
func (v *Visualizer[T]) PreviousPage() bool {
	page := v.store.Page()
	if !pager.CanRetreat(page) {
		events.Page.Boundary(v.kind, page, events.PageReasonFirstPage)
		return false
	}
	v.store.SetPage(page - 1)
	events.Page.Change(v.kind, page, page-1)
	v.render()
	return true
}

// ClearDisplay empties the detail surface. Proxies are left alone.
func (v *Visualizer[T]) ClearDisplay() {
	v.router.presenter.Clear()
	events.Selection.Clear(v.kind)
}

// Select routes px's record to the presenter.
func (v *Visualizer[T]) Select(px *Proxy[T]) error {
	if err := v.router.route(px); err != nil {
		v.rejected(err)
		return err
	}
	events.Selection.Show(v.kind, px.handle.String(), v.label(px.record))
	return nil
}

// SelectHandle routes the proxy identified by h.
func (v *Visualizer[T]) SelectHandle(h Handle) error {
	px, err := v.router.routeHandle(h)
	if err != nil {
		v.rejected(err)
		return err
	}
	events.Selection.Show(v.kind, h.String(), v.label(px.record))
	return nil
}

func (v *Visualizer[T]) rejected(err error) {
	events.Selection.Reject(v.kind, err)
	logging.Error(fmt.Errorf("%s selection: %w", v.kind, err))
}

// Page returns the logical page, which may run ahead of the scene while a
// transition is in flight.
func (v *Visualizer[T]) Page() int {
	return v.store.Page()
}

// Window returns the record range of the logical page.
func (v *Visualizer[T]) Window() pager.Window {
	return pager.WindowFor(v.store.Len(), v.opts.PageSize, v.store.Page())
}

// Records returns a copy of the whole collection.
func (v *Visualizer[T]) Records() []T {
	return v.store.Records()
}

// Len returns the collection size.
func (v *Visualizer[T]) Len() int {
	return v.store.Len()
}

// Proxies returns the proxies the pool owns for the current scene page.
func (v *Visualizer[T]) Proxies() []*Proxy[T] {
	return v.pool.current()
}

// Outgoing returns the proxies still sliding off from the previous page.
func (v *Visualizer[T]) Outgoing() []*Proxy[T] {
	return v.anim.outgoing()
}

// Busy reports whether a transition is in flight.
func (v *Visualizer[T]) Busy() bool {
	return v.anim.busy()
}

func (v *Visualizer[T]) Snapshot() Snapshot {
	snap := Snapshot{
		Kind:   v.kind,
		Page:   v.store.Page(),
		Pages:  pager.PageCount(v.store.Len(), v.opts.PageSize),
		Total:  v.store.Len(),
		Window: v.Window(),
		Busy:   v.anim.busy(),
		Anchor: v.opts.Anchor,
	}
	for _, px := range v.anim.outgoing() {
		snap.Proxies = append(snap.Proxies, v.view(px))
	}
	for _, px := range v.pool.current() {
		snap.Proxies = append(snap.Proxies, v.view(px))
	}
	return snap
}

func (v *Visualizer[T]) view(px *Proxy[T]) ProxyView {
	return ProxyView{
		Handle:      px.handle,
		Label:       v.label(px.record),
		Index:       px.index,
		Position:    px.position,
		Orientation: px.orientation,
		Phase:       px.phase,
	}
}

func (v *Visualizer[T]) render() {
	if v.anim.busy() {
		events.Page.Coalesce(v.kind, v.shownPage, v.store.Page())
		return
	}
	v.transition()
}

func (v *Visualizer[T]) transition() {
	page := v.store.Page()
	window := pager.WindowFor(v.store.Len(), v.opts.PageSize, page)
	events.Transition.Start(v.kind, page, window.Start, window.End)
	v.anim.run(v.plan, v.settled)
}

// plan reads the store when the entries begin. A LoadData or page change
// during the exit phase is therefore what enters, and settled has nothing
// left to catch up on.
func (v *Visualizer[T]) plan() ([]T, []scene.Placement) {
	page := v.store.Page()
	window := pager.WindowFor(v.store.Len(), v.opts.PageSize, page)
	var records []T
	if !window.Empty() {
		records = v.store.Records()[window.Start:window.End]
	}
	v.shownPage = page
	v.shownGen = v.store.Generation()
	return records, layout.PlacementsFor(window, v.policy)
}

func (v *Visualizer[T]) settled() {
	events.Transition.Settled(v.kind, v.shownPage)
	if v.store.Page() != v.shownPage || v.store.Generation() != v.shownGen {
		v.transition()
	}
}

package backend

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/atomicstack/orgverse/internal/logging/events"
	"github.com/atomicstack/orgverse/internal/stats"
	"github.com/fsnotify/fsnotify"
)

// DefaultInterval is the polling period when none is given.
const DefaultInterval = 1500 * time.Millisecond

// Kind represents the type of data carried by an Event.
type Kind int

const (
	// KindStats carries a stats.Document read from disk.
	KindStats Kind = iota
	// KindFetch carries a stats.Document collected from GitHub.
	KindFetch
)

func (k Kind) String() string {
	if k == KindFetch {
		return "fetch"
	}
	return "stats"
}

// Event conveys a loaded document or the error that prevented loading it.
type Event struct {
	Kind Kind
	Path string
	Data interface{}
	Err  error
}

// Document returns the event's document, if it carries one.
func (e Event) Document() (stats.Document, bool) {
	doc, ok := e.Data.(stats.Document)
	return doc, ok
}

// Watcher loads a stats file once and again whenever it changes. Change
// notifications come from fsnotify; when the parent directory cannot be
// watched it falls back to polling the file's modification time.
type Watcher struct {
	path     string
	interval time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	events    chan Event
	reloads   chan struct{}
	debouncer *Debouncer
	throttle  *throttle
	wg        sync.WaitGroup
}

// NewWatcher starts watching path. interval is the polling period used
// when fsnotify is unavailable and the minimum spacing between reloads.
func NewWatcher(path string, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = DefaultInterval
	}
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		path:      path,
		interval:  interval,
		ctx:       ctx,
		cancel:    cancel,
		events:    make(chan Event, 16),
		reloads:   make(chan struct{}, 1),
		debouncer: NewDebouncer(0),
		throttle:  newThrottle(interval / 4),
	}

	w.emit()
	events.Watch.Start(path)

	fsw, err := w.startNotify()
	w.wg.Add(1)
	if err != nil {
		events.Watch.Error(err)
		go w.poll()
	} else {
		go w.notify(fsw)
	}

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w
}

// Events returns a channel of load events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher. Use Wait for a clean drain.
func (w *Watcher) Stop() {
	w.debouncer.Cancel()
	w.cancel()
}

// Wait blocks until the watch goroutine exits and the events channel is
// closed.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

// Load reads path once and wraps the outcome in an Event.
func Load(path string) Event {
	doc, err := stats.Load(path)
	if err != nil {
		events.Data.Unavailable(path, err)
		return Event{Kind: KindStats, Path: path, Err: err}
	}
	events.Data.Read(path, doc.Counts())
	return Event{Kind: KindStats, Path: path, Data: doc}
}

func (w *Watcher) emit() bool {
	if !w.throttle.wait(w.ctx) {
		return false
	}
	evt := Load(w.path)
	select {
	case <-w.ctx.Done():
		return false
	case w.events <- evt:
		return true
	}
}

// requestReload runs on the debouncer's timer; the reload itself happens on
// the watch goroutine so nothing sends after the events channel closes.
func (w *Watcher) requestReload() {
	select {
	case w.reloads <- struct{}{}:
	default:
	}
}

func (w *Watcher) startNotify() (*fsnotify.Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(w.path)
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, err
	}
	return fsw, nil
}

func (w *Watcher) notify(fsw *fsnotify.Watcher) {
	defer w.wg.Done()
	defer fsw.Close()

	target := filepath.Clean(w.path)
	for {
		select {
		case <-w.ctx.Done():
			return
		case ev, ok := <-fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
				continue
			}
			events.Watch.Change(ev.Name, ev.Op.String())
			w.debouncer.Trigger(w.requestReload)
		case <-w.reloads:
			events.Watch.Reload(w.path)
			if !w.emit() {
				return
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			events.Watch.Error(err)
		}
	}
}

func (w *Watcher) poll() {
	defer w.wg.Done()

	last := w.stamp()
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			current := w.stamp()
			if current == last {
				continue
			}
			last = current
			events.Watch.Change(w.path, "poll")
			if !w.emit() {
				return
			}
		}
	}
}

type fileStamp struct {
	modTime time.Time
	size    int64
	exists  bool
}

func (w *Watcher) stamp() fileStamp {
	info, err := os.Stat(w.path)
	if err != nil {
		return fileStamp{}
	}
	return fileStamp{modTime: info.ModTime(), size: info.Size(), exists: true}
}

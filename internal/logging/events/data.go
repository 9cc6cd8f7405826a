package events

import "github.com/atomicstack/orgverse/internal/logging"

type DataTracer struct{}

type FetchTracer struct{}

type WatchTracer struct{}

var (
	Data  = DataTracer{}
	Fetch = FetchTracer{}
	Watch = WatchTracer{}
)

func (DataTracer) Load(kind string, count int) {
	logging.Trace("data.load", map[string]interface{}{"kind": kind, "count": count})
}

func (DataTracer) Read(path string, counts map[string]int) {
	logging.Trace("data.read", map[string]interface{}{"path": path, "counts": counts})
}

func (DataTracer) Unavailable(path string, err error) {
	payload := map[string]interface{}{"path": path}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("data.unavailable", payload)
}

func (FetchTracer) Start(org, repo string, authenticated bool) {
	logging.Trace("fetch.start", map[string]interface{}{"org": org, "repo": repo, "authenticated": authenticated})
}

func (FetchTracer) Request(url string, status int) {
	logging.Trace("fetch.request", map[string]interface{}{"url": url, "status": status})
}

func (FetchTracer) Skip(collection, reason string) {
	logging.Trace("fetch.skip", map[string]interface{}{"collection": collection, "reason": reason})
}

func (FetchTracer) Done(path string, counts map[string]int) {
	logging.Trace("fetch.done", map[string]interface{}{"path": path, "counts": counts})
}

func (FetchTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("fetch.error", map[string]interface{}{"error": err.Error()})
}

func (WatchTracer) Start(path string) {
	logging.Trace("watch.start", map[string]interface{}{"path": path})
}

func (WatchTracer) Change(path, op string) {
	logging.Trace("watch.change", map[string]interface{}{"path": path, "op": op})
}

func (WatchTracer) Reload(path string) {
	logging.Trace("watch.reload", map[string]interface{}{"path": path})
}

func (WatchTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("watch.error", map[string]interface{}{"error": err.Error()})
}

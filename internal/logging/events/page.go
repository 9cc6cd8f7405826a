package events

import "github.com/atomicstack/orgverse/internal/logging"

type PageTracer struct{}

type TransitionTracer struct{}

type pageReason string

const (
	PageReasonLastPage  pageReason = "last-page"
	PageReasonFirstPage pageReason = "first-page"
)

var (
	Page       = PageTracer{}
	Transition = TransitionTracer{}
)

func (PageTracer) Change(kind string, from, to int) {
	logging.Trace("page.change", map[string]interface{}{"kind": kind, "from": from, "to": to})
}

func (PageTracer) Boundary(kind string, page int, reason pageReason) {
	logging.Trace("page.boundary", map[string]interface{}{"kind": kind, "page": page, "reason": string(reason)})
}

func (PageTracer) Coalesce(kind string, shown, latest int) {
	logging.Trace("page.coalesce", map[string]interface{}{"kind": kind, "shown": shown, "latest": latest})
}

func (TransitionTracer) Start(kind string, page, start, end int) {
	logging.Trace("transition.start", map[string]interface{}{"kind": kind, "page": page, "start": start, "end": end})
}

func (TransitionTracer) Exit(kind string, page, count int) {
	logging.Trace("transition.exit", map[string]interface{}{"kind": kind, "page": page, "count": count})
}

func (TransitionTracer) Enter(kind string, page, count int) {
	logging.Trace("transition.enter", map[string]interface{}{"kind": kind, "page": page, "count": count})
}

func (TransitionTracer) Settled(kind string, page int) {
	logging.Trace("transition.settled", map[string]interface{}{"kind": kind, "page": page})
}

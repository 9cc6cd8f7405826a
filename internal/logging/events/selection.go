package events

import "github.com/atomicstack/orgverse/internal/logging"

type SelectionTracer struct{}

var Selection = SelectionTracer{}

func (SelectionTracer) Show(kind, handle, label string) {
	logging.Trace("selection.show", map[string]interface{}{"kind": kind, "handle": handle, "label": label})
}

func (SelectionTracer) Reject(kind string, err error) {
	if err == nil {
		return
	}
	logging.Trace("selection.reject", map[string]interface{}{"kind": kind, "error": err.Error()})
}

func (SelectionTracer) Clear(kind string) {
	logging.Trace("selection.clear", map[string]interface{}{"kind": kind})
}

func (SelectionTracer) Copy(kind string, lines int) {
	logging.Trace("selection.copy", map[string]interface{}{"kind": kind, "lines": lines})
}

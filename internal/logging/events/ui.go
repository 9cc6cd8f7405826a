package events

import "github.com/atomicstack/orgverse/internal/logging"

type UITracer struct{}

type FilterTracer struct{}

type ActionTracer struct{}

type CommandTracer struct{}

var (
	UI      = UITracer{}
	Filter  = FilterTracer{}
	Action  = ActionTracer{}
	Command = CommandTracer{}
)

func (UITracer) Screen(name string) {
	logging.Trace("ui.screen", map[string]interface{}{"screen": name})
}

func (UITracer) TabSwitch(from, to string) {
	logging.Trace("ui.tab", map[string]interface{}{"from": from, "to": to})
}

func (UITracer) Focus(tab string, focus int) {
	logging.Trace("ui.focus", map[string]interface{}{"tab": tab, "focus": focus})
}

func (UITracer) Click(tab string, x, y int, handle string) {
	logging.Trace("ui.click", map[string]interface{}{"tab": tab, "x": x, "y": y, "handle": handle})
}

func (ActionTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("action.error", map[string]interface{}{"error": err.Error()})
}

func (ActionTracer) Success(info string) {
	logging.Trace("action.success", map[string]interface{}{"info": info})
}

func (FilterTracer) Start(tab string) {
	logging.Trace("filter.start", map[string]interface{}{"tab": tab})
}

func (FilterTracer) Cleared(tab string) {
	logging.Trace("filter.clear", map[string]interface{}{"tab": tab})
}

func (FilterTracer) Apply(tab, filter string, matches int) {
	logging.Trace("filter.apply", map[string]interface{}{"tab": tab, "filter": filter, "matches": matches})
}

func (FilterTracer) WordBackspace(tab, filter string) {
	logging.Trace("filter.word-backspace", map[string]interface{}{"tab": tab, "filter": filter})
}

func (FilterTracer) Cursor(tab string, pos int) {
	logging.Trace("filter.cursor", map[string]interface{}{"tab": tab, "cursor": pos})
}

func (FilterTracer) CursorWord(tab string, pos int) {
	logging.Trace("filter.cursor-word", map[string]interface{}{"tab": tab, "cursor": pos})
}

func (FilterTracer) Append(tab, filter string) {
	logging.Trace("filter.append", map[string]interface{}{"tab": tab, "filter": filter})
}

func (FilterTracer) Backspace(tab, filter string) {
	logging.Trace("filter.backspace", map[string]interface{}{"tab": tab, "filter": filter})
}

func (CommandTracer) Queue(id, label string) {
	logging.Trace("command.queue", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Skip(id, label string) {
	logging.Trace("command.skip", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Result(id, label, msgType string) {
	logging.Trace("command.result", map[string]interface{}{"id": id, "label": label, "msg": msgType})
}

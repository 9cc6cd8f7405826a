package state

// Tab holds the view state of one collection: the record filter and the
// focused proxy on the current page.
type Tab struct {
	ID           string
	Title        string
	Labels       []string
	Matches      []int
	Filter       string
	FilterCursor int
	Filtering    bool
	Focus        int
	LastFocus    int
}

// NewTab constructs a Tab over the given record labels.
func NewTab(id, title string, labels []string) *Tab {
	t := &Tab{
		ID:        id,
		Title:     title,
		Focus:     -1,
		LastFocus: -1,
	}
	t.SetLabels(labels)
	return t
}

// SetLabels replaces the record labels and re-applies the current filter.
func (t *Tab) SetLabels(labels []string) {
	t.Labels = append([]string(nil), labels...)
	t.applyFilter()
}

// Filtered reports whether a non-empty filter narrows the records.
func (t *Tab) Filtered() bool {
	return t.Matches != nil
}

// Visible returns how many records survive the filter.
func (t *Tab) Visible() int {
	if t.Matches == nil {
		return len(t.Labels)
	}
	return len(t.Matches)
}

// Record maps a filtered position back to its index in Labels.
func (t *Tab) Record(pos int) int {
	if t.Matches == nil {
		if pos < 0 || pos >= len(t.Labels) {
			return -1
		}
		return pos
	}
	if pos < 0 || pos >= len(t.Matches) {
		return -1
	}
	return t.Matches[pos]
}

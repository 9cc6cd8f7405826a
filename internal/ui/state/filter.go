package state

import (
	"strings"
	"unicode"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// SetFilter updates the filter query and cursor position. Focus jumps to the
// best match while filtering and returns to where it was once cleared.
func (t *Tab) SetFilter(query string, cursor int) {
	trimmed := strings.TrimSpace(query)
	prevTrimmed := strings.TrimSpace(t.Filter)
	t.Filter = query
	runes := []rune(t.Filter)
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(runes) {
		cursor = len(runes)
	}
	t.FilterCursor = cursor
	if trimmed != "" && prevTrimmed == "" {
		t.LastFocus = t.Focus
	}
	t.applyFilter()
	switch {
	case trimmed != "":
		labels := make([]string, 0, len(t.Matches))
		for _, idx := range t.Matches {
			labels = append(labels, t.Labels[idx])
		}
		t.Focus = BestMatchIndex(labels, trimmed)
	case prevTrimmed != "":
		t.Focus = t.LastFocus
		t.LastFocus = -1
	}
}

// ClearFilter drops the query and leaves filter editing.
func (t *Tab) ClearFilter() bool {
	t.Filtering = false
	if t.Filter == "" {
		return false
	}
	t.SetFilter("", 0)
	return true
}

func (t *Tab) applyFilter() {
	t.Matches = MatchIndices(t.Labels, t.Filter)
}

// FilterCursorPos returns the rune offset of the filter cursor.
func (t *Tab) FilterCursorPos() int {
	runes := []rune(t.Filter)
	if t.FilterCursor < 0 {
		return 0
	}
	if t.FilterCursor > len(runes) {
		return len(runes)
	}
	return t.FilterCursor
}

// InsertFilterText inserts text into the filter at the cursor position.
func (t *Tab) InsertFilterText(text string) bool {
	if text == "" {
		return false
	}
	insert := []rune(text)
	if len(insert) == 0 {
		return false
	}
	runes := []rune(t.Filter)
	pos := t.FilterCursorPos()
	updated := make([]rune, 0, len(runes)+len(insert))
	updated = append(updated, runes[:pos]...)
	updated = append(updated, insert...)
	updated = append(updated, runes[pos:]...)
	t.SetFilter(string(updated), pos+len(insert))
	return true
}

// DeleteFilterRuneBackward deletes a rune before the filter cursor.
func (t *Tab) DeleteFilterRuneBackward() bool {
	runes := []rune(t.Filter)
	pos := t.FilterCursorPos()
	if pos == 0 || len(runes) == 0 {
		return false
	}
	updated := append(runes[:pos-1], runes[pos:]...)
	t.SetFilter(string(updated), pos-1)
	return true
}

// DeleteFilterWordBackward deletes the word preceding the cursor.
func (t *Tab) DeleteFilterWordBackward() bool {
	runes := []rune(t.Filter)
	pos := t.FilterCursorPos()
	if pos == 0 || len(runes) == 0 {
		return false
	}
	i := pos
	for i > 0 && unicode.IsSpace(runes[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(runes[i-1]) {
		i--
	}
	updated := append(runes[:i], runes[pos:]...)
	t.SetFilter(string(updated), i)
	return true
}

// MoveFilterCursorStart moves the filter cursor to the start.
func (t *Tab) MoveFilterCursorStart() bool {
	if t.FilterCursorPos() == 0 {
		return false
	}
	t.FilterCursor = 0
	return true
}

// MoveFilterCursorEnd moves the filter cursor to the end.
func (t *Tab) MoveFilterCursorEnd() bool {
	end := len([]rune(t.Filter))
	if t.FilterCursorPos() == end {
		return false
	}
	t.FilterCursor = end
	return true
}

// MoveFilterCursorWordBackward moves the filter cursor one word backward.
func (t *Tab) MoveFilterCursorWordBackward() bool {
	runes := []rune(t.Filter)
	pos := t.FilterCursorPos()
	if pos == 0 || len(runes) == 0 {
		return false
	}
	i := pos
	for i > 0 && unicode.IsSpace(runes[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(runes[i-1]) {
		i--
	}
	if i == pos {
		return false
	}
	t.FilterCursor = i
	return true
}

// MoveFilterCursorWordForward moves the filter cursor one word forward.
func (t *Tab) MoveFilterCursorWordForward() bool {
	runes := []rune(t.Filter)
	pos := t.FilterCursorPos()
	if pos >= len(runes) {
		return false
	}
	i := pos
	for i < len(runes) && !unicode.IsSpace(runes[i]) {
		i++
	}
	for i < len(runes) && unicode.IsSpace(runes[i]) {
		i++
	}
	if i == pos {
		return false
	}
	t.FilterCursor = i
	return true
}

// MoveFilterCursorRuneBackward moves the filter cursor one rune backward.
func (t *Tab) MoveFilterCursorRuneBackward() bool {
	if t.FilterCursorPos() == 0 {
		return false
	}
	t.FilterCursor = t.FilterCursorPos() - 1
	return true
}

// MoveFilterCursorRuneForward moves the filter cursor one rune forward.
func (t *Tab) MoveFilterCursorRuneForward() bool {
	runes := []rune(t.Filter)
	pos := t.FilterCursorPos()
	if pos >= len(runes) {
		return false
	}
	t.FilterCursor = pos + 1
	return true
}

// MatchIndices returns the indices of labels matching query in label order.
// An empty query yields nil; a query nothing matches yields an empty slice.
func MatchIndices(labels []string, query string) []int {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return nil
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, labels)
	if len(ranks) > 0 {
		matches := make(map[int]struct{}, len(ranks))
		for _, rank := range ranks {
			matches[rank.OriginalIndex] = struct{}{}
		}
		out := make([]int, 0, len(matches))
		for idx := range labels {
			if _, ok := matches[idx]; ok {
				out = append(out, idx)
			}
		}
		return out
	}
	lower := strings.ToLower(trimmed)
	out := make([]int, 0)
	for idx, label := range labels {
		if strings.Contains(strings.ToLower(label), lower) {
			out = append(out, idx)
		}
	}
	return out
}

// BestMatchIndex returns the best index for the query among labels: an exact
// match, then a prefix, then a substring, then the closest fuzzy rank.
func BestMatchIndex(labels []string, query string) int {
	if len(labels) == 0 {
		return -1
	}
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return 0
	}
	lower := strings.ToLower(trimmed)
	for i, label := range labels {
		if strings.EqualFold(label, trimmed) {
			return i
		}
	}
	for i, label := range labels {
		if strings.HasPrefix(strings.ToLower(label), lower) {
			return i
		}
	}
	for i, label := range labels {
		if strings.Contains(strings.ToLower(label), lower) {
			return i
		}
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, labels)
	if len(ranks) == 0 {
		return 0
	}
	best := ranks[0]
	for _, rank := range ranks[1:] {
		if rank.Distance < best.Distance || (rank.Distance == best.Distance && rank.OriginalIndex < best.OriginalIndex) {
			best = rank
		}
	}
	if best.OriginalIndex < 0 || best.OriginalIndex >= len(labels) {
		return 0
	}
	return best.OriginalIndex
}

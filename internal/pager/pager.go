// Package pager maps record counts and page indices to contiguous index
// windows. Every function is pure; out-of-range requests yield empty windows
// instead of errors so pagination stays an idempotent no-op at the edges.
package pager

// Window is the half-open record index range [Start, End) shown on a page.
type Window struct {
	Start int
	End   int
}

// Len returns the number of records inside the window.
func (w Window) Len() int {
	if w.End < w.Start {
		return 0
	}
	return w.End - w.Start
}

// Empty reports whether the window holds no records.
func (w Window) Empty() bool {
	return w.Len() == 0
}

// WindowFor returns the window for page. A page beyond the data, or a
// negative page, yields {total, total}; a non-positive page size yields an
// empty window at the origin.
func WindowFor(total, pageSize, page int) Window {
	if total < 0 {
		total = 0
	}
	if pageSize <= 0 {
		return Window{}
	}
	if page < 0 {
		return Window{Start: total, End: total}
	}
	start := page * pageSize
	if start >= total || start < 0 {
		return Window{Start: total, End: total}
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return Window{Start: start, End: end}
}

// CanAdvance reports whether a page exists after page.
func CanAdvance(total, pageSize, page int) bool {
	if pageSize <= 0 || page < 0 {
		return false
	}
	return (page+1)*pageSize < total
}

// CanRetreat reports whether a page exists before page.
func CanRetreat(page int) bool {
	return page > 0
}

// PageCount returns how many pages total records occupy. Zero records
// still count as one (empty) page.
func PageCount(total, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 1
	}
	return (total + pageSize - 1) / pageSize
}

package ui

import (
	"math"
	"sort"
	"strings"

	"github.com/atomicstack/orgverse/internal/format/table"
	"github.com/atomicstack/orgverse/internal/scene"
	"github.com/atomicstack/orgverse/internal/visualizer"
	"github.com/charmbracelet/lipgloss"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	maxLabelWidth  = 18
	minLabelWidth  = 4
	minColsPerUnit = 4.0
	maxColsPerUnit = 24.0
	maxRowsPerUnit = 3.0
	proxyMarker    = "◆ "
	exitMarker     = "◇ "
)

// camera projects the scene top-down onto the canvas: X runs across the
// columns, Z (and Y, folded in) runs down the rows.
type camera struct {
	center r3.Vec
	cols   float64
	rows   float64
	label  int
	width  int
	height int
}

func cameraFor(opts visualizer.Options, width, height int) camera {
	span := opts.Spacing * float64(max(opts.PageSize-1, 0))
	center := opts.Anchor
	if !opts.Centered {
		center = r3.Add(center, r3.Scale(span/2, opts.Axis.Unit()))
	}
	cam := camera{center: center, cols: minColsPerUnit, rows: 1, label: maxLabelWidth, width: width, height: height}
	if span <= 0 {
		return cam
	}
	switch opts.Axis {
	case scene.AxisX:
		cam.cols = clampf(float64(width-maxLabelWidth)/span, minColsPerUnit, maxColsPerUnit)
		if opts.Spacing > 0 {
			cam.label = min(maxLabelWidth, max(minLabelWidth, int(cam.cols*opts.Spacing)-1))
		}
	default:
		cam.rows = clampf(float64(height-1)/span, 1, maxRowsPerUnit)
	}
	return cam
}

// project returns the canvas cell where a label for v starts.
func (c camera) project(v r3.Vec) (col, row int) {
	d := r3.Sub(v, c.center)
	col = c.width/2 - c.label/2 + int(math.Round(d.X*c.cols))
	row = c.height/2 + int(math.Round((d.Z+d.Y)*c.rows))
	return col, row
}

type projected struct {
	view    visualizer.ProxyView
	col     int
	row     int
	text    string
	focused bool
}

func (p projected) contains(col, row int) bool {
	return row == p.row && col >= p.col && col < p.col+len([]rune(p.text))
}

func clampf(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// focusable returns the proxies of the current scene page, in page order.
// Proxies still sliding off are visible but not focusable.
func (m *Model) focusable() []visualizer.ProxyView {
	c := m.currentCollection()
	if c == nil {
		return nil
	}
	snap := c.Controller().Snapshot()
	out := make([]visualizer.ProxyView, 0, len(snap.Proxies))
	for _, px := range snap.Proxies {
		if px.Phase == visualizer.PhaseExiting || px.Phase == visualizer.PhaseDestroyed {
			continue
		}
		out = append(out, px)
	}
	return out
}

// projectScene lays the current snapshot onto a canvas of the given size.
func (m *Model) projectScene(width, height int) (visualizer.Snapshot, []projected) {
	c := m.currentCollection()
	if c == nil {
		return visualizer.Snapshot{}, nil
	}
	ctrl := c.Controller()
	snap := ctrl.Snapshot()
	cam := cameraFor(ctrl.Options(), width, height)
	var focused visualizer.Handle
	if t := m.currentTab(); t != nil {
		if views := m.focusable(); t.Focus >= 0 && t.Focus < len(views) {
			focused = views[t.Focus].Handle
		}
	}
	out := make([]projected, 0, len(snap.Proxies))
	for _, px := range snap.Proxies {
		if px.Phase == visualizer.PhaseDestroyed {
			continue
		}
		col, row := cam.project(px.Position)
		marker := proxyMarker
		if px.Phase == visualizer.PhaseExiting {
			marker = exitMarker
		}
		out = append(out, projected{
			view:    px,
			col:     col,
			row:     row,
			text:    marker + table.Fit(px.Label, cam.label-len([]rune(marker)), "…"),
			focused: px.Handle == focused && focused != 0,
		})
	}
	return snap, out
}

// hitTest returns the proxy drawn at canvas cell (col, row). Current proxies
// win over ones still sliding off.
func hitTest(items []projected, col, row int) (visualizer.ProxyView, bool) {
	for i := len(items) - 1; i >= 0; i-- {
		if items[i].contains(col, row) {
			return items[i].view, true
		}
	}
	return visualizer.ProxyView{}, false
}

func proxyStyle(p projected) *lipgloss.Style {
	switch {
	case p.focused:
		return styles.FocusedProxy
	case p.view.Phase == visualizer.PhaseExiting:
		return styles.ExitingProxy
	case p.view.Phase == visualizer.PhaseSettled:
		return styles.Proxy
	default:
		return styles.EnteringProxy
	}
}

// renderCanvas draws the projected proxies into exactly height rows of width
// columns. Labels running off an edge are clipped; overlapping labels keep
// the leftmost.
func renderCanvas(items []projected, width, height int) []string {
	byRow := make(map[int][]projected, len(items))
	for _, it := range items {
		if it.row < 0 || it.row >= height {
			continue
		}
		byRow[it.row] = append(byRow[it.row], it)
	}
	rows := make([]string, height)
	for r := 0; r < height; r++ {
		row := byRow[r]
		sort.SliceStable(row, func(i, j int) bool { return row[i].col < row[j].col })
		var b strings.Builder
		pos := 0
		for _, it := range row {
			runes := []rune(it.text)
			start := it.col
			if start < pos {
				cut := pos - start
				if cut >= len(runes) {
					continue
				}
				runes = runes[cut:]
				start = pos
			}
			if start >= width {
				break
			}
			if avail := width - start; len(runes) > avail {
				runes = runes[:avail]
			}
			b.WriteString(strings.Repeat(" ", start-pos))
			text := string(runes)
			if style := proxyStyle(it); style != nil {
				text = style.Render(text)
			}
			b.WriteString(text)
			pos = start + len(runes)
		}
		if pos < width {
			b.WriteString(strings.Repeat(" ", width-pos))
		}
		rows[r] = b.String()
	}
	return rows
}

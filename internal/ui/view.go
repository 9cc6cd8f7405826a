package ui

import (
	"fmt"
	"strings"

	"github.com/atomicstack/orgverse/internal/collection"
	"github.com/atomicstack/orgverse/internal/format/table"
	"github.com/atomicstack/orgverse/internal/visualizer"
	"github.com/charmbracelet/bubbles/paginator"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

const (
	defaultWidth  = 80
	defaultHeight = 24

	headerRows = 2 // tab bar + page line
	bottomRows = 2 // status + prompt

	detailPanelMinWidth = 28
	detailPanelFraction = 0.4
	canvasMinWidth      = 30
	inlineDetailMinRows = 4
	maxDotPages         = 10
)

const sceneHelp = "←/→ page  ↑/↓ focus  enter show  / filter  c clear  y copy  tab switch  q quit"

type styledLine struct {
	text  string
	style *lipgloss.Style
	raw   bool // text contains ANSI escapes; skip style wrapping, use ANSI-aware truncation
}

// geometry is where the scene canvas and the detail panel sit on screen.
// The mouse handler hit-tests against the same numbers View draws with.
type geometry struct {
	width        int
	height       int
	canvasLeft   int
	canvasTop    int
	canvasWidth  int
	canvasHeight int
	panelWidth   int // side panel; 0 when the detail sits below the canvas
	inlineRows   int // detail rows below the canvas; 0 when beside it
}

func (m *Model) size() (int, int) {
	w, h := m.width, m.height
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}
	return w, h
}

func (m *Model) geometry() geometry {
	w, h := m.size()
	g := geometry{width: w, height: h, canvasTop: headerRows}
	body := max(h-headerRows-bottomRows, 1)
	g.canvasWidth = w
	g.canvasHeight = body
	if panel := int(float64(w) * detailPanelFraction); panel >= detailPanelMinWidth && w-panel >= canvasMinWidth {
		g.panelWidth = panel
		g.canvasWidth = w - panel
		return g
	}
	if rows := body / 3; rows >= inlineDetailMinRows {
		g.inlineRows = rows
		g.canvasHeight = body - rows
	}
	return g
}

// View implements tea.Model.
func (m *Model) View() string {
	switch m.screen {
	case ScreenStartup:
		return styles.Loading.Render("Loading stats…")
	case ScreenLoad:
		return m.viewLoadScreen()
	case ScreenCreate:
		return m.viewCreateScreen()
	}
	return m.viewScene()
}

func (m *Model) viewScene() string {
	g := m.geometry()
	c := m.currentCollection()
	if c == nil {
		return styles.Info.Render("No collections.")
	}
	snap, items := m.projectScene(g.canvasWidth, g.canvasHeight)

	header := applyWidth([]styledLine{
		{text: m.tabBar(), raw: true},
		{text: m.pageLine(c, snap, g.width), raw: true},
	}, g.width)

	canvas := renderCanvas(items, g.canvasWidth, g.canvasHeight)
	if len(items) == 0 && !snap.Busy {
		row := g.canvasHeight / 2
		canvas[row] = padRow(centerText(m.emptyMessage(), g.canvasWidth), g.canvasWidth, styles.Info)
	}
	body := strings.Join(canvas, "\n")
	switch {
	case g.panelWidth > 0:
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, renderDetailPanel(c, g.panelWidth, g.canvasHeight))
	case g.inlineRows > 0:
		body = body + "\n" + renderDetailPanel(c, g.width, g.inlineRows)
	}

	bottom := applyWidth([]styledLine{m.statusLine(), m.promptLine()}, g.width)
	return renderLines(header) + "\n" + body + "\n" + renderLines(bottom)
}

func (m *Model) tabBar() string {
	segments := make([]string, len(m.collections))
	for i, c := range m.collections {
		label := fmt.Sprintf("%s %d", c.Title(), c.Len())
		style := styles.Tab
		if i == m.active {
			style = styles.ActiveTab
		}
		segments[i] = style.Render(label)
	}
	return strings.Join(segments, "")
}

func (m *Model) pageLine(c *collection.Collection, snap visualizer.Snapshot, width int) string {
	parts := []string{styles.Header.Render(c.Title())}
	if dots := pageIndicator(snap, width); dots != "" {
		parts = append(parts, dots)
	}
	count := fmt.Sprintf("%d records", snap.Total)
	if t := m.currentTab(); t != nil && t.Filtered() {
		count = fmt.Sprintf("%d of %d records", t.Visible(), len(t.Labels))
	}
	parts = append(parts, styles.Info.Render(count))
	return strings.Join(parts, "  ")
}

// pageIndicator renders dots for short collections and "page n of m" once
// the dots stop fitting.
func pageIndicator(snap visualizer.Snapshot, width int) string {
	p := paginator.New()
	p.Type = paginator.Dots
	p.ActiveDot = styles.DotActive.Render("•")
	p.InactiveDot = styles.DotInactive.Render("◦")
	p.ArabicFormat = "page %d of %d"
	p.KeyMap = paginator.KeyMap{}
	p.TotalPages = max(snap.Pages, 1)
	p.Page = min(max(snap.Page, 0), p.TotalPages-1)
	if p.TotalPages > maxDotPages || p.TotalPages > width/4 {
		p.Type = paginator.Arabic
	}
	return p.View()
}

func (m *Model) emptyMessage() string {
	if t := m.currentTab(); t != nil && t.Filtered() {
		return fmt.Sprintf("No matches for %q", t.Filter)
	}
	return "No records."
}

func (m *Model) statusLine() styledLine {
	switch {
	case m.errMsg != "":
		return styledLine{text: fmt.Sprintf("Error: %s", m.errMsg), style: styles.Error}
	case m.loading:
		return styledLine{text: fmt.Sprintf("Loading %s…", m.pendingLabel), style: styles.Loading}
	}
	if info := m.currentInfo(); info != "" {
		return styledLine{text: info, style: styles.Info}
	}
	return styledLine{}
}

func (m *Model) promptLine() styledLine {
	t := m.currentTab()
	switch {
	case t != nil && t.Filtering:
		prompt, _ := m.filterPrompt()
		return styledLine{text: prompt, raw: true}
	case t != nil && t.Filter != "":
		return styledLine{text: fmt.Sprintf("filter %q  / edit  esc clear", t.Filter), style: styles.Filter}
	case m.showFooter:
		return styledLine{text: sceneHelp, style: styles.Footer}
	}
	return styledLine{}
}

// renderDetailPanel draws the collection's detail surface as a bordered box
// of exactly height rows and totalWidth columns.
func renderDetailPanel(c *collection.Collection, totalWidth, height int) string {
	const (
		tlc = "╭"
		trc = "╮"
		blc = "╰"
		brc = "╯"
		hz  = "─"
		vt  = "│"
	)
	innerW := max(totalWidth-2, 1)
	innerH := max(height-2, 1)

	surface := c.Surface()
	var content []string
	bodyStyle := styles.DetailBody
	if surface.Empty() {
		content = []string{"None selected"}
		bodyStyle = styles.DetailEmpty
	} else {
		rows := make([][]string, 0, len(surface.Fields()))
		for _, f := range surface.Fields() {
			if f.Label == "" {
				rows = append(rows, []string{f.Value})
				continue
			}
			rows = append(rows, []string{f.Label + ":", f.Value})
		}
		content = table.Format(rows, nil)
	}
	scrollSeg := ""
	if len(content) > innerH {
		scrollSeg = fmt.Sprintf(" %d/%d ", innerH, len(content))
		content = content[:innerH]
	}

	titleSeg := " Detail: " + c.Title() + " "
	dashes := totalWidth - 4 - lipgloss.Width(titleSeg) - lipgloss.Width(scrollSeg)
	if dashes < 0 {
		scrollSeg = ""
		dashes = totalWidth - 4 - lipgloss.Width(titleSeg)
	}
	if dashes < 0 {
		titleSeg = " … "
		dashes = totalWidth - 4 - lipgloss.Width(titleSeg)
	}
	dashes = max(dashes, 0)
	border := styles.PanelBorder
	top := border.Render(tlc+hz) +
		styles.DetailTitle.Render(titleSeg) +
		border.Render(strings.Repeat(hz, dashes)) +
		styles.Info.Render(scrollSeg) +
		border.Render(hz+trc)
	bottomLine := border.Render(blc + strings.Repeat(hz, innerW) + brc)

	rows := make([]string, 0, height)
	rows = append(rows, top)
	for i := 0; i < innerH; i++ {
		var line string
		if i < len(content) {
			line = content[i]
		}
		rows = append(rows, border.Render(vt)+padRow(line, innerW, bodyStyle)+border.Render(vt))
	}
	rows = append(rows, bottomLine)
	return strings.Join(rows, "\n")
}

// padRow truncates or pads text to exactly width visible columns.
func padRow(text string, width int, style *lipgloss.Style) string {
	w := lipgloss.Width(text)
	if w > width {
		text = truncate.StringWithTail(text, uint(max(width-1, 0)), "…")
		w = lipgloss.Width(text)
	}
	if w < width {
		text += strings.Repeat(" ", width-w)
	}
	if style != nil {
		return style.Render(text)
	}
	return text
}

func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	return nil
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			if lipgloss.Width(text) > width {
				text = truncate.StringWithTail(text, uint(width-1), "…")
			}
		} else {
			text = truncateText(text, width)
		}
		result[i] = styledLine{text: text, style: line.style, raw: line.raw}
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		if line.raw || line.style == nil {
			out[i] = line.text
			continue
		}
		out[i] = line.style.Render(line.text)
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width == 1 {
		return string(runes[:1])
	}
	return string(runes[:width-1]) + "…"
}

package accordion

import (
	"math"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/valsun2016/accordion/internal/textfx"
)

// listFrame is one fully laid-out render: the final lines plus where each
// panel's header and toggle glyph landed, so View and HitTest can never
// disagree about geometry.
type listFrame struct {
	lines      []string
	headerRows []int // absolute row of each panel's header, -1 if absent
	glyphLeft  []int // absolute column where each toggle glyph starts
	glyphWidth []int
}

func newListFrame(n int) listFrame {
	f := listFrame{
		headerRows: make([]int, n),
		glyphLeft:  make([]int, n),
		glyphWidth: make([]int, n),
	}
	for i := range f.headerRows {
		f.headerRows[i] = -1
	}
	return f
}

// sliceBlock is one panel's rows before the surface frame is drawn around
// them: margin rows, the header row, margin rows again, then the body.
type sliceBlock struct {
	index      int
	lines      []string
	headerRow  int
	glyphWidth int
}

// View renders the list. It is pure: the same panels, flags, and session
// positions always produce the same string.
func (m Model) View() string {
	return strings.Join(m.renderFrame().lines, "\n")
}

// Height returns the rendered row count.
func (m Model) Height() int {
	return len(m.renderFrame().lines)
}

// HitTest resolves list-local coordinates to a toggle target. The zone is
// the toggle glyph unless the model was built WithToggleOnHeader, in which
// case the whole header row responds.
func (m Model) HitTest(x, y int) (int, bool) {
	f := m.renderFrame()
	for i, row := range f.headerRows {
		if row != y {
			continue
		}
		if m.toggleOnHeader {
			if x >= 0 && x < m.innerWidth()+frameOverhead {
				return i, true
			}
			return 0, false
		}
		if x >= f.glyphLeft[i] && x < f.glyphLeft[i]+f.glyphWidth[i] {
			return i, true
		}
		return 0, false
	}
	return 0, false
}

// renderFrame lays out the whole list. Slices accumulate into runs; any
// boundary between neighbors with at least one visible gap row flushes the
// current run as its own bordered surface, so surfaces split exactly when a
// gap opens and merge back the moment it closes. A boundary can carry both
// an outgoing and an incoming gap mid-flight; the taller one wins, keeping
// the separation continuous through the handoff.
func (m Model) renderFrame() listFrame {
	f := newListFrame(len(m.panels))
	if len(m.panels) == 0 {
		return f
	}
	inner := m.innerWidth()
	var run []sliceBlock
	flush := func() {
		if len(run) == 0 {
			return
		}
		m.appendRun(&f, run, inner)
		run = nil
	}
	for i := range m.panels {
		if i > 0 {
			rows := m.gapBelowRows(i - 1)
			if r := m.gapAboveRows(i); r > rows {
				rows = r
			}
			if rows > 0 {
				flush()
				appendGapRows(&f, rows)
			}
		}
		run = append(run, m.sliceBlock(i, inner))
	}
	flush()
	return f
}

// appendRun frames one contiguous surface of slices, with divider rows
// between adjacent slices.
func (m Model) appendRun(f *listFrame, run []sliceBlock, inner int) {
	b := m.styles.Border
	fs := m.styles.Frame
	hbar := strings.Repeat(b.Top, inner+2)
	top := fs.Render(b.TopLeft + hbar + b.TopRight)
	divider := fs.Render(b.MiddleLeft + hbar + b.MiddleRight)
	bottom := fs.Render(b.BottomLeft + strings.Repeat(b.Bottom, inner+2) + b.BottomRight)
	left := fs.Render(b.Left) + " "
	right := " " + fs.Render(b.Right)

	f.lines = append(f.lines, top)
	for k, blk := range run {
		if k > 0 {
			f.lines = append(f.lines, divider)
		}
		for r, line := range blk.lines {
			if r == blk.headerRow {
				f.headerRows[blk.index] = len(f.lines)
				f.glyphWidth[blk.index] = blk.glyphWidth
				f.glyphLeft[blk.index] = inner + 2 - blk.glyphWidth
			}
			f.lines = append(f.lines, left+line+right)
		}
	}
	f.lines = append(f.lines, bottom)
}

func appendGapRows(f *listFrame, rows int) {
	for r := 0; r < rows; r++ {
		f.lines = append(f.lines, "")
	}
}

// sliceBlock builds one panel's interior rows at the given inner width.
func (m Model) sliceBlock(i, inner int) sliceBlock {
	margin := m.marginRows(i)
	blank := strings.Repeat(" ", inner)
	lines := make([]string, 0, 2*margin+1)
	for r := 0; r < margin; r++ {
		lines = append(lines, blank)
	}
	headerRow := len(lines)
	header, glyphWidth := m.headerLine(i, inner)
	lines = append(lines, header)
	for r := 0; r < margin; r++ {
		lines = append(lines, blank)
	}
	for _, l := range textfx.Lines(m.sessions[i].View()) {
		lines = append(lines, fit(l, inner))
	}
	return sliceBlock{index: i, lines: lines, headerRow: headerRow, glyphWidth: glyphWidth}
}

// headerLine renders the header row: factory content on the left, the
// toggle glyph right-aligned. Multi-line factory output keeps its first
// row only.
func (m Model) headerLine(i, inner int) (string, int) {
	p := m.panels[i]
	glyph := m.toggleGlyph(i)
	gw := runewidth.StringWidth(glyph)
	avail := inner - gw - 1
	if avail < 0 {
		avail = 0
	}
	var title string
	if c := p.Header(HeaderContext{Width: avail}, p.Expanded); c != nil {
		if lines := textfx.Lines(c.Render(avail)); len(lines) > 0 {
			title = lines[0]
		}
	}
	headerStyle, toggleStyle := m.styles.Header, m.styles.Toggle
	if i == m.highlight {
		headerStyle, toggleStyle = m.styles.HeaderHighlight, m.styles.ToggleHighlight
	}
	return headerStyle.Render(fit(title, avail)) + " " + toggleStyle.Render(glyph), gw
}

// toggleGlyph picks the glyph for the panel's animation phase. The turning
// glyph shows through the middle third of a flight.
func (m Model) toggleGlyph(i int) string {
	switch p := m.sessions[i].Progress(); {
	case p < 1.0/3:
		return m.styles.GlyphCollapsed
	case p < 2.0/3:
		return m.styles.GlyphTurning
	default:
		return m.styles.GlyphExpanded
	}
}

// marginRows is the animated header margin: expandedMargin rows above and
// below when open, zero when closed.
func (m Model) marginRows(i int) int {
	return int(math.Round(float64(m.expandedMargin) * m.easedProgress(i)))
}

// gapAboveRows is the visible height of the gap a panel opens against the
// panel above it. The row count follows the session clock, and the gap only
// yields once the panel above is fully expanded, so a boundary changing
// owners never closes mid-handoff.
func (m Model) gapAboveRows(i int) int {
	if i == 0 {
		return 0
	}
	if m.panels[i-1].Expanded && m.sessions[i-1].Progress() >= 1 {
		return 0
	}
	return m.gapRows(i)
}

// gapBelowRows is the visible height of the gap below a non-last panel.
func (m Model) gapBelowRows(i int) int {
	if i >= len(m.panels)-1 {
		return 0
	}
	return m.gapRows(i)
}

func (m Model) gapRows(i int) int {
	return int(math.Round(float64(m.gapHeight) * m.easedProgress(i)))
}

func (m Model) easedProgress(i int) float64 {
	return m.curve(m.sessions[i].Progress())
}

// fit truncates and pads a row to exactly the given width.
func fit(s string, width int) string {
	if textfx.Width(s) > width {
		s = textfx.Truncate(s, width)
	}
	return textfx.PadRight(s, width)
}

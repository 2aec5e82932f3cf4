// Package textfx provides ANSI-aware text geometry and compositing for TUI
// rendering: measuring, padding, truncation, top-anchored clipping, layer
// overlay, and opacity fades on styled terminal strings.
package textfx

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// TruncateEllipsis is the unicode ellipsis character used for truncation.
const TruncateEllipsis = "…"

// Lines splits a rendered block into its rows. The empty string is a
// zero-height block and yields nil, so empty content occupies no rows.
func Lines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// Height returns the number of rows a rendered block occupies.
func Height(s string) int {
	return len(Lines(s))
}

// Width returns the visual width of the widest row, accounting for ANSI
// escape codes and wide unicode characters.
func Width(s string) int {
	return MaxWidth(Lines(s))
}

// MaxWidth returns the visual width of the widest line.
func MaxWidth(lines []string) int {
	m := 0
	for _, line := range lines {
		if w := ansi.StringWidth(line); w > m {
			m = w
		}
	}
	return m
}

// PadRight pads s with spaces so its visual width equals width. Wider input
// is returned unchanged.
func PadRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	w := ansi.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// Truncate shortens a line to fit maxWidth visual columns, appending the
// unicode ellipsis when anything was cut.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if ansi.StringWidth(s) <= maxWidth {
		return s
	}
	return ansi.Truncate(s, maxWidth, TruncateEllipsis)
}

// ClipTop constrains a block to exactly height rows, anchored at the top:
// rows beyond the height are cut, missing rows are appended blank.
func ClipTop(s string, height int) string {
	if height <= 0 {
		return ""
	}
	lines := Lines(s)
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// Overlay composites an overlay block on top of a base block at character
// position (x, y). Both are treated as line-based grids: overlay rows replace
// the base's cells under them, and the base shows through beyond the
// overlay's extent on each row. Width is the base grid width; when it is not
// positive the base's own widest row is used.
func Overlay(base, overlay string, x, y, width int) string {
	baseLines := Lines(base)
	overlayLines := Lines(overlay)
	if len(overlayLines) == 0 {
		return base
	}
	if width <= 0 {
		width = MaxWidth(baseLines)
	}
	overlayWidth := MaxWidth(overlayLines)

	for i, line := range overlayLines {
		row := y + i
		if row < 0 || row >= len(baseLines) {
			continue
		}
		target := PadRight(baseLines[row], width)
		left := ansi.Truncate(target, x, "")
		if leftWidth := ansi.StringWidth(left); leftWidth < x {
			left += strings.Repeat(" ", x-leftWidth)
		}

		overlayLine := PadRight(line, overlayWidth)
		pos := x + ansi.StringWidth(overlayLine)
		right := ansi.TruncateLeft(target, pos, "")
		if gap := width - pos - ansi.StringWidth(right); gap > 0 {
			right = strings.Repeat(" ", gap) + right
		}

		baseLines[row] = left + overlayLine + right
	}
	return strings.Join(baseLines, "\n")
}

package textfx

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/lucasb-eyer/go-colorful"
)

const (
	defaultForeground = "#cdd6f4"
	defaultBackground = "#1e1e2e"
)

// Palette is the color space a fade blends through: content is recolored
// from Foreground toward Background as its opacity drops.
type Palette struct {
	Foreground string // hex color of fully opaque text
	Background string // hex color text disappears into
}

// DefaultPalette returns the palette for light text on a dark terminal.
func DefaultPalette() Palette {
	return Palette{Foreground: defaultForeground, Background: defaultBackground}
}

// colors parses the palette, substituting the defaults for anything invalid.
func (p Palette) colors() (fg, bg colorful.Color) {
	fg, err := colorful.Hex(p.Foreground)
	if err != nil {
		fg, _ = colorful.Hex(defaultForeground)
	}
	bg, err = colorful.Hex(p.Background)
	if err != nil {
		bg, _ = colorful.Hex(defaultBackground)
	}
	return fg, bg
}

// Fade renders a block at the given opacity. Fully opaque input is returned
// untouched, original styling included. Fully transparent input keeps its
// line geometry but becomes blank, so an invisible block still holds its
// cells. In between, each line's styling is stripped and the text recolored
// with the palette foreground blended toward the background; terminals have
// no alpha channel, so a faded block reads as dimming text, not true
// translucency.
func Fade(s string, alpha float64, p Palette) string {
	if s == "" || alpha >= 1 {
		return s
	}
	lines := Lines(s)

	if alpha <= 0 {
		for i, line := range lines {
			lines[i] = strings.Repeat(" ", ansi.StringWidth(line))
		}
		return strings.Join(lines, "\n")
	}

	fg, bg := p.colors()
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(fg.BlendRgb(bg, 1-alpha).Hex()))
	for i, line := range lines {
		if line == "" {
			continue
		}
		lines[i] = style.Render(ansi.Strip(line))
	}
	return strings.Join(lines, "\n")
}

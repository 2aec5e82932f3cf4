package accordion

import "github.com/charmbracelet/lipgloss"

// Theme colors used by the default styles.
const (
	ColorAccent    = "86"  // Cyan/green - toggle glyphs
	ColorHighlight = "205" // Magenta - the highlighted header
	ColorMuted     = "241" // Gray - borders, dividers
	ColorText      = "252" // Light gray - header text
)

// Styles collects every lipgloss style and glyph the list renders with.
// Replace individual fields off DefaultStyles rather than building the
// struct from scratch.
type Styles struct {
	// Frame styles the border and divider runes.
	Frame lipgloss.Style
	// Border supplies the rune set for the surface outline. MiddleLeft
	// and MiddleRight draw the divider rows between flush panels.
	Border lipgloss.Border

	Header          lipgloss.Style
	HeaderHighlight lipgloss.Style
	Toggle          lipgloss.Style
	ToggleHighlight lipgloss.Style

	// Toggle glyphs by animation phase: resting collapsed, mid-turn,
	// resting expanded.
	GlyphCollapsed string
	GlyphTurning   string
	GlyphExpanded  string
}

// DefaultStyles returns the standard look: rounded muted frame, plain
// headers, accent toggle glyphs.
func DefaultStyles() Styles {
	return Styles{
		Frame:  lipgloss.NewStyle().Foreground(lipgloss.Color(ColorMuted)),
		Border: lipgloss.RoundedBorder(),

		Header: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorText)),
		HeaderHighlight: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorHighlight)),
		Toggle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorAccent)),
		ToggleHighlight: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorHighlight)),

		GlyphCollapsed: "▸",
		GlyphTurning:   "▹",
		GlyphExpanded:  "▾",
	}
}

package accordion

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/valsun2016/accordion/crossfade"
)

// Content is anything that can render itself at a given width. Bodies and
// header factories produce Content; crossfade.Text wraps plain strings.
type Content = crossfade.Content

// HeaderContext carries the measurements a header factory may size against.
// Width is the column budget left for the header after the toggle glyph.
type HeaderContext struct {
	Width int
}

// HeaderFunc builds a panel's header for the current expanded state. The
// result renders as a single row; extra lines are dropped.
type HeaderFunc func(ctx HeaderContext, expanded bool) Content

// ToggleFunc converts a toggle request into the caller's message. Index is
// the panel's position and expanded is the state the user asked for, never
// the state already held.
type ToggleFunc func(index int, expanded bool) tea.Msg

// Panel is one entry in the list. Header and Body are required; Expanded
// selects which of the two body states the panel rests in.
type Panel struct {
	Header   HeaderFunc
	Body     Content
	Expanded bool
}

// Construction errors. Per-panel failures wrap the sentinel with the
// offending index.
var (
	ErrNoPanels   = errors.New("accordion: panel sequence is required")
	ErrNoDuration = errors.New("accordion: duration must be positive")
	ErrNilHeader  = errors.New("accordion: header factory is required")
	ErrNilBody    = errors.New("accordion: body content is required")
)

func validatePanels(panels []Panel) error {
	if panels == nil {
		return ErrNoPanels
	}
	for i, p := range panels {
		if p.Header == nil {
			return fmt.Errorf("panel %d: %w", i, ErrNilHeader)
		}
		if p.Body == nil {
			return fmt.Errorf("panel %d: %w", i, ErrNilBody)
		}
	}
	return nil
}

func clonePanels(panels []Panel) []Panel {
	out := make([]Panel, len(panels))
	copy(out, panels)
	return out
}

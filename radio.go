package accordion

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

var lastRadioID int64

func nextRadioID() int {
	return int(atomic.AddInt64(&lastRadioID, 1))
}

// radioToggleMsg is the toggle request a Radio's own callback emits. The id
// keeps concurrent radios in one program from stealing each other's
// requests.
type radioToggleMsg struct {
	id       int
	index    int
	expanded bool
}

// Radio is a single-open panel list: expanding a panel collapses whichever
// panel was open, and collapsing the open panel closes everything. Unlike
// Model, Radio owns the expanded flags; it installs its own toggle callback
// on the wrapped list, so WithOnToggle has no effect here. Observe changes
// through OnChange instead.
type Radio struct {
	list     Model
	id       int
	open     int
	onChange func(open int) tea.Msg
}

// NewRadio builds a single-open list. At most one panel may start expanded;
// when several are flagged, the first wins and the rest are cleared.
func NewRadio(panels []Panel, d time.Duration, opts ...Option) (Radio, error) {
	if panels == nil {
		return Radio{}, ErrNoPanels
	}
	id := nextRadioID()
	open := -1
	normalized := clonePanels(panels)
	for i := range normalized {
		if !normalized[i].Expanded {
			continue
		}
		if open == -1 {
			open = i
		} else {
			normalized[i].Expanded = false
		}
	}
	opts = append(opts, WithOnToggle(func(index int, expanded bool) tea.Msg {
		return radioToggleMsg{id: id, index: index, expanded: expanded}
	}))
	list, err := New(normalized, d, opts...)
	if err != nil {
		return Radio{}, err
	}
	return Radio{list: list, id: id, open: open}, nil
}

// OnChange installs a notification for open-panel changes. The message is
// emitted after the flags flip; open is -1 when everything is closed.
func (r Radio) OnChange(fn func(open int) tea.Msg) Radio {
	r.onChange = fn
	return r
}

// Open returns the open panel's index, or -1.
func (r Radio) Open() int { return r.open }

// List returns the wrapped list model for reading.
func (r Radio) List() Model { return r.list }

// Init satisfies tea.Model.
func (r Radio) Init() tea.Cmd { return nil }

// Toggle requests a state change for panel i, same as clicking its glyph.
func (r Radio) Toggle(i int) tea.Cmd { return r.list.Toggle(i) }

// SetWidth fixes the outer width.
func (r Radio) SetWidth(w int) Radio {
	r.list = r.list.SetWidth(w)
	return r
}

// SetHighlight marks a panel's header with the highlight styles.
func (r Radio) SetHighlight(i int) Radio {
	r.list = r.list.SetHighlight(i)
	return r
}

// View renders the wrapped list.
func (r Radio) View() string { return r.list.View() }

// Update applies the radio's own toggle requests and forwards everything
// else, animation frames included, to the wrapped list.
func (r Radio) Update(msg tea.Msg) (Radio, tea.Cmd) {
	if t, ok := msg.(radioToggleMsg); ok {
		if t.id != r.id {
			return r, nil
		}
		return r.apply(t)
	}
	var cmd tea.Cmd
	r.list, cmd = r.list.Update(msg)
	return r, cmd
}

// apply flips the flags so that at most the requested panel is open, then
// hands the sequence back to the list. A flags-only edit of a sequence the
// list already accepted cannot fail validation.
func (r Radio) apply(t radioToggleMsg) (Radio, tea.Cmd) {
	panels := r.list.Panels()
	if t.index < 0 || t.index >= len(panels) {
		return r, nil
	}
	open := -1
	if t.expanded {
		open = t.index
	}
	for i := range panels {
		panels[i].Expanded = i == open
	}
	list, cmd, err := r.list.SetPanels(panels)
	if err != nil {
		return r, nil
	}
	r.list = list
	r.open = open
	if r.onChange == nil {
		return r, cmd
	}
	fn := r.onChange
	notify := func() tea.Msg { return fn(open) }
	return r, tea.Batch(cmd, notify)
}

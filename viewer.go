package accordion

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// helpReserve is the rows kept below the viewport for the help footer.
const helpReserve = 2

// ViewerKeyMap holds the bindings a Viewer responds to. It satisfies
// help.KeyMap for the footer.
type ViewerKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Home   key.Binding
	End    key.Binding
	Toggle key.Binding
}

// ShortHelp returns the footer bindings.
func (k ViewerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle}
}

// FullHelp returns the expanded help layout.
func (k ViewerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle},
		{k.Home, k.End},
	}
}

// DefaultViewerKeyMap returns the standard bindings.
func DefaultViewerKeyMap() ViewerKeyMap {
	return ViewerKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "previous panel"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next panel"),
		),
		Home: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "first panel"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G", "last panel"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter/space", "toggle"),
		),
	}
}

// Viewer hosts a panel list inside a scrolling viewport with a key-driven
// cursor and a help footer. The wrapped list is exported: callers apply
// toggle requests by replacing v.List through SetPanels as usual.
type Viewer struct {
	List Model
	Keys ViewerKeyMap

	viewport viewport.Model
	help     help.Model
	cursor   int
	ready    bool
}

// NewViewer wraps a list. Send a WindowSizeMsg before the first render to
// size the viewport.
func NewViewer(list Model) Viewer {
	return Viewer{
		List:     list.SetHighlight(0),
		Keys:     DefaultViewerKeyMap(),
		viewport: viewport.New(0, 0),
		help:     help.New(),
	}
}

// Init satisfies tea.Model.
func (v Viewer) Init() tea.Cmd { return nil }

// Cursor returns the highlighted panel's index.
func (v Viewer) Cursor() int { return v.cursor }

// Update sizes the viewport, moves the cursor, turns key and mouse input
// into toggle requests, and forwards animation frames to the list.
func (v Viewer) Update(msg tea.Msg) (Viewer, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.viewport.Width = msg.Width
		h := msg.Height - helpReserve
		if h < 1 {
			h = 1
		}
		v.viewport.Height = h
		v.List = v.List.SetWidth(msg.Width)
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, v.Keys.Up):
			return v.moveCursor(-1), nil
		case key.Matches(msg, v.Keys.Down):
			return v.moveCursor(1), nil
		case key.Matches(msg, v.Keys.Home):
			return v.moveCursor(-v.List.Len()), nil
		case key.Matches(msg, v.Keys.End):
			return v.moveCursor(v.List.Len()), nil
		case key.Matches(msg, v.Keys.Toggle):
			return v, v.List.Toggle(v.cursor)
		}
		v.viewport, cmd = v.viewport.Update(msg)
		return v, cmd

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			// Hit test in content space: the viewport may be scrolled.
			if i, ok := v.List.HitTest(msg.X, msg.Y+v.viewport.YOffset); ok {
				return v, v.List.Toggle(i)
			}
			return v, nil
		}
		v.viewport, cmd = v.viewport.Update(msg)
		return v, cmd
	}

	v.List, cmd = v.List.Update(msg)
	return v, cmd
}

// SetPanels replaces the wrapped list's sequence and clamps the cursor to
// the new length.
func (v Viewer) SetPanels(panels []Panel) (Viewer, tea.Cmd, error) {
	list, cmd, err := v.List.SetPanels(panels)
	if err != nil {
		return v, nil, err
	}
	v.List = list
	if n := v.List.Len(); v.cursor >= n {
		c := n - 1
		if c < 0 {
			c = 0
		}
		v.cursor = c
		v.List = v.List.SetHighlight(c)
	}
	return v, cmd, nil
}

// View renders the scrolled list over the help footer.
func (v Viewer) View() string {
	if !v.ready {
		return ""
	}
	vp := v.viewport
	vp.SetContent(v.List.View())
	var b strings.Builder
	b.WriteString(vp.View())
	b.WriteString("\n")
	b.WriteString(v.help.View(v.Keys))
	return b.String()
}

func (v Viewer) moveCursor(delta int) Viewer {
	n := v.List.Len()
	if n == 0 {
		return v
	}
	c := v.cursor + delta
	if c < 0 {
		c = 0
	}
	if c >= n {
		c = n - 1
	}
	v.cursor = c
	v.List = v.List.SetHighlight(c)
	return v.scrollToCursor()
}

// scrollToCursor keeps the highlighted header row inside the viewport.
func (v Viewer) scrollToCursor() Viewer {
	row := v.List.renderFrame().headerRows[v.cursor]
	if row < 0 {
		return v
	}
	vp := v.viewport
	vp.SetContent(v.List.View())
	if row < vp.YOffset {
		vp.SetYOffset(row)
	} else if vp.Height > 0 && row >= vp.YOffset+vp.Height {
		vp.SetYOffset(row - vp.Height + 1)
	}
	v.viewport = vp
	return v
}

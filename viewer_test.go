package accordion

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViewer(t *testing.T, panels []Panel) Viewer {
	t.Helper()
	v := NewViewer(newList(t, panels))
	v, _ = v.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	return v
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestViewerSizesBeforeFirstRender(t *testing.T) {
	v := NewViewer(newList(t, listPanels(false, false)))
	assert.Equal(t, "", v.View(), "unsized viewers render nothing")

	v, cmd := v.Update(tea.WindowSizeMsg{Width: 48, Height: 12})
	assert.Nil(t, cmd)
	assert.Equal(t, 48, v.List.Width())
	assert.NotEqual(t, "", v.View())
	assert.Contains(t, v.View(), "toggle", "the help footer lists the bindings")
}

func TestViewerCursorMoves(t *testing.T) {
	v := newViewer(t, listPanels(false, false, false))
	assert.Equal(t, 0, v.Cursor())
	assert.Equal(t, 0, v.List.Highlight())

	v, _ = v.Update(keyPress("down"))
	assert.Equal(t, 1, v.Cursor())
	assert.Equal(t, 1, v.List.Highlight())

	v, _ = v.Update(keyPress("j"))
	assert.Equal(t, 2, v.Cursor())

	v, _ = v.Update(keyPress("down"))
	assert.Equal(t, 2, v.Cursor(), "the cursor stops at the last panel")

	v, _ = v.Update(keyPress("up"))
	v, _ = v.Update(keyPress("k"))
	v, _ = v.Update(keyPress("up"))
	assert.Equal(t, 0, v.Cursor(), "the cursor stops at the first panel")
}

func TestViewerHomeEndKeys(t *testing.T) {
	v := newViewer(t, listPanels(false, false, false, false))

	v, _ = v.Update(keyPress("G"))
	assert.Equal(t, 3, v.Cursor())
	assert.Equal(t, 3, v.List.Highlight())

	v, _ = v.Update(keyPress("g"))
	assert.Equal(t, 0, v.Cursor())

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyEnd})
	assert.Equal(t, 3, v.Cursor())
	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyHome})
	assert.Equal(t, 0, v.Cursor())
}

func TestViewerSetPanelsClampsCursor(t *testing.T) {
	v := newViewer(t, listPanels(false, false, false))
	v, _ = v.Update(keyPress("G"))
	require.Equal(t, 2, v.Cursor())

	v, cmd, err := v.SetPanels(v.List.Panels()[:1])
	require.NoError(t, err)
	assert.Nil(t, cmd)
	assert.Equal(t, 0, v.Cursor())
	assert.Equal(t, 0, v.List.Highlight())

	_, _, err = v.SetPanels(nil)
	assert.ErrorIs(t, err, ErrNoPanels)

	// Flag changes flow through to the sessions.
	next := v.List.Panels()
	next[0].Expanded = true
	v, cmd, err = v.SetPanels(next)
	require.NoError(t, err)
	require.NotNil(t, cmd)
	assert.True(t, v.List.Animating())
}

func TestViewerTogglesAtCursor(t *testing.T) {
	v := newViewer(t, listPanels(false, true))
	v, _ = v.Update(keyPress("down"))

	_, cmd := v.Update(keyPress("enter"))
	require.NotNil(t, cmd)
	assert.Equal(t, toggled{index: 1, expanded: false}, cmd())

	_, cmd = v.Update(keyPress(" "))
	require.NotNil(t, cmd, "space toggles too")
	assert.Equal(t, toggled{index: 1, expanded: false}, cmd())
}

func TestViewerMouseRespectsScroll(t *testing.T) {
	v := NewViewer(newList(t, listPanels(true, true, true, true)))
	v, _ = v.Update(tea.WindowSizeMsg{Width: 60, Height: 10})
	glyphCol := v.List.innerWidth() + 2 - 1

	// Scroll the list down three rows; the press lands in screen space.
	v.viewport.SetContent(v.List.View())
	v.viewport.SetYOffset(3)
	require.Equal(t, 3, v.viewport.YOffset)

	headerRow := v.List.renderFrame().headerRows[1]
	press := tea.MouseMsg{
		X:      glyphCol,
		Y:      headerRow - 3,
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonLeft,
	}
	_, cmd := v.Update(press)
	require.NotNil(t, cmd)
	assert.Equal(t, toggled{index: 1, expanded: false}, cmd())
}

func TestViewerForwardsFrames(t *testing.T) {
	v := newViewer(t, listPanels(false))

	next := v.List.Panels()
	next[0].Expanded = true
	list, _, err := v.List.SetPanels(next)
	require.NoError(t, err)
	v.List = list
	require.True(t, v.List.Animating())

	v, _ = v.Update(v.List.sessions[0].Frame())
	assert.InDelta(t, 0.1, v.List.sessions[0].Progress(), 1e-9)
}

func TestViewerScrollsCursorIntoView(t *testing.T) {
	// Many expanded panels make the list taller than the viewport.
	v := NewViewer(newList(t, listPanels(true, true, true, true)))
	v, _ = v.Update(tea.WindowSizeMsg{Width: 60, Height: 10})
	require.Greater(t, v.List.Height(), v.viewport.Height)

	for i := 0; i < 3; i++ {
		v, _ = v.Update(keyPress("down"))
	}
	row := v.List.renderFrame().headerRows[3]
	assert.GreaterOrEqual(t, row, v.viewport.YOffset)
	assert.Less(t, row, v.viewport.YOffset+v.viewport.Height)

	for i := 0; i < 3; i++ {
		v, _ = v.Update(keyPress("up"))
	}
	row = v.List.renderFrame().headerRows[0]
	assert.GreaterOrEqual(t, row, v.viewport.YOffset)
	assert.Less(t, row, v.viewport.YOffset+v.viewport.Height)
}

func TestViewerViewHasFooter(t *testing.T) {
	v := newViewer(t, listPanels(false, true))
	out := v.View()
	require.NotEqual(t, "", out)
	lines := strings.Split(out, "\n")
	footer := lines[len(lines)-1]
	assert.Contains(t, footer, "previous panel")
	assert.Contains(t, footer, "next panel")
}

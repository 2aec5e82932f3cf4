package accordion

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/valsun2016/accordion/anim"
	"github.com/valsun2016/accordion/crossfade"
)

const (
	defaultWidth  = 60
	frameOverhead = 4 // side borders plus one padding column each side
	minInnerWidth = 8

	defaultGapHeight      = 1
	defaultExpandedMargin = 1
)

// Model is the panel list. It is a value: methods return updated copies in
// the Bubble Tea way, and rendering never mutates state.
//
// The expanded flags inside the model are the caller's resting state. Body
// growth, gaps, and header margins animate toward those flags through one
// crossfade session per panel; route anim.FrameMsg values through Update to
// advance them.
type Model struct {
	panels   []Panel
	sessions []crossfade.Model

	duration time.Duration
	curve    anim.Curve
	styles   Styles
	palette  crossfade.Palette

	onToggle       ToggleFunc
	toggleOnHeader bool
	gapHeight      int
	expandedMargin int
	width          int
	highlight      int
	offsetX        int
	offsetY        int

	fps             int
	timeScale       float64
	reverseDuration time.Duration
}

// Option configures a Model at construction.
type Option func(*Model)

// WithOnToggle installs the toggle callback. Without one the list renders
// but stays inert to input.
func WithOnToggle(fn ToggleFunc) Option {
	return func(m *Model) { m.onToggle = fn }
}

// WithCurve sets the easing shared by body fades, gap growth, and header
// margins. Defaults to anim.Standard.
func WithCurve(c anim.Curve) Option {
	return func(m *Model) {
		if c != nil {
			m.curve = c
		}
	}
}

// WithStyles replaces the default look.
func WithStyles(s Styles) Option {
	return func(m *Model) { m.styles = s }
}

// WithWidth fixes the outer width in columns. Defaults to 60.
func WithWidth(w int) Option {
	return func(m *Model) { m.width = w }
}

// WithGapHeight sets the rows an open gap occupies. Defaults to 1.
func WithGapHeight(rows int) Option {
	return func(m *Model) {
		if rows >= 0 {
			m.gapHeight = rows
		}
	}
}

// WithExpandedMargin sets the margin rows added above and below an
// expanded panel's header. Defaults to 1, growing the header area from one
// row to three.
func WithExpandedMargin(rows int) Option {
	return func(m *Model) {
		if rows >= 0 {
			m.expandedMargin = rows
		}
	}
}

// WithToggleOnHeader widens the toggle hit zone from the glyph to the whole
// header row.
func WithToggleOnHeader() Option {
	return func(m *Model) { m.toggleOnHeader = true }
}

// WithHighlight marks a panel's header with the highlight styles.
func WithHighlight(i int) Option {
	return func(m *Model) { m.highlight = i }
}

// WithOffset tells hit testing where the list sits on screen.
func WithOffset(x, y int) Option {
	return func(m *Model) { m.offsetX, m.offsetY = x, y }
}

// WithPalette sets the colors body fades blend through.
func WithPalette(p crossfade.Palette) Option {
	return func(m *Model) { m.palette = p }
}

// WithFPS sets the session frame rate.
func WithFPS(fps int) Option {
	return func(m *Model) { m.fps = fps }
}

// WithTimeScale dilates every session clock; 2 runs animations at half
// speed.
func WithTimeScale(scale float64) Option {
	return func(m *Model) { m.timeScale = scale }
}

// WithReverseDuration sets a separate duration for collapse animations.
func WithReverseDuration(d time.Duration) Option {
	return func(m *Model) { m.reverseDuration = d }
}

// New builds a list from the panel sequence. Every panel needs a header
// factory and a body; the sequence itself must be non-nil, though it may
// be empty. Sessions mount at rest on each panel's flag, so a freshly
// built list never animates.
func New(panels []Panel, d time.Duration, opts ...Option) (Model, error) {
	if err := validatePanels(panels); err != nil {
		return Model{}, err
	}
	if d <= 0 {
		return Model{}, ErrNoDuration
	}
	m := Model{
		panels:         clonePanels(panels),
		duration:       d,
		curve:          anim.Standard,
		styles:         DefaultStyles(),
		palette:        crossfade.DefaultPalette(),
		gapHeight:      defaultGapHeight,
		expandedMargin: defaultExpandedMargin,
		width:          defaultWidth,
		highlight:      -1,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.sessions = make([]crossfade.Model, len(m.panels))
	for i := range m.panels {
		m.sessions[i] = m.newSession(m.panels[i])
	}
	return m, nil
}

// newSession builds the body transition for one panel, resting on its
// flag. Inputs were validated by the caller, so construction cannot fail.
func (m Model) newSession(p Panel) crossfade.Model {
	state := crossfade.ShowFirst
	if p.Expanded {
		state = crossfade.ShowSecond
	}
	opts := []crossfade.Option{
		crossfade.WithState(state),
		crossfade.WithCurve(m.curve),
		crossfade.WithWidth(m.innerWidth()),
		crossfade.WithPalette(m.palette),
	}
	if m.fps > 0 {
		opts = append(opts, crossfade.WithFPS(m.fps))
	}
	if m.timeScale > 0 {
		opts = append(opts, crossfade.WithTimeScale(m.timeScale))
	}
	if m.reverseDuration > 0 {
		opts = append(opts, crossfade.WithReverseDuration(m.reverseDuration))
	}
	s, _ := crossfade.New(crossfade.Empty, p.Body, m.duration, opts...)
	return s
}

// Init satisfies tea.Model. Sessions mount at rest, so there is nothing to
// schedule.
func (m Model) Init() tea.Cmd { return nil }

// Update advances the sessions on animation frames and resolves mouse
// presses to toggle requests. Unknown messages are ignored.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case anim.FrameMsg:
		sessions := make([]crossfade.Model, len(m.sessions))
		copy(sessions, m.sessions)
		var cmds []tea.Cmd
		for i := range sessions {
			var cmd tea.Cmd
			sessions[i], cmd = sessions[i].Update(msg)
			if cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		m.sessions = sessions
		return m, tea.Batch(cmds...)
	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if i, ok := m.HitTest(msg.X-m.offsetX, msg.Y-m.offsetY); ok {
			return m, m.Toggle(i)
		}
	}
	return m, nil
}

// Toggle reports a toggle request for panel i through the callback: the
// command's message carries the state the user asked for. The list never
// flips the flag itself; feed the updated sequence back in with SetPanels.
// Out-of-range indexes and a missing callback are no-ops.
func (m Model) Toggle(i int) tea.Cmd {
	if m.onToggle == nil || i < 0 || i >= len(m.panels) {
		return nil
	}
	onToggle := m.onToggle
	requested := !m.panels[i].Expanded
	return func() tea.Msg {
		return onToggle(i, requested)
	}
}

// SetPanels swaps in the next panel sequence, animating every panel whose
// expanded flag changed. Sessions match panels by position: surviving
// positions keep their clocks (a mid-flight panel toggled back reverses
// smoothly), new positions mount at rest, removed positions are dropped
// and their in-flight frames die unmatched. On an invalid sequence the
// previous state is kept and the error returned.
func (m Model) SetPanels(panels []Panel) (Model, tea.Cmd, error) {
	if err := validatePanels(panels); err != nil {
		return m, nil, err
	}
	next := clonePanels(panels)
	sessions := make([]crossfade.Model, len(next))
	var cmds []tea.Cmd
	for i := range next {
		if i >= len(m.sessions) {
			sessions[i] = m.newSession(next[i])
			continue
		}
		s := m.sessions[i].SetSecond(next[i].Body)
		target := crossfade.ShowFirst
		if next[i].Expanded {
			target = crossfade.ShowSecond
		}
		s, cmd := s.SetState(target)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		sessions[i] = s
	}
	m.panels = next
	m.sessions = sessions
	return m, tea.Batch(cmds...), nil
}

// SetWidth fixes the list's outer width and resizes every session.
func (m Model) SetWidth(w int) Model {
	m.width = w
	inner := m.innerWidth()
	sessions := make([]crossfade.Model, len(m.sessions))
	for i := range m.sessions {
		sessions[i] = m.sessions[i].SetWidth(inner)
	}
	m.sessions = sessions
	return m
}

// SetDuration retunes every session in place; mid-flight animations keep
// their progress and finish at the new speed.
func (m Model) SetDuration(d time.Duration) Model {
	if d <= 0 {
		return m
	}
	m.duration = d
	sessions := make([]crossfade.Model, len(m.sessions))
	for i := range m.sessions {
		sessions[i] = m.sessions[i].SetDuration(d)
	}
	m.sessions = sessions
	return m
}

// SetCurve swaps the easing without disturbing running clocks.
func (m Model) SetCurve(c anim.Curve) Model {
	if c == nil {
		return m
	}
	m.curve = c
	sessions := make([]crossfade.Model, len(m.sessions))
	for i := range m.sessions {
		sessions[i] = m.sessions[i].SetCurve(c)
	}
	m.sessions = sessions
	return m
}

// SetHighlight marks panel i's header with the highlight styles; any
// out-of-range index clears the highlight.
func (m Model) SetHighlight(i int) Model {
	m.highlight = i
	return m
}

// SetOffset tells hit testing where the list sits on screen.
func (m Model) SetOffset(x, y int) Model {
	m.offsetX, m.offsetY = x, y
	return m
}

// Release stops every session's animation. Call when discarding the list
// while panels may still be mid-flight.
func (m Model) Release() Model {
	sessions := make([]crossfade.Model, len(m.sessions))
	for i := range m.sessions {
		sessions[i] = m.sessions[i].Release()
	}
	m.sessions = sessions
	return m
}

// Panels returns a copy of the current sequence.
func (m Model) Panels() []Panel { return clonePanels(m.panels) }

// Len returns the panel count.
func (m Model) Len() int { return len(m.panels) }

// Expanded reports panel i's resting flag.
func (m Model) Expanded(i int) bool {
	return i >= 0 && i < len(m.panels) && m.panels[i].Expanded
}

// Slots derives the slot sequence from the current flags. It is a pure
// function of the panel sequence: gaps keyed 2i-1 and 2i+1 around each
// slice keyed 2i.
func (m Model) Slots() []Slot { return buildSlots(m.panels) }

// Animating reports whether any panel is mid-flight.
func (m Model) Animating() bool {
	for i := range m.sessions {
		switch m.sessions[i].Status() {
		case anim.StatusForward, anim.StatusReverse:
			return true
		}
	}
	return false
}

// Highlight returns the highlighted panel's index, or -1.
func (m Model) Highlight() int {
	if m.highlight < 0 || m.highlight >= len(m.panels) {
		return -1
	}
	return m.highlight
}

// Width returns the outer width the list renders at.
func (m Model) Width() int {
	if m.width <= 0 {
		return defaultWidth
	}
	return m.width
}

func (m Model) innerWidth() int {
	iw := m.Width() - frameOverhead
	if iw < minInnerWidth {
		iw = minInnerWidth
	}
	return iw
}

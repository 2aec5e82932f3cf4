// Package crossfade implements a two-content cross-fade and resize
// transition for Bubble Tea. Given two pieces of content and a target state,
// it fades one out while fading the other in on a staggered schedule and
// animates its own height, top-anchored, toward the content that is winning.
//
// The expansion list in the parent package drives one transition per panel
// body; the widget is equally usable on its own.
package crossfade

import (
	"errors"
	"fmt"
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/valsun2016/accordion/anim"
	"github.com/valsun2016/accordion/internal/textfx"
)

// Content is anything that can render itself at a given width. The width is
// the number of columns available; implementations may render narrower and
// should ignore widths that are not positive. A render of the empty string
// has zero height.
type Content interface {
	Render(width int) string
}

// Text wraps a plain string as Content. When a positive width is given the
// text is wrapped and padded to it.
func Text(s string) Content { return text(s) }

type text string

func (t text) Render(width int) string {
	if width <= 0 || t == "" {
		return string(t)
	}
	return lipgloss.NewStyle().Width(width).Render(string(t))
}

// Empty is zero-height Content. It is the collapsed side of an expansion
// panel's body transition.
var Empty Content = empty{}

type empty struct{}

func (empty) Render(int) string { return "" }

// Palette names the foreground and background the fades blend through.
type Palette = textfx.Palette

// DefaultPalette returns the standard fade colors.
func DefaultPalette() Palette { return textfx.DefaultPalette() }

// State selects which content a transition shows or is moving toward. There
// is no in-between target: intermediate frames blend both contents but the
// logical target is always exactly one of these.
type State int

const (
	// ShowFirst targets the first content.
	ShowFirst State = iota
	// ShowSecond targets the second content.
	ShowSecond
)

func (s State) String() string {
	if s == ShowSecond {
		return "second"
	}
	return "first"
}

// Construction errors. All input contracts are checked eagerly in New;
// nothing fails later inside View.
var (
	// ErrNilContent reports a missing content slot.
	ErrNilContent = errors.New("crossfade: nil content")
	// ErrNoDuration reports a missing or non-positive transition duration.
	ErrNoDuration = errors.New("crossfade: duration must be positive")
)

// The two opacity animations are staggered rather than linear: the outgoing
// content is gone by 60% of the clock and the incoming one starts at 40%,
// leaving a short window where both are partially visible instead of an
// empty gap.
const (
	fadeOutEnd  = 0.6
	fadeInBegin = 0.4
)

// Model is a cross-fade transition between two contents. It owns its
// animation clock exclusively: the clock is acquired in New and released by
// Release. Model is a value type; keep the copy every method returns.
//
// The zero value is not usable; construct with New.
type Model struct {
	first  Content
	second Content
	state  State

	clock        anim.Clock
	curve        anim.Curve
	sizeCurve    anim.Curve
	ownSizeCurve bool
	firstFade    anim.Curve
	secondFade   anim.Curve

	width   int
	palette Palette

	clockOpts []anim.ClockOption
}

// Option configures a Model at construction.
type Option func(*Model)

// WithState sets the initial target. A transition mounted on ShowSecond
// starts with its clock resting at completion, so no animation plays.
func WithState(s State) Option {
	return func(m *Model) { m.state = s }
}

// WithCurve sets the base easing for both fades and, unless overridden, the
// container resize. Default anim.Standard.
func WithCurve(c anim.Curve) Option {
	return func(m *Model) {
		if c != nil {
			m.curve = c
		}
	}
}

// WithSizeCurve gives the container resize its own easing.
func WithSizeCurve(c anim.Curve) Option {
	return func(m *Model) {
		if c != nil {
			m.sizeCurve = c
			m.ownSizeCurve = true
		}
	}
}

// WithWidth sets the column budget contents are rendered at.
func WithWidth(w int) Option {
	return func(m *Model) { m.width = w }
}

// WithPalette sets the colors the fade blends through.
func WithPalette(p Palette) Option {
	return func(m *Model) { m.palette = p }
}

// WithFPS sets the animation frame rate.
func WithFPS(fps int) Option {
	return func(m *Model) { m.clockOpts = append(m.clockOpts, anim.WithFPS(fps)) }
}

// WithTimeScale injects a time-dilation factor; scale 2 runs at half speed.
func WithTimeScale(scale float64) Option {
	return func(m *Model) { m.clockOpts = append(m.clockOpts, anim.WithTimeScale(scale)) }
}

// WithReverseDuration gives the collapse direction its own duration.
func WithReverseDuration(d time.Duration) Option {
	return func(m *Model) { m.clockOpts = append(m.clockOpts, anim.WithReverseDuration(d)) }
}

// New builds a transition between two contents that plays over the given
// duration. Both contents and the duration are required; violations fail
// here, never later in rendering.
func New(first, second Content, d time.Duration, opts ...Option) (Model, error) {
	if first == nil {
		return Model{}, fmt.Errorf("%w: first", ErrNilContent)
	}
	if second == nil {
		return Model{}, fmt.Errorf("%w: second", ErrNilContent)
	}
	if d <= 0 {
		return Model{}, ErrNoDuration
	}

	m := Model{
		first:   first,
		second:  second,
		state:   ShowFirst,
		curve:   anim.Standard,
		palette: textfx.DefaultPalette(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	if !m.ownSizeCurve {
		m.sizeCurve = m.curve
	}
	m.rebuildFades()

	at := 0.0
	if m.state == ShowSecond {
		at = 1.0
	}
	m.clock = anim.NewClock(d, append(m.clockOpts, anim.At(at))...)
	m.clockOpts = nil
	return m, nil
}

func (m *Model) rebuildFades() {
	m.firstFade = anim.Interval(0, fadeOutEnd, m.curve)
	m.secondFade = anim.Interval(fadeInBegin, 1, anim.Flip(m.curve))
}

// State returns the current logical target.
func (m Model) State() State { return m.state }

// Progress returns the clock position: 0 fully on first, 1 fully on second.
func (m Model) Progress() float64 { return m.clock.Progress() }

// Status reports what the underlying clock is doing.
func (m Model) Status() anim.Status { return m.clock.Status() }

// FirstOpacity returns the first content's opacity: 1 at progress 0, eased
// down to 0 across the leading 60% of the clock.
func (m Model) FirstOpacity() float64 {
	return 1 - m.clock.Eval(m.firstFade)
}

// SecondOpacity returns the second content's opacity: 0 until 40% of the
// clock, eased up to 1 at completion with the time-reversed base curve.
func (m Model) SecondOpacity() float64 {
	return m.clock.Eval(m.secondFade)
}

// SetState retargets the transition. Setting the target it already has is an
// idempotent no-op. A changed target drives the clock toward the new end
// from its current progress: flips mid-flight reverse smoothly, never jump.
func (m Model) SetState(s State) (Model, tea.Cmd) {
	if s == m.state {
		return m, nil
	}
	m.state = s
	var cmd tea.Cmd
	if s == ShowSecond {
		m.clock, cmd = m.clock.Forward()
	} else {
		m.clock, cmd = m.clock.Reverse()
	}
	return m, cmd
}

// SetWidth changes the render column budget.
func (m Model) SetWidth(w int) Model {
	m.width = w
	return m
}

// SetDuration changes the transition duration without restarting or moving
// the clock.
func (m Model) SetDuration(d time.Duration) Model {
	m.clock = m.clock.SetDuration(d)
	return m
}

// SetCurve swaps the easing without restarting the clock. The resize easing
// follows unless it was set on its own.
func (m Model) SetCurve(c anim.Curve) Model {
	if c == nil {
		return m
	}
	m.curve = c
	if !m.ownSizeCurve {
		m.sizeCurve = c
	}
	m.rebuildFades()
	return m
}

// SetPalette changes the fade colors.
func (m Model) SetPalette(p Palette) Model {
	m.palette = p
	return m
}

// Running reports whether the transition is mid-flight.
func (m Model) Running() bool { return m.clock.Running() }

// Frame returns the message that advances this session by exactly one frame
// step. It lets callers drive the animation synchronously; running programs
// rely on the commands Update schedules instead.
func (m Model) Frame() tea.Msg { return m.clock.Frame() }

// SetFirst replaces the first content in place; the clock does not move.
// Nil keeps the current content.
func (m Model) SetFirst(c Content) Model {
	if c != nil {
		m.first = c
	}
	return m
}

// SetSecond replaces the second content in place, like SetFirst.
func (m Model) SetSecond(c Content) Model {
	if c != nil {
		m.second = c
	}
	return m
}

// Release stops the animation clock and discards in-flight frames. Call on
// unmount; idempotent and safe on every exit path.
func (m Model) Release() Model {
	m.clock = m.clock.Stop()
	return m
}

// ClockID identifies the owned clock, letting containers route or audit
// frame traffic.
func (m Model) ClockID() int { return m.clock.ID() }

// Update advances the transition on its own clock's frames; every other
// message leaves it untouched.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.clock, cmd = m.clock.Update(msg)
	return m, cmd
}

// View renders both contents at their current opacities, stacked by
// direction of travel and clipped to the animated container height.
func (m Model) View() string {
	firstStr := m.first.Render(m.width)
	secondStr := m.second.Render(m.width)

	firstH := textfx.Height(firstStr)
	secondH := textfx.Height(secondStr)
	t := m.clock.Eval(m.sizeCurve)
	height := int(math.Round(float64(firstH) + (float64(secondH)-float64(firstH))*t))
	if height <= 0 {
		return ""
	}

	width := m.width
	if width <= 0 {
		width = max(textfx.Width(firstStr), textfx.Width(secondStr))
	}

	// The layer being revealed sits at the base of the stack and defines the
	// container size; the other is overlaid at the same origin, out of flow.
	// Which is which depends on direction, so that the container always
	// converges to the winning layer's size.
	base, overlay := firstStr, secondStr
	baseAlpha, overlayAlpha := m.FirstOpacity(), m.SecondOpacity()
	if m.transitioningForward() {
		base, overlay = secondStr, firstStr
		baseAlpha, overlayAlpha = m.SecondOpacity(), m.FirstOpacity()
	}

	frame := textfx.Fade(textfx.ClipTop(base, height), baseAlpha, m.palette)
	if overlayAlpha > 0 && overlay != "" {
		frame = textfx.Overlay(frame, textfx.Fade(overlay, overlayAlpha, m.palette), 0, 0, width)
	}
	return frame
}

// transitioningForward reports whether the second content owns the base
// layer: the clock is at or past completion, or actively running forward.
func (m Model) transitioningForward() bool {
	st := m.clock.Status()
	return st == anim.StatusCompleted || st == anim.StatusForward
}

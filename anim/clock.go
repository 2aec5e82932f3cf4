// Package anim provides the frame-driven animation primitives shared by the
// widgets in this module: a reversible clock on normalized [0,1] time and
// easing-curve helpers.
//
// A Clock advances by a fixed virtual step per frame rather than by measured
// wall-clock deltas, so driving it N frames in a test is fully deterministic.
package anim

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const defaultFPS = 60

// boundSnap is the window around 0 and 1 inside which a frame counts as
// landing on the bound. Per-run float rounding stays near 1e-16; no usable
// step is smaller than 1e-6.
const boundSnap = 1e-9

// Status reports what a Clock is doing.
type Status int

const (
	// StatusIdle means the clock is not running and has not completed. A
	// stopped clock parks here at whatever progress it had.
	StatusIdle Status = iota
	// StatusForward means the clock is running toward 1.
	StatusForward
	// StatusReverse means the clock is running toward 0.
	StatusReverse
	// StatusCompleted means the clock rests at 1.
	StatusCompleted
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusForward:
		return "forward"
	case StatusReverse:
		return "reverse"
	case StatusCompleted:
		return "completed"
	}
	return "unknown"
}

// FrameMsg indicates that an animation frame is due. Frames are stamped with
// the owning clock's identity so concurrent clocks never consume each other's
// frames, and with a generation tag so frames scheduled before a reversal or
// stop are discarded instead of double-advancing the clock.
type FrameMsg struct {
	// Time is when the frame fired.
	Time time.Time

	// ID identifies the clock this frame belongs to.
	ID int

	tag int
}

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

// Clock is a reversible animation clock on normalized [0,1] time. Exactly one
// component owns a given clock; ownership is never shared.
//
// Clock is a value type in the Bubble Tea model tradition: every method
// returns the updated copy, which the owner must keep.
type Clock struct {
	id  int
	tag int

	duration        time.Duration
	reverseDuration time.Duration
	fps             int
	timeScale       float64

	// base and frames describe the current leg, one uninterrupted run in a
	// single direction. Progress is derived as base plus or minus whole
	// frames of the step, never accumulated frame by frame.
	base   float64
	frames int

	progress float64
	status   Status
}

// ClockOption configures a Clock at construction.
type ClockOption func(*Clock)

// WithFPS sets the frame rate the clock schedules itself at. Values below 1
// are ignored.
func WithFPS(fps int) ClockOption {
	return func(c *Clock) {
		if fps > 0 {
			c.fps = fps
		}
	}
}

// WithTimeScale stretches the clock's notion of time: scale 2 makes every
// animation take twice its nominal duration. This is the injected
// time-dilation control; it is per-clock state, never process-global.
func WithTimeScale(scale float64) ClockOption {
	return func(c *Clock) {
		if scale > 0 {
			c.timeScale = scale
		}
	}
}

// WithReverseDuration gives runs toward 0 their own duration. Zero means
// reverse runs use the forward duration.
func WithReverseDuration(d time.Duration) ClockOption {
	return func(c *Clock) {
		if d > 0 {
			c.reverseDuration = d
		}
	}
}

// At mounts the clock resting at the given progress.
func At(progress float64) ClockOption {
	return func(c *Clock) {
		c.progress = clamp01(progress)
		c.base = c.progress
		if c.progress >= 1 {
			c.status = StatusCompleted
		} else {
			c.status = StatusIdle
		}
	}
}

// NewClock returns a stopped clock at progress 0. The duration is the time a
// full 0 to 1 run takes at time scale 1.
func NewClock(d time.Duration, opts ...ClockOption) Clock {
	c := Clock{
		id:        nextID(),
		duration:  d,
		fps:       defaultFPS,
		timeScale: 1,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// ID returns the clock's unique identity.
func (c Clock) ID() int { return c.id }

// Progress returns the current normalized position in [0,1].
func (c Clock) Progress() float64 { return c.progress }

// Status returns what the clock is doing.
func (c Clock) Status() Status { return c.status }

// Running reports whether the clock is advancing in either direction.
func (c Clock) Running() bool {
	return c.status == StatusForward || c.status == StatusReverse
}

// Eval applies a curve to the current progress.
func (c Clock) Eval(curve Curve) float64 {
	return curve(c.progress)
}

// Forward drives the clock toward 1 from its current progress. A clock
// already at 1, or already running forward, is left alone. A clock running
// in reverse turns around in place without resetting.
func (c Clock) Forward() (Clock, tea.Cmd) {
	if c.progress >= 1 {
		c.progress = 1
		c.status = StatusCompleted
		return c, nil
	}
	if c.status == StatusForward {
		return c, nil
	}
	c.status = StatusForward
	c.base, c.frames = c.progress, 0
	c.tag++
	return c, c.start(c.id, c.tag)
}

// Reverse drives the clock toward 0 from its current progress, the mirror of
// Forward.
func (c Clock) Reverse() (Clock, tea.Cmd) {
	if c.progress <= 0 {
		c.progress = 0
		c.status = StatusIdle
		return c, nil
	}
	if c.status == StatusReverse {
		return c, nil
	}
	c.status = StatusReverse
	c.base, c.frames = c.progress, 0
	c.tag++
	return c, c.start(c.id, c.tag)
}

// Stop halts the clock in place and discards all in-flight frames. Stopping
// is the release half of the clock's lifecycle; it is idempotent and safe on
// every exit path.
func (c Clock) Stop() Clock {
	c.tag++
	if c.progress >= 1 {
		c.status = StatusCompleted
	} else {
		c.status = StatusIdle
	}
	return c
}

// SetDuration changes the forward duration in place: progress and direction
// are kept and the new step size applies from the next frame. It never
// restarts a run.
func (c Clock) SetDuration(d time.Duration) Clock {
	if d > 0 {
		c.duration = d
		c.base, c.frames = c.progress, 0
	}
	return c
}

// SetTimeScale changes the time-dilation factor in place, like SetDuration.
func (c Clock) SetTimeScale(scale float64) Clock {
	if scale > 0 {
		c.timeScale = scale
		c.base, c.frames = c.progress, 0
	}
	return c
}

// Frame returns the message the clock's next frame delivers. It backs the
// kick-off command and lets in-process callers advance a running clock
// synchronously.
func (c Clock) Frame() tea.Msg {
	return FrameMsg{Time: time.Now(), ID: c.id, tag: c.tag}
}

// Update advances the clock on its own frames and ignores every other
// message. Each accepted frame moves progress by one fixed virtual step and
// schedules the next frame, until a bound is reached. A run whose length is
// a whole number of frames lands on its bound at exactly that frame.
func (c Clock) Update(msg tea.Msg) (Clock, tea.Cmd) {
	frame, ok := msg.(FrameMsg)
	if !ok || frame.ID != c.id || frame.tag != c.tag {
		return c, nil
	}

	switch c.status {
	case StatusForward:
		c.frames++
		c.progress = c.base + float64(c.frames)*c.step(c.duration)
		if c.progress >= 1-boundSnap {
			c.progress = 1
			c.status = StatusCompleted
			return c, nil
		}
	case StatusReverse:
		d := c.duration
		if c.reverseDuration > 0 {
			d = c.reverseDuration
		}
		c.frames++
		c.progress = c.base - float64(c.frames)*c.step(d)
		if c.progress <= boundSnap {
			c.progress = 0
			c.status = StatusIdle
			return c, nil
		}
	default:
		return c, nil
	}

	c.tag++
	return c, c.schedule(c.id, c.tag)
}

// step is the virtual progress one frame contributes for the given duration.
func (c Clock) step(d time.Duration) float64 {
	if d <= 0 {
		return 1
	}
	period := time.Second / time.Duration(c.fps)
	return float64(period) / (float64(d) * c.timeScale)
}

// start emits the first frame of a run immediately so a transition begins on
// the next event-loop pass rather than one tick later.
func (c Clock) start(id, tag int) tea.Cmd {
	return func() tea.Msg {
		return FrameMsg{Time: time.Now(), ID: id, tag: tag}
	}
}

// schedule arranges the next frame at the clock's frame rate.
func (c Clock) schedule(id, tag int) tea.Cmd {
	period := time.Second / time.Duration(c.fps)
	return tea.Tick(period, func(t time.Time) tea.Msg {
		return FrameMsg{Time: t, ID: id, tag: tag}
	})
}

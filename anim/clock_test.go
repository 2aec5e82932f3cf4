package anim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tenth returns a clock whose frames each advance progress by exactly 0.1.
func tenth(opts ...ClockOption) Clock {
	return NewClock(time.Second, append([]ClockOption{WithFPS(10)}, opts...)...)
}

// drive feeds the clock its own next frame n times, synchronously.
func drive(c Clock, n int) Clock {
	for i := 0; i < n; i++ {
		c, _ = c.Update(c.Frame())
	}
	return c
}

func TestNewClockDefaults(t *testing.T) {
	c := NewClock(200 * time.Millisecond)

	assert.Equal(t, 0.0, c.Progress())
	assert.Equal(t, StatusIdle, c.Status())
	assert.False(t, c.Running())
	assert.Greater(t, c.ID(), 0)

	other := NewClock(200 * time.Millisecond)
	assert.NotEqual(t, c.ID(), other.ID(), "every clock gets its own identity")
}

func TestClockForwardAdvances(t *testing.T) {
	c := tenth()

	c, cmd := c.Forward()
	require.NotNil(t, cmd)
	assert.Equal(t, StatusForward, c.Status())
	assert.Equal(t, 0.0, c.Progress(), "starting a run does not move the clock")

	msg := cmd()
	frame, ok := msg.(FrameMsg)
	require.True(t, ok)
	assert.Equal(t, c.ID(), frame.ID)

	c, next := c.Update(msg)
	assert.InDelta(t, 0.1, c.Progress(), 1e-9)
	assert.Equal(t, StatusForward, c.Status())
	assert.NotNil(t, next, "a running clock keeps scheduling frames")
}

func TestClockCompletes(t *testing.T) {
	c := tenth()
	c, _ = c.Forward()
	c = drive(c, 9)
	assert.InDelta(t, 0.9, c.Progress(), 1e-9)

	c, cmd := c.Update(c.Frame())
	assert.Equal(t, 1.0, c.Progress())
	assert.Equal(t, StatusCompleted, c.Status())
	assert.Nil(t, cmd, "a completed clock stops scheduling")

	c, cmd = c.Forward()
	assert.Nil(t, cmd, "forward at completion is a no-op")
	assert.Equal(t, StatusCompleted, c.Status())
}

func TestClockLandsExactlyOnBounds(t *testing.T) {
	c := tenth()
	c, _ = c.Forward()
	c = drive(c, 10)
	assert.Equal(t, 1.0, c.Progress(), "ten tenth-steps land on 1, not next to it")
	assert.Equal(t, StatusCompleted, c.Status())

	c, _ = c.Reverse()
	c = drive(c, 10)
	assert.Equal(t, 0.0, c.Progress(), "the run back lands on 0")
	assert.Equal(t, StatusIdle, c.Status())
	assert.False(t, c.Running())
}

func TestClockReversesFromCurrentProgress(t *testing.T) {
	c := tenth()
	c, _ = c.Forward()
	c = drive(c, 7)
	require.InDelta(t, 0.7, c.Progress(), 1e-9)

	c, cmd := c.Reverse()
	require.NotNil(t, cmd)
	assert.Equal(t, StatusReverse, c.Status())
	assert.InDelta(t, 0.7, c.Progress(), 1e-9, "reversal must not jump or reset")

	c, _ = c.Update(cmd())
	assert.InDelta(t, 0.6, c.Progress(), 1e-9, "progress decreases from where it was")

	c = drive(c, 6)
	assert.Equal(t, 0.0, c.Progress())
	assert.Equal(t, StatusIdle, c.Status())
}

func TestClockDoubleFlipWithinOneRun(t *testing.T) {
	c := tenth()
	c, _ = c.Forward()
	c = drive(c, 5)

	c, _ = c.Reverse()
	c = drive(c, 2)
	require.InDelta(t, 0.3, c.Progress(), 1e-9)

	c, cmd := c.Forward()
	require.NotNil(t, cmd)
	c, _ = c.Update(cmd())
	assert.InDelta(t, 0.4, c.Progress(), 1e-9)
	assert.Equal(t, StatusForward, c.Status())
}

func TestClockIgnoresStaleFrames(t *testing.T) {
	c := tenth()
	c, _ = c.Forward()
	c = drive(c, 3)

	stale := c.Frame()
	c, _ = c.Reverse()

	c2, cmd := c.Update(stale)
	assert.Equal(t, c.Progress(), c2.Progress(), "frames from before the reversal are dead")
	assert.Nil(t, cmd)
}

func TestClockIgnoresForeignFrames(t *testing.T) {
	c := tenth()
	c, _ = c.Forward()

	other := tenth()
	other, _ = other.Forward()

	c2, cmd := c.Update(other.Frame())
	assert.Equal(t, c.Progress(), c2.Progress())
	assert.Nil(t, cmd)
}

func TestClockStop(t *testing.T) {
	c := tenth()
	c, _ = c.Forward()
	c = drive(c, 3)
	pending := c.Frame()

	c = c.Stop()
	assert.Equal(t, StatusIdle, c.Status())
	assert.InDelta(t, 0.3, c.Progress(), 1e-9, "stop halts in place")

	c2, cmd := c.Update(pending)
	assert.Equal(t, c.Progress(), c2.Progress(), "stop invalidates in-flight frames")
	assert.Nil(t, cmd)

	done := tenth(At(1)).Stop()
	assert.Equal(t, StatusCompleted, done.Status())
}

func TestClockTimeScale(t *testing.T) {
	c := tenth(WithTimeScale(2))
	c, _ = c.Forward()
	c = drive(c, 1)
	assert.InDelta(t, 0.05, c.Progress(), 1e-9, "scale 2 halves every step")
}

func TestClockReverseDuration(t *testing.T) {
	c := tenth(WithReverseDuration(500*time.Millisecond), At(1))
	c, cmd := c.Reverse()
	require.NotNil(t, cmd)
	c, _ = c.Update(cmd())
	assert.InDelta(t, 0.8, c.Progress(), 1e-9, "reverse runs on its own duration")
}

func TestClockSetDurationDoesNotRestart(t *testing.T) {
	c := tenth()
	c, _ = c.Forward()
	c = drive(c, 3)

	c = c.SetDuration(500 * time.Millisecond)
	assert.Equal(t, StatusForward, c.Status())
	assert.InDelta(t, 0.3, c.Progress(), 1e-9)

	c = drive(c, 1)
	assert.InDelta(t, 0.5, c.Progress(), 1e-9, "new step size applies from the next frame")
}

func TestClockAt(t *testing.T) {
	tests := []struct {
		name     string
		progress float64
		want     float64
		status   Status
	}{
		{name: "at completion", progress: 1, want: 1, status: StatusCompleted},
		{name: "midway", progress: 0.5, want: 0.5, status: StatusIdle},
		{name: "clamped above", progress: 2, want: 1, status: StatusCompleted},
		{name: "clamped below", progress: -1, want: 0, status: StatusIdle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tenth(At(tt.progress))
			assert.Equal(t, tt.want, c.Progress())
			assert.Equal(t, tt.status, c.Status())
		})
	}
}

func TestClockEval(t *testing.T) {
	c := tenth(At(0.5))
	assert.InDelta(t, 0.5, c.Eval(Linear), 1e-9)
	assert.InDelta(t, Standard(0.5), c.Eval(Standard), 1e-9)
}

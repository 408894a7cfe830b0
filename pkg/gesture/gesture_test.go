package gesture

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/timeband/pkg/clock"
)

var epoch = time.Date(2017, time.December, 29, 9, 0, 0, 0, time.UTC)

func newClassifier() *Classifier {
	return New(DefaultConfig(), clock.NewManual(epoch))
}

// burst feeds n events spaced by gap and returns the number of steps fired
// immediately plus the number released by draining the queue.
func burst(c *Classifier, n int, gap time.Duration, ev WheelEvent) (fired int, queued int, dir Direction) {
	for i := 0; i < n; i++ {
		e := ev
		e.Time = epoch.Add(time.Duration(i) * gap)
		if r := c.Feed(e); r.Fire {
			fired++
			dir = r.Command.Direction
		}
	}
	for {
		cmd, ok := c.Finish()
		if !ok {
			break
		}
		queued++
		dir = cmd.Direction
	}
	return fired, queued, dir
}

func TestDiscreteBurstYieldsTwoSteps(t *testing.T) {
	c := newClassifier()
	fired, queued, dir := burst(c, 6, 20*time.Millisecond, WheelEvent{DeltaY: -3, Mode: DeltaLine})
	assert.Equal(t, 1, fired)
	assert.Equal(t, 1, queued)
	assert.Equal(t, ZoomIn, dir)
}

func TestLongDiscreteBurstSkipsTwoLevels(t *testing.T) {
	c := newClassifier()
	fired, queued, dir := burst(c, 10, 15*time.Millisecond, WheelEvent{DeltaY: 3, Mode: DeltaLine})
	assert.Equal(t, 1, fired)
	assert.Equal(t, 2, queued)
	assert.Equal(t, ZoomOut, dir)
}

func TestFastDiscreteBurstPromotesOnFinish(t *testing.T) {
	for _, gap := range []time.Duration{5 * time.Millisecond, 10 * time.Millisecond, 15 * time.Millisecond} {
		t.Run(gap.String(), func(t *testing.T) {
			m := clock.NewManual(epoch)
			c := New(DefaultConfig(), m)
			fired := 0
			for i := 0; i < 6; i++ {
				ev := WheelEvent{DeltaY: -3, Mode: DeltaLine, Time: epoch.Add(time.Duration(i) * gap)}
				if c.Feed(ev).Fire {
					fired++
				}
			}
			require.Equal(t, 1, fired)
			assert.Zero(t, c.Pending().Steps, "burst shorter than MinDuration stays unpromoted")

			m.Advance(300 * time.Millisecond)
			cmd, ok := c.Finish()
			require.True(t, ok)
			assert.Equal(t, Command{Direction: ZoomIn, Steps: 1}, cmd)

			_, ok = c.Finish()
			assert.False(t, ok, "an expired gesture converts only once")
		})
	}
}

func TestFinishLeavesShortGestureAlone(t *testing.T) {
	m := clock.NewManual(epoch)
	c := New(DefaultConfig(), m)
	require.True(t, c.Feed(WheelEvent{DeltaY: -3, Mode: DeltaLine, Time: epoch}).Fire)
	c.Feed(WheelEvent{DeltaY: -3, Mode: DeltaLine, Time: epoch.Add(5 * time.Millisecond)})

	m.Advance(300 * time.Millisecond)
	_, ok := c.Finish()
	assert.False(t, ok)
	assert.False(t, c.InFlight())
}

func TestTrackpadStreamDoesNotOverTrigger(t *testing.T) {
	c := newClassifier()
	fired, queued, _ := burst(c, 6, 16*time.Millisecond, WheelEvent{DeltaY: -6, Mode: DeltaPixel})
	assert.Equal(t, 1, fired)
	assert.Zero(t, queued)
}

func TestPixelNotchesCountAsDiscrete(t *testing.T) {
	c := newClassifier()
	fired, queued, _ := burst(c, 6, 20*time.Millisecond, WheelEvent{DeltaY: 100, Mode: DeltaPixel})
	assert.Equal(t, 1, fired)
	assert.Equal(t, 1, queued)
}

func TestQueuedStepsWaitForTransition(t *testing.T) {
	c := newClassifier()
	for i := 0; i < 6; i++ {
		c.Feed(WheelEvent{DeltaY: -3, Mode: DeltaLine, Time: epoch.Add(time.Duration(i) * 20 * time.Millisecond)})
	}
	require.True(t, c.InFlight())
	assert.Equal(t, Command{Direction: ZoomIn, Steps: 1}, c.Pending())

	cmd, ok := c.Finish()
	require.True(t, ok)
	assert.Equal(t, Command{Direction: ZoomIn, Steps: 1}, cmd)
	assert.True(t, c.InFlight())

	_, ok = c.Finish()
	assert.False(t, ok)
	assert.False(t, c.InFlight())
}

func TestReversalDiscardsQueue(t *testing.T) {
	c := newClassifier()
	for i := 0; i < 6; i++ {
		c.Feed(WheelEvent{DeltaY: -3, Mode: DeltaLine, Time: epoch.Add(time.Duration(i) * 20 * time.Millisecond)})
	}
	require.Equal(t, 1, c.Pending().Steps)

	r := c.Feed(WheelEvent{DeltaY: 3, Mode: DeltaLine, Time: epoch.Add(130 * time.Millisecond)})
	assert.False(t, r.Fire)
	assert.Zero(t, c.Pending().Steps)

	_, ok := c.Finish()
	assert.False(t, ok)
}

func TestAxisClassification(t *testing.T) {
	c := newClassifier()

	r := c.Feed(WheelEvent{DeltaX: 5, DeltaY: 5})
	assert.Equal(t, AxisNone, r.Axis)

	r = c.Feed(WheelEvent{DeltaY: 2})
	assert.Equal(t, AxisNone, r.Axis)

	r = c.Feed(WheelEvent{DeltaX: 20, DeltaY: 2})
	assert.Equal(t, AxisHorizontal, r.Axis)
	assert.Equal(t, 20.0, r.DeltaX)
	assert.False(t, c.InFlight())

	r = c.Feed(WheelEvent{DeltaX: -1, Mode: DeltaLine})
	assert.Equal(t, AxisHorizontal, r.Axis)
	assert.Equal(t, -40.0, r.DeltaX)
}

func TestWindowLapseStartsNewGesture(t *testing.T) {
	c := newClassifier()
	r := c.Feed(WheelEvent{DeltaY: -3, Mode: DeltaLine, Time: epoch})
	require.True(t, r.Fire)
	_, ok := c.Finish()
	require.False(t, ok)

	r = c.Feed(WheelEvent{DeltaY: -3, Mode: DeltaLine, Time: epoch.Add(50 * time.Millisecond)})
	assert.False(t, r.Fire, "inside the window the gesture keeps aggregating")

	r = c.Feed(WheelEvent{DeltaY: -3, Mode: DeltaLine, Time: epoch.Add(500 * time.Millisecond)})
	assert.True(t, r.Fire)
	assert.Equal(t, Command{Direction: ZoomIn, Steps: 1}, r.Command)
}

func TestZeroTimeUsesClock(t *testing.T) {
	m := clock.NewManual(epoch)
	c := New(DefaultConfig(), m)
	require.True(t, c.Feed(WheelEvent{DeltaY: -3, Mode: DeltaLine}).Fire)
	c.Finish()
	m.Advance(time.Second)
	assert.True(t, c.Feed(WheelEvent{DeltaY: -3, Mode: DeltaLine}).Fire)
}

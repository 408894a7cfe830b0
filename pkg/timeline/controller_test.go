package timeline

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/timeband/pkg/clock"
	"tableflip.dev/timeband/pkg/gesture"
	"tableflip.dev/timeband/pkg/selection"
	"tableflip.dev/timeband/pkg/timeband"
	"tableflip.dev/timeband/pkg/window"
)

// recorder is a Surface that keeps every frame and interleaves render and
// event entries in one log.
type recorder struct {
	width  int
	frames []Frame
	log    []string
}

func (r *recorder) Width() int { return r.width }

func (r *recorder) Render(f Frame) {
	r.frames = append(r.frames, f)
	r.log = append(r.log, fmt.Sprintf("render %s %s", f.Granularity, f.Phase))
}

func (r *recorder) last() Frame { return r.frames[len(r.frames)-1] }

func (r *recorder) index(entry string) int {
	for i, e := range r.log {
		if e == entry {
			return i
		}
	}
	return -1
}

func (r *recorder) events() []string {
	var out []string
	for _, e := range r.log {
		if len(e) > 6 && e[:6] == "event " {
			out = append(out, e[6:])
		}
	}
	return out
}

var noon = time.Date(2017, time.December, 29, 12, 0, 0, 0, time.Local)

func newTestController(t *testing.T, opts Options) (*Controller, *recorder, *clock.Manual) {
	t.Helper()
	clk := clock.NewManual(noon)
	opts.Clock = clk
	if opts.Scheduler == nil {
		opts.Scheduler = clk
	}
	if opts.InitialAnchor.IsZero() {
		opts.InitialAnchor = timeband.NewDate(2017, time.December, 29)
	}
	surface := &recorder{width: 80}
	c, err := New(surface, opts)
	require.NoError(t, err)
	for _, name := range []EventName{SelectionChange, GranularityChange, ViewChange} {
		c.On(name, func(ev Event) {
			entry := string(ev.Name)
			if ev.Name == GranularityChange {
				entry += " " + ev.Granularity.String()
			}
			surface.log = append(surface.log, "event "+entry)
		})
	}
	t.Cleanup(c.Destroy)
	return c, surface, clk
}

func TestNewRequiresSurface(t *testing.T) {
	_, err := New(nil, Options{})
	require.ErrorIs(t, err, ErrNoSurface)
}

func TestNewRejectsInvalidOptions(t *testing.T) {
	surface := &recorder{width: 80}

	_, err := New(surface, Options{ItemWidths: map[timeband.Granularity]int{timeband.Day: 0}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "item width for day")

	_, err = New(surface, Options{InitialGranularity: timeband.Granularity(9)})
	require.ErrorIs(t, err, timeband.ErrInvalidGranularity)

	_, err = New(surface, Options{TransitionDuration: -time.Second})
	require.Error(t, err)
}

func TestNewRendersCenteredOnAnchor(t *testing.T) {
	c, surface, _ := newTestController(t, Options{})

	require.Len(t, surface.frames, 1)
	center, ok := c.Center()
	require.True(t, ok)
	assert.Equal(t, timeband.NewDate(2017, time.December, 29), center.Date)
	assert.True(t, center.IsCurrentPeriod)
	assert.Len(t, surface.last().Cells, 11)
	assert.Equal(t, timeband.Day, c.Granularity())
}

func TestClickDay(t *testing.T) {
	c, surface, _ := newTestController(t, Options{})

	assert.Equal(t, selection.ActionSelect, c.ClickKey("2017-12-29"))
	assert.Equal(t, Range{Start: "2017-12-29", End: "2017-12-29", Granularity: timeband.Day}, c.SelectedRange())
	assert.Equal(t, []string{"selectionChange"}, surface.events())
	assert.Less(t, surface.index("render day idle"), surface.index("event selectionChange"))

	for _, cell := range surface.last().Cells {
		selected := cell.Item.Key() == "2017-12-29"
		assert.Equal(t, selected, cell.Selected, cell.Item.Key())
		assert.Equal(t, selected, cell.Boundary, cell.Item.Key())
	}
}

func TestClickMonthAfterSwitch(t *testing.T) {
	c, _, clk := newTestController(t, Options{})

	require.NoError(t, c.SetGranularity(timeband.Month, timeband.NewDate(2017, time.September, 15)))
	clk.Advance(DefaultTransitionDuration)
	require.Equal(t, timeband.Month, c.Granularity())
	require.False(t, c.Transitioning())

	assert.Equal(t, selection.ActionSelect, c.ClickKey("2017-09"))
	assert.Equal(t, Range{Start: "2017-09-01", End: "2017-09-30", Granularity: timeband.Month}, c.SelectedRange())
}

func TestSingleDateLockCompletesRange(t *testing.T) {
	c, surface, _ := newTestController(t, Options{
		SingleDateMode: true,
		InitialAnchor:  timeband.NewDate(2017, time.January, 15),
	})

	assert.Equal(t, selection.ActionSelect, c.ClickKey("2017-01-10"))
	assert.False(t, c.Selection().IsLocked)
	assert.Equal(t, selection.ActionLock, c.ClickKey("2017-01-10"))
	assert.True(t, c.Selection().IsLocked)

	for _, cell := range surface.last().Cells {
		assert.Equal(t, cell.Item.Key() == "2017-01-10", cell.Locked, cell.Item.Key())
	}

	assert.Equal(t, selection.ActionCompleteRange, c.ClickKey("2017-01-20"))
	assert.Equal(t, "2017-01-10", c.SelectedRange().Start)
	assert.Equal(t, "2017-01-20", c.SelectedRange().End)
	assert.False(t, c.Selection().IsLocked)
}

func TestSingleDateLockToggles(t *testing.T) {
	c, _, _ := newTestController(t, Options{SingleDateMode: true})

	c.ClickKey("2017-12-29")
	c.ClickKey("2017-12-29")
	assert.Equal(t, selection.ActionUnlock, c.ClickKey("2017-12-29"))
	sel := c.Selection()
	assert.False(t, sel.IsLocked)
	assert.Equal(t, timeband.NewDate(2017, time.December, 29), sel.Start)
	assert.True(t, sel.End.IsZero())
}

func TestRangeSelectSwapsReversedClicks(t *testing.T) {
	c, _, _ := newTestController(t, Options{AllowRangeSelection: true})

	assert.Equal(t, selection.ActionBeginRange, c.ClickKey("2017-12-29"))
	assert.True(t, c.Selection().IsRangeInProgress)
	assert.Equal(t, selection.ActionCompleteRange, c.ClickKey("2017-12-20"))
	assert.Equal(t, "2017-12-20", c.SelectedRange().Start)
	assert.Equal(t, "2017-12-29", c.SelectedRange().End)
}

func TestRangeAcrossGranularities(t *testing.T) {
	c, _, clk := newTestController(t, Options{
		AllowRangeSelection: true,
		InitialGranularity:  timeband.Month,
		InitialAnchor:       timeband.NewDate(2017, time.September, 15),
	})

	require.Equal(t, selection.ActionBeginRange, c.ClickKey("2017-09"))
	assert.Equal(t, timeband.Month, c.Selection().StartedAt)

	require.NoError(t, c.SetGranularity(timeband.Day, timeband.NewDate(2017, time.October, 15)))
	clk.Advance(DefaultTransitionDuration)
	require.Equal(t, timeband.Day, c.Granularity())
	assert.True(t, c.Selection().IsRangeInProgress)

	require.Equal(t, selection.ActionCompleteRange, c.ClickKey("2017-10-15"))
	assert.Equal(t, Range{Start: "2017-09-01", End: "2017-10-15", Granularity: timeband.Day}, c.SelectedRange())
}

func TestRangeStartMarksEveryCoveredDay(t *testing.T) {
	c, surface, clk := newTestController(t, Options{
		AllowRangeSelection: true,
		InitialGranularity:  timeband.Month,
		InitialAnchor:       timeband.NewDate(2017, time.September, 15),
	})

	require.Equal(t, selection.ActionBeginRange, c.ClickKey("2017-09"))
	require.NoError(t, c.SetGranularity(timeband.Day, timeband.NewDate(2017, time.September, 3)))
	clk.Advance(DefaultTransitionDuration)
	require.Equal(t, timeband.Day, c.Granularity())

	inside, outside := 0, 0
	for _, cell := range surface.last().Cells {
		september := cell.Item.Date.Year == 2017 && cell.Item.Date.Month == time.September
		assert.Equal(t, september, cell.Pending, cell.Item.Key())
		assert.False(t, cell.Locked, cell.Item.Key())
		if september {
			inside++
		} else {
			outside++
		}
	}
	assert.Greater(t, inside, 1)
	assert.Positive(t, outside)
}

func TestTransitionPhasesAndOrdering(t *testing.T) {
	c, surface, clk := newTestController(t, Options{})

	require.NoError(t, c.SetGranularity(timeband.Month, timeband.Date{}))
	assert.True(t, c.Transitioning())
	assert.Equal(t, PhaseOutgoing, c.Phase())
	assert.Equal(t, timeband.Day, c.Granularity())
	assert.Equal(t, "render day outgoing", surface.log[len(surface.log)-1])
	assert.Empty(t, surface.events())

	clk.Advance(DefaultTransitionDuration / 2)
	assert.Equal(t, PhaseIncoming, c.Phase())
	assert.Equal(t, timeband.Month, c.Granularity())
	rendered := surface.index("render month incoming")
	require.NotEqual(t, -1, rendered)
	assert.Less(t, rendered, surface.index("event granularityChange month"))
	assert.Equal(t, []string{"granularityChange month", "viewChange"}, surface.events())

	clk.Advance(DefaultTransitionDuration / 2)
	assert.False(t, c.Transitioning())
	assert.Equal(t, "render month idle", surface.log[len(surface.log)-1])

	center, ok := c.Center()
	require.True(t, ok)
	assert.Equal(t, "2017-12", center.Key())
}

func TestClickDuringTransitionNotifiesAfterwards(t *testing.T) {
	c, surface, clk := newTestController(t, Options{})

	require.NoError(t, c.SetGranularity(timeband.Month, timeband.Date{}))
	assert.Equal(t, selection.ActionSelect, c.ClickAt(40))
	assert.Equal(t, timeband.NewDate(2017, time.December, 29), c.Selection().Start)
	assert.Empty(t, surface.events())

	clk.Advance(DefaultTransitionDuration)
	assert.Equal(t, []string{"granularityChange month", "viewChange", "selectionChange"}, surface.events())
	assert.Less(t, surface.index("render month idle"), surface.index("event selectionChange"))
}

func TestWheelBurstChainsTwoLevels(t *testing.T) {
	c, surface, clk := newTestController(t, Options{
		InitialGranularity: timeband.Year,
		InitialAnchor:      timeband.NewDate(2017, time.June, 1),
	})

	for i := 0; i < 6; i++ {
		if i > 0 {
			clk.Advance(20 * time.Millisecond)
		}
		c.Wheel(gesture.WheelEvent{DeltaY: -3, Mode: gesture.DeltaLine}, 40)
	}
	assert.True(t, c.Transitioning())

	clk.Advance(DefaultTransitionDuration)
	assert.Equal(t, timeband.Month, c.Granularity())
	assert.True(t, c.Transitioning(), "queued step starts without further input")

	clk.Advance(DefaultTransitionDuration)
	assert.False(t, c.Transitioning())
	assert.Equal(t, timeband.Day, c.Granularity())
	assert.Equal(t, []string{"granularityChange month", "granularityChange day"}, filter(surface.events(), "granularityChange"))

	center, ok := c.Center()
	require.True(t, ok)
	assert.Equal(t, timeband.NewDate(2017, time.January, 1), center.Date)
}

func TestFastWheelBurstChainsTwoLevels(t *testing.T) {
	c, surface, clk := newTestController(t, Options{
		InitialGranularity: timeband.Year,
		InitialAnchor:      timeband.NewDate(2017, time.June, 1),
	})

	for i := 0; i < 6; i++ {
		if i > 0 {
			clk.Advance(5 * time.Millisecond)
		}
		c.Wheel(gesture.WheelEvent{DeltaY: -3, Mode: gesture.DeltaLine}, 40)
	}

	clk.Advance(DefaultTransitionDuration)
	assert.Equal(t, timeband.Month, c.Granularity())
	assert.True(t, c.Transitioning())

	clk.Advance(DefaultTransitionDuration)
	assert.False(t, c.Transitioning())
	assert.Equal(t, timeband.Day, c.Granularity())
	assert.Equal(t, []string{"granularityChange month", "granularityChange day"}, filter(surface.events(), "granularityChange"))
}

func TestWheelAtLimitReleasesClassifier(t *testing.T) {
	c, _, clk := newTestController(t, Options{})

	c.Wheel(gesture.WheelEvent{DeltaY: -3, Mode: gesture.DeltaLine}, 40)
	assert.False(t, c.Transitioning())

	clk.Advance(time.Second)
	c.Wheel(gesture.WheelEvent{DeltaY: 3, Mode: gesture.DeltaLine}, 40)
	assert.True(t, c.Transitioning())
	clk.Advance(DefaultTransitionDuration)
	assert.Equal(t, timeband.Month, c.Granularity())
}

func TestHorizontalWheelPans(t *testing.T) {
	c, surface, _ := newTestController(t, Options{})
	before := c.Viewport().Offset

	c.Wheel(gesture.WheelEvent{DeltaX: 200, Mode: gesture.DeltaPixel}, 40)
	assert.Equal(t, before+20, c.Viewport().Offset)
	assert.Equal(t, []string{"viewChange"}, surface.events())
}

func TestPanBackwardKeepsItemsInPlace(t *testing.T) {
	c, _, _ := newTestController(t, Options{})
	anchor := timeband.NewDate(2017, time.December, 29)

	c.Pan(-430)
	visible := c.Visible()
	require.NotEmpty(t, visible)
	assert.Equal(t, anchor.AddDays(-59), visible[0].Date)
	assert.Equal(t, 61, c.Viewport().First)

	for i := 1; i < len(visible); i++ {
		assert.True(t, visible[i-1].Date.Before(visible[i].Date))
	}
}

func TestHoverPreviewDoesNotMutate(t *testing.T) {
	c, surface, clk := newTestController(t, Options{SingleDateMode: true})

	assert.Equal(t, "select 2017-12-29", c.HoverKey("2017-12-29"))
	assert.Equal(t, selection.Selection{}, c.Selection())
	f := surface.last()
	assert.Equal(t, "select 2017-12-29", f.Hint)
	hovered := 0
	for _, cell := range f.Cells {
		if cell.Hovered {
			hovered++
			assert.Equal(t, "2017-12-29", cell.Item.Key())
		}
	}
	assert.Equal(t, 1, hovered)

	c.ClickKey("2017-12-29")
	assert.Equal(t, "lock 2017-12-29 as range start", c.HoverKey("2017-12-29"))

	require.NoError(t, c.SetGranularity(timeband.Year, timeband.Date{}))
	assert.Empty(t, c.HoverAt(40))
	clk.Advance(DefaultTransitionDuration)
	c.Leave()
	assert.Empty(t, surface.last().Hint)
}

func TestSetSelectedRangeTransitionsToDay(t *testing.T) {
	c, surface, clk := newTestController(t, Options{InitialGranularity: timeband.Month})

	err := c.SetSelectedRange(timeband.NewDate(2017, time.March, 10), timeband.NewDate(2017, time.March, 1))
	require.NoError(t, err)
	assert.True(t, c.Transitioning())

	clk.Advance(DefaultTransitionDuration)
	assert.Equal(t, timeband.Day, c.Granularity())
	assert.Equal(t, []string{"granularityChange day", "viewChange", "selectionChange"}, surface.events())
	assert.Equal(t, Range{Start: "2017-03-01", End: "2017-03-10", Granularity: timeband.Day}, c.SelectedRange())

	center, ok := c.Center()
	require.True(t, ok)
	assert.Equal(t, timeband.NewDate(2017, time.March, 1), center.Date)
}

func TestSetSelectedRangeDuringTransitionToDay(t *testing.T) {
	c, surface, clk := newTestController(t, Options{InitialGranularity: timeband.Month})

	require.NoError(t, c.SetGranularity(timeband.Day, timeband.NewDate(2017, time.December, 29)))
	require.True(t, c.Transitioning())
	require.NoError(t, c.SetSelectedRange(timeband.NewDate(2015, time.March, 1), timeband.NewDate(2015, time.March, 5)))

	clk.Advance(DefaultTransitionDuration)
	require.False(t, c.Transitioning())
	assert.Equal(t, timeband.Day, c.Granularity())
	assert.Equal(t, Range{Start: "2015-03-01", End: "2015-03-05", Granularity: timeband.Day}, c.SelectedRange())

	center, ok := c.Center()
	require.True(t, ok)
	assert.Equal(t, "2015-03-01", center.Key())

	selected := 0
	for _, cell := range surface.last().Cells {
		if cell.Selected {
			selected++
		}
	}
	assert.Positive(t, selected)
	assert.Contains(t, surface.events(), "selectionChange")
}

func TestSetSelectedRangeAtDay(t *testing.T) {
	c, surface, _ := newTestController(t, Options{})

	require.NoError(t, c.SetSelectedRange(timeband.NewDate(2017, time.December, 28), timeband.Date{}))
	assert.False(t, c.Transitioning())
	assert.Equal(t, Range{Start: "2017-12-28", End: "2017-12-28", Granularity: timeband.Day}, c.SelectedRange())
	assert.Equal(t, []string{"selectionChange"}, surface.events())

	c.ClearSelection()
	assert.True(t, c.SelectedRange().Empty())
	c.ClearSelection()
	assert.Equal(t, []string{"selectionChange", "selectionChange"}, surface.events())
}

func TestQueuedGranularityRequestRunsAfterTransition(t *testing.T) {
	c, _, clk := newTestController(t, Options{})

	require.NoError(t, c.SetGranularity(timeband.Month, timeband.Date{}))
	require.NoError(t, c.SetGranularity(timeband.Year, timeband.Date{}))

	clk.Advance(DefaultTransitionDuration)
	assert.Equal(t, timeband.Month, c.Granularity())
	assert.True(t, c.Transitioning())

	clk.Advance(DefaultTransitionDuration)
	assert.Equal(t, timeband.Year, c.Granularity())
	assert.False(t, c.Transitioning())
}

func TestInlineSchedulerCompletesSynchronously(t *testing.T) {
	c, surface, _ := newTestController(t, Options{Scheduler: &clock.Inline{}})

	require.NoError(t, c.SetGranularity(timeband.Year, timeband.Date{}))
	assert.False(t, c.Transitioning())
	assert.Equal(t, timeband.Year, c.Granularity())
	assert.Equal(t, "render year idle", surface.log[len(surface.log)-1])
}

func TestDegenerateClicksIgnored(t *testing.T) {
	c, surface, _ := newTestController(t, Options{})

	assert.Equal(t, selection.ActionNone, c.ClickKey("1999-01-01"))
	assert.Equal(t, selection.ActionNone, c.ClickKey("garbage"))
	assert.Equal(t, selection.ActionNone, c.ClickAt(-1))
	assert.Equal(t, selection.ActionNone, c.ClickAt(500))
	assert.Empty(t, surface.events())
}

func TestCustomRenderer(t *testing.T) {
	_, surface, _ := newTestController(t, Options{
		DayRenderer: func(item window.Item) string { return fmt.Sprintf("d%02d", item.Date.Day) },
	})
	for _, cell := range surface.last().Cells {
		assert.Equal(t, fmt.Sprintf("d%02d", cell.Item.Date.Day), cell.Label)
	}
}

func TestOffAndDestroy(t *testing.T) {
	c, surface, clk := newTestController(t, Options{})
	calls := 0
	sub := c.On(SelectionChange, func(Event) { calls++ })
	c.ClickKey("2017-12-29")
	assert.True(t, c.Off(sub))
	assert.False(t, c.Off(sub))
	c.ClickKey("2017-12-28")
	assert.Equal(t, 1, calls)

	require.NoError(t, c.SetGranularity(timeband.Month, timeband.Date{}))
	frames := len(surface.frames)
	c.Destroy()
	assert.Zero(t, clk.Pending())
	clk.Advance(time.Second)
	assert.Len(t, surface.frames, frames)
	assert.ErrorIs(t, c.SetGranularity(timeband.Year, timeband.Date{}), ErrDestroyed)
	assert.Equal(t, selection.ActionNone, c.ClickAt(40))
	assert.Zero(t, c.Granularity())
}

func TestRandomInteractionKeepsRangeOrdered(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for _, mode := range []Options{{}, {AllowRangeSelection: true}, {SingleDateMode: true}} {
		mode.Scheduler = &clock.Inline{}
		c, surface, _ := newTestController(t, mode)
		c.On(SelectionChange, func(ev Event) {
			if !ev.Selection.End.IsZero() {
				require.False(t, ev.Selection.End.Before(ev.Selection.Start))
			}
		})
		for i := 0; i < 300; i++ {
			switch rng.Intn(5) {
			case 0:
				c.Zoom(gesture.Direction(rng.Intn(2)*2-1), rng.Intn(surface.width))
			case 1:
				c.Pan(rng.Intn(41) - 20)
			default:
				c.ClickAt(rng.Intn(surface.width))
			}
			sel := c.Selection()
			if !sel.End.IsZero() {
				require.False(t, sel.End.Before(sel.Start))
			}
		}
	}
}

func filter(entries []string, prefix string) []string {
	var out []string
	for _, e := range entries {
		if len(e) >= len(prefix) && e[:len(prefix)] == prefix {
			out = append(out, e)
		}
	}
	return out
}

package window

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/timeband/pkg/timeband"
)

var today = timeband.NewDate(2017, time.December, 29)

func newWindow(t *testing.T, g timeband.Granularity, width, batch int) *Window {
	t.Helper()
	w, err := New(g, today, today, Config{ItemWidth: width, BatchSize: batch})
	require.NoError(t, err)
	return w
}

func requireStrictlyIncreasing(t *testing.T, w *Window) {
	t.Helper()
	seen := map[string]bool{}
	items := w.Items()
	for i, item := range items {
		require.False(t, seen[item.Key()], "duplicate period %s", item.Key())
		seen[item.Key()] = true
		if i > 0 {
			require.True(t, items[i-1].Date.Before(item.Date), "%s not before %s", items[i-1].Date, item.Date)
		}
		idx, ok := w.IndexOf(item.Date)
		require.True(t, ok)
		require.Equal(t, i, idx)
	}
}

func TestGenerate(t *testing.T) {
	ref := timeband.NewDate(2017, time.March, 1)
	back := Generate(Backward, timeband.Month, ref, 3, today)
	require.Len(t, back, 3)
	assert.Equal(t, timeband.NewDate(2016, time.December, 1), back[0].Date)
	assert.Equal(t, timeband.NewDate(2017, time.February, 1), back[2].Date)

	fwd := Generate(Forward, timeband.Day, timeband.NewDate(2017, time.December, 30), 3, today)
	require.Len(t, fwd, 3)
	assert.Equal(t, timeband.NewDate(2017, time.December, 31), fwd[0].Date)
	assert.Equal(t, timeband.NewDate(2018, time.January, 2), fwd[2].Date)

	assert.Nil(t, Generate(Forward, timeband.Day, ref, 0, today))
}

func TestNewMarksCurrentPeriod(t *testing.T) {
	w := newWindow(t, timeband.Month, 6, 4)
	item, _, ok := w.Lookup("2017-12")
	require.True(t, ok)
	assert.True(t, item.IsCurrentPeriod)
	other, _, ok := w.Lookup("2017-11")
	require.True(t, ok)
	assert.False(t, other.IsCurrentPeriod)
}

func TestNewRejectsBadConfig(t *testing.T) {
	_, err := New(timeband.Day, today, today, Config{ItemWidth: 0, BatchSize: 4})
	assert.Error(t, err)
	_, err = New(timeband.Granularity(9), today, today, Config{ItemWidth: 3, BatchSize: 4})
	assert.ErrorIs(t, err, timeband.ErrInvalidGranularity)
}

func TestExtendKeepsOrderAndRegistry(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for _, g := range timeband.All {
		w := newWindow(t, g, 4, 5)
		for i := 0; i < 40; i++ {
			dir := Forward
			if rng.Intn(2) == 0 {
				dir = Backward
			}
			w.Extend(dir, 1+rng.Intn(7))
		}
		requireStrictlyIncreasing(t, w)
	}
}

func TestBackwardExtendPreservesColumnMapping(t *testing.T) {
	w := newWindow(t, timeband.Day, 4, 10)
	const viewport = 40
	w.SetOffset(60, viewport)

	before := map[int]timeband.Date{}
	for x := 0; x < viewport; x++ {
		item, _, ok := w.ItemAtX(x)
		require.True(t, ok)
		before[x] = item.Date
	}

	w.Extend(Backward, 25)

	for x := 0; x < viewport; x++ {
		item, _, ok := w.ItemAtX(x)
		require.True(t, ok)
		assert.Equal(t, before[x], item.Date, "column %d moved", x)
	}
}

func TestEnsureLoadsNearEdges(t *testing.T) {
	w := newWindow(t, timeband.Month, 6, 8)
	const viewport = 60
	w.CenterOn(today, viewport)
	require.GreaterOrEqual(t, w.Offset(), ExtendThreshold*6)
	require.GreaterOrEqual(t, w.ContentWidth()-(w.Offset()+viewport), ExtendThreshold*6)

	center, ok := w.Center(viewport)
	require.True(t, ok)
	assert.Equal(t, "2017-12", center.Key())

	firstBefore, _ := w.At(0)
	ext := w.Scroll(-w.Offset(), viewport)
	assert.Positive(t, ext.Prepended)
	assert.Zero(t, ext.Appended)
	firstAfter, _ := w.At(0)
	assert.True(t, firstAfter.Date.Before(firstBefore.Date))
	requireStrictlyIncreasing(t, w)

	ext = w.Scroll(w.ContentWidth(), viewport)
	assert.Positive(t, ext.Appended)
	requireStrictlyIncreasing(t, w)
}

func TestAnchorAtPlacesItemUnderColumn(t *testing.T) {
	w := newWindow(t, timeband.Day, 5, 10)
	target := timeband.NewDate(2018, time.June, 14)
	w.AnchorAt(target, 17, 80)
	item, _, ok := w.ItemAtX(17)
	require.True(t, ok)
	assert.Equal(t, target, item.Date)
	requireStrictlyIncreasing(t, w)
}

func TestViewport(t *testing.T) {
	w := newWindow(t, timeband.Year, 10, 10)
	w.SetOffset(95, 40)
	vp := w.Viewport(40)
	assert.Equal(t, w.Offset()/10, vp.First)
	assert.Equal(t, (w.Offset()+39)/10, vp.Last)
	assert.Equal(t, 0, w.XOf(vp.First)+w.Offset()%10)
}

package printers

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/timeband/pkg/timeband"
	"tableflip.dev/timeband/pkg/timeline"
	"tableflip.dev/timeband/pkg/window"
)

func newPrinter(t *testing.T) (*PrettyPrint, *bytes.Buffer) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	var buf bytes.Buffer
	return &PrettyPrint{Out: &buf}, &buf
}

func TestRange(t *testing.T) {
	pp, buf := newPrinter(t)

	pp.Range(timeline.Range{})
	pp.Range(timeline.Range{Start: "2017-12-29", End: "2017-12-29", Granularity: timeband.Day})
	pp.Range(timeline.Range{Start: "2017-12-01", End: "2018-02-28", Granularity: timeband.Month})

	assert.Equal(t, "no selection\n2017-12-29 (day)\n2017-12-01 → 2018-02-28 (month)\n", buf.String())
}

func TestPeriods(t *testing.T) {
	pp, buf := newPrinter(t)
	pp.Periods(timeband.NewDate(2020, time.February, 14))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, []string{"year", "2020", "2020", "2020-01-01", "2020-12-31", "366"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"month", "2020-02", "Feb", "2020-02-01", "2020-02-29", "29"}, strings.Fields(lines[2]))
	assert.Equal(t, []string{"day", "2020-02-14", "Fri", "14", "2020-02-14", "2020-02-14", "1"}, strings.Fields(lines[3]))
}

func TestItemsMarksCenter(t *testing.T) {
	pp, buf := newPrinter(t)
	today := timeband.NewDate(2017, time.December, 29)
	items := window.Generate(window.Forward, timeband.Month, timeband.NewDate(2017, time.October, 1), 3, today)

	pp.Items(items, nil, "2017-12")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, []string{"2017-11", "Nov", "2017-11-01", "2017-11-30"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{">", "2017-12", "Dec", "2017-12-01", "2017-12-31"}, strings.Fields(lines[2]))
	assert.Equal(t, []string{"2018-01", "Jan", "18", "2018-01-01", "2018-01-31"}, strings.Fields(lines[3]))
}

func TestItemsEmpty(t *testing.T) {
	pp, buf := newPrinter(t)
	pp.Items(nil, nil, "")
	assert.Equal(t, " none\n\n", buf.String())
}

func TestMonth(t *testing.T) {
	pp, buf := newPrinter(t)
	// February 2015 starts on a Sunday and fills exactly four weeks.
	pp.Month(timeband.NewDate(2015, time.February, 10), timeband.Date{}, timeband.Date{})

	lines := strings.Split(buf.String(), "\n")
	assert.Equal(t, "February 2015", strings.TrimSpace(lines[0]))
	assert.Equal(t, " 1  2  3  4  5  6  7 ", lines[1])
	assert.Equal(t, "22 23 24 25 26 27 28 ", lines[4])
}

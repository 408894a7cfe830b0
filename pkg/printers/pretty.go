// Package printers writes timeband results for humans.
package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/timeband/pkg/timeband"
	"tableflip.dev/timeband/pkg/timeline"
	"tableflip.dev/timeband/pkg/window"
)

type PrettyPrint struct {
	// Out defaults to color.Output.
	Out io.Writer
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out != nil {
		return pp.Out
	}
	return color.Output
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out())
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " item")
	default:
		_, _ = c.Fprintln(pp.out(), " items")
	}
}

// Range prints a selected range on one line.
func (pp *PrettyPrint) Range(r timeline.Range) {
	if r.Empty() {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprintln(pp.out(), "no selection")
		return
	}
	b := color.New(color.Bold)
	c := color.New(color.Faint)
	if r.Start == r.End {
		_, _ = b.Fprint(pp.out(), r.Start)
	} else {
		_, _ = b.Fprintf(pp.out(), "%s → %s", r.Start, r.End)
	}
	_, _ = c.Fprintf(pp.out(), " (%s)\n", r.Granularity)
}

// Periods prints the year, month and day containing d.
func (pp *PrettyPrint) Periods(d timeband.Date) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Granularity"), bold.Sprint("Key"), bold.Sprint("Label"),
		bold.Sprint("Start"), bold.Sprint("End"), bold.Sprint("Days"))
	for _, g := range timeband.All {
		p := timeband.PeriodOf(d, g)
		days := p.End().Time().Sub(p.Start().Time()).Hours()/24 + 1
		tbl.AddRow(g.String(), p.Key(), timeband.Label(p.Start(), g), p.Start(), p.End(), fmt.Sprintf("%.0f", days))
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// Items prints a window listing. The item whose key equals center is marked.
func (pp *PrettyPrint) Items(items []window.Item, label func(window.Item) string, center string) {
	if len(items) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.out(), " none\n\n")
		return
	}
	if label == nil {
		label = func(i window.Item) string { return timeband.Label(i.Date, i.Granularity) }
	}

	bold := color.New(color.Bold)
	now := color.New(color.FgHiYellow)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("", bold.Sprint("Key"), bold.Sprint("Label"), bold.Sprint("Start"), bold.Sprint("End"))
	for _, it := range items {
		mark := " "
		if it.Key() == center {
			mark = ">"
		}
		key := it.Key()
		if it.IsCurrentPeriod {
			key = now.Sprint(key)
		}
		tbl.AddRow(mark, key, label(it), it.Date, it.End())
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

const weekWidth = len("11 12 13 14 15 16 17") // an example week

// Month prints a small calendar for the month containing on. Days inside
// [start, end] are highlighted.
func (pp *PrettyPrint) Month(on, start, end timeband.Date) {
	first := timeband.PeriodStart(on, timeband.Month)
	days := timeband.DaysIn(first.Year, first.Month)
	d := first.Time().Weekday()

	tf := color.New(color.FgWhite, color.Italic)
	title := fmt.Sprintf("%s %d", first.Month, first.Year)
	mid := (weekWidth - len(title)) / 2
	_, _ = tf.Fprintf(pp.out(), "%s%s\n", strings.Repeat(" ", max(0, mid)), title)

	_, _ = fmt.Fprint(pp.out(), strings.Repeat("   ", int(d)))

	l1 := color.New(color.Faint, color.FgWhite)
	l2 := color.New(color.Bold, color.FgHiWhite, color.Underline)

	for i := 0; i < days; i++ {
		day := first.AddDays(i)
		printer := l1
		if !start.IsZero() && !day.Before(start) && !day.After(end) {
			printer = l2
		}
		_, _ = printer.Fprintf(pp.out(), "%2d", day.Day)
		_, _ = fmt.Fprint(pp.out(), " ")

		d++
		if d > 6 {
			d = 0
			_, _ = fmt.Fprint(pp.out(), "\n")
		}
	}
	_, _ = fmt.Fprint(pp.out(), "\n\n")
}

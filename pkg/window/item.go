// Package window virtualises the unbounded timeline: it keeps a contiguous,
// strictly increasing run of items for one granularity and grows it in
// batches as the viewport approaches either loaded edge.
package window

import "tableflip.dev/timeband/pkg/timeband"

// Direction selects which edge of the window to extend.
type Direction int

const (
	// Backward extends before the first loaded item.
	Backward Direction = -1
	// Forward extends after the last loaded item.
	Forward Direction = 1
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// Item is one visible unit of the timeline. Date is always the start of the
// item's period.
type Item struct {
	Date            timeband.Date
	Granularity     timeband.Granularity
	IsCurrentPeriod bool
}

// NewItem normalises d to the start of its period.
func NewItem(d timeband.Date, g timeband.Granularity, today timeband.Date) Item {
	start := timeband.PeriodStart(d, g)
	return Item{
		Date:            start,
		Granularity:     g,
		IsCurrentPeriod: !today.IsZero() && timeband.SamePeriod(start, today, g),
	}
}

// Key is the registry key of the item's period.
func (i Item) Key() string { return timeband.Key(i.Date, i.Granularity) }

// Period returns the calendar interval the item denotes.
func (i Item) Period() timeband.Period {
	return timeband.Period{Date: i.Date, Granularity: i.Granularity}
}

// End returns the last day covered by the item.
func (i Item) End() timeband.Date { return timeband.PeriodEnd(i.Date, i.Granularity) }

// Generate returns count items immediately before (Backward) or after
// (Forward) reference, in increasing date order. Offsets are taken from
// reference itself so the result never overlaps it.
func Generate(dir Direction, g timeband.Granularity, reference timeband.Date, count int, today timeband.Date) []Item {
	if count <= 0 {
		return nil
	}
	items := make([]Item, 0, count)
	if dir == Backward {
		for n := count; n >= 1; n-- {
			items = append(items, NewItem(timeband.AddPeriods(reference, g, -n), g, today))
		}
		return items
	}
	for n := 1; n <= count; n++ {
		items = append(items, NewItem(timeband.AddPeriods(reference, g, n), g, today))
	}
	return items
}

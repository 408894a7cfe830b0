package timeband

import "time"

// PeriodStart returns the first day of the period containing d.
func PeriodStart(d Date, g Granularity) Date {
	switch g {
	case Year:
		return Date{Year: d.Year, Month: time.January, Day: 1}
	case Month:
		return Date{Year: d.Year, Month: d.Month, Day: 1}
	default:
		return d
	}
}

// PeriodEnd returns the last day of the period containing d.
func PeriodEnd(d Date, g Granularity) Date {
	switch g {
	case Year:
		return Date{Year: d.Year, Month: time.December, Day: 31}
	case Month:
		return Date{Year: d.Year, Month: d.Month, Day: DaysIn(d.Year, d.Month)}
	default:
		return d
	}
}

// AddPeriods moves n periods from d. Month and Year results are pinned to
// the period start so day-of-month never drifts across short months.
func AddPeriods(d Date, g Granularity, n int) Date {
	switch g {
	case Year:
		return Date{Year: d.Year + n, Month: time.January, Day: 1}
	case Month:
		first := time.Date(d.Year, d.Month, 1, 0, 0, 0, 0, time.UTC)
		return FromTime(first.AddDate(0, n, 0))
	default:
		return d.AddDays(n)
	}
}

// SamePeriod reports whether a and b fall in the same period of g.
func SamePeriod(a, b Date, g Granularity) bool {
	return PeriodStart(a, g) == PeriodStart(b, g)
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Key identifies the period containing d: "2017", "2017-09" or "2017-09-01".
func Key(d Date, g Granularity) string {
	switch g {
	case Year:
		return d.Format(LayoutYear)
	case Month:
		return d.Format(LayoutMonth)
	default:
		return d.Format(LayoutDay)
	}
}

// Label is the default short text for an item of granularity g.
func Label(d Date, g Granularity) string {
	switch g {
	case Year:
		return d.Format("2006")
	case Month:
		if d.Month == time.January {
			return d.Format("Jan 06")
		}
		return d.Format("Jan")
	default:
		if d.Day == 1 {
			return d.Format("Jan 2")
		}
		return d.Format("Mon 2")
	}
}

// Period is a calendar interval identified by its start date and granularity.
type Period struct {
	Date        Date
	Granularity Granularity
}

// PeriodOf returns the period of granularity g containing d.
func PeriodOf(d Date, g Granularity) Period {
	return Period{Date: PeriodStart(d, g), Granularity: g}
}

// Start returns the first day of the period.
func (p Period) Start() Date { return PeriodStart(p.Date, p.Granularity) }

// End returns the last day of the period.
func (p Period) End() Date { return PeriodEnd(p.Date, p.Granularity) }

// Contains reports whether d falls inside the period.
func (p Period) Contains(d Date) bool {
	return !d.Before(p.Start()) && !d.After(p.End())
}

// Overlaps reports whether p and q share at least one day.
func (p Period) Overlaps(q Period) bool {
	return !p.End().Before(q.Start()) && !q.End().Before(p.Start())
}

// Key returns the registry key of the period.
func (p Period) Key() string { return Key(p.Date, p.Granularity) }

// IsZero reports whether p is unset.
func (p Period) IsZero() bool { return p.Date.IsZero() && p.Granularity == 0 }

func (p Period) String() string { return p.Key() }

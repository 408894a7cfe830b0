package timeband

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDate is returned when a date string cannot be parsed.
var ErrInvalidDate = errors.New("invalid date")

const (
	// LayoutDay is the canonical day layout and the default output format.
	LayoutDay = "2006-01-02"
	// LayoutMonth identifies a month period.
	LayoutMonth = "2006-01"
	// LayoutYear identifies a year period.
	LayoutYear = "2006"
)

// Date is a local calendar date. It carries no time-of-day or location, so
// two Dates compare equal exactly when their calendar fields match.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate builds a Date, normalising out-of-range fields the way time.Date
// does (for example Feb 30 becomes Mar 2 or Mar 1).
func NewDate(year int, month time.Month, day int) Date {
	return FromTime(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// FromTime takes the calendar fields of t in its own location.
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Today returns the current local calendar date.
func Today(now func() time.Time) Date {
	if now == nil {
		now = time.Now
	}
	return FromTime(now().Local())
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// Time returns midnight UTC on d. UTC avoids DST gaps in day arithmetic.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// AddDays returns d shifted by n calendar days.
func (d Date) AddDays(n int) Date {
	return FromTime(d.Time().AddDate(0, 0, n))
}

// Compare returns -1, 0 or +1 ordering d against o.
func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return cmpInt(d.Year, o.Year)
	case d.Month != o.Month:
		return cmpInt(int(d.Month), int(o.Month))
	default:
		return cmpInt(d.Day, o.Day)
	}
}

// Before reports whether d is strictly earlier than o.
func (d Date) Before(o Date) bool { return d.Compare(o) < 0 }

// After reports whether d is strictly later than o.
func (d Date) After(o Date) bool { return d.Compare(o) > 0 }

// Equal reports whether d and o are the same calendar date.
func (d Date) Equal(o Date) bool { return d == o }

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(LayoutDay)
}

// Format renders d using a time layout.
func (d Date) Format(layout string) string {
	return d.Time().Format(layout)
}

// Min returns the earlier of a and b.
func Min(a, b Date) Date {
	if b.Before(a) {
		return b
	}
	return a
}

// Max returns the later of a and b.
func Max(a, b Date) Date {
	if b.After(a) {
		return b
	}
	return a
}

// ParseDate accepts a day ("2017-09-30"), a month ("2017-09") or a year
// ("2017") and returns the parsed date together with the granularity implied
// by the input.
func ParseDate(s string) (Date, Granularity, error) {
	trimmed := strings.TrimSpace(s)
	for _, candidate := range []struct {
		layout string
		g      Granularity
	}{
		{LayoutDay, Day},
		{LayoutMonth, Month},
		{LayoutYear, Year},
	} {
		if len(trimmed) != len(candidate.layout) {
			continue
		}
		t, err := time.Parse(candidate.layout, trimmed)
		if err != nil {
			continue
		}
		return FromTime(t), candidate.g, nil
	}
	return Date{}, 0, fmt.Errorf("%w %q", ErrInvalidDate, s)
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Package timeband holds the calendar math behind the timeline: local
// calendar dates, the three zoom granularities and period arithmetic.
package timeband

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidGranularity is returned when a granularity name cannot be parsed.
var ErrInvalidGranularity = errors.New("invalid granularity")

// Granularity is the unit a timeline item represents. Values are ordered by
// specificity: Year < Month < Day. The zero value means "unset".
type Granularity int

const (
	// Year items span Jan 1 through Dec 31.
	Year Granularity = iota + 1
	// Month items span the 1st through the last day of the month.
	Month
	// Day items span a single calendar day.
	Day
)

// All lists the granularities from coarsest to finest.
var All = []Granularity{Year, Month, Day}

// Valid reports whether g is one of Year, Month or Day.
func (g Granularity) Valid() bool {
	return g >= Year && g <= Day
}

func (g Granularity) String() string {
	switch g {
	case Year:
		return "year"
	case Month:
		return "month"
	case Day:
		return "day"
	default:
		return "none"
	}
}

// Finer reports whether g is more specific than other.
func (g Granularity) Finer(other Granularity) bool { return g > other }

// Coarser reports whether g is less specific than other.
func (g Granularity) Coarser(other Granularity) bool { return g < other }

// Shift moves n levels towards Day (positive) or Year (negative), clamped to
// the valid range.
func (g Granularity) Shift(n int) Granularity {
	next := int(g) + n
	if next < int(Year) {
		return Year
	}
	if next > int(Day) {
		return Day
	}
	return Granularity(next)
}

// ParseGranularity accepts "day", "month" or "year" (case-insensitive, with
// optional plural and single-letter forms).
func ParseGranularity(s string) (Granularity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "d", "day", "days":
		return Day, nil
	case "m", "month", "months":
		return Month, nil
	case "y", "year", "years":
		return Year, nil
	}
	return 0, fmt.Errorf("%w %q", ErrInvalidGranularity, s)
}

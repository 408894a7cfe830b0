// Package selection is the click-driven selection state machine of the
// timeline. States are an explicit tagged union; every input is a pure
// transition from one state to the next, so rendering code only ever reads
// a complete state.
package selection

import (
	"tableflip.dev/timeband/pkg/timeband"
)

// Kind tags a State.
type Kind int

const (
	KindEmpty Kind = iota
	KindAnchored
	KindLocked
	KindRangeInProgress
	KindComplete
)

func (k Kind) String() string {
	switch k {
	case KindAnchored:
		return "anchored"
	case KindLocked:
		return "locked"
	case KindRangeInProgress:
		return "range-in-progress"
	case KindComplete:
		return "complete"
	default:
		return "empty"
	}
}

// State is one of Empty, Anchored, Locked, RangeInProgress or Complete.
type State interface {
	Kind() Kind
}

// Empty has nothing selected.
type Empty struct{}

// Anchored is a bare single period.
type Anchored struct {
	Period timeband.Period
}

// Locked is a single period frozen as the anchor of a range awaiting its
// second click.
type Locked struct {
	Period timeband.Period
}

// RangeInProgress is the first click of a two-click range.
type RangeInProgress struct {
	Period timeband.Period
}

// Complete is a closed range of calendar days. Start <= End always holds.
type Complete struct {
	Start timeband.Date
	End   timeband.Date
}

func (Empty) Kind() Kind           { return KindEmpty }
func (Anchored) Kind() Kind        { return KindAnchored }
func (Locked) Kind() Kind          { return KindLocked }
func (RangeInProgress) Kind() Kind { return KindRangeInProgress }
func (Complete) Kind() Kind        { return KindComplete }

// Selection is the flat view of a State.
type Selection struct {
	Start             timeband.Date
	End               timeband.Date
	IsRangeInProgress bool
	IsLocked          bool
	// StartedAt is the granularity the pending selection began at. It is
	// unset once a range is complete.
	StartedAt timeband.Granularity
}

// Snapshot flattens s.
func Snapshot(s State) Selection {
	switch st := s.(type) {
	case Anchored:
		return Selection{Start: st.Period.Start(), StartedAt: st.Period.Granularity}
	case Locked:
		return Selection{Start: st.Period.Start(), IsLocked: true, StartedAt: st.Period.Granularity}
	case RangeInProgress:
		return Selection{Start: st.Period.Start(), IsRangeInProgress: true, StartedAt: st.Period.Granularity}
	case Complete:
		return Selection{Start: st.Start, End: st.End}
	}
	return Selection{}
}

// Bounds returns the first and last calendar day covered by s. A pending
// single period covers its whole period.
func Bounds(s State) (start, end timeband.Date, ok bool) {
	switch st := s.(type) {
	case Anchored:
		return st.Period.Start(), st.Period.End(), true
	case Locked:
		return st.Period.Start(), st.Period.End(), true
	case RangeInProgress:
		return st.Period.Start(), st.Period.End(), true
	case Complete:
		return st.Start, st.End, true
	}
	return timeband.Date{}, timeband.Date{}, false
}

// Covers reports whether any day of p is selected by s.
func Covers(s State, p timeband.Period) bool {
	start, end, ok := Bounds(s)
	if !ok {
		return false
	}
	return !p.End().Before(start) && !p.Start().After(end)
}

// IsBoundary reports whether p contains the first or last selected day.
func IsBoundary(s State, p timeband.Period) bool {
	start, end, ok := Bounds(s)
	if !ok {
		return false
	}
	return p.Contains(start) || p.Contains(end)
}

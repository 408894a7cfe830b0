package selection

import (
	"fmt"
	"strings"

	"tableflip.dev/timeband/pkg/timeband"
)

// Mode selects the click protocol.
type Mode struct {
	// SingleDate enables the lock/toggle protocol. It takes precedence over
	// AllowRange.
	SingleDate bool
	// AllowRange turns every pair of clicks into a range.
	AllowRange bool
}

func (m Mode) String() string {
	switch {
	case m.SingleDate:
		return "single date"
	case m.AllowRange:
		return "range"
	}
	return "period"
}

// ParseMode accepts "period", "range" or "single" ("single date" and
// "single-date" also work).
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "period", "":
		return Mode{}, nil
	case "range":
		return Mode{AllowRange: true}, nil
	case "single", "single date", "single-date":
		return Mode{SingleDate: true}, nil
	}
	return Mode{}, fmt.Errorf("unknown selection mode %q", s)
}

// Action names what a transition did.
type Action int

const (
	ActionNone Action = iota
	ActionSelect
	ActionLock
	ActionUnlock
	ActionBeginRange
	ActionCompleteRange
	ActionExtendStart
	ActionExtendEnd
	ActionCollapse
	ActionClear
)

func (a Action) String() string {
	switch a {
	case ActionSelect:
		return "select"
	case ActionLock:
		return "lock"
	case ActionUnlock:
		return "unlock"
	case ActionBeginRange:
		return "begin-range"
	case ActionCompleteRange:
		return "complete-range"
	case ActionExtendStart:
		return "extend-start"
	case ActionExtendEnd:
		return "extend-end"
	case ActionCollapse:
		return "collapse"
	case ActionClear:
		return "clear"
	default:
		return "none"
	}
}

// Transition returns the state that follows a click on period click.
func Transition(s State, click timeband.Period, mode Mode) (State, Action) {
	if !click.Granularity.Valid() || click.Date.IsZero() {
		return s, ActionNone
	}
	if s == nil {
		s = Empty{}
	}
	click = timeband.PeriodOf(click.Date, click.Granularity)
	switch {
	case mode.SingleDate:
		return singleDate(s, click)
	case mode.AllowRange:
		return rangeSelect(s, click)
	default:
		return Anchored{Period: click}, ActionSelect
	}
}

func singleDate(s State, click timeband.Period) (State, Action) {
	switch st := s.(type) {
	case Anchored:
		if st.Period == click {
			return Locked{Period: click}, ActionLock
		}
	case Locked:
		if st.Period == click {
			return Anchored{Period: click}, ActionUnlock
		}
		return span(st.Period, click), ActionCompleteRange
	case Complete:
		return clickComplete(st, click)
	}
	return Anchored{Period: click}, ActionSelect
}

func rangeSelect(s State, click timeband.Period) (State, Action) {
	if st, ok := s.(RangeInProgress); ok {
		if st.Period == click {
			return Anchored{Period: click}, ActionSelect
		}
		return span(st.Period, click), ActionCompleteRange
	}
	return RangeInProgress{Period: click}, ActionBeginRange
}

func clickComplete(c Complete, click timeband.Period) (State, Action) {
	switch {
	case click.Contains(c.Start) || click.Contains(c.End):
		return Empty{}, ActionClear
	case click.End().Before(c.Start):
		return Complete{Start: click.Start(), End: c.End}, ActionExtendStart
	case click.Start().After(c.End):
		return Complete{Start: c.Start, End: click.End()}, ActionExtendEnd
	default:
		return Anchored{Period: click}, ActionCollapse
	}
}

// span joins the anchor period and the completing click into one range.
// When the two granularities differ the coarser period keeps its whole
// extent: completing finer keeps the anchor's start, completing coarser
// reaches the clicked period's end.
func span(anchor, click timeband.Period) State {
	start := timeband.Min(anchor.Start(), click.Start())
	end := timeband.Max(anchor.End(), click.End())
	return Complete{Start: start, End: end}
}

// Describe renders the hover hint for a transition.
func Describe(action Action, next State, click timeband.Period) string {
	switch action {
	case ActionSelect:
		return fmt.Sprintf("select %s", click.Key())
	case ActionLock:
		return fmt.Sprintf("lock %s as range start", click.Key())
	case ActionUnlock:
		return fmt.Sprintf("unlock %s", click.Key())
	case ActionBeginRange:
		return fmt.Sprintf("start range at %s", click.Key())
	case ActionCompleteRange, ActionExtendStart, ActionExtendEnd:
		start, end, _ := Bounds(next)
		verb := "select"
		switch action {
		case ActionExtendStart:
			verb = "extend start:"
		case ActionExtendEnd:
			verb = "extend end:"
		}
		return fmt.Sprintf("%s %s to %s", verb, start, end)
	case ActionCollapse:
		return fmt.Sprintf("select only %s", click.Key())
	case ActionClear:
		return "clear selection"
	}
	return ""
}

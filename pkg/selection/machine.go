package selection

import "tableflip.dev/timeband/pkg/timeband"

// Machine owns the current selection. All mutation goes through Click, Set
// and Clear.
type Machine struct {
	state State
	mode  Mode
}

// NewMachine returns an empty machine using mode.
func NewMachine(mode Mode) *Machine {
	return &Machine{state: Empty{}, mode: mode}
}

// State returns the current state.
func (m *Machine) State() State { return m.state }

// Snapshot returns the flat view of the current state.
func (m *Machine) Snapshot() Selection { return Snapshot(m.state) }

// Mode returns the active click protocol.
func (m *Machine) Mode() Mode { return m.mode }

// SetMode switches the click protocol. A pending lock or range is dropped
// back to a bare selection, since neither means anything in another mode.
func (m *Machine) SetMode(mode Mode) {
	m.mode = mode
	switch st := m.state.(type) {
	case Locked:
		m.state = Anchored{Period: st.Period}
	case RangeInProgress:
		m.state = Anchored{Period: st.Period}
	}
}

// Click applies a click on period p and reports the action taken.
func (m *Machine) Click(p timeband.Period) Action {
	next, action := Transition(m.state, p, m.mode)
	m.state = next
	return action
}

// Set imposes a selection. An end before start is swapped; a zero end, or an
// end equal to start, selects the single day start.
func (m *Machine) Set(start, end timeband.Date) {
	if start.IsZero() {
		m.state = Empty{}
		return
	}
	if end.IsZero() || end == start {
		m.state = Anchored{Period: timeband.PeriodOf(start, timeband.Day)}
		return
	}
	if end.Before(start) {
		start, end = end, start
	}
	m.state = Complete{Start: start, End: end}
}

// Clear empties the selection and reports whether anything was selected.
func (m *Machine) Clear() bool {
	_, wasEmpty := m.state.(Empty)
	m.state = Empty{}
	return !wasEmpty
}

// Preview reports what a click on p would do without applying it.
type Preview struct {
	Action Action
	Next   State
	Text   string
}

// Preview computes the hover hint for p.
func (m *Machine) Preview(p timeband.Period) Preview {
	next, action := Transition(m.state, p, m.mode)
	return Preview{Action: action, Next: next, Text: Describe(action, next, p)}
}

package events

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/timeband/pkg/timeband"
	"tableflip.dev/timeband/pkg/timeline"
)

// ComponentID uniquely identifies a component instance emitting events.
type ComponentID string

// SelectionChangeMsg is emitted after the timeline rendered a new selection.
type SelectionChangeMsg struct {
	Component   ComponentID
	Start       string
	End         string
	Granularity timeband.Granularity
	Locked      bool
	InProgress  bool
}

// Empty reports whether the selection was cleared.
func (m SelectionChangeMsg) Empty() bool { return m.Start == "" }

// Describe renders the selection in a human-friendly format for logs.
func (m SelectionChangeMsg) Describe() string {
	if m.Empty() {
		return `range:"" state:"cleared"`
	}
	state := "selected"
	switch {
	case m.Locked:
		state = "locked"
	case m.InProgress:
		state = "in-progress"
	}
	return fmt.Sprintf(`range:"%s..%s" granularity:%q state:%q`, m.Start, m.End, m.Granularity, state)
}

// SelectionChangeCmd wraps SelectionChangeMsg into a tea.Cmd.
func SelectionChangeCmd(component ComponentID, r timeline.Range, locked, inProgress bool) tea.Cmd {
	return func() tea.Msg {
		return SelectionChangeMsg{
			Component:   component,
			Start:       r.Start,
			End:         r.End,
			Granularity: r.Granularity,
			Locked:      locked,
			InProgress:  inProgress,
		}
	}
}

// GranularityChangeMsg announces that the timeline now shows a different
// granularity.
type GranularityChangeMsg struct {
	Component ComponentID
	From      timeband.Granularity
	To        timeband.Granularity
	Center    timeband.Date
}

// Describe implements the logging helper.
func (m GranularityChangeMsg) Describe() string {
	return fmt.Sprintf(`from:%q to:%q center:%q`, m.From, m.To, m.Center)
}

// GranularityChangeCmd wraps GranularityChangeMsg.
func GranularityChangeCmd(component ComponentID, from, to timeband.Granularity, center timeband.Date) tea.Cmd {
	return func() tea.Msg {
		return GranularityChangeMsg{Component: component, From: from, To: to, Center: center}
	}
}

// ViewChangeMsg announces that the visible range moved.
type ViewChangeMsg struct {
	Component   ComponentID
	Granularity timeband.Granularity
	First       string
	Last        string
	Center      string
}

// Describe implements the logging helper.
func (m ViewChangeMsg) Describe() string {
	return fmt.Sprintf(`visible:"%s..%s" center:%q`, m.First, m.Last, m.Center)
}

// ViewChangeCmd wraps ViewChangeMsg.
func ViewChangeCmd(component ComponentID, g timeband.Granularity, first, last, center string) tea.Cmd {
	return func() tea.Msg {
		return ViewChangeMsg{Component: component, Granularity: g, First: first, Last: last, Center: center}
	}
}

// HoverMsg is emitted when the hover hint under the pointer changes.
type HoverMsg struct {
	Component ComponentID
	Key       string
	Hint      string
}

// Describe implements the logging helper.
func (m HoverMsg) Describe() string {
	return fmt.Sprintf(`key:%q hint:%q`, m.Key, m.Hint)
}

// HoverCmd wraps HoverMsg.
func HoverCmd(component ComponentID, key, hint string) tea.Cmd {
	return func() tea.Msg {
		return HoverMsg{Component: component, Key: key, Hint: hint}
	}
}

// FocusMsg indicates a component just gained focus.
type FocusMsg struct {
	Component ComponentID
}

// Describe implements the logging helper.
func (m FocusMsg) Describe() string {
	return fmt.Sprintf(`component:%q state:"focus"`, m.Component)
}

// BlurMsg indicates a component just lost focus.
type BlurMsg struct {
	Component ComponentID
}

// Describe implements the logging helper.
func (m BlurMsg) Describe() string {
	return fmt.Sprintf(`component:%q state:"blur"`, m.Component)
}

// FocusCmd wraps a FocusMsg in a tea.Cmd helper.
func FocusCmd(component ComponentID) tea.Cmd {
	return func() tea.Msg {
		return FocusMsg{Component: component}
	}
}

// BlurCmd wraps a BlurMsg in a tea.Cmd helper.
func BlurCmd(component ComponentID) tea.Cmd {
	return func() tea.Msg {
		return BlurMsg{Component: component}
	}
}

// DebugMsg captures optional diagnostic notes emitted by components.
type DebugMsg struct {
	Component ComponentID
	Context   string
	Detail    string
}

// Describe renders the debug message in a human-readable format.
func (m DebugMsg) Describe() string {
	return fmt.Sprintf(`component:%q context:%q detail:%q`, m.Component, m.Context, m.Detail)
}

// DebugCmd wraps DebugMsg creation in a tea.Cmd helper.
func DebugCmd(component ComponentID, context, detail string) tea.Cmd {
	return func() tea.Msg {
		return DebugMsg{Component: component, Context: context, Detail: detail}
	}
}

// FromTimeline converts a controller notification into the matching
// message.
func FromTimeline(component ComponentID, ev timeline.Event) tea.Msg {
	switch ev.Name {
	case timeline.SelectionChange:
		return SelectionChangeMsg{
			Component:   component,
			Start:       ev.Range.Start,
			End:         ev.Range.End,
			Granularity: ev.Range.Granularity,
			Locked:      ev.Selection.IsLocked,
			InProgress:  ev.Selection.IsRangeInProgress,
		}
	case timeline.GranularityChange:
		return GranularityChangeMsg{Component: component, From: ev.Previous, To: ev.Granularity, Center: ev.Center}
	case timeline.ViewChange:
		return ViewChangeMsg{
			Component:   component,
			Granularity: ev.Granularity,
			First:       keyOf(ev.First, ev.Granularity),
			Last:        keyOf(ev.Last, ev.Granularity),
			Center:      keyOf(ev.Center, ev.Granularity),
		}
	}
	return DebugMsg{Component: component, Context: "timeline", Detail: string(ev.Name)}
}

// Source returns the component that emitted msg.
func Source(msg tea.Msg) (ComponentID, bool) {
	switch v := msg.(type) {
	case SelectionChangeMsg:
		return v.Component, true
	case GranularityChangeMsg:
		return v.Component, true
	case ViewChangeMsg:
		return v.Component, true
	case HoverMsg:
		return v.Component, true
	case FocusMsg:
		return v.Component, true
	case BlurMsg:
		return v.Component, true
	case DebugMsg:
		return v.Component, true
	}
	return "", false
}

func keyOf(d timeband.Date, g timeband.Granularity) string {
	if d.IsZero() {
		return ""
	}
	return timeband.Key(d, g)
}

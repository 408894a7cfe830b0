package timeline

import (
	"tableflip.dev/timeband/pkg/selection"
	"tableflip.dev/timeband/pkg/timeband"
	"tableflip.dev/timeband/pkg/window"
)

// EventName identifies a notification stream.
type EventName string

const (
	// SelectionChange fires after the rendered selection changed.
	SelectionChange EventName = "selectionChange"
	// GranularityChange fires after the item list of a new granularity has
	// been rendered.
	GranularityChange EventName = "granularityChange"
	// ViewChange fires after the visible range moved.
	ViewChange EventName = "viewChange"
)

// Range is the public view of the selection with formatted dates.
type Range struct {
	Start       string
	End         string
	Granularity timeband.Granularity
}

// Empty reports whether nothing is selected.
func (r Range) Empty() bool { return r.Start == "" }

// Event is the payload delivered to handlers.
type Event struct {
	Name        EventName
	Source      string
	Range       Range
	Selection   selection.Selection
	Granularity timeband.Granularity
	Previous    timeband.Granularity
	Viewport    window.Viewport
	// First and Last are the outermost visible items of a viewChange.
	First  timeband.Date
	Last   timeband.Date
	Center timeband.Date
}

// Handler receives events.
type Handler func(Event)

// Subscription identifies a registered handler for Off.
type Subscription struct {
	name EventName
	id   uint64
}

type subscriber struct {
	id uint64
	fn Handler
}

type bus struct {
	next uint64
	subs map[EventName][]subscriber
}

func (b *bus) on(name EventName, fn Handler) Subscription {
	if b.subs == nil {
		b.subs = make(map[EventName][]subscriber)
	}
	b.next++
	b.subs[name] = append(b.subs[name], subscriber{id: b.next, fn: fn})
	return Subscription{name: name, id: b.next}
}

func (b *bus) off(sub Subscription) bool {
	list := b.subs[sub.name]
	for i, s := range list {
		if s.id == sub.id {
			b.subs[sub.name] = append(list[:i:i], list[i+1:]...)
			return true
		}
	}
	return false
}

func (b *bus) emit(ev Event) {
	for _, s := range append([]subscriber(nil), b.subs[ev.Name]...) {
		s.fn(ev)
	}
}

func (b *bus) clear() { b.subs = nil }

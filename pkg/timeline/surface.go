package timeline

import (
	"tableflip.dev/timeband/pkg/selection"
	"tableflip.dev/timeband/pkg/timeband"
	"tableflip.dev/timeband/pkg/window"
)

// Surface is the host container the controller draws into.
type Surface interface {
	// Width is the viewport width in cells.
	Width() int
	// Render replaces the displayed frame.
	Render(Frame)
}

// Phase is the animation phase of the frame.
type Phase int

const (
	PhaseIdle Phase = iota
	// PhaseOutgoing plays before the item list is swapped.
	PhaseOutgoing
	// PhaseIncoming plays after the new item list is shown.
	PhaseIncoming
)

func (p Phase) String() string {
	switch p {
	case PhaseOutgoing:
		return "outgoing"
	case PhaseIncoming:
		return "incoming"
	}
	return "idle"
}

// Cell is one visible item with its visual state.
type Cell struct {
	Item  window.Item
	Index int
	// X is the viewport column of the item's left edge; it may be negative
	// for a partially visible first item.
	X        int
	Width    int
	Label    string
	Selected bool
	Boundary bool
	Locked   bool
	Pending  bool
	Hovered  bool
}

// Frame is everything a surface needs to draw the timeline.
type Frame struct {
	Source      string
	Granularity timeband.Granularity
	Phase       Phase
	From        timeband.Granularity
	To          timeband.Granularity
	Viewport    window.Viewport
	Cells       []Cell
	Hint        string
	Selection   selection.Selection
	Range       Range
}

// Headless is a fixed-width Surface that keeps the last frame in memory.
type Headless struct {
	width  int
	frames int
	last   Frame
}

// NewHeadless returns a Headless surface width cells wide.
func NewHeadless(width int) *Headless { return &Headless{width: width} }

func (h *Headless) Width() int { return h.width }

func (h *Headless) Render(f Frame) {
	h.last = f
	h.frames++
}

// Last returns the most recent frame.
func (h *Headless) Last() Frame { return h.last }

// Frames counts Render calls.
func (h *Headless) Frames() int { return h.frames }

// Package timeline drives a hierarchical date picker: it owns the item
// window of the active granularity, feeds clicks into the selection machine
// and wheel input into the gesture classifier, plays two-phase granularity
// transitions and notifies subscribers.
package timeline

import (
	"errors"
	"fmt"
	"math"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"tableflip.dev/timeband/pkg/clock"
	"tableflip.dev/timeband/pkg/gesture"
	"tableflip.dev/timeband/pkg/logging"
	"tableflip.dev/timeband/pkg/selection"
	"tableflip.dev/timeband/pkg/timeband"
	"tableflip.dev/timeband/pkg/window"
)

var (
	// ErrNoSurface is returned by New when no surface is supplied.
	ErrNoSurface = errors.New("timeline: surface is required")
	// ErrDestroyed is returned by operations on a destroyed controller.
	ErrDestroyed = errors.New("timeline: controller destroyed")
)

// Controller is one timeline instance. It is not safe for concurrent use;
// every method and every scheduled continuation must run on the host's
// event loop.
type Controller struct {
	id      string
	surface Surface
	opts    Options
	log     *log.Logger
	clock   clock.Clock
	sched   clock.Scheduler

	machine    *selection.Machine
	classifier *gesture.Classifier
	win        *window.Window
	width      int

	bus   bus
	trans *transition
	// queued is a programmatic granularity change requested mid-transition.
	queued *request
	// selectionDirty marks a selection change whose notification waits for
	// the running transition.
	selectionDirty bool

	hovering bool
	hoverX   int
	wheelX   int
	panRest  float64

	destroyed bool
}

// New creates a controller drawing into surface.
func New(surface Surface, opts Options) (*Controller, error) {
	if surface == nil {
		return nil, ErrNoSurface
	}
	opts = opts.withDefaults()
	if err := opts.validate(); err != nil {
		return nil, fmt.Errorf("timeline: invalid options: %w", err)
	}

	c := &Controller{
		id:      uuid.NewString(),
		surface: surface,
		opts:    opts,
		clock:   opts.Clock,
		sched:   opts.Scheduler,
		machine: selection.NewMachine(selection.Mode{
			SingleDate: opts.SingleDateMode,
			AllowRange: opts.AllowRangeSelection,
		}),
		classifier: gesture.New(opts.Gesture, opts.Clock),
		width:      surface.Width(),
	}
	c.log = opts.Logger
	if c.log == nil {
		c.log = logging.Component("timeline")
	}
	c.log = c.log.With("id", c.id[:8])

	anchor := opts.InitialAnchor
	if anchor.IsZero() {
		anchor = c.today()
	}
	win, err := window.New(opts.InitialGranularity, anchor, c.today(), opts.windowConfig(opts.InitialGranularity))
	if err != nil {
		return nil, fmt.Errorf("timeline: %w", err)
	}
	c.win = win
	c.win.CenterOn(anchor, c.width)
	c.log.Debug("created", "granularity", opts.InitialGranularity, "anchor", anchor, "width", c.width)
	c.render()
	return c, nil
}

// ID identifies this instance in events and frames.
func (c *Controller) ID() string { return c.id }

// Granularity returns the granularity currently displayed.
func (c *Controller) Granularity() timeband.Granularity {
	if c.destroyed {
		return 0
	}
	return c.win.Granularity()
}

// Today returns the current calendar date according to the controller's
// clock.
func (c *Controller) Today() timeband.Date { return c.today() }

// Transitioning reports whether a granularity transition is running.
func (c *Controller) Transitioning() bool { return c.trans != nil }

// Phase returns the animation phase of the current frame.
func (c *Controller) Phase() Phase {
	if c.trans == nil {
		return PhaseIdle
	}
	return c.trans.phase
}

// Selection returns the flat selection record.
func (c *Controller) Selection() selection.Selection { return c.machine.Snapshot() }

// Mode returns the active click protocol.
func (c *Controller) Mode() selection.Mode { return c.machine.Mode() }

// Viewport returns the visible range of the active window.
func (c *Controller) Viewport() window.Viewport {
	if c.destroyed {
		return window.Viewport{First: -1, Last: -1}
	}
	return c.win.Viewport(c.width)
}

// Visible returns the items currently on screen.
func (c *Controller) Visible() []window.Item {
	if c.destroyed {
		return nil
	}
	vp := c.win.Viewport(c.width)
	var items []window.Item
	for i := vp.First; i >= 0 && i <= vp.Last; i++ {
		item, _ := c.win.At(i)
		items = append(items, item)
	}
	return items
}

// Center returns the item under the middle of the viewport.
func (c *Controller) Center() (window.Item, bool) {
	if c.destroyed {
		return window.Item{}, false
	}
	return c.win.Center(c.width)
}

// On subscribes fn to events named name.
func (c *Controller) On(name EventName, fn Handler) Subscription {
	if c.destroyed || fn == nil {
		return Subscription{}
	}
	return c.bus.on(name, fn)
}

// Off removes a subscription. It reports whether it was registered.
func (c *Controller) Off(sub Subscription) bool { return c.bus.off(sub) }

// SelectedRange returns the selection with dates formatted by DateFormat.
// A pending single period reports its whole extent.
func (c *Controller) SelectedRange() Range {
	start, end, ok := selection.Bounds(c.machine.State())
	if !ok || c.destroyed {
		return Range{}
	}
	return Range{
		Start:       start.Format(c.opts.DateFormat),
		End:         end.Format(c.opts.DateFormat),
		Granularity: c.win.Granularity(),
	}
}

// SetSelectedRange imposes a selection. A reversed range is swapped. When
// the timeline is not showing days, or is mid transition, it settles on Day
// centred on start.
func (c *Controller) SetSelectedRange(start, end timeband.Date) error {
	if c.destroyed {
		return ErrDestroyed
	}
	if start.IsZero() {
		c.ClearSelection()
		return nil
	}
	if !end.IsZero() && end.Before(start) {
		start, end = end, start
	}
	c.machine.Set(start, end)
	c.log.Debug("selection set", "start", start, "end", end)

	// A running transition rebuilds the window, so start is brought into
	// view by a queued request once it lands.
	if c.trans != nil || c.win.Granularity() != timeband.Day {
		c.selectionDirty = true
		c.requestGranularity(timeband.Day, start, c.width/2)
		return nil
	}
	moved := false
	if i, ok := c.win.IndexOf(start); !ok || !c.inView(i) {
		c.win.CenterOn(start, c.width)
		moved = true
	}
	c.render()
	c.emitSelection()
	if moved && !c.destroyed {
		c.emitView()
	}
	return nil
}

// ClearSelection empties the selection.
func (c *Controller) ClearSelection() {
	if c.destroyed || !c.machine.Clear() {
		return
	}
	c.log.Debug("selection cleared")
	c.selectionChanged()
}

// SetMode switches the click protocol. A pending lock or range start is
// kept as a bare selection.
func (c *Controller) SetMode(mode selection.Mode) {
	if c.destroyed || c.machine.Mode() == mode {
		return
	}
	before := c.machine.Snapshot()
	c.machine.SetMode(mode)
	c.log.Debug("mode", "single_date", mode.SingleDate, "allow_range", mode.AllowRange)
	if c.machine.Snapshot() != before {
		c.selectionChanged()
		return
	}
	if c.trans == nil {
		c.render()
	}
}

// SetGranularity moves to g centred on center, or on the current centre
// item when center is zero. Requests made during a transition run after it.
func (c *Controller) SetGranularity(g timeband.Granularity, center timeband.Date) error {
	if c.destroyed {
		return ErrDestroyed
	}
	if !g.Valid() {
		return fmt.Errorf("timeline: %w %d", timeband.ErrInvalidGranularity, g)
	}
	if center.IsZero() {
		center = c.centerDate()
	}
	c.requestGranularity(g, center, c.width/2)
	return nil
}

// ClickKey clicks the item registered under key, as produced by Item.Key.
func (c *Controller) ClickKey(key string) selection.Action {
	if c.destroyed {
		return selection.ActionNone
	}
	item, _, ok := c.win.Lookup(key)
	if !ok {
		c.log.Debug("click ignored", "key", key)
		return selection.ActionNone
	}
	return c.click(item)
}

// ClickAt clicks the item drawn at viewport column x.
func (c *Controller) ClickAt(x int) selection.Action {
	if c.destroyed {
		return selection.ActionNone
	}
	item, _, ok := c.win.ItemAtX(x)
	if !ok || x < 0 || x >= c.width {
		c.log.Debug("click ignored", "x", x)
		return selection.ActionNone
	}
	return c.click(item)
}

func (c *Controller) click(item window.Item) selection.Action {
	action := c.machine.Click(item.Period())
	c.log.Debug("click", "key", item.Key(), "action", action)
	if action != selection.ActionNone {
		c.selectionChanged()
	}
	return action
}

// HoverAt records the pointer at viewport column x and returns the hint for
// a click there. Hints are suppressed while a transition runs.
func (c *Controller) HoverAt(x int) string {
	if c.destroyed {
		return ""
	}
	c.hovering, c.hoverX = true, x
	if c.trans != nil {
		return ""
	}
	c.render()
	return c.hint()
}

// HoverKey hovers the item registered under key.
func (c *Controller) HoverKey(key string) string {
	if c.destroyed {
		return ""
	}
	_, i, ok := c.win.Lookup(key)
	if !ok {
		return ""
	}
	return c.HoverAt(c.win.XOf(i) + c.win.ItemWidth()/2)
}

// Leave clears the hover position.
func (c *Controller) Leave() {
	if c.destroyed || !c.hovering {
		return
	}
	c.hovering = false
	if c.trans == nil {
		c.render()
	}
}

// Wheel feeds one wheel sample taken at viewport column x. Vertical input
// zooms, horizontal input pans.
func (c *Controller) Wheel(ev gesture.WheelEvent, x int) {
	if c.destroyed {
		return
	}
	res := c.classifier.Feed(ev)
	switch res.Axis {
	case gesture.AxisHorizontal:
		c.panBy(res.DeltaX * c.opts.PanScale)
	case gesture.AxisVertical:
		c.wheelX = x
		if res.Fire {
			c.log.Debug("wheel step", "direction", res.Command.Direction, "steps", res.Command.Steps)
			if !c.zoom(res.Command, x) {
				c.drain()
			}
		}
	}
}

// Zoom moves one level in dir with the item under column x kept in place.
func (c *Controller) Zoom(dir gesture.Direction, x int) {
	if c.destroyed {
		return
	}
	base := c.targetGranularity()
	to := base.Shift(int(dir))
	if to == base {
		return
	}
	date := c.centerDate()
	if item, _, ok := c.win.ItemAtX(x); ok {
		date = item.Date
	}
	c.requestGranularity(to, date, x)
}

// Pan scrolls by dx cells. Panning is ignored during a transition.
func (c *Controller) Pan(dx int) {
	if c.destroyed || dx == 0 || c.trans != nil {
		return
	}
	ext := c.win.Scroll(dx, c.width)
	if !ext.Empty() {
		c.log.Debug("window extended", "prepended", ext.Prepended, "appended", ext.Appended, "len", c.win.Len())
	}
	c.render()
	c.emitView()
}

func (c *Controller) panBy(delta float64) {
	c.panRest += delta
	n := int(math.Trunc(c.panRest))
	c.panRest -= float64(n)
	c.Pan(n)
}

// Resize updates the viewport width.
func (c *Controller) Resize(width int) {
	if c.destroyed || width == c.width || width < 0 {
		return
	}
	c.width = width
	c.win.Ensure(width)
	if c.trans != nil {
		return
	}
	c.render()
	c.emitView()
}

// Destroy stops pending continuations, drops subscribers and releases the
// item window. The controller is unusable afterwards.
func (c *Controller) Destroy() {
	if c.destroyed {
		return
	}
	c.destroyed = true
	if c.trans != nil && c.trans.timer != nil {
		c.trans.timer.Stop()
	}
	c.trans = nil
	c.queued = nil
	c.bus.clear()
	c.classifier.Reset()
	c.win = nil
	c.log.Debug("destroyed")
}

func (c *Controller) selectionChanged() {
	if c.trans != nil {
		c.selectionDirty = true
		return
	}
	c.render()
	c.emitSelection()
}

func (c *Controller) today() timeband.Date {
	return timeband.Today(c.clock.Now)
}

func (c *Controller) centerDate() timeband.Date {
	if item, ok := c.win.Center(c.width); ok {
		return item.Date
	}
	return c.today()
}

func (c *Controller) inView(i int) bool {
	vp := c.win.Viewport(c.width)
	return i >= vp.First && i <= vp.Last
}

func (c *Controller) hoverItem() (window.Item, int, bool) {
	if !c.hovering || c.hoverX < 0 || c.hoverX >= c.width {
		return window.Item{}, -1, false
	}
	return c.win.ItemAtX(c.hoverX)
}

func (c *Controller) hint() string {
	item, _, ok := c.hoverItem()
	if !ok {
		return ""
	}
	return c.machine.Preview(item.Period()).Text
}

func (c *Controller) frame() Frame {
	st := c.machine.State()
	f := Frame{
		Source:      c.id,
		Granularity: c.win.Granularity(),
		Viewport:    c.win.Viewport(c.width),
		Selection:   selection.Snapshot(st),
		Range:       c.SelectedRange(),
	}
	if c.trans != nil {
		f.Phase, f.From, f.To = c.trans.phase, c.trans.from, c.trans.to
	}
	hovered := -1
	if c.trans == nil {
		if _, i, ok := c.hoverItem(); ok {
			hovered = i
			f.Hint = c.hint()
		}
	}

	render := c.opts.renderer(f.Granularity)
	var pending timeband.Period
	locked := false
	switch s := st.(type) {
	case selection.Locked:
		pending, locked = s.Period, true
	case selection.RangeInProgress:
		pending = s.Period
	}
	for i := f.Viewport.First; i >= 0 && i <= f.Viewport.Last; i++ {
		item, _ := c.win.At(i)
		p := item.Period()
		cell := Cell{
			Item:     item,
			Index:    i,
			X:        c.win.XOf(i),
			Width:    c.win.ItemWidth(),
			Label:    render(item),
			Selected: selection.Covers(st, p),
			Boundary: selection.IsBoundary(st, p),
			Hovered:  i == hovered,
		}
		if !pending.IsZero() && p.Overlaps(pending) {
			cell.Locked = locked
			cell.Pending = !locked
		}
		f.Cells = append(f.Cells, cell)
	}
	return f
}

func (c *Controller) render() {
	if c.destroyed {
		return
	}
	c.surface.Render(c.frame())
}

func (c *Controller) emit(ev Event) {
	if c.destroyed {
		return
	}
	ev.Source = c.id
	c.bus.emit(ev)
}

func (c *Controller) emitSelection() {
	c.emit(Event{
		Name:        SelectionChange,
		Range:       c.SelectedRange(),
		Selection:   c.machine.Snapshot(),
		Granularity: c.Granularity(),
	})
}

func (c *Controller) emitView() {
	if c.destroyed {
		return
	}
	ev := Event{
		Name:        ViewChange,
		Granularity: c.win.Granularity(),
		Viewport:    c.win.Viewport(c.width),
	}
	if item, ok := c.win.Center(c.width); ok {
		ev.Center = item.Date
	}
	if item, ok := c.win.At(ev.Viewport.First); ok {
		ev.First = item.Date
	}
	if item, ok := c.win.At(ev.Viewport.Last); ok {
		ev.Last = item.Date
	}
	c.emit(ev)
}

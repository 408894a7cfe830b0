package timeline

import (
	"tableflip.dev/timeband/pkg/clock"
	"tableflip.dev/timeband/pkg/gesture"
	"tableflip.dev/timeband/pkg/timeband"
	"tableflip.dev/timeband/pkg/window"
)

// transition is one granularity change. It advances through the outgoing
// and incoming phases by a single pending continuation at a time and always
// runs to completion.
type transition struct {
	from, to timeband.Granularity
	target   timeband.Date
	// anchorX is the viewport column the target item is pinned under.
	anchorX int
	phase   Phase
	timer   clock.Timer
}

type request struct {
	to      timeband.Granularity
	target  timeband.Date
	anchorX int
}

// targetGranularity is where the view is heading once queued work is done.
func (c *Controller) targetGranularity() timeband.Granularity {
	switch {
	case c.queued != nil:
		return c.queued.to
	case c.trans != nil:
		return c.trans.to
	}
	return c.win.Granularity()
}

func (c *Controller) requestGranularity(to timeband.Granularity, target timeband.Date, x int) {
	if c.trans != nil {
		c.queued = &request{to: to, target: target, anchorX: x}
		c.log.Debug("transition queued", "to", to, "target", target)
		return
	}
	if to == c.win.Granularity() {
		c.anchor(target, x)
		return
	}
	c.begin(to, target, x)
}

// zoom starts a gesture step and reports whether a transition began.
func (c *Controller) zoom(cmd gesture.Command, x int) bool {
	from := c.win.Granularity()
	to := from.Shift(int(cmd.Direction) * cmd.Steps)
	if to == from {
		c.log.Debug("zoom at limit", "granularity", from, "direction", cmd.Direction)
		return false
	}
	date := c.centerDate()
	if item, _, ok := c.win.ItemAtX(x); ok {
		date = item.Date
	} else {
		x = c.width / 2
	}
	c.begin(to, date, x)
	return true
}

// drain releases queued gesture steps until one starts a transition.
func (c *Controller) drain() {
	for !c.destroyed && c.trans == nil {
		cmd, ok := c.classifier.Finish()
		if !ok {
			return
		}
		if c.zoom(cmd, c.wheelX) {
			return
		}
	}
}

func (c *Controller) anchor(target timeband.Date, x int) {
	c.win.AnchorAt(target, x, c.width)
	if c.trans != nil {
		return
	}
	c.render()
	c.emitView()
}

func (c *Controller) begin(to timeband.Granularity, target timeband.Date, x int) {
	t := &transition{
		from:    c.win.Granularity(),
		to:      to,
		target:  target,
		anchorX: x,
		phase:   PhaseOutgoing,
	}
	c.trans = t
	c.classifier.Begin()
	c.log.Debug("transition", "from", t.from, "to", t.to, "target", target)
	c.render()
	// An inline scheduler may finish the whole transition inside this call.
	t.timer = c.sched.AfterFunc(c.opts.TransitionDuration/2, func() { c.swap(t) })
}

func (c *Controller) swap(t *transition) {
	if c.destroyed || c.trans != t {
		return
	}
	win, err := window.New(t.to, t.target, c.today(), c.opts.windowConfig(t.to))
	if err != nil {
		c.log.Error("rebuilding window", "to", t.to, "err", err)
		t.to = t.from
	} else {
		c.win = win
	}
	c.win.AnchorAt(t.target, t.anchorX, c.width)
	t.phase = PhaseIncoming
	c.render()
	if t.to != t.from {
		c.emit(Event{Name: GranularityChange, Granularity: t.to, Previous: t.from, Center: t.target})
	}
	c.emitView()
	if c.destroyed || c.trans != t {
		return
	}
	rest := c.opts.TransitionDuration - c.opts.TransitionDuration/2
	t.timer = c.sched.AfterFunc(rest, func() { c.finish(t) })
}

func (c *Controller) finish(t *transition) {
	if c.destroyed || c.trans != t {
		return
	}
	c.trans = nil
	c.log.Debug("transition done", "granularity", t.to)
	c.render()
	if c.selectionDirty {
		c.selectionDirty = false
		c.emitSelection()
	}
	if c.destroyed || c.trans != nil {
		return
	}
	if req := c.queued; req != nil {
		c.queued = nil
		if req.to != c.win.Granularity() {
			c.begin(req.to, req.target, req.anchorX)
			return
		}
		c.anchor(req.target, req.anchorX)
	}
	c.drain()
}

// Package gesture turns raw wheel input into discrete zoom steps.
//
// The first qualifying vertical event of a gesture fires one step at once.
// Further events in the same direction are aggregated; while a transition is
// in flight they are converted into at most two queued steps, released one
// at a time as each transition finishes. Reversing direction drops the
// queue.
package gesture

import (
	"math"
	"time"

	"tableflip.dev/timeband/pkg/clock"
)

// DeltaMode is the unit of a wheel delta.
type DeltaMode int

const (
	DeltaPixel DeltaMode = iota
	DeltaLine
	DeltaPage
)

// Direction is the zoom direction of a step.
type Direction int

const (
	// ZoomIn moves towards Day.
	ZoomIn Direction = 1
	// ZoomOut moves towards Year.
	ZoomOut Direction = -1
)

func (d Direction) String() string {
	switch d {
	case ZoomIn:
		return "zoom-in"
	case ZoomOut:
		return "zoom-out"
	}
	return "none"
}

// Axis is the dominant axis of a wheel event.
type Axis int

const (
	// AxisNone marks an ambiguous or sub-floor event.
	AxisNone Axis = iota
	AxisVertical
	AxisHorizontal
)

// WheelEvent is one raw wheel sample. A zero Time means "now".
type WheelEvent struct {
	DeltaX float64
	DeltaY float64
	Mode   DeltaMode
	Time   time.Time
}

// Command is a zoom request of one or two steps.
type Command struct {
	Direction Direction
	Steps     int
}

// Result is the classification of one event.
type Result struct {
	Axis Axis
	// Fire is set when Command should start a transition now.
	Fire    bool
	Command Command
	// DeltaX is the normalised horizontal delta, in pixels, of a horizontal
	// event.
	DeltaX float64
}

// Thresholds gate the conversion of aggregated input into queued steps.
type Thresholds struct {
	Ticks         int
	SkipTicks     int
	Magnitude     float64
	SkipMagnitude float64
}

// Config tunes the classifier.
type Config struct {
	Window          time.Duration
	MinDuration     time.Duration
	VerticalFloor   float64
	HorizontalFloor float64
	LinePixels      float64
	PagePixels      float64
	// NotchPixels is the smallest pixel-mode delta treated as a wheel notch.
	NotchPixels float64
	Discrete    Thresholds
	Continuous  Thresholds
	MaxQueued   int
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		Window:          180 * time.Millisecond,
		MinDuration:     80 * time.Millisecond,
		VerticalFloor:   4,
		HorizontalFloor: 4,
		LinePixels:      40,
		PagePixels:      800,
		NotchPixels:     50,
		Discrete:        Thresholds{Ticks: 3, SkipTicks: 8, Magnitude: 360, SkipMagnitude: 960},
		Continuous:      Thresholds{Ticks: 12, SkipTicks: 30, Magnitude: 400, SkipMagnitude: 1200},
		MaxQueued:       2,
	}
}

type accumulator struct {
	active    bool
	direction Direction
	ticks     int
	magnitude float64
	start     time.Time
	expires   time.Time
	discrete  bool
	converted int
}

// Classifier aggregates wheel events. It is not safe for concurrent use.
type Classifier struct {
	cfg   Config
	clock clock.Clock

	inFlight  bool
	acc       accumulator
	queued    int
	queuedDir Direction
}

// New returns a classifier. A nil clock reads the wall clock.
func New(cfg Config, c clock.Clock) *Classifier {
	if c == nil {
		c = clock.Real{}
	}
	if cfg.MaxQueued <= 0 {
		cfg.MaxQueued = 2
	}
	return &Classifier{cfg: cfg, clock: c}
}

// Feed classifies one event.
func (c *Classifier) Feed(ev WheelEvent) Result {
	now := ev.Time
	if now.IsZero() {
		now = c.clock.Now()
	}
	dx, dy := c.normalise(ev.DeltaX, ev.Mode), c.normalise(ev.DeltaY, ev.Mode)
	switch {
	case math.Abs(dy) > math.Abs(dx) && math.Abs(dy) > c.cfg.VerticalFloor:
	case math.Abs(dx) > math.Abs(dy) && math.Abs(dx) > c.cfg.HorizontalFloor:
		return Result{Axis: AxisHorizontal, DeltaX: dx}
	default:
		return Result{Axis: AxisNone}
	}

	dir := ZoomOut
	if dy < 0 {
		dir = ZoomIn
	}
	if c.acc.active && now.After(c.acc.expires) {
		c.acc = accumulator{}
	}
	if (c.acc.active && c.acc.direction != dir) || (c.queued > 0 && c.queuedDir != dir) {
		c.acc = accumulator{}
		c.queued = 0
	}

	if !c.acc.active {
		c.acc = accumulator{
			active:    true,
			direction: dir,
			start:     now,
			expires:   now.Add(c.cfg.Window),
			discrete:  c.isDiscrete(ev, dy),
		}
		if !c.inFlight {
			c.inFlight = true
			return Result{Axis: AxisVertical, Fire: true, Command: Command{Direction: dir, Steps: 1}}
		}
	}

	c.acc.ticks++
	c.acc.magnitude += math.Abs(dy)
	c.acc.expires = now.Add(c.cfg.Window)
	c.promote(now)

	if !c.inFlight && c.queued > 0 {
		cmd, _ := c.pop()
		return Result{Axis: AxisVertical, Fire: true, Command: cmd}
	}
	return Result{Axis: AxisVertical}
}

// Begin marks a transition as in flight, for transitions not started by
// Feed.
func (c *Classifier) Begin() { c.inFlight = true }

// InFlight reports whether a transition is running.
func (c *Classifier) InFlight() bool { return c.inFlight }

// Finish marks the in-flight transition done and releases one queued step,
// if any. When a step is returned the classifier is in flight again.
//
// A gesture that was still aggregating is promoted first: a burst that
// ended before MinDuration elapsed has now persisted for the length of the
// transition. An expired gesture is dropped once promoted so a later,
// unrelated Finish cannot convert it again.
func (c *Classifier) Finish() (Command, bool) {
	c.inFlight = false
	if c.acc.active {
		now := c.clock.Now()
		c.promote(now)
		if now.After(c.acc.expires) {
			c.acc = accumulator{}
		}
	}
	return c.pop()
}

// Pending returns the queued steps.
func (c *Classifier) Pending() Command {
	if c.queued == 0 {
		return Command{}
	}
	return Command{Direction: c.queuedDir, Steps: c.queued}
}

// Reset drops all gesture state.
func (c *Classifier) Reset() {
	c.acc = accumulator{}
	c.queued = 0
	c.inFlight = false
}

func (c *Classifier) pop() (Command, bool) {
	if c.queued == 0 {
		return Command{}, false
	}
	c.queued--
	c.inFlight = true
	return Command{Direction: c.queuedDir, Steps: 1}, true
}

func (c *Classifier) promote(now time.Time) {
	if now.Sub(c.acc.start) < c.cfg.MinDuration {
		return
	}
	th := c.cfg.Continuous
	if c.acc.discrete {
		th = c.cfg.Discrete
	}
	want := 0
	switch {
	case c.acc.ticks >= th.SkipTicks || c.acc.magnitude >= th.SkipMagnitude:
		want = 2
	case c.acc.ticks >= th.Ticks || c.acc.magnitude >= th.Magnitude:
		want = 1
	}
	if want > c.cfg.MaxQueued {
		want = c.cfg.MaxQueued
	}
	if want <= c.acc.converted {
		return
	}
	c.queued += want - c.acc.converted
	if c.queued > c.cfg.MaxQueued {
		c.queued = c.cfg.MaxQueued
	}
	c.queuedDir = c.acc.direction
	c.acc.converted = want
}

func (c *Classifier) normalise(delta float64, mode DeltaMode) float64 {
	switch mode {
	case DeltaLine:
		return delta * c.cfg.LinePixels
	case DeltaPage:
		return delta * c.cfg.PagePixels
	default:
		return delta
	}
}

func (c *Classifier) isDiscrete(ev WheelEvent, dy float64) bool {
	if ev.Mode != DeltaPixel {
		return true
	}
	return ev.DeltaX == 0 && math.Abs(dy) >= c.cfg.NotchPixels && dy == math.Trunc(dy)
}

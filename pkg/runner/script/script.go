// Package script drives a headless timeline with a list of steps, the
// same way a user would with the mouse.
package script

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/timeband/pkg/clock"
	"tableflip.dev/timeband/pkg/gesture"
	"tableflip.dev/timeband/pkg/printers"
	"tableflip.dev/timeband/pkg/selection"
	"tableflip.dev/timeband/pkg/timeband"
	"tableflip.dev/timeband/pkg/timeline"
)

// DefaultWidth is the headless viewport width.
const DefaultWidth = 80

// ErrBadStep is returned for steps that cannot be parsed.
var ErrBadStep = errors.New("bad step")

// Script runs Steps against a controller. Supported steps:
//
//	click:<key>              click the item 2017, 2017-12 or 2017-12-29
//	zoom:in|out              zoom one level around the centre
//	granularity:<g>[@<date>] switch granularity, optionally centred on date
//	range:<start>..<end>     set the selection programmatically
//	mode:period|range|single change the click protocol
//	pan:<cells>              scroll the viewport
//	clear                    clear the selection
type Script struct {
	Options timeline.Options
	Width   int
	Steps   []string
	// Events prints every notification as it happens.
	Events bool
	JSON   bool
	Out    io.Writer
}

type resultJSON struct {
	Range       printers.RangeJSON `json:"range"`
	Granularity string             `json:"granularity"`
	Events      []string           `json:"events,omitempty"`
}

// Do runs the steps and prints the final selection.
func (s *Script) Do(ctx context.Context) error {
	out := s.Out
	if out == nil {
		out = color.Output
	}
	width := s.Width
	if width <= 0 {
		width = DefaultWidth
	}
	opts := s.Options
	opts.Scheduler = &clock.Inline{}

	ctrl, err := timeline.New(timeline.NewHeadless(width), opts)
	if err != nil {
		return err
	}
	defer ctrl.Destroy()

	var log []string
	record := func(ev timeline.Event) { log = append(log, Describe(ev)) }
	ctrl.On(timeline.SelectionChange, record)
	ctrl.On(timeline.GranularityChange, record)
	ctrl.On(timeline.ViewChange, record)

	for n, step := range s.Steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := Apply(ctrl, step); err != nil {
			return fmt.Errorf("step %d: %w", n+1, err)
		}
	}

	if s.JSON {
		res := resultJSON{
			Range:       printers.NewRangeJSON(ctrl.SelectedRange()),
			Granularity: ctrl.Granularity().String(),
		}
		if s.Events {
			res.Events = log
		}
		return printers.JSON(out, res)
	}

	if s.Events {
		faint := color.New(color.Faint)
		for _, line := range log {
			_, _ = faint.Fprintln(out, line)
		}
	}
	pp := printers.PrettyPrint{Out: out}
	pp.Range(ctrl.SelectedRange())
	return nil
}

// Apply runs a single step against ctrl.
func Apply(ctrl *timeline.Controller, step string) error {
	verb, arg, _ := strings.Cut(strings.TrimSpace(step), ":")
	switch strings.ToLower(verb) {
	case "click":
		d, g, err := timeband.ParseDate(arg)
		if err != nil {
			return err
		}
		key := timeband.Key(d, g)
		if g == ctrl.Granularity() && ctrl.ClickKey(key) != selection.ActionNone {
			return nil
		}
		// Bring the item into view at its own granularity, then click.
		if err := ctrl.SetGranularity(g, d); err != nil {
			return err
		}
		if ctrl.ClickKey(key) == selection.ActionNone {
			return fmt.Errorf("%w: click on %s had no effect", ErrBadStep, arg)
		}
	case "zoom":
		dir, err := parseZoom(arg)
		if err != nil {
			return err
		}
		ctrl.Zoom(dir, ctrl.Viewport().Width/2)
	case "granularity":
		name, at, _ := strings.Cut(arg, "@")
		g, err := timeband.ParseGranularity(name)
		if err != nil {
			return err
		}
		var center timeband.Date
		if at != "" {
			if center, _, err = timeband.ParseDate(at); err != nil {
				return err
			}
		}
		return ctrl.SetGranularity(g, center)
	case "range":
		from, to, ok := strings.Cut(arg, "..")
		if !ok {
			to = from
		}
		start, _, err := timeband.ParseDate(from)
		if err != nil {
			return err
		}
		end, _, err := timeband.ParseDate(to)
		if err != nil {
			return err
		}
		return ctrl.SetSelectedRange(start, end)
	case "mode":
		mode, err := selection.ParseMode(arg)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBadStep, err)
		}
		ctrl.SetMode(mode)
	case "pan":
		n, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("%w: pan needs a cell count: %w", ErrBadStep, err)
		}
		ctrl.Pan(n)
	case "clear":
		ctrl.ClearSelection()
	default:
		return fmt.Errorf("%w: %q", ErrBadStep, step)
	}
	return nil
}

func parseZoom(arg string) (gesture.Direction, error) {
	switch strings.ToLower(arg) {
	case "in", "+":
		return gesture.ZoomIn, nil
	case "out", "-":
		return gesture.ZoomOut, nil
	}
	return 0, fmt.Errorf("%w: zoom direction %q", ErrBadStep, arg)
}

// Describe renders an event on one line.
func Describe(ev timeline.Event) string {
	switch ev.Name {
	case timeline.SelectionChange:
		if ev.Range.Empty() {
			return "selectionChange cleared"
		}
		return fmt.Sprintf("selectionChange %s..%s", ev.Range.Start, ev.Range.End)
	case timeline.GranularityChange:
		return fmt.Sprintf("granularityChange %s -> %s", ev.Previous, ev.Granularity)
	case timeline.ViewChange:
		return fmt.Sprintf("viewChange %s..%s", timeband.Key(ev.First, ev.Granularity), timeband.Key(ev.Last, ev.Granularity))
	}
	return string(ev.Name)
}

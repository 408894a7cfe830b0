// Package items lists the timeline items visible around an anchor.
package items

import (
	"context"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/timeband/pkg/clock"
	"tableflip.dev/timeband/pkg/printers"
	"tableflip.dev/timeband/pkg/timeline"
	"tableflip.dev/timeband/pkg/window"
)

// DefaultWidth is the viewport width used when none is given.
const DefaultWidth = 80

// Items renders the viewport of a headless controller.
type Items struct {
	Options timeline.Options
	Width   int
	JSON    bool
	Out     io.Writer
}

// Do prints the visible items, marking the centre one.
func (i *Items) Do(_ context.Context) error {
	out := i.Out
	if out == nil {
		out = color.Output
	}
	width := i.Width
	if width <= 0 {
		width = DefaultWidth
	}

	opts := i.Options
	if opts.Scheduler == nil {
		opts.Scheduler = &clock.Inline{}
	}
	surface := timeline.NewHeadless(width)
	ctrl, err := timeline.New(surface, opts)
	if err != nil {
		return err
	}
	defer ctrl.Destroy()

	cells := surface.Last().Cells
	if i.JSON {
		list := make([]printers.ItemJSON, 0, len(cells))
		for _, c := range cells {
			list = append(list, printers.NewItemJSON(c.Item, c.Label))
		}
		return printers.JSON(out, list)
	}

	labels := make(map[string]string, len(cells))
	items := make([]window.Item, 0, len(cells))
	for _, c := range cells {
		labels[c.Item.Key()] = c.Label
		items = append(items, c.Item)
	}
	center := ""
	if it, ok := ctrl.Center(); ok {
		center = it.Key()
	}

	pp := printers.PrettyPrint{Out: out}
	pp.TitleWithCount(ctrl.Granularity().String(), len(items))
	pp.Items(items, func(it window.Item) string { return labels[it.Key()] }, center)
	return nil
}

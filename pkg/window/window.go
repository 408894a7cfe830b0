package window

import (
	"fmt"

	"tableflip.dev/timeband/pkg/timeband"
)

// ExtendThreshold is the remaining distance, in item widths, below which an
// edge of the window is extended.
const ExtendThreshold = 5

// Config sizes a window.
type Config struct {
	// ItemWidth is the rendered width of one item, in cells.
	ItemWidth int
	// BatchSize is the number of items added per extension.
	BatchSize int
}

// Extension reports what a call to Ensure loaded.
type Extension struct {
	Prepended int
	Appended  int
}

// Empty reports whether nothing was added.
func (e Extension) Empty() bool { return e.Prepended == 0 && e.Appended == 0 }

// Viewport is the derived visible range of a window.
type Viewport struct {
	Offset int
	Width  int
	First  int
	Last   int
}

// Window is the ordered item list for one granularity plus its scroll
// offset. Index 0 is the earliest loaded item.
type Window struct {
	granularity timeband.Granularity
	today       timeband.Date
	items       []Item
	index       map[string]int
	itemWidth   int
	batch       int
	offset      int
}

// New loads BatchSize items on each side of anchor.
func New(g timeband.Granularity, anchor, today timeband.Date, cfg Config) (*Window, error) {
	if !g.Valid() {
		return nil, fmt.Errorf("window: %w %d", timeband.ErrInvalidGranularity, g)
	}
	if cfg.ItemWidth <= 0 {
		return nil, fmt.Errorf("window: item width must be positive, got %d", cfg.ItemWidth)
	}
	if cfg.BatchSize <= 0 {
		return nil, fmt.Errorf("window: batch size must be positive, got %d", cfg.BatchSize)
	}
	w := &Window{
		granularity: g,
		today:       today,
		itemWidth:   cfg.ItemWidth,
		batch:       cfg.BatchSize,
	}
	w.reset(anchor)
	return w, nil
}

func (w *Window) reset(anchor timeband.Date) {
	center := NewItem(anchor, w.granularity, w.today)
	items := Generate(Backward, w.granularity, center.Date, w.batch, w.today)
	items = append(items, center)
	items = append(items, Generate(Forward, w.granularity, center.Date, w.batch, w.today)...)
	w.items = items
	w.offset = 0
	w.reindex()
}

func (w *Window) reindex() {
	w.index = make(map[string]int, len(w.items))
	for i, item := range w.items {
		w.index[item.Key()] = i
	}
}

// Granularity returns the granularity of every item in the window.
func (w *Window) Granularity() timeband.Granularity { return w.granularity }

// ItemWidth returns the per-item width in cells.
func (w *Window) ItemWidth() int { return w.itemWidth }

// Len returns the number of loaded items.
func (w *Window) Len() int { return len(w.items) }

// Items returns a copy of the loaded items.
func (w *Window) Items() []Item {
	return append([]Item(nil), w.items...)
}

// At returns the item at index i.
func (w *Window) At(i int) (Item, bool) {
	if i < 0 || i >= len(w.items) {
		return Item{}, false
	}
	return w.items[i], true
}

// Lookup resolves a registry key to its item and current index.
func (w *Window) Lookup(key string) (Item, int, bool) {
	i, ok := w.index[key]
	if !ok {
		return Item{}, -1, false
	}
	return w.items[i], i, true
}

// IndexOf returns the index of the item whose period contains d.
func (w *Window) IndexOf(d timeband.Date) (int, bool) {
	i, ok := w.index[timeband.Key(d, w.granularity)]
	return i, ok
}

// Offset returns the scroll offset in cells from the left edge of item 0.
func (w *Window) Offset() int { return w.offset }

// ContentWidth is the total width of all loaded items.
func (w *Window) ContentWidth() int { return len(w.items) * w.itemWidth }

// Extend adds count items before the first or after the last loaded item.
// A backward extension moves the scroll offset by count×ItemWidth in the
// same call, so whatever sat under a given viewport column still does.
func (w *Window) Extend(dir Direction, count int) []Item {
	if count <= 0 || len(w.items) == 0 {
		return nil
	}
	if dir == Backward {
		added := Generate(Backward, w.granularity, w.items[0].Date, count, w.today)
		w.items = append(added, w.items...)
		w.offset += len(added) * w.itemWidth
		w.reindex()
		return added
	}
	added := Generate(Forward, w.granularity, w.items[len(w.items)-1].Date, count, w.today)
	w.items = append(w.items, added...)
	for i, item := range added {
		w.index[item.Key()] = len(w.items) - len(added) + i
	}
	return added
}

// Ensure extends either edge in batches until at least ExtendThreshold item
// widths remain loaded beyond the viewport on both sides.
func (w *Window) Ensure(viewportWidth int) Extension {
	var ext Extension
	threshold := ExtendThreshold * w.itemWidth
	for w.offset < threshold {
		ext.Prepended += len(w.Extend(Backward, w.batch))
	}
	for w.ContentWidth()-(w.offset+viewportWidth) < threshold {
		ext.Appended += len(w.Extend(Forward, w.batch))
	}
	return ext
}

// Scroll moves the offset by dx cells and loads items as needed.
func (w *Window) Scroll(dx, viewportWidth int) Extension {
	w.offset += dx
	return w.Ensure(viewportWidth)
}

// SetOffset places the viewport at an absolute offset and loads items as
// needed.
func (w *Window) SetOffset(offset, viewportWidth int) Extension {
	w.offset = offset
	return w.Ensure(viewportWidth)
}

// CenterOn positions the item containing d in the middle of the viewport,
// reloading the window around d when it is not loaded.
func (w *Window) CenterOn(d timeband.Date, viewportWidth int) Extension {
	return w.AnchorAt(d, viewportWidth/2, viewportWidth)
}

// AnchorAt positions the item containing d so its centre sits under
// viewport column x.
func (w *Window) AnchorAt(d timeband.Date, x, viewportWidth int) Extension {
	i, ok := w.IndexOf(d)
	if !ok {
		w.reset(d)
		i, _ = w.IndexOf(d)
	}
	return w.SetOffset(i*w.itemWidth+w.itemWidth/2-x, viewportWidth)
}

// ItemAtX resolves a viewport column to the item drawn there.
func (w *Window) ItemAtX(x int) (Item, int, bool) {
	pos := w.offset + x
	if pos < 0 {
		return Item{}, -1, false
	}
	i := pos / w.itemWidth
	item, ok := w.At(i)
	if !ok {
		return Item{}, -1, false
	}
	return item, i, true
}

// XOf returns the viewport column of the left edge of item i.
func (w *Window) XOf(i int) int {
	return i*w.itemWidth - w.offset
}

// Center returns the item under the middle column of the viewport.
func (w *Window) Center(viewportWidth int) (Item, bool) {
	item, _, ok := w.ItemAtX(viewportWidth / 2)
	return item, ok
}

// Viewport describes the visible index range.
func (w *Window) Viewport(viewportWidth int) Viewport {
	vp := Viewport{Offset: w.offset, Width: viewportWidth, First: -1, Last: -1}
	if len(w.items) == 0 || viewportWidth <= 0 {
		return vp
	}
	first := w.offset / w.itemWidth
	last := (w.offset + viewportWidth - 1) / w.itemWidth
	if first < 0 {
		first = 0
	}
	if last >= len(w.items) {
		last = len(w.items) - 1
	}
	vp.First, vp.Last = first, last
	return vp
}

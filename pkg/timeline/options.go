package timeline

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"tableflip.dev/timeband/pkg/clock"
	"tableflip.dev/timeband/pkg/gesture"
	"tableflip.dev/timeband/pkg/timeband"
	"tableflip.dev/timeband/pkg/window"
)

// ItemRenderer produces the label of one item.
type ItemRenderer func(item window.Item) string

// Options configures a Controller. Zero fields take the defaults below.
type Options struct {
	InitialGranularity  timeband.Granularity
	InitialAnchor       timeband.Date
	SingleDateMode      bool
	AllowRangeSelection bool

	ItemWidths map[timeband.Granularity]int
	BatchSizes map[timeband.Granularity]int

	DayRenderer   ItemRenderer
	MonthRenderer ItemRenderer
	YearRenderer  ItemRenderer

	// DateFormat is the time layout used by SelectedRange.
	DateFormat string
	// TransitionDuration covers both phases of a granularity transition.
	TransitionDuration time.Duration
	// PanScale converts normalised horizontal wheel pixels into cells.
	PanScale float64

	Gesture   gesture.Config
	Clock     clock.Clock
	Scheduler clock.Scheduler
	Logger    *log.Logger
}

var (
	// DefaultItemWidths are the per-granularity item widths in cells.
	DefaultItemWidths = map[timeband.Granularity]int{
		timeband.Day:   8,
		timeband.Month: 8,
		timeband.Year:  8,
	}
	// DefaultBatchSizes are the per-granularity extension batch sizes.
	DefaultBatchSizes = map[timeband.Granularity]int{
		timeband.Day:   60,
		timeband.Month: 24,
		timeband.Year:  10,
	}
)

const (
	DefaultDateFormat         = timeband.LayoutDay
	DefaultTransitionDuration = 300 * time.Millisecond
	DefaultPanScale           = 0.1
)

func (o Options) withDefaults() Options {
	if o.InitialGranularity == 0 {
		o.InitialGranularity = timeband.Day
	}
	o.ItemWidths = mergeSizes(DefaultItemWidths, o.ItemWidths)
	o.BatchSizes = mergeSizes(DefaultBatchSizes, o.BatchSizes)
	if o.DateFormat == "" {
		o.DateFormat = DefaultDateFormat
	}
	if o.TransitionDuration == 0 {
		o.TransitionDuration = DefaultTransitionDuration
	}
	if o.PanScale == 0 {
		o.PanScale = DefaultPanScale
	}
	if o.Gesture == (gesture.Config{}) {
		o.Gesture = gesture.DefaultConfig()
	}
	if o.Clock == nil {
		o.Clock = clock.Real{}
	}
	if o.Scheduler == nil {
		o.Scheduler = &clock.Inline{}
	}
	return o
}

func (o Options) validate() error {
	if !o.InitialGranularity.Valid() {
		return fmt.Errorf("initial granularity: %w %d", timeband.ErrInvalidGranularity, o.InitialGranularity)
	}
	for _, g := range timeband.All {
		if o.ItemWidths[g] <= 0 {
			return fmt.Errorf("item width for %s must be positive, got %d", g, o.ItemWidths[g])
		}
		if o.BatchSizes[g] <= 0 {
			return fmt.Errorf("batch size for %s must be positive, got %d", g, o.BatchSizes[g])
		}
	}
	if o.TransitionDuration < 0 {
		return fmt.Errorf("transition duration must not be negative, got %s", o.TransitionDuration)
	}
	return nil
}

func (o Options) windowConfig(g timeband.Granularity) window.Config {
	return window.Config{ItemWidth: o.ItemWidths[g], BatchSize: o.BatchSizes[g]}
}

func (o Options) renderer(g timeband.Granularity) ItemRenderer {
	var r ItemRenderer
	switch g {
	case timeband.Day:
		r = o.DayRenderer
	case timeband.Month:
		r = o.MonthRenderer
	case timeband.Year:
		r = o.YearRenderer
	}
	if r == nil {
		return func(item window.Item) string { return timeband.Label(item.Date, item.Granularity) }
	}
	return r
}

func mergeSizes(defaults, overrides map[timeband.Granularity]int) map[timeband.Granularity]int {
	out := make(map[timeband.Granularity]int, len(defaults))
	for g, v := range defaults {
		out[g] = v
	}
	for g, v := range overrides {
		out[g] = v
	}
	return out
}

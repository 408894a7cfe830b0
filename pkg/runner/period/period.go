// Package period shows the calendar periods containing a date.
package period

import (
	"context"
	"io"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/timeband/pkg/clock"
	"tableflip.dev/timeband/pkg/printers"
	"tableflip.dev/timeband/pkg/timeband"
)

// Period resolves Date ("2017", "2017-09", "2017-09-30" or empty for today).
type Period struct {
	Date  string
	Clock clock.Clock
	JSON  bool
	Out   io.Writer
}

type periodJSON struct {
	Granularity string `json:"granularity"`
	Key         string `json:"key"`
	Label       string `json:"label"`
	Start       string `json:"start"`
	End         string `json:"end"`
}

type resultJSON struct {
	Input       string       `json:"input"`
	Granularity string       `json:"granularity"`
	Periods     []periodJSON `json:"periods"`
}

// Do prints the year, month and day periods of the date and a month
// calendar with the input's own period highlighted.
func (p *Period) Do(_ context.Context) error {
	out := p.Out
	if out == nil {
		out = color.Output
	}
	d, g, err := p.resolve()
	if err != nil {
		return err
	}

	if p.JSON {
		res := resultJSON{Input: timeband.Key(d, g), Granularity: g.String()}
		for _, gr := range timeband.All {
			pr := timeband.PeriodOf(d, gr)
			res.Periods = append(res.Periods, periodJSON{
				Granularity: gr.String(),
				Key:         pr.Key(),
				Label:       timeband.Label(pr.Start(), gr),
				Start:       pr.Start().String(),
				End:         pr.End().String(),
			})
		}
		return printers.JSON(out, res)
	}

	own := timeband.PeriodOf(d, g)
	pp := printers.PrettyPrint{Out: out}
	pp.Title(own.Key())
	pp.Periods(d)
	pp.Month(d, own.Start(), own.End())
	return nil
}

func (p *Period) resolve() (timeband.Date, timeband.Granularity, error) {
	s := strings.TrimSpace(p.Date)
	if s == "" || strings.EqualFold(s, "today") {
		c := p.Clock
		if c == nil {
			c = clock.Real{}
		}
		return timeband.Today(c.Now), timeband.Day, nil
	}
	return timeband.ParseDate(s)
}

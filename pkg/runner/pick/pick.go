// Package pick runs the interactive timeline picker and reports the result.
package pick

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"tableflip.dev/timeband/pkg/printers"
	"tableflip.dev/timeband/pkg/tui/app"
)

var (
	// ErrNotTerminal is returned when stdin or stdout is not a terminal.
	ErrNotTerminal = errors.New("the picker needs an interactive terminal")
	// ErrCancelled is returned when the user aborted with ctrl+c.
	ErrCancelled = errors.New("cancelled")
)

// Pick owns the terminal until the user quits.
type Pick struct {
	Options app.Options
	JSON    bool
	Out     io.Writer

	// IsTerminal reports whether fd is a terminal. Nil uses go-isatty.
	IsTerminal func(fd uintptr) bool
	// Run starts the program. Nil uses app.Run.
	Run func(ctx context.Context, opts app.Options) (app.Result, error)
}

// Do runs the picker and prints the selection made.
func (p *Pick) Do(ctx context.Context) error {
	out := p.Out
	if out == nil {
		out = color.Output
	}
	isTerm := p.IsTerminal
	if isTerm == nil {
		isTerm = terminal
	}
	if !isTerm(os.Stdin.Fd()) || !isTerm(os.Stdout.Fd()) {
		return ErrNotTerminal
	}
	run := p.Run
	if run == nil {
		run = app.Run
	}

	res, err := run(ctx, p.Options)
	if err != nil {
		return err
	}
	if res.Cancelled {
		return ErrCancelled
	}

	if p.JSON {
		return printers.JSON(out, printers.NewRangeJSON(res.Range))
	}
	pp := printers.PrettyPrint{Out: out}
	pp.Range(res.Range)
	return nil
}

func terminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/timeband/pkg/commands/options"
	"tableflip.dev/timeband/pkg/runner/pick"
	"tableflip.dev/timeband/pkg/tui/app"
)

func addPick(topLevel *cobra.Command) {
	to := &options.TimelineOptions{}
	width := 0
	full := false
	showEvents := false

	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Pick a date or range interactively.",
		Long: options.Wrap80(`Opens the timeline in the terminal. Scroll with the arrow keys or a
horizontal wheel, zoom between days, months and years with +/- or the
vertical wheel, and click or press enter to select. q prints the selection,
ctrl+c aborts.`),
		Example: `
timeband pick
timeband pick --granularity month --anchor 2017-12
timeband pick --single-date --json
`,
		Annotations: map[string]string{tuiAnnotation: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := cfg.TimelineOptions()
			if err != nil {
				return oo.HandleError(err)
			}
			p := pick.Pick{
				Options: app.Options{
					Timeline: opts,
					Width:    width,
					Full:     full,
					Events:   showEvents,
				},
				JSON: oo.JSON,
			}
			return oo.HandleError(p.Do(cmd.Context()))
		},
	}

	options.AddTimelineArgs(cmd, to)
	options.AddOutputArg(cmd, oo)
	cmd.Flags().IntVarP(&width, "width", "w", 0, "Maximum frame width. 0 uses the terminal width.")
	cmd.Flags().BoolVar(&full, "full", false, "Always use the full terminal width.")
	cmd.Flags().BoolVar(&showEvents, "events", false, "Show the event log below the timeline.")

	topLevel.AddCommand(cmd)
}

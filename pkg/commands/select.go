package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/timeband/pkg/commands/options"
	"tableflip.dev/timeband/pkg/runner/script"
)

func addSelect(topLevel *cobra.Command) {
	to := &options.TimelineOptions{}
	showEvents := false

	cmd := &cobra.Command{
		Use:   "select step...",
		Short: "Run selection steps against a headless timeline.",
		Long: `Runs each step in order and prints the resulting selection.

Steps:
  click:<key>               click 2017, 2017-12 or 2017-12-29
  zoom:in|out               zoom one level around the centre
  granularity:<g>[@<date>]  switch granularity
  range:<start>..<end>      set the selection
  mode:period|range|single  change the click protocol
  pan:<cells>               scroll the viewport
  clear                     clear the selection
`,
		Example: `
timeband select click:2017-12-29 click:2017-12-20
timeband select --single-date click:2017-12 click:2017-12 click:2018-03
timeband select --events --json click:2017 zoom:in
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := cfg.TimelineOptions()
			if err != nil {
				return oo.HandleError(err)
			}
			s := script.Script{
				Options: opts,
				Width:   to.Width,
				Steps:   args,
				Events:  showEvents,
				JSON:    oo.JSON,
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddTimelineArgs(cmd, to)
	options.AddWidthArg(cmd, to, script.DefaultWidth)
	options.AddOutputArg(cmd, oo)
	cmd.Flags().BoolVar(&showEvents, "events", false, "Print every notification.")

	topLevel.AddCommand(cmd)
}

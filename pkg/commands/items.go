package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/timeband/pkg/commands/options"
	"tableflip.dev/timeband/pkg/runner/items"
)

func addItems(topLevel *cobra.Command) {
	to := &options.TimelineOptions{}

	cmd := &cobra.Command{
		Use:   "items",
		Short: "List the timeline items visible around a date.",
		Example: `
timeband items
timeband items -g month -a 2017-12 --width 120
timeband items -g year --json
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := cfg.TimelineOptions()
			if err != nil {
				return oo.HandleError(err)
			}
			i := items.Items{Options: opts, Width: to.Width, JSON: oo.JSON}
			return oo.HandleError(i.Do(cmd.Context()))
		},
	}

	options.AddTimelineArgs(cmd, to)
	options.AddWidthArg(cmd, to, items.DefaultWidth)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

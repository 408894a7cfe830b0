package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/timeband/pkg/commands/options"
	"tableflip.dev/timeband/pkg/runner/period"
)

func addPeriod(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "period [date]",
		Short: "Show the year, month and day periods containing a date.",
		Example: `
timeband period
timeband period 2016-02
timeband period 2017-12-29 --json
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := period.Period{JSON: oo.JSON}
			if len(args) > 0 {
				p.Date = args[0]
			}
			return oo.HandleError(p.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

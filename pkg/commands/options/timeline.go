package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/timeband/pkg/timeband"
)

// TimelineOptions are the flags shared by every command that builds a
// timeline. They override the config file when set.
type TimelineOptions struct {
	Granularity string
	Anchor      string
	SingleDate  bool
	Range       bool
	Width       int
}

// FlagKeys maps timeline flag names to config keys.
var FlagKeys = map[string]string{
	"granularity": "granularity",
	"anchor":      "anchor",
	"single-date": "single_date",
	"range":       "allow_range",
}

func AddTimelineArgs(cmd *cobra.Command, o *TimelineOptions) {
	cmd.Flags().StringVarP(&o.Granularity, "granularity", "g", timeband.Day.String(),
		"Initial granularity: day, month or year.")
	cmd.Flags().StringVarP(&o.Anchor, "anchor", "a", "",
		`Date to centre on (2017, 2017-12 or 2017-12-29). Defaults to today.`)
	cmd.Flags().BoolVar(&o.SingleDate, "single-date", false,
		"Use single date selection: the second click on a period locks it.")
	cmd.Flags().BoolVar(&o.Range, "range", true,
		"Turn every pair of clicks into a range.")
	_ = cmd.RegisterFlagCompletionFunc("granularity", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		names := make([]string, 0, len(timeband.All))
		for _, g := range timeband.All {
			names = append(names, g.String())
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})
}

func AddWidthArg(cmd *cobra.Command, o *TimelineOptions, def int) {
	cmd.Flags().IntVarP(&o.Width, "width", "w", def,
		"Viewport width in cells.")
}

package options

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tableflip.dev/timeband/pkg/printers"
)

// OutputOptions
type OutputOptions struct {
	JSON bool
}

func AddOutputArg(cmd *cobra.Command, po *OutputOptions) {
	cmd.Flags().BoolVar(&po.JSON, "json", false,
		"Output as JSON.")
}

// HandleError prints err as a JSON envelope when --json is set and swallows
// it; otherwise err is returned unchanged.
func (o *OutputOptions) HandleError(err error) error {
	if o.JSON && err != nil {
		if perr := printers.JSON(color.Output, map[string]string{"error": err.Error()}); perr != nil {
			return perr
		}
		return nil
	}
	return err
}

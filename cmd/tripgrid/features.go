// features.go registers 'tripgrid features', listing the feature flags and their state for this invocation.
package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/example/tripgrid/internal/featureflags"
	"github.com/spf13/cobra"
)

func newFeaturesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "features",
		Short: "List feature flags and whether they are enabled",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := featureflags.FromContext(cmd.Context())
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tSTAGE\tENABLED\tENV\tDESCRIPTION")
			for _, def := range featureflags.Definitions() {
				fmt.Fprintf(tw, "%s\t%s\t%t\t%s\t%s\n", def.Name, def.Stage, flags.Enabled(def.Name), def.EnvVar(), def.Description)
			}
			return tw.Flush()
		},
	}
}

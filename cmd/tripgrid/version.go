// File: cmd/tripgrid/version.go
// Brief: CLI command wiring and implementation for 'version'.

package main

import (
	"fmt"

	"github.com/example/tripgrid/internal/config"
	"github.com/example/tripgrid/internal/render"
	"github.com/example/tripgrid/internal/version"
	"github.com/spf13/cobra"
)

func newVersionCommand(opts *config.Options) *cobra.Command {
	var short bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the tripgrid version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.Get()
			switch {
			case short:
				fmt.Fprintln(cmd.OutOrStdout(), info.Version)
				return nil
			case opts.OutputFormat != config.OutputTable:
				return render.Encode(cmd.OutOrStdout(), opts.OutputFormat, info)
			}
			fmt.Fprintln(cmd.OutOrStdout(), info.String())
			fmt.Fprintf(cmd.OutOrStdout(), "GoVersion: %s\nPlatform: %s\n", info.GoVersion, info.Platform)
			return nil
		},
	}
	cmd.Flags().BoolVar(&short, "short", false, "Print just the version number")
	return cmd
}

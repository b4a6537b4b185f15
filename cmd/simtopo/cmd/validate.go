package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newValidateCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [binary]",
		Short: "Build and validate the topology.",
		Long: "`validate` builds the topology from the configuration and " +
			"checks its ports, address ranges, request paths and parameters.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := opts.buildValidated(cmd, args)
			if err != nil {
				return err
			}

			desc := s.Topology.Describe()
			fmt.Fprintf(cmd.OutOrStdout(),
				"OK: %s with %d devices and %d connections\n",
				desc.Name, len(desc.Devices), len(desc.Connections))

			return nil
		},
	}
}

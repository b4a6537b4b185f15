package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sarchlab/simtopo/mem"
	"github.com/sarchlab/simtopo/mem/dram"
)

func newModelsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List the memory models a controller can be bound to.",
		Long: "`models` prints every memory model accepted by --mem_model " +
			"together with its protocol, data rate, burst size and capacity " +
			"per channel.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tPROTOCOL\tLOW POWER\tDATA RATE\tBURST\tCAPACITY")

			for _, name := range dram.Names() {
				m, _ := dram.Lookup(name)
				fmt.Fprintf(w, "%s\t%s\t%t\t%s\t%s\t%s\n",
					m.Name,
					m.Protocol,
					m.Protocol.IsLowPower(),
					m.DataRate(),
					mem.FormatByteSize(m.BurstSize()),
					mem.FormatByteSize(m.Capacity()),
				)
			}

			return w.Flush()
		},
	}
}

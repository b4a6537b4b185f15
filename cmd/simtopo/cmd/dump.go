package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sarchlab/simtopo/datarecording"
	"github.com/sarchlab/simtopo/topology"
)

type dumpOptions struct {
	format     string
	fromRecord string
	recordID   string
}

func newDumpCommand(opts *options) *cobra.Command {
	dumpOpts := &dumpOptions{}

	dumpCmd := &cobra.Command{
		Use:   "dump [binary]",
		Short: "Print the validated topology.",
		Long: "`dump --format json|yaml` prints the devices, connections and " +
			"address ranges of the validated topology. With --from-record it " +
			"prints a topology read back from a recording instead.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if dumpOpts.format != "json" && dumpOpts.format != "yaml" {
				return fmt.Errorf("unknown format %q, use json or yaml",
					dumpOpts.format)
			}

			desc, err := dumpOpts.description(opts, cmd, args)
			if err != nil {
				return err
			}

			return writeDescription(cmd.OutOrStdout(), dumpOpts.format, desc)
		},
	}

	f := dumpCmd.Flags()
	f.StringVar(&dumpOpts.format, "format", "json", "json or yaml")
	f.StringVar(&dumpOpts.fromRecord, "from-record", "",
		"read the topology from this recording (with the .sqlite3 extension)")
	f.StringVar(&dumpOpts.recordID, "record-id", "",
		"topology to read when the recording holds several")

	return dumpCmd
}

func (d *dumpOptions) description(
	opts *options,
	cmd *cobra.Command,
	args []string,
) (topology.Description, error) {
	if d.fromRecord == "" {
		s, _, err := opts.buildValidated(cmd, args)
		if err != nil {
			return topology.Description{}, err
		}

		return s.Topology.Describe(), nil
	}

	if len(args) > 0 {
		return topology.Description{},
			fmt.Errorf("a binary cannot be given with --from-record")
	}

	reader, err := datarecording.NewReader(d.fromRecord)
	if err != nil {
		return topology.Description{}, err
	}
	defer reader.Close()

	return datarecording.ReadTopology(cmd.Context(), reader, d.recordID)
}

func writeDescription(out io.Writer, format string, desc topology.Description) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)

		if err := enc.Encode(desc); err != nil {
			return err
		}

		return enc.Close()
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")

	return enc.Encode(desc)
}

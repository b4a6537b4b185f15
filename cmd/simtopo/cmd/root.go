// Package cmd provides the command-line interface of simtopo.
package cmd

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/sarchlab/simtopo/datarecording"
	"github.com/sarchlab/simtopo/engine"
	"github.com/sarchlab/simtopo/monitoring"
	"github.com/sarchlab/simtopo/timing"
)

// SystemName is the name of the root of every built topology.
const SystemName = "System"

// NewRootCommand creates the simtopo command tree.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "simtopo [binary]",
		Short: "Build, validate and run a simulated computer system.",
		Long: `simtopo wires a CPU, an optional two-level cache hierarchy, ` +
			`buses and a memory controller into a system topology, ` +
			`validates it and hands it to a simulation engine together ` +
			`with the program to run.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, args)
		},
	}

	opts.addFlags(rootCmd)

	rootCmd.AddCommand(newValidateCommand(opts))
	rootCmd.AddCommand(newDumpCommand(opts))
	rootCmd.AddCommand(newModelsCommand())

	return rootCmd
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	rootCmd := NewRootCommand()

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err)
		return 1
	}

	return 0
}

func (o *options) run(cmd *cobra.Command, args []string) error {
	s, logger, err := o.buildValidated(cmd, args)
	if err != nil {
		return err
	}

	var exec *datarecording.ExecRecorder

	if o.record != "" {
		rec := datarecording.New(o.record)
		defer rec.Close()

		exec = datarecording.NewExecRecorder(rec)
		exec.Start()

		if err := datarecording.RecordTopology(rec, s.Topology); err != nil {
			return err
		}
	}

	if o.monitor {
		_, err := monitoring.NewMonitor().
			WithPortNumber(o.monitorPort).
			WithBrowser(o.openBrowser).
			RegisterTopology(s.Topology).
			StartServer()
		if err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	dry := &engine.DryRunEngine{}

	exit, err := engine.Run(ctx, dry, dry, s.Topology, s.Workload, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), exit.String())
	logger.Debug("simulation finished",
		"tick", exit.Tick,
		"seconds", float64(timing.TicksToSec(exit.Tick)),
		"cause", exit.Cause,
	)

	if exec != nil {
		exec.Note("Exit", exit.String())
		exec.End()
	}

	if o.monitor {
		fmt.Fprintln(cmd.ErrOrStderr(),
			"Monitoring server is still running. Press Ctrl+C to exit.")
		<-ctx.Done()
	}

	return nil
}

// Package engine hands a validated topology and its workload over to a
// simulation engine.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sarchlab/simtopo/system"
	"github.com/sarchlab/simtopo/topology"
)

// ErrNotValidated is returned when a topology that has not passed validation
// is offered to an engine.
var ErrNotValidated = errors.New("engine: topology is not validated")

// An ExitEvent tells when and why a simulation stopped.
type ExitEvent struct {
	Tick  uint64
	Cause string
}

func (e ExitEvent) String() string {
	return fmt.Sprintf("Exiting @ tick %d because %s", e.Tick, e.Cause)
}

// An Engine simulates an instantiated topology.
type Engine interface {
	// Instantiate creates the simulated objects of a validated topology.
	Instantiate(topo *topology.Topology) error

	// Simulate runs until an exit event happens or the context is done.
	Simulate(ctx context.Context) (ExitEvent, error)
}

// A Loader prepares the program that the simulated CPU runs.
type Loader interface {
	Load(w system.Workload) error
}

// Run hands the topology to the engine and runs the simulation. The topology
// must be validated. Progress notices are written to out.
func Run(
	ctx context.Context,
	e Engine,
	l Loader,
	topo *topology.Topology,
	w system.Workload,
	out io.Writer,
) (ExitEvent, error) {
	if topo == nil || !topo.Validated() {
		return ExitEvent{}, ErrNotValidated
	}

	if err := ctx.Err(); err != nil {
		return ExitEvent{}, err
	}

	if err := l.Load(w); err != nil {
		return ExitEvent{}, fmt.Errorf("loading workload %s: %w", w.BinaryPath, err)
	}

	if err := e.Instantiate(topo); err != nil {
		return ExitEvent{}, fmt.Errorf("instantiating %s: %w", topo.Name(), err)
	}

	fmt.Fprintln(out, "Beginning Simulation!")

	exit, err := e.Simulate(ctx)
	if err != nil {
		return exit, fmt.Errorf("simulating %s: %w", topo.Name(), err)
	}

	return exit, nil
}

package engine

import (
	"context"

	"github.com/sarchlab/simtopo/system"
	"github.com/sarchlab/simtopo/topology"
)

// DryRunCause is the exit cause reported by DryRunEngine.
const DryRunCause = "dry run"

// DryRunEngine stands in when no simulation engine is linked. It accepts
// the workload and the topology and exits immediately at tick 0.
type DryRunEngine struct {
	Workload system.Workload
	Topology *topology.Topology
}

// Load records the workload.
func (e *DryRunEngine) Load(w system.Workload) error {
	e.Workload = w
	return nil
}

// Instantiate records the topology.
func (e *DryRunEngine) Instantiate(topo *topology.Topology) error {
	if !topo.Validated() {
		return ErrNotValidated
	}

	e.Topology = topo

	return nil
}

// Simulate returns the dry-run exit event.
func (e *DryRunEngine) Simulate(ctx context.Context) (ExitEvent, error) {
	if err := ctx.Err(); err != nil {
		return ExitEvent{}, err
	}

	return ExitEvent{Tick: 0, Cause: DryRunCause}, nil
}

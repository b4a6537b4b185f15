package topology

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/sarchlab/simtopo/mem"
	"github.com/sarchlab/simtopo/mem/dram"
	"github.com/sarchlab/simtopo/naming"
	"github.com/sarchlab/simtopo/timing"
)

// Validate checks the topology and freezes it on success. The checks run in
// order and the first failure is returned as a *ValidationError:
//
//  1. every request port has exactly one peer and every non-optional
//     response port has at least one;
//  2. address ranges of distinct controllers do not overlap, are not empty,
//     and cover the declared system memory;
//  3. request paths are acyclic and every CPU reaches a memory controller;
//  4. sizes, clocks, counts and model names are well-formed.
func (t *Topology) Validate() error {
	if t.validated {
		return nil
	}

	checks := []func() error{
		t.checkPorts,
		t.checkAddressRanges,
		t.checkGraph,
		t.checkParams,
	}

	for _, check := range checks {
		if err := check(); err != nil {
			return err
		}
	}

	t.validated = true

	return nil
}

func (t *Topology) checkPorts() error {
	for _, p := range t.Ports() {
		switch {
		case p.direction == Request && len(p.peers) == 0:
			return &ValidationError{
				Check:   CheckPorts,
				Reason:  fmt.Sprintf("request port %s is not connected", p.name),
				Devices: []string{p.device.Name()},
				Err:     ErrDanglingPort,
			}
		case p.direction == Request && len(p.peers) > 1:
			return &ValidationError{
				Check: CheckPorts,
				Reason: fmt.Sprintf(
					"request port %s is connected to %d response ports",
					p.name, len(p.peers)),
				Devices: []string{p.device.Name()},
				Err:     ErrMultiplyConnected,
			}
		case p.direction == Response && len(p.peers) == 0 && !p.optional:
			return &ValidationError{
				Check:   CheckPorts,
				Reason:  fmt.Sprintf("response port %s is not connected", p.name),
				Devices: []string{p.device.Name()},
				Err:     ErrDanglingPort,
			}
		}
	}

	return nil
}

func (t *Topology) checkAddressRanges() error {
	if len(mem.Union(t.ranges)) == 0 {
		return &ValidationError{
			Check:  CheckAddressRanges,
			Reason: "no memory controller owns an address range",
			Err:    ErrEmptyAddressSpace,
		}
	}

	for i := 0; i < len(t.ranges); i++ {
		for j := i + 1; j < len(t.ranges); j++ {
			a, b := t.ranges[i], t.ranges[j]
			if a.Owner == b.Owner || !a.Overlaps(b) {
				continue
			}

			owners := []string{a.Owner, b.Owner}
			sort.Strings(owners)

			return &ValidationError{
				Check:   CheckAddressRanges,
				Reason:  fmt.Sprintf("%s overlaps %s", a, b),
				Devices: owners,
				Err:     ErrOverlappingRanges,
			}
		}
	}

	if len(t.memoryRanges) > 0 && !mem.SameCoverage(t.ranges, t.memoryRanges) {
		return &ValidationError{
			Check: CheckAddressRanges,
			Reason: fmt.Sprintf(
				"controllers cover %v but system memory is %v",
				mem.Union(t.ranges), mem.Union(t.memoryRanges)),
			Err: ErrUncoveredAddressSpace,
		}
	}

	return nil
}

func (t *Topology) checkGraph() error {
	if cycle := findCycle(t.devices); cycle != nil {
		return &ValidationError{
			Check:   CheckGraph,
			Reason:  "request path loops back: " + joinNames(cycle, " -> "),
			Devices: namesOf(cycle),
			Err:     ErrCycle,
		}
	}

	for _, cpu := range t.DevicesOfKind(KindCPU) {
		if !reaches(cpu, KindMemoryController) {
			return &ValidationError{
				Check: CheckGraph,
				Reason: fmt.Sprintf(
					"%s has no request path to a memory controller", cpu.Name()),
				Devices: []string{cpu.Name()},
				Err:     ErrUnreachableMemory,
			}
		}
	}

	return nil
}

func (t *Topology) checkParams() error {
	clockField := naming.BuildName(t.Name(), "ClockDomain.Clock")
	if err := checkField(clockField, t.clockDomain.Clock, UnitFreq); err != nil {
		return err
	}

	if t.memMode != MemModeTiming && t.memMode != MemModeAtomic {
		return &ValidationError{
			Check:  CheckParams,
			Reason: "memory mode must be timing or atomic",
			Field:  naming.BuildName(t.Name(), "MemMode"),
			Raw:    t.memMode,
			Err:    ErrMalformedParam,
		}
	}

	for _, d := range t.devices {
		for _, f := range d.params.Fields() {
			name := naming.BuildName(d.Name(), f.Name)
			if err := checkField(name, f.Value, f.Unit); err != nil {
				err.Devices = []string{d.Name()}
				return err
			}
		}

		if err := t.checkKindParams(d); err != nil {
			return err
		}
	}

	return nil
}

func (t *Topology) checkKindParams(d *Device) *ValidationError {
	switch p := d.params.(type) {
	case CPUParams:
		if _, known := ParseCPUModel(string(p.Model)); !known {
			return &ValidationError{
				Check:   CheckParams,
				Reason:  "unknown cpu model",
				Field:   naming.BuildName(d.Name(), "Model"),
				Raw:     string(p.Model),
				Devices: []string{d.Name()},
				Err:     ErrMalformedParam,
			}
		}

		if p.Model.MemMode() != t.memMode {
			return &ValidationError{
				Check: CheckParams,
				Reason: fmt.Sprintf("%s cpus need %s memory mode",
					p.Model, p.Model.MemMode()),
				Field:   naming.BuildName(t.Name(), "MemMode"),
				Raw:     t.memMode,
				Devices: []string{d.Name()},
				Err:     ErrMemModeMismatch,
			}
		}
	case MemCtrlParams:
		model, known := dram.Lookup(p.Model)
		if !known {
			return &ValidationError{
				Check:   CheckParams,
				Reason:  "unknown memory model",
				Field:   naming.BuildName(d.Name(), "Model"),
				Raw:     p.Model,
				Devices: []string{d.Name()},
				Err:     ErrUnknownMemoryModel,
			}
		}

		if err := model.Validate(); err != nil {
			return &ValidationError{
				Check:   CheckParams,
				Reason:  err.Error(),
				Field:   naming.BuildName(d.Name(), "Model"),
				Raw:     p.Model,
				Devices: []string{d.Name()},
				Err:     ErrMalformedParam,
			}
		}
	}

	return nil
}

func checkField(name, raw string, unit Unit) *ValidationError {
	var err error

	switch unit {
	case UnitBytes:
		_, err = mem.ParseByteSize(raw)
	case UnitFreq:
		err = clockMustFitTicks(raw)
	case UnitCount:
		err = intAtLeast(raw, 1)
	case UnitCycles:
		err = intAtLeast(raw, 0)
	}

	if err == nil {
		return nil
	}

	return &ValidationError{
		Check:  CheckParams,
		Reason: err.Error(),
		Field:  name,
		Raw:    raw,
		Err:    ErrMalformedParam,
	}
}

// clockMustFitTicks rejects clocks whose cycle is shorter than one tick.
func clockMustFitTicks(raw string) error {
	f, err := timing.ParseFreq(raw)
	if err != nil {
		return err
	}

	if f.PeriodInTicks() == 0 {
		return fmt.Errorf("clock %s is faster than the tick resolution", f)
	}

	return nil
}

func intAtLeast(raw string, lowest int) error {
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("%q is not an integer", raw)
	}

	if v < lowest {
		return fmt.Errorf("%d is below %d", v, lowest)
	}

	return nil
}

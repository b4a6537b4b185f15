package topology

import (
	"strconv"
)

// Unit tells how the raw value of a parameter field is parsed.
type Unit int

// Units of parameter fields.
const (
	UnitNone Unit = iota
	UnitBytes
	UnitFreq
	UnitCount
	UnitCycles
)

// A Field is one named parameter value in its raw, user-facing form.
type Field struct {
	Name  string
	Value string
	Unit  Unit
}

// Params holds the kind-specific parameters of a device.
type Params interface {
	Kind() Kind
	Fields() []Field
}

// RootParams describes the system root. It carries no parameters of its own;
// the clock domain and memory mode belong to the topology.
type RootParams struct{}

// Kind returns KindRoot.
func (RootParams) Kind() Kind { return KindRoot }

// Fields returns nothing.
func (RootParams) Fields() []Field { return nil }

// CPUParams describes a CPU.
type CPUParams struct {
	Model CPUModel
	Clock string

	InterruptController bool
}

// Kind returns KindCPU.
func (CPUParams) Kind() Kind { return KindCPU }

// Fields lists the parameters.
func (p CPUParams) Fields() []Field {
	fields := []Field{{Name: "Model", Value: string(p.Model)}}
	if p.Clock != "" {
		fields = append(fields, Field{Name: "Clock", Value: p.Clock, Unit: UnitFreq})
	}

	return append(fields, Field{
		Name:  "InterruptController",
		Value: strconv.FormatBool(p.InterruptController),
	})
}

// CacheRole tells what a cache stores.
type CacheRole string

// Cache roles.
const (
	CacheInstruction CacheRole = "Instruction"
	CacheData        CacheRole = "Data"
	CacheUnified     CacheRole = "Unified"
)

// CacheParams describes a cache.
type CacheParams struct {
	Role  CacheRole
	Level int
	Size  string
	Assoc int

	TagLatency      int
	DataLatency     int
	ResponseLatency int
	MSHRs           int
	TargetsPerMSHR  int
}

// Kind returns KindCache.
func (CacheParams) Kind() Kind { return KindCache }

// Fields lists the parameters.
func (p CacheParams) Fields() []Field {
	return []Field{
		{Name: "Role", Value: string(p.Role)},
		{Name: "Level", Value: strconv.Itoa(p.Level), Unit: UnitCount},
		{Name: "Size", Value: p.Size, Unit: UnitBytes},
		{Name: "Assoc", Value: strconv.Itoa(p.Assoc), Unit: UnitCount},
		{Name: "TagLatency", Value: strconv.Itoa(p.TagLatency), Unit: UnitCycles},
		{Name: "DataLatency", Value: strconv.Itoa(p.DataLatency), Unit: UnitCycles},
		{Name: "ResponseLatency", Value: strconv.Itoa(p.ResponseLatency), Unit: UnitCycles},
		{Name: "MSHRs", Value: strconv.Itoa(p.MSHRs), Unit: UnitCount},
		{Name: "TargetsPerMSHR", Value: strconv.Itoa(p.TargetsPerMSHR), Unit: UnitCount},
	}
}

// BusRole tells where a bus sits in the hierarchy.
type BusRole string

// Bus roles.
const (
	BusL2     BusRole = "L2"
	BusSystem BusRole = "System"
)

// BusParams describes a crossbar.
type BusParams struct {
	Role  BusRole
	Width int

	FrontendLatency int
	ForwardLatency  int
	ResponseLatency int
}

// Kind returns KindBus.
func (BusParams) Kind() Kind { return KindBus }

// Fields lists the parameters.
func (p BusParams) Fields() []Field {
	return []Field{
		{Name: "Role", Value: string(p.Role)},
		{Name: "Width", Value: strconv.Itoa(p.Width), Unit: UnitCount},
		{Name: "FrontendLatency", Value: strconv.Itoa(p.FrontendLatency), Unit: UnitCycles},
		{Name: "ForwardLatency", Value: strconv.Itoa(p.ForwardLatency), Unit: UnitCycles},
		{Name: "ResponseLatency", Value: strconv.Itoa(p.ResponseLatency), Unit: UnitCycles},
	}
}

// MemCtrlParams describes a memory controller and the timing model of the
// memory behind it.
type MemCtrlParams struct {
	Model string
}

// Kind returns KindMemoryController.
func (MemCtrlParams) Kind() Kind { return KindMemoryController }

// Fields lists the parameters.
func (p MemCtrlParams) Fields() []Field {
	return []Field{{Name: "Model", Value: p.Model}}
}

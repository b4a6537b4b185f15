package topology

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sarchlab/simtopo/mem"
	"github.com/sarchlab/simtopo/naming"
)

// ClockDomain is the root clock and voltage of the system.
type ClockDomain struct {
	Clock   string
	Voltage string
}

// A Topology is the wired graph of devices, ports and address ranges.
type Topology struct {
	naming.NamedBase

	id    string
	idGen IDGenerator

	devices     []*Device
	deviceIndex map[string]*Device
	ports       []*Port
	portIndex   map[string]*Port

	ranges       []mem.AddressRange
	memoryRanges []mem.AddressRange
	clockDomain  ClockDomain
	memMode      string

	validated bool
}

// New creates an empty topology. The name becomes the prefix of all device
// names, e.g. "System".
func New(name string) (*Topology, error) {
	if err := naming.ValidateName(name); err != nil {
		return nil, &BuildError{Device: name, Reason: err.Error(), Err: err}
	}

	t := &Topology{
		NamedBase:   naming.MakeNamedBase(name),
		id:          newRunID(),
		idGen:       NewSequentialIDGenerator(),
		deviceIndex: make(map[string]*Device),
		portIndex:   make(map[string]*Port),
		memMode:     MemModeTiming,
	}

	return t, nil
}

// ID returns the unique identifier of this topology instance.
func (t *Topology) ID() string {
	return t.id
}

// Validated tells if Validate has succeeded. A validated topology is frozen.
func (t *Topology) Validated() bool {
	return t.validated
}

func (t *Topology) mustNotBeFrozen(subject string) error {
	if t.validated {
		return &BuildError{
			Device: subject,
			Reason: "topology is frozen after validation",
			Err:    ErrFrozen,
		}
	}

	return nil
}

// SetClockDomain sets the root clock domain.
func (t *Topology) SetClockDomain(cd ClockDomain) error {
	if err := t.mustNotBeFrozen(t.Name()); err != nil {
		return err
	}

	t.clockDomain = cd

	return nil
}

// ClockDomain returns the root clock domain.
func (t *Topology) ClockDomain() ClockDomain {
	return t.clockDomain
}

// SetMemMode sets the memory access mode, "timing" or "atomic".
func (t *Topology) SetMemMode(mode string) error {
	if err := t.mustNotBeFrozen(t.Name()); err != nil {
		return err
	}

	t.memMode = mode

	return nil
}

// MemMode returns the memory access mode.
func (t *Topology) MemMode() string {
	return t.memMode
}

// AddDevice creates a device. The name must be nested under the topology
// name, e.g. "System.CPU", except for the root device, which is named after
// the topology. The standard ports of the device kind are created with it.
func (t *Topology) AddDevice(name string, params Params) (*Device, error) {
	if err := t.mustNotBeFrozen(name); err != nil {
		return nil, err
	}

	if params == nil {
		return nil, &BuildError{Device: name, Reason: "device has no parameters"}
	}

	if err := naming.ValidateName(name); err != nil {
		return nil, &BuildError{Device: name, Reason: err.Error(), Err: err}
	}

	if err := t.nameMustFitKind(name, params.Kind()); err != nil {
		return nil, err
	}

	if _, found := t.deviceIndex[name]; found {
		return nil, &BuildError{Device: name, Reason: "device already exists"}
	}

	d := &Device{
		NamedBase: naming.MakeNamedBase(name),
		params:    params,
		ports:     make(map[string]*Port),
	}

	for _, spec := range StandardPorts(params.Kind()) {
		if _, err := newPort(d, spec); err != nil {
			return nil, err
		}
	}

	d.id = t.idGen.Generate()
	t.devices = append(t.devices, d)
	t.deviceIndex[name] = d

	for _, p := range d.Ports() {
		t.registerPort(p)
	}

	return d, nil
}

// The root device carries the topology name itself, so that its port reads
// as "System.SystemPort". Every other device is nested under it.
func (t *Topology) nameMustFitKind(name string, k Kind) error {
	if k == KindRoot {
		if name != t.Name() {
			return &BuildError{
				Device: name,
				Reason: "the root device must be named " + t.Name(),
			}
		}

		return nil
	}

	if !strings.HasPrefix(name, t.Name()+".") {
		return &BuildError{
			Device: name,
			Reason: "device must be named under " + t.Name(),
		}
	}

	return nil
}

// AddPort adds a port to a device.
func (t *Topology) AddPort(d *Device, spec PortSpec) (*Port, error) {
	if err := t.deviceMustBelong(d); err != nil {
		return nil, err
	}

	if err := t.mustNotBeFrozen(naming.BuildName(d.Name(), spec.Name)); err != nil {
		return nil, err
	}

	p, err := newPort(d, spec)
	if err != nil {
		return nil, err
	}

	t.registerPort(p)

	return p, nil
}

// newPort attaches a port to the device only. The topology learns about it
// through registerPort.
func newPort(d *Device, spec PortSpec) (*Port, error) {
	name := naming.BuildName(d.Name(), spec.Name)

	if err := naming.ValidateName(name); err != nil {
		return nil, &BuildError{Port: name, Reason: err.Error(), Err: err}
	}

	if _, found := d.ports[spec.Name]; found {
		return nil, &BuildError{Port: name, Reason: "port already exists"}
	}

	p := &Port{
		name:      name,
		localName: spec.Name,
		device:    d,
		direction: spec.Direction,
		optional:  spec.Optional,
	}

	d.ports[spec.Name] = p

	return p, nil
}

func (t *Topology) registerPort(p *Port) {
	t.ports = append(t.ports, p)
	t.portIndex[p.name] = p
}

// AddMemSidePort adds the next indexed memory-side request port to a bus.
func (t *Topology) AddMemSidePort(bus *Device) (*Port, error) {
	if bus == nil || bus.Kind() != KindBus {
		return nil, &BuildError{
			Device: deviceName(bus),
			Reason: "memory-side port vectors only exist on buses",
		}
	}

	local := ""
	for index := 0; ; index++ {
		local = naming.BuildNameWithIndex("", PortMemSides, index)
		if _, found := bus.ports[local]; !found {
			break
		}
	}

	return t.AddPort(bus, PortSpec{Name: local, Direction: Request})
}

func (t *Topology) deviceMustBelong(d *Device) error {
	if d == nil {
		return &BuildError{Reason: "nil device"}
	}

	if t.deviceIndex[d.Name()] != d {
		return &BuildError{
			Device: d.Name(),
			Reason: "device does not belong to topology " + t.Name(),
		}
	}

	return nil
}

func deviceName(d *Device) string {
	if d == nil {
		return ""
	}

	return d.Name()
}

// Connect binds a request port to a response port. The connection is
// recorded on both endpoints. A request port takes exactly one peer, while a
// response port may accept many.
func (t *Topology) Connect(req, rsp *Port) error {
	if req == nil || rsp == nil {
		return &BuildError{Reason: "cannot connect a nil port"}
	}

	if err := t.mustNotBeFrozen(req.name); err != nil {
		return err
	}

	if t.portIndex[req.name] != req || t.portIndex[rsp.name] != rsp {
		return &BuildError{
			Port:   req.name,
			Reason: "ports must belong to topology " + t.Name(),
		}
	}

	if req.direction != Request {
		return &BuildError{
			Port:   req.name,
			Reason: fmt.Sprintf("expected a request port, got a %s port", req.direction),
		}
	}

	if rsp.direction != Response {
		return &BuildError{
			Port:   rsp.name,
			Reason: fmt.Sprintf("expected a response port, got a %s port", rsp.direction),
		}
	}

	if req.device == rsp.device {
		return &BuildError{
			Port:   req.name,
			Reason: "cannot connect a device to itself",
		}
	}

	if len(req.peers) > 0 {
		return &BuildError{
			Port: req.name,
			Reason: fmt.Sprintf(
				"already connected to %s, now connecting to %s",
				req.peers[0].name, rsp.name),
		}
	}

	req.peers = append(req.peers, rsp)
	rsp.peers = append(rsp.peers, req)

	return nil
}

// ConnectByName is Connect with ports looked up by their full names.
func (t *Topology) ConnectByName(reqName, rspName string) error {
	req, found := t.portIndex[reqName]
	if !found {
		return &BuildError{Port: reqName, Reason: "port not found"}
	}

	rsp, found := t.portIndex[rspName]
	if !found {
		return &BuildError{Port: rspName, Reason: "port not found"}
	}

	return t.Connect(req, rsp)
}

// AssignRange gives an address range to a memory controller.
func (t *Topology) AssignRange(d *Device, r mem.AddressRange) error {
	if err := t.deviceMustBelong(d); err != nil {
		return err
	}

	if err := t.mustNotBeFrozen(d.Name()); err != nil {
		return err
	}

	if d.Kind() != KindMemoryController {
		return &BuildError{
			Device: d.Name(),
			Reason: "only memory controllers own address ranges",
		}
	}

	if !r.Valid() {
		return &BuildError{
			Device: d.Name(),
			Reason: fmt.Sprintf("invalid address range %s", r),
		}
	}

	t.ranges = append(t.ranges, r.WithOwner(d.Name()))

	return nil
}

// DeclareMemoryRange adds a range to the system memory that the memory
// controllers must cover.
func (t *Topology) DeclareMemoryRange(r mem.AddressRange) error {
	if err := t.mustNotBeFrozen(t.Name()); err != nil {
		return err
	}

	if !r.Valid() {
		return &BuildError{
			Device: t.Name(),
			Reason: fmt.Sprintf("invalid memory range %s", r),
		}
	}

	r.Owner = ""
	t.memoryRanges = append(t.memoryRanges, r)

	return nil
}

// Device returns the device with the given full name.
func (t *Topology) Device(name string) (*Device, bool) {
	d, found := t.deviceIndex[name]
	return d, found
}

// Devices returns all devices in creation order.
func (t *Topology) Devices() []*Device {
	return append([]*Device(nil), t.devices...)
}

// DevicesOfKind returns the devices of one kind in creation order.
func (t *Topology) DevicesOfKind(k Kind) []*Device {
	var list []*Device

	for _, d := range t.devices {
		if d.Kind() == k {
			list = append(list, d)
		}
	}

	return list
}

// Port returns the port with the given full name.
func (t *Topology) Port(name string) (*Port, bool) {
	p, found := t.portIndex[name]
	return p, found
}

// Ports returns all ports sorted by name.
func (t *Topology) Ports() []*Port {
	list := append([]*Port(nil), t.ports...)
	sort.Slice(list, func(i, j int) bool {
		return list[i].name < list[j].name
	})

	return list
}

// Ranges returns the address ranges owned by memory controllers.
func (t *Topology) Ranges() []mem.AddressRange {
	return append([]mem.AddressRange(nil), t.ranges...)
}

// MemoryRanges returns the declared system memory ranges.
func (t *Topology) MemoryRanges() []mem.AddressRange {
	return append([]mem.AddressRange(nil), t.memoryRanges...)
}

// FindMemoryController returns the memory controller that owns the address.
func (t *Topology) FindMemoryController(addr uint64) (*Device, bool) {
	owner, found := mem.NewRangeMapper(t.ranges).Find(addr)
	if !found {
		return nil, false
	}

	return t.Device(owner)
}

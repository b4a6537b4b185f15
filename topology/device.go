package topology

import (
	"sort"

	"github.com/sarchlab/simtopo/naming"
)

// A Device is a node of the topology. What kind of device it is, and which
// parameters it carries, is decided by its Params.
type Device struct {
	naming.NamedBase

	id     uint64
	params Params
	ports  map[string]*Port
}

// ID returns the identifier given to the device when it was added. IDs are
// sequential within one topology.
func (d *Device) ID() uint64 {
	return d.id
}

// Kind returns the variant of the device.
func (d *Device) Kind() Kind {
	return d.params.Kind()
}

// Params returns the kind-specific parameters.
func (d *Device) Params() Params {
	return d.params
}

// CPUParams returns the parameters if the device is a CPU.
func (d *Device) CPUParams() (CPUParams, bool) {
	p, ok := d.params.(CPUParams)
	return p, ok
}

// CacheParams returns the parameters if the device is a cache.
func (d *Device) CacheParams() (CacheParams, bool) {
	p, ok := d.params.(CacheParams)
	return p, ok
}

// BusParams returns the parameters if the device is a bus.
func (d *Device) BusParams() (BusParams, bool) {
	p, ok := d.params.(BusParams)
	return p, ok
}

// MemCtrlParams returns the parameters if the device is a memory controller.
func (d *Device) MemCtrlParams() (MemCtrlParams, bool) {
	p, ok := d.params.(MemCtrlParams)
	return p, ok
}

// Port returns the port with the given local name.
func (d *Device) Port(localName string) (*Port, bool) {
	p, found := d.ports[localName]
	return p, found
}

// Ports returns all ports of the device sorted by name.
func (d *Device) Ports() []*Port {
	names := make([]string, 0, len(d.ports))
	for n := range d.ports {
		names = append(names, n)
	}

	sort.Strings(names)

	list := make([]*Port, 0, len(names))
	for _, n := range names {
		list = append(list, d.ports[n])
	}

	return list
}

// downstream returns the devices this device sends requests to.
func (d *Device) downstream() []*Device {
	var devices []*Device

	for _, p := range d.Ports() {
		if p.direction != Request {
			continue
		}

		for _, peer := range p.peers {
			devices = append(devices, peer.device)
		}
	}

	return devices
}

package topology

import "sort"

// Description is a plain, serializable view of a topology. Two topologies
// built from the same configuration have equal descriptions.
type Description struct {
	Name         string           `json:"name" yaml:"name"`
	Clock        string           `json:"clock" yaml:"clock"`
	Voltage      string           `json:"voltage,omitempty" yaml:"voltage,omitempty"`
	MemMode      string           `json:"mem_mode" yaml:"mem_mode"`
	MemoryRanges []RangeDesc      `json:"memory_ranges" yaml:"memory_ranges"`
	Devices      []DeviceDesc     `json:"devices" yaml:"devices"`
	Connections  []ConnectionDesc `json:"connections" yaml:"connections"`
	Ranges       []RangeDesc      `json:"ranges" yaml:"ranges"`
}

// DeviceDesc describes one device.
type DeviceDesc struct {
	Name   string            `json:"name" yaml:"name"`
	Kind   string            `json:"kind" yaml:"kind"`
	Params map[string]string `json:"params,omitempty" yaml:"params,omitempty"`
	Ports  []PortDesc        `json:"ports" yaml:"ports"`
}

// PortDesc describes one port.
type PortDesc struct {
	Name      string `json:"name" yaml:"name"`
	Direction string `json:"direction" yaml:"direction"`
	Optional  bool   `json:"optional,omitempty" yaml:"optional,omitempty"`
}

// ConnectionDesc is one request-to-response binding.
type ConnectionDesc struct {
	Request  string `json:"request" yaml:"request"`
	Response string `json:"response" yaml:"response"`
}

// RangeDesc describes an address range.
type RangeDesc struct {
	Owner string `json:"owner,omitempty" yaml:"owner,omitempty"`
	Start uint64 `json:"start" yaml:"start"`
	Size  uint64 `json:"size" yaml:"size"`
}

// Describe returns the description of the topology. Devices, ports and
// connections are sorted by name.
func (t *Topology) Describe() Description {
	desc := Description{
		Name:    t.Name(),
		Clock:   t.clockDomain.Clock,
		Voltage: t.clockDomain.Voltage,
		MemMode: t.memMode,
	}

	for _, r := range t.memoryRanges {
		desc.MemoryRanges = append(desc.MemoryRanges,
			RangeDesc{Start: r.Start, Size: r.Size})
	}

	for _, d := range sortedByName(t.devices) {
		desc.Devices = append(desc.Devices, describeDevice(d))
	}

	for _, p := range t.Ports() {
		if p.direction != Request {
			continue
		}

		for _, peer := range p.peerNames() {
			desc.Connections = append(desc.Connections,
				ConnectionDesc{Request: p.name, Response: peer})
		}
	}

	for _, r := range t.ranges {
		desc.Ranges = append(desc.Ranges,
			RangeDesc{Owner: r.Owner, Start: r.Start, Size: r.Size})
	}

	sort.Slice(desc.Ranges, func(i, j int) bool {
		if desc.Ranges[i].Start != desc.Ranges[j].Start {
			return desc.Ranges[i].Start < desc.Ranges[j].Start
		}

		return desc.Ranges[i].Owner < desc.Ranges[j].Owner
	})

	return desc
}

func describeDevice(d *Device) DeviceDesc {
	dd := DeviceDesc{
		Name: d.Name(),
		Kind: d.Kind().String(),
	}

	fields := d.params.Fields()
	if len(fields) > 0 {
		dd.Params = make(map[string]string, len(fields))
		for _, f := range fields {
			dd.Params[f.Name] = f.Value
		}
	}

	for _, p := range d.Ports() {
		dd.Ports = append(dd.Ports, PortDesc{
			Name:      p.localName,
			Direction: p.direction.String(),
			Optional:  p.optional,
		})
	}

	return dd
}

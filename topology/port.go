package topology

import "sort"

// A Port is a typed connection endpoint owned by exactly one device.
type Port struct {
	name      string
	localName string
	device    *Device
	direction Direction
	optional  bool

	peers []*Port
}

// Name returns the full name of the port, e.g. "System.CPU.ICachePort".
func (p *Port) Name() string {
	return p.name
}

// LocalName returns the name of the port within its device.
func (p *Port) LocalName() string {
	return p.localName
}

// Device returns the owner of the port.
func (p *Port) Device() *Device {
	return p.device
}

// Direction returns whether the port issues or accepts requests.
func (p *Port) Direction() Direction {
	return p.direction
}

// Optional tells if the port may stay unconnected.
func (p *Port) Optional() bool {
	return p.optional
}

// Peers returns the ports connected to this port.
func (p *Port) Peers() []*Port {
	return append([]*Port(nil), p.peers...)
}

// Peer returns the response port a request port is connected to, or nil.
func (p *Port) Peer() *Port {
	if p.direction != Request || len(p.peers) == 0 {
		return nil
	}

	return p.peers[0]
}

// Connected tells if the port has at least one peer.
func (p *Port) Connected() bool {
	return len(p.peers) > 0
}

func (p *Port) peerNames() []string {
	names := make([]string, 0, len(p.peers))
	for _, peer := range p.peers {
		names = append(names, peer.name)
	}

	sort.Strings(names)

	return names
}

package topology

// Kind is the discriminant of the device variants.
type Kind int

// Kinds of devices.
const (
	KindRoot Kind = iota
	KindCPU
	KindCache
	KindBus
	KindMemoryController
)

var kindNames = map[Kind]string{
	KindRoot:             "Root",
	KindCPU:              "CPU",
	KindCache:            "Cache",
	KindBus:              "Bus",
	KindMemoryController: "MemoryController",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}

	return "Unknown"
}

// Direction tells if a port issues or accepts requests.
type Direction int

// Port directions.
const (
	Request Direction = iota
	Response
)

func (d Direction) String() string {
	if d == Request {
		return "request"
	}

	return "response"
}

// A PortSpec declares a port a device of some kind always has.
type PortSpec struct {
	Name      string
	Direction Direction
	Optional  bool
}

// Standard port names.
const (
	PortICache     = "ICachePort"
	PortDCache     = "DCachePort"
	PortCPUSide    = "CPUSidePort"
	PortMemSide    = "MemSidePort"
	PortCPUSides   = "CPUSidePorts"
	PortMemSides   = "MemSidePorts"
	PortDeviceSide = "DeviceSidePort"
	PortMemCtrl    = "Port"
	PortSystem     = "SystemPort"
)

// StandardPorts returns the ports created together with a device of the
// given kind. Buses get their memory-side request ports one at a time through
// Topology.AddMemSidePort.
func StandardPorts(k Kind) []PortSpec {
	switch k {
	case KindRoot:
		return []PortSpec{{Name: PortSystem, Direction: Request}}
	case KindCPU:
		return []PortSpec{
			{Name: PortICache, Direction: Request},
			{Name: PortDCache, Direction: Request},
		}
	case KindCache:
		return []PortSpec{
			{Name: PortCPUSide, Direction: Response},
			{Name: PortMemSide, Direction: Request},
		}
	case KindBus:
		return []PortSpec{
			{Name: PortCPUSides, Direction: Response},
			{Name: PortDeviceSide, Direction: Response, Optional: true},
		}
	case KindMemoryController:
		return []PortSpec{{Name: PortMemCtrl, Direction: Response}}
	default:
		return nil
	}
}

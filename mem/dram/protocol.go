// Package dram lists the backing memory timing models a memory controller
// can be bound to.
package dram

// Protocol defines the category of the memory device.
type Protocol int

// A list of all supported DRAM protocols.
const (
	DDR3 Protocol = iota
	DDR4
	GDDR5
	LPDDR2
	LPDDR3
	WideIO
	HBM
)

var protocolNames = map[Protocol]string{
	DDR3:   "DDR3",
	DDR4:   "DDR4",
	GDDR5:  "GDDR5",
	LPDDR2: "LPDDR2",
	LPDDR3: "LPDDR3",
	WideIO: "WideIO",
	HBM:    "HBM",
}

func (p Protocol) String() string {
	name, ok := protocolNames[p]
	if !ok {
		return "Unknown"
	}

	return name
}

// IsLowPower checks if the protocol belongs to the mobile low-power family.
func (p Protocol) IsLowPower() bool {
	return p == LPDDR2 || p == LPDDR3 || p == WideIO
}

func (p Protocol) hasBankGroups() bool {
	return p == DDR4 || p == GDDR5
}

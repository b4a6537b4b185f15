package dram

import (
	"errors"
	"fmt"
	"sort"

	"github.com/sarchlab/simtopo/mem"
	"github.com/sarchlab/simtopo/timing"
)

// DefaultModelName is the model used when no memory model is configured.
const DefaultModelName = "DDR3_1600_8x8"

// A Model describes the organization and clock of a DRAM interface. Models are
// immutable values; Lookup returns a copy.
type Model struct {
	Name     string
	Protocol Protocol

	// Clock is the command clock; the data rate is twice the clock.
	Clock timing.Freq

	DeviceSize      uint64
	DeviceBusWidth  int
	BurstLength     int
	DevicesPerRank  int
	RanksPerChannel int
	BanksPerRank    int
	BankGroups      int
}

// Validate checks that the organization is usable.
func (m Model) Validate() error {
	if m.Name == "" {
		return errors.New("model name must not be empty")
	}

	if m.Clock <= 0 {
		return fmt.Errorf("model %s: clock must be > 0", m.Name)
	}

	if m.DeviceSize == 0 {
		return fmt.Errorf("model %s: device size must be > 0", m.Name)
	}

	if m.DeviceBusWidth <= 0 || m.BurstLength <= 0 {
		return fmt.Errorf(
			"model %s: device bus width and burst length must be > 0", m.Name)
	}

	if m.DevicesPerRank <= 0 || m.RanksPerChannel <= 0 || m.BanksPerRank <= 0 {
		return fmt.Errorf(
			"model %s: devices, ranks and banks must be > 0", m.Name)
	}

	if m.Protocol.hasBankGroups() && m.BankGroups <= 0 {
		return fmt.Errorf("model %s: %s requires bank groups", m.Name, m.Protocol)
	}

	return nil
}

// Capacity returns the number of bytes one channel of this model holds.
func (m Model) Capacity() uint64 {
	return m.DeviceSize * uint64(m.DevicesPerRank) * uint64(m.RanksPerChannel)
}

// BurstSize returns the number of bytes moved by one burst.
func (m Model) BurstSize() uint64 {
	return uint64(m.DevicesPerRank*m.DeviceBusWidth*m.BurstLength) / 8
}

// DataRate returns the number of transfers per second.
func (m Model) DataRate() timing.Freq {
	return 2 * m.Clock
}

var catalog = map[string]Model{
	"DDR3_1600_8x8": {
		Name: "DDR3_1600_8x8", Protocol: DDR3, Clock: 800 * timing.MHz,
		DeviceSize: 512 * mem.MB, DeviceBusWidth: 8, BurstLength: 8,
		DevicesPerRank: 8, RanksPerChannel: 2, BanksPerRank: 8,
	},
	"DDR3_2133_8x8": {
		Name: "DDR3_2133_8x8", Protocol: DDR3, Clock: 1066 * timing.MHz,
		DeviceSize: 512 * mem.MB, DeviceBusWidth: 8, BurstLength: 8,
		DevicesPerRank: 8, RanksPerChannel: 2, BanksPerRank: 8,
	},
	"DDR4_2400_8x8": {
		Name: "DDR4_2400_8x8", Protocol: DDR4, Clock: 1200 * timing.MHz,
		DeviceSize: 1 * mem.GB, DeviceBusWidth: 8, BurstLength: 8,
		DevicesPerRank: 8, RanksPerChannel: 2, BanksPerRank: 16,
		BankGroups: 4,
	},
	"LPDDR2_S4_1066_1x32": {
		Name: "LPDDR2_S4_1066_1x32", Protocol: LPDDR2, Clock: 533 * timing.MHz,
		DeviceSize: 512 * mem.MB, DeviceBusWidth: 32, BurstLength: 8,
		DevicesPerRank: 1, RanksPerChannel: 1, BanksPerRank: 8,
	},
	"LPDDR3_1600_1x32": {
		Name: "LPDDR3_1600_1x32", Protocol: LPDDR3, Clock: 800 * timing.MHz,
		DeviceSize: 512 * mem.MB, DeviceBusWidth: 32, BurstLength: 8,
		DevicesPerRank: 1, RanksPerChannel: 1, BanksPerRank: 8,
	},
	"WideIO_200_1x128": {
		Name: "WideIO_200_1x128", Protocol: WideIO, Clock: 200 * timing.MHz,
		DeviceSize: 256 * mem.MB, DeviceBusWidth: 128, BurstLength: 4,
		DevicesPerRank: 1, RanksPerChannel: 1, BanksPerRank: 4,
	},
	"GDDR5_4000_2x32": {
		Name: "GDDR5_4000_2x32", Protocol: GDDR5, Clock: 1000 * timing.MHz,
		DeviceSize: 128 * mem.MB, DeviceBusWidth: 32, BurstLength: 8,
		DevicesPerRank: 2, RanksPerChannel: 1, BanksPerRank: 16,
		BankGroups: 4,
	},
	"HBM_1000_4H_1x128": {
		Name: "HBM_1000_4H_1x128", Protocol: HBM, Clock: 500 * timing.MHz,
		DeviceSize: 256 * mem.MB, DeviceBusWidth: 128, BurstLength: 4,
		DevicesPerRank: 1, RanksPerChannel: 2, BanksPerRank: 16,
	},
}

// Lookup finds a model by its exact, case-sensitive name.
func Lookup(name string) (Model, bool) {
	m, found := catalog[name]
	return m, found
}

// Names returns the sorted names of all known models.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for n := range catalog {
		names = append(names, n)
	}

	sort.Strings(names)

	return names
}

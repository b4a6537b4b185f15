package mem

// RangeMapper finds the memory-backing device that holds an address by
// looking up the owned address ranges.
type RangeMapper struct {
	Ranges []AddressRange
}

// NewRangeMapper creates a RangeMapper over the given ranges.
func NewRangeMapper(ranges []AddressRange) *RangeMapper {
	m := new(RangeMapper)
	m.Ranges = append(m.Ranges, ranges...)

	return m
}

// Find returns the owner of the first range that contains the address.
func (m *RangeMapper) Find(address uint64) (string, bool) {
	for _, r := range m.Ranges {
		if r.Contains(address) {
			return r.Owner, true
		}
	}

	return "", false
}

package mem

import (
	"fmt"
	"sort"
)

// AddressRange is a half-open interval [Start, Start+Size) of the physical
// address space owned by a single device.
type AddressRange struct {
	Start uint64
	Size  uint64
	Owner string
}

// NewAddressRange creates a range that starts at 0, which is how system
// memory ranges are usually declared.
func NewAddressRange(size uint64) AddressRange {
	return AddressRange{Start: 0, Size: size}
}

// End returns the first address after the range.
func (r AddressRange) End() uint64 {
	return r.Start + r.Size
}

// Valid checks that the range is not empty and does not wrap around the
// address space.
func (r AddressRange) Valid() bool {
	return r.Size > 0 && r.Start+r.Size > r.Start
}

// Contains checks if the address falls in the range.
func (r AddressRange) Contains(addr uint64) bool {
	return addr >= r.Start && addr < r.End()
}

// Overlaps checks if two ranges share at least one address.
func (r AddressRange) Overlaps(o AddressRange) bool {
	if r.Size == 0 || o.Size == 0 {
		return false
	}

	return r.Start < o.End() && o.Start < r.End()
}

// WithOwner returns a copy of the range owned by the given device.
func (r AddressRange) WithOwner(owner string) AddressRange {
	r.Owner = owner
	return r
}

func (r AddressRange) String() string {
	if r.Owner == "" {
		return fmt.Sprintf("[%#x, %#x)", r.Start, r.End())
	}

	return fmt.Sprintf("%s[%#x, %#x)", r.Owner, r.Start, r.End())
}

// Union merges the ranges into a sorted list of disjoint, non-adjacent
// ranges. Owners are dropped.
func Union(ranges []AddressRange) []AddressRange {
	sorted := make([]AddressRange, 0, len(ranges))
	for _, r := range ranges {
		if r.Size == 0 {
			continue
		}

		sorted = append(sorted, AddressRange{Start: r.Start, Size: r.Size})
	}

	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	merged := make([]AddressRange, 0, len(sorted))
	for _, r := range sorted {
		if len(merged) == 0 {
			merged = append(merged, r)
			continue
		}

		last := &merged[len(merged)-1]
		if r.Start <= last.End() {
			if r.End() > last.End() {
				last.Size = r.End() - last.Start
			}

			continue
		}

		merged = append(merged, r)
	}

	return merged
}

// SameCoverage checks if two sets of ranges cover exactly the same addresses.
func SameCoverage(a, b []AddressRange) bool {
	ua := Union(a)
	ub := Union(b)

	if len(ua) != len(ub) {
		return false
	}

	for i := range ua {
		if ua[i].Start != ub[i].Start || ua[i].Size != ub[i].Size {
			return false
		}
	}

	return true
}

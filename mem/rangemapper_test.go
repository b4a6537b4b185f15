package mem

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("RangeMapper", func() {
	var (
		mapper *RangeMapper
	)

	BeforeEach(func() {
		mapper = NewRangeMapper([]AddressRange{
			{Start: 0, Size: 256 * MB, Owner: "System.MemCtrl[0]"},
			{Start: 256 * MB, Size: 256 * MB, Owner: "System.MemCtrl[1]"},
		})
	})

	It("should find the owner if address is in-space", func() {
		owner, found := mapper.Find(0)
		Expect(found).To(BeTrue())
		Expect(owner).To(Equal("System.MemCtrl[0]"))

		owner, found = mapper.Find(256*MB - 1)
		Expect(found).To(BeTrue())
		Expect(owner).To(Equal("System.MemCtrl[0]"))

		owner, found = mapper.Find(256 * MB)
		Expect(found).To(BeTrue())
		Expect(owner).To(Equal("System.MemCtrl[1]"))
	})

	It("should report addresses that does not fall in range", func() {
		_, found := mapper.Find(512 * MB)
		Expect(found).To(BeFalse())
	})

	It("should not alias the ranges it was created with", func() {
		ranges := []AddressRange{{Start: 0, Size: KB, Owner: "A"}}
		m := NewRangeMapper(ranges)
		ranges[0].Owner = "B"

		owner, _ := m.Find(0)
		Expect(owner).To(Equal("A"))
	})
})

package topology

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("CPUModel", func() {
	It("should match exactly", func() {
		m, ok := ParseCPUModel("Minor")
		Expect(ok).To(BeTrue())
		Expect(m).To(Equal(Minor))

		_, ok = ParseCPUModel("minor")
		Expect(ok).To(BeFalse())

		_, ok = ParseCPUModel("BogusCPU")
		Expect(ok).To(BeFalse())
	})

	It("should tell the memory mode", func() {
		Expect(AtomicSimple.MemMode()).To(Equal(MemModeAtomic))
		Expect(TimingSimple.MemMode()).To(Equal(MemModeTiming))
		Expect(O3.MemMode()).To(Equal(MemModeTiming))
	})

	It("should not expose the list for mutation", func() {
		models := CPUModels()
		models[0] = "Changed"

		Expect(CPUModels()[0]).To(Equal(AtomicSimple))
	})
})

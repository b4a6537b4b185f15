package system_test

import (
	"bytes"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/simtopo/config"
	"github.com/sarchlab/simtopo/logging"
	"github.com/sarchlab/simtopo/mem"
	"github.com/sarchlab/simtopo/system"
	"github.com/sarchlab/simtopo/topology"
)

func peerOf(t *topology.Topology, portName string) string {
	p, found := t.Port(portName)
	Expect(found).To(BeTrue(), portName)
	Expect(p.Peer()).NotTo(BeNil(), portName)

	return p.Peer().Name()
}

func cpuParams(t *topology.Topology, name string) topology.CPUParams {
	d, found := t.Device(name)
	Expect(found).To(BeTrue(), name)

	p, ok := d.CPUParams()
	Expect(ok).To(BeTrue(), name)

	return p
}

func cacheParams(t *topology.Topology, name string) topology.CacheParams {
	d, found := t.Device(name)
	Expect(found).To(BeTrue(), name)

	p, ok := d.CacheParams()
	Expect(ok).To(BeTrue(), name)

	return p
}

func memCtrlParams(t *topology.Topology, name string) topology.MemCtrlParams {
	d, found := t.Device(name)
	Expect(found).To(BeTrue(), name)

	p, ok := d.MemCtrlParams()
	Expect(ok).To(BeTrue(), name)

	return p
}

var _ = Describe("Builder", func() {
	var builder system.Builder

	BeforeEach(func() {
		builder = system.MakeBuilder()
	})

	It("should build a valid default system", func() {
		t, err := builder.Build("System")
		Expect(err).NotTo(HaveOccurred())

		Expect(t.Validated()).To(BeFalse())
		Expect(t.Validate()).To(Succeed())

		Expect(t.DevicesOfKind(topology.KindCPU)).To(HaveLen(1))
		Expect(t.DevicesOfKind(topology.KindCache)).To(HaveLen(3))
		Expect(t.DevicesOfKind(topology.KindBus)).To(HaveLen(2))
		Expect(t.DevicesOfKind(topology.KindMemoryController)).To(HaveLen(1))
		Expect(t.ClockDomain().Clock).To(Equal("1GHz"))
		Expect(t.MemMode()).To(Equal(topology.MemModeTiming))

		Expect(t.Ranges()).To(ConsistOf(mem.AddressRange{
			Start: 0, Size: 512 * mem.MB, Owner: "System.MemCtrl",
		}))

		Expect(cpuParams(t, "System.CPU").Model).To(Equal(topology.TimingSimple))
		Expect(memCtrlParams(t, "System.MemCtrl").Model).
			To(Equal("DDR3_1600_8x8"))
	})

	It("should wire the cache hierarchy", func() {
		t, err := builder.Build("System")
		Expect(err).NotTo(HaveOccurred())

		Expect(peerOf(t, "System.CPU.ICachePort")).
			To(Equal("System.CPU.ICache.CPUSidePort"))
		Expect(peerOf(t, "System.CPU.DCachePort")).
			To(Equal("System.CPU.DCache.CPUSidePort"))
		Expect(peerOf(t, "System.CPU.ICache.MemSidePort")).
			To(Equal("System.L2Bus.CPUSidePorts"))
		Expect(peerOf(t, "System.CPU.DCache.MemSidePort")).
			To(Equal("System.L2Bus.CPUSidePorts"))
		Expect(peerOf(t, "System.L2Bus.MemSidePorts[0]")).
			To(Equal("System.L2Cache.CPUSidePort"))
		Expect(peerOf(t, "System.L2Cache.MemSidePort")).
			To(Equal("System.MemBus.CPUSidePorts"))
		Expect(peerOf(t, "System.MemBus.MemSidePorts[0]")).
			To(Equal("System.MemCtrl.Port"))
		Expect(peerOf(t, "System.SystemPort")).
			To(Equal("System.MemBus.CPUSidePorts"))

		Expect(cacheParams(t, "System.CPU.ICache").Size).To(Equal("16KB"))
		Expect(cacheParams(t, "System.CPU.DCache").Size).To(Equal("64KB"))
		l2 := cacheParams(t, "System.L2Cache")
		Expect(l2.Size).To(Equal("256KB"))
		Expect(l2.Assoc).To(Equal(8))
	})

	It("should wire the cpu to the memory bus without caches", func() {
		t, err := builder.
			WithConfig(&config.Config{CacheEnabled: config.Bool(false)}).
			Build("System")
		Expect(err).NotTo(HaveOccurred())
		Expect(t.Validate()).To(Succeed())

		Expect(t.DevicesOfKind(topology.KindCache)).To(BeEmpty())
		Expect(t.DevicesOfKind(topology.KindBus)).To(HaveLen(1))
		Expect(peerOf(t, "System.CPU.ICachePort")).
			To(Equal("System.MemBus.CPUSidePorts"))
		Expect(peerOf(t, "System.CPU.DCachePort")).
			To(Equal("System.MemBus.CPUSidePorts"))

		busSide, _ := t.Port("System.MemBus.CPUSidePorts")
		Expect(busSide.Peers()).To(HaveLen(3))
	})

	It("should use the configured sizes", func() {
		t, err := builder.WithConfig(&config.Config{
			L1ISize: config.String("32KB"),
			L1DSize: config.String("32KB"),
			L2Size:  config.String("1MB"),
		}).Build("System")
		Expect(err).NotTo(HaveOccurred())
		Expect(t.Validate()).To(Succeed())

		Expect(cacheParams(t, "System.L2Cache").Size).To(Equal("1MB"))
	})

	DescribeTable("cpu models",
		func(model topology.CPUModel, memMode string) {
			t, err := builder.WithConfig(&config.Config{
				CPUModel: config.String(string(model)),
			}).Build("System")
			Expect(err).NotTo(HaveOccurred())

			Expect(t.Validate()).To(Succeed())
			Expect(t.MemMode()).To(Equal(memMode))
		},
		Entry("AtomicSimple", topology.AtomicSimple, topology.MemModeAtomic),
		Entry("TimingSimple", topology.TimingSimple, topology.MemModeTiming),
		Entry("Minor", topology.Minor, topology.MemModeTiming),
		Entry("O3", topology.O3, topology.MemModeTiming),
	)

	It("should fall back and warn on unknown cpu models", func() {
		buf := &bytes.Buffer{}
		s, err := builder.
			WithConfig(&config.Config{CPUModel: config.String("BogusCPU")}).
			WithLogger(logging.NewWithWriter(config.LoggingConfig{}, buf)).
			BuildSystem("System")
		Expect(err).NotTo(HaveOccurred())

		Expect(s.Topology.Validate()).To(Succeed())
		Expect(cpuParams(s.Topology, "System.CPU").Model).
			To(Equal(topology.TimingSimple))
		Expect(s.Warnings).To(HaveLen(1))
		Expect(s.Warnings[0].Raw).To(Equal("BogusCPU"))
		Expect(buf.String()).To(And(
			ContainSubstring("level=WARN"),
			ContainSubstring("raw=BogusCPU")))
	})

	It("should fall back to the sample binary", func() {
		s, err := builder.BuildSystem("System")
		Expect(err).NotTo(HaveOccurred())

		Expect(s.Workload).To(Equal(system.Workload{
			BinaryPath: system.DefaultBinary,
			Args:       []string{system.DefaultBinary},
		}))
	})

	It("should pass the binary and its arguments", func() {
		s, err := builder.WithConfig(&config.Config{
			BinaryPath: config.String("bin/app"),
			Args:       []string{"bin/app", "-v"},
		}).BuildSystem("System")
		Expect(err).NotTo(HaveOccurred())

		Expect(s.Workload.BinaryPath).To(Equal("bin/app"))
		Expect(s.Workload.Args).To(Equal([]string{"bin/app", "-v"}))
	})

	It("should fail on an empty memory", func() {
		_, err := builder.WithConfig(&config.Config{
			MemorySize: config.String("0B"),
		}).Build("System")

		var cErr *config.ConfigError
		Expect(errors.As(err, &cErr)).To(BeTrue())
	})

	It("should fail on a bad topology name", func() {
		_, err := builder.Build("system")

		var bErr *topology.BuildError
		Expect(errors.As(err, &bErr)).To(BeTrue())
	})

	Context("when building twice", func() {
		cfg := &config.Config{
			CPUModel: config.String("Minor"),
			L2Size:   config.String("512KB"),
		}

		It("should produce equal but independent topologies", func() {
			b := builder.WithConfig(cfg)

			first, err := b.Build("System")
			Expect(err).NotTo(HaveOccurred())
			second, err := b.Build("System")
			Expect(err).NotTo(HaveOccurred())

			Expect(second).NotTo(BeIdenticalTo(first))
			Expect(second.ID()).NotTo(Equal(first.ID()))
			Expect(second.Describe()).To(Equal(first.Describe()))

			_, err = first.AddDevice("System.Extra", topology.MemCtrlParams{
				Model: "DDR3_1600_8x8",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(first.Validate()).NotTo(Succeed())

			_, found := second.Device("System.Extra")
			Expect(found).To(BeFalse())
			Expect(second.Validate()).To(Succeed())
		})
	})

	DescribeTable("address coverage",
		func(size string, total uint64) {
			t, err := builder.WithConfig(&config.Config{
				MemorySize: config.String(size),
			}).Build("System")
			Expect(err).NotTo(HaveOccurred())
			Expect(t.Validate()).To(Succeed())

			for _, addr := range []uint64{0, 1, total / 2, total - 1} {
				owner, found := t.FindMemoryController(addr)
				Expect(found).To(BeTrue())
				Expect(owner.Name()).To(Equal("System.MemCtrl"))
			}

			_, found := t.FindMemoryController(total)
			Expect(found).To(BeFalse())
		},
		Entry("default", "512MB", 512*mem.MB),
		Entry("one GB", "1GB", mem.GB),
		Entry("odd size", "4097", uint64(4097)),
	)

	It("should reject two controllers over the same range", func() {
		t, err := builder.Build("System")
		Expect(err).NotTo(HaveOccurred())

		second, err := t.AddDevice("System.MemCtrl2", topology.MemCtrlParams{
			Model: "DDR3_1600_8x8",
		})
		Expect(err).NotTo(HaveOccurred())

		memBus, _ := t.Device("System.MemBus")
		toSecond, err := t.AddMemSidePort(memBus)
		Expect(err).NotTo(HaveOccurred())
		port, _ := second.Port(topology.PortMemCtrl)
		Expect(t.Connect(toSecond, port)).To(Succeed())
		Expect(t.AssignRange(second, mem.NewAddressRange(512*mem.MB))).
			To(Succeed())

		err = t.Validate()

		var vErr *topology.ValidationError
		Expect(errors.As(err, &vErr)).To(BeTrue())
		Expect(errors.Is(err, topology.ErrOverlappingRanges)).To(BeTrue())
		Expect(vErr.Devices).To(Equal(
			[]string{"System.MemCtrl", "System.MemCtrl2"}))
	})
})

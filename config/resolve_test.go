package config_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/simtopo/config"
	"github.com/sarchlab/simtopo/mem"
	"github.com/sarchlab/simtopo/topology"
)

var _ = Describe("Resolve", func() {
	It("should fill defaults for an empty config", func() {
		r, err := config.Resolve(&config.Config{})
		Expect(err).NotTo(HaveOccurred())

		Expect(r.CPUModel).To(Equal(topology.TimingSimple))
		Expect(r.Clock).To(Equal("1GHz"))
		Expect(r.L1ISize).To(Equal("16KB"))
		Expect(r.L1DSize).To(Equal("64KB"))
		Expect(r.L2Size).To(Equal("256KB"))
		Expect(r.MemoryModel).To(Equal("DDR3_1600_8x8"))
		Expect(r.MemoryBytes).To(Equal(512 * mem.MB))
		Expect(r.BinaryPath).To(Equal(config.DefaultBinary))
		Expect(r.Args).To(Equal([]string{config.DefaultBinary}))
		Expect(r.CacheEnabled).To(BeTrue())
		Expect(r.Warnings).To(BeEmpty())
	})

	It("should treat nil as an empty config", func() {
		fromNil, err := config.Resolve(nil)
		Expect(err).NotTo(HaveOccurred())

		fromEmpty, err := config.Resolve(&config.Config{})
		Expect(err).NotTo(HaveOccurred())

		Expect(fromNil).To(Equal(fromEmpty))
	})

	It("should keep valid values", func() {
		r, err := config.Resolve(&config.Config{
			CPUModel:     config.String("Minor"),
			Clock:        config.String("2000000000"),
			L1DSize:      config.String("32kB"),
			MemoryModel:  config.String("LPDDR2_S4_1066_1x32"),
			MemorySize:   config.String("1GB"),
			BinaryPath:   config.String("bin/app"),
			CacheEnabled: config.Bool(false),
		})
		Expect(err).NotTo(HaveOccurred())

		Expect(r.CPUModel).To(Equal(topology.Minor))
		Expect(r.Clock).To(Equal("2000000000"))
		Expect(r.L1DSize).To(Equal("32kB"))
		Expect(r.MemoryModel).To(Equal("LPDDR2_S4_1066_1x32"))
		Expect(r.MemoryBytes).To(Equal(mem.GB))
		Expect(r.Args).To(Equal([]string{"bin/app"}))
		Expect(r.CacheEnabled).To(BeFalse())
		Expect(r.Warnings).To(BeEmpty())
	})

	It("should fall back on unknown cpu models", func() {
		r, err := config.Resolve(&config.Config{
			CPUModel: config.String("BogusCPU"),
		})
		Expect(err).NotTo(HaveOccurred())

		Expect(r.CPUModel).To(Equal(topology.TimingSimple))
		Expect(r.Warnings).To(ConsistOf(config.Warning{
			Field:    "cpu_model",
			Raw:      "BogusCPU",
			Fallback: "TimingSimple",
			Reason:   "is not a known CPU model",
		}))
	})

	It("should match cpu models case-sensitively", func() {
		r, err := config.Resolve(&config.Config{
			CPUModel: config.String("minor"),
		})
		Expect(err).NotTo(HaveOccurred())

		Expect(r.CPUModel).To(Equal(topology.TimingSimple))
		Expect(r.Warnings).To(HaveLen(1))
	})

	DescribeTable("malformed optional fields",
		func(cfg *config.Config, field, fallback string) {
			r, err := config.Resolve(cfg)
			Expect(err).NotTo(HaveOccurred())

			Expect(r.Warnings).To(HaveLen(1))
			Expect(r.Warnings[0].Field).To(Equal(field))
			Expect(r.Warnings[0].Fallback).To(Equal(fallback))
		},
		Entry("clock", &config.Config{Clock: config.String("fast")},
			"clock", "1GHz"),
		Entry("l1i size", &config.Config{L1ISize: config.String("16XB")},
			"l1i_size", "16KB"),
		Entry("l2 size", &config.Config{L2Size: config.String("-1KB")},
			"l2_size", "256KB"),
		Entry("memory model", &config.Config{MemoryModel: config.String("DDR9")},
			"memory_model", "DDR3_1600_8x8"),
		Entry("memory size", &config.Config{MemorySize: config.String("lots")},
			"memory_size", "512MB"),
	)

	It("should fall back on an empty binary path", func() {
		r, err := config.Resolve(&config.Config{BinaryPath: config.String(" ")})
		Expect(err).NotTo(HaveOccurred())

		Expect(r.BinaryPath).To(Equal(config.DefaultBinary))
	})

	It("should fail on an empty memory", func() {
		_, err := config.Resolve(&config.Config{
			MemorySize: config.String("0B"),
		})

		var cErr *config.ConfigError
		Expect(errors.As(err, &cErr)).To(BeTrue())
		Expect(cErr.Field).To(Equal("memory_size"))
		Expect(cErr.Raw).To(Equal("0B"))
		Expect(errors.Is(err, mem.ErrNonPositiveSize)).To(BeTrue())
	})
})

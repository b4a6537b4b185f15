package config_test

import (
	"errors"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/simtopo/config"
)

func setenv(key, value string) {
	old, had := os.LookupEnv(key)
	Expect(os.Setenv(key, value)).To(Succeed())

	DeferCleanup(func() {
		if had {
			os.Setenv(key, old)
		} else {
			os.Unsetenv(key)
		}
	})
}

var _ = Describe("Config", func() {
	Context("when parsing YAML", func() {
		It("should treat an empty document as all default", func() {
			cfg, err := config.Parse(nil)

			Expect(err).NotTo(HaveOccurred())
			Expect(cfg).To(Equal(&config.Config{}))
		})

		It("should read the known keys", func() {
			cfg, err := config.Parse([]byte(`
cpu_model: Minor
clock: 2GHz
l2_size: 512KB
cache_enabled: false
args: [hello, world]
logging:
  level: debug
`))

			Expect(err).NotTo(HaveOccurred())
			Expect(*cfg.CPUModel).To(Equal("Minor"))
			Expect(*cfg.Clock).To(Equal("2GHz"))
			Expect(*cfg.L2Size).To(Equal("512KB"))
			Expect(*cfg.CacheEnabled).To(BeFalse())
			Expect(cfg.L1ISize).To(BeNil())
			Expect(cfg.Args).To(Equal([]string{"hello", "world"}))
			Expect(cfg.Logging.Level).To(Equal("debug"))
		})

		It("should reject unknown keys", func() {
			_, err := config.Parse([]byte("cpu_modle: Minor\n"))

			var cErr *config.ConfigError
			Expect(errors.As(err, &cErr)).To(BeTrue())
			Expect(cErr.Error()).To(ContainSubstring("cpu_modle"))
		})

		It("should load files", func() {
			path := filepath.Join(GinkgoT().TempDir(), "system.yaml")
			Expect(os.WriteFile(path, []byte("memory_size: 1GB\n"), 0o600)).
				To(Succeed())

			cfg, err := config.Load(path)

			Expect(err).NotTo(HaveOccurred())
			Expect(*cfg.MemorySize).To(Equal("1GB"))
		})

		It("should report missing files", func() {
			_, err := config.Load(filepath.Join(GinkgoT().TempDir(), "none.yaml"))

			var cErr *config.ConfigError
			Expect(errors.As(err, &cErr)).To(BeTrue())
			Expect(errors.Is(err, os.ErrNotExist)).To(BeTrue())
		})
	})

	Context("when merging", func() {
		It("should let the override win field by field", func() {
			base := &config.Config{
				CPUModel: config.String("Minor"),
				L1ISize:  config.String("32KB"),
			}
			override := &config.Config{
				CPUModel:     config.String("O3"),
				CacheEnabled: config.Bool(false),
			}

			merged := config.Merge(base, override)

			Expect(*merged.CPUModel).To(Equal("O3"))
			Expect(*merged.L1ISize).To(Equal("32KB"))
			Expect(*merged.CacheEnabled).To(BeFalse())
			Expect(*base.CPUModel).To(Equal("Minor"))
		})

		It("should not share pointers with its inputs", func() {
			override := &config.Config{Clock: config.String("2GHz")}

			merged := config.Merge(nil, override)
			*override.Clock = "3GHz"

			Expect(*merged.Clock).To(Equal("2GHz"))
		})
	})

	Context("when reading the environment", func() {
		It("should read SIMTOPO variables", func() {
			setenv(config.EnvCPUModel, "AtomicSimple")
			setenv(config.EnvMemSize, "1GB")
			setenv(config.EnvCacheEnabled, "false")

			cfg, err := config.FromEnv()

			Expect(err).NotTo(HaveOccurred())
			Expect(*cfg.CPUModel).To(Equal("AtomicSimple"))
			Expect(*cfg.MemorySize).To(Equal("1GB"))
			Expect(*cfg.CacheEnabled).To(BeFalse())
		})

		It("should reject non-boolean cache switches", func() {
			setenv(config.EnvCacheEnabled, "maybe")

			_, err := config.FromEnv()

			Expect(err).To(MatchError(ContainSubstring("SIMTOPO_CACHE_ENABLED")))
		})

		It("should read env files below the process environment", func() {
			path := filepath.Join(GinkgoT().TempDir(), ".env")
			Expect(os.WriteFile(path, []byte(
				"SIMTOPO_L2_SIZE=1MB\nSIMTOPO_CPU_MODEL=Minor\n"), 0o600)).
				To(Succeed())
			setenv(config.EnvCPUModel, "O3")

			cfg, err := config.LoadEnvFile(path)

			Expect(err).NotTo(HaveOccurred())
			Expect(*cfg.L2Size).To(Equal("1MB"))
			Expect(*cfg.CPUModel).To(Equal("O3"))
		})
	})
})

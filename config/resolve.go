package config

import (
	"errors"
	"strings"

	"github.com/sarchlab/simtopo/mem"
	"github.com/sarchlab/simtopo/mem/dram"
	"github.com/sarchlab/simtopo/timing"
	"github.com/sarchlab/simtopo/topology"
)

// Defaults of the optional fields.
const (
	DefaultCPUModel    = topology.DefaultCPUModel
	DefaultClock       = "1GHz"
	DefaultL1ISize     = "16KB"
	DefaultL1DSize     = "64KB"
	DefaultL2Size      = "256KB"
	DefaultMemoryModel = dram.DefaultModelName
	DefaultMemorySize  = "512MB"
	DefaultBinary      = "tests/test-progs/hello/bin/riscv/linux/hello"
)

// Resolved is a configuration with every field filled in. Size and clock
// strings are kept in the form the user wrote them, after checking that they
// parse.
type Resolved struct {
	CPUModel     topology.CPUModel
	Clock        string
	L1ISize      string
	L1DSize      string
	L2Size       string
	MemoryModel  string
	MemorySize   string
	MemoryBytes  uint64
	BinaryPath   string
	Args         []string
	CacheEnabled bool

	Logging LoggingConfig

	// Warnings lists the optional fields that fell back to their defaults.
	Warnings []Warning
}

// Resolve fills the absent fields of cfg with defaults. A malformed optional
// field also takes its default and adds a Warning. Only a memory size that
// parses but is not positive is fatal.
func Resolve(cfg *Config) (*Resolved, error) {
	if cfg == nil {
		cfg = &Config{}
	}

	r := &Resolved{
		CacheEnabled: true,
		Logging:      cfg.Logging,
	}

	r.resolveCPUModel(cfg.CPUModel)
	r.Clock = r.resolveClock("clock", cfg.Clock, DefaultClock)
	r.L1ISize = r.resolveSize("l1i_size", cfg.L1ISize, DefaultL1ISize)
	r.L1DSize = r.resolveSize("l1d_size", cfg.L1DSize, DefaultL1DSize)
	r.L2Size = r.resolveSize("l2_size", cfg.L2Size, DefaultL2Size)
	r.resolveMemoryModel(cfg.MemoryModel)

	if err := r.resolveMemorySize(cfg.MemorySize); err != nil {
		return nil, err
	}

	r.BinaryPath = DefaultBinary
	if cfg.BinaryPath != nil && strings.TrimSpace(*cfg.BinaryPath) != "" {
		r.BinaryPath = *cfg.BinaryPath
	}

	r.Args = []string{r.BinaryPath}
	if len(cfg.Args) > 0 {
		r.Args = append([]string(nil), cfg.Args...)
	}

	if cfg.CacheEnabled != nil {
		r.CacheEnabled = *cfg.CacheEnabled
	}

	return r, nil
}

func (r *Resolved) warn(field, raw, fallback, reason string) {
	r.Warnings = append(r.Warnings, Warning{
		Field:    field,
		Raw:      raw,
		Fallback: fallback,
		Reason:   reason,
	})
}

func (r *Resolved) resolveCPUModel(raw *string) {
	r.CPUModel = DefaultCPUModel
	if raw == nil {
		return
	}

	model, known := topology.ParseCPUModel(*raw)
	if !known {
		r.warn("cpu_model", *raw, string(DefaultCPUModel),
			"is not a known CPU model")
		return
	}

	r.CPUModel = model
}

func (r *Resolved) resolveClock(field string, raw *string, def string) string {
	if raw == nil {
		return def
	}

	s := strings.TrimSpace(*raw)
	if _, err := timing.ParseFreq(s); err != nil {
		r.warn(field, *raw, def, "is not a valid clock")
		return def
	}

	return s
}

func (r *Resolved) resolveSize(field string, raw *string, def string) string {
	if raw == nil {
		return def
	}

	s := strings.TrimSpace(*raw)
	if _, err := mem.ParseByteSize(s); err != nil {
		r.warn(field, *raw, def, "is not a valid size")
		return def
	}

	return s
}

func (r *Resolved) resolveMemoryModel(raw *string) {
	r.MemoryModel = DefaultMemoryModel
	if raw == nil {
		return
	}

	if _, known := dram.Lookup(*raw); !known {
		r.warn("memory_model", *raw, DefaultMemoryModel,
			"is not a known memory model")
		return
	}

	r.MemoryModel = *raw
}

func (r *Resolved) resolveMemorySize(raw *string) error {
	r.MemorySize = DefaultMemorySize
	r.MemoryBytes = 512 * mem.MB

	if raw == nil {
		return nil
	}

	s := strings.TrimSpace(*raw)

	n, err := mem.ParseByteSize(s)
	switch {
	case err == nil:
		r.MemorySize = s
		r.MemoryBytes = n
	case errors.Is(err, mem.ErrNonPositiveSize):
		return &ConfigError{
			Field:  "memory_size",
			Raw:    *raw,
			Reason: "system memory must not be empty",
			Err:    err,
		}
	default:
		r.warn("memory_size", *raw, DefaultMemorySize, "is not a valid size")
	}

	return nil
}

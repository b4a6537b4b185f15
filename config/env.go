package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment variable the configuration reads.
const EnvPrefix = "SIMTOPO_"

// Environment variables.
const (
	EnvCPUModel     = EnvPrefix + "CPU_MODEL"
	EnvCPUClock     = EnvPrefix + "CPU_CLOCK"
	EnvL1ISize      = EnvPrefix + "L1I_SIZE"
	EnvL1DSize      = EnvPrefix + "L1D_SIZE"
	EnvL2Size       = EnvPrefix + "L2_SIZE"
	EnvMemModel     = EnvPrefix + "MEM_MODEL"
	EnvMemSize      = EnvPrefix + "MEM_SIZE"
	EnvBinary       = EnvPrefix + "BINARY"
	EnvCacheEnabled = EnvPrefix + "CACHE_ENABLED"
	EnvLogLevel     = EnvPrefix + "LOG_LEVEL"
	EnvLogFormat    = EnvPrefix + "LOG_FORMAT"
)

// FromEnv builds a configuration layer from the process environment.
func FromEnv() (*Config, error) {
	return fromLookup(os.LookupEnv)
}

// LoadEnvFile reads a .env file into a configuration layer. Variables that
// are already set in the process environment win over the file, and the
// process environment is left untouched.
func LoadEnvFile(path string) (*Config, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		return nil, &ConfigError{
			Field:  "env-file",
			Raw:    path,
			Reason: "cannot read env file",
			Err:    err,
		}
	}

	return fromLookup(func(key string) (string, bool) {
		if v, found := os.LookupEnv(key); found {
			return v, true
		}

		v, found := values[key]

		return v, found
	})
}

func fromLookup(lookup func(string) (string, bool)) (*Config, error) {
	cfg := &Config{}

	strs := []struct {
		key string
		dst **string
	}{
		{EnvCPUModel, &cfg.CPUModel},
		{EnvCPUClock, &cfg.Clock},
		{EnvL1ISize, &cfg.L1ISize},
		{EnvL1DSize, &cfg.L1DSize},
		{EnvL2Size, &cfg.L2Size},
		{EnvMemModel, &cfg.MemoryModel},
		{EnvMemSize, &cfg.MemorySize},
		{EnvBinary, &cfg.BinaryPath},
	}

	for _, s := range strs {
		if v, found := lookup(s.key); found && v != "" {
			*s.dst = String(v)
		}
	}

	if v, found := lookup(EnvCacheEnabled); found && v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return nil, &ConfigError{
				Field:  EnvCacheEnabled,
				Raw:    v,
				Reason: "not a boolean",
				Err:    err,
			}
		}

		cfg.CacheEnabled = Bool(enabled)
	}

	if v, found := lookup(EnvLogLevel); found {
		cfg.Logging.Level = v
	}

	if v, found := lookup(EnvLogFormat); found {
		cfg.Logging.Format = v
	}

	return cfg, nil
}

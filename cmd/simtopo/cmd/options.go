package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/simtopo/config"
	"github.com/sarchlab/simtopo/logging"
	"github.com/sarchlab/simtopo/system"
)

type options struct {
	configFile string
	envFile    string

	l1iSize  string
	l1dSize  string
	l2Size   string
	cpuModel string
	cpuClock string
	memModel string
	memSize  string
	noCache  bool

	record      string
	monitor     bool
	monitorPort int
	openBrowser bool

	logLevel  string
	logFormat string
}

func (o *options) addFlags(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()

	pf.StringVar(&o.configFile, "config", "", "YAML configuration file")
	pf.StringVar(&o.envFile, "env-file", "",
		"file with SIMTOPO_* variables, below the process environment")

	pf.StringVar(&o.l1iSize, "l1i_size", config.DefaultL1ISize, "L1 instruction cache size")
	pf.StringVar(&o.l1dSize, "l1d_size", config.DefaultL1DSize, "L1 data cache size")
	pf.StringVar(&o.l2Size, "l2_size", config.DefaultL2Size, "L2 cache size")
	pf.StringVar(&o.cpuModel, "cpu_model", string(config.DefaultCPUModel),
		"CPU model: AtomicSimple, TimingSimple, Minor or O3")
	pf.StringVar(&o.cpuClock, "cpu_clock", config.DefaultClock, "clock of the system")
	pf.StringVar(&o.memModel, "mem_model", config.DefaultMemoryModel, "memory timing model")
	pf.StringVar(&o.memSize, "mem_size", config.DefaultMemorySize, "size of the system memory")
	pf.BoolVar(&o.noCache, "no-cache", false, "connect the CPU straight to the memory bus")

	pf.StringVar(&o.logLevel, "log-level", "", "debug, info, warn or error")
	pf.StringVar(&o.logFormat, "log-format", "", "text or json")

	f := cmd.Flags()

	f.StringVar(&o.record, "record", "",
		"record the topology into this SQLite database (without extension)")
	f.BoolVar(&o.monitor, "monitor", false, "serve the topology over HTTP")
	f.IntVar(&o.monitorPort, "monitor-port", 0, "port of the monitoring server")
	f.BoolVar(&o.openBrowser, "open-browser", false,
		"open the monitoring page in a browser")
}

// loadConfig layers the configuration sources. Later layers win: the YAML
// file, the environment (over the env file) and the flags that were set.
func (o *options) loadConfig(flags *pflag.FlagSet, args []string) (*config.Config, error) {
	cfg := &config.Config{}

	if o.configFile != "" {
		fileCfg, err := config.Load(o.configFile)
		if err != nil {
			return nil, err
		}

		cfg = config.Merge(cfg, fileCfg)
	}

	envCfg, err := o.loadEnv()
	if err != nil {
		return nil, err
	}

	cfg = config.Merge(cfg, envCfg)

	return config.Merge(cfg, o.flagLayer(flags, args)), nil
}

func (o *options) loadEnv() (*config.Config, error) {
	if o.envFile != "" {
		return config.LoadEnvFile(o.envFile)
	}

	return config.FromEnv()
}

func (o *options) flagLayer(flags *pflag.FlagSet, args []string) *config.Config {
	layer := &config.Config{}

	strs := []struct {
		flag  string
		value string
		dst   **string
	}{
		{"l1i_size", o.l1iSize, &layer.L1ISize},
		{"l1d_size", o.l1dSize, &layer.L1DSize},
		{"l2_size", o.l2Size, &layer.L2Size},
		{"cpu_model", o.cpuModel, &layer.CPUModel},
		{"cpu_clock", o.cpuClock, &layer.Clock},
		{"mem_model", o.memModel, &layer.MemoryModel},
		{"mem_size", o.memSize, &layer.MemorySize},
	}

	for _, s := range strs {
		if flags.Changed(s.flag) {
			*s.dst = config.String(s.value)
		}
	}

	if flags.Changed("no-cache") {
		layer.CacheEnabled = config.Bool(!o.noCache)
	}

	if len(args) > 0 {
		layer.BinaryPath = config.String(args[0])
	}

	layer.Logging = config.LoggingConfig{
		Level:  o.logLevel,
		Format: o.logFormat,
	}

	return layer
}

func (o *options) newLogger(cfg config.LoggingConfig) (*slog.Logger, error) {
	logger, closer, err := logging.New(cfg)
	if err != nil {
		return nil, err
	}

	atexit.Register(func() { closer.Close() })

	return logger, nil
}

// build resolves the configuration and builds the system. Fallback notices
// are printed to errOut.
func (o *options) build(
	cmd *cobra.Command,
	args []string,
) (*system.System, *slog.Logger, error) {
	cfg, err := o.loadConfig(cmd.Flags(), args)
	if err != nil {
		return nil, nil, err
	}

	logger, err := o.newLogger(cfg.Logging)
	if err != nil {
		return nil, nil, err
	}

	s, err := system.MakeBuilder().
		WithConfig(cfg).
		WithLogger(logger).
		BuildSystem(SystemName)
	if err != nil {
		return nil, nil, err
	}

	printNotices(cmd.ErrOrStderr(), s.Warnings)

	return s, logger, nil
}

func (o *options) buildValidated(
	cmd *cobra.Command,
	args []string,
) (*system.System, *slog.Logger, error) {
	s, logger, err := o.build(cmd, args)
	if err != nil {
		return nil, nil, err
	}

	if err := s.Topology.Validate(); err != nil {
		return nil, nil, err
	}

	return s, logger, nil
}

func printNotices(w io.Writer, warnings []config.Warning) {
	for _, warning := range warnings {
		fmt.Fprintf(w, "Notice: %s\n", warning)
	}
}

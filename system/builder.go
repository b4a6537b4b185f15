package system

import (
	"log/slog"

	"github.com/sarchlab/simtopo/config"
	"github.com/sarchlab/simtopo/logging"
	"github.com/sarchlab/simtopo/mem"
	"github.com/sarchlab/simtopo/topology"
)

// A System is the outcome of a build: the unvalidated topology, the
// workload to hand to the loader, and the configuration values that were
// replaced by defaults.
type System struct {
	Topology *topology.Topology
	Workload Workload
	Resolved *config.Resolved
	Warnings []config.Warning
}

// Builder builds system topologies.
type Builder struct {
	cfg    *config.Config
	logger *slog.Logger
}

// MakeBuilder returns a Builder with an all-default configuration.
func MakeBuilder() Builder {
	return Builder{
		cfg:    &config.Config{},
		logger: logging.Discard(),
	}
}

// WithConfig sets the configuration to build from.
func (b Builder) WithConfig(cfg *config.Config) Builder {
	b.cfg = cfg
	return b
}

// WithLogger sets the logger that receives build warnings and progress.
func (b Builder) WithLogger(l *slog.Logger) Builder {
	b.logger = l
	return b
}

// Build creates the topology. The topology is returned unvalidated.
func (b Builder) Build(name string) (*topology.Topology, error) {
	s, err := b.BuildSystem(name)
	if err != nil {
		return nil, err
	}

	return s.Topology, nil
}

// BuildSystem is Build that also returns the workload and warnings.
func (b Builder) BuildSystem(name string) (*System, error) {
	r, err := config.Resolve(b.cfg)
	if err != nil {
		return nil, err
	}

	logging.LogWarnings(b.logger, r.Warnings)

	t, err := topology.New(name)
	if err != nil {
		return nil, err
	}

	w := &wiring{t: t, r: r, logger: b.logger.With("topology", name)}
	if err := w.build(); err != nil {
		return nil, err
	}

	return &System{
		Topology: t,
		Workload: MakeWorkload(r),
		Resolved: r,
		Warnings: r.Warnings,
	}, nil
}

type wiring struct {
	t      *topology.Topology
	r      *config.Resolved
	logger *slog.Logger

	root    *topology.Device
	cpu     *topology.Device
	memBus  *topology.Device
	memCtrl *topology.Device
}

func (w *wiring) build() error {
	steps := []func() error{
		w.setupDomain,
		w.addCore,
		w.addMemory,
		w.connectCPU,
		w.connectMemory,
	}

	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}

	w.logger.Debug("topology built",
		slog.Int("devices", len(w.t.Devices())),
		slog.Bool("caches", w.r.CacheEnabled),
	)

	return nil
}

func (w *wiring) setupDomain() error {
	err := w.t.SetClockDomain(topology.ClockDomain{
		Clock:   w.r.Clock,
		Voltage: "1V",
	})
	if err != nil {
		return err
	}

	return w.t.SetMemMode(w.r.CPUModel.MemMode())
}

func (w *wiring) add(local string, params topology.Params) (*topology.Device, error) {
	name := w.t.Name()
	if local != "" {
		name += "." + local
	}

	d, err := w.t.AddDevice(name, params)
	if err != nil {
		return nil, err
	}

	w.logger.Debug("device added",
		slog.String("device", d.Name()),
		slog.String("kind", d.Kind().String()),
	)

	return d, nil
}

func (w *wiring) addCore() (err error) {
	w.root, err = w.add("", topology.RootParams{})
	if err != nil {
		return err
	}

	w.cpu, err = w.add("CPU", topology.CPUParams{
		Model:               w.r.CPUModel,
		InterruptController: true,
	})
	if err != nil {
		return err
	}

	w.memBus, err = w.add("MemBus", systemBusParams())

	return err
}

func (w *wiring) addMemory() (err error) {
	w.memCtrl, err = w.add("MemCtrl", topology.MemCtrlParams{
		Model: w.r.MemoryModel,
	})
	if err != nil {
		return err
	}

	all := mem.NewAddressRange(w.r.MemoryBytes)

	if err := w.t.DeclareMemoryRange(all); err != nil {
		return err
	}

	return w.t.AssignRange(w.memCtrl, all)
}

func (w *wiring) connectCPU() error {
	if !w.r.CacheEnabled {
		return w.connectCPUToMemBus()
	}

	return w.connectCaches()
}

func (w *wiring) connectCPUToMemBus() error {
	busSide := mustPort(w.memBus, topology.PortCPUSides)

	if err := w.t.Connect(mustPort(w.cpu, topology.PortICache), busSide); err != nil {
		return err
	}

	return w.t.Connect(mustPort(w.cpu, topology.PortDCache), busSide)
}

func (w *wiring) connectCaches() error {
	icache, err := w.add("CPU.ICache", l1CacheParams(topology.CacheInstruction, w.r.L1ISize))
	if err != nil {
		return err
	}

	dcache, err := w.add("CPU.DCache", l1CacheParams(topology.CacheData, w.r.L1DSize))
	if err != nil {
		return err
	}

	l2Bus, err := w.add("L2Bus", l2BusParams())
	if err != nil {
		return err
	}

	l2Cache, err := w.add("L2Cache", l2CacheParams(w.r.L2Size))
	if err != nil {
		return err
	}

	toL2Cache, err := w.t.AddMemSidePort(l2Bus)
	if err != nil {
		return err
	}

	links := []struct{ req, rsp *topology.Port }{
		{mustPort(w.cpu, topology.PortICache), mustPort(icache, topology.PortCPUSide)},
		{mustPort(w.cpu, topology.PortDCache), mustPort(dcache, topology.PortCPUSide)},
		{mustPort(icache, topology.PortMemSide), mustPort(l2Bus, topology.PortCPUSides)},
		{mustPort(dcache, topology.PortMemSide), mustPort(l2Bus, topology.PortCPUSides)},
		{toL2Cache, mustPort(l2Cache, topology.PortCPUSide)},
		{mustPort(l2Cache, topology.PortMemSide), mustPort(w.memBus, topology.PortCPUSides)},
	}

	for _, l := range links {
		if err := w.t.Connect(l.req, l.rsp); err != nil {
			return err
		}
	}

	return nil
}

func (w *wiring) connectMemory() error {
	toMemCtrl, err := w.t.AddMemSidePort(w.memBus)
	if err != nil {
		return err
	}

	err = w.t.Connect(toMemCtrl, mustPort(w.memCtrl, topology.PortMemCtrl))
	if err != nil {
		return err
	}

	return w.t.Connect(
		mustPort(w.root, topology.PortSystem),
		mustPort(w.memBus, topology.PortCPUSides))
}

// mustPort looks up a standard port. Standard ports are created with the
// device, so a miss is a programming error.
func mustPort(d *topology.Device, local string) *topology.Port {
	p, found := d.Port(local)
	if !found {
		panic("port " + local + " not found on " + d.Name())
	}

	return p
}

package topology

// CPUModel names a CPU variant.
type CPUModel string

// Known CPU variants.
const (
	AtomicSimple CPUModel = "AtomicSimple"
	TimingSimple CPUModel = "TimingSimple"
	Minor        CPUModel = "Minor"
	O3           CPUModel = "O3"
)

// DefaultCPUModel is used when the requested model is absent or unknown.
const DefaultCPUModel = TimingSimple

// Memory access modes.
const (
	MemModeTiming = "timing"
	MemModeAtomic = "atomic"
)

var cpuModels = []CPUModel{AtomicSimple, TimingSimple, Minor, O3}

// CPUModels lists the known CPU variants.
func CPUModels() []CPUModel {
	return append([]CPUModel(nil), cpuModels...)
}

// ParseCPUModel matches the string exactly, including case, against the known
// variants.
func ParseCPUModel(s string) (CPUModel, bool) {
	for _, m := range cpuModels {
		if string(m) == s {
			return m, true
		}
	}

	return "", false
}

// MemMode returns the memory access mode the variant requires.
func (m CPUModel) MemMode() string {
	if m == AtomicSimple {
		return MemModeAtomic
	}

	return MemModeTiming
}

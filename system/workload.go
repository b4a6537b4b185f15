package system

import "github.com/sarchlab/simtopo/config"

// DefaultBinary is the sample program run when no binary is given.
const DefaultBinary = config.DefaultBinary

// A Workload tells the loader what program to run. The topology core never
// opens the binary.
type Workload struct {
	BinaryPath string
	Args       []string
}

// MakeWorkload derives the workload from a resolved configuration.
func MakeWorkload(r *config.Resolved) Workload {
	w := Workload{BinaryPath: r.BinaryPath}
	if w.BinaryPath == "" {
		w.BinaryPath = DefaultBinary
	}

	w.Args = append([]string(nil), r.Args...)
	if len(w.Args) == 0 {
		w.Args = []string{w.BinaryPath}
	}

	return w
}

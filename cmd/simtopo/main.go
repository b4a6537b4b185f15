// Command simtopo builds, validates and runs the topology of a simple
// simulated computer system.
package main

import (
	"github.com/tebeka/atexit"

	"github.com/sarchlab/simtopo/cmd/simtopo/cmd"
)

func main() {
	atexit.Exit(cmd.Execute())
}

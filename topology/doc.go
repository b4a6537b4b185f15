// Package topology models the structure of a simulated system: devices, the
// ports they expose, the connections between request and response ports, and
// the physical address ranges owned by memory controllers.
//
// A Topology is assembled with AddDevice, AddPort, Connect and AssignRange,
// and then checked with Validate. Once validation succeeds the topology is
// frozen and can be handed to a simulation engine.
package topology
